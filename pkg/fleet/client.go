// Package fleet é o cliente Go da API de gestão de frota. Mantém a
// sessão autenticada e caches de coleções por recurso, espelhando o
// contrato de envelope {success, data, error} do servidor.
package fleet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"
)

// ApiError é o único tipo de erro exposto pelas coleções: falha de
// transporte e rejeição da aplicação chegam iguais ao chamador.
type ApiError struct {
	Message string
}

func (e *ApiError) Error() string {
	return e.Message
}

// httpError carrega o status para a camada de sessão mapear a
// taxonomia de erros de autenticação.
type httpError struct {
	Status  int
	Message string
}

func (e *httpError) Error() string {
	return e.Message
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

// Client fala com a API usando o envelope padrão.
type Client struct {
	baseURL string
	http    *http.Client

	mu          sync.RWMutex
	accessToken string
}

// NewClient cria cliente apontando para baseURL (sem barra final).
func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: baseURL,
		http:    &http.Client{Timeout: 30 * time.Second},
	}
}

// SetAccessToken define o token usado nas próximas requisições.
func (c *Client) SetAccessToken(token string) {
	c.mu.Lock()
	c.accessToken = token
	c.mu.Unlock()
}

func (c *Client) token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.accessToken
}

const connectionMessage = "Não foi possível conectar ao servidor"

// do executa a requisição e decodifica o envelope. Respostas não-2xx e
// envelopes {success:false} viram *httpError; falha de rede vira
// *httpError com status zero.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if token := c.token(); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return &httpError{Status: 0, Message: connectionMessage}
	}
	defer resp.Body.Close()

	var env envelope
	if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
		return &httpError{Status: resp.StatusCode, Message: connectionMessage}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 || !env.Success {
		message := env.Error
		if message == "" {
			message = connectionMessage
		}
		return &httpError{Status: resp.StatusCode, Message: message}
	}

	if out != nil && len(env.Data) > 0 {
		return json.Unmarshal(env.Data, out)
	}
	return nil
}

func toApiError(err error) error {
	if err == nil {
		return nil
	}
	var he *httpError
	if errors.As(err, &he) {
		return &ApiError{Message: he.Message}
	}
	return &ApiError{Message: connectionMessage}
}
