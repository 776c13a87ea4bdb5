package fleet

import (
	"context"
	"net/http"
	"sync"
)

// Collection é o cache de uma coleção de recursos: registros em ordem
// (mais recentes primeiro), flag de carregamento e último erro. Toda
// mutação só toca o cache depois da resposta do servidor confirmar —
// em falha o cache permanece intacto.
type Collection[T any] struct {
	client *Client
	path   string
	idOf   func(T) string

	mu      sync.Mutex
	records []T
	loading bool
	lastErr error
}

// NewCollection cria o cache para o recurso servido em path
// (ex.: /api/drivers). idOf extrai o identificador de um registro.
func NewCollection[T any](client *Client, path string, idOf func(T) string) *Collection[T] {
	return &Collection[T]{client: client, path: path, idOf: idOf}
}

// Records devolve uma cópia dos registros na ordem do cache.
func (c *Collection[T]) Records() []T {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]T, len(c.records))
	copy(out, c.records)
	return out
}

// Loading informa se há um fetch em andamento.
func (c *Collection[T]) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// LastError devolve o erro da última operação, ou nil.
func (c *Collection[T]) LastError() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastErr
}

// Reset esvazia o cache. Chamado no sign-out para não vazar dados
// entre identidades.
func (c *Collection[T]) Reset() {
	c.mu.Lock()
	c.records = nil
	c.lastErr = nil
	c.mu.Unlock()
}

func (c *Collection[T]) fail(err error) error {
	apiErr := toApiError(err)
	c.mu.Lock()
	c.lastErr = apiErr
	c.mu.Unlock()
	return apiErr
}

// Fetch substitui o cache pelo estado atual do servidor.
func (c *Collection[T]) Fetch(ctx context.Context) ([]T, error) {
	c.mu.Lock()
	c.loading = true
	c.mu.Unlock()

	var records []T
	err := c.client.do(ctx, http.MethodGet, c.path, nil, &records)

	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()

	if err != nil {
		return nil, c.fail(err)
	}

	c.mu.Lock()
	c.records = records
	c.lastErr = nil
	c.mu.Unlock()
	return c.Records(), nil
}

// Create envia o novo registro e, confirmado, o coloca no topo do
// cache — registros novos aparecem primeiro.
func (c *Collection[T]) Create(ctx context.Context, input any) (T, error) {
	var created T
	if err := c.client.do(ctx, http.MethodPost, c.path, input, &created); err != nil {
		return created, c.fail(err)
	}

	c.mu.Lock()
	c.records = append([]T{created}, c.records...)
	c.lastErr = nil
	c.mu.Unlock()
	return created, nil
}

// Update aplica o patch e substitui o registro na posição em que está,
// sem reordenar.
func (c *Collection[T]) Update(ctx context.Context, id string, patch any) (T, error) {
	var updated T
	if err := c.client.do(ctx, http.MethodPatch, c.path+"/"+id, patch, &updated); err != nil {
		return updated, c.fail(err)
	}

	c.replace(id, updated)
	return updated, nil
}

// Delete remove o registro do servidor e do cache.
func (c *Collection[T]) Delete(ctx context.Context, id string) error {
	if err := c.client.do(ctx, http.MethodDelete, c.path+"/"+id, nil, nil); err != nil {
		return c.fail(err)
	}

	c.mu.Lock()
	kept := c.records[:0]
	for _, record := range c.records {
		if c.idOf(record) != id {
			kept = append(kept, record)
		}
	}
	c.records = kept
	c.lastErr = nil
	c.mu.Unlock()
	return nil
}

// ToggleStatus alterna o status no servidor e espelha o resultado no
// cache, preservando a posição.
func (c *Collection[T]) ToggleStatus(ctx context.Context, id string) (T, error) {
	var toggled T
	if err := c.client.do(ctx, http.MethodPatch, c.path+"/"+id+"/toggle-status", nil, &toggled); err != nil {
		return toggled, c.fail(err)
	}

	c.replace(id, toggled)
	return toggled, nil
}

func (c *Collection[T]) replace(id string, record T) {
	c.mu.Lock()
	for i := range c.records {
		if c.idOf(c.records[i]) == id {
			c.records[i] = record
			break
		}
	}
	c.lastErr = nil
	c.mu.Unlock()
}
