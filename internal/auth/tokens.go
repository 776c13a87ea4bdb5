package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"fmt"
)

// GenerateToken cria token aleatório seguro e seu hash persistível.
// Usado para refresh tokens, confirmação de e-mail e reset de senha.
func GenerateToken() (raw string, hashed string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", err
	}

	raw = base64.RawURLEncoding.EncodeToString(buf)
	hashed = HashToken(raw)
	return raw, hashed, nil
}

// HashToken produz hash SHA-256 base64.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}

// RefreshRedisKey monta chave única para guardar estado do refresh.
func RefreshRedisKey(hash string) string {
	return fmt.Sprintf("refresh:%s", hash)
}

// ConfirmRedisKey guarda tokens pendentes de confirmação de e-mail.
func ConfirmRedisKey(hash string) string {
	return fmt.Sprintf("confirm:%s", hash)
}

// ResetRedisKey guarda tokens de redefinição de senha.
func ResetRedisKey(hash string) string {
	return fmt.Sprintf("reset:%s", hash)
}

// CacheKeyPrefix agrupa caches de coleções por usuário; removido no logout.
func CacheKeyPrefix(subject string) string {
	return fmt.Sprintf("cache:%s:", subject)
}
