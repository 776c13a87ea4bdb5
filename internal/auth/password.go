package auth

import (
	"github.com/alexedwards/argon2id"
)

// Parâmetros fixos de Argon2id; ficam embutidos no hash gerado,
// então podem evoluir sem invalidar senhas antigas.
var hashParams = &argon2id.Params{
	Memory:      64 * 1024,
	Iterations:  3,
	Parallelism: 1,
	SaltLength:  16,
	KeyLength:   32,
}

// Hash gera um hash Argon2id da senha em texto puro.
func Hash(password string) (string, error) {
	return argon2id.CreateHash(password, hashParams)
}

// Verify compara a senha informada com um hash Argon2id existente.
func Verify(password, encodedHash string) (bool, error) {
	return argon2id.ComparePasswordAndHash(password, encodedHash)
}
