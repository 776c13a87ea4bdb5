package fleet

// Mensagens do contrato de erro da API compartilhadas entre servidor e
// cliente. O cliente classifica falhas de autenticação por igualdade
// exata com estas constantes, sem duplicar texto de exibição.
const (
	// MsgEmailNotConfirmed diferencia, num 403 de login, conta não
	// confirmada de conta desativada.
	MsgEmailNotConfirmed = "Você precisa confirmar seu email antes de fazer login. Verifique sua caixa de entrada."
	// MsgWeakPassword identifica num 400 de cadastro a senha fraca.
	MsgWeakPassword = "Senha deve ter pelo menos 6 caracteres"
)
