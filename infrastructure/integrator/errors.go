package integrator

import (
	"fmt"
)

// Erros tipados das integrações com as plataformas de anúncios. O orquestrador
// de sincronização trata todos da mesma forma (finaliza o log e propaga), mas a
// distinção importa para o operador: AuthExchangeError e TokenRefreshError
// exigem reconexão manual da conta, ProviderAPIError é falha da tentativa atual

// AuthExchangeError indica que o provedor rejeitou o authorization code
type AuthExchangeError struct {
	Provider string
	Err      error
}

func (e *AuthExchangeError) Error() string {
	return fmt.Sprintf("%s: falha na troca do authorization code: %v", e.Provider, e.Err)
}

func (e *AuthExchangeError) Unwrap() error {
	return e.Err
}

// TokenRefreshError indica que o provedor rejeitou o refresh token. Não é uma
// falha transitória: a conta precisa ser reconectada pelo operador
type TokenRefreshError struct {
	Provider string
	Err      error
}

func (e *TokenRefreshError) Error() string {
	return fmt.Sprintf("%s: falha ao renovar access token: %v", e.Provider, e.Err)
}

func (e *TokenRefreshError) Unwrap() error {
	return e.Err
}

// ProviderAPIError representa uma resposta não-2xx de uma API de relatórios.
// O corpo é preservado para diagnóstico
type ProviderAPIError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *ProviderAPIError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("%s: API retornou status %d: %s", e.Provider, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("%s: API retornou status %d", e.Provider, e.StatusCode)
}
