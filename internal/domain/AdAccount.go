package domain

import (
	"time"
)

// AdAccount vincula um cliente a uma conta externa de anúncios.
// Unicidade: (client_id, platform, account_id) - reconectar a mesma conta
// atualiza a linha existente, nunca duplica
type AdAccount struct {
	ID             string     `json:"id"`
	ClientID       string     `json:"client_id"`
	Platform       Platform   `json:"platform"`
	AccountID      string     `json:"account_id"`
	AccountName    string     `json:"account_name"`
	AccessToken    string     `json:"-"`
	RefreshToken   *string    `json:"-"`
	TokenExpiresAt *time.Time `json:"token_expires_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at"`
}

// TokenExpiresWithin indica se o access token expira dentro da janela informada.
// Token sem data de expiração é tratado como expirado
func (a *AdAccount) TokenExpiresWithin(buffer time.Duration) bool {
	if a.AccessToken == "" {
		return true
	}
	if a.TokenExpiresAt == nil {
		return true
	}
	return a.TokenExpiresAt.Before(time.Now().Add(buffer))
}
