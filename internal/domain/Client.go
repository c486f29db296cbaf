package domain

import (
	"time"
)

// Client representa um cliente da agência (tenant). O DashboardToken é uma
// credencial permanente: quem possui o token tem acesso de leitura ao dashboard
type Client struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Slug           string    `json:"slug"`
	LogoURL        *string   `json:"logo_url,omitempty"`
	DashboardToken string    `json:"dashboard_token,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// UpdateClientRequest contém os campos editáveis de um cliente
type UpdateClientRequest struct {
	ID      string  `json:"id"`
	Name    *string `json:"name,omitempty"`
	LogoURL *string `json:"logo_url,omitempty"`
}
