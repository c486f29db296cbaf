package metaclient

import (
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator"
	"github.com/vfg2006/client-reporting-api/infrastructure/integrator/meta/metadomain"
)

// ExchangeCode troca um authorization code por um token de acesso. A troca tem
// duas etapas: o code vira um token de curta duração e esse token é trocado por
// um de longa duração (~60 dias). Se a segunda etapa falhar, o token curto é
// devolvido mesmo assim - melhor uma conta conectada por horas do que nenhuma
func (c *MetaClient) ExchangeCode(code string) (*metadomain.TokenResponse, error) {
	shortLived, err := c.exchangeCodeForToken(code)
	if err != nil {
		return nil, &integrator.AuthExchangeError{Provider: providerName, Err: err}
	}

	longLived, err := c.getLongLivedToken(shortLived.AccessToken)
	if err != nil {
		logrus.WithError(err).Warn("meta: falha ao obter token de longa duração, usando token de curta duração")
		return shortLived, nil
	}

	return longLived, nil
}

func (c *MetaClient) exchangeCodeForToken(code string) (*metadomain.TokenResponse, error) {
	endpoint := fmt.Sprintf("%s/oauth/access_token", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("client_id", c.Cfg.Meta.AppID)
	params.Add("client_secret", c.Cfg.Meta.AppSecret)
	params.Add("redirect_uri", fmt.Sprintf("%s/v1/auth/meta/callback", c.Cfg.App.BaseURL))
	params.Add("code", code)

	return c.requestToken(endpoint + "?" + params.Encode())
}

// getLongLivedToken troca um token de curta duração por um de longa duração
func (c *MetaClient) getLongLivedToken(shortLivedToken string) (*metadomain.TokenResponse, error) {
	if shortLivedToken == "" {
		return nil, fmt.Errorf("token de acesso não pode ser vazio")
	}

	endpoint := fmt.Sprintf("%s/oauth/access_token", c.Cfg.Meta.URL)

	params := url.Values{}
	params.Add("grant_type", "fb_exchange_token")
	params.Add("client_id", c.Cfg.Meta.AppID)
	params.Add("client_secret", c.Cfg.Meta.AppSecret)
	params.Add("fb_exchange_token", shortLivedToken)

	tokenResp, err := c.requestToken(endpoint + "?" + params.Encode())
	if err != nil {
		return nil, err
	}

	logrus.Infof("Token de longa duração obtido com sucesso. Expira em %s.", formatDuration(tokenResp.ExpiresIn))

	return tokenResp, nil
}

func (c *MetaClient) requestToken(requestURL string) (*metadomain.TokenResponse, error) {
	body, err := c.doGet(requestURL)
	if err != nil {
		return nil, err
	}

	var tokenResp metadomain.TokenResponse
	if err := json.Unmarshal(body, &tokenResp); err != nil {
		return nil, fmt.Errorf("erro ao decodificar resposta: %w", err)
	}

	if tokenResp.AccessToken == "" {
		return nil, fmt.Errorf("token retornado pela API é vazio")
	}

	return &tokenResp, nil
}

// formatDuration formata a duração em segundos para um formato legível
func formatDuration(seconds int64) string {
	days := seconds / (24 * 60 * 60)
	hours := (seconds % (24 * 60 * 60)) / (60 * 60)

	return fmt.Sprintf("%d dias e %d horas", days, hours)
}
