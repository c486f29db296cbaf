package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveRatios(t *testing.T) {
	tests := []struct {
		name         string
		metric       CampaignMetric
		expectedROAS float64
		expectedCPC  float64
		expectedCPM  float64
	}{
		{
			name: "Métricas completas - calcula todos os índices",
			metric: CampaignMetric{
				Spend:           100.0,
				Impressions:     10000,
				Clicks:          200,
				ConversionValue: 300.0,
			},
			expectedROAS: 3.0,
			expectedCPC:  0.5,
			expectedCPM:  10.0,
		},
		{
			name: "Investimento zero - roas zerado sem divisão por zero",
			metric: CampaignMetric{
				Spend:           0,
				Impressions:     1000,
				Clicks:          10,
				ConversionValue: 50.0,
			},
			expectedROAS: 0,
			expectedCPC:  0,
			expectedCPM:  0,
		},
		{
			name: "Sem cliques nem impressões - cpc e cpm zerados",
			metric: CampaignMetric{
				Spend:           50.0,
				Impressions:     0,
				Clicks:          0,
				ConversionValue: 100.0,
			},
			expectedROAS: 2.0,
			expectedCPC:  0,
			expectedCPM:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.metric.DeriveRatios()

			assert.Equal(t, tt.expectedROAS, tt.metric.ROAS)
			assert.Equal(t, tt.expectedCPC, tt.metric.CPC)
			assert.Equal(t, tt.expectedCPM, tt.metric.CPM)
		})
	}
}

func TestTokenExpiresWithin(t *testing.T) {
	in2min := time.Now().Add(2 * time.Minute)
	in10min := time.Now().Add(10 * time.Minute)
	buffer := 5 * time.Minute

	tests := []struct {
		name     string
		account  AdAccount
		expected bool
	}{
		{
			name:     "Token expira em 2 minutos - dentro da janela de renovação",
			account:  AdAccount{AccessToken: "tok", TokenExpiresAt: &in2min},
			expected: true,
		},
		{
			name:     "Token expira em 10 minutos - fora da janela",
			account:  AdAccount{AccessToken: "tok", TokenExpiresAt: &in10min},
			expected: false,
		},
		{
			name:     "Token sem data de expiração - tratado como expirado",
			account:  AdAccount{AccessToken: "tok"},
			expected: true,
		},
		{
			name:     "Conta sem token - tratada como expirada",
			account:  AdAccount{TokenExpiresAt: &in10min},
			expected: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.account.TokenExpiresWithin(buffer))
		})
	}
}

func TestPlatformValid(t *testing.T) {
	assert.True(t, PlatformGoogle.Valid())
	assert.True(t, PlatformMeta.Valid())
	assert.False(t, Platform("tiktok").Valid())
}

func TestSyncStatusTerminal(t *testing.T) {
	assert.False(t, SyncStatusRunning.Terminal())
	assert.True(t, SyncStatusSuccess.Terminal())
	assert.True(t, SyncStatusError.Terminal())
}
