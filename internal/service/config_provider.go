package service

import "github.com/juanitaaa04/ethere-backend/internal/config"

// PublicConfig is safe to hand to the browser: the client id is not a secret.
type PublicConfig struct {
	ClientID string `json:"client_id"`
	Currency string `json:"currency"`
	Env      string `json:"env"`
}

type ConfigProvider struct {
	paypal   config.PayPal
	currency string
}

func NewConfigProvider(paypal config.PayPal, currency string) *ConfigProvider {
	return &ConfigProvider{paypal: paypal, currency: currency}
}

func (p *ConfigProvider) GetConfig() (PublicConfig, error) {
	if err := p.paypal.RequireClientID(); err != nil {
		return PublicConfig{}, err
	}
	return PublicConfig{
		ClientID: p.paypal.ClientID,
		Currency: p.currency,
		Env:      p.paypal.Env,
	}, nil
}
