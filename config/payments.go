package config

import "time"

// PaymentsConfig contains the payment provider configuration.
type PaymentsConfig struct {
	// SecretKey authenticates against the Stripe API. Payments are
	// disabled when empty.
	SecretKey string `env:"SECRET_KEY"`

	// Currency is the ISO currency code charges are made in.
	Currency string `env:"CURRENCY" envDefault:"usd"`

	// Timeout bounds a single provider API call.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"10s"`

	// RetryLimit is the number of retries on provider 5xx responses.
	RetryLimit int `env:"RETRY_LIMIT" envDefault:"2"`
}

// Enabled reports whether a payment provider is configured.
func (p *PaymentsConfig) Enabled() bool {
	return p.SecretKey != ""
}

// Sanitize applies guardrails to payment configuration values.
func (p *PaymentsConfig) Sanitize() {
	if p.Timeout <= 0 {
		p.Timeout = 10 * time.Second
	}
	if p.RetryLimit < 0 {
		p.RetryLimit = 0
	}
	if p.Currency == "" {
		p.Currency = "usd"
	}
}
