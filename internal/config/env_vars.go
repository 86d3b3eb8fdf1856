package config

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
)

// envValues holds the raw environment values for the service.
type envValues struct {
	Port    string `env:"PORT" envDefault:"3000"`
	AppName string `env:"APP_NAME" envDefault:"Gmail Sender"`
	Env     string `env:"ENV" envDefault:"DEV"`

	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RedirectURL  string `env:"REDIRECT_URL" envDefault:"http://localhost:3000/redirect"`
	IssuerURL    string `env:"ISSUER_URL" envDefault:"https://accounts.google.com"`

	SessionSecret string        `env:"SESSION_SECRET"`
	SessionTTL    time.Duration `env:"SESSION_TTL" envDefault:"24h"`
	RedisAddr     string        `env:"REDIS_ADDR"`

	RateLimitMax    int           `env:"RATE_LIMIT_MAX" envDefault:"10"`
	RateLimitWindow time.Duration `env:"RATE_LIMIT_WINDOW" envDefault:"15m"`
}

type EnvVars struct {
	values envValues
}

var _ Config = EnvVars{}

func NewEnvVars() (EnvVars, error) {
	var values envValues
	if err := env.Parse(&values); err != nil {
		return EnvVars{}, fmt.Errorf("parse env: %w", err)
	}
	return EnvVars{values: values}, nil
}

func (e EnvVars) GetPort() string {
	port := e.values.Port
	if port != "" && port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (e EnvVars) GetAppName() string {
	return e.values.AppName
}

func (e EnvVars) GetEnv() string {
	return e.values.Env
}

func (e EnvVars) GetClientID() string {
	return e.values.ClientID
}

func (e EnvVars) GetClientSecret() string {
	return e.values.ClientSecret
}

func (e EnvVars) GetRedirectURL() string {
	return e.values.RedirectURL
}

func (e EnvVars) GetIssuerURL() string {
	return e.values.IssuerURL
}

func (e EnvVars) GetSessionSecret() string {
	return e.values.SessionSecret
}

func (e EnvVars) GetSessionTTL() time.Duration {
	return e.values.SessionTTL
}

func (e EnvVars) GetRedisAddr() string {
	return e.values.RedisAddr
}

func (e EnvVars) GetRateLimitMax() int {
	return e.values.RateLimitMax
}

func (e EnvVars) GetRateLimitWindow() time.Duration {
	return e.values.RateLimitWindow
}
