package config

import "time"

type Config interface {
	EnvConfig
	OAuthConfig
	SessionConfig
	RateLimitConfig
}

type EnvConfig interface {
	GetPort() string
	GetAppName() string
	GetEnv() string
}

type OAuthConfig interface {
	GetClientID() string
	GetClientSecret() string
	GetRedirectURL() string
	GetIssuerURL() string
}

type SessionConfig interface {
	GetSessionSecret() string
	GetSessionTTL() time.Duration
	GetRedisAddr() string
}

type RateLimitConfig interface {
	GetRateLimitMax() int
	GetRateLimitWindow() time.Duration
}

type mainConfig struct {
	EnvVars
}

func New() (Config, error) {
	envVars, err := NewEnvVars()
	if err != nil {
		return nil, err
	}
	return mainConfig{EnvVars: envVars}, nil
}
