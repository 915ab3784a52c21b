package config

import "fmt"

// DevJWTSecret is the local-development signing secret. Every service in a
// deployment must share one secret; production must always override it.
const DevJWTSecret = "dev-only-gameshelf-secret"

// AuthConf holds token signing configuration shared by all services
type AuthConf struct {
	JWTSecret             string `env:"JWT_SECRET" envDefault:"dev-only-gameshelf-secret"`
	JWTAlg                string `env:"JWT_ALG" envDefault:"HS256"`
	AccessTokenTTLMinutes int    `env:"ACCESS_TOKEN_EXPIRE_MINUTES" envDefault:"60"`
}

// ValidateAuthConfig validates token signing configuration
func (a *AuthConf) ValidateAuthConfig() error {
	if a.JWTSecret == "" {
		return fmt.Errorf("auth configuration error: JWT_SECRET is required")
	}

	switch a.JWTAlg {
	case "HS256", "HS384", "HS512":
	default:
		return fmt.Errorf("auth configuration error: unsupported JWT_ALG %q", a.JWTAlg)
	}

	if a.AccessTokenTTLMinutes <= 0 {
		return fmt.Errorf("auth configuration error: ACCESS_TOKEN_EXPIRE_MINUTES must be > 0")
	}

	return nil
}
