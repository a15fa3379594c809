package libclient

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Config carries the deployment-specific values the client needs. Everything
// comes from the environment; a .env file in the working directory is loaded
// first as a convenience for development.
type Config struct {
	// BaseURL is the backend's root, including any path prefix the API is
	// mounted under.
	BaseURL string `env:"LIBRARY_API_BASE_URL,required"`

	// AdminEmail is the administrator address Session.IsAdmin compares
	// against. Empty disables the admin check entirely.
	AdminEmail string `env:"LIBRARY_ADMIN_EMAIL"`

	// CredentialsFile overrides where the bearer token is persisted.
	// Empty selects <user config dir>/library-client/credentials.yaml.
	CredentialsFile string `env:"LIBRARY_CREDENTIALS_FILE"`

	HTTPTimeout time.Duration `env:"LIBRARY_HTTP_TIMEOUT" envDefault:"30s"`
	LogLevel    string        `env:"LIBRARY_LOG_LEVEL" envDefault:"info"`
	LogFormat   string        `env:"LIBRARY_LOG_FORMAT" envDefault:"text"`
}

// ErrParsingConfig is returned when environment variables cannot be parsed
// into the config struct.
var ErrParsingConfig = errors.New("libclient: failed to parse environment configuration")

var dotenvOnce sync.Once

// LoadConfig populates Config from the environment, loading the default .env
// file once per process first. A missing .env file is fine.
func LoadConfig() (Config, error) {
	dotenvOnce.Do(func() {
		_ = godotenv.Load()
	})

	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrParsingConfig, err)
	}

	return cfg, nil
}
