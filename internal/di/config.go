package di

import (
	"fmt"
	"strings"
	"time"

	"marketing-crew/internal/application/port/output"
	"marketing-crew/internal/domain/entity"
)

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"

	ScrapeBackendSerper  = "serper"
	ScrapeBackendBrowser = "browser"
)

var defaultModels = map[string]string{
	ProviderGemini: "gemini-2.0-flash",
	ProviderOpenAI: "google/gemini-2.0-flash-001",
}

var keyVariables = map[string]string{
	ProviderGemini: "GOOGLE_API_KEY",
	ProviderOpenAI: "OPENAI_API_KEY",
}

// Config is read once at startup. Nothing downstream looks at the
// environment again.
type Config struct {
	Provider     string
	APIKey       string
	Model        string
	BaseURL      string
	Temperature  float32
	MaxTokens    int
	ModelTimeout time.Duration
	VerifyModel  bool

	SerperAPIKey  string
	SearchTimeout time.Duration
	ScrapeTimeout time.Duration
	SearchDelay   time.Duration
	ScrapeBackend string

	MaxRPM  int
	Verbose bool
	LogDir  string
}

// SearchEnabled reports whether search and scrape tools can reach the
// service. Without a key they still exist but always answer with an error.
func (c Config) SearchEnabled() bool {
	return c.SerperAPIKey != ""
}

// LoadConfig fails with entity.ErrConfiguration on a missing model key or an
// unknown provider or scrape backend.
func LoadConfig(env output.ConfigPort) (Config, error) {
	provider := strings.ToLower(env.GetWithDefault("MODEL_PROVIDER", ProviderGemini))
	keyVar, ok := keyVariables[provider]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown MODEL_PROVIDER %q (use %s or %s)",
			entity.ErrConfiguration, provider, ProviderGemini, ProviderOpenAI)
	}

	apiKey := env.Get(keyVar)
	if apiKey == "" {
		return Config{}, fmt.Errorf("%w: %s not found in environment variables. Please add it to your .env file",
			entity.ErrConfiguration, keyVar)
	}

	backend := strings.ToLower(env.GetWithDefault("SCRAPE_BACKEND", ScrapeBackendSerper))
	if backend != ScrapeBackendSerper && backend != ScrapeBackendBrowser {
		return Config{}, fmt.Errorf("%w: unknown SCRAPE_BACKEND %q (use %s or %s)",
			entity.ErrConfiguration, backend, ScrapeBackendSerper, ScrapeBackendBrowser)
	}

	return Config{
		Provider:     provider,
		APIKey:       apiKey,
		Model:        env.GetWithDefault("MODEL_NAME", defaultModels[provider]),
		BaseURL:      env.Get("MODEL_BASE_URL"),
		Temperature:  float32(env.GetFloat("MODEL_TEMPERATURE", 0.1)),
		MaxTokens:    env.GetInt("MODEL_MAX_TOKENS", 2048),
		ModelTimeout: env.GetDuration("MODEL_TIMEOUT", 30*time.Second),
		VerifyModel:  env.GetBool("MODEL_VERIFY", false),

		SerperAPIKey:  env.Get("SERPER_API_KEY"),
		SearchTimeout: env.GetDuration("SEARCH_TIMEOUT", 15*time.Second),
		ScrapeTimeout: env.GetDuration("SCRAPE_TIMEOUT", 30*time.Second),
		SearchDelay:   env.GetDuration("SEARCH_DELAY", 500*time.Millisecond),
		ScrapeBackend: backend,

		MaxRPM:  env.GetInt("MAX_RPM", 10),
		Verbose: env.GetBool("VERBOSE", true),
		LogDir:  env.GetWithDefault("LOG_DIR", "log"),
	}, nil
}
