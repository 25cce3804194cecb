package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/dyike/TickerTalk/consts"
)

// ErrMissingCredential is returned by Validate when a selected provider has no key.
var ErrMissingCredential = errors.New("missing credential")

type Config struct {
	ProjectDir string `json:"project_dir"`
	ResultsDir string `json:"results_dir"`

	LLMProvider string `json:"llm_provider"`
	LLMModel    string `json:"llm_model"`
	BackendURL  string `json:"backend_url"`

	// AI Model API Keys
	GroqAPIKey     string `json:"groq_api_key"`
	OpenAIAPIKey   string `json:"openai_api_key"`
	DeepSeekAPIKey string `json:"deepseek_api_key"`

	MarketDataProvider string        `json:"market_data_provider"`
	HTTPTimeout        time.Duration `json:"http_timeout"`

	// Finnhub API Configuration
	FinnhubAPIKey string `json:"finnhub_api_key"`

	// Longport API Configuration
	LongportAppKey      string `json:"longport_app_key"`
	LongportAppSecret   string `json:"longport_app_secret"`
	LongportAccessToken string `json:"longport_access_token"`

	ServerAddr string `json:"server_addr"`
	Debug      bool   `json:"debug"`

	// Eino Debug configuration
	EinoDebugEnabled bool `json:"eino_debug_enabled"`
	EinoDebugPort    int  `json:"eino_debug_port"`
}

func DefaultConfig() *Config {
	currentDir, _ := os.Getwd()

	cfg := &Config{
		ProjectDir: currentDir,
		ResultsDir: filepath.Join(currentDir, "results"),

		LLMProvider: consts.ProviderGroq,
		LLMModel:    "llama-3.3-70b-versatile",

		MarketDataProvider: consts.MarketDataYahoo,
		HTTPTimeout:        30 * time.Second,

		ServerAddr: ":8501",

		EinoDebugEnabled: false,
		EinoDebugPort:    52538,
	}

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg.loadFromEnv()

	return cfg
}

func (c *Config) loadFromEnv() {
	if val := os.Getenv("PROJECT_DIR"); val != "" {
		c.ProjectDir = val
	}
	if val := os.Getenv("RESULTS_DIR"); val != "" {
		c.ResultsDir = val
	}

	if val := os.Getenv("LLM_PROVIDER"); val != "" {
		c.LLMProvider = strings.ToLower(val)
	}
	if val := os.Getenv("LLM_MODEL"); val != "" {
		c.LLMModel = val
	}
	if val := os.Getenv("BACKEND_URL"); val != "" {
		c.BackendURL = val
	}

	if val := os.Getenv("GROQ_API_KEY"); val != "" {
		c.GroqAPIKey = val
	}
	if val := os.Getenv("OPENAI_API_KEY"); val != "" {
		c.OpenAIAPIKey = val
	}
	if val := os.Getenv("DEEPSEEK_API_KEY"); val != "" {
		c.DeepSeekAPIKey = val
	}

	if val := os.Getenv("MARKET_DATA_PROVIDER"); val != "" {
		c.MarketDataProvider = strings.ToLower(val)
	}
	if val := os.Getenv("HTTP_TIMEOUT"); val != "" {
		if d, err := time.ParseDuration(val); err == nil {
			c.HTTPTimeout = d
		}
	}
	if val := os.Getenv("FINNHUB_API_KEY"); val != "" {
		c.FinnhubAPIKey = val
	}
	if val := os.Getenv("LONGPORT_APP_KEY"); val != "" {
		c.LongportAppKey = val
	}
	if val := os.Getenv("LONGPORT_APP_SECRET"); val != "" {
		c.LongportAppSecret = val
	}
	if val := os.Getenv("LONGPORT_ACCESS_TOKEN"); val != "" {
		c.LongportAccessToken = val
	}

	if val := os.Getenv("SERVER_ADDR"); val != "" {
		c.ServerAddr = val
	}
	if val := os.Getenv("TICKERTALK_DEBUG"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.Debug = enabled
		}
	}

	if val := os.Getenv("EINO_DEBUG_ENABLED"); val != "" {
		if enabled, err := strconv.ParseBool(val); err == nil {
			c.EinoDebugEnabled = enabled
		}
	}
	if val := os.Getenv("EINO_DEBUG_PORT"); val != "" {
		if port, err := strconv.Atoi(val); err == nil {
			c.EinoDebugPort = port
		}
	}
}

// APIKey returns the credential of the selected LLM provider.
func (c *Config) APIKey() string {
	switch c.LLMProvider {
	case consts.ProviderOpenAI:
		return c.OpenAIAPIKey
	case consts.ProviderDeepSeek:
		return c.DeepSeekAPIKey
	default:
		return c.GroqAPIKey
	}
}

// Endpoint is the chat completion base URL in effect.
func (c *Config) Endpoint() string {
	if c.BackendURL != "" {
		return c.BackendURL
	}
	switch c.LLMProvider {
	case consts.ProviderGroq:
		return consts.GroqBaseURL
	case consts.ProviderDeepSeek:
		return consts.DeepSeekBaseURL
	}
	return consts.OpenAIBaseURL
}

// ChartDir is where rendered price charts are written.
func (c *Config) ChartDir() string {
	return filepath.Join(c.ResultsDir, "charts")
}

func (c *Config) Validate() error {
	switch c.LLMProvider {
	case consts.ProviderGroq, consts.ProviderOpenAI, consts.ProviderDeepSeek:
	default:
		return fmt.Errorf("unknown llm provider %q", c.LLMProvider)
	}
	if strings.TrimSpace(c.LLMModel) == "" {
		return errors.New("llm model is required")
	}
	if c.APIKey() == "" {
		return fmt.Errorf("%w: api key for %s", ErrMissingCredential, c.LLMProvider)
	}

	switch c.MarketDataProvider {
	case consts.MarketDataYahoo:
	case consts.MarketDataFinnhub:
		if c.FinnhubAPIKey == "" {
			return fmt.Errorf("%w: FINNHUB_API_KEY", ErrMissingCredential)
		}
	case consts.MarketDataLongport:
		if c.LongportAppKey == "" || c.LongportAppSecret == "" || c.LongportAccessToken == "" {
			return fmt.Errorf("%w: longport app key, secret and access token", ErrMissingCredential)
		}
	default:
		return fmt.Errorf("unknown market data provider %q", c.MarketDataProvider)
	}
	return nil
}

func (c *Config) EnsureDirectories() error {
	dirs := []string{c.ProjectDir, c.ResultsDir, c.ChartDir()}
	for _, dir := range dirs {
		path := strings.TrimSpace(dir)
		if path == "" {
			continue
		}
		if err := os.MkdirAll(path, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", path, err)
		}
	}
	return nil
}
