package internal

import (
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Auth modes.
const (
	AuthModeDisabled = "disabled"
	AuthModeToken    = "token"
)

// Config represents the application configuration.
type Config struct {
	App        ApplicationConfig `yaml:"app"`
	Store      StoreConfig       `yaml:"store"`
	Audio      AudioConfig       `yaml:"audio"`
	Completion CompletionConfig  `yaml:"completion"`
	Speech     SpeechConfig      `yaml:"speech"`
	Auth       AuthConfig        `yaml:"auth"`
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	if err := c.App.Validate(); err != nil {
		return err
	}
	if err := c.Store.Validate(); err != nil {
		return err
	}
	if err := c.Audio.Validate(); err != nil {
		return err
	}
	if err := c.Completion.Validate(); err != nil {
		return err
	}
	if err := c.Speech.Validate(); err != nil {
		return err
	}
	return c.Auth.Validate()
}

// ApplicationConfig holds application-level configuration.
type ApplicationConfig struct {
	LogLevel slog.Level `yaml:"log_level"`
	HTTP     HTTPConfig `yaml:"http"`
}

// Validate validates the application configuration.
func (c *ApplicationConfig) Validate() error {
	return c.HTTP.Validate()
}

// HTTPConfig holds HTTP server configuration.
type HTTPConfig struct {
	Port int `yaml:"port"`
}

// Address returns the HTTP server address.
func (c *HTTPConfig) Address() string {
	return fmt.Sprintf(":%d", c.Port)
}

// Validate validates the HTTP configuration.
func (c *HTTPConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Port, validation.Required, validation.Min(1), validation.Max(65535)),
	)
}

// StoreConfig holds the SQLite document store path.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Validate validates the store configuration.
func (c *StoreConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.Path, validation.Required),
	)
}

// AudioConfig holds the audio artifact cache settings.
type AudioConfig struct {
	CachePath     string        `yaml:"cache_path"`
	SigningSecret string        `yaml:"signing_secret"`
	URLTTL        time.Duration `yaml:"url_ttl"`
}

// Validate validates the audio configuration.
func (c *AudioConfig) Validate() error {
	if c.URLTTL == 0 {
		c.URLTTL = 24 * time.Hour
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.CachePath, validation.Required),
		validation.Field(&c.SigningSecret, validation.Required),
	)
}

// CompletionConfig holds the language-model completion endpoint settings.
type CompletionConfig struct {
	BaseURL string `yaml:"base_url"`
	APIKey  string `yaml:"api_key"`
	Model   string `yaml:"model"`
}

// Validate validates the completion configuration.
func (c *CompletionConfig) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.Model, validation.Required),
	)
}

// SpeechConfig holds the speech synthesis endpoint and voice settings.
type SpeechConfig struct {
	BaseURL      string  `yaml:"base_url"`
	APIKey       string  `yaml:"api_key"`
	Voice        string  `yaml:"voice"`
	LanguageCode string  `yaml:"language_code"`
	SpeakingRate float64 `yaml:"speaking_rate"`
}

// Validate validates the speech configuration.
func (c *SpeechConfig) Validate() error {
	if c.LanguageCode == "" {
		c.LanguageCode = "en-US"
	}
	if c.SpeakingRate == 0 {
		c.SpeakingRate = 0.9
	}
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required),
		validation.Field(&c.APIKey, validation.Required),
		validation.Field(&c.Voice, validation.Required),
	)
}

// AuthConfig holds authentication configuration.
//
// Mode controls how authentication is enforced:
//   - "disabled" (default): no authentication required, suitable for local dev.
//   - "token": Bearer token authentication; Token must be non-empty.
type AuthConfig struct {
	Mode  string `yaml:"mode"`
	Token string `yaml:"token"`
}

// Validate validates the auth configuration.
func (c *AuthConfig) Validate() error {
	// Normalise empty mode to "disabled" for backward compatibility.
	if c.Mode == "" {
		c.Mode = AuthModeDisabled
	}
	if err := validation.ValidateStruct(c,
		validation.Field(&c.Mode, validation.Required, validation.In(AuthModeDisabled, AuthModeToken)),
	); err != nil {
		return err
	}
	if c.Mode == AuthModeToken && c.Token == "" {
		return fmt.Errorf("auth: mode is %q but token is empty", AuthModeToken)
	}
	return nil
}

// AuthEnabled returns true when authentication is active.
func (c *AuthConfig) AuthEnabled() bool {
	return c.Mode == AuthModeToken
}

// NewDefaultConfig returns a new Config with sensible default values.
func NewDefaultConfig() *Config {
	return &Config{
		App: ApplicationConfig{
			LogLevel: slog.LevelInfo,
			HTTP: HTTPConfig{
				Port: 8080,
			},
		},
		Store: StoreConfig{
			Path: "./berea.db",
		},
		Audio: AudioConfig{
			CachePath: "./audio-cache",
			URLTTL:    24 * time.Hour,
		},
		Completion: CompletionConfig{
			BaseURL: "https://api.openai.com/v1",
			Model:   "gpt-4o",
		},
		Speech: SpeechConfig{
			BaseURL:      "https://texttospeech.googleapis.com",
			Voice:        "en-US-Neural2-D",
			LanguageCode: "en-US",
			SpeakingRate: 0.9,
		},
		Auth: AuthConfig{
			Mode: AuthModeDisabled,
		},
	}
}
