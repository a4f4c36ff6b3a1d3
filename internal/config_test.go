package internal

import (
	"strings"
	"testing"
	"time"
)

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestDefaultConfigRequiresSecrets(t *testing.T) {
	// Defaults carry no API keys or signing secret; a bare default config
	// fails validation until the operator supplies them.
	cfg := NewDefaultConfig()
	if err := cfg.Validate(); err == nil {
		t.Fatal("default config without secrets should fail validation")
	}

	cfg.Audio.SigningSecret = "s3cret"
	cfg.Completion.APIKey = "key"
	cfg.Speech.APIKey = "key"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("completed config should pass: %v", err)
	}
}

func TestAudioConfigDefaultsTTL(t *testing.T) {
	cfg := AudioConfig{CachePath: "./cache", SigningSecret: "s"}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.URLTTL != 24*time.Hour {
		t.Errorf("url ttl = %v, want 24h", cfg.URLTTL)
	}
}

func TestSpeechConfigDefaults(t *testing.T) {
	cfg := SpeechConfig{BaseURL: "https://example.com", APIKey: "k", Voice: "en-US-Neural2-D"}
	if err := cfg.Validate(); err != nil {
		t.Fatal(err)
	}
	if cfg.LanguageCode != "en-US" {
		t.Errorf("language code = %q", cfg.LanguageCode)
	}
	if cfg.SpeakingRate != 0.9 {
		t.Errorf("speaking rate = %v", cfg.SpeakingRate)
	}
}

func TestHTTPConfigAddress(t *testing.T) {
	cfg := HTTPConfig{Port: 8080}
	if got := cfg.Address(); got != ":8080" {
		t.Errorf("address = %q", got)
	}
	bad := HTTPConfig{Port: 0}
	if err := bad.Validate(); err == nil {
		t.Error("port 0 should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Audio.SigningSecret = "s"
	cfg.Completion.APIKey = "k"
	cfg.Speech.APIKey = "k"
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	err := cfg.Validate()
	if err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}
