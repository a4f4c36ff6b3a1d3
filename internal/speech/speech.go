// Package speech defines the speech-synthesis service contract and an HTTP
// client for a text:synthesize style endpoint.
package speech

import "context"

// MaxInputChars is the per-call input ceiling the synthesis service
// enforces. Callers must chunk text before synthesis.
const MaxInputChars = 4000

// VoiceConfig selects the synthesis voice and delivery parameters.
type VoiceConfig struct {
	LanguageCode string  `json:"languageCode"`
	Name         string  `json:"name"`
	SpeakingRate float64 `json:"speakingRate"`
}

// Synthesizer converts text to audio bytes.
type Synthesizer interface {
	Synthesize(ctx context.Context, text string, voice VoiceConfig) ([]byte, error)
}
