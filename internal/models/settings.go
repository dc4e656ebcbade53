package models

// Built-in generation defaults, used when no config file overrides them.
const (
	DefaultModel       = "gpt-4o-mini"
	DefaultTemperature = 0.7
	DefaultTopP        = 1.0
	DefaultMaxTokens   = 1024
	DefaultDirections  = "You are a helpful assistant."
)

// ChatSettings holds the generation parameters attached to a single chat.
// Each chat owns an independent value; see Copy.
type ChatSettings struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	PresencePenalty  float64 `json:"presencePenalty"`
	FrequencyPenalty float64 `json:"frequencyPenalty"`
	MaxTokens        int     `json:"maxTokens"`
	Model            string  `json:"model"`
	APIKey           *string `json:"apiKey"`
	Directions       *string `json:"directions"`
	Format           Format  `json:"format"`
}

// DefaultSettings returns the process-wide defaults.
func DefaultSettings() ChatSettings {
	return ChatSettings{
		Temperature: DefaultTemperature,
		TopP:        DefaultTopP,
		MaxTokens:   DefaultMaxTokens,
		Model:       DefaultModel,
		Directions:  StrPtr(DefaultDirections),
		Format:      FormatMarkdown,
	}
}

// Copy returns a deep value copy. Pointer fields are re-allocated so the
// copy never aliases the original.
func (s ChatSettings) Copy() ChatSettings {
	out := s
	if s.APIKey != nil {
		out.APIKey = StrPtr(*s.APIKey)
	}
	if s.Directions != nil {
		out.Directions = StrPtr(*s.Directions)
	}
	return out
}
