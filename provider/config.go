package provider

// Kind selects which adapter serves a configured provider.
type Kind string

const (
	// KindOpenAICompat covers every vendor speaking the OpenAI Chat
	// Completions protocol, selected via BaseURL.
	KindOpenAICompat Kind = "openai-compat"
	// KindAnthropic is the vendor-native Anthropic Messages API.
	KindAnthropic Kind = "anthropic"
	// KindMock is the keyless demo generator.
	KindMock Kind = "mock"
)

// Config describes one configured provider. Read by the engine, never
// mutated by it. APIKey is a secret and must never appear in logs or
// user-visible error strings.
type Config struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	Kind         Kind     `json:"kind"`
	APIKey       string   `json:"-"`
	Enabled      bool     `json:"enabled"`
	Models       []string `json:"models"`
	DefaultModel string   `json:"default_model"`
	BaseURL      string   `json:"base_url,omitempty"`
}

// Usable reports whether the provider can serve a generation: enabled with a
// non-empty credential (the mock kind needs none).
func (c Config) Usable() bool {
	if !c.Enabled {
		return false
	}
	return c.Kind == KindMock || c.APIKey != ""
}

// DefaultConfigs returns the built-in provider catalog. All credentials are
// empty; callers enable providers by supplying keys via Registry.Configure.
func DefaultConfigs() map[string]Config {
	return map[string]Config{
		"groq": {
			ID:           "groq",
			Name:         "Groq",
			Kind:         KindOpenAICompat,
			Enabled:      true,
			Models:       []string{"llama-3.3-70b-versatile", "llama-3.1-70b-versatile", "mixtral-8x7b-32768", "gemma2-9b-it"},
			DefaultModel: "llama-3.3-70b-versatile",
			BaseURL:      "https://api.groq.com/openai/v1",
		},
		"openai": {
			ID:           "openai",
			Name:         "OpenAI",
			Kind:         KindOpenAICompat,
			Enabled:      false,
			Models:       []string{"gpt-4o", "gpt-4o-mini", "gpt-4-turbo"},
			DefaultModel: "gpt-4o-mini",
		},
		"anthropic": {
			ID:           "anthropic",
			Name:         "Anthropic",
			Kind:         KindAnthropic,
			Enabled:      true,
			Models:       []string{"claude-3-5-sonnet-20241022", "claude-3-5-haiku-20241022"},
			DefaultModel: "claude-3-5-sonnet-20241022",
		},
		"mistral": {
			ID:           "mistral",
			Name:         "Mistral",
			Kind:         KindOpenAICompat,
			Enabled:      false,
			Models:       []string{"mistral-large-latest", "mistral-medium-latest", "mistral-small-latest"},
			DefaultModel: "mistral-large-latest",
			BaseURL:      "https://api.mistral.ai/v1",
		},
		"cerebras": {
			ID:           "cerebras",
			Name:         "Cerebras",
			Kind:         KindOpenAICompat,
			Enabled:      false,
			Models:       []string{"llama-3.3-70b"},
			DefaultModel: "llama-3.3-70b",
			BaseURL:      "https://api.cerebras.ai/v1",
		},
		"together": {
			ID:           "together",
			Name:         "Together.ai",
			Kind:         KindOpenAICompat,
			Enabled:      false,
			Models:       []string{"meta-llama/Llama-3.3-70B-Instruct-Turbo", "mistralai/Mixtral-8x22B-Instruct-v0.1"},
			DefaultModel: "meta-llama/Llama-3.3-70B-Instruct-Turbo",
			BaseURL:      "https://api.together.xyz/v1",
		},
	}
}
