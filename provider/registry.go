package provider

import (
	"fmt"
	"sync"
)

// Factory constructs a concrete Provider for a resolved configuration. The
// adapter wiring (which SDK serves which Kind) is injected by the caller so
// this package stays free of vendor SDK imports.
type Factory func(cfg Config, modelID string) (Provider, error)

// RegistryOptions configure a Registry.
type RegistryOptions struct {
	// Configs seeds the provider catalog. Defaults to DefaultConfigs.
	Configs map[string]Config
	// DefaultProvider is the provider used for new sessions.
	DefaultProvider string
	// DefaultModel is the model used for new sessions. Empty selects the
	// provider's DefaultModel.
	DefaultModel string
}

// Registry holds provider configurations and resolves them into open-stream
// capabilities. Safe for concurrent use.
type Registry struct {
	mu              sync.RWMutex
	configs         map[string]Config
	factory         Factory
	defaultProvider string
	defaultModel    string
}

// NewRegistry creates a registry backed by the given adapter factory.
func NewRegistry(factory Factory, optFns ...func(o *RegistryOptions)) *Registry {
	opts := RegistryOptions{
		Configs:         DefaultConfigs(),
		DefaultProvider: "groq",
	}
	for _, fn := range optFns {
		fn(&opts)
	}

	configs := make(map[string]Config, len(opts.Configs))
	for id, cfg := range opts.Configs {
		configs[id] = cfg
	}

	return &Registry{
		configs:         configs,
		factory:         factory,
		defaultProvider: opts.DefaultProvider,
		defaultModel:    opts.DefaultModel,
	}
}

// Configure upserts a provider configuration.
func (r *Registry) Configure(cfg Config) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.configs[cfg.ID] = cfg
}

// Config returns the configuration for a provider id.
func (r *Registry) Config(id string) (Config, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	cfg, ok := r.configs[id]
	return cfg, ok
}

// SetDefault selects the provider/model pair used for new sessions. An empty
// model selects the provider's DefaultModel.
func (r *Registry) SetDefault(providerID, modelID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defaultProvider = providerID
	r.defaultModel = modelID
}

// Default returns the provider/model pair used for new sessions.
func (r *Registry) Default() (providerID, modelID string) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	modelID = r.defaultModel
	if modelID == "" {
		if cfg, ok := r.configs[r.defaultProvider]; ok {
			modelID = cfg.DefaultModel
		}
	}
	return r.defaultProvider, modelID
}

// Resolve turns a (provider id, model id) pair into an open-stream
// capability. It fails closed with *ConfigurationError when the provider is
// unknown, disabled or has no credential; no session state is touched by
// then. An empty model id selects the provider's default model.
func (r *Registry) Resolve(providerID, modelID string) (Provider, error) {
	r.mu.RLock()
	cfg, ok := r.configs[providerID]
	factory := r.factory
	r.mu.RUnlock()

	if !ok || !cfg.Usable() {
		return nil, &ConfigurationError{Provider: providerID}
	}
	if modelID == "" {
		modelID = cfg.DefaultModel
	}
	if factory == nil {
		return nil, fmt.Errorf("registry has no adapter factory")
	}

	return factory(cfg, modelID)
}
