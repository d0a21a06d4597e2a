package services

import (
	"fmt"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driven"
	"github.com/custodia-labs/claimant-cli/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keyEmbedProvider = "embedding.provider"
	keyEmbedModel    = "embedding.model"
	keyEmbedBaseURL  = "embedding.base_url"
	keyEmbedAPIKey   = "embedding.api_key"

	keyLLMProvider = "llm.provider"
	keyLLMModel    = "llm.model"
	keyLLMBaseURL  = "llm.base_url"
	keyLLMAPIKey   = "llm.api_key"

	keyChunkSize      = "retrieval.chunk_size"
	keyChunkOverlap   = "retrieval.chunk_overlap"
	keyMinChunkSize   = "retrieval.min_chunk_size"
	keyDetailTopK     = "retrieval.detail_top_k"
	keyOverviewTopK   = "retrieval.overview_top_k"
	keyMergeThreshold = "retrieval.merge_threshold"
	keyDimensions     = "retrieval.dimensions"

	keyDetailTemp        = "generation.detail_temperature"
	keyDetailMaxTokens   = "generation.detail_max_tokens"
	keyOverviewTemp      = "generation.overview_temperature"
	keyOverviewMaxTokens = "generation.overview_max_tokens"
	keyRouterMaxTokens   = "generation.router_max_tokens"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	aiValidator driven.AIConfigValidator
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore, aiValidator driven.AIConfigValidator) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		aiValidator: aiValidator,
	}
}

// Get retrieves current application settings.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Embedding: domain.EmbeddingSettings{
			Provider: s.getProvider(keyEmbedProvider, defaults.Embedding.Provider),
			Model:    s.getString(keyEmbedModel, defaults.Embedding.Model),
			BaseURL:  s.configStore.GetString(keyEmbedBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyEmbedAPIKey),
		},
		LLM: domain.LLMSettings{
			Provider: s.getProvider(keyLLMProvider, defaults.LLM.Provider),
			Model:    s.getString(keyLLMModel, defaults.LLM.Model),
			BaseURL:  s.configStore.GetString(keyLLMBaseURL), // No default - empty is valid for cloud providers
			APIKey:   s.configStore.GetString(keyLLMAPIKey),
		},
		Retrieval: domain.RetrievalSettings{
			ChunkSize:      s.getInt(keyChunkSize, defaults.Retrieval.ChunkSize),
			ChunkOverlap:   s.getInt(keyChunkOverlap, defaults.Retrieval.ChunkOverlap),
			MinChunkSize:   s.getInt(keyMinChunkSize, defaults.Retrieval.MinChunkSize),
			DetailTopK:     s.getInt(keyDetailTopK, defaults.Retrieval.DetailTopK),
			OverviewTopK:   s.getInt(keyOverviewTopK, defaults.Retrieval.OverviewTopK),
			MergeThreshold: s.getInt(keyMergeThreshold, defaults.Retrieval.MergeThreshold),
			Dimensions:     s.getInt(keyDimensions, defaults.Retrieval.Dimensions),
		},
		Generation: domain.GenerationSettings{
			DetailTemperature:   s.getFloat(keyDetailTemp, defaults.Generation.DetailTemperature),
			DetailMaxTokens:     s.getInt(keyDetailMaxTokens, defaults.Generation.DetailMaxTokens),
			OverviewTemperature: s.getFloat(keyOverviewTemp, defaults.Generation.OverviewTemperature),
			OverviewMaxTokens:   s.getInt(keyOverviewMaxTokens, defaults.Generation.OverviewMaxTokens),
			RouterMaxTokens:     s.getInt(keyRouterMaxTokens, defaults.Generation.RouterMaxTokens),
		},
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	// Save embedding settings
	if err := s.configStore.Set(keyEmbedProvider, settings.Embedding.Provider.String()); err != nil {
		return fmt.Errorf("save embedding provider: %w", err)
	}
	if err := s.configStore.Set(keyEmbedModel, settings.Embedding.Model); err != nil {
		return fmt.Errorf("save embedding model: %w", err)
	}
	if err := s.configStore.Set(keyEmbedBaseURL, settings.Embedding.BaseURL); err != nil {
		return fmt.Errorf("save embedding base_url: %w", err)
	}
	if settings.Embedding.APIKey != "" {
		if err := s.configStore.Set(keyEmbedAPIKey, settings.Embedding.APIKey); err != nil {
			return fmt.Errorf("save embedding api_key: %w", err)
		}
	}

	// Save LLM settings
	if err := s.configStore.Set(keyLLMProvider, settings.LLM.Provider.String()); err != nil {
		return fmt.Errorf("save llm provider: %w", err)
	}
	if err := s.configStore.Set(keyLLMModel, settings.LLM.Model); err != nil {
		return fmt.Errorf("save llm model: %w", err)
	}
	if err := s.configStore.Set(keyLLMBaseURL, settings.LLM.BaseURL); err != nil {
		return fmt.Errorf("save llm base_url: %w", err)
	}
	if settings.LLM.APIKey != "" {
		if err := s.configStore.Set(keyLLMAPIKey, settings.LLM.APIKey); err != nil {
			return fmt.Errorf("save llm api_key: %w", err)
		}
	}

	// Save retrieval settings
	retrieval := map[string]int{
		keyChunkSize:      settings.Retrieval.ChunkSize,
		keyChunkOverlap:   settings.Retrieval.ChunkOverlap,
		keyMinChunkSize:   settings.Retrieval.MinChunkSize,
		keyDetailTopK:     settings.Retrieval.DetailTopK,
		keyOverviewTopK:   settings.Retrieval.OverviewTopK,
		keyMergeThreshold: settings.Retrieval.MergeThreshold,
		keyDimensions:     settings.Retrieval.Dimensions,
	}
	for key, value := range retrieval {
		if err := s.configStore.Set(key, value); err != nil {
			return fmt.Errorf("save %s: %w", key, err)
		}
	}

	// Save generation settings
	if err := s.configStore.Set(keyDetailTemp, settings.Generation.DetailTemperature); err != nil {
		return fmt.Errorf("save %s: %w", keyDetailTemp, err)
	}
	if err := s.configStore.Set(keyDetailMaxTokens, settings.Generation.DetailMaxTokens); err != nil {
		return fmt.Errorf("save %s: %w", keyDetailMaxTokens, err)
	}
	if err := s.configStore.Set(keyOverviewTemp, settings.Generation.OverviewTemperature); err != nil {
		return fmt.Errorf("save %s: %w", keyOverviewTemp, err)
	}
	if err := s.configStore.Set(keyOverviewMaxTokens, settings.Generation.OverviewMaxTokens); err != nil {
		return fmt.Errorf("save %s: %w", keyOverviewMaxTokens, err)
	}
	if err := s.configStore.Set(keyRouterMaxTokens, settings.Generation.RouterMaxTokens); err != nil {
		return fmt.Errorf("save %s: %w", keyRouterMaxTokens, err)
	}

	return nil
}

// SetEmbeddingProvider configures the embedding provider.
func (s *SettingsService) SetEmbeddingProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid embedding provider: %s", provider)
	}

	// Validate provider supports embeddings
	valid := false
	for _, p := range domain.AllEmbeddingProviders() {
		if p == provider {
			valid = true
			break
		}
	}
	if !valid {
		return fmt.Errorf("provider %s does not support embeddings", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.Embedding.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.Embedding.Model = model
	} else {
		defaults := domain.DefaultEmbeddingModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.Embedding.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.Embedding.BaseURL == "" {
			settings.Embedding.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.Embedding.BaseURL = ""
	}

	// Set API key
	settings.Embedding.APIKey = apiKey

	// Query and corpus vectors must come from the same model, so keep
	// the recorded dimensions in sync with the model.
	dims := domain.EmbeddingDimensions()
	if d, ok := dims[settings.Embedding.Model]; ok {
		settings.Retrieval.Dimensions = d
	}

	return s.Save(settings)
}

// SetLLMProvider configures the LLM provider.
func (s *SettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	if !provider.IsValid() {
		return fmt.Errorf("invalid LLM provider: %s", provider)
	}

	// Validate API key if required
	if provider.RequiresAPIKey() && apiKey == "" {
		return fmt.Errorf("API key required for %s", provider)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	settings.LLM.Provider = provider

	// Set model - use provided or default
	if model != "" {
		settings.LLM.Model = model
	} else {
		defaults := domain.DefaultLLMModels()
		if defaultModel, ok := defaults[provider]; ok {
			settings.LLM.Model = defaultModel
		}
	}

	// Set base URL based on provider type
	if provider.IsLocal() {
		// Local providers need a base URL
		if settings.LLM.BaseURL == "" {
			settings.LLM.BaseURL = "http://localhost:11434"
		}
	} else {
		// Cloud providers don't need a custom base URL
		settings.LLM.BaseURL = ""
	}

	// Set API key
	settings.LLM.APIKey = apiKey

	return s.Save(settings)
}

// SetRetrieval updates segmentation and retrieval settings.
func (s *SettingsService) SetRetrieval(retrieval domain.RetrievalSettings) error {
	if retrieval.ChunkSize <= 0 {
		return fmt.Errorf("chunk size must be positive, got %d", retrieval.ChunkSize)
	}
	if retrieval.ChunkOverlap < 0 || retrieval.ChunkOverlap >= retrieval.ChunkSize {
		return fmt.Errorf("chunk overlap must be in [0, chunk size), got %d", retrieval.ChunkOverlap)
	}
	if retrieval.MinChunkSize < 0 {
		return fmt.Errorf("min chunk size must not be negative, got %d", retrieval.MinChunkSize)
	}
	if retrieval.DetailTopK <= 0 || retrieval.OverviewTopK <= 0 {
		return fmt.Errorf("top-k values must be positive, got detail=%d overview=%d",
			retrieval.DetailTopK, retrieval.OverviewTopK)
	}
	if retrieval.MergeThreshold < 1 {
		return fmt.Errorf("merge threshold must be at least 1, got %d", retrieval.MergeThreshold)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}

	if retrieval.Dimensions == 0 {
		retrieval.Dimensions = settings.Retrieval.Dimensions
	}
	settings.Retrieval = retrieval

	return s.Save(settings)
}

// Validate checks if current settings allow indexing and asking.
// Both pipelines need an embedding provider and an LLM provider.
func (s *SettingsService) Validate() error {
	settings, err := s.Get()
	if err != nil {
		return err
	}

	if !settings.Embedding.IsConfigured() {
		return fmt.Errorf("%w: embedding provider is not configured", domain.ErrNotConfigured)
	}
	if !settings.LLM.IsConfigured() {
		return fmt.Errorf("%w: LLM provider is not configured", domain.ErrNotConfigured)
	}

	return nil
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// ValidateEmbeddingConfig validates the current embedding configuration by pinging the provider.
func (s *SettingsService) ValidateEmbeddingConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateEmbedding(&settings.Embedding)
}

// ValidateLLMConfig validates the current LLM configuration by pinging the provider.
func (s *SettingsService) ValidateLLMConfig() error {
	if s.aiValidator == nil {
		return nil
	}
	settings, err := s.Get()
	if err != nil {
		return err
	}
	return s.aiValidator.ValidateLLM(&settings.LLM)
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val == 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getFloat(key string, defaultVal float64) float64 {
	if _, exists := s.configStore.Get(key); !exists {
		return defaultVal
	}
	return s.configStore.GetFloat(key)
}

func (s *SettingsService) getProvider(key string, defaultVal domain.AIProvider) domain.AIProvider {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	provider := domain.AIProvider(val)
	if !provider.IsValid() {
		return defaultVal
	}
	return provider
}
