package domain

const unknownDescription = "Unknown"

// AIProvider identifies an AI service provider for embeddings or LLM.
type AIProvider string

// Available AI providers.
const (
	// AIProviderOllama is local Ollama instance.
	AIProviderOllama AIProvider = "ollama"

	// AIProviderOpenAI is OpenAI cloud API.
	AIProviderOpenAI AIProvider = "openai"

	// AIProviderAnthropic is Anthropic cloud API.
	AIProviderAnthropic AIProvider = "anthropic"
)

// IsValid returns true if the AI provider is recognised.
func (p AIProvider) IsValid() bool {
	switch p {
	case AIProviderOllama, AIProviderOpenAI, AIProviderAnthropic:
		return true
	default:
		return false
	}
}

// RequiresAPIKey returns true if this provider needs an API key.
func (p AIProvider) RequiresAPIKey() bool {
	return p == AIProviderOpenAI || p == AIProviderAnthropic
}

// IsLocal returns true if this provider runs locally.
func (p AIProvider) IsLocal() bool {
	return p == AIProviderOllama
}

// String returns the string representation.
func (p AIProvider) String() string {
	return string(p)
}

// Description returns a human-readable description of the provider.
func (p AIProvider) Description() string {
	switch p {
	case AIProviderOllama:
		return "Ollama (local)"
	case AIProviderOpenAI:
		return "OpenAI (cloud)"
	case AIProviderAnthropic:
		return "Anthropic (cloud)"
	default:
		return unknownDescription
	}
}

// EmbeddingSettings holds embedding provider configuration.
type EmbeddingSettings struct {
	// Provider is the embedding service provider.
	Provider AIProvider

	// Model is the embedding model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI).
	APIKey string
}

// IsConfigured returns true if the embedding provider is set up.
func (e EmbeddingSettings) IsConfigured() bool {
	if !e.Provider.IsValid() {
		return false
	}
	if e.Provider.RequiresAPIKey() && e.APIKey == "" {
		return false
	}
	return true
}

// LLMSettings holds LLM provider configuration.
type LLMSettings struct {
	// Provider is the LLM service provider.
	Provider AIProvider

	// Model is the LLM model name.
	Model string

	// BaseURL is the API endpoint (for Ollama).
	BaseURL string

	// APIKey is the API key (for OpenAI/Anthropic).
	APIKey string
}

// IsConfigured returns true if the LLM provider is set up.
func (l LLMSettings) IsConfigured() bool {
	if !l.Provider.IsValid() {
		return false
	}
	if l.Provider.RequiresAPIKey() && l.APIKey == "" {
		return false
	}
	return true
}

// RetrievalSettings holds segmentation and retrieval configuration.
// None of these affect correctness invariants beyond the bounds stated
// on each field; all are plain numeric settings with documented defaults.
type RetrievalSettings struct {
	// ChunkSize is the target chunk length in characters. Chunks close at
	// the last whole sentence that fits.
	ChunkSize int

	// ChunkOverlap is the maximum combined length of the trailing
	// sentences repeated at the start of the next chunk. Must be smaller
	// than ChunkSize.
	ChunkOverlap int

	// MinChunkSize is the floor below which a trailing chunk is merged
	// back into its predecessor.
	MinChunkSize int

	// DetailTopK is the number of chunks retrieved by the detail engine.
	DetailTopK int

	// OverviewTopK is the total number of summaries included by the
	// overview engine, counting the unconditional overview-type floor.
	OverviewTopK int

	// MergeThreshold is the number of retrieved sibling chunks at which
	// their full parent page is appended to the context. Values below 2
	// degenerate into always merging.
	MergeThreshold int

	// Dimensions is the expected embedding vector size. Informational:
	// query and corpus vectors must come from the same model.
	Dimensions int
}

// GenerationSettings holds per-engine generation configuration.
type GenerationSettings struct {
	// DetailTemperature is the sampling temperature for detail answers.
	// Kept low for factual consistency.
	DetailTemperature float64

	// DetailMaxTokens is the output budget for detail answers.
	DetailMaxTokens int

	// OverviewTemperature is the sampling temperature for overview
	// answers. Higher than detail to allow synthesis latitude.
	OverviewTemperature float64

	// OverviewMaxTokens is the output budget for overview answers.
	OverviewMaxTokens int

	// RouterMaxTokens bounds the router's one-word classification reply.
	RouterMaxTokens int
}

// AppSettings holds all application settings.
type AppSettings struct {
	// Embedding holds embedding provider settings.
	Embedding EmbeddingSettings

	// LLM holds LLM provider settings.
	LLM LLMSettings

	// Retrieval holds segmentation and retrieval settings.
	Retrieval RetrievalSettings

	// Generation holds per-engine generation settings.
	Generation GenerationSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// AI providers are left unconfigured; users set them up via the
// settings wizard before indexing or asking.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		// Embedding is left unconfigured - user must set up via settings wizard
		Embedding: EmbeddingSettings{},
		// LLM is left unconfigured - user must set up via settings wizard
		LLM:        LLMSettings{},
		Retrieval:  DefaultRetrievalSettings(),
		Generation: DefaultGenerationSettings(),
	}
}

// DefaultRetrievalSettings returns the documented retrieval defaults.
func DefaultRetrievalSettings() RetrievalSettings {
	return RetrievalSettings{
		ChunkSize:      400,
		ChunkOverlap:   50,
		MinChunkSize:   200,
		DetailTopK:     6,
		OverviewTopK:   6,
		MergeThreshold: 3,
		Dimensions:     1536, // text-embedding-3-small
	}
}

// DefaultGenerationSettings returns the documented generation defaults.
func DefaultGenerationSettings() GenerationSettings {
	return GenerationSettings{
		DetailTemperature:   0.1,
		DetailMaxTokens:     500,
		OverviewTemperature: 0.3,
		OverviewMaxTokens:   700,
		RouterMaxTokens:     10,
	}
}

// AllEmbeddingProviders returns providers that support embeddings.
func AllEmbeddingProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
	}
}

// AllLLMProviders returns providers that support LLM operations.
func AllLLMProviders() []AIProvider {
	return []AIProvider{
		AIProviderOllama,
		AIProviderOpenAI,
		AIProviderAnthropic,
	}
}

// DefaultEmbeddingModels returns default models for each embedding provider.
func DefaultEmbeddingModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama: "nomic-embed-text",
		AIProviderOpenAI: "text-embedding-3-small",
	}
}

// DefaultLLMModels returns default models for each LLM provider.
func DefaultLLMModels() map[AIProvider]string {
	return map[AIProvider]string{
		AIProviderOllama:    "llama3.2",
		AIProviderOpenAI:    "gpt-4o-mini",
		AIProviderAnthropic: "claude-3-5-sonnet-latest",
	}
}

// EmbeddingDimensions returns the vector dimensions for known models.
func EmbeddingDimensions() map[string]int {
	return map[string]int{
		// Ollama models
		"nomic-embed-text":  768,
		"mxbai-embed-large": 1024,
		"all-minilm":        384,
		// OpenAI models
		"text-embedding-3-small": 1536,
		"text-embedding-3-large": 3072,
		"text-embedding-ada-002": 1536,
	}
}
