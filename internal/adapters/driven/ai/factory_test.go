package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/claimant-cli/internal/core/domain"
)

func TestCreateEmbeddingService(t *testing.T) {
	tests := []struct {
		name        string
		settings    *domain.EmbeddingSettings
		wantNil     bool
		wantErr     bool
		errContains string
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.EmbeddingSettings{},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "nomic-embed-text",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "sk-claimant-test",
				Model:    "text-embedding-3-small",
			},
		},
		{
			name: "anthropic provider returns error",
			settings: &domain.EmbeddingSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "sk-claimant-test",
			},
			wantNil:     true,
			wantErr:     true,
			errContains: "anthropic does not support embeddings",
		},
		{
			// An unknown provider fails IsConfigured, so it reads as
			// unconfigured rather than erroring.
			name: "unknown provider returns nil",
			settings: &domain.EmbeddingSettings{
				Provider: "unknown",
				APIKey:   "sk-claimant-test",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateEmbeddingService(tt.settings)
			if svc != nil {
				defer svc.Close()
			}

			if tt.wantErr {
				require.Error(t, err)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
			} else {
				require.NoError(t, err)
			}

			if tt.wantNil {
				assert.Nil(t, svc)
			} else {
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestCreateLLMService(t *testing.T) {
	tests := []struct {
		name     string
		settings *domain.LLMSettings
		wantNil  bool
	}{
		{
			name:     "nil settings returns nil",
			settings: nil,
			wantNil:  true,
		},
		{
			name:     "unconfigured settings returns nil",
			settings: &domain.LLMSettings{},
			wantNil:  true,
		},
		{
			name: "ollama provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOllama,
				BaseURL:  "http://localhost:11434",
				Model:    "llama3.2",
			},
		},
		{
			name: "openai provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderOpenAI,
				APIKey:   "sk-claimant-test",
				Model:    "gpt-4o-mini",
			},
		},
		{
			name: "anthropic provider creates service",
			settings: &domain.LLMSettings{
				Provider: domain.AIProviderAnthropic,
				APIKey:   "sk-claimant-test",
				Model:    "claude-3-5-sonnet-latest",
			},
		},
		{
			name: "unknown provider returns nil",
			settings: &domain.LLMSettings{
				Provider: "unknown",
				APIKey:   "sk-claimant-test",
			},
			wantNil: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, err := CreateLLMService(tt.settings)
			if svc != nil {
				defer svc.Close()
			}

			require.NoError(t, err)
			if tt.wantNil {
				assert.Nil(t, svc)
			} else {
				assert.NotNil(t, svc)
			}
		})
	}
}

func TestValidateEmbeddingConfig(t *testing.T) {
	assert.NoError(t, ValidateEmbeddingConfig(nil))
	assert.NoError(t, ValidateEmbeddingConfig(&domain.EmbeddingSettings{}))

	err := ValidateEmbeddingConfig(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-claimant-test",
	})
	assert.Error(t, err)
}

func TestValidateLLMConfig_NotConfigured(t *testing.T) {
	assert.NoError(t, ValidateLLMConfig(nil))
	assert.NoError(t, ValidateLLMConfig(&domain.LLMSettings{}))
	assert.NoError(t, ValidateLLMConfig(&domain.LLMSettings{
		Provider: "unknown",
		APIKey:   "sk-claimant-test",
	}))
}

func TestCreateAndValidateEmbeddingService(t *testing.T) {
	svc, err := CreateAndValidateEmbeddingService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateAndValidateEmbeddingService(&domain.EmbeddingSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-claimant-test",
	})
	assert.Error(t, err)
	assert.Nil(t, svc)
}

func TestCreateAndValidateLLMService(t *testing.T) {
	svc, err := CreateAndValidateLLMService(nil)
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateAndValidateLLMService(&domain.LLMSettings{})
	require.NoError(t, err)
	assert.Nil(t, svc)

	svc, err = CreateAndValidateLLMService(&domain.LLMSettings{
		Provider: "unknown",
		APIKey:   "sk-claimant-test",
	})
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestCreateOllamaEmbedding(t *testing.T) {
	for _, model := range []string{"nomic-embed-text", "custom-model-unknown"} {
		svc := createOllamaEmbedding(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    model,
		})
		require.NotNil(t, svc, "model %s", model)
		svc.Close()
	}
}

func TestCreateOpenAIEmbedding(t *testing.T) {
	svc, err := createOpenAIEmbedding(&domain.EmbeddingSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-claimant-test",
		BaseURL:  "https://api.openai.com/v1",
		Model:    "text-embedding-3-small",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateOpenAILLM(t *testing.T) {
	svc, err := createOpenAILLM(&domain.LLMSettings{
		Provider: domain.AIProviderOpenAI,
		APIKey:   "sk-claimant-test",
		BaseURL:  "https://api.openai.com/v1",
		Model:    "gpt-4o-mini",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateAnthropicLLM(t *testing.T) {
	svc, err := createAnthropicLLM(&domain.LLMSettings{
		Provider: domain.AIProviderAnthropic,
		APIKey:   "sk-claimant-test",
		BaseURL:  "https://api.anthropic.com",
		Model:    "claude-3-5-sonnet-latest",
	})
	require.NoError(t, err)
	require.NotNil(t, svc)
	svc.Close()
}

func TestCreateOllamaLLM(t *testing.T) {
	svc := createOllamaLLM(&domain.LLMSettings{
		Provider: domain.AIProviderOllama,
		BaseURL:  "http://localhost:11434",
		Model:    "llama3.2",
	})
	require.NotNil(t, svc)
	svc.Close()
}

func TestInitResult_Close(t *testing.T) {
	// Empty result must not panic.
	(&InitResult{}).Close()

	result := &InitResult{
		EmbeddingService: createOllamaEmbedding(&domain.EmbeddingSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "nomic-embed-text",
		}),
		LLMService: createOllamaLLM(&domain.LLMSettings{
			Provider: domain.AIProviderOllama,
			BaseURL:  "http://localhost:11434",
			Model:    "llama3.2",
		}),
	}
	result.Close()
}
