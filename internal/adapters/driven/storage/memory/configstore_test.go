package memory

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfigStore(t *testing.T) {
	store := NewConfigStore()

	require.NotNil(t, store)
	assert.NotNil(t, store.values)
}

func TestConfigStore_Set_Success(t *testing.T) {
	store := NewConfigStore()

	err := store.Set("llm.provider", "ollama")
	require.NoError(t, err)

	val, ok := store.Get("llm.provider")
	assert.True(t, ok)
	assert.Equal(t, "ollama", val)
}

func TestConfigStore_Set_Update(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("llm.model", "llama3.2"))
	require.NoError(t, store.Set("llm.model", "gpt-4o-mini"))

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.Equal(t, "gpt-4o-mini", val)
}

func TestConfigStore_Set_MixedTypes(t *testing.T) {
	store := NewConfigStore()

	settings := map[string]any{
		"embedding.provider":            "openai",
		"retrieval.chunk_size":          400,
		"tui.verbose":                   true,
		"generation.detail_temperature": 0.1,
	}

	for k, v := range settings {
		require.NoError(t, store.Set(k, v))
	}

	for k, expected := range settings {
		val, ok := store.Get(k)
		assert.True(t, ok)
		assert.Equal(t, expected, val)
	}
}

func TestConfigStore_Set_NilValue(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Set("embedding.api_key", nil))

	val, ok := store.Get("embedding.api_key")
	assert.True(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_Get_NotFound(t *testing.T) {
	store := NewConfigStore()

	val, ok := store.Get("retrieval.merge_threshold")
	assert.False(t, ok)
	assert.Nil(t, val)
}

func TestConfigStore_GetString(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("embedding.model", "text-embedding-3-small")
	_ = store.Set("retrieval.detail_top_k", 6)

	assert.Equal(t, "text-embedding-3-small", store.GetString("embedding.model"))
	assert.Equal(t, "", store.GetString("missing"))
	// Wrong type reads as the zero value.
	assert.Equal(t, "", store.GetString("retrieval.detail_top_k"))
}

func TestConfigStore_GetInt(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("retrieval.chunk_size", 400)
	_ = store.Set("retrieval.chunk_overlap", int64(50))
	_ = store.Set("retrieval.min_chunk_size", float64(200.7))
	_ = store.Set("llm.provider", "anthropic")

	assert.Equal(t, 400, store.GetInt("retrieval.chunk_size"))
	assert.Equal(t, 50, store.GetInt("retrieval.chunk_overlap"))
	// TOML round-trips may surface numbers as floats; truncation applies.
	assert.Equal(t, 200, store.GetInt("retrieval.min_chunk_size"))
	assert.Equal(t, 0, store.GetInt("llm.provider"))
	assert.Equal(t, 0, store.GetInt("missing"))
}

func TestConfigStore_GetFloat(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("generation.detail_temperature", 0.1)
	_ = store.Set("generation.detail_max_tokens", 500)
	_ = store.Set("llm.model", "llama3.2")

	assert.InDelta(t, 0.1, store.GetFloat("generation.detail_temperature"), 1e-9)
	assert.InDelta(t, 500.0, store.GetFloat("generation.detail_max_tokens"), 1e-9)
	assert.Zero(t, store.GetFloat("llm.model"))
	assert.Zero(t, store.GetFloat("missing"))
}

func TestConfigStore_GetBool(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("tui.verbose", true)
	_ = store.Set("tui.alt_screen", false)
	_ = store.Set("llm.provider", "true")

	assert.True(t, store.GetBool("tui.verbose"))
	assert.False(t, store.GetBool("tui.alt_screen"))
	// A string "true" is not a bool.
	assert.False(t, store.GetBool("llm.provider"))
	assert.False(t, store.GetBool("missing"))
}

func TestConfigStore_GetStringSlice(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("claim.parties", []string{"Sarah Mitchell", "David Chen"})
	_ = store.Set("claim.pages", []any{"page_1", "page_2", 3})
	_ = store.Set("llm.model", "llama3.2")

	assert.Equal(t, []string{"Sarah Mitchell", "David Chen"}, store.GetStringSlice("claim.parties"))
	// Non-string entries in an any slice are skipped.
	assert.Equal(t, []string{"page_1", "page_2"}, store.GetStringSlice("claim.pages"))
	assert.Nil(t, store.GetStringSlice("llm.model"))
	assert.Nil(t, store.GetStringSlice("missing"))
}

func TestConfigStore_SaveAndLoad_NoOp(t *testing.T) {
	store := NewConfigStore()

	require.NoError(t, store.Save())
	require.NoError(t, store.Load())

	// Values survive both no-ops.
	_ = store.Set("llm.provider", "ollama")
	require.NoError(t, store.Save())
	assert.Equal(t, "ollama", store.GetString("llm.provider"))
}

func TestConfigStore_Path(t *testing.T) {
	store := NewConfigStore()

	assert.Equal(t, ":memory:", store.Path())
}

func TestConfigStore_MultipleInstances(t *testing.T) {
	store1 := NewConfigStore()
	store2 := NewConfigStore()

	_ = store1.Set("llm.provider", "ollama")
	_ = store2.Set("llm.provider", "openai")

	assert.Equal(t, "ollama", store1.GetString("llm.provider"))
	assert.Equal(t, "openai", store2.GetString("llm.provider"))

	_, ok := store1.Get("embedding.provider")
	assert.False(t, ok)
}

func TestConfigStore_Concurrency_SetAndGet(t *testing.T) {
	store := NewConfigStore()

	var wg sync.WaitGroup
	const numGoroutines = 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			key := fmt.Sprintf("retrieval.worker_%d", id)
			_ = store.Set(key, id)
		}(i)
	}
	wg.Wait()

	for i := 0; i < numGoroutines; i++ {
		val, ok := store.Get(fmt.Sprintf("retrieval.worker_%d", i))
		assert.True(t, ok)
		assert.Equal(t, i, val)
	}
}

func TestConfigStore_Concurrency_ReadWriteMix(t *testing.T) {
	store := NewConfigStore()
	for i := 0; i < 10; i++ {
		_ = store.Set(fmt.Sprintf("key_%d", i), i)
	}

	var wg sync.WaitGroup
	const numReaders, numWriters = 50, 25

	wg.Add(numReaders)
	for i := 0; i < numReaders; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = store.GetInt(fmt.Sprintf("key_%d", j))
			}
		}()
	}

	wg.Add(numWriters)
	for i := 0; i < numWriters; i++ {
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_ = store.Set(fmt.Sprintf("key_%d", j), id*10+j)
			}
		}(i)
	}

	wg.Wait()

	for i := 0; i < 10; i++ {
		_, ok := store.Get(fmt.Sprintf("key_%d", i))
		assert.True(t, ok)
	}
}

func TestConfigStore_Concurrency_UpdateSameKey(t *testing.T) {
	store := NewConfigStore()
	_ = store.Set("llm.model", "initial")

	var wg sync.WaitGroup
	const numGoroutines = 50

	wg.Add(numGoroutines)
	for i := 0; i < numGoroutines; i++ {
		go func(id int) {
			defer wg.Done()
			_ = store.Set("llm.model", fmt.Sprintf("model-%d", id))
		}(i)
	}
	wg.Wait()

	val, ok := store.Get("llm.model")
	assert.True(t, ok)
	assert.NotEqual(t, "initial", val)
}
