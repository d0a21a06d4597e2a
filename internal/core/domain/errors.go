package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates an entity already exists.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrInvalidPageType indicates a page type outside Overview/Details.
	ErrInvalidPageType = errors.New("invalid page type")

	// ErrEmptyCorpus indicates the claim has not been indexed yet.
	// Ask paths answer with a fixed not-found message instead of
	// surfacing this to callers.
	ErrEmptyCorpus = errors.New("empty corpus")

	// ErrNotConfigured indicates required provider configuration is
	// missing. Fatal at startup, not recoverable per query.
	ErrNotConfigured = errors.New("not configured")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	// Routing, answer generation and summary indexing need it.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrEmbeddingUnavailable indicates the embedding service is not
	// configured. Indexing and similarity retrieval need it.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrStoreUnavailable indicates the claim store is not configured.
	ErrStoreUnavailable = errors.New("claim store unavailable")
)
