package domain

import "errors"

var (
	// ErrNotFound signals a missing resource.
	ErrNotFound = errors.New("not found")
	// ErrInfluencerNotFound signals a missing influencer profile.
	ErrInfluencerNotFound = errors.New("influencer not found")
	// ErrInvalidFilter signals caller-supplied filters that fail validation.
	ErrInvalidFilter = errors.New("invalid filter")
	// ErrInvalidRequest signals malformed search parameters.
	ErrInvalidRequest = errors.New("invalid request")
	// ErrSearchUnavailable signals that the search index cannot be reached.
	// Distinct from an empty result set: this one is retryable.
	ErrSearchUnavailable = errors.New("search index unavailable")
	// ErrEmbeddingProviderError signals an embedding provider failure.
	ErrEmbeddingProviderError = errors.New("embedding provider error")
	// ErrAnalyzerUnavailable signals that no chat-completion provider is configured.
	ErrAnalyzerUnavailable = errors.New("query analyzer unavailable")
)
