package analyze

import (
	"context"

	"github.com/creatorlens/creatorlens/internal/domain/catalog"
)

// CatalogReader supplies the current filter vocabulary.
type CatalogReader interface {
	Get(ctx context.Context) (catalog.Catalog, error)
}

// ChatClient is a chat-completion transport returning raw JSON content.
type ChatClient interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}
