// Package conversation holds the per-conversation refinement state.
package conversation

import (
	"time"

	"github.com/creatorlens/creatorlens/internal/domain/search/filters"
)

// State is what one conversation remembers between turns: the last merged
// filter snapshot, the accumulated query text across turns, and how many
// results the last search produced. Created on the first turn, replaced
// after every successful search, never explicitly deleted (expires with
// process lifetime).
type State struct {
	Filters     filters.Snapshot
	Query       string
	ResultCount int
	UpdatedAt   time.Time
}
