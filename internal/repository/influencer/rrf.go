package influencer

import (
	"sort"

	"github.com/creatorlens/creatorlens/internal/db"
)

// rrfK is the Reciprocal Rank Fusion constant (standard value from Cormack et al. 2009).
const rrfK = 60

// fuseRRF merges KNN and BM25 result lists via Reciprocal Rank Fusion.
// score(d) = sum of 1/(k + rank_i(d)) for each ranking where d appears.
// When a document appears in both lists, the KNN entry is kept (its fields
// are a superset of the BM25 entry's).
func fuseRRF(knn, bm25 []db.SearchEntry) []db.SearchEntry {
	type scored struct {
		entry db.SearchEntry
		score float64
	}

	merged := make(map[string]*scored)

	for rank, e := range knn {
		s := 1.0 / float64(rrfK+rank+1)
		merged[e.Key] = &scored{entry: e, score: s}
	}

	for rank, e := range bm25 {
		s := 1.0 / float64(rrfK+rank+1)
		if existing, ok := merged[e.Key]; ok {
			existing.score += s
		} else {
			merged[e.Key] = &scored{entry: e, score: s}
		}
	}

	results := make([]db.SearchEntry, 0, len(merged))
	for _, s := range merged {
		e := s.entry
		e.Score = s.score
		results = append(results, e)
	}

	// Descending fused score, key ascending for a stable order on ties.
	sort.Slice(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		return results[i].Key < results[j].Key
	})

	return results
}
