package processor

import (
	"sync"

	"github.com/SaiNageswarS/report-core/schema"
)

// History is the bounded, in-memory record of query exchanges. Appends are
// serialized; once the limit is reached the oldest record is evicted first.
type History struct {
	mu   sync.Mutex
	max  int
	recs []schema.QueryRecord
}

func NewHistory(max int) *History {
	if max <= 0 {
		max = DefaultHistoryLimit
	}
	return &History{max: max}
}

func (h *History) Append(rec schema.QueryRecord) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.recs = append(h.recs, rec)
	if len(h.recs) > h.max {
		h.recs = h.recs[len(h.recs)-h.max:]
	}
}

// Records returns a copy; callers cannot mutate the history through it.
func (h *History) Records() []schema.QueryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]schema.QueryRecord, len(h.recs))
	copy(out, h.recs)
	return out
}

func (h *History) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.recs)
}

func (h *History) Clear() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.recs = nil
}
