package styleai

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
)

// HistoryViewer holds the user's past outfit requests for display. Records
// still pending or missing a generated outfit are filtered out at load time;
// the grid only ever shows completed looks.
type HistoryViewer struct {
	client *Client
	log    zerolog.Logger

	mu      sync.Mutex
	records []OutfitHistoryRecord
	hidden  map[int64]struct{}
}

// NewHistoryViewer builds an empty viewer bound to a client.
func NewHistoryViewer(c *Client) *HistoryViewer {
	return &HistoryViewer{
		client: c,
		log:    c.log.With().Str("component", "history").Logger(),
		hidden: make(map[int64]struct{}),
	}
}

// Load fetches the history when a session token is present. Signed out, it is
// a silent no-op: no request is made and no error is surfaced.
func (h *HistoryViewer) Load(ctx context.Context) error {
	if h.client.session.Token() == "" {
		h.log.Debug().Msg("history load skipped, signed out")
		return nil
	}
	recs, err := h.client.OutfitHistory(ctx)
	if err != nil {
		return err
	}

	kept := recs[:0]
	for _, r := range recs {
		if r.GeneratedOutfit == nil {
			continue
		}
		kept = append(kept, r)
	}

	h.mu.Lock()
	h.records = kept
	h.mu.Unlock()
	return nil
}

// Records returns every loaded record, newest first as delivered by the
// backend. Hidden records stay in the enumeration so a UI can render their
// occasion label dimmed; check IsHidden per record.
func (h *HistoryViewer) Records() []OutfitHistoryRecord {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]OutfitHistoryRecord, len(h.records))
	copy(out, h.records)
	return out
}

// Hide suppresses a record's image and detail rendering without deleting it
// server-side. The record stays listed; only its occasion label should show.
func (h *HistoryViewer) Hide(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.hidden[id] = struct{}{}
}

// Show restores full rendering for a previously hidden record.
func (h *HistoryViewer) Show(id int64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.hidden, id)
}

// IsHidden reports whether a record is currently hidden.
func (h *HistoryViewer) IsHidden(id int64) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.hidden[id]
	return ok
}

// DetailViewer resolves a single past outfit request for the detail screen.
type DetailViewer struct {
	client *Client
	log    zerolog.Logger
}

// NewDetailViewer builds a viewer bound to a client.
func NewDetailViewer(c *Client) *DetailViewer {
	return &DetailViewer{
		client: c,
		log:    c.log.With().Str("component", "detail").Logger(),
	}
}

// Load fetches one record by id when a session token is present. Signed out,
// it returns (nil, nil) without making a request.
func (d *DetailViewer) Load(ctx context.Context, id int64) (*OutfitHistoryRecord, error) {
	if d.client.session.Token() == "" {
		d.log.Debug().Int64("id", id).Msg("detail load skipped, signed out")
		return nil, nil
	}
	return d.client.Outfit(ctx, id)
}
