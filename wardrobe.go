package styleai

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/styleai/styleai-go/internal/types"
	"github.com/styleai/styleai-go/internal/workqueue"
)

// uploadLaneKey serialises all wardrobe uploads onto one work-queue lane so
// files reach the backend strictly one at a time, in submission order.
const uploadLaneKey = "wardrobe-upload"

// UploadInput is one file queued for upload.
type UploadInput struct {
	Category Category
	Filename string
	Content  io.Reader
}

// UploadFailure records one file that could not be uploaded after retries.
type UploadFailure struct {
	Filename string
	Err      error
}

// UploadOutcome aggregates a batch upload: every input ends up in exactly one
// of the two slices. One bad file never aborts the rest of the batch.
type UploadOutcome struct {
	Uploaded []WardrobeItem
	Failed   []UploadFailure
}

// WardrobeStore holds the authenticated user's clothing items grouped by
// category, plus the UI-facing selection and per-item view-mode state. All
// methods are safe for concurrent use.
type WardrobeStore struct {
	client *Client
	log    zerolog.Logger

	mu           sync.Mutex
	byCat        map[Category][]WardrobeItem
	active       Category
	selected     map[int64]struct{}
	showOriginal map[int64]bool // default false: clean image wins when present
}

// NewWardrobeStore builds an empty store bound to a client. Call Load to
// populate it from the backend.
func NewWardrobeStore(c *Client) *WardrobeStore {
	return &WardrobeStore{
		client:       c,
		log:          c.log.With().Str("component", "wardrobe").Logger(),
		byCat:        make(map[Category][]WardrobeItem),
		active:       CategoryTops,
		selected:     make(map[int64]struct{}),
		showOriginal: make(map[int64]bool),
	}
}

// Load replaces the store contents with the backend's item list. Items with
// an unknown category are dropped and logged rather than invented as new
// categories. Selection and view-mode state are reset.
func (w *WardrobeStore) Load(ctx context.Context) error {
	items, err := w.client.ListWardrobe(ctx)
	if err != nil {
		return err
	}

	grouped := make(map[Category][]WardrobeItem, len(types.Categories()))
	for _, it := range items {
		if !it.Category.Valid() {
			w.log.Warn().Int64("item_id", it.ID).Str("category", string(it.Category)).Msg("dropping item with unknown category")
			continue
		}
		grouped[it.Category] = append(grouped[it.Category], it)
	}

	w.mu.Lock()
	w.byCat = grouped
	w.selected = make(map[int64]struct{})
	w.showOriginal = make(map[int64]bool)
	w.mu.Unlock()
	return nil
}

// uploadResult is the terminal record for one queued upload; a retried job
// overwrites its earlier failed attempt.
type uploadResult struct {
	item *WardrobeItem
	err  error
}

// UploadBatch queues every input on the upload lane and waits for the batch
// to finish. Uploads run strictly sequentially; each failure is independent
// and the outcome reports per-file results.
func (w *WardrobeStore) UploadBatch(ctx context.Context, inputs []UploadInput) (*UploadOutcome, error) {
	outcome := &UploadOutcome{}
	if len(inputs) == 0 {
		return outcome, nil
	}

	type pending struct {
		ref      string
		filename string
	}
	var resMu sync.Mutex
	results := make(map[string]*uploadResult, len(inputs))
	queued := make([]pending, 0, len(inputs))

	for _, in := range inputs {
		in := in
		// Buffer the file up front so a retried attempt re-sends the full
		// content instead of a drained reader.
		data, err := io.ReadAll(in.Content)
		if err != nil {
			outcome.Failed = append(outcome.Failed, UploadFailure{Filename: in.Filename, Err: err})
			continue
		}

		ref := uuid.NewString()
		queued = append(queued, pending{ref: ref, filename: in.Filename})
		results[ref] = &uploadResult{}

		job := workqueue.JobFunc(func(jctx context.Context) error {
			item, err := w.client.UploadWardrobeItem(jctx, in.Category, in.Filename, bytes.NewReader(data))
			resMu.Lock()
			if err != nil {
				results[ref].err = err
			} else {
				results[ref].item = item
				results[ref].err = nil
			}
			resMu.Unlock()
			return err
		})
		if err := w.client.exec.Submit(ctx, uploadLaneKey, job); err != nil {
			outcome.Failed = append(outcome.Failed, UploadFailure{Filename: in.Filename, Err: err})
			delete(results, ref)
			queued = queued[:len(queued)-1]
		}
	}

	if err := w.client.exec.Barrier(ctx, uploadLaneKey); err != nil {
		return outcome, err
	}

	resMu.Lock()
	defer resMu.Unlock()
	for _, p := range queued {
		r := results[p.ref]
		switch {
		case r.item != nil:
			outcome.Uploaded = append(outcome.Uploaded, *r.item)
			w.insert(*r.item)
		case r.err != nil:
			outcome.Failed = append(outcome.Failed, UploadFailure{Filename: p.filename, Err: r.err})
		}
	}
	return outcome, nil
}

// insert appends a freshly uploaded item to its category bucket.
func (w *WardrobeStore) insert(item WardrobeItem) {
	if !item.Category.Valid() {
		w.log.Warn().Int64("item_id", item.ID).Str("category", string(item.Category)).Msg("dropping uploaded item with unknown category")
		return
	}
	w.mu.Lock()
	w.byCat[item.Category] = append(w.byCat[item.Category], item)
	w.mu.Unlock()
}

// Delete removes one item from the backend and, only after the backend has
// confirmed, from the local store and the selection. A rejected delete leaves
// the list unchanged.
func (w *WardrobeStore) Delete(ctx context.Context, id int64) error {
	if err := w.client.DeleteWardrobeItem(ctx, id); err != nil {
		return err
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	for cat, items := range w.byCat {
		for i, it := range items {
			if it.ID == id {
				w.byCat[cat] = append(items[:i:i], items[i+1:]...)
				break
			}
		}
	}
	delete(w.selected, id)
	delete(w.showOriginal, id)
	return nil
}

// RemoveBackground sends the current selection for background removal.
// Returned items replace their originals in place, preserving list position.
// The selection clears on success and is preserved on failure so the user can
// retry without re-picking.
func (w *WardrobeStore) RemoveBackground(ctx context.Context) ([]WardrobeItem, error) {
	ids := w.SelectedIDs()
	if len(ids) == 0 {
		return nil, nil
	}

	updated, err := w.client.RemoveBackground(ctx, ids)
	if err != nil {
		return nil, err
	}

	w.mu.Lock()
	w.applyCutoutsLocked(updated)
	w.selected = make(map[int64]struct{})
	w.mu.Unlock()
	return updated, nil
}

// RemoveBackgroundItems sends an explicit id batch for background removal,
// independent of the browsing selection, which it leaves untouched. Scripted
// callers use this; interactive ones go through the selection.
func (w *WardrobeStore) RemoveBackgroundItems(ctx context.Context, ids []int64) ([]WardrobeItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	updated, err := w.client.RemoveBackground(ctx, ids)
	if err != nil {
		return nil, err
	}
	w.mu.Lock()
	w.applyCutoutsLocked(updated)
	w.mu.Unlock()
	return updated, nil
}

// applyCutoutsLocked replaces updated items in place, preserving positions.
func (w *WardrobeStore) applyCutoutsLocked(updated []WardrobeItem) {
	byID := make(map[int64]WardrobeItem, len(updated))
	for _, it := range updated {
		byID[it.ID] = it
	}
	for cat, items := range w.byCat {
		for i, it := range items {
			if repl, ok := byID[it.ID]; ok {
				w.byCat[cat][i] = repl
			}
		}
	}
}

// SetActiveCategory switches the browsing tab. The selection is scoped to a
// category, so switching clears it.
func (w *WardrobeStore) SetActiveCategory(cat Category) {
	if !cat.Valid() {
		return
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if cat == w.active {
		return
	}
	w.active = cat
	w.selected = make(map[int64]struct{})
}

// ActiveCategory returns the current browsing tab.
func (w *WardrobeStore) ActiveCategory() Category {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.active
}

// ToggleSelect flips an item in or out of the selection. The selection is
// scoped to the active category, so ids outside it (or unknown ids) are
// ignored.
func (w *WardrobeStore) ToggleSelect(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if !w.inActiveLocked(id) {
		return
	}
	if _, ok := w.selected[id]; ok {
		delete(w.selected, id)
	} else {
		w.selected[id] = struct{}{}
	}
}

// IsSelected reports whether the item is in the current selection.
func (w *WardrobeStore) IsSelected(id int64) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	_, ok := w.selected[id]
	return ok
}

// SelectedIDs returns the selected ids in order of appearance in the active
// category list. ToggleSelect only admits active-category ids and a tab
// switch clears the set, so no id can live outside the active category.
func (w *WardrobeStore) SelectedIDs() []int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	ids := make([]int64, 0, len(w.selected))
	for _, it := range w.byCat[w.active] {
		if _, ok := w.selected[it.ID]; ok {
			ids = append(ids, it.ID)
		}
	}
	return ids
}

// ToggleViewMode flips one item between its original photo and the
// background-removed version. Items without a clean version stay on the
// original.
func (w *WardrobeStore) ToggleViewMode(id int64) {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.findLocked(id)
	if !ok || it.BgRemovedImageURL == "" {
		return
	}
	w.showOriginal[id] = !w.showOriginal[id]
}

// DisplayURL returns the image URL to render for an item: the clean version
// when one exists and the user hasn't toggled back to the original.
func (w *WardrobeStore) DisplayURL(id int64) string {
	w.mu.Lock()
	defer w.mu.Unlock()
	it, ok := w.findLocked(id)
	if !ok {
		return ""
	}
	if it.BgRemovedImageURL != "" && !w.showOriginal[id] {
		return it.BgRemovedImageURL
	}
	return it.ImageURL
}

// Items returns a copy of the items in cat.
func (w *WardrobeStore) Items(cat Category) []WardrobeItem {
	w.mu.Lock()
	defer w.mu.Unlock()
	items := w.byCat[cat]
	out := make([]WardrobeItem, len(items))
	copy(out, items)
	return out
}

// TotalItems reports the item count across all categories.
func (w *WardrobeStore) TotalItems() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	n := 0
	for _, items := range w.byCat {
		n += len(items)
	}
	return n
}

// IsEmpty reports whether the wardrobe holds no items at all.
func (w *WardrobeStore) IsEmpty() bool { return w.TotalItems() == 0 }

// Summary returns per-category item counts in display order.
func (w *WardrobeStore) Summary() map[Category]int {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make(map[Category]int, len(types.Categories()))
	for _, cat := range types.Categories() {
		out[cat] = len(w.byCat[cat])
	}
	return out
}

func (w *WardrobeStore) inActiveLocked(id int64) bool {
	for _, it := range w.byCat[w.active] {
		if it.ID == id {
			return true
		}
	}
	return false
}

func (w *WardrobeStore) findLocked(id int64) (WardrobeItem, bool) {
	for _, items := range w.byCat {
		for _, it := range items {
			if it.ID == id {
				return it, true
			}
		}
	}
	return WardrobeItem{}, false
}
