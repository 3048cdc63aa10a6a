package styleai

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/styleai/styleai-go/internal/types"
	"github.com/styleai/styleai-go/refdata"
)

// OutfitRequest is the client-side input for one request cycle. Occasion,
// Country and Region are required; TargetDate ("2006-01-02") is optional and
// defaults to today on the server.
type OutfitRequest struct {
	Occasion   string
	Country    string // ISO-3166 code
	Region     string
	TargetDate string
}

// wire converts to the backend body. An unset date marshals as explicit null.
func (r OutfitRequest) wire() types.OutfitGenerateRequest {
	var d *string
	if r.TargetDate != "" {
		td := r.TargetDate
		d = &td
	}
	return types.OutfitGenerateRequest{
		Occasion:   r.Occasion,
		Country:    r.Country,
		State:      r.Region,
		TargetDate: d,
	}
}

// Phase is the explicit tagged state of one request cycle. Exactly one phase
// holds at a time, which rules out impossible flag combinations such as an
// error being shown while loading.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseInvalid
	PhaseFetchingWeather
	PhaseFetchingWeatherFailed
	PhaseGenerating
	PhaseGenerationFailed
	PhaseCompleted
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseInvalid:
		return "invalid"
	case PhaseFetchingWeather:
		return "fetching-weather"
	case PhaseFetchingWeatherFailed:
		return "weather-failed"
	case PhaseGenerating:
		return "generating"
	case PhaseGenerationFailed:
		return "generation-failed"
	case PhaseCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// Variant selects which backend flow a submit drives.
type Variant int

const (
	// VariantGenerate asks the backend to synthesize a brand-new outfit.
	VariantGenerate Variant = iota
	// VariantSuggest asks the backend to pick items from the wardrobe.
	VariantSuggest
)

// RequestState is a snapshot of the orchestrator's transient per-cycle state.
// Message carries at most one displayable error at a time (latest wins).
type RequestState struct {
	Phase      Phase
	Message    string
	Weather    *WeatherPreview
	Outfit     *GeneratedOutfit
	Suggestion *SuggestionResult
}

// Loading reports whether a request cycle is in flight.
func (s RequestState) Loading() bool {
	return s.Phase == PhaseFetchingWeather || s.Phase == PhaseGenerating
}

// Designing reports the sub-state where the weather has resolved but the
// generation leg is still pending.
func (s RequestState) Designing() bool { return s.Phase == PhaseGenerating }

// WardrobeCounter is the slice of the wardrobe store the suggest guard needs.
type WardrobeCounter interface {
	TotalItems() int
}

// Orchestrator drives the two-phase exchange for one outfit request: weather
// preview first, then generation or wardrobe suggestion. It exclusively owns
// the in-flight cycle's transient state and resets it at the start of each
// new cycle.
//
// A new submit while a previous cycle is in flight does not cancel the
// earlier request; instead every commit is tagged with the cycle that
// produced it and commits from superseded cycles are discarded, so the
// last-started cycle always wins.
type Orchestrator struct {
	client   *Client
	wardrobe WardrobeCounter // may be nil; Suggest then fails validation
	log      zerolog.Logger

	mu    sync.Mutex
	cycle uint64
	state RequestState
}

// NewOrchestrator builds an orchestrator on top of a client. wardrobe may be
// nil when the suggest flow is not used.
func NewOrchestrator(c *Client, wardrobe WardrobeCounter) *Orchestrator {
	return &Orchestrator{
		client:   c,
		wardrobe: wardrobe,
		log:      c.log.With().Str("component", "orchestrator").Logger(),
	}
}

// State returns a snapshot of the current cycle state.
func (o *Orchestrator) State() RequestState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// EditField acknowledges a form edit after a failed validation: Invalid
// returns to Idle and the message clears. Any other phase is untouched.
func (o *Orchestrator) EditField() {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.state.Phase == PhaseInvalid {
		o.state.Phase = PhaseIdle
		o.state.Message = ""
	}
}

// LocationLabel renders a human-readable label for the request's location.
// Country-code resolution falls back to the raw code; this never fails.
func (o *Orchestrator) LocationLabel(req OutfitRequest) string {
	name := refdata.CountryName(req.Country)
	if req.Region == "" {
		return name
	}
	return req.Region + ", " + name
}

// Generate runs one full generation cycle and returns the terminal state.
// Intermediate states are observable via State for callers polling from a UI
// loop.
func (o *Orchestrator) Generate(ctx context.Context, req OutfitRequest) RequestState {
	return o.run(ctx, req, VariantGenerate)
}

// Suggest runs one wardrobe-suggestion cycle. An empty wardrobe fails
// validation before any network call.
func (o *Orchestrator) Suggest(ctx context.Context, req OutfitRequest) RequestState {
	return o.run(ctx, req, VariantSuggest)
}

func (o *Orchestrator) run(ctx context.Context, req OutfitRequest, v Variant) RequestState {
	// Validation happens entirely client-side; an invalid submit issues no
	// network calls and leaves prior results on screen.
	if verr := o.Validate(req, v); verr != nil {
		o.mu.Lock()
		o.state.Phase = PhaseInvalid
		o.state.Message = verr.Msg
		st := o.state
		o.mu.Unlock()
		return st
	}

	// Transactional reset: all prior result state is cleared before the
	// first request starts, so the UI never pairs a stale outfit with a new
	// query.
	o.mu.Lock()
	o.cycle++
	myCycle := o.cycle
	o.state = RequestState{Phase: PhaseFetchingWeather}
	o.mu.Unlock()

	weather, err := o.client.PreviewWeather(ctx, req)
	if err != nil {
		st, _ := o.commit(myCycle, func(s *RequestState) {
			s.Phase = PhaseFetchingWeatherFailed
			s.Message = errorMessage(err, "Weather lookup failed.")
		})
		o.log.Warn().Err(err).Str("occasion", req.Occasion).Msg("weather preview failed")
		return st
	}

	// The weather preview is committed and rendered immediately, independent
	// of the generation outcome.
	st, ok := o.commit(myCycle, func(s *RequestState) {
		s.Weather = weather
		s.Phase = PhaseGenerating
	})
	if !ok {
		return st // superseded by a newer submit
	}

	switch v {
	case VariantSuggest:
		suggestion, err := o.client.SuggestOutfit(ctx, req)
		if err != nil {
			st, _ = o.commit(myCycle, func(s *RequestState) {
				s.Phase = PhaseGenerationFailed
				s.Message = errorMessage(err, "Suggestion failed.")
			})
			o.log.Warn().Err(err).Msg("wardrobe suggestion failed")
			return st
		}
		st, _ = o.commit(myCycle, func(s *RequestState) {
			s.Phase = PhaseCompleted
			s.Suggestion = suggestion
		})
		return st

	default:
		outfit, err := o.client.GenerateOutfit(ctx, req)
		if err != nil {
			st, _ = o.commit(myCycle, func(s *RequestState) {
				s.Phase = PhaseGenerationFailed
				s.Message = errorMessage(err, "Outfit generation failed.")
			})
			o.log.Warn().Err(err).Msg("outfit generation failed")
			return st
		}
		st, _ = o.commit(myCycle, func(s *RequestState) {
			s.Phase = PhaseCompleted
			s.Outfit = outfit
		})
		return st
	}
}

// Validate runs the client-side checks a submit would perform and returns the
// failure, or nil when the request would proceed to the network. Callers that
// want an error value instead of a phase (the CLI does) use this directly.
func (o *Orchestrator) Validate(req OutfitRequest, v Variant) *ValidationError {
	if req.Occasion == "" || req.Country == "" || req.Region == "" {
		return &ValidationError{Msg: "Please fill in Occasion, Country, and State."}
	}
	if v == VariantSuggest {
		if o.wardrobe == nil || o.wardrobe.TotalItems() == 0 {
			return &ValidationError{Msg: "Your wardrobe is empty. Add some clothes first!"}
		}
	}
	return nil
}

// commit applies fn to the shared state only if cycle is still the latest;
// late responses from an abandoned cycle are discarded. Returns the state
// snapshot and whether the commit applied.
func (o *Orchestrator) commit(cycle uint64, fn func(*RequestState)) (RequestState, bool) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cycle != o.cycle {
		o.log.Debug().Uint64("cycle", cycle).Uint64("latest", o.cycle).Msg("discarding stale cycle result")
		return o.state, false
	}
	fn(&o.state)
	return o.state, true
}
