package styleai

import "github.com/styleai/styleai-go/internal/types"

// Public type aliases so SDK consumers can import only the styleai package.
type (
	// Requests
	RegisterRequest = types.RegisterRequest

	// Domain entities
	User                = types.User
	Location            = types.Location
	WeatherPreview      = types.WeatherPreview
	GeneratedOutfit     = types.GeneratedOutfit
	WardrobeItem        = types.WardrobeItem
	OutfitHistoryRecord = types.OutfitHistoryRecord
	Category            = types.Category

	// Responses
	SuggestionResult = types.SuggestionResponse
)

// Wardrobe categories re-exported for consumers.
const (
	CategoryTops        = types.CategoryTops
	CategoryBottoms     = types.CategoryBottoms
	CategoryDresses     = types.CategoryDresses
	CategoryFootwear    = types.CategoryFootwear
	CategoryAccessories = types.CategoryAccessories
)

// History record status values.
const (
	StatusPending   = types.StatusPending
	StatusCompleted = types.StatusCompleted
)

// Categories returns the fixed category set in display order.
func Categories() []Category { return types.Categories() }
