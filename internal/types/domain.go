package types

// ------------------------------
// Core Domain Entities
// ------------------------------

// Category is one of the five fixed wardrobe categories recognised by the
// backend. Anything else in a wardrobe listing is dropped on load.
type Category string

const (
	CategoryTops        Category = "Tops"
	CategoryBottoms     Category = "Bottoms"
	CategoryDresses     Category = "Dresses"
	CategoryFootwear    Category = "Footwear"
	CategoryAccessories Category = "Accessories"
)

// Categories returns the fixed category set in display order.
func Categories() []Category {
	return []Category{
		CategoryTops,
		CategoryBottoms,
		CategoryDresses,
		CategoryFootwear,
		CategoryAccessories,
	}
}

// Valid reports whether c is one of the five known categories.
func (c Category) Valid() bool {
	switch c {
	case CategoryTops, CategoryBottoms, CategoryDresses, CategoryFootwear, CategoryAccessories:
		return true
	}
	return false
}

// User is the identity slice of the account the backend echoes back on
// register/login.
type User struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Location pairs an ISO-3166 country code with a sub-country region name.
type Location struct {
	Country string `json:"country"`
	State   string `json:"state"`
}

// WeatherPreview is the forecast the backend resolves for a request before
// generation. It is read-only on the client and never persisted locally.
type WeatherPreview struct {
	ForecastDate   string  `json:"forecast_date,omitempty"`
	TemperatureAvg float64 `json:"temperature_avg"`
	TemperatureMin float64 `json:"temperature_min"`
	TemperatureMax float64 `json:"temperature_max"`
	Humidity       float64 `json:"humidity,omitempty"`
	Condition      string  `json:"weather_condition"`
	UsingDefaults  bool    `json:"using_defaults,omitempty"`
	Warning        string  `json:"warning,omitempty"`
}

// GeneratedOutfit is the backend's synthesized result. Immutable once
// received.
type GeneratedOutfit struct {
	ImageURL          string `json:"image_url,omitempty"`
	TopDescription    string `json:"top_description"`
	BottomDescription string `json:"bottom_description"`
}

// WardrobeItem is one uploaded clothing photo. BgRemovedImageURL is set once
// background removal has produced a cutout for the item.
type WardrobeItem struct {
	ID                int64    `json:"id"`
	Category          Category `json:"category"`
	ImageURL          string   `json:"image_url"`
	BgRemovedImageURL string   `json:"bg_removed_image_url,omitempty"`
}

// OutfitHistoryRecord is a persisted past request. Server-owned; the client
// only reads it.
type OutfitHistoryRecord struct {
	ID              int64            `json:"id"`
	Occasion        string           `json:"occasion"`
	TargetDate      string           `json:"target_date"`
	Status          string           `json:"status"`
	Location        Location         `json:"location"`
	Weather         WeatherPreview   `json:"weather"`
	GeneratedOutfit *GeneratedOutfit `json:"generated_outfit,omitempty"`
}

// History record status values.
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
)
