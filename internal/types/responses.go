package types

// ------------------------------
// Response Types
// ------------------------------

// TokenResponse is returned by register and login.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
	User        User   `json:"user"`
}

// GenerateResponse wraps the synthesized outfit for a generation request.
// The backend returns the full persisted record; the client only consumes
// the generated_outfit slice of it.
type GenerateResponse struct {
	ID              int64            `json:"id,omitempty"`
	Status          string           `json:"status,omitempty"`
	GeneratedOutfit *GeneratedOutfit `json:"generated_outfit"`
}

// SuggestionResponse is the wardrobe-sourced counterpart of a generation.
// All fields are optional apart from SelectedItems, which preserves the
// backend's ordering.
type SuggestionResponse struct {
	Weather       *WeatherPreview `json:"weather,omitempty"`
	Suggestion    string          `json:"suggestion,omitempty"`
	SelectedItems []WardrobeItem  `json:"selected_items"`
}

// ErrorResponse is the backend's error body shape. Detail carries the
// human-readable message surfaced to the user when present.
type ErrorResponse struct {
	Detail string `json:"detail"`
}
