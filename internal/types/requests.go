package types

// ------------------------------
// Request Types
// ------------------------------

// RegisterRequest holds parameters for a new account.
type RegisterRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	Gender      string `json:"gender"`
	DateOfBirth string `json:"date_of_birth"`
}

// LoginRequest holds credentials for an existing account.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OutfitGenerateRequest is the wire body shared by the weather preview,
// generate and suggest endpoints. TargetDate marshals as an explicit null
// when unset; the backend then defaults it to today.
type OutfitGenerateRequest struct {
	Occasion   string  `json:"occasion"`
	Country    string  `json:"country"`
	State      string  `json:"state"`
	TargetDate *string `json:"target_date"`
}

// RemoveBackgroundRequest names the wardrobe items to process in one batch.
type RemoveBackgroundRequest struct {
	ItemIDs []int64 `json:"item_ids"`
}
