package model

// Destination is one row of the static travel catalog. Tags is the
// comma-separated descriptor string vibes are matched against.
type Destination struct {
	City  string `json:"city"`
	Price int    `json:"price"`
	Tags  string `json:"tags"`
}

// UserProfile is one row of the static user table.
type UserProfile struct {
	UserID      string `json:"user_id"`
	Name        string `json:"name"`
	DateOfBirth string `json:"date_of_birth"` // YYYY-MM-DD
}
