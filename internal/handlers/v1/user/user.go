package user

// User is the API response model for a user.
type User struct {
	ID        int64  `json:"id" doc:"User id"`
	Email     string `json:"email" doc:"Email address"`
	CreatedAt string `json:"createdAt" doc:"RFC3339 creation time"`
	UpdatedAt string `json:"updatedAt" doc:"RFC3339 last update time"`
}
