package model

// AddUserRequest represents the request to register a user.
type AddUserRequest struct {
	UserID    string `json:"user_id"    binding:"required"`
	Nickname  string `json:"nickname"   binding:"required"`
	AvatarURL string `json:"avatar_url"`
}

// Totals holds a user's running score per time span.
type Totals struct {
	AllTime int64 `json:"all_time"`
	Weekly  int64 `json:"weekly"`
}

// UserResponse is returned by /users/add and /users/get.
type UserResponse struct {
	User   User    `json:"user"`
	Scores *Totals `json:"scores,omitempty"`
}
