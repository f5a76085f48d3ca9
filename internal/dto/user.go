package dto

// LoginRequest is the JSON body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// RegisterRequest is the JSON body for POST /auth/register.
type RegisterRequest struct {
	Username string `json:"username" binding:"required,min=1,max=120"`
	Password string `json:"password" binding:"required,min=1"`
}

// UpdateProfileRequest is a partial profile update; absent fields stay as
// they are. Only the fields listed here are updatable.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name" binding:"omitempty,max=120"`
	Bio      *string `json:"bio" binding:"omitempty,max=1000"`
}

// UserResponse is returned for the authenticated account.
type UserResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	IsAdmin  bool   `json:"is_admin"`
	FullName string `json:"full_name"`
	Bio      string `json:"bio"`
}
