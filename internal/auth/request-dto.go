package auth

// login request payload
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// registration request payload
type RegisterRequest struct {
	DisplayName string `json:"display_name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	AvatarURL   string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// refresh token request
type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// profile update request; nil fields are left unchanged
type UpdateProfileRequest struct {
	DisplayName *string `json:"display_name" validate:"omitempty,min=2,max=100"`
	Email       *string `json:"email" validate:"omitempty,email"`
	Password    *string `json:"password" validate:"omitempty,min=6"`
}

// avatar update request
type UpdateAvatarRequest struct {
	AvatarURL string `json:"avatar_url" validate:"required,url"`
}
