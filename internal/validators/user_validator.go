package validators

type RegisterUserRequest struct {
	Name     string `json:"name" binding:"required,max=100"`
	Email    string `json:"email" binding:"required,email,max=255"`
	Password string `json:"password" binding:"required,min=6,max=72"`
	Bio      string `json:"bio" binding:"max=500"`
}

type LoginUserRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdateProfileRequest fields are optional; nil means unchanged.
type UpdateProfileRequest struct {
	Name     *string   `json:"name,omitempty" binding:"omitempty,max=100"`
	Bio      *string   `json:"bio,omitempty" binding:"omitempty,max=500"`
	JobTitle *string   `json:"jobTitle,omitempty" binding:"omitempty,max=100"`
	Company  *string   `json:"company,omitempty" binding:"omitempty,max=100"`
	Location *string   `json:"location,omitempty" binding:"omitempty,max=100"`
	Skills   *[]string `json:"skills,omitempty" binding:"omitempty,max=50,dive,max=50"`
}
