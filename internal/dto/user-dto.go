package dto

type CreateUserDTO struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=150"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required,min=8"`
	IsStaff  bool   `form:"is_staff" json:"is_staff"`
}

// UpdateUserDTO - пустой пароль означает "не менять".
type UpdateUserDTO struct {
	Username string `form:"username" json:"username" validate:"required,min=3,max=150"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password,omitempty" validate:"omitempty,min=8"`
	IsStaff  bool   `form:"is_staff" json:"is_staff"`
}
