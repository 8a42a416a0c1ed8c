package dto

// CreateUserRequest creates an application user
type CreateUserRequest struct {
	Prefix      *string `json:"prefix,omitempty" validate:"omitempty,max=20"`
	FirstName   string  `json:"firstName" validate:"required,max=100"`
	MiddleName  *string `json:"middleName,omitempty" validate:"omitempty,max=100"`
	LastName    string  `json:"lastName" validate:"required,max=100"`
	Email       string  `json:"email" validate:"required,email,max=255"`
	Password    string  `json:"password" validate:"required,min=8,max=255"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
}

// UpdateUserRequest patches an existing user. Password changes go
// through the reset flow, never through here.
type UpdateUserRequest struct {
	UserID      uint    `json:"userId" validate:"required"`
	Prefix      *string `json:"prefix,omitempty" validate:"omitempty,max=20"`
	FirstName   *string `json:"firstName,omitempty" validate:"omitempty,max=100"`
	MiddleName  *string `json:"middleName,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"lastName,omitempty" validate:"omitempty,max=100"`
	Email       *string `json:"email,omitempty" validate:"omitempty,email,max=255"`
	PhoneNumber *string `json:"phoneNumber,omitempty" validate:"omitempty,max=30"`
}

// DeleteUserRequest soft-deletes one user
type DeleteUserRequest struct {
	UserID uint `json:"userId" validate:"required"`
}
