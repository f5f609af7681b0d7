package echoapi

import (
	"github.com/go-playground/validator/v10"
)

type (
	LoginRequest struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	LoginResponse struct {
		Token string `json:"token"`
	}

	SuccessResponse struct {
		Success string `json:"success"`
	}

	PasswordResetRequest struct {
		Email string `json:"email" validate:"required,email"`
	}

	ModuleToggleRequest struct {
		Enabled *bool `json:"enabled" validate:"required"`
	}

	DeleteIDsRequest struct {
		IDs []string `json:"ids" validate:"required,min=1"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(lr)
}

func (pr *PasswordResetRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(pr)
}

func (mt *ModuleToggleRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(mt)
}

func (dr *DeleteIDsRequest) Validate(validate *validator.Validate) error {
	return validate.Struct(dr)
}
