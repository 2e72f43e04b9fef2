package dto

import (
	"turfbook/internal/domains/user/model"
	"turfbook/shared/constant"
	gDto "turfbook/shared/dto"
	"turfbook/shared/timezone"
)

type UserResponse struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	FullName  string  `json:"full_name"`
	Role      string  `json:"role"`
	IsHost    bool    `json:"is_host"`
	LastLogin *string `json:"last_login,omitempty"`
	Active    bool    `json:"active"`
	gDto.Metadata
}

func (r *UserResponse) FromModel(model model.User) {
	r.ID = model.ID
	r.Email = model.Email
	r.FullName = model.FullName
	r.Role = model.Role
	r.IsHost = model.IsHost()
	r.Active = model.Active
	r.Metadata.FromModel(model.Metadata)

	r.LastLogin = nil
	if model.LastLogin != nil {
		lastLogin := timezone.Format(*model.LastLogin, constant.DateTimeFormat)
		r.LastLogin = &lastLogin
	}
}

type UpdateProfileRequest struct {
	FullName string `json:"full_name" db:"full_name" validate:"required,min=2,max=100"`
}
