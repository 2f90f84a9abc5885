package model

import "time"

type User struct {
	ID        string    `json:"_id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Avatar    string    `json:"avatar" db:"avatar"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// ------------------------------------------------------------
// Payloads

type CreateUserPayload struct {
	Name   string `json:"name" validate:"required,min=2,max=30"`
	Avatar string `json:"avatar" validate:"required,url"`
}

func (p *CreateUserPayload) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	return validateName(p.Name)
}

type UserIDPayload struct {
	UserID string `json:"-" param:"userId" validate:"required"`
}

func (p *UserIDPayload) Validate() error {
	return validate.Struct(p)
}

type GetUsersPayload struct{}

func (p *GetUsersPayload) Validate() error {
	return nil
}
