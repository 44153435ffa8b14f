package transport

import "time"

// CreateRequest is the tailored-trip form.
type CreateRequest struct {
	Destinations []string `json:"destinations" validate:"required,min=1,dive,required,max=120"`
	Days         int      `json:"days" validate:"required,min=1"`
	Travelers    int      `json:"travelers" validate:"required,min=1"`
	Budget       *float64 `json:"budget,omitempty" validate:"omitempty,min=0"`
	Notes        *string  `json:"notes,omitempty" validate:"omitempty,max=4000"`
	ContactEmail string   `json:"contactEmail" validate:"required,email"`
	ContactPhone string   `json:"contactPhone" validate:"required,min=5,max=32"`
}

// UpdateRequest is the admin patch.
type UpdateRequest struct {
	Status    *string `json:"status,omitempty" validate:"omitempty,oneof=pending reviewed quoted closed"`
	AdminNote *string `json:"adminNote,omitempty" validate:"omitempty,max=4000"`
}

type UserSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type RequestResponse struct {
	ID           string       `json:"id"`
	UserID       string       `json:"userId"`
	User         *UserSummary `json:"user,omitempty"`
	Destinations []string     `json:"destinations"`
	Days         int          `json:"days"`
	Travelers    int          `json:"travelers"`
	Budget       *float64     `json:"budget,omitempty"`
	Notes        *string      `json:"notes,omitempty"`
	Status       string       `json:"status"`
	AdminNote    *string      `json:"adminNote,omitempty"`
	ContactEmail string       `json:"contactEmail"`
	ContactPhone string       `json:"contactPhone"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt"`
}

type CreatedResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
