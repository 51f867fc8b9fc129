package gig

import "strings"

type CreateGigRequest struct {
	Title       string   `json:"title" validate:"notblank,max=200"`
	Description string   `json:"description" validate:"notblank"`
	Budget      *float64 `json:"budget" validate:"required,gte=0"`
}

func (r *CreateGigRequest) normalize() {
	r.Title = strings.TrimSpace(r.Title)
	r.Description = strings.TrimSpace(r.Description)
}
