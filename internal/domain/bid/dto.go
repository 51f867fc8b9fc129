package bid

import (
	"strings"
	"time"

	"gigflow/internal/domain/gig"
)

type CreateBidRequest struct {
	GigID   string   `json:"gigId" validate:"notblank"`
	Message string   `json:"message" validate:"notblank,max=2000"`
	Price   *float64 `json:"price" validate:"required,gte=0"`
}

func (r *CreateBidRequest) normalize() {
	r.GigID = strings.TrimSpace(r.GigID)
	r.Message = strings.TrimSpace(r.Message)
}

// Summary is the bid part of an active-gig entry.
type Summary struct {
	ID         string     `json:"id"`
	Message    string     `json:"message"`
	Price      float64    `json:"price"`
	Status     Status     `json:"status"`
	CreatedAt  time.Time  `json:"createdAt"`
	RejectedAt *time.Time `json:"rejectedAt,omitempty"`
}

// ActiveGig is a gig the freelancer has bid on, with that bid.
type ActiveGig struct {
	gig.Gig
	Bid Summary `json:"bid"`
}

func (b *Bid) Summary() Summary {
	return Summary{
		ID:         b.ID,
		Message:    b.Message,
		Price:      b.Price,
		Status:     b.Status,
		CreatedAt:  b.CreatedAt,
		RejectedAt: b.RejectedAt,
	}
}
