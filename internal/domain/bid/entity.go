package bid

import (
	"time"

	"gigflow/internal/domain/user"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusHired    Status = "hired"
	StatusRejected Status = "rejected"
)

// Bid is a freelancer's offer on a gig. A freelancer bids at most once per gig.
type Bid struct {
	ID           string     `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	GigID        string     `json:"gigId" gorm:"type:varchar(36);not null;uniqueIndex:idx_bids_gig_freelancer,priority:1;index:idx_bids_gig_status,priority:1" bson:"gig_id"`
	FreelancerID string     `json:"freelancerId" gorm:"type:varchar(36);not null;uniqueIndex:idx_bids_gig_freelancer,priority:2;index:idx_bids_freelancer_status,priority:1" bson:"freelancer_id"`
	Message      string     `json:"message" gorm:"type:text;not null" bson:"message"`
	Price        float64    `json:"price" gorm:"not null" bson:"price"`
	Status       Status     `json:"status" gorm:"type:varchar(16);not null;default:pending;index:idx_bids_gig_status,priority:2;index:idx_bids_freelancer_status,priority:2" bson:"status"`
	RejectedAt   *time.Time `json:"rejectedAt,omitempty" bson:"rejected_at,omitempty"`
	CreatedAt    time.Time  `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time  `json:"updatedAt" bson:"updated_at"`

	Freelancer *user.Summary `json:"freelancer,omitempty" gorm:"-" bson:"-"`
}

func (Bid) TableName() string { return "bids" }
