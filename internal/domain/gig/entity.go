package gig

import (
	"time"

	"gigflow/internal/domain/user"
)

type Status string

const (
	StatusOpen     Status = "open"
	StatusAssigned Status = "assigned"
)

// Gig is a posted job. AssignedAt is set iff Status is assigned.
type Gig struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Title       string     `json:"title" gorm:"type:varchar(200);not null" bson:"title"`
	Description string     `json:"description" gorm:"type:text;not null" bson:"description"`
	Budget      float64    `json:"budget" gorm:"not null" bson:"budget"`
	OwnerID     string     `json:"ownerId" gorm:"type:varchar(36);not null;index:idx_gigs_owner_status,priority:1" bson:"owner_id"`
	Status      Status     `json:"status" gorm:"type:varchar(16);not null;default:open;index:idx_gigs_owner_status,priority:2;index:idx_gigs_status" bson:"status"`
	AssignedAt  *time.Time `json:"assignedAt,omitempty" bson:"assigned_at,omitempty"`
	CreatedAt   time.Time  `json:"createdAt" gorm:"index" bson:"created_at"`
	UpdatedAt   time.Time  `json:"updatedAt" bson:"updated_at"`

	Owner *user.Summary `json:"owner,omitempty" gorm:"-" bson:"-"`
}

func (Gig) TableName() string { return "gigs" }

func (g *Gig) IsOpen() bool { return g.Status == StatusOpen }

// Filter narrows ListOpen. Search matches title or description, case-insensitively.
type Filter struct {
	Search string
}
