package notification

import "time"

// Type represents notification type
type Type string

const (
	TypeHired       Type = "hired"        // Freelancer: bid accepted
	TypeBidReceived Type = "bid_received" // Owner: new bid on a gig
	TypeBidRejected Type = "bid_rejected" // Freelancer: bid rejected
)

// Realtime event names pushed to user rooms.
const (
	EventNewBid      = "newBid"
	EventBidHired    = "bidHired"
	EventGigAssigned = "gigAssigned"
)

// Notification is the durable record of a user notification. Read state is
// managed elsewhere.
type Notification struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	UserID    string    `json:"userId" gorm:"type:varchar(36);not null;index:idx_notifications_user_created,priority:1" bson:"user_id"`
	Type      Type      `json:"type" gorm:"type:varchar(32);not null" bson:"type"`
	Message   string    `json:"message" gorm:"type:text;not null" bson:"message"`
	GigID     *string   `json:"gigId,omitempty" gorm:"type:varchar(36)" bson:"gig_id,omitempty"`
	BidID     *string   `json:"bidId,omitempty" gorm:"type:varchar(36)" bson:"bid_id,omitempty"`
	Read      bool      `json:"read" gorm:"not null;default:false" bson:"read"`
	CreatedAt time.Time `json:"createdAt" gorm:"index:idx_notifications_user_created,priority:2" bson:"created_at"`
}

func (Notification) TableName() string {
	return "notifications"
}

// BidReceived describes a newly submitted bid, addressed to the gig owner.
type BidReceived struct {
	OwnerID        string
	GigID          string
	GigTitle       string
	BidID          string
	FreelancerID   string
	FreelancerName string
	Price          float64
}

// Hired describes a completed hire.
type Hired struct {
	OwnerID        string
	FreelancerID   string
	FreelancerName string
	GigID          string
	GigTitle       string
	BidID          string
}
