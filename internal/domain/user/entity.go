package user

import "time"

// User is a marketplace account. Rows are owned by the external identity
// service; this service only reads them.
type User struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)" bson:"_id"`
	Name         string    `json:"name" gorm:"type:varchar(120);not null" bson:"name"`
	Email        string    `json:"email" gorm:"type:varchar(255);uniqueIndex;not null" bson:"email"`
	PasswordHash string    `json:"-" gorm:"column:password_hash;not null" bson:"password_hash"`
	CreatedAt    time.Time `json:"createdAt" bson:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" bson:"updated_at"`
}

func (User) TableName() string { return "users" }

// Summary is the public projection embedded in gig and bid responses.
type Summary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (u *User) Summary() *Summary {
	if u == nil {
		return nil
	}
	return &Summary{ID: u.ID, Name: u.Name, Email: u.Email}
}
