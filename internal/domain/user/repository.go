package user

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var ErrUserNotFound = errors.New("user not found")

// Directory is the read side used by the other domains.
type Directory interface {
	GetByID(ctx context.Context, id string) (*User, error)
	Summaries(ctx context.Context, ids []string) (map[string]*Summary, error)
}

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, u *User) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	if err := r.db.WithContext(ctx).Create(u).Error; err != nil {
		return fmt.Errorf("user: create: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*User, error) {
	var u User
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("user: get: %w", err)
	}
	return &u, nil
}

func (r *Repository) Summaries(ctx context.Context, ids []string) (map[string]*Summary, error) {
	out := make(map[string]*Summary, len(ids))
	ids = dedupe(ids)
	if len(ids) == 0 {
		return out, nil
	}

	var rows []User
	if err := r.db.WithContext(ctx).
		Select("id", "name", "email").
		Where("id IN ?", ids).
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("user: summaries: %w", err)
	}
	for i := range rows {
		out[rows[i].ID] = rows[i].Summary()
	}
	return out, nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&User{}).Error
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
