package gig

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, g *Gig) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	if g.Status == "" {
		g.Status = StatusOpen
	}
	if err := r.db.WithContext(ctx).Create(g).Error; err != nil {
		return fmt.Errorf("gig: create: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Gig, error) {
	var g Gig
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&g).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrGigNotFound
		}
		return nil, fmt.Errorf("gig: get: %w", err)
	}
	return &g, nil
}

func (r *Repository) ListOpen(ctx context.Context, f Filter) ([]Gig, error) {
	q := r.db.WithContext(ctx).Where("status = ?", StatusOpen)

	if s := strings.TrimSpace(f.Search); s != "" {
		like := "%" + escapeLike(strings.ToLower(s)) + "%"
		q = q.Where("(LOWER(title) LIKE ? ESCAPE '\\' OR LOWER(description) LIKE ? ESCAPE '\\')", like, like)
	}

	var rows []Gig
	if err := q.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gig: list open: %w", err)
	}
	return rows, nil
}

func (r *Repository) ListByOwner(ctx context.Context, ownerID string) ([]Gig, error) {
	var rows []Gig
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gig: list by owner: %w", err)
	}
	return rows, nil
}

func (r *Repository) ListByIDs(ctx context.Context, ids []string) ([]Gig, error) {
	if len(ids) == 0 {
		return []Gig{}, nil
	}
	var rows []Gig
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("gig: list by ids: %w", err)
	}
	return rows, nil
}

func (r *Repository) CountByOwner(ctx context.Context, ownerID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Gig{}).Where("owner_id = ?", ownerID).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("gig: count by owner: %w", err)
	}
	return n, nil
}

// TryAssign is a single conditional UPDATE; RowsAffected tells whether this
// caller won the transition.
func (r *Repository) TryAssign(ctx context.Context, id string, expected Status) (*Gig, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&Gig{}).
		Where("id = ? AND status = ?", id, expected).
		Updates(map[string]any{
			"status":      StatusAssigned,
			"assigned_at": now,
			"updated_at":  now,
		})
	if tx.Error != nil {
		return nil, fmt.Errorf("gig: try assign: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *Repository) Reopen(ctx context.Context, id string) error {
	tx := r.db.WithContext(ctx).
		Model(&Gig{}).
		Where("id = ? AND status = ?", id, StatusAssigned).
		Updates(map[string]any{
			"status":      StatusOpen,
			"assigned_at": nil,
			"updated_at":  time.Now().UTC(),
		})
	if tx.Error != nil {
		return fmt.Errorf("gig: reopen: %w", tx.Error)
	}
	return nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Gig{}).Error
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
