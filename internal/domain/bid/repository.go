package bid

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"gigflow/internal/database"
)

type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, b *Bid) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = StatusPending
	}
	if err := r.db.WithContext(ctx).Create(b).Error; err != nil {
		if database.IsUniqueViolation(err) {
			return ErrDuplicateBid
		}
		return fmt.Errorf("bid: create: %w", err)
	}
	return nil
}

func (r *Repository) GetByID(ctx context.Context, id string) (*Bid, error) {
	var b Bid
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrBidNotFound
		}
		return nil, fmt.Errorf("bid: get: %w", err)
	}
	return &b, nil
}

func (r *Repository) ListByGig(ctx context.Context, gigID string) ([]Bid, error) {
	var rows []Bid
	if err := r.db.WithContext(ctx).
		Where("gig_id = ?", gigID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("bid: list by gig: %w", err)
	}
	return rows, nil
}

func (r *Repository) ListByFreelancer(ctx context.Context, freelancerID string) ([]Bid, error) {
	var rows []Bid
	if err := r.db.WithContext(ctx).
		Where("freelancer_id = ?", freelancerID).
		Order("created_at DESC").
		Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("bid: list by freelancer: %w", err)
	}
	return rows, nil
}

func (r *Repository) ExistsForGigAndFreelancer(ctx context.Context, gigID, freelancerID string) (bool, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Bid{}).
		Where("gig_id = ? AND freelancer_id = ?", gigID, freelancerID).
		Count(&n).Error; err != nil {
		return false, fmt.Errorf("bid: exists: %w", err)
	}
	return n > 0, nil
}

func (r *Repository) CountByFreelancer(ctx context.Context, freelancerID string) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Bid{}).
		Where("freelancer_id = ?", freelancerID).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("bid: count: %w", err)
	}
	return n, nil
}

func (r *Repository) CountByFreelancerAndStatus(ctx context.Context, freelancerID string, status Status) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&Bid{}).
		Where("freelancer_id = ? AND status = ?", freelancerID, status).
		Count(&n).Error; err != nil {
		return 0, fmt.Errorf("bid: count by status: %w", err)
	}
	return n, nil
}

func (r *Repository) TryHire(ctx context.Context, bidID, gigID string, expected Status) (*Bid, error) {
	tx := r.db.WithContext(ctx).
		Model(&Bid{}).
		Where("id = ? AND gig_id = ? AND status = ?", bidID, gigID, expected).
		Updates(map[string]any{
			"status":     StatusHired,
			"updated_at": time.Now().UTC(),
		})
	if tx.Error != nil {
		return nil, fmt.Errorf("bid: try hire: %w", tx.Error)
	}
	if tx.RowsAffected == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, bidID)
}

func (r *Repository) RejectSiblings(ctx context.Context, gigID, excludeBidID string) (int64, error) {
	now := time.Now().UTC()
	tx := r.db.WithContext(ctx).
		Model(&Bid{}).
		Where("gig_id = ? AND id <> ? AND status = ?", gigID, excludeBidID, StatusPending).
		Updates(map[string]any{
			"status":      StatusRejected,
			"rejected_at": now,
			"updated_at":  now,
		})
	if tx.Error != nil {
		return 0, fmt.Errorf("bid: reject siblings: %w", tx.Error)
	}
	return tx.RowsAffected, nil
}

func (r *Repository) DeleteAll(ctx context.Context) error {
	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&Bid{}).Error
}
