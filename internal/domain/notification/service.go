package notification

import (
	"context"
	"fmt"
	"time"

	"gigflow/internal/logger"
)

// Service records notifications and pushes realtime events. Every method is
// best effort: failures and notifier panics are logged, never returned.
type Service struct {
	store    Store
	notifier Notifier
}

func NewService(store Store, notifier Notifier) *Service {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Service{store: store, notifier: notifier}
}

func (s *Service) Create(ctx context.Context, userID string, t Type, message, gigID, bidID string) {
	n := &Notification{
		UserID:  userID,
		Type:    t,
		Message: message,
		GigID:   optional(gigID),
		BidID:   optional(bidID),
	}
	if err := s.store.Create(ctx, n); err != nil {
		logger.FromContext(ctx).Warn("persist notification failed",
			"user_id", userID,
			"type", t,
			"error", err,
		)
	}
}

func (s *Service) List(ctx context.Context, userID string) ([]Notification, error) {
	return s.store.ListByUser(ctx, userID)
}

// Push delivers a realtime event, recovering from notifier panics.
func (s *Service) Push(ctx context.Context, userID, event string, payload any) {
	defer func() {
		if r := recover(); r != nil {
			logger.FromContext(ctx).Error("notifier panicked",
				"user_id", userID,
				"event", event,
				"panic", fmt.Sprint(r),
			)
		}
	}()
	s.notifier.Notify(userID, event, payload)
}

func (s *Service) NotifyBidReceived(ctx context.Context, e BidReceived) {
	msg := fmt.Sprintf("New bid received for %q from %s", e.GigTitle, e.FreelancerName)
	s.Create(ctx, e.OwnerID, TypeBidReceived, msg, e.GigID, e.BidID)
	s.Push(ctx, e.OwnerID, EventNewBid, map[string]any{
		"bidId":          e.BidID,
		"gigId":          e.GigID,
		"gigTitle":       e.GigTitle,
		"freelancerId":   e.FreelancerID,
		"freelancerName": e.FreelancerName,
		"price":          e.Price,
		"message":        msg,
		"timestamp":      time.Now().UTC(),
	})
}

func (s *Service) NotifyHired(ctx context.Context, e Hired) {
	s.Create(ctx, e.FreelancerID, TypeHired,
		fmt.Sprintf("Congratulations! You have been hired for %q", e.GigTitle),
		e.GigID, e.BidID,
	)
	s.Push(ctx, e.FreelancerID, EventBidHired, map[string]any{
		"bidId":        e.BidID,
		"freelancerId": e.FreelancerID,
		"gigId":        e.GigID,
		"gigTitle":     e.GigTitle,
		"message":      fmt.Sprintf("You have been hired for %q!", e.GigTitle),
		"timestamp":    time.Now().UTC(),
	})
	s.Push(ctx, e.OwnerID, EventGigAssigned, map[string]any{
		"gigId":          e.GigID,
		"gigTitle":       e.GigTitle,
		"freelancerName": e.FreelancerName,
		"message":        fmt.Sprintf("You have hired %s for %q", e.FreelancerName, e.GigTitle),
	})
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
