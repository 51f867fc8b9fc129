package hire

import (
	"gigflow/internal/domain/bid"
	"gigflow/internal/domain/gig"
	"gigflow/internal/pkg/apperr"
)

var (
	ErrNotGigOwner      = apperr.New(apperr.KindForbidden, "FORBIDDEN", "Only the gig owner can hire for this gig")
	ErrCapacityExceeded = apperr.New(apperr.KindCapacityExceeded, "CAPACITY_EXCEEDED", "This freelancer has reached the maximum number of active hires")

	// Race losses, re-exported so callers can match on one package.
	ErrGigAlreadyAssigned  = gig.ErrGigAlreadyAssigned
	ErrBidAlreadyProcessed = bid.ErrBidAlreadyProcessed
)
