package bid

import (
	"net/http"

	"gigflow/internal/pkg/apperr"
)

var (
	ErrValidation      = apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "Gig, message and a non-negative price are required")
	ErrBidNotFound     = apperr.New(apperr.KindNotFound, "BID_NOT_FOUND", "Bid not found")
	ErrNotGigOwner     = apperr.New(apperr.KindForbidden, "FORBIDDEN", "Only the gig owner can do this")
	ErrGigNotOpen      = apperr.New(apperr.KindConflict, "GIG_NOT_OPEN", "This gig is no longer accepting bids").WithStatus(http.StatusBadRequest)
	ErrSelfBid         = apperr.New(apperr.KindConflict, "SELF_BID", "You cannot bid on your own gig").WithStatus(http.StatusBadRequest)
	ErrDuplicateBid    = apperr.New(apperr.KindConflict, "DUPLICATE_BID", "You have already submitted a bid for this gig").WithStatus(http.StatusBadRequest)
	ErrBidLimitReached = apperr.New(apperr.KindLimitExceeded, "BID_LIMIT_REACHED", "You have reached the maximum number of bids")

	ErrBidAlreadyProcessed = apperr.New(apperr.KindConflict, "BID_ALREADY_PROCESSED", "This bid has already been processed. Please refresh the page.")
)
