package gig

import "gigflow/internal/pkg/apperr"

var (
	ErrValidation         = apperr.New(apperr.KindValidation, "VALIDATION_ERROR", "Title, description and a non-negative budget are required")
	ErrGigNotFound        = apperr.New(apperr.KindNotFound, "GIG_NOT_FOUND", "Gig not found")
	ErrGigLimitReached    = apperr.New(apperr.KindLimitExceeded, "GIG_LIMIT_REACHED", "You have reached the maximum number of gigs")
	ErrGigAlreadyAssigned = apperr.New(apperr.KindConflict, "GIG_ALREADY_ASSIGNED", "This gig has already been assigned to another freelancer. Please refresh the page.")
)
