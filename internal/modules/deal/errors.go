package deal

import "errors"

var (
	ErrValidation     = errors.New("validation error")
	ErrNotFound       = errors.New("not_found")
	ErrForbidden      = errors.New("forbidden")
	ErrSelfDeal       = errors.New("cannot open a deal with yourself")
	ErrDealNotPending = errors.New("deal is no longer awaiting the recipient")

	// ErrAdminReviewStage guards the arbiter edge; the message is the
	// one surfaced to admins acting too early or too late.
	ErrAdminReviewStage = errors.New("Admin can only review deals after both parties have agreed to the terms")

	ErrDealNotApproved      = errors.New("deal is not approved")
	ErrReviewExists         = errors.New("review already submitted for this deal")
	ErrAssessmentNotAllowed = errors.New("five-star reviews cannot be assessed")
	ErrAssessmentExists     = errors.New("assessment already filed for this review")
	ErrAssessmentResolved   = errors.New("assessment already resolved")
)
