package review

import "errors"

var (
	ErrReviewNotFound  = errors.New("review not found")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrForbiddenRole   = errors.New("only clients can leave reviews")
	ErrDuplicateReview = errors.New("this ride was already reviewed")
	ErrNotRideOwner    = errors.New("ride does not belong to this client")
	ErrDriverNotFound  = errors.New("driver not found")
)
