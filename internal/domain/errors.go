package domain

import "errors"

var (
	ErrRecordNotFound    = errors.New("record not found")
	ErrUserAlreadyExists = errors.New("user already exists")
	ErrDuplicateRecord   = errors.New("resource conflict or duplicate")
	ErrSeatTaken         = errors.New("seat(s) are already taken for this screening")
	ErrSeatNotInTheater  = errors.New("seat does not belong to the screening's theater")
	ErrScreeningOverlap  = errors.New("screening overlaps with an existing screening in this theater")
	ErrReviewNotAllowed  = errors.New("user has not seen this movie yet")
	ErrInvalidInput      = errors.New("invalid input")
)
