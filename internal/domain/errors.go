package domain

import "errors"

var (
	ErrInvalidInput    = errors.New("invalid input")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrDomain          = errors.New("domain error")
	ErrConfiguration   = errors.New("configuration error")
)
