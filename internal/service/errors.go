package service

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrInvalidPrice     = errors.New("invalid price")
	ErrInvalidSignature = errors.New("invalid signature")
)
