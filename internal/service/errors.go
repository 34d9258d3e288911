package service

import "errors"

var (
	ErrNotFound           = errors.New("record not found")
	ErrDuplicateEmail     = errors.New("user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAlreadyClaimed     = errors.New("donation already claimed by an organization")
	ErrAlreadyAssigned    = errors.New("donation already assigned to a volunteer")
	ErrTrackingCollision  = errors.New("could not generate a unique tracking id")
	ErrInvalidStatus      = errors.New("invalid donation status")
)
