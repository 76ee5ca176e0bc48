package auctionerrors

import "errors"

// Repository-level errors
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrUsernameTaken   = errors.New("username already taken")
	ErrAuctionNotFound = errors.New("auction not found")
)

// business logic errors
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAuctionClosed      = errors.New("auction has ended")
	ErrBidTooLow          = errors.New("bid must be higher than current highest bid")
)
