package shortener

import "errors"

var (
	// ErrNotFound is returned when no record exists for a code.
	ErrNotFound = errors.New("short url not found")
	// ErrExpired is returned when a record's validity window has passed.
	ErrExpired = errors.New("short url expired")
	// ErrCodeExists is returned by stores when saving a code that is already taken.
	ErrCodeExists = errors.New("short code already exists")
	// ErrEmptyURL is returned when the submitted URL is empty or whitespace.
	ErrEmptyURL = errors.New("url is empty")
	// ErrInvalidURL is returned when the submitted URL is not a well-formed absolute URL.
	ErrInvalidURL = errors.New("url is not a valid absolute url")
	// ErrInvalidValidity is returned when the validity text is not a positive integer.
	ErrInvalidValidity = errors.New("validity must be a positive number of minutes")
	// ErrCodeSpaceExhausted is returned when code generation keeps colliding.
	ErrCodeSpaceExhausted = errors.New("could not generate a unique short code")
)
