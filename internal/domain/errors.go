package domain

import "errors"

var (
	// ErrInvalidArgument marks caller-supplied values the domain rejects,
	// such as a non-positive day count or a malformed date.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrNotFound is returned when a region, lake, or locale ID is unknown.
	ErrNotFound = errors.New("not found")

	// ErrQueueFull is returned when a report request cannot be accepted
	// because the generation queue is at capacity.
	ErrQueueFull = errors.New("report queue full")
)
