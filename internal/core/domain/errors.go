package domain

import "errors"

var (
	ErrInvalidArguments  = errors.New("invalid arguments")
	ErrImageNotAvailable = errors.New("image not available")
	ErrChecksumMismatch  = errors.New("checksum mismatch")
	ErrNoChecksum        = errors.New("manifest entry has no sha256")
)
