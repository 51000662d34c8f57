package timerecord

import "errors"

// Time record domain errors
var (
	// Clock errors
	ErrAlreadyClockedIn = errors.New("you are already clocked in")
	ErrNotClockedIn     = errors.New("you have not clocked in yet")

	// General errors
	ErrTimeRecordNotFound = errors.New("time record not found")
	ErrNothingToCorrect   = errors.New("correction must change the type or the timestamp")
	ErrFutureTimestamp    = errors.New("timestamp must not be in the future")
	ErrPhotoNotFound      = errors.New("time record has no photo")
)
