package region

import "errors"

var (
	// ErrNoSpace indicates that no free slot was large enough and the
	// remaining bump space could not hold the request.
	ErrNoSpace = errors.New("region: no space left")

	// ErrBadHandle indicates a handle that is out of range, does not sit on a
	// header boundary, or names a slot that is not allocated where one is required.
	ErrBadHandle = errors.New("region: bad handle")

	// ErrCorrupt indicates the header chain could not be decoded where a
	// header was structurally expected.
	ErrCorrupt = errors.New("region: header chain corrupt")

	// ErrNotFound indicates FindFree found no eligible free slot.
	ErrNotFound = errors.New("region: no free slot large enough")

	// ErrNegativeSize indicates a negative byte count was requested.
	ErrNegativeSize = errors.New("region: negative size")

	// ErrTooLarge indicates the backing memory cannot be addressed by a Handle.
	ErrTooLarge = errors.New("region: backing memory exceeds handle range")
)
