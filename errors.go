package wadlevel

import "errors"

// Sentinel errors for archive and level operations. All errors returned by
// this package wrap one of these, so callers can match with errors.Is.
var (
	// ErrBadMagic indicates the archive header is not an IWAD or PWAD.
	ErrBadMagic = errors.New("wadlevel: bad magic")

	// ErrBadLumpSize indicates a lump's byte length is not an exact
	// multiple of the record size it was decoded as.
	ErrBadLumpSize = errors.New("wadlevel: lump size not a multiple of record size")

	// ErrLevelNotFound indicates the requested level has no marker lump
	// in the archive.
	ErrLevelNotFound = errors.New("wadlevel: no such level")

	// ErrInvalidIndex indicates a stored cross-reference points outside
	// its target sequence. This is a data-integrity violation in the
	// source file; the operation that hits it fails rather than clamping.
	ErrInvalidIndex = errors.New("wadlevel: index out of range")

	// ErrMissingSidedef indicates a seg's designated front side has no
	// sidedef. The format guarantees a front side; absence means the
	// input is corrupt.
	ErrMissingSidedef = errors.New("wadlevel: seg has no front sidedef")
)
