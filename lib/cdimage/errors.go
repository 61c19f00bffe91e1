package cdimage

import "errors"

// Error taxonomy for disc loading and access. Callers should use errors.Is
// against these sentinels rather than comparing error strings.
var (
	// ErrOpenFailure means a CUE/ISO/LSD/binary companion file could not be opened.
	ErrOpenFailure = errors.New("cdimage: open failure")

	// ErrInvalidSize means a binary, ISO, or LSD file's size is not a correct multiple
	// of its record size.
	ErrInvalidSize = errors.New("cdimage: invalid file size")

	// ErrSyntax means a CUE sheet violated the accepted grammar.
	ErrSyntax = errors.New("cdimage: cue syntax error")

	// ErrSemantic means a CUE sheet was grammatically valid but violated a structural
	// rule (track numbering, index ordering, pregap/index placement, range checks).
	ErrSemantic = errors.New("cdimage: cue semantic error")

	// ErrUnknownExtension means Open was given a filename whose suffix is not recognized.
	ErrUnknownExtension = errors.New("cdimage: unknown file extension")

	// ErrIOFailure means a read or seek failed during an otherwise-valid operation.
	ErrIOFailure = errors.New("cdimage: i/o failure")

	// ErrOutOfRange means a seek or move targeted a position past the end of the disc.
	ErrOutOfRange = errors.New("cdimage: position out of range")
)
