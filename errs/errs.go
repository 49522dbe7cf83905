// Package errs defines the sentinel errors shared by every nbt package.
//
// Errors returned by the codec, path engine, SNBT transcoder and region container
// wrap one of these values, so callers classify failures with errors.Is:
//
//	doc, err := codec.Decode(data)
//	if errors.Is(err, errs.ErrMalformedInput) {
//	    // truncated or corrupt input
//	}
package errs

import "errors"

// Decoding and encoding errors.
var (
	// ErrMalformedInput reports truncated buffers, unknown tag type ids, invalid string
	// encoding or a corrupt compressed stream.
	ErrMalformedInput = errors.New("malformed input")

	// ErrUnsupportedCompression reports a compression type or region scheme id the
	// library does not implement.
	ErrUnsupportedCompression = errors.New("unsupported compression")

	// ErrListTypeMismatch reports an element whose type differs from the list's
	// element type.
	ErrListTypeMismatch = errors.New("list element type mismatch")

	// ErrValueTooLarge reports a value that cannot be represented in the binary
	// layout, such as a string longer than 65535 encoded bytes.
	ErrValueTooLarge = errors.New("value too large")
)

// Path engine errors.
var (
	// ErrInvalidPath reports a path expression that does not follow the path grammar.
	ErrInvalidPath = errors.New("invalid path")

	// ErrPathNotFound reports a missing compound key or an out-of-range list index.
	ErrPathNotFound = errors.New("path not found")

	// ErrIndexOutOfRange reports a list index outside [0, len). Errors wrapping it
	// also match ErrPathNotFound.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrTypeMismatch reports a tag of the wrong kind for the requested operation.
	ErrTypeMismatch = errors.New("type mismatch")
)

// Text and container errors.
var (
	// ErrSyntax reports invalid SNBT text.
	ErrSyntax = errors.New("snbt syntax error")

	// ErrInvalidCoordinates reports region grid coordinates outside [0, 32).
	ErrInvalidCoordinates = errors.New("invalid chunk coordinates")

	// ErrInvalidOption reports an option value rejected at configuration time.
	ErrInvalidOption = errors.New("invalid option")
)
