package wire3

import "errors"

// Encode/decode error sentinels. Wrap with fmt.Errorf("...: %w", err) at
// call boundaries that need extra context.
var (
	// ErrNegativeInput is returned by EncodeUvarintChecked when asked to
	// encode a negative value. This is a programmer error, not a wire condition.
	ErrNegativeInput = errors.New("wire3: negative input")

	// ErrInvalidMarker is returned by DecodeUvarint when the first byte does
	// not belong to any of the recognized range markers. Every byte value
	// 0-255 is in fact covered by the range table, so this is unreachable
	// from this package's own decoder; it exists for decoders layered on
	// top that pre-validate a marker byte before dispatching here.
	ErrInvalidMarker = errors.New("wire3: invalid marker")

	// ErrTruncated is returned when the buffer ends before the form implied
	// by the first byte is fully present.
	ErrTruncated = errors.New("wire3: truncated")
)
