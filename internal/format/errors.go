package format

import "errors"

var (
	// ErrTruncated indicates the buffer lacked the bytes required for a structure.
	ErrTruncated = errors.New("format: truncated buffer")
	// ErrSignatureMismatch indicates a structure had an unexpected magic.
	ErrSignatureMismatch = errors.New("format: signature mismatch")

	// Entry size rejections. These classify a signature match as a false
	// positive; the scanner recovers by stepping past the match, so none
	// of them ever aborts a parse.

	// ErrZeroSize indicates an entry declared a size of zero.
	ErrZeroSize = errors.New("format: entry size is zero")
	// ErrSizeTooLarge indicates an entry declared a size at or above MaxEntrySize.
	ErrSizeTooLarge = errors.New("format: entry size too large")
	// ErrTruncatedRecord indicates the declared size runs past the buffer end.
	ErrTruncatedRecord = errors.New("format: entry runs past buffer end")
)
