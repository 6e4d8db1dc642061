package charset

import "errors"

var (
	// ErrUnknownPreset is returned when a preset string contains a code
	// outside {l,u,d,s,h,H}.
	ErrUnknownPreset = errors.New("unknown charset preset code")

	// ErrEmptyCharset is returned when resolution would otherwise produce
	// a charset with zero distinct characters.
	ErrEmptyCharset = errors.New("charset must not be empty")

	// ErrFileRead is returned when the charset file cannot be read.
	ErrFileRead = errors.New("cannot read charset file")
)
