package candidate

import "errors"

var (
	// ErrEmptyCharsetForGenerator is returned when a generator is constructed
	// over a zero-length charset.
	ErrEmptyCharsetForGenerator = errors.New("generator requires a non-empty charset")

	// ErrInvalidLengthRange is returned when min_len > max_len or min_len < 1.
	ErrInvalidLengthRange = errors.New("invalid length range")

	// ErrStartNotInCharset is returned when a restart password contains a
	// character outside the resolved charset.
	ErrStartNotInCharset = errors.New("starting password contains a character outside the charset")

	// ErrStartLengthOutOfRange is returned when a restart password's length
	// falls outside [min_len, max_len].
	ErrStartLengthOutOfRange = errors.New("starting password length outside configured range")

	// ErrDictionaryRead is returned for I/O failures opening or reading a
	// dictionary file.
	ErrDictionaryRead = errors.New("cannot read dictionary file")
)
