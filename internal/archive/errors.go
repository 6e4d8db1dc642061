package archive

import "errors"

var (
	// ErrIoFailure wraps read/open failures against the archive file.
	ErrIoFailure = errors.New("archive io failure")

	// ErrInvalidArchive is returned for container parse failures other than
	// a missing or unencrypted entry.
	ErrInvalidArchive = errors.New("invalid archive")

	// ErrEntryNotFound is returned when the configured entry index is out
	// of range.
	ErrEntryNotFound = errors.New("entry not found")

	// ErrArchiveNotEncrypted is returned when the configured entry is not
	// password-protected.
	ErrArchiveNotEncrypted = errors.New("entry is not encrypted")
)
