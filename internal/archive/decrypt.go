package archive

import (
	"fmt"
	"io"
	"strings"

	yekazip "github.com/yeka/zip"
)

// Decryptor holds an open archive handle so a worker can attempt many
// passwords against the same entry without reopening the file each time.
type Decryptor struct {
	rc    *yekazip.ReadCloser
	entry *yekazip.File
}

// OpenDecryptor opens path and locates entryIndex for repeated password
// attempts.
func OpenDecryptor(path string, entryIndex int) (*Decryptor, error) {
	rc, err := yekazip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, path, err)
	}

	if entryIndex < 0 || entryIndex >= len(rc.File) {
		_ = rc.Close()
		return nil, fmt.Errorf("%w: index %d", ErrEntryNotFound, entryIndex)
	}

	return &Decryptor{rc: rc, entry: rc.File[entryIndex]}, nil
}

// Close releases the underlying archive handle.
func (d *Decryptor) Close() error {
	return d.rc.Close()
}

// UncompressedSize returns the entry's declared uncompressed size, used to
// size the worker's scratch read buffer.
func (d *Decryptor) UncompressedSize() uint64 {
	return d.entry.UncompressedSize64
}

// TryPassword decrypts the entry with password and reads it through to the
// declared uncompressed size. It returns true only when every byte is read
// without error, which is what rules out ZipCrypto's ~1/256 and AES's
// ~1/65536 false-accept rate — a verification-tail or CRC match alone is not
// enough. buf must be at least UncompressedSize() bytes.
func (d *Decryptor) TryPassword(password string, buf []byte) (bool, error) {
	d.entry.SetPassword(password)

	rc, err := d.entry.Open()
	if err != nil {
		if isBadPasswordErr(err) {
			return false, nil
		}

		return false, fmt.Errorf("%w: %s: %w", ErrIoFailure, d.entry.Name, err)
	}
	defer rc.Close()

	n, err := io.ReadFull(rc, buf[:d.entry.UncompressedSize64])
	if err != nil {
		// A short or corrupt read this far in means the password produced
		// garbage plaintext, not that the archive itself is broken.
		return false, nil
	}

	return uint64(n) == d.entry.UncompressedSize64, nil
}

// isBadPasswordErr reports whether err is yeka/zip signaling a rejected
// password rather than a genuine I/O or format failure. The fork does not
// export a typed sentinel for this, so the message is matched defensively.
func isBadPasswordErr(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "password")
}
