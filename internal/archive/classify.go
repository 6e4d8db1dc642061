// Package archive opens a ZIP file, determines how its target entry is
// encrypted, and extracts the data a worker needs to test a password against
// it: a ZipCrypto entry needs nothing beyond the password itself; a WinZip
// AE-x (AES) entry additionally needs its salt and stored verification
// value, both read straight from the entry's local header since neither
// archive/zip nor yeka/zip surfaces them.
package archive

import (
	"archive/zip"
	"encoding/binary"
	"fmt"
)

// Mode identifies an entry's encryption scheme.
type Mode int

const (
	// ModeZipCrypto is the legacy "traditional" PKWARE stream cipher.
	ModeZipCrypto Mode = iota

	// ModeAES is WinZip AE-1/AE-2, PBKDF2-HMAC-SHA1 key derivation over
	// AES-CTR with an HMAC-SHA1-80 authentication code.
	ModeAES
)

// aeMethod is the compression method value ZIP entries use to signal WinZip
// AE-x encryption; the entry's real compression method is then recorded
// inside the 0x9901 extra field instead.
const aeMethod = 99

// Classification describes how to attempt passwords against one archive
// entry.
type Classification struct {
	Mode Mode

	EntryName string

	// KeyLen is the AES key length in bytes (16, 24, or 32). Zero for
	// ModeZipCrypto.
	KeyLen int

	// Salt and Verification are only populated for ModeAES.
	Salt         []byte
	Verification [2]byte

	// DerivedKeyLen is the PBKDF2 output length required to recover both
	// the AES key, the HMAC authentication key, and the verification tail.
	DerivedKeyLen int
}

// Classify opens path, locates the entry at entryIndex, and determines its
// encryption mode. For AES entries it additionally reads the entry's salt
// and verification value so a worker can cheaply pre-filter candidates
// before attempting a full decrypt.
func Classify(path string, entryIndex int) (Classification, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, path, err)
	}
	defer rc.Close()

	if entryIndex < 0 || entryIndex >= len(rc.File) {
		return Classification{}, fmt.Errorf("%w: index %d", ErrEntryNotFound, entryIndex)
	}

	f := rc.File[entryIndex]

	const flagEncrypted = 0x1
	if f.Flags&flagEncrypted == 0 {
		return Classification{}, fmt.Errorf("%w: %s", ErrArchiveNotEncrypted, f.Name)
	}

	if f.Method != aeMethod {
		return Classification{Mode: ModeZipCrypto, EntryName: f.Name}, nil
	}

	keyLen, err := parseAEKeyLength(f.Extra)
	if err != nil {
		return Classification{}, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, f.Name, err)
	}

	header, err := readAESHeader(path, f.Name, keyLen/2)
	if err != nil {
		return Classification{}, err
	}

	return Classification{
		Mode:          ModeAES,
		EntryName:     f.Name,
		KeyLen:        keyLen,
		Salt:          header.Salt,
		Verification:  header.Verification,
		DerivedKeyLen: 2*keyLen + 2,
	}, nil
}

// EntryNames returns the name of every entry in the archive, for commands
// that need to list or validate an --entry-index argument.
func EntryNames(path string) ([]string, error) {
	rc, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrInvalidArchive, path, err)
	}
	defer rc.Close()

	names := make([]string, len(rc.File))
	for i, f := range rc.File {
		names[i] = f.Name
	}

	return names, nil
}

// parseAEKeyLength scans an entry's extra field for the WinZip AE-x record
// (header ID 0x9901) and returns the AES key length in bytes implied by its
// strength byte.
func parseAEKeyLength(extra []byte) (int, error) {
	const aeHeaderID = 0x9901

	pos := 0
	for pos+4 <= len(extra) {
		id := binary.LittleEndian.Uint16(extra[pos:])
		size := int(binary.LittleEndian.Uint16(extra[pos+2:]))

		if pos+4+size > len(extra) {
			break
		}

		if id == aeHeaderID && size >= 7 {
			strength := extra[pos+4+4]

			switch strength {
			case 1:
				return 16, nil
			case 2:
				return 24, nil
			case 3:
				return 32, nil
			default:
				return 0, fmt.Errorf("unrecognized AES strength byte %d", strength)
			}
		}

		pos += 4 + size
	}

	return 0, fmt.Errorf("AE-x extra field (0x9901) not present")
}
