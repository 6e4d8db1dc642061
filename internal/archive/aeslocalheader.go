package archive

import (
	"encoding/binary"
	"fmt"
	"io"
	"os"
)

const (
	localFileHeaderSignature = 0x04034b50
	centralDirSignature      = 0x02014b50
	eocdSignature            = 0x06054b50
)

// AESHeader holds the salt and password-verification value read directly
// from an AES-encrypted entry's own data stream. Neither archive/zip nor
// yeka/zip exposes this pair through a public accessor — both treat the
// entry's local header as a private implementation detail of their own Open
// method — so it is read here by hand, straight off disk.
type AESHeader struct {
	Salt         []byte
	Verification [2]byte
}

// readAESHeader locates name's local file header by re-scanning the
// archive's central directory, then reads the saltLen-byte salt and 2-byte
// verification value that immediately follow the header's name and extra
// fields.
func readAESHeader(path, name string, saltLen int) (AESHeader, error) {
	offset, err := localHeaderOffset(path, name)
	if err != nil {
		return AESHeader{}, err
	}

	f, err := os.Open(path)
	if err != nil {
		return AESHeader{}, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}
	defer f.Close()

	header := make([]byte, 30)
	if _, err := f.ReadAt(header, int64(offset)); err != nil {
		return AESHeader{}, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}

	if binary.LittleEndian.Uint32(header) != localFileHeaderSignature {
		return AESHeader{}, fmt.Errorf("%w: bad local file header signature for %q", ErrInvalidArchive, name)
	}

	nameLen := int(binary.LittleEndian.Uint16(header[26:]))
	extraLen := int(binary.LittleEndian.Uint16(header[28:]))
	dataStart := int64(offset) + 30 + int64(nameLen) + int64(extraLen)

	block := make([]byte, saltLen+2)
	if _, err := f.ReadAt(block, dataStart); err != nil {
		return AESHeader{}, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}

	var verification [2]byte
	copy(verification[:], block[saltLen:])

	return AESHeader{Salt: block[:saltLen], Verification: verification}, nil
}

// localHeaderOffset hand-parses the ZIP end-of-central-directory and central
// directory records to recover the raw relative-offset-of-local-header field
// for the entry named name.
func localHeaderOffset(path string, name string) (uint32, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}

	cdOffset, cdSize, err := findEOCD(f, info.Size())
	if err != nil {
		return 0, err
	}

	if _, err := f.Seek(int64(cdOffset), io.SeekStart); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}

	buf := make([]byte, cdSize)
	if _, err := io.ReadFull(f, buf); err != nil {
		return 0, fmt.Errorf("%w: %s: %w", ErrIoFailure, path, err)
	}

	pos := 0
	for pos+46 <= len(buf) {
		if binary.LittleEndian.Uint32(buf[pos:]) != centralDirSignature {
			break
		}

		nameLen := int(binary.LittleEndian.Uint16(buf[pos+28:]))
		extraLen := int(binary.LittleEndian.Uint16(buf[pos+30:]))
		commentLen := int(binary.LittleEndian.Uint16(buf[pos+32:]))
		relOffset := binary.LittleEndian.Uint32(buf[pos+42:])

		nameStart := pos + 46
		if nameStart+nameLen > len(buf) {
			break
		}

		if string(buf[nameStart:nameStart+nameLen]) == name {
			return relOffset, nil
		}

		pos = nameStart + nameLen + extraLen + commentLen
	}

	return 0, fmt.Errorf("%w: entry %q not found in central directory", ErrInvalidArchive, name)
}

// findEOCD returns the central directory's offset and size, as recorded in
// the end-of-central-directory record at the tail of the file.
func findEOCD(f *os.File, size int64) (cdOffset uint32, cdSize uint32, err error) {
	const minEOCD = 22

	searchSize := int64(minEOCD + 65536)
	if searchSize > size {
		searchSize = size
	}

	buf := make([]byte, searchSize)
	if _, err := f.ReadAt(buf, size-searchSize); err != nil && err != io.EOF {
		return 0, 0, fmt.Errorf("%w: %w", ErrIoFailure, err)
	}

	for i := len(buf) - minEOCD; i >= 0; i-- {
		if binary.LittleEndian.Uint32(buf[i:]) == eocdSignature {
			cdSize = binary.LittleEndian.Uint32(buf[i+12:])
			cdOffset = binary.LittleEndian.Uint32(buf[i+16:])

			return cdOffset, cdSize, nil
		}
	}

	return 0, 0, fmt.Errorf("%w: end of central directory record not found", ErrInvalidArchive)
}
