// Package pbkdf2key derives the WinZip AE-x key/verification block used to
// cheaply reject most password candidates against an AES-encrypted ZIP
// entry before attempting the expensive decrypt-and-read path.
package pbkdf2key

import (
	"crypto/sha1" //nolint:gosec // PBKDF2-HMAC-SHA1 is the WinZip AE-x specified construction, not a choice
	"golang.org/x/crypto/pbkdf2"
)

// DerivedLen returns the PBKDF2 output length for a given AES key length:
// 2*keyLen+2 bytes (keyLen bytes of encryption key, keyLen bytes of HMAC
// authentication key, 2 bytes of password-verification value).
func DerivedLen(keyLen int) int {
	return 2*keyLen + 2
}

// Derive runs PBKDF2-HMAC-SHA1 with 1000 iterations, as mandated by the
// WinZip AE-1/AE-2 specification, producing derivedLen bytes.
func Derive(password string, salt []byte, derivedLen int) []byte {
	return pbkdf2.Key([]byte(password), salt, 1000, derivedLen, sha1.New)
}

// VerificationTail returns the last two bytes of a derived key block, which
// must equal the entry's stored verification value for password to be a
// plausible (not yet confirmed) match.
func VerificationTail(derived []byte) [2]byte {
	n := len(derived)
	return [2]byte{derived[n-2], derived[n-1]}
}

// Matches reports whether password's derived key block's verification tail
// equals the entry's stored verification value. A true result is a necessary
// but not sufficient condition for a correct password: the caller must still
// attempt a full decrypt-and-read to rule out the ~1/65536 false-accept rate.
func Matches(password string, salt []byte, keyLen int, verification [2]byte) bool {
	derived := Derive(password, salt, DerivedLen(keyLen))
	return VerificationTail(derived) == verification
}
