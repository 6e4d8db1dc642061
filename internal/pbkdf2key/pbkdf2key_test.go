package pbkdf2key

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerivedLen(t *testing.T) {
	require.Equal(t, 34, DerivedLen(16))
	require.Equal(t, 50, DerivedLen(24))
	require.Equal(t, 66, DerivedLen(32))
}

func TestMatches_VerificationTailRoundTrips(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	derived := Derive("correct horse", salt, DerivedLen(16))
	tail := VerificationTail(derived)

	require.True(t, Matches("correct horse", salt, 16, tail))
}

func TestMatches_WrongPasswordRejected(t *testing.T) {
	salt := []byte{1, 2, 3, 4, 5, 6, 7, 8}

	derived := Derive("correct horse", salt, DerivedLen(16))
	tail := VerificationTail(derived)

	require.False(t, Matches("incorrect horse", salt, 16, tail))
}

func TestDerive_IsDeterministic(t *testing.T) {
	salt := []byte{9, 9, 9, 9}

	a := Derive("pw", salt, DerivedLen(32))
	b := Derive("pw", salt, DerivedLen(32))

	require.Equal(t, a, b)
}

func TestDerive_DifferentSaltsDifferentOutput(t *testing.T) {
	a := Derive("pw", []byte{1}, DerivedLen(16))
	b := Derive("pw", []byte{2}, DerivedLen(16))

	require.NotEqual(t, a, b)
}
