package charset

import (
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve_LowercaseUppercaseDigits(t *testing.T) {
	runes, err := Resolve("lud")
	require.NoError(t, err)

	require.Equal(t, byte('0'), byte(runes[0]))
	require.Contains(t, string(runes), "abc")
	require.Contains(t, string(runes), "ABC")
	require.Contains(t, string(runes), "789")
}

func TestResolve_DeduplicatesAndSorts(t *testing.T) {
	runes, err := Resolve("dd")
	require.NoError(t, err)
	require.Equal(t, []rune(digits), runes)
}

func TestResolve_UnknownCode(t *testing.T) {
	_, err := Resolve("lz")
	require.ErrorIs(t, err, ErrUnknownPreset)
}

func TestResolve_EmptyString(t *testing.T) {
	_, err := Resolve("")
	require.ErrorIs(t, err, ErrEmptyCharset)
}

func TestResolve_HexPresetsAreDistinctCase(t *testing.T) {
	lo, err := Resolve("h")
	require.NoError(t, err)
	require.Equal(t, []rune(hexLo), lo)

	up, err := Resolve("H")
	require.NoError(t, err)
	require.Equal(t, []rune(hexUp), up)
}

func TestResolve_SymbolsExcludeAlnum(t *testing.T) {
	runes, err := Resolve("s")
	require.NoError(t, err)

	for _, r := range runes {
		require.False(t, r >= '0' && r <= '9', "symbols must not include digits")
		require.False(t, r >= 'a' && r <= 'z', "symbols must not include lowercase")
		require.False(t, r >= 'A' && r <= 'Z', "symbols must not include uppercase")
	}
}

func TestFromFile_ReadsAndDedupsContent(t *testing.T) {
	path := t.TempDir() + "/charset.txt"
	require.NoError(t, os.WriteFile(path, []byte("ccbbaa"), 0o644))

	runes, err := FromFile(path)
	require.NoError(t, err)
	require.Equal(t, []rune("abc"), runes)
}

func TestFromFile_MissingFile(t *testing.T) {
	_, err := FromFile("/does/not/exist")
	require.ErrorIs(t, err, ErrFileRead)
}
