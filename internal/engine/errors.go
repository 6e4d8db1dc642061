package engine

import "errors"

// ErrCryptoFailure names spec §7's CryptoFailure kind. No code path returns
// it: golang.org/x/crypto/pbkdf2.Key does not itself return an error, and the
// worker does not validate the classification's salt before deriving.
var ErrCryptoFailure = errors.New("crypto failure")
