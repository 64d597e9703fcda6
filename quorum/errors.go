package quorum

import (
	"errors"
	"fmt"
)

var (
	// ErrDuplicateSigner is returned on an attempt to account a second
	// signature from the same signer.
	ErrDuplicateSigner = errors.New("duplicate signature from the signer")
	// ErrSignerNotInCommittee is returned when a signer is not a part of
	// the includers set the certificate is validated against. This is a hard
	// failure: it indicates either stale committee data or an attack.
	ErrSignerNotInCommittee = errors.New("signer is not a part of the includers set")
	// ErrMalformedEncoding is returned by decoding on structurally invalid
	// input, before any cryptographic check is attempted.
	ErrMalformedEncoding = errors.New("malformed certificate encoding")
	// ErrAlreadyCertified is returned on an attempt to add a signature to a
	// certificate that has already been sealed.
	ErrAlreadyCertified = errors.New("certificate is already sealed")
)

// QuorumNotReachedError reports that the aggregate stake behind a signature
// set is below the committee quorum.
type QuorumNotReachedError struct {
	Stake    int64
	Required int64
}

func (e *QuorumNotReachedError) Error() string {
	return fmt.Sprintf("quorum not reached: got stake %d, need at least %d", e.Stake, e.Required)
}

// InvalidSignatureError reports a signature that does not verify over the
// certified header under the signer's committee key.
type InvalidSignatureError struct {
	Signer []byte
}

func (e *InvalidSignatureError) Error() string {
	return fmt.Sprintf("invalid signature from %X", e.Signer)
}
