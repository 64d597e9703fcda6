package quorum

import (
	"context"
	"fmt"

	"github.com/bits-and-blooms/bitset"
	"golang.org/x/sync/errgroup"

	"github.com/iykyk-syn/narwhal/crypto"
	"github.com/iykyk-syn/narwhal/validator"
)

// SignatureVerifier checks a batch of signatures over a common message
// against the committee keys. Implementations differ only in execution
// strategy and must be interchangeable: the serial verifier fails fast on the
// first invalid entry, the parallel one surfaces whichever failure is
// observed first. Either way an invalid certificate never verifies.
type SignatureVerifier interface {
	VerifySignatures(ctx context.Context, msg []byte, signatures []crypto.Signature, includers *validator.Includers) error
}

// Serial verifies signatures one by one on the calling goroutine.
// This is the scalar strategy, safe for single-threaded targets.
func Serial() SignatureVerifier {
	return serialVerifier{}
}

type serialVerifier struct{}

func (serialVerifier) VerifySignatures(
	_ context.Context,
	msg []byte,
	signatures []crypto.Signature,
	includers *validator.Includers,
) error {
	for _, sig := range signatures {
		if err := verifySignature(msg, sig, includers); err != nil {
			return err
		}
	}
	return nil
}

// Parallel verifies independent signatures of the same certificate
// concurrently. Semantics are identical to [Serial].
func Parallel() SignatureVerifier {
	return parallelVerifier{}
}

type parallelVerifier struct{}

func (parallelVerifier) VerifySignatures(
	ctx context.Context,
	msg []byte,
	signatures []crypto.Signature,
	includers *validator.Includers,
) error {
	wg, _ := errgroup.WithContext(ctx)
	for _, sig := range signatures {
		sig := sig
		wg.Go(func() error {
			return verifySignature(msg, sig, includers)
		})
	}
	return wg.Wait()
}

// verifySignature checks a single signature over msg under the committee's
// copy of the signer key, never the key material carried by the signature.
func verifySignature(msg []byte, sig crypto.Signature, includers *validator.Includers) error {
	includer := includers.GetByPubKey(sig.Signer)
	if includer == nil {
		return fmt.Errorf("%w: %X", ErrSignerNotInCommittee, sig.Signer)
	}
	if !includer.PubKey.VerifySignature(msg, sig.Body) {
		return &InvalidSignatureError{Signer: sig.Signer}
	}
	return nil
}

// Verify validates the certificate against the given includers set using the
// serial strategy. See [Certificate.VerifyWith].
func (c *Certificate) Verify(ctx context.Context, includers *validator.Includers) error {
	return c.VerifyWith(ctx, includers, Serial())
}

// VerifyWith re-validates the certificate as a receiver would: structural
// header checks, committee membership of the author and of every signer,
// aggregate stake against the quorum bound, and finally every signature over
// the header id. Cheap structural and weight checks run before any
// cryptography, so an underweight certificate is rejected without verifying
// a single signature.
//
// Verification is a pure function of the certificate and the includers
// snapshot passed in. It holds no locks and mutates no shared state, so
// independent certificates can be verified concurrently.
func (c *Certificate) VerifyWith(
	ctx context.Context,
	includers *validator.Includers,
	verifier SignatureVerifier,
) error {
	if err := c.header.Validate(); err != nil {
		return fmt.Errorf("validating header: %w", err)
	}
	if includers.GetByPubKey(c.header.Author()) == nil {
		return fmt.Errorf("author %w", ErrSignerNotInCommittee)
	}

	// membership and stake first, tracked per committee index to rule out
	// duplicate signers without rescanning the set
	seen := bitset.New(uint(includers.Len()))
	var stake int64
	for _, sig := range c.signatures.Signatures() {
		idx := includers.IndexByPubKey(sig.Signer)
		if idx < 0 {
			return fmt.Errorf("%w: %X", ErrSignerNotInCommittee, sig.Signer)
		}
		if seen.Test(uint(idx)) {
			return fmt.Errorf("%w: %X", ErrDuplicateSigner, sig.Signer)
		}
		seen.Set(uint(idx))
		stake = safeAddClip(stake, includers.GetByPubKey(sig.Signer).Stake)
	}
	if required := includers.QuorumStake(); stake < required {
		return &QuorumNotReachedError{Stake: stake, Required: required}
	}

	return verifier.VerifySignatures(ctx, c.header.Hash(), c.signatures.Signatures(), includers)
}
