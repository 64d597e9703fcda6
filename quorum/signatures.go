package quorum

import (
	"fmt"

	"github.com/iykyk-syn/narwhal/crypto"
	"github.com/iykyk-syn/narwhal/validator"
)

// SignatureSet accumulates signatures over a single batch header, one per
// signer. Iteration order is insertion order; duplicates are rejected rather
// than overwritten, so an adversary cannot replace an already accounted
// signature. No cryptographic checks happen on insertion: validity is
// deferred to certificate verification.
type SignatureSet struct {
	signatures []crypto.Signature
	signerIdxs map[string]int
}

func NewSignatureSet() *SignatureSet {
	return &SignatureSet{
		signerIdxs: make(map[string]int),
	}
}

// Insert adds the signature to the set.
// It fails with [ErrDuplicateSigner] if the signer is already present,
// leaving the set unchanged.
func (s *SignatureSet) Insert(sig crypto.Signature) error {
	key := string(sig.Signer)
	if _, ok := s.signerIdxs[key]; ok {
		return fmt.Errorf("%w: %X", ErrDuplicateSigner, sig.Signer)
	}

	s.signerIdxs[key] = len(s.signatures)
	s.signatures = append(s.signatures, sig)
	return nil
}

func (s *SignatureSet) Len() int {
	return len(s.signatures)
}

func (s *SignatureSet) Contains(signer []byte) bool {
	_, ok := s.signerIdxs[string(signer)]
	return ok
}

// Signatures provides all signatures in the set in insertion order.
func (s *SignatureSet) Signatures() []crypto.Signature {
	return s.signatures
}

// Range calls fn for every signature in insertion order until fn reports false.
func (s *SignatureSet) Range(fn func(crypto.Signature) bool) {
	for _, sig := range s.signatures {
		if !fn(sig) {
			return
		}
	}
}

// TotalStake sums the stake of every signer in the set against the given
// includers. A signer missing from the set of includers fails with
// [ErrSignerNotInCommittee] rather than contributing zero.
func (s *SignatureSet) TotalStake(includers *validator.Includers) (int64, error) {
	var total int64
	for _, sig := range s.signatures {
		includer := includers.GetByPubKey(sig.Signer)
		if includer == nil {
			return 0, fmt.Errorf("%w: %X", ErrSignerNotInCommittee, sig.Signer)
		}
		total = safeAddClip(total, includer.Stake)
		if total > validator.MaxStake {
			panic(fmt.Sprintf(
				"Total stake exceeds MaxStake: %v; got: %v",
				validator.MaxStake,
				total))
		}
	}
	return total, nil
}
