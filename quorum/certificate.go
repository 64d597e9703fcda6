// Package quorum implements batch certificates: the proof that a batch
// header proposed by one includer was acknowledged by a quorum of the
// includers set. It covers signature accumulation, quorum validation with
// exact stake arithmetic, canonical certificate identity and the wire codec.
package quorum

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	"github.com/iykyk-syn/narwhal/batch"
	"github.com/iykyk-syn/narwhal/crypto"
	"github.com/iykyk-syn/narwhal/validator"
)

// Certificate proves that a batch header was acknowledged by a quorum of the
// includers set. It is immutable once constructed: collecting a late
// signature means building a new Certificate, never editing an existing one,
// so the id always matches the content.
type Certificate struct {
	header     *batch.Header
	signatures *SignatureSet

	id []byte
}

// FromSignatures seals the given signature set over the header into a
// Certificate. It fails with [*QuorumNotReachedError] unless the set carries
// strictly more than two thirds of the committee stake, and with
// [ErrSignerNotInCommittee] if any signer is unknown to the includers.
// The set is consumed: the caller must not mutate it afterwards.
func FromSignatures(
	header *batch.Header,
	signatures *SignatureSet,
	includers *validator.Includers,
) (*Certificate, error) {
	if err := header.Validate(); err != nil {
		return nil, fmt.Errorf("validating header: %w", err)
	}
	if includers.GetByPubKey(header.Author()) == nil {
		return nil, fmt.Errorf("author %w", ErrSignerNotInCommittee)
	}

	stake, err := signatures.TotalStake(includers)
	if err != nil {
		return nil, err
	}
	if required := includers.QuorumStake(); stake < required {
		return nil, &QuorumNotReachedError{Stake: stake, Required: required}
	}

	return &Certificate{
		header:     header,
		signatures: signatures,
		id:         computeID(header.Hash(), signatures.Signatures()),
	}, nil
}

// Header returns the certified batch header.
func (c *Certificate) Header() *batch.Header {
	return c.header
}

// Signatures provides all the signatures in the certificate in collection order.
func (c *Certificate) Signatures() []crypto.Signature {
	return c.signatures.Signatures()
}

// Round is the round of the certified header.
func (c *Certificate) Round() uint64 {
	return c.header.Round()
}

// ID is the certificate identity, computed once at construction as
// sha256(header id, signatures ordered by signer). Collection order of an
// otherwise identical signature set never changes the id.
func (c *Certificate) ID() []byte {
	return c.id
}

func (c *Certificate) String() string {
	return fmt.Sprintf("%X", c.id)
}

// Equals reports whether both certificates carry the same id.
func (c *Certificate) Equals(other *Certificate) bool {
	return bytes.Equal(c.id, other.id)
}

// Compare totally orders certificates by (round, id) for stable sequencing
// within the DAG.
func (c *Certificate) Compare(other *Certificate) int {
	if c.header.Round() != other.header.Round() {
		if c.header.Round() < other.header.Round() {
			return -1
		}
		return 1
	}
	return bytes.Compare(c.id, other.id)
}

// computeID derives the certificate id over the header id and the signatures
// sorted bytewise by signer. Sorting fixes a total order independent of how
// the signatures were collected.
func computeID(headerHash []byte, signatures []crypto.Signature) []byte {
	sorted := make([]crypto.Signature, len(signatures))
	copy(sorted, signatures)
	sort.Slice(sorted, func(i, j int) bool {
		return bytes.Compare(sorted[i].Signer, sorted[j].Signer) < 0
	})

	h := sha256.New()
	h.Write(headerHash)
	for _, sig := range sorted {
		h.Write(sig.Signer)
		h.Write(sig.Body)
	}
	return h.Sum(nil)
}
