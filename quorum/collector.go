package quorum

import (
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/iykyk-syn/narwhal/batch"
	"github.com/iykyk-syn/narwhal/crypto"
	"github.com/iykyk-syn/narwhal/validator"
)

// Collector accumulates acknowledgement signatures for proposed batch headers
// until quorum. A header moves through exactly two states: pending while
// signatures are being collected, and sealed once the quorum stake is behind
// it. Sealing produces an immutable [Certificate]; signatures arriving after
// that are rejected with [ErrAlreadyCertified].
//
// Collector is not safe for concurrent use. Single ownership of the
// collection state is the caller's concern, the same way the broadcasting
// round owns its quorum state.
type Collector struct {
	includers *validator.Includers

	pending map[string]*pendingCert
	sealed  map[string]*Certificate

	log *slog.Logger
}

type pendingCert struct {
	header     *batch.Header
	signatures *SignatureSet
	stake      int64
}

func NewCollector(log *slog.Logger, includers *validator.Includers) *Collector {
	return &Collector{
		includers: includers,
		pending:   make(map[string]*pendingCert, includers.Len()),
		sealed:    make(map[string]*Certificate, includers.Len()),
		log:       log.With("module", "collector"),
	}
}

// Propose registers a header to collect signatures for.
func (c *Collector) Propose(header *batch.Header) error {
	if err := header.Validate(); err != nil {
		return fmt.Errorf("validating header: %w", err)
	}
	if c.includers.GetByPubKey(header.Author()) == nil {
		return fmt.Errorf("author %w", ErrSignerNotInCommittee)
	}

	key := string(header.Hash())
	if _, ok := c.pending[key]; ok {
		return errors.New("header is already proposed")
	}
	if _, ok := c.sealed[key]; ok {
		return ErrAlreadyCertified
	}

	c.pending[key] = &pendingCert{
		header:     header,
		signatures: NewSignatureSet(),
	}
	return nil
}

// AddSignature accounts a signature over the header with the given id.
// It reports true once the quorum stake is collected and the certificate is
// sealed. The signature is not cryptographically checked here: invalid
// signatures surface during certificate verification.
func (c *Collector) AddSignature(headerID []byte, s crypto.Signature) (bool, error) {
	key := string(headerID)
	if _, ok := c.sealed[key]; ok {
		return false, ErrAlreadyCertified
	}
	p, ok := c.pending[key]
	if !ok {
		return false, errors.New("no pending header for the given id")
	}

	includer := c.includers.GetByPubKey(s.Signer)
	if includer == nil {
		return false, fmt.Errorf("%w: %X", ErrSignerNotInCommittee, s.Signer)
	}

	if err := p.signatures.Insert(s); err != nil {
		return false, err
	}
	p.stake = safeAddClip(p.stake, includer.Stake)
	if p.stake > validator.MaxStake {
		panic(fmt.Sprintf(
			"Total stake exceeds MaxStake: %v; got: %v",
			validator.MaxStake,
			p.stake))
	}

	if p.stake < c.includers.QuorumStake() {
		return false, nil
	}

	cert, err := FromSignatures(p.header, p.signatures, c.includers)
	if err != nil {
		return false, fmt.Errorf("sealing certificate: %w", err)
	}
	delete(c.pending, key)
	c.sealed[key] = cert

	c.log.Debug("certified",
		"header", p.header,
		"round", p.header.Round(),
		"signers", p.signatures.Len(),
		"stake", p.stake,
	)
	return true, nil
}

// Get retrieves a sealed certificate by the id of its header.
func (c *Collector) Get(headerID []byte) (*Certificate, bool) {
	cert, ok := c.sealed[string(headerID)]
	return cert, ok
}

// Delete drops collection state for the header, pending or sealed.
func (c *Collector) Delete(headerID []byte) bool {
	key := string(headerID)
	if _, ok := c.pending[key]; ok {
		delete(c.pending, key)
		return true
	}
	if _, ok := c.sealed[key]; ok {
		delete(c.sealed, key)
		return true
	}
	return false
}

// List provides all sealed certificates ordered by (round, id).
func (c *Collector) List() []*Certificate {
	certs := make([]*Certificate, 0, len(c.sealed))
	for _, cert := range c.sealed {
		certs = append(certs, cert)
	}
	sort.Slice(certs, func(i, j int) bool {
		return certs[i].Compare(certs[j]) < 0
	})
	return certs
}

// Pending reports whether signatures are still being collected for the header.
func (c *Collector) Pending(headerID []byte) bool {
	_, ok := c.pending[string(headerID)]
	return ok
}
