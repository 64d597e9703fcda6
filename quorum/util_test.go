package quorum

import (
	"crypto/sha256"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/iykyk-syn/narwhal/batch"
	"github.com/iykyk-syn/narwhal/crypto/ed25519"
	"github.com/iykyk-syn/narwhal/crypto/local"
	"github.com/iykyk-syn/narwhal/validator"
)

// newTestCommittee builds an includers set with one member per given stake.
// The returned signers are index-aligned with the stakes, not with the
// stake-ordered set.
func newTestCommittee(t *testing.T, stakes ...int64) (*validator.Includers, []*local.Signer) {
	t.Helper()

	incls := make([]*validator.Includer, len(stakes))
	signers := make([]*local.Signer, len(stakes))
	for i, stake := range stakes {
		pub, priv, err := ed25519.GenKeys()
		require.NoError(t, err)

		signer, err := local.NewSigner(priv)
		require.NoError(t, err)

		incls[i] = validator.NewIncluder(pub, stake)
		signers[i] = signer
	}
	return validator.NewIncludersSet(incls), signers
}

func newTestHeader(t *testing.T, author []byte, round uint64) *batch.Header {
	t.Helper()

	txs := make([][]byte, 3)
	for i := range txs {
		h := sha256.Sum256([]byte{byte(round), byte(i)})
		txs[i] = h[:]
	}

	header := batch.NewHeader(author, round, time.Now().Unix(), txs, nil)
	require.NoError(t, header.Validate())
	return header
}

// signHeader collects signatures over the header id from the given signers
// in the given order.
func signHeader(t *testing.T, header *batch.Header, signers ...*local.Signer) *SignatureSet {
	t.Helper()

	set := NewSignatureSet()
	for _, signer := range signers {
		sig, err := signer.Sign(header.Hash())
		require.NoError(t, err)
		require.NoError(t, set.Insert(sig))
	}
	return set
}
