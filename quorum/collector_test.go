package quorum

import (
	"context"
	"testing"
	"time"

	"github.com/neilotoole/slogt"
	"github.com/stretchr/testify/require"

	"github.com/iykyk-syn/narwhal/crypto"
)

func TestCollectorSealsAtQuorum(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	includers, signers := newTestCommittee(t, 1, 1, 1, 1)
	collector := NewCollector(slogt.New(t), includers)

	header := newTestHeader(t, signers[0].ID(), 1)
	require.NoError(t, collector.Propose(header))
	require.Error(t, collector.Propose(header))
	require.True(t, collector.Pending(header.Hash()))

	// below quorum nothing is sealed
	for _, signer := range signers[:2] {
		sig, err := signer.Sign(header.Hash())
		require.NoError(t, err)

		completed, err := collector.AddSignature(header.Hash(), sig)
		require.NoError(t, err)
		require.False(t, completed)
	}
	_, ok := collector.Get(header.Hash())
	require.False(t, ok)

	// the third signature crosses the bound and seals the certificate
	sig, err := signers[2].Sign(header.Hash())
	require.NoError(t, err)
	completed, err := collector.AddSignature(header.Hash(), sig)
	require.NoError(t, err)
	require.True(t, completed)

	cert, ok := collector.Get(header.Hash())
	require.True(t, ok)
	require.NoError(t, cert.Verify(ctx, includers))
	require.False(t, collector.Pending(header.Hash()))

	// sealed means terminal: late signatures are rejected
	late, err := signers[3].Sign(header.Hash())
	require.NoError(t, err)
	_, err = collector.AddSignature(header.Hash(), late)
	require.ErrorIs(t, err, ErrAlreadyCertified)
}

func TestCollectorRejectsBadSignatures(t *testing.T) {
	includers, signers := newTestCommittee(t, 1, 1, 1)
	collector := NewCollector(slogt.New(t), includers)

	header := newTestHeader(t, signers[0].ID(), 1)
	require.NoError(t, collector.Propose(header))

	// unknown header
	sig, err := signers[0].Sign(header.Hash())
	require.NoError(t, err)
	_, err = collector.AddSignature([]byte("unknown"), sig)
	require.Error(t, err)

	// signer outside the committee
	_, strangers := newTestCommittee(t, 1)
	strangerSig, err := strangers[0].Sign(header.Hash())
	require.NoError(t, err)
	_, err = collector.AddSignature(header.Hash(), strangerSig)
	require.ErrorIs(t, err, ErrSignerNotInCommittee)

	// duplicate signer
	_, err = collector.AddSignature(header.Hash(), sig)
	require.NoError(t, err)
	dup := crypto.Signature{Signer: sig.Signer, Body: sig.Body}
	_, err = collector.AddSignature(header.Hash(), dup)
	require.ErrorIs(t, err, ErrDuplicateSigner)
}

func TestCollectorList(t *testing.T) {
	includers, signers := newTestCommittee(t, 1, 1, 1)
	collector := NewCollector(slogt.New(t), includers)

	rounds := []uint64{3, 1, 2}
	for _, round := range rounds {
		header := newTestHeader(t, signers[0].ID(), round)
		require.NoError(t, collector.Propose(header))

		for _, signer := range signers {
			sig, err := signer.Sign(header.Hash())
			require.NoError(t, err)
			_, err = collector.AddSignature(header.Hash(), sig)
			require.NoError(t, err)
		}
	}

	certs := collector.List()
	require.Len(t, certs, len(rounds))
	for i, cert := range certs {
		require.EqualValues(t, i+1, cert.Round())
	}

	require.True(t, collector.Delete(certs[0].Header().Hash()))
	require.Len(t, collector.List(), 2)
	require.False(t, collector.Delete(certs[0].Header().Hash()))
}
