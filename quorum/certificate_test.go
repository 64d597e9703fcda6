package quorum

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iykyk-syn/narwhal/crypto/ed25519"
	"github.com/iykyk-syn/narwhal/crypto/local"
)

func TestFromSignaturesQuorum(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	// committee of four with stake 1 each: quorum takes three members
	includers, signers := newTestCommittee(t, 1, 1, 1, 1)
	header := newTestHeader(t, signers[0].ID(), 1)

	// three signatures are enough
	cert, err := FromSignatures(header, signHeader(t, header, signers[:3]...), includers)
	require.NoError(t, err)
	require.NoError(t, cert.Verify(ctx, includers))
	require.Len(t, cert.Signatures(), 3)
	require.Len(t, cert.ID(), 32)

	// two are not, regardless of their validity
	_, err = FromSignatures(header, signHeader(t, header, signers[:2]...), includers)
	var quorumErr *QuorumNotReachedError
	require.ErrorAs(t, err, &quorumErr)
	require.EqualValues(t, 2, quorumErr.Stake)
	require.EqualValues(t, 3, quorumErr.Required)
}

func TestCertificateIDOrderIndependence(t *testing.T) {
	includers, signers := newTestCommittee(t, 1, 1, 1, 1)
	header := newTestHeader(t, signers[0].ID(), 1)

	one, err := FromSignatures(header, signHeader(t, header, signers[0], signers[1], signers[2]), includers)
	require.NoError(t, err)
	two, err := FromSignatures(header, signHeader(t, header, signers[2], signers[0], signers[1]), includers)
	require.NoError(t, err)

	require.Equal(t, one.ID(), two.ID())
	require.True(t, one.Equals(two))
}

func TestCertificateVerifyTampered(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	includers, signers := newTestCommittee(t, 1, 1, 1, 1)
	header := newTestHeader(t, signers[0].ID(), 1)

	set := signHeader(t, header, signers[:3]...)
	// flip one bit in the second signature
	tampered := set.Signatures()[1]
	tampered.Body[0] ^= 1

	cert, err := FromSignatures(header, set, includers)
	require.NoError(t, err)

	for name, verifier := range map[string]SignatureVerifier{
		"serial":   Serial(),
		"parallel": Parallel(),
	} {
		t.Run(name, func(t *testing.T) {
			err := cert.VerifyWith(ctx, includers, verifier)
			var sigErr *InvalidSignatureError
			require.ErrorAs(t, err, &sigErr)
			assert.EqualValues(t, tampered.Signer, sigErr.Signer)
		})
	}
}

func TestCertificateSignerOutsideCommittee(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	includers, signers := newTestCommittee(t, 1, 1, 1)
	header := newTestHeader(t, signers[0].ID(), 1)

	_, strangerPriv, err := ed25519.GenKeys()
	require.NoError(t, err)
	stranger, err := local.NewSigner(strangerPriv)
	require.NoError(t, err)

	// construction rejects unknown signers outright
	_, err = FromSignatures(header, signHeader(t, header, signers[0], signers[1], stranger), includers)
	require.ErrorIs(t, err, ErrSignerNotInCommittee)

	// a valid certificate stops verifying once the committee rotates the
	// signer out
	cert, err := FromSignatures(header, signHeader(t, header, signers...), includers)
	require.NoError(t, err)

	rotated, _ := newTestCommittee(t, 1, 1, 1)
	require.ErrorIs(t, cert.Verify(ctx, rotated), ErrSignerNotInCommittee)
}

func TestCertificateAuthorOutsideCommittee(t *testing.T) {
	includers, signers := newTestCommittee(t, 1, 1, 1)

	_, strangerPriv, err := ed25519.GenKeys()
	require.NoError(t, err)
	stranger, err := local.NewSigner(strangerPriv)
	require.NoError(t, err)

	header := newTestHeader(t, stranger.ID(), 1)
	_, err = FromSignatures(header, signHeader(t, header, signers...), includers)
	require.ErrorIs(t, err, ErrSignerNotInCommittee)
}

func TestCertificateOrdering(t *testing.T) {
	includers, signers := newTestCommittee(t, 1, 1, 1, 1)

	headerOne := newTestHeader(t, signers[0].ID(), 1)
	one, err := FromSignatures(headerOne, signHeader(t, headerOne, signers[:3]...), includers)
	require.NoError(t, err)

	headerTwo := newTestHeader(t, signers[1].ID(), 2)
	two, err := FromSignatures(headerTwo, signHeader(t, headerTwo, signers[:3]...), includers)
	require.NoError(t, err)

	require.Equal(t, -1, one.Compare(two))
	require.Equal(t, 1, two.Compare(one))
	require.Equal(t, 0, one.Compare(one))
	require.False(t, one.Equals(two))
}

func TestVerifyStrategiesAgree(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	t.Cleanup(cancel)

	includers, signers := newTestCommittee(t, 3, 2, 1, 1)
	header := newTestHeader(t, signers[0].ID(), 1)

	// stake 3+2 out of 7 is quorum
	cert, err := FromSignatures(header, signHeader(t, header, signers[0], signers[1]), includers)
	require.NoError(t, err)

	for name, verifier := range map[string]SignatureVerifier{
		"serial":   Serial(),
		"parallel": Parallel(),
	} {
		t.Run(name, func(t *testing.T) {
			require.NoError(t, cert.VerifyWith(ctx, includers, verifier))
		})
	}

	// stake 2+1+1 is not
	_, err = FromSignatures(header, signHeader(t, header, signers[1:]...), includers)
	var quorumErr *QuorumNotReachedError
	require.ErrorAs(t, err, &quorumErr)
	require.EqualValues(t, 4, quorumErr.Stake)
	require.EqualValues(t, 5, quorumErr.Required)
}
