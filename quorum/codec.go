package quorum

import (
	"fmt"

	"capnproto.org/go/capnp/v3"

	"github.com/iykyk-syn/narwhal/batch"
	"github.com/iykyk-syn/narwhal/crypto"
	"github.com/iykyk-syn/narwhal/crypto/ed25519"
	"github.com/iykyk-syn/narwhal/quorum/certmsg"
	"github.com/iykyk-syn/narwhal/validator"
)

// MarshalBinary serializes the certificate: the header's canonical bytes
// followed by signer ids and signature bodies in collection order.
func (c *Certificate) MarshalBinary() ([]byte, error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, fmt.Errorf("creating a segment for capnp: %w", err)
	}

	cert, err := certmsg.NewRootCertificate(seg)
	if err != nil {
		return nil, fmt.Errorf("converting segment to certificate: %w", err)
	}

	headerData, err := c.header.MarshalBinary()
	if err != nil {
		return nil, err
	}
	if err = cert.SetHeader(headerData); err != nil {
		return nil, err
	}

	signatures := c.signatures.Signatures()
	sList, err := cert.NewSigners(int32(len(signatures)))
	if err != nil {
		return nil, err
	}
	bList, err := cert.NewSignatures(int32(len(signatures)))
	if err != nil {
		return nil, err
	}

	for i, sig := range signatures {
		if err = sList.Set(i, sig.Signer); err != nil {
			return nil, err
		}
		if err = bList.Set(i, sig.Body); err != nil {
			return nil, err
		}
	}
	return msg.Marshal()
}

// DecodeCertificate deserializes and structurally validates a certificate
// against the given includers set. Structural rejections come first and are
// each surfaced as a distinct reason wrapping [ErrMalformedEncoding];
// no cryptographic check runs here. The decoded set then goes through
// [FromSignatures], so an underweight certificate never decodes. Callers
// still must Verify the result before accepting it.
func DecodeCertificate(data []byte, includers *validator.Includers) (*Certificate, error) {
	msg, err := capnp.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	cert, err := certmsg.ReadRootCertificate(msg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	headerData, err := cert.Header()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	header := new(batch.Header)
	if err = header.UnmarshalBinary(headerData); err != nil {
		return nil, fmt.Errorf("%w: unmarshalling header: %v", ErrMalformedEncoding, err)
	}
	if err = header.Validate(); err != nil {
		return nil, fmt.Errorf("%w: validating header: %v", ErrMalformedEncoding, err)
	}

	sList, err := cert.Signers()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}
	bList, err := cert.Signatures()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	if sList.Len() != bList.Len() {
		return nil, fmt.Errorf("%w: %d signers against %d signatures", ErrMalformedEncoding, sList.Len(), bList.Len())
	}
	if sList.Len() > includers.Len() {
		return nil, fmt.Errorf("%w: signature set larger than the committee: %d > %d", ErrMalformedEncoding, sList.Len(), includers.Len())
	}

	set := NewSignatureSet()
	for i := 0; i < sList.Len(); i++ {
		signer, err := sList.At(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
		}
		body, err := bList.At(i)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
		}

		if len(signer) != ed25519.PublicKeySize {
			return nil, fmt.Errorf("%w: invalid signer id length: %d", ErrMalformedEncoding, len(signer))
		}
		if len(body) != ed25519.SignatureSize {
			return nil, fmt.Errorf("%w: invalid signature length: %d", ErrMalformedEncoding, len(body))
		}

		if err = set.Insert(crypto.Signature{Signer: signer, Body: body}); err != nil {
			return nil, err
		}
	}

	return FromSignatures(header, set, includers)
}
