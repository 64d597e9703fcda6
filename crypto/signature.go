package crypto

// Signature is a tuple containing signature body and reference to signing identity.
type Signature struct {
	// Body of the signature.
	Body []byte
	// Signer identity who produced the signature.
	Signer []byte
}

// Signer encapsulates and separates asymmetric cryptographic schema out of certification
// logic together with private key management.
type Signer interface {
	// ID returns Signer identity like public key
	ID() []byte
	// Sign produces a cryptographic Signature over the given data with internally managed identity.
	Sign([]byte) (Signature, error)
	// Verify performs cryptographic Signature verification of the given data.
	Verify([]byte, Signature) error
}
