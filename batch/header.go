// Package batch defines the batch header certified by the quorum package.
package batch

import (
	"bytes"
	"crypto/sha256"
	"fmt"
	"sort"

	"capnproto.org/go/capnp/v3"
	"github.com/iykyk-syn/narwhal/batch/batchmsg"
	"github.com/iykyk-syn/narwhal/crypto/ed25519"
)

// IDSize is the length of header and certificate ids in bytes.
const IDSize = sha256.Size

// Header describes a single batch proposed by an author for a round: the set
// of transmissions it carries and the certificates of the previous round it
// extends. A Header is immutable once constructed and hashes identically
// across processes for identical field values.
type Header struct {
	author    []byte
	round     uint64
	timestamp int64
	// hashes of transmissions (transactions or earlier certificates)
	// included in the batch, sorted bytewise
	transmissions [][]byte
	// ids of the previous round certificates the batch extends, sorted bytewise
	parents [][]byte

	hash []byte
}

// NewHeader assembles a header over the given transmission and parent
// certificate ids. Both id sets are deduplicated and sorted, so headers
// built from the same ids in any order encode and hash the same.
func NewHeader(
	author []byte,
	round uint64,
	timestamp int64,
	transmissions [][]byte,
	parents [][]byte,
) *Header {
	return &Header{
		author:        author,
		round:         round,
		timestamp:     timestamp,
		transmissions: canonicalize(transmissions),
		parents:       canonicalize(parents),
	}
}

func (h *Header) Author() []byte {
	return h.author
}

func (h *Header) Round() uint64 {
	return h.round
}

func (h *Header) Timestamp() int64 {
	return h.timestamp
}

func (h *Header) Transmissions() [][]byte {
	return h.transmissions
}

func (h *Header) Parents() [][]byte {
	return h.parents
}

// Hash computes the header id: sha256 over the canonical encoding.
// The id is cached after the first call.
func (h *Header) Hash() []byte {
	if h.hash != nil {
		return h.hash
	}

	bin, err := h.MarshalBinary()
	if err != nil {
		panic(err)
	}
	hsh := sha256.New()
	hsh.Write(bin)
	h.hash = hsh.Sum(nil)
	return h.hash
}

func (h *Header) String() string {
	return fmt.Sprintf("%X", h.Hash())
}

func (h *Header) MarshalBinary() ([]byte, error) {
	msg, seg, err := capnp.NewMessage(capnp.SingleSegment(nil))
	if err != nil {
		return nil, fmt.Errorf("creating a segment for capnp: %w", err)
	}

	header, err := batchmsg.NewRootHeader(seg)
	if err != nil {
		return nil, fmt.Errorf("converting segment to header: %w", err)
	}

	header.SetRound(h.round)
	header.SetTimestamp(h.timestamp)

	err = header.SetAuthor(h.author)
	if err != nil {
		return nil, err
	}

	tList, err := header.NewTransmissions(int32(len(h.transmissions)))
	if err != nil {
		return nil, err
	}

	for i, tx := range h.transmissions {
		err = tList.Set(i, tx)
		if err != nil {
			return nil, err
		}
	}

	pList, err := header.NewParents(int32(len(h.parents)))
	if err != nil {
		return nil, err
	}

	for i, pp := range h.parents {
		err = pList.Set(i, pp)
		if err != nil {
			return nil, err
		}
	}
	return msg.Marshal()
}

func (h *Header) UnmarshalBinary(data []byte) error {
	msg, err := capnp.Unmarshal(data)
	if err != nil {
		return err
	}

	header, err := batchmsg.ReadRootHeader(msg)
	if err != nil {
		return fmt.Errorf("converting received binary data to header: %w", err)
	}

	h.round = header.Round()
	h.timestamp = header.Timestamp()
	author, err := header.Author()
	if err != nil {
		return err
	}
	h.author = author

	tList, err := header.Transmissions()
	if err != nil {
		return err
	}

	transmissions := make([][]byte, tList.Len())
	for i := range transmissions {
		data, err := tList.At(i)
		if err != nil {
			return err
		}
		transmissions[i] = data
	}

	pList, err := header.Parents()
	if err != nil {
		return err
	}

	parents := make([][]byte, pList.Len())
	for i := range parents {
		data, err := pList.At(i)
		if err != nil {
			return err
		}
		parents[i] = data
	}

	h.transmissions = transmissions
	h.parents = parents
	h.hash = nil
	return nil
}

// Validate checks the header is structurally sound and in canonical form.
// Decoded headers that fail Validate must be discarded: their hash cannot be
// trusted to be canonical.
func (h *Header) Validate() error {
	if len(h.author) != ed25519.PublicKeySize {
		return fmt.Errorf("invalid author key length: %d", len(h.author))
	}
	if err := validateIDs(h.transmissions); err != nil {
		return fmt.Errorf("transmission ids: %w", err)
	}
	if err := validateIDs(h.parents); err != nil {
		return fmt.Errorf("parent certificate ids: %w", err)
	}
	return nil
}

// canonicalize copies, sorts and deduplicates a set of ids.
func canonicalize(ids [][]byte) [][]byte {
	out := make([][]byte, len(ids))
	copy(out, ids)
	sort.Slice(out, func(i, j int) bool {
		return bytes.Compare(out[i], out[j]) < 0
	})

	deduped := out[:0]
	for i, id := range out {
		if i > 0 && bytes.Equal(out[i-1], id) {
			continue
		}
		deduped = append(deduped, id)
	}
	return deduped
}

// validateIDs ensures ids are well-sized, strictly ascending and unique.
func validateIDs(ids [][]byte) error {
	for i, id := range ids {
		if len(id) != IDSize {
			return fmt.Errorf("invalid id length: %d", len(id))
		}
		if i > 0 && bytes.Compare(ids[i-1], id) >= 0 {
			return fmt.Errorf("ids are not sorted or contain duplicates")
		}
	}
	return nil
}
