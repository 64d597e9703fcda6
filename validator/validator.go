package validator

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"sort"

	"github.com/iykyk-syn/narwhal/crypto"
)

// MaxStake - the maximum allowed total voting power.
const MaxStake = int64(math.MaxInt64) / 8

// Includer is a single committee member eligible to acknowledge batches,
// together with its stake weight.
type Includer struct {
	PubKey crypto.PubKey

	Stake int64
}

func NewIncluder(pK crypto.PubKey, stake int64) *Includer {
	return &Includer{
		PubKey: pK,
		Stake:  stake,
	}
}

// Validate performs basic validation.
func (i *Includer) Validate() error {
	if i == nil {
		return errors.New("nil includer")
	}
	if i.PubKey == nil {
		return errors.New("includer does not have a public key")
	}

	if i.Stake < 0 {
		return errors.New("includer has negative voting power")
	}
	return nil
}

// Includers is the committee for a single round: all members eligible to sign,
// sorted by the voting power in a decreasing order
type Includers struct {
	includers []*Includer

	totalStake int64
}

func NewIncludersSet(v []*Includer) *Includers {
	set := &Includers{includers: v}
	sort.Sort(set)
	return set
}

func (incl *Includers) Validate() error {
	if incl == nil || len(incl.includers) == 0 {
		return errors.New("includers are nil or empty")
	}

	for idx, i := range incl.includers {
		if err := i.Validate(); err != nil {
			return fmt.Errorf("invalid includer #%d: %w", idx, err)
		}
	}

	return nil
}

func (incl *Includers) GetByPubKey(pubK []byte) *Includer {
	for _, v := range incl.includers {
		if v.PubKey.Equals(pubK) {
			return v
		}
	}
	return nil
}

// IndexByPubKey returns the position of the member with the given key within
// the stake-ordered set, or -1 when the key is not a member. The index is
// stable for a given set and is used as a compact member identifier.
func (incl *Includers) IndexByPubKey(pubK []byte) int {
	for i, v := range incl.includers {
		if v.PubKey.Equals(pubK) {
			return i
		}
	}
	return -1
}

func (incl *Includers) TotalStake() int64 {
	if incl.totalStake == 0 {
		incl.updateTotalStake()
	}
	return incl.totalStake
}

// QuorumStake is the minimal aggregate stake a certificate must carry:
// strictly more than two thirds of the total. Integer arithmetic only,
// floor(2T/3)+1 is exactly the strict bound.
func (incl *Includers) QuorumStake() int64 {
	return incl.TotalStake()*2/3 + 1
}

func (incl *Includers) updateTotalStake() {
	sum := int64(0)
	for _, val := range incl.includers {
		// mind overflow
		sum = safeAddClip(sum, val.Stake)
		if sum > MaxStake {
			panic(fmt.Sprintf(
				"Total voting power exceeds MaxStake: %v; got: %v",
				MaxStake,
				sum))
		}
	}
	incl.totalStake = sum
}

func (incl *Includers) Len() int { return len(incl.includers) }

func (incl *Includers) Less(i, j int) bool {
	if incl.includers[i].Stake == incl.includers[j].Stake {
		return bytes.Compare(incl.includers[i].PubKey.Bytes(), incl.includers[j].PubKey.Bytes()) == -1
	}
	return incl.includers[i].Stake > incl.includers[j].Stake
}

func (incl *Includers) Swap(i, j int) {
	incl.includers[i], incl.includers[j] = incl.includers[j], incl.includers[i]
}

func safeAddClip(a, b int64) int64 {
	c, overflow := safeAdd(a, b)
	if overflow {
		if b < 0 {
			return math.MinInt64
		}
		return math.MaxInt64
	}
	return c
}

func safeAdd(a, b int64) (int64, bool) {
	if b > 0 && a > math.MaxInt64-b {
		return -1, true
	} else if b < 0 && a < math.MinInt64-b {
		return -1, true
	}
	return a + b, false
}
