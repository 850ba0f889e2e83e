package canchi

import (
	"errors"
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Errors returned by this package.
var (
	ErrInvalidPair  = errors.New("invalid can-chi")
	ErrInvalidYear  = errors.New("invalid lunar year")
	ErrInvalidMonth = errors.New("invalid lunar month")
	ErrInvalidHour  = errors.New("invalid hour")
)

// Pair is a Can-Chi designation such as "Giáp Tý".
type Pair struct {
	Stem   Stem
	Branch Branch
}

// NewPair builds a pair from a stem and a branch index.
func NewPair(stem, branch int) (Pair, error) {
	s, err := NewStem(stem)
	if err != nil {
		return Pair{}, err
	}
	b, err := NewBranch(branch)
	if err != nil {
		return Pair{}, err
	}
	return Pair{Stem: s, Branch: b}, nil
}

// String returns the display form "Stem Branch".
func (p Pair) String() string {
	return p.Stem.Name() + " " + p.Branch.Name()
}

// Authentic reports whether the pair occurs in the 60-term cycle. Only pairs
// whose stem and branch share parity are reachable from calendar arithmetic.
func (p Pair) Authentic() bool {
	return p.Stem.Valid() && p.Branch.Valid() && int(p.Stem)%2 == int(p.Branch)%2
}

// Index60 returns the position of the pair in the sexagesimal cycle, with
// Giáp Tý at 0 and Quý Hợi at 59. It returns -1 for pairs that are not
// authentic.
func (p Pair) Index60() int {
	if !p.Authentic() {
		return -1
	}
	// Traditional stem index, Giáp = 0.
	s := mod(int(p.Stem)-int(Giap), StemCount)
	b := int(p.Branch)
	for i := s; i < 60; i += StemCount {
		if i%BranchCount == b {
			return i
		}
	}
	return -1
}

// MarshalText encodes the pair in its display form.
func (p Pair) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText decodes a display string via ParseCanChi.
func (p *Pair) UnmarshalText(text []byte) error {
	parsed, err := ParseCanChi(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}

// Tị is a common alternate spelling of Tỵ.
var branchAliases = map[string]Branch{
	"Tị": Ty,
}

// ParseCanChi decodes a display string such as "Giáp Tý". Input is
// NFC-normalized first so decomposed diacritics still match. Pairs that are
// not authentic are decoded without error.
func ParseCanChi(s string) (Pair, error) {
	fields := strings.Fields(norm.NFC.String(s))
	if len(fields) != 2 {
		return Pair{}, fmt.Errorf("%w: %q", ErrInvalidPair, s)
	}

	stem, ok := lookupStem(fields[0])
	if !ok {
		return Pair{}, fmt.Errorf("%w: unknown stem %q", ErrInvalidPair, fields[0])
	}
	branch, ok := lookupBranch(fields[1])
	if !ok {
		return Pair{}, fmt.Errorf("%w: unknown branch %q", ErrInvalidPair, fields[1])
	}
	return Pair{Stem: stem, Branch: branch}, nil
}

func lookupStem(name string) (Stem, bool) {
	for i, n := range stemNames {
		if strings.EqualFold(n, name) {
			return Stem(i), true
		}
	}
	return 0, false
}

func lookupBranch(name string) (Branch, bool) {
	for i, n := range branchNames {
		if strings.EqualFold(n, name) {
			return Branch(i), true
		}
	}
	if b, ok := branchAliases[name]; ok {
		return b, true
	}
	return 0, false
}
