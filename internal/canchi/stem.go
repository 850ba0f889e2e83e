// Package canchi implements the sexagesimal Heavenly Stem / Earthly Branch
// designations (Can-Chi) used by the Vietnamese lunisolar calendar.
package canchi

import "fmt"

// Stem is one of the 10 Heavenly Stems (Thiên Can).
//
// The ordering starts at Canh rather than Giáp. Every offset constant in this
// package is calibrated against it, so the order must not change.
type Stem int

const (
	Canh Stem = iota
	Tan
	Nham
	Quy
	Giap
	At
	Binh
	Dinh
	Mau
	Ky
)

// StemCount is the length of the stem cycle.
const StemCount = 10

var stemNames = [StemCount]string{
	"Canh", "Tân", "Nhâm", "Quý", "Giáp", "Ất", "Bính", "Đinh", "Mậu", "Kỷ",
}

// Element is one of the five elements (Ngũ Hành).
type Element string

const (
	Metal Element = "Kim"
	Water Element = "Thủy"
	Wood  Element = "Mộc"
	Fire  Element = "Hỏa"
	Earth Element = "Thổ"
)

// Stems 0-1 are metal, 2-3 water, 4-5 wood, 6-7 fire, 8-9 earth.
var stemElements = [StemCount / 2]Element{Metal, Water, Wood, Fire, Earth}

// NewStem returns the stem at index i, or an error if i is outside 0-9.
func NewStem(i int) (Stem, error) {
	s := Stem(i)
	if !s.Valid() {
		return 0, fmt.Errorf("%w: stem index %d", ErrInvalidPair, i)
	}
	return s, nil
}

// Valid reports whether s is one of the 10 stems.
func (s Stem) Valid() bool {
	return s >= 0 && s < StemCount
}

// Name returns the Vietnamese name of the stem.
func (s Stem) Name() string {
	if !s.Valid() {
		return fmt.Sprintf("Stem(%d)", int(s))
	}
	return stemNames[s]
}

func (s Stem) String() string {
	return s.Name()
}

// Element returns the element of the stem. Adjacent stems share an element.
func (s Stem) Element() Element {
	if !s.Valid() {
		return ""
	}
	return stemElements[s/2]
}

// IsYang reports whether the stem is yang (even index).
func (s Stem) IsYang() bool {
	return s%2 == 0
}

// Add advances the stem n steps around the cycle. n may be negative.
func (s Stem) Add(n int) Stem {
	return Stem(mod(int(s)+n, StemCount))
}

// MarshalText encodes the stem as its Vietnamese name.
func (s Stem) MarshalText() ([]byte, error) {
	return []byte(s.Name()), nil
}

func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
