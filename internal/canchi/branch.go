package canchi

import "fmt"

// Branch is one of the 12 Earthly Branches (Địa Chi). Each branch names a
// zodiac animal and a 2-hour window of the day.
type Branch int

const (
	Ti Branch = iota // Tý
	Suu
	Dan
	Mao
	Thin
	Ty // Tỵ
	Ngo
	Mui
	Than
	Dau
	Tuat
	Hoi
)

// BranchCount is the length of the branch cycle.
const BranchCount = 12

var branchNames = [BranchCount]string{
	"Tý", "Sửu", "Dần", "Mão", "Thìn", "Tỵ", "Ngọ", "Mùi", "Thân", "Dậu", "Tuất", "Hợi",
}

// Vietnamese almanacs use the cat for Mão.
var branchAnimals = [BranchCount]string{
	"Chuột", "Trâu", "Cọp", "Mèo", "Rồng", "Rắn", "Ngựa", "Dê", "Khỉ", "Gà", "Chó", "Heo",
}

// NewBranch returns the branch at index i, or an error if i is outside 0-11.
func NewBranch(i int) (Branch, error) {
	b := Branch(i)
	if !b.Valid() {
		return 0, fmt.Errorf("%w: branch index %d", ErrInvalidPair, i)
	}
	return b, nil
}

// Valid reports whether b is one of the 12 branches.
func (b Branch) Valid() bool {
	return b >= 0 && b < BranchCount
}

// Name returns the Vietnamese name of the branch.
func (b Branch) Name() string {
	if !b.Valid() {
		return fmt.Sprintf("Branch(%d)", int(b))
	}
	return branchNames[b]
}

func (b Branch) String() string {
	return b.Name()
}

// Animal returns the zodiac animal of the branch.
func (b Branch) Animal() string {
	if !b.Valid() {
		return ""
	}
	return branchAnimals[b]
}

// HourRange returns the clock hours bounding the branch's 2-hour window.
// Tý crosses midnight and returns (23, 1).
func (b Branch) HourRange() (start, end int) {
	if b == Ti {
		return 23, 1
	}
	return 2*int(b) - 1, 2*int(b) + 1
}

// TimeRange formats the window as "HH:00 - HH:00".
func (b Branch) TimeRange() string {
	start, end := b.HourRange()
	return fmt.Sprintf("%02d:00 - %02d:00", start, end)
}

// Add advances the branch n steps around the cycle. n may be negative.
func (b Branch) Add(n int) Branch {
	return Branch(mod(int(b)+n, BranchCount))
}

// MarshalText encodes the branch as its Vietnamese name.
func (b Branch) MarshalText() ([]byte, error) {
	return []byte(b.Name()), nil
}
