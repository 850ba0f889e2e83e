// Package luchacdao implements the Lục Hắc Đạo unlucky-day table: six
// black-path types triggered by a (lunar month, day branch) combination.
package luchacdao

import (
	"github.com/gosimple/slug"

	"github.com/zapponejosh/lich-api/internal/canchi"
)

// Type is one of the six Lục Hắc Đạo variants, or None.
type Type int

const (
	None Type = iota
	ChuTuoc
	BachHo
	CauTran
	ThienLao
	ThienHinh
	NguyenVu
)

// Types lists the six unlucky types in table order.
var Types = []Type{ChuTuoc, BachHo, CauTran, ThienLao, ThienHinh, NguyenVu}

type attributes struct {
	name        string
	description string
	severity    int
	color       string
}

var typeAttributes = map[Type]attributes{
	ChuTuoc: {
		name:        "Chu Tước Hắc Đạo",
		description: "Chu Tước Hắc Đạo - Ngày vô cùng xấu, nên tránh mọi hoạt động quan trọng",
		severity:    5,
		color:       "red",
	},
	BachHo: {
		name:        "Bạch Hổ Hắc Đạo",
		description: "Bạch Hổ Hắc Đạo - Ngày xấu, tránh khởi động việc quan trọng",
		severity:    3,
		color:       "orange",
	},
	CauTran: {
		name:        "Câu Trận Hắc Đạo",
		description: "Câu Trận Hắc Đạo - Ngày không may, cẩn thận trong mọi việc",
		severity:    3,
		color:       "orange",
	},
	ThienLao: {
		name:        "Thiên Lao Hắc Đạo",
		description: "Thiên Lao Hắc Đạo - Ngày xấu, tránh đi xa, ký hợp đồng",
		severity:    4,
		color:       "red",
	},
	ThienHinh: {
		name:        "Thiên Hình",
		description: "Thiên Hình - Ngày xấu, tránh kiện tụng, tranh chấp",
		severity:    4,
		color:       "red",
	},
	NguyenVu: {
		name:        "Nguyên Vũ",
		description: "Nguyên Vũ - Ngày xấu, cẩn thận với các hoạt động quan trọng",
		severity:    2,
		color:       "yellow",
	},
}

// IsUnlucky reports whether t is one of the six unlucky types.
func (t Type) IsUnlucky() bool {
	_, ok := typeAttributes[t]
	return ok
}

// Name returns the Vietnamese name, or "" for None.
func (t Type) Name() string { return typeAttributes[t].name }

// Description returns the long-form description, or "" for None.
func (t Type) Description() string { return typeAttributes[t].description }

// Severity ranks the type from 1 (mild) to 5 (worst). None is 0.
func (t Type) Severity() int { return typeAttributes[t].severity }

// Color is the display color used for ranking badges.
func (t Type) Color() string { return typeAttributes[t].color }

// Slug returns an ASCII lookup key such as "chu-tuoc-hac-dao".
func (t Type) Slug() string {
	if !t.IsUnlucky() {
		return ""
	}
	return slug.Make(t.Name())
}

func (t Type) String() string {
	if !t.IsUnlucky() {
		return "none"
	}
	return t.Name()
}

// MarshalText encodes the type by name; None encodes as an empty string.
func (t Type) MarshalText() ([]byte, error) {
	return []byte(t.Name()), nil
}

type key struct {
	month  int
	branch canchi.Branch
}

// table is literal reference data and cannot be derived by formula.
var table = map[key]Type{
	{1, canchi.Ti}:    ChuTuoc,
	{1, canchi.Suu}:   ChuTuoc,
	{4, canchi.Dau}:   ChuTuoc,
	{7, canchi.Thin}:  ChuTuoc,
	{9, canchi.Mui}:   ChuTuoc,
	{10, canchi.Dau}:  ChuTuoc,
	{2, canchi.Dan}:   BachHo,
	{3, canchi.Tuat}:  BachHo,
	{5, canchi.Thin}:  BachHo,
	{8, canchi.Suu}:   BachHo,
	{11, canchi.Tuat}: BachHo,
	{1, canchi.Hoi}:   CauTran,
	{3, canchi.Dan}:   CauTran,
	{6, canchi.Mao}:   CauTran,
	{9, canchi.Dau}:   CauTran,
	{10, canchi.Ty}:   CauTran,
	{12, canchi.Hoi}:  CauTran,
	{1, canchi.Mao}:   ThienLao,
	{4, canchi.Ngo}:   ThienLao,
	{7, canchi.Dau}:   ThienLao,
	{7, canchi.Than}:  ThienLao,
	{9, canchi.Ti}:    ThienLao,
	{10, canchi.Suu}:  ThienLao,
	{10, canchi.Ti}:   ThienLao,
	{2, canchi.Ti}:    ThienHinh,
	{5, canchi.Mao}:   ThienHinh,
	{8, canchi.Ngo}:   ThienHinh,
	{10, canchi.Than}: ThienHinh,
	{11, canchi.Dau}:  ThienHinh,
	{3, canchi.Suu}:   NguyenVu,
	{6, canchi.Suu}:   NguyenVu,
	{9, canchi.Suu}:   NguyenVu,
	{12, canchi.Suu}:  NguyenVu,
}

// Calculate returns the unlucky type for a lunar month and day branch.
// Most combinations, and any out-of-range input, return None.
func Calculate(month int, branch canchi.Branch) Type {
	return table[key{month, branch}]
}

// Entry is one populated row of the table.
type Entry struct {
	Month  int           `json:"month"`
	Branch canchi.Branch `json:"branch"`
	Type   Type          `json:"type"`
}

// ForMonth lists the unlucky branches of a lunar month in branch order.
func ForMonth(month int) []Entry {
	var entries []Entry
	for b := canchi.Branch(0); b < canchi.BranchCount; b++ {
		if t := Calculate(month, b); t != None {
			entries = append(entries, Entry{Month: month, Branch: b, Type: t})
		}
	}
	return entries
}
