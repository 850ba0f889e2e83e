// Package stars holds the auxiliary star catalog (sao tốt, sao xấu) and the
// alternate star-weighted scoring of a day.
package stars

import "fmt"

// GoodStar is a beneficial star with a positive weight.
type GoodStar int

const (
	ThienAn GoodStar = iota
	SatCong
	TrucLinh
	ThienThuy
	NhanChuyen
	ThienQuan
	TamHopThienGiai
	NguyetKhong
	ThienDuc
	NguyetDuc
	ManDucTinh
)

type starInfo struct {
	name   string
	weight float64
}

var goodStars = []starInfo{
	ThienAn:         {"Thiên ân", 3.0},
	SatCong:         {"Sát công", 1.5},
	TrucLinh:        {"Trực linh", 1.0},
	ThienThuy:       {"Thiên thụy", 1.0},
	NhanChuyen:      {"Nhân chuyển", 1.0},
	ThienQuan:       {"Thiên quan", 2.0},
	TamHopThienGiai: {"Tam hợp Thiên giải", 2.5},
	NguyetKhong:     {"Nguyệt không", 0.5},
	ThienDuc:        {"Thiên đức", 1.5},
	NguyetDuc:       {"Nguyệt đức", 1.5},
	ManDucTinh:      {"Mần đức tinh", 0.5},
}

// GoodStars lists the whole good-star catalog.
func GoodStars() []GoodStar {
	all := make([]GoodStar, len(goodStars))
	for i := range all {
		all[i] = GoodStar(i)
	}
	return all
}

func (s GoodStar) valid() bool { return s >= 0 && int(s) < len(goodStars) }

// Name returns the Vietnamese name.
func (s GoodStar) Name() string {
	if !s.valid() {
		return fmt.Sprintf("GoodStar(%d)", int(s))
	}
	return goodStars[s].name
}

// Weight is the fixed score contribution, always positive.
func (s GoodStar) Weight() float64 {
	if !s.valid() {
		return 0
	}
	return goodStars[s].weight
}

func (s GoodStar) String() string { return s.Name() }

func (s GoodStar) MarshalText() ([]byte, error) { return []byte(s.Name()), nil }

// BadStar is a harmful star outside Lục Hắc Đạo, with a negative weight.
type BadStar int

const (
	LySao BadStar = iota
	HoaTinh
	CuuThoQuy
	DiaPha
	HoangVu
	KhongPhong
	BangTieu
	ThuTu
	KiepSat
	ThienCuong
	HoaTai
	ThienHoa
	ThoOn
	HoangSa
	PhiMaSat
	NguQuy
	QuaTu
	DaiHao
	KimThanThatSat
	NguyetHoa
)

var badStars = []starInfo{
	LySao:          {"Ly sào", -2.0},
	HoaTinh:        {"Hỏa tinh", -2.0},
	CuuThoQuy:      {"Cửu thổ quỷ", -3.0},
	DiaPha:         {"Địa phá", -2.0},
	HoangVu:        {"Hoang vu", -1.0},
	KhongPhong:     {"Không phòng", -1.0},
	BangTieu:       {"Băng tiêu", -1.0},
	ThuTu:          {"Thụ tử", -3.0},
	KiepSat:        {"Kiếp sát", -2.0},
	ThienCuong:     {"Thiên cương", -1.5},
	HoaTai:         {"Hỏa tai", -1.0},
	ThienHoa:       {"Thiên hỏa", -1.0},
	ThoOn:          {"Thổ ôn", -0.5},
	HoangSa:        {"Hoang sa", -0.5},
	PhiMaSat:       {"Phi ma sát", -0.5},
	NguQuy:         {"Ngũ quỷ", -0.5},
	QuaTu:          {"Quả tú", -0.5},
	DaiHao:         {"Đại hao", -1.5},
	KimThanThatSat: {"Kim thần thất sát", -1.5},
	NguyetHoa:      {"Nguyệt hoạ", -1.0},
}

// BadStars lists the whole bad-star catalog.
func BadStars() []BadStar {
	all := make([]BadStar, len(badStars))
	for i := range all {
		all[i] = BadStar(i)
	}
	return all
}

func (s BadStar) valid() bool { return s >= 0 && int(s) < len(badStars) }

// Name returns the Vietnamese name.
func (s BadStar) Name() string {
	if !s.valid() {
		return fmt.Sprintf("BadStar(%d)", int(s))
	}
	return badStars[s].name
}

// Weight is the fixed score contribution, always negative.
func (s BadStar) Weight() float64 {
	if !s.valid() {
		return 0
	}
	return badStars[s].weight
}

func (s BadStar) String() string { return s.Name() }

func (s BadStar) MarshalText() ([]byte, error) { return []byte(s.Name()), nil }
