package hoangdao

import (
	"fmt"

	"github.com/gosimple/slug"
)

// ZodiacHour is one of the 12 Trực. The cycle order is fixed: Kiến, Trừ,
// Mãn, Bình, Định, Chấp, Phá, Nguy, Thành, Thu, Khai, Bế.
type ZodiacHour int

const (
	Kien ZodiacHour = iota
	Tru
	Man
	Binh
	Dinh
	Chap
	Pha
	Nguy
	Thanh
	Thu
	Khai
	Be
)

// ZodiacHourCount is the length of the Trực cycle.
const ZodiacHourCount = 12

// Tier groups the 12 Trực by quality.
type Tier string

const (
	VeryAuspicious Tier = "very_auspicious"
	Neutral        Tier = "neutral"
	Inauspicious   Tier = "inauspicious"
)

type zodiacData struct {
	name        string
	tier        Tier
	suitable    []string
	taboo       []string
	description string
	direction   string
	color       string
}

var zodiacTable = [ZodiacHourCount]zodiacData{
	Kien: {
		name:        "Kiến",
		tier:        Inauspicious,
		suitable:    []string{"Khai trương", "Nhậm chức", "Cưới hỏi", "Trồng cây", "Khởi đầu mới"},
		taboo:       []string{"Động thổ", "Chôn cất", "Đào giếng"},
		description: "Kiến - Ngày khởi đầu mới mẻ. Tốt cho: khai trương, nhậm chức, cưới hỏi, trồng cây. Xấu cho: động thổ, chôn cất, đào giếng.",
		direction:   "Đông",
		color:       "Đỏ, Cam",
	},
	Tru: {
		name:        "Trừ",
		tier:        VeryAuspicious,
		suitable:    []string{"Trừ phục", "Dâng sao giải hạn", "Tỉa chân nhang", "Thay bát hương", "Thanh lọc", "Trừ bệnh"},
		taboo:       []string{"Chi xuất tiền lớn", "Ký hợp đồng", "Khai trương", "Cưới hỏi"},
		description: "Trừ - Bớt đi những điều không tốt. Tốt cho: trừ phục, dâng sao giải hạn, tỉa chân nhang, thay bát hương. Tránh: chi xuất tiền lớn, ký hợp đồng, khai trương, cưới hỏi.",
		direction:   "Đông Bắc",
		color:       "Đen, Xanh dương",
	},
	Man: {
		name:        "Mãn",
		tier:        Inauspicious,
		suitable:    []string{"Cúng lễ", "Xuất hành", "Sửa kho", "Nghỉ ngơi"},
		taboo:       []string{"Chôn cất", "Kiện tụng", "Nhậm chức"},
		description: "Mãn - Giai đoạn phát triển sung mãn. Tốt cho: cúng lễ, xuất hành, sửa kho. Xấu cho: chôn cất, kiện tụng, nhậm chức.",
	},
	Binh: {
		name:        "Bình",
		tier:        Inauspicious,
		suitable:    []string{"Di dời bếp", "Giao thương nhỏ", "Mua bán", "Việc vặt"},
		taboo:       []string{"An táng", "Tang lễ"},
		description: "Bình - Lấy lại bình hòa. Mọi việc đều tốt. Tốt nhất cho: di dời bếp, giao thương, mua bán.",
	},
	Dinh: {
		name:        "Định",
		tier:        VeryAuspicious,
		suitable:    []string{"Buôn bán", "Giao thương", "Ký hợp đồng", "Làm chuồng gia súc", "Ổn định công việc", "Xác lập kế hoạch"},
		taboo:       []string{"Thưa kiện", "Xuất hành đi xa"},
		description: "Định - Ổn định, xác lập, ký kết. Tốt cho: buôn bán, giao thương, làm chuồng gia súc. Tránh: thưa kiện, xuất hành đi xa.",
		direction:   "Tây Nam",
		color:       "Trắng, Bạc",
	},
	Chap: {
		name:        "Chấp",
		tier:        VeryAuspicious,
		suitable:    []string{"Tu sửa nhà cửa", "Tuyển dụng", "Thuê mướn", "Bảo trì", "Giữ gìn tài sản"},
		taboo:       []string{"Xuất nhập kho", "Truy tiền", "An sàng"},
		description: "Chấp - Giữ gìn, bảo toàn. Tốt cho: tu sửa, tuyển dụng, thuê mướn. Tránh: xuất nhập kho, truy tiền, an sàng.",
		direction:   "Tây",
		color:       "Xám, Trắng",
	},
	Pha: {
		name:        "Phá",
		tier:        Inauspicious,
		suitable:    []string{"Đi xa", "Phá bỏ công trình cũ", "Dỡ bỏ", "Nghỉ ngơi"},
		taboo:       []string{"Mở hàng", "Cưới hỏi", "Hội họp", "Việc quan trọng"},
		description: "Phá - Phá bỏ những thứ lỗi thời. Tốt cho: đi xa, phá bỏ công trình cũ. Xấu cho: mở hàng, cưới hỏi, hội họp.",
	},
	Nguy: {
		name:        "Nguy",
		tier:        VeryAuspicious,
		suitable:    []string{"Lễ bái", "Cầu tự", "Tụng kinh", "Cúng tế", "Lễ Phật", "Cầu an"},
		taboo:       []string{"Kinh doanh", "Động thổ", "Cưới xin", "Thăm hỏi"},
		description: "Nguy - Giai đoạn nguy hiểm suy thoái. Nên làm: lễ bái, cầu tự, tụng kinh. Xấu cho: kinh doanh, động thổ, cưới xin, thăm hỏi.",
		direction:   "Bắc",
		color:       "Vàng, Vàng kim",
	},
	Thanh: {
		name:        "Thành",
		tier:        Neutral,
		suitable:    []string{"Nhập học", "Kết hôn", "Dọn nhà mới", "Học tập"},
		taboo:       []string{"Kiện tụng", "Cãi vã", "Tranh chấp"},
		description: "Thành - Cái mới được khởi đầu và hình thành. Tốt cho: nhập học, kết hôn, dọn nhà mới. Tránh: kiện tụng, cãi vã, tranh chấp.",
		direction:   "Nam",
		color:       "Xanh, Tím",
	},
	Thu: {
		name:        "Thu",
		tier:        Inauspicious,
		suitable:    []string{"Mở cửa hàng", "Lập kho", "Buôn bán", "Thu hoạch"},
		taboo:       []string{"Ma chay", "An táng", "Tảo mộ"},
		description: "Thu (Thâu) - Gặt hái thành công, thu về kết quả. Tốt cho: mở cửa hàng, lập kho, buôn bán. Tránh: ma chay, an táng, tảo mộ.",
		direction:   "Tây Bắc",
	},
	Khai: {
		name:        "Khai",
		tier:        Neutral,
		suitable:    []string{"Động thổ", "Kết hôn", "Khai trương", "Các việc lớn", "Mở mang", "Bắt đầu dự án"},
		taboo:       []string{"An táng", "Động thổ không sạch sẽ", "Tang lễ"},
		description: "Khai - Mọi vật sau quy tàng thì thuận lợi, hanh thông bắt đầu mở ra. Tốt cho: động thổ, kết hôn, các việc lớn, nhiều cát lành. Kiêng: an táng, động thổ không sạch sẽ.",
		direction:   "Đông Nam",
		color:       "Xanh lá, Nâu",
	},
	Be: {
		name:        "Bế",
		tier:        Inauspicious,
		suitable:    []string{"Đắp đập đê điều", "Ngăn nước", "Kết thúc", "Nghỉ ngơi"},
		taboo:       []string{"Nhậm chức", "Khiếu kiện", "Đào giếng", "Khởi sự mới"},
		description: "Bế - Mọi việc trở lại khó khăn, gặp gian nan, trở ngại. Nên làm: đắp đập đê điều, ngăn nước. Xấu cho: nhậm chức, khiếu kiện, đào giếng.",
	},
}

// ZodiacHours returns the 12 Trực in cycle order.
func ZodiacHours() []ZodiacHour {
	all := make([]ZodiacHour, ZodiacHourCount)
	for i := range all {
		all[i] = ZodiacHour(i)
	}
	return all
}

// Valid reports whether z is one of the 12 Trực.
func (z ZodiacHour) Valid() bool {
	return z >= 0 && z < ZodiacHourCount
}

func (z ZodiacHour) data() zodiacData {
	if !z.Valid() {
		return zodiacData{}
	}
	return zodiacTable[z]
}

// Name returns the Vietnamese name of the Trực.
func (z ZodiacHour) Name() string {
	if !z.Valid() {
		return fmt.Sprintf("ZodiacHour(%d)", int(z))
	}
	return zodiacTable[z].name
}

func (z ZodiacHour) String() string { return z.Name() }

// Quality returns the tier of the Trực.
func (z ZodiacHour) Quality() Tier { return z.data().tier }

// SuitableActivities returns a copy of the activities favoured on this Trực.
func (z ZodiacHour) SuitableActivities() []string {
	return append([]string(nil), z.data().suitable...)
}

// TabooActivities returns a copy of the activities to avoid on this Trực.
func (z ZodiacHour) TabooActivities() []string {
	return append([]string(nil), z.data().taboo...)
}

// Description returns the long-form description.
func (z ZodiacHour) Description() string { return z.data().description }

// LuckyDirection returns the lucky direction, or "" when the Trực has none.
func (z ZodiacHour) LuckyDirection() string { return z.data().direction }

// LuckyColor returns the lucky colors, or "" when the Trực has none.
func (z ZodiacHour) LuckyColor() string { return z.data().color }

// Slug returns an ASCII key such as "khai" or "be".
func (z ZodiacHour) Slug() string {
	if !z.Valid() {
		return ""
	}
	return slug.Make(z.Name())
}

// Add moves n steps around the cycle.
func (z ZodiacHour) Add(n int) ZodiacHour {
	return ZodiacHour(((int(z)+n)%ZodiacHourCount + ZodiacHourCount) % ZodiacHourCount)
}

// MarshalText encodes the Trực by name.
func (z ZodiacHour) MarshalText() ([]byte, error) {
	if !z.Valid() {
		return nil, fmt.Errorf("invalid zodiac hour %d", int(z))
	}
	return []byte(z.Name()), nil
}

// ParseSlug finds a Trực by its slug or its Vietnamese name.
func ParseSlug(s string) (ZodiacHour, bool) {
	key := slug.Make(s)
	for _, z := range ZodiacHours() {
		if z.Slug() == key {
			return z, true
		}
	}
	return 0, false
}
