package hoangdao

import "github.com/zapponejosh/lich-api/internal/canchi"

// HourlyZodiac describes one 2-hour window of a day.
type HourlyZodiac struct {
	Branch     canchi.Branch `json:"branch"`
	CanChi     canchi.Pair   `json:"canChi"`
	TimeRange  string        `json:"timeRange"`
	ZodiacHour ZodiacHour    `json:"zodiacHour"`
	Auspicious bool          `json:"auspicious"`
	Activities []string      `json:"activities"`
}

const maxHourActivities = 3

var restActivities = []string{"Nghỉ ngơi", "Suy nghĩ", "Hoạch định"}

// auspiciousWindows lists the Hoàng Đạo window indices for each pair of day
// branches. Branches six apart share a row. Each row is the Thanh Long
// start for the day plus steps 0, 1, 4, 5, 7 and 10.
var auspiciousWindows = [6][]int{
	{0, 1, 3, 6, 8, 9},   // Tý, Ngọ
	{2, 3, 5, 8, 10, 11}, // Sửu, Mùi
	{0, 1, 4, 5, 7, 10},  // Dần, Thân
	{0, 2, 3, 6, 7, 9},   // Mão, Dậu
	{2, 4, 5, 8, 9, 11},  // Thìn, Tuất
	{1, 4, 6, 7, 10, 11}, // Tỵ, Hợi
}

// AuspiciousWindows returns the auspicious window indices for a day branch.
func AuspiciousWindows(dayBranch canchi.Branch) []int {
	if !dayBranch.Valid() {
		return nil
	}
	return append([]int(nil), auspiciousWindows[int(dayBranch)%6]...)
}

func isAuspiciousWindow(dayBranch canchi.Branch, window int) bool {
	if !dayBranch.Valid() {
		return false
	}
	for _, w := range auspiciousWindows[int(dayBranch)%6] {
		if w == window {
			return true
		}
	}
	return false
}

// HourlyZodiacs returns the twelve windows of the day, Tý first. The day's
// Trực advances one step per window.
func HourlyZodiacs(q DayQuality) [canchi.BranchCount]HourlyZodiac {
	var windows [canchi.BranchCount]HourlyZodiac
	for i := range windows {
		branch := canchi.Branch(i)
		z := q.ZodiacHour.Add(i)
		h := HourlyZodiac{
			Branch:     branch,
			TimeRange:  branch.TimeRange(),
			ZodiacHour: z,
			Auspicious: isAuspiciousWindow(q.DayCanChi.Branch, i),
		}
		// Window i starts at clock hour 2i-1; hour 2i is inside it.
		if p, err := canchi.HourCanChi(2*i, q.DayCanChi.Stem); err == nil {
			h.CanChi = p
		}
		if h.Auspicious {
			acts := z.SuitableActivities()
			if len(acts) > maxHourActivities {
				acts = acts[:maxHourActivities]
			}
			h.Activities = acts
		} else {
			h.Activities = append([]string(nil), restActivities...)
		}
		windows[i] = h
	}
	return windows
}

// AuspiciousOnly filters windows down to the auspicious ones.
func AuspiciousOnly(windows []HourlyZodiac) []HourlyZodiac {
	var out []HourlyZodiac
	for _, w := range windows {
		if w.Auspicious {
			out = append(out, w)
		}
	}
	return out
}
