package calendar

import "testing"

// 基准盘：1977-07-07 07:07，与万年历核对过的锚点数据。
func TestSolarToLunarReferenceChart(t *testing.T) {
	ld, err := SolarToLunar(Date{Year: 1977, Month: 7, Day: 7, Hour: 7, Minute: 7})
	if err != nil {
		t.Fatalf("SolarToLunar failed: %v", err)
	}

	if got := ld.YearStem + ld.YearBranch; got != "丁巳" {
		t.Errorf("年柱 = %s, want 丁巳", got)
	}
	if got := ld.MonthStem + ld.MonthBranch; got != "丁未" {
		t.Errorf("月柱 = %s, want 丁未", got)
	}
	if got := ld.DayStem + ld.DayBranch; got != "乙丑" {
		t.Errorf("日柱 = %s, want 乙丑", got)
	}
	if ld.Year != 1977 || ld.Month != 5 || ld.Day != 21 || ld.IsLeapMonth {
		t.Errorf("农历 = %d-%d-%d leap=%v, want 1977-5-21 leap=false",
			ld.Year, ld.Month, ld.Day, ld.IsLeapMonth)
	}
	if got := FormatLunar(ld); got != "1977年五月廿一" {
		t.Errorf("FormatLunar = %s, want 1977年五月廿一", got)
	}
}

func TestSolarToLunarKnownDates(t *testing.T) {
	tests := []struct {
		name    string
		in      Date
		year    int
		month   int
		day     int
		leap    bool
		display string
	}{
		{
			name: "2000年春节",
			in:   Date{Year: 2000, Month: 2, Day: 5},
			year: 2000, month: 1, day: 1,
			display: "2000年正月初一",
		},
		{
			name: "2023年闰二月初一",
			in:   Date{Year: 2023, Month: 3, Day: 22},
			year: 2023, month: 2, day: 1, leap: true,
			display: "2023年闰二月初一",
		},
		{
			name: "历元当天",
			in:   Date{Year: 1900, Month: 1, Day: 31},
			year: 1900, month: 1, day: 1,
			display: "1900年正月初一",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ld, err := SolarToLunar(tt.in)
			if err != nil {
				t.Fatalf("SolarToLunar failed: %v", err)
			}
			if ld.Year != tt.year || ld.Month != tt.month || ld.Day != tt.day || ld.IsLeapMonth != tt.leap {
				t.Errorf("got %d-%d-%d leap=%v, want %d-%d-%d leap=%v",
					ld.Year, ld.Month, ld.Day, ld.IsLeapMonth, tt.year, tt.month, tt.day, tt.leap)
			}
			if got := FormatLunar(ld); got != tt.display {
				t.Errorf("FormatLunar = %s, want %s", got, tt.display)
			}
		})
	}
}

func TestSolarToLunarRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		in   Date
	}{
		{"二月三十日不存在", Date{Year: 2001, Month: 2, Day: 30}},
		{"十三月", Date{Year: 2001, Month: 13, Day: 1}},
		{"年份过早", Date{Year: 1899, Month: 6, Day: 1}},
		{"年份过晚", Date{Year: 2101, Month: 6, Day: 1}},
		{"历元之前", Date{Year: 1900, Month: 1, Day: 30}},
		{"小时越界", Date{Year: 2001, Month: 6, Day: 1, Hour: 24}},
		{"分钟越界", Date{Year: 2001, Month: 6, Day: 1, Minute: 60}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := SolarToLunar(tt.in); err == nil {
				t.Errorf("SolarToLunar(%+v) succeeded, want error", tt.in)
			}
		})
	}
}

// 日柱是连续的六十日循环，跨月跨年也必须每天恰好进一位。
func TestDayPillarContinuity(t *testing.T) {
	dates := []Date{
		{Year: 1977, Month: 7, Day: 7},
		{Year: 1999, Month: 12, Day: 31},
		{Year: 2000, Month: 2, Day: 28},
		{Year: 2024, Month: 2, Day: 28}, // 闰年二月
	}
	for _, d := range dates {
		prev, err := SolarToLunar(d)
		if err != nil {
			t.Fatalf("SolarToLunar(%+v) failed: %v", d, err)
		}
		for i := 0; i < 3; i++ {
			d = nextDay(d)
			cur, err := SolarToLunar(d)
			if err != nil {
				t.Fatalf("SolarToLunar(%+v) failed: %v", d, err)
			}
			prevIdx := sexagenaryIndex(t, prev.DayStem, prev.DayBranch)
			curIdx := sexagenaryIndex(t, cur.DayStem, cur.DayBranch)
			if curIdx != (prevIdx+1)%60 {
				t.Errorf("%+v 日柱 %s%s -> %s%s 不是相邻甲子", d,
					prev.DayStem, prev.DayBranch, cur.DayStem, cur.DayBranch)
			}
			prev = cur
		}
	}
}

// 干支必须同奇偶，否则组合不在六十甲子内。
func TestPillarParity(t *testing.T) {
	samples := []Date{
		{Year: 1950, Month: 3, Day: 14},
		{Year: 1977, Month: 7, Day: 7},
		{Year: 1988, Month: 8, Day: 8},
		{Year: 2008, Month: 12, Day: 1},
		{Year: 2024, Month: 6, Day: 15},
	}
	for _, d := range samples {
		ld, err := SolarToLunar(d)
		if err != nil {
			t.Fatalf("SolarToLunar(%+v) failed: %v", d, err)
		}
		pairs := [][2]string{
			{ld.YearStem, ld.YearBranch},
			{ld.MonthStem, ld.MonthBranch},
			{ld.DayStem, ld.DayBranch},
		}
		for _, p := range pairs {
			si, bi := StemIndex(p[0]), BranchIndex(p[1])
			if si < 0 || bi < 0 {
				t.Fatalf("%+v 出现未知干支 %s%s", d, p[0], p[1])
			}
			if si%2 != bi%2 {
				t.Errorf("%+v 干支 %s%s 奇偶不配", d, p[0], p[1])
			}
		}
	}
}

func TestSolarToLunarDeterministic(t *testing.T) {
	d := Date{Year: 1977, Month: 7, Day: 7, Hour: 7, Minute: 7}
	first, err := SolarToLunar(d)
	if err != nil {
		t.Fatalf("SolarToLunar failed: %v", err)
	}
	for i := 0; i < 10; i++ {
		again, err := SolarToLunar(d)
		if err != nil {
			t.Fatalf("SolarToLunar failed: %v", err)
		}
		if again != first {
			t.Fatalf("第 %d 次结果 %+v != 首次 %+v", i, again, first)
		}
	}
}

// 节气当天换月令，前一天仍属上个月令。
func TestMonthPillarAroundTerm(t *testing.T) {
	// 1977 年小暑在 7 月 7 日
	before, err := SolarToLunar(Date{Year: 1977, Month: 7, Day: 6})
	if err != nil {
		t.Fatalf("SolarToLunar failed: %v", err)
	}
	if got := before.MonthStem + before.MonthBranch; got != "丙午" {
		t.Errorf("节前月柱 = %s, want 丙午", got)
	}

	after, err := SolarToLunar(Date{Year: 1977, Month: 7, Day: 7})
	if err != nil {
		t.Fatalf("SolarToLunar failed: %v", err)
	}
	if got := after.MonthStem + after.MonthBranch; got != "丁未" {
		t.Errorf("节后月柱 = %s, want 丁未", got)
	}
}

func TestGoverningTerm(t *testing.T) {
	tests := []struct {
		year, month, day int
		want             string
	}{
		{1977, 7, 7, "小暑"},
		{1977, 7, 6, "芒种"},
		{2000, 2, 4, "立春"},
		{2000, 2, 3, "小寒"},
		{1977, 1, 1, "大雪"}, // 年初小寒前，月令跨回上一年
	}
	for _, tt := range tests {
		if got := GoverningTerm(tt.year, tt.month, tt.day); got != tt.want {
			t.Errorf("GoverningTerm(%d, %d, %d) = %s, want %s",
				tt.year, tt.month, tt.day, got, tt.want)
		}
	}
}

func TestHourBranchIndex(t *testing.T) {
	tests := []struct {
		hour int
		want int
	}{
		{0, 0},  // 早子时
		{1, 1},  // 丑时
		{7, 4},  // 辰时
		{12, 6}, // 午时
		{22, 11},
		{23, 0}, // 晚子时回绕
	}
	for _, tt := range tests {
		if got := HourBranchIndex(tt.hour); got != tt.want {
			t.Errorf("HourBranchIndex(%d) = %d, want %d", tt.hour, got, tt.want)
		}
	}
	if got := HourSlotName(7); got != "辰时" {
		t.Errorf("HourSlotName(7) = %s, want 辰时", got)
	}
}

func TestZodiac(t *testing.T) {
	if got := Zodiac("巳"); got != "蛇" {
		t.Errorf("Zodiac(巳) = %s, want 蛇", got)
	}
	if got := Zodiac("某"); got != "" {
		t.Errorf("Zodiac(某) = %q, want empty", got)
	}
}

func nextDay(d Date) Date {
	days := [13]int{0, 31, 28, 31, 30, 31, 30, 31, 31, 30, 31, 30, 31}
	max := days[d.Month]
	if d.Month == 2 && (d.Year%4 == 0 && (d.Year%100 != 0 || d.Year%400 == 0)) {
		max = 29
	}
	d.Day++
	if d.Day > max {
		d.Day = 1
		d.Month++
		if d.Month > 12 {
			d.Month = 1
			d.Year++
		}
	}
	return d
}

func sexagenaryIndex(t *testing.T, stem, branch string) int {
	t.Helper()
	si, bi := StemIndex(stem), BranchIndex(branch)
	if si < 0 || bi < 0 {
		t.Fatalf("未知干支 %s%s", stem, branch)
	}
	for i := 0; i < 60; i++ {
		if i%10 == si && i%12 == bi {
			return i
		}
	}
	t.Fatalf("干支 %s%s 不在六十甲子内", stem, branch)
	return -1
}
