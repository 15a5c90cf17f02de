package calendar

import "time"

// 农历历元表，1900-2100。每年一个编码：
//   bit 16      闰月是否为大月（30 天）
//   bit 4-15    正月到腊月的大小月，1 为大月
//   bit 0-3     闰月月份，0 表示无闰月
// 这是天文历算结果的查表数据，不在代码里重新推导。
var lunarInfo = [...]int{
	0x04bd8, 0x04ae0, 0x0a570, 0x054d5, 0x0d260, 0x0d950, 0x16554, 0x056a0, 0x09ad0, 0x055d2, // 1900-1909
	0x04ae0, 0x0a5b6, 0x0a4d0, 0x0d250, 0x1d255, 0x0b540, 0x0d6a0, 0x0ada2, 0x095b0, 0x14977, // 1910-1919
	0x04970, 0x0a4b0, 0x0b4b5, 0x06a50, 0x06d40, 0x1ab54, 0x02b60, 0x09570, 0x052f2, 0x04970, // 1920-1929
	0x06566, 0x0d4a0, 0x0ea50, 0x06e95, 0x05ad0, 0x02b60, 0x186e3, 0x092e0, 0x1c8d7, 0x0c950, // 1930-1939
	0x0d4a0, 0x1d8a6, 0x0b550, 0x056a0, 0x1a5b4, 0x025d0, 0x092d0, 0x0d2b2, 0x0a950, 0x0b557, // 1940-1949
	0x06ca0, 0x0b550, 0x15355, 0x04da0, 0x0a5b0, 0x14573, 0x052b0, 0x0a9a8, 0x0e950, 0x06aa0, // 1950-1959
	0x0aea6, 0x0ab50, 0x04b60, 0x0aae4, 0x0a570, 0x05260, 0x0f263, 0x0d950, 0x05b57, 0x056a0, // 1960-1969
	0x096d0, 0x04dd5, 0x04ad0, 0x0a4d0, 0x0d4d4, 0x0d250, 0x0d558, 0x0b540, 0x0b5a0, 0x195a6, // 1970-1979
	0x095b0, 0x049b0, 0x0a974, 0x0a4b0, 0x0b27a, 0x06a50, 0x06d40, 0x0af46, 0x0ab60, 0x09570, // 1980-1989
	0x04af5, 0x04970, 0x064b0, 0x074a3, 0x0ea50, 0x06b58, 0x05ac0, 0x0ab60, 0x096d5, 0x092e0, // 1990-1999
	0x0c960, 0x0d954, 0x0d4a0, 0x0da50, 0x07552, 0x056a0, 0x0abb7, 0x025d0, 0x092d0, 0x0cab5, // 2000-2009
	0x0a950, 0x0b4a0, 0x0baa4, 0x0ad50, 0x055d9, 0x04ba0, 0x0a5b0, 0x15176, 0x052b0, 0x0a930, // 2010-2019
	0x07954, 0x06aa0, 0x0ad50, 0x05b52, 0x04b60, 0x0a6e6, 0x0a4e0, 0x0d260, 0x0ea65, 0x0d530, // 2020-2029
	0x05aa0, 0x076a3, 0x096d0, 0x04afb, 0x04ad0, 0x0a4d0, 0x1d0b6, 0x0d250, 0x0d520, 0x0dd45, // 2030-2039
	0x0b5a0, 0x056d0, 0x055b2, 0x049b0, 0x0a577, 0x0a4b0, 0x0aa50, 0x1b255, 0x06d20, 0x0ada0, // 2040-2049
	0x14b63, 0x09370, 0x049f8, 0x04970, 0x064b0, 0x168a6, 0x0ea50, 0x06b20, 0x1a6c4, 0x0aae0, // 2050-2059
	0x0a2e0, 0x0d2e3, 0x0c960, 0x0d557, 0x0d4a0, 0x0da50, 0x05d55, 0x056a0, 0x0a6d0, 0x055d4, // 2060-2069
	0x052d0, 0x0a9b8, 0x0a950, 0x0b4a0, 0x0b6a6, 0x0ad50, 0x055a0, 0x0aba4, 0x0a5b0, 0x052b0, // 2070-2079
	0x0b273, 0x06930, 0x07337, 0x06aa0, 0x0ad50, 0x14b55, 0x04b60, 0x0a570, 0x054e4, 0x0d160, // 2080-2089
	0x0e968, 0x0d520, 0x0daa0, 0x16aa6, 0x056d0, 0x04ae0, 0x0a9d4, 0x0a2d0, 0x0d150, 0x0f252, // 2090-2099
	0x0d520, // 2100
}

const (
	// MinYear / MaxYear 历元表覆盖的公历年份范围
	MinYear = 1900
	MaxYear = 2100
)

// 农历 1900 年正月初一对应的公历日期
var lunarEpoch = time.Date(1900, 1, 31, 0, 0, 0, 0, time.UTC)

func yearInfo(year int) int {
	return lunarInfo[year-MinYear]
}

// leapMonthOf 返回该农历年的闰月月份，无闰月返回 0。
func leapMonthOf(year int) int {
	return yearInfo(year) & 0xf
}

// leapMonthDays 返回该农历年闰月的天数，无闰月返回 0。
func leapMonthDays(year int) int {
	if leapMonthOf(year) == 0 {
		return 0
	}
	if yearInfo(year)&0x10000 != 0 {
		return 30
	}
	return 29
}

// lunarMonthDays 返回该农历年第 month 个正常月的天数。
func lunarMonthDays(year, month int) int {
	if yearInfo(year)&(0x10000>>uint(month)) != 0 {
		return 30
	}
	return 29
}

// lunarYearDays 返回该农历年的总天数（含闰月）。
func lunarYearDays(year int) int {
	days := 0
	for m := 1; m <= 12; m++ {
		days += lunarMonthDays(year, m)
	}
	return days + leapMonthDays(year)
}

// rawLunar 把公历日期换算成农历年月日。
// 先算出距农历历元的天数，再逐年逐月扣减。
func rawLunar(date time.Time) (year, month, day int, isLeap bool) {
	offset := int(date.Sub(lunarEpoch).Hours() / 24)

	year = MinYear
	for year < MaxYear && offset >= lunarYearDays(year) {
		offset -= lunarYearDays(year)
		year++
	}

	leap := leapMonthOf(year)
	for m := 1; m <= 12; m++ {
		days := lunarMonthDays(year, m)
		if offset < days {
			return year, m, offset + 1, false
		}
		offset -= days

		// 闰月紧跟在同名正常月之后
		if m == leap {
			days = leapMonthDays(year)
			if offset < days {
				return year, m, offset + 1, true
			}
			offset -= days
		}
	}

	// offset 已被调用方限制在表范围内，不会走到这里
	return year, 12, offset + 1, false
}

// julianDayNumber 返回公历日期的儒略日数。
// 日柱是独立于农历月日连续运转的六十日循环，必须用连续天数计数，
// 不能用农历日序推。
func julianDayNumber(year, month, day int) int {
	a := (14 - month) / 12
	y := year + 4800 - a
	m := month + 12*a - 3
	return day + (153*m+2)/5 + 365*y + y/4 - y/100 + y/400 - 32045
}
