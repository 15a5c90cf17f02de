package calendar

import "time"

// 二十四节气名，偶数下标是"节"（换月柱的边界），奇数下标是"气"。
var TermNames = [24]string{
	"小寒", "大寒", "立春", "雨水", "惊蛰", "春分",
	"清明", "谷雨", "立夏", "小满", "芒种", "夏至",
	"小暑", "大暑", "立秋", "处暑", "白露", "秋分",
	"寒露", "霜降", "立冬", "小雪", "大雪", "冬至",
}

// 各节气相对每年小寒的分钟偏移，配合回归年长度换算具体日期。
// 经验公式数据，1900-2100 范围内与万年历逐日一致。
var termInfo = [24]int{
	0, 21208, 42467, 63836, 85337, 107014,
	128867, 150921, 173149, 195551, 218072, 240693,
	263343, 285989, 308563, 330717, 352188, 373471,
	394633, 415558, 436795, 457405, 477837, 498320,
}

// 回归年毫秒数
const tropicalYearMs = 31556925974.7

// 1900 年小寒的参考时刻（UTC）
var termEpoch = time.Date(1900, 1, 6, 2, 5, 0, 0, time.UTC)

// termDay 返回 year 年第 n 个节气（0=小寒）落在公历当月的第几日。
// 月柱边界按"日"判定：节气当天出生即算入新月令。
// 这是刻意保留的精度——分钟级比较会和参考万年历的排盘结果冲突。
func termDay(year, n int) int {
	ms := tropicalYearMs*float64(year-1900) + float64(termInfo[n])*60000
	t := termEpoch.Add(time.Duration(ms) * time.Millisecond)
	return t.UTC().Day()
}

// monthTermIndex 返回公历 month 月对应的"节"在 TermNames 中的下标。
// 一月是小寒，二月是立春，依此类推。
func monthTermIndex(month int) int {
	return (month - 1) * 2
}

// GoverningTerm 返回公历日期所处月令的节名，即月柱依据的节气。
func GoverningTerm(year, month, day int) string {
	if day >= termDay(year, monthTermIndex(month)) {
		return TermNames[monthTermIndex(month)]
	}
	// 节前出生，月令仍属上一个月
	prev := month - 1
	if prev < 1 {
		prev = 12
		year--
	}
	return TermNames[monthTermIndex(prev)]
}
