// Package calendar 实现公历到农历的转换和干支推算。
// 农历部分走历元查表，干支部分按周期公式推算：
// 年柱看农历年，月柱看节气月令，日柱是连续的六十日循环。
package calendar

import (
	"errors"
	"fmt"
	"time"
)

// ErrConversion 日期超出支持范围或本身不合法。
var ErrConversion = errors.New("calendar: conversion failed")

// Date 公历日期时间，用户输入解析后的不可变值。
type Date struct {
	Year   int
	Month  int
	Day    int
	Hour   int
	Minute int
}

// LunarDate 农历日期及年/月/日三柱干支，构造后不再修改。
type LunarDate struct {
	Year        int    `json:"year"`
	Month       int    `json:"month"`
	Day         int    `json:"day"`
	IsLeapMonth bool   `json:"isLeapMonth"`
	YearStem    string `json:"yearGan"`
	YearBranch  string `json:"yearZhi"`
	MonthStem   string `json:"monthGan"`
	MonthBranch string `json:"monthZhi"`
	DayStem     string `json:"dayGan"`
	DayBranch   string `json:"dayZhi"`
}

// Validate 检查输入是否是 1900-2100 范围内的真实公历日期。
func (d Date) Validate() error {
	if d.Year < MinYear || d.Year > MaxYear {
		return fmt.Errorf("%w: 年份 %d 超出 %d-%d", ErrConversion, d.Year, MinYear, MaxYear)
	}
	if d.Month < 1 || d.Month > 12 {
		return fmt.Errorf("%w: 月份 %d 不合法", ErrConversion, d.Month)
	}
	// 借助 time.Date 的归一化行为识别 2 月 30 日这类假日期
	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Day() != d.Day || int(t.Month()) != d.Month {
		return fmt.Errorf("%w: %d-%02d-%02d 不是有效日期", ErrConversion, d.Year, d.Month, d.Day)
	}
	if d.Hour < 0 || d.Hour > 23 || d.Minute < 0 || d.Minute > 59 {
		return fmt.Errorf("%w: 时间 %02d:%02d 不合法", ErrConversion, d.Hour, d.Minute)
	}
	return nil
}

// SolarToLunar 公历转农历，并推算年柱、月柱、日柱。
// 对任何合法输入都是确定性的纯函数。
func SolarToLunar(d Date) (LunarDate, error) {
	if err := d.Validate(); err != nil {
		return LunarDate{}, err
	}

	t := time.Date(d.Year, time.Month(d.Month), d.Day, 0, 0, 0, 0, time.UTC)
	if t.Before(lunarEpoch) {
		return LunarDate{}, fmt.Errorf("%w: %d-%02d-%02d 早于农历历元", ErrConversion, d.Year, d.Month, d.Day)
	}

	ly, lm, ld, isLeap := rawLunar(t)

	// 年柱：农历年对六十甲子取模。公元 4 年是甲子年，作为锚点。
	yearStemIdx := (ly - 4) % 10
	yearBranchIdx := (ly - 4) % 12

	// 日柱：儒略日数连续取模，与农历月日无关
	dayIdx := (julianDayNumber(d.Year, d.Month, d.Day) + 49) % 60

	monthStemIdx, monthBranchIdx := monthPillar(d.Year, d.Month, d.Day, yearStemIdx)

	return LunarDate{
		Year:        ly,
		Month:       lm,
		Day:         ld,
		IsLeapMonth: isLeap,
		YearStem:    Stems[yearStemIdx],
		YearBranch:  Branches[yearBranchIdx],
		MonthStem:   Stems[monthStemIdx],
		MonthBranch: Branches[monthBranchIdx],
		DayStem:     Stems[dayIdx%10],
		DayBranch:   Branches[dayIdx%12],
	}, nil
}

// monthPillar 按节气月令推月柱，这是唯一的月柱策略。
// 地支：立春起寅月，每过一个"节"进一支；公历 M 月节后对应支序恰为 M%12。
// 天干：五虎遁，从年干推出寅月天干后顺排。
func monthPillar(year, month, day, yearStemIdx int) (stemIdx, branchIdx int) {
	branchIdx = month % 12
	if day < termDay(year, monthTermIndex(month)) {
		branchIdx = (month + 11) % 12
	}

	// 月令序号：寅=1 ... 丑=12
	ord := branchIdx - 1
	if ord < 1 {
		ord += 12
	}
	firstStem := (yearStemIdx*2 + 2) % 10 // 寅月天干
	stemIdx = (firstStem + ord - 1) % 10
	return stemIdx, branchIdx
}

// FormatLunar 农历中文显示，如 "1977年五月廿一"。
func FormatLunar(ld LunarDate) string {
	leap := ""
	if ld.IsLeapMonth {
		leap = "闰"
	}
	return fmt.Sprintf("%d年%s%s%s", ld.Year, leap, lunarMonthNames[ld.Month], lunarDayNames[ld.Day])
}

// FormatSolar 公历中文显示，如 "1977年7月7日 07:07"。
func FormatSolar(d Date) string {
	return fmt.Sprintf("%d年%d月%d日 %02d:%02d", d.Year, d.Month, d.Day, d.Hour, d.Minute)
}
