// Package bazi 把农历转换结果装配成四柱八字。
// 时柱在这里算：时支查时辰表，时干由日干按公式推出。
package bazi

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/haoyun/tianji/internal/calendar"
)

// ErrIncompleteBazi 四柱不完整或干支不合法。
// 出现该错误时整个请求必须失败，绝不能把残缺的八字往下游传。
var ErrIncompleteBazi = errors.New("bazi: incomplete pillar set")

// Pillar 一柱，天干加地支各一个字。
type Pillar struct {
	Stem   string `json:"gan"`
	Branch string `json:"zhi"`
}

// String 渲染成两字干支，如 "丁巳"。
func (p Pillar) String() string {
	return p.Stem + p.Branch
}

// Record 四柱八字。
type Record struct {
	Year  Pillar `json:"year"`
	Month Pillar `json:"month"`
	Day   Pillar `json:"day"`
	Hour  Pillar `json:"time"`
}

// String 四柱空格连接，如 "丁巳 丁未 乙丑 庚辰"。
func (r Record) String() string {
	return strings.Join([]string{
		r.Year.String(), r.Month.String(), r.Day.String(), r.Hour.String(),
	}, " ")
}

// Option 装配选项。
type Option func(*options)

type options struct {
	lateZiRollover bool
}

// WithLateZiRollover 启用晚子时换日：23 点后出生按次日日柱推时干。
// 命理各派对此有分歧，默认关闭，即 23:00-23:59 仍用当日日柱。
func WithLateZiRollover() Option {
	return func(o *options) { o.lateZiRollover = true }
}

// Assemble 装配四柱。纯函数，相同输入永远得到相同结果。
// 时干公式：时干序 = (日干序 × 2 + 时支序) mod 10，须与万年历逐条吻合。
func Assemble(ld calendar.LunarDate, hour, minute int, opts ...Option) (Record, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return Record{}, fmt.Errorf("%w: 时间 %02d:%02d 不合法", ErrIncompleteBazi, hour, minute)
	}

	dayStemIdx := calendar.StemIndex(ld.DayStem)
	dayBranchIdx := calendar.BranchIndex(ld.DayBranch)
	if dayStemIdx < 0 || dayBranchIdx < 0 {
		return Record{}, fmt.Errorf("%w: 日柱干支不合法 %q%q", ErrIncompleteBazi, ld.DayStem, ld.DayBranch)
	}

	// 晚子时换日只影响时干所依据的日干，不改日柱本身
	hourBaseStemIdx := dayStemIdx
	if o.lateZiRollover && hour == 23 {
		hourBaseStemIdx = (dayStemIdx + 1) % 10
	}

	hourBranchIdx := calendar.HourBranchIndex(hour)
	hourStemIdx := (hourBaseStemIdx*2 + hourBranchIdx) % 10

	rec := Record{
		Year:  Pillar{Stem: ld.YearStem, Branch: ld.YearBranch},
		Month: Pillar{Stem: ld.MonthStem, Branch: ld.MonthBranch},
		Day:   Pillar{Stem: ld.DayStem, Branch: ld.DayBranch},
		Hour:  Pillar{Stem: calendar.Stems[hourStemIdx], Branch: calendar.Branches[hourBranchIdx]},
	}
	if err := rec.Validate(); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// Validate 检查四柱结构完整性：
// 每柱恰好两个字、干支都在表内、且干支序号同奇偶（六十甲子约束）。
func (r Record) Validate() error {
	pillars := []struct {
		name string
		p    Pillar
	}{
		{"年柱", r.Year}, {"月柱", r.Month}, {"日柱", r.Day}, {"时柱", r.Hour},
	}
	for _, it := range pillars {
		if utf8.RuneCountInString(it.p.String()) != 2 {
			return fmt.Errorf("%w: %s %q 不是两字干支", ErrIncompleteBazi, it.name, it.p.String())
		}
		si := calendar.StemIndex(it.p.Stem)
		bi := calendar.BranchIndex(it.p.Branch)
		if si < 0 || bi < 0 {
			return fmt.Errorf("%w: %s %q 含未知干支", ErrIncompleteBazi, it.name, it.p.String())
		}
		if si%2 != bi%2 {
			return fmt.Errorf("%w: %s %q 不在六十甲子内", ErrIncompleteBazi, it.name, it.p.String())
		}
	}
	return nil
}
