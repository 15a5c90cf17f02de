package bazi

import (
	"testing"

	"github.com/haoyun/tianji/internal/calendar"
)

func mustLunar(t *testing.T, d calendar.Date) calendar.LunarDate {
	t.Helper()
	ld, err := calendar.SolarToLunar(d)
	if err != nil {
		t.Fatalf("SolarToLunar(%+v) failed: %v", d, err)
	}
	return ld
}

// 基准盘全链路：排盘结果必须与万年历逐字一致。
func TestAssembleReferenceChart(t *testing.T) {
	ld := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 7, Hour: 7, Minute: 7})
	rec, err := Assemble(ld, 7, 7)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := rec.String(); got != "丁巳 丁未 乙丑 庚辰" {
		t.Errorf("四柱 = %q, want 丁巳 丁未 乙丑 庚辰", got)
	}
}

func TestHourPillarBoundaries(t *testing.T) {
	ld := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 7})

	// 22:59 还是亥时
	rec, err := Assemble(ld, 22, 59)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if rec.Hour.Branch != "亥" {
		t.Errorf("22:59 时支 = %s, want 亥", rec.Hour.Branch)
	}

	// 23:00 进入晚子时，默认不换日：日柱仍为乙丑，时柱从乙日起推
	rec, err = Assemble(ld, 23, 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := rec.Day.String(); got != "乙丑" {
		t.Errorf("23:00 日柱 = %s, want 乙丑", got)
	}
	if got := rec.Hour.String(); got != "丙子" {
		t.Errorf("23:00 时柱 = %s, want 丙子", got)
	}
}

// 晚子时与次日早子时同为子时，但日干不同，时干也随之不同。
func TestLateZiVersusEarlyZi(t *testing.T) {
	late := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 7})
	recLate, err := Assemble(late, 23, 59)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	early := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 8})
	recEarly, err := Assemble(early, 0, 0)
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}

	if recLate.Hour.Branch != "子" || recEarly.Hour.Branch != "子" {
		t.Fatalf("两个时支都应为子, got %s / %s", recLate.Hour.Branch, recEarly.Hour.Branch)
	}
	if recLate.Hour.String() != "丙子" {
		t.Errorf("晚子时柱 = %s, want 丙子", recLate.Hour.String())
	}
	if recEarly.Hour.String() != "戊子" {
		t.Errorf("早子时柱 = %s, want 戊子", recEarly.Hour.String())
	}
}

// 开启晚子时换日后，时干按次日日干推，日柱本身不变。
func TestWithLateZiRollover(t *testing.T) {
	ld := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 7})
	rec, err := Assemble(ld, 23, 30, WithLateZiRollover())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := rec.Day.String(); got != "乙丑" {
		t.Errorf("日柱 = %s, want 乙丑", got)
	}
	if got := rec.Hour.String(); got != "戊子" {
		t.Errorf("时柱 = %s, want 戊子", got)
	}

	// 23 点前该选项不生效
	rec, err = Assemble(ld, 22, 30, WithLateZiRollover())
	if err != nil {
		t.Fatalf("Assemble failed: %v", err)
	}
	if got := rec.Hour.String(); got != "丁亥" {
		t.Errorf("22:30 时柱 = %s, want 丁亥", got)
	}
}

func TestAssembleRejectsBadInput(t *testing.T) {
	ld := mustLunar(t, calendar.Date{Year: 1977, Month: 7, Day: 7})

	if _, err := Assemble(ld, 24, 0); err == nil {
		t.Error("小时越界未报错")
	}
	if _, err := Assemble(ld, 12, 60); err == nil {
		t.Error("分钟越界未报错")
	}

	bad := ld
	bad.DayStem = "某"
	if _, err := Assemble(bad, 12, 0); err == nil {
		t.Error("未知日干未报错")
	}
}

func TestRecordValidate(t *testing.T) {
	good := Record{
		Year:  Pillar{Stem: "丁", Branch: "巳"},
		Month: Pillar{Stem: "丁", Branch: "未"},
		Day:   Pillar{Stem: "乙", Branch: "丑"},
		Hour:  Pillar{Stem: "庚", Branch: "辰"},
	}
	if err := good.Validate(); err != nil {
		t.Errorf("合法四柱被拒绝: %v", err)
	}

	// 甲丑：干支奇偶不配，不在六十甲子内
	bad := good
	bad.Hour = Pillar{Stem: "甲", Branch: "丑"}
	if err := bad.Validate(); err == nil {
		t.Error("甲丑组合未被拒绝")
	}

	// 缺支
	bad = good
	bad.Month = Pillar{Stem: "丁"}
	if err := bad.Validate(); err == nil {
		t.Error("缺地支未被拒绝")
	}

	// 未知干
	bad = good
	bad.Year = Pillar{Stem: "某", Branch: "巳"}
	if err := bad.Validate(); err == nil {
		t.Error("未知天干未被拒绝")
	}
}
