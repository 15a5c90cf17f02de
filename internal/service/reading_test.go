package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/haoyun/tianji/internal/cache"
	"github.com/haoyun/tianji/internal/model"
)

// fakeProvider 记录调用次数，返回预设文本或错误。
type fakeProvider struct {
	reply string
	err   error
	calls int
}

func (f *fakeProvider) GenerateText(ctx context.Context, prompt string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

func (f *fakeProvider) Name() string { return "fake" }

const fakeReadingJSON = `{
  "classicalReading": { "sections": [ { "title": "【八字命盘】", "content": "文言内容", "comment": "评语" } ] },
  "vernacularReading": { "sections": [ { "title": "【八字命盘】", "content": "白话内容" } ] },
  "summary": "顺其自然"
}`

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(t *testing.T, p *fakeProvider) *ReadingService {
	t.Helper()
	store := cache.New(cache.Config{Backend: "memory"}, testLogger())
	t.Cleanup(store.Close)
	return NewReadingService(p, store, testLogger(), 0)
}

var referenceInput = model.BirthInput{
	BirthDate:     "1977-07-07",
	BirthTime:     "07:07",
	BirthLocation: "北京",
	Gender:        "male",
}

func TestComputeChartReference(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})

	chart, err := svc.ComputeChart(referenceInput)
	if err != nil {
		t.Fatalf("ComputeChart failed: %v", err)
	}
	if chart.Bazi != "丁巳 丁未 乙丑 庚辰" {
		t.Errorf("Bazi = %q, want 丁巳 丁未 乙丑 庚辰", chart.Bazi)
	}
	if chart.Lunar != "1977年五月廿一" {
		t.Errorf("Lunar = %q, want 1977年五月廿一", chart.Lunar)
	}
	if chart.Solar != "1977年7月7日 07:07" {
		t.Errorf("Solar = %q, want 1977年7月7日 07:07", chart.Solar)
	}
	if chart.Zodiac != "蛇" {
		t.Errorf("Zodiac = %q, want 蛇", chart.Zodiac)
	}
	if chart.Term != "小暑" {
		t.Errorf("Term = %q, want 小暑", chart.Term)
	}
}

func TestComputeChartInvalidInput(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})

	tests := []model.BirthInput{
		{BirthDate: "notadate", BirthTime: "07:07", Gender: "male"},
		{BirthDate: "1977-07-07", BirthTime: "late", Gender: "male"},
		{BirthDate: "2001-02-30", BirthTime: "07:07", Gender: "male"},
	}
	for _, in := range tests {
		if _, err := svc.ComputeChart(in); err == nil {
			t.Errorf("ComputeChart(%+v) succeeded, want error", in)
		}
	}
}

func TestGenerateReadingCachesResult(t *testing.T) {
	p := &fakeProvider{reply: fakeReadingJSON}
	svc := newTestService(t, p)
	ctx := context.Background()

	first, cached, err := svc.GenerateReading(ctx, referenceInput)
	if err != nil {
		t.Fatalf("GenerateReading failed: %v", err)
	}
	if cached {
		t.Error("首次生成不应命中缓存")
	}
	if p.calls != 1 {
		t.Fatalf("模型调用次数 = %d, want 1", p.calls)
	}
	if first.ID == "" {
		t.Error("报告缺少 ID")
	}
	if first.Chart == nil || first.Chart.Bazi != "丁巳 丁未 乙丑 庚辰" {
		t.Errorf("报告缺少排盘数据: %+v", first.Chart)
	}
	if first.Summary != "顺其自然" {
		t.Errorf("Summary = %q", first.Summary)
	}

	second, cached, err := svc.GenerateReading(ctx, referenceInput)
	if err != nil {
		t.Fatalf("二次 GenerateReading failed: %v", err)
	}
	if !cached {
		t.Error("相同输入应命中缓存")
	}
	if p.calls != 1 {
		t.Errorf("缓存命中后模型仍被调用, calls = %d", p.calls)
	}
	if second.ID != first.ID {
		t.Errorf("缓存读回的报告 ID 变了: %s != %s", second.ID, first.ID)
	}
}

func TestGenerateReadingDifferentInputDifferentEntry(t *testing.T) {
	p := &fakeProvider{reply: fakeReadingJSON}
	svc := newTestService(t, p)
	ctx := context.Background()

	if _, _, err := svc.GenerateReading(ctx, referenceInput); err != nil {
		t.Fatalf("GenerateReading failed: %v", err)
	}

	other := referenceInput
	other.BirthTime = "23:30"
	if _, cached, err := svc.GenerateReading(ctx, other); err != nil {
		t.Fatalf("GenerateReading failed: %v", err)
	} else if cached {
		t.Error("不同输入不应命中缓存")
	}
	if p.calls != 2 {
		t.Errorf("模型调用次数 = %d, want 2", p.calls)
	}
}

// 模型把 JSON 包在 markdown 围栏里也要能解析。
func TestGenerateReadingStripsCodeFence(t *testing.T) {
	p := &fakeProvider{reply: "```json\n" + fakeReadingJSON + "\n```"}
	svc := newTestService(t, p)

	reading, _, err := svc.GenerateReading(context.Background(), referenceInput)
	if err != nil {
		t.Fatalf("GenerateReading failed: %v", err)
	}
	if len(reading.ClassicalReading.Sections) != 1 {
		t.Errorf("章节数 = %d, want 1", len(reading.ClassicalReading.Sections))
	}
}

func TestGenerateReadingBadModelOutput(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{"非JSON", "今日不宜算命"},
		{"缺少章节", `{"classicalReading":{"sections":[]},"vernacularReading":{"sections":[]},"summary":"x"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &fakeProvider{reply: tt.reply})
			_, _, err := svc.GenerateReading(context.Background(), referenceInput)
			if !errors.Is(err, ErrBadModelOutput) {
				t.Errorf("err = %v, want ErrBadModelOutput", err)
			}
		})
	}
}

func TestGenerateReadingProviderError(t *testing.T) {
	p := &fakeProvider{err: errors.New("connection refused")}
	svc := newTestService(t, p)

	if _, _, err := svc.GenerateReading(context.Background(), referenceInput); err == nil {
		t.Error("模型失败应向上传播")
	}
}

func TestGenerateReadingInvalidInput(t *testing.T) {
	p := &fakeProvider{reply: fakeReadingJSON}
	svc := newTestService(t, p)

	in := referenceInput
	in.BirthDate = "07/07/1977"
	_, _, err := svc.GenerateReading(context.Background(), in)
	if !errors.Is(err, ErrInvalidInput) {
		t.Errorf("err = %v, want ErrInvalidInput", err)
	}
	if p.calls != 0 {
		t.Errorf("非法输入不应触发模型调用, calls = %d", p.calls)
	}
}

func TestBuildPromptInterpolation(t *testing.T) {
	svc := newTestService(t, &fakeProvider{})
	chart, err := svc.ComputeChart(referenceInput)
	if err != nil {
		t.Fatalf("ComputeChart failed: %v", err)
	}

	prompt := buildPrompt(referenceInput, chart, svc.now())
	for _, want := range []string{"丁巳 丁未 乙丑 庚辰", "1977年五月廿一", "中国, 北京", "男", "小暑"} {
		if !strings.Contains(prompt, want) {
			t.Errorf("Prompt 缺少 %q", want)
		}
	}
	if strings.Contains(prompt, "{{") {
		t.Error("Prompt 存在未替换的占位符")
	}
}
