package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/haoyun/tianji/internal/bazi"
	"github.com/haoyun/tianji/internal/cache"
	"github.com/haoyun/tianji/internal/calendar"
	"github.com/haoyun/tianji/internal/infrastructure/llm"
	"github.com/haoyun/tianji/internal/model"
)

// ErrInvalidInput 出生信息格式不合法。
var ErrInvalidInput = errors.New("service: invalid birth input")

// ErrBadModelOutput 模型返回内容无法解析成报告结构。
var ErrBadModelOutput = errors.New("service: unparsable model output")

// 缓存 key 的版本号。Prompt 或输出结构变更时递增，旧缓存自然失效。
const readingVersion = "v2"

// ReadingService 命理报告业务逻辑。
type ReadingService struct {
	provider llm.Provider // 依赖接口，而不是具体 struct
	store    cache.Store
	logger   *slog.Logger
	ttlHours int
	now      func() time.Time
}

// NewReadingService 构造函数 (依赖注入)。ttlHours 不为正时取默认 24 小时。
func NewReadingService(provider llm.Provider, store cache.Store, logger *slog.Logger, ttlHours int) *ReadingService {
	if ttlHours <= 0 {
		ttlHours = cache.DefaultTTLHours
	}
	return &ReadingService{
		provider: provider,
		store:    store,
		logger:   logger,
		ttlHours: ttlHours,
		now:      time.Now,
	}
}

// readingKey 参与缓存 key 的字段。刻意混入当前年月：
// 报告里有流月流年内容，换月之后同一生辰也应视为未命中、重新生成。
type readingKey struct {
	BirthDate     string `json:"birthDate"`
	BirthTime     string `json:"birthTime"`
	BirthLocation string `json:"birthLocation"`
	Gender        string `json:"gender"`
	CurrentMonth  int    `json:"currentMonth"`
	CurrentYear   int    `json:"currentYear"`
	Version       string `json:"version"`
}

// ComputeChart 只排盘不生成报告。排盘失败对请求是致命的。
func (s *ReadingService) ComputeChart(in model.BirthInput) (*model.ChartPayload, error) {
	date, err := parseBirth(in)
	if err != nil {
		return nil, err
	}

	ld, err := calendar.SolarToLunar(date)
	if err != nil {
		return nil, err
	}
	rec, err := bazi.Assemble(ld, date.Hour, date.Minute)
	if err != nil {
		return nil, err
	}

	return &model.ChartPayload{
		Solar:  calendar.FormatSolar(date),
		Lunar:  calendar.FormatLunar(ld),
		Bazi:   rec.String(),
		Zodiac: calendar.Zodiac(ld.YearBranch),
		Term:   calendar.GoverningTerm(date.Year, date.Month, date.Day),
	}, nil
}

// GenerateReading 生成完整报告，带缓存。
// 返回值第二项表示是否命中缓存。
// 缓存层任何故障都降级为未命中/不写入，绝不让缓存问题弄失败一次
// 本来能成功的生成。
func (s *ReadingService) GenerateReading(ctx context.Context, in model.BirthInput) (*model.FortuneReading, bool, error) {
	now := s.now()
	key := cache.GenerateKey(readingKey{
		BirthDate:     in.BirthDate,
		BirthTime:     in.BirthTime,
		BirthLocation: in.BirthLocation,
		Gender:        in.Gender,
		CurrentMonth:  int(now.Month()),
		CurrentYear:   now.Year(),
		Version:       readingVersion,
	})

	if cached, ok := cache.GetAs[model.FortuneReading](s.store, key); ok {
		s.logger.Info("命理报告缓存命中", "key", key[:8])
		return &cached, true, nil
	}

	// 1. 排盘
	chart, err := s.ComputeChart(in)
	if err != nil {
		return nil, false, err
	}

	// 2. 构建 Prompt 并调用模型
	prompt := buildPrompt(in, chart, now)
	s.logger.Info("缓存未命中，调用模型生成报告",
		"key", key[:8], "provider", s.provider.Name(), "prompt_len", len(prompt))

	start := time.Now()
	raw, err := s.provider.GenerateText(ctx, prompt)
	if err != nil {
		return nil, false, fmt.Errorf("生成命理报告失败: %w", err)
	}
	s.logger.Info("模型生成完成", "elapsed", time.Since(start).Round(time.Millisecond))

	// 3. 解析并校验输出
	reading, err := parseReading(raw)
	if err != nil {
		return nil, false, err
	}
	reading.ID = uuid.NewString()
	reading.Chart = chart

	// 4. 写缓存，失败只记日志
	if err := s.store.Set(key, reading, s.ttlHours); err != nil {
		s.logger.Warn("报告写入缓存失败", "key", key[:8], "error", err)
	}
	return reading, false, nil
}

// parseBirth 把 "YYYY-MM-DD" + "HH:MM" 解析成整数元组。
func parseBirth(in model.BirthInput) (calendar.Date, error) {
	var d calendar.Date
	if _, err := fmt.Sscanf(in.BirthDate, "%d-%d-%d", &d.Year, &d.Month, &d.Day); err != nil {
		return d, fmt.Errorf("%w: 出生日期 %q 应为 YYYY-MM-DD", ErrInvalidInput, in.BirthDate)
	}
	if _, err := fmt.Sscanf(in.BirthTime, "%d:%d", &d.Hour, &d.Minute); err != nil {
		return d, fmt.Errorf("%w: 出生时间 %q 应为 HH:MM", ErrInvalidInput, in.BirthTime)
	}
	return d, nil
}

var jsonFenceRe = regexp.MustCompile("(?s)```(?:json)?\\s*(.*?)\\s*```")

// parseReading 清洗模型输出并按报告协议反序列化。
// 模型偶尔会把 JSON 包在 markdown 代码块里，先剥掉围栏。
func parseReading(raw string) (*model.FortuneReading, error) {
	text := strings.TrimSpace(raw)
	if m := jsonFenceRe.FindStringSubmatch(text); m != nil {
		text = m[1]
	}

	var reading model.FortuneReading
	if err := json.Unmarshal([]byte(text), &reading); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadModelOutput, err)
	}
	if len(reading.ClassicalReading.Sections) == 0 || len(reading.VernacularReading.Sections) == 0 {
		return nil, fmt.Errorf("%w: 缺少解读章节", ErrBadModelOutput)
	}
	return &reading, nil
}
