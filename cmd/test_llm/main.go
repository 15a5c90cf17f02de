package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"time"

	"github.com/haoyun/tianji/internal/cache"
	"github.com/haoyun/tianji/internal/config"
	"github.com/haoyun/tianji/internal/infrastructure/llm"
	"github.com/haoyun/tianji/internal/model"
	"github.com/haoyun/tianji/internal/service"
)

// 命理报告链路冒烟测试：排盘 -> 调真实模型 -> 打印解析结果。
// 不走 HTTP，缓存用内存后端，方便单独调提示词。
func main() {
	conf, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("无法加载配置: %v", err)
	}
	log.Println("配置加载成功")

	if conf.AI.DeepSeek.APIKey == "" {
		log.Fatal("请在 config.yaml 或环境变量 TIANJI_AI_DEEPSEEK_API_KEY 中配置 Key")
	}
	llmClient := llm.NewDeepSeekClient(conf.AI.DeepSeek.APIKey, conf.AI.DeepSeek.BaseURL,
		conf.AI.DeepSeek.Model, conf.AI.MaxTokens)

	logger := slog.Default()
	store := cache.New(cache.Config{Backend: "memory"}, logger)
	defer store.Close()

	svc := service.NewReadingService(llmClient, store, logger, conf.Cache.TTLHours)
	ctx := context.Background()

	testCases := []struct {
		Name  string
		Input model.BirthInput
	}{
		{
			Name: "场景1：白天出生",
			Input: model.BirthInput{
				BirthDate:     "1977-07-07",
				BirthTime:     "07:07",
				BirthLocation: "北京",
				Gender:        "male",
			},
		},
		{
			Name: "场景2：晚子时出生",
			Input: model.BirthInput{
				BirthDate:     "1990-01-15",
				BirthTime:     "23:30",
				BirthLocation: "上海",
				Gender:        "female",
			},
		},
	}

	for _, tc := range testCases {
		fmt.Printf("\n-------- 测试: %s --------\n", tc.Name)

		chart, err := svc.ComputeChart(tc.Input)
		if err != nil {
			log.Printf("❌ 排盘失败: %v\n", err)
			continue
		}
		fmt.Printf("八字: %s\n", chart.Bazi)
		fmt.Printf("农历: %s\n", chart.Lunar)

		start := time.Now()
		reading, cached, err := svc.GenerateReading(ctx, tc.Input)
		duration := time.Since(start)

		if err != nil {
			log.Printf("❌ 调用失败: %v\n", err)
			continue
		}

		fmt.Printf("✅ 调用成功 (耗时 %v, 缓存命中: %v)\n", duration, cached)
		fmt.Printf("报告 ID: %s\n", reading.ID)
		fmt.Printf("总评: %s\n", reading.Summary)
		fmt.Printf("文言章节数: %d\n", len(reading.ClassicalReading.Sections))
	}
}
