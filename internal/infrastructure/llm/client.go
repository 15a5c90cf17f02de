package llm

import (
	"context"
	"errors"
)

// ErrNoProvider 没有任何可用的模型服务（API Key 均未配置）。
var ErrNoProvider = errors.New("llm: no available provider")

// Provider 定义了大模型的通用行为。
// 命理报告生成只需要一个能力：给定完整 Prompt，返回文本。
type Provider interface {
	// GenerateText 同步生成，超时控制通过 ctx 传入。
	GenerateText(ctx context.Context, prompt string) (string, error)

	// Name 服务名，用于日志与降级提示。
	Name() string
}
