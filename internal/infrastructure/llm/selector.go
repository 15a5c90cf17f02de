package llm

import (
	"context"
	"log/slog"
	"time"
)

const (
	maxAttempts  = 3
	maxRetryWait = 5 * time.Second
)

// Selector 在主备模型之间做选择与降级：
// 主模型带指数退避重试，仍失败则切到备用模型再试一轮。
// fallback 可以为 nil，表示只配置了一个服务。
type Selector struct {
	primary  Provider
	fallback Provider
	logger   *slog.Logger
}

// NewSelector 构造函数。
func NewSelector(primary, fallback Provider, logger *slog.Logger) *Selector {
	return &Selector{primary: primary, fallback: fallback, logger: logger}
}

func (s *Selector) Name() string {
	if s.primary == nil {
		return "none"
	}
	return s.primary.Name()
}

// GenerateText 实现 Provider，调用方不感知降级过程。
func (s *Selector) GenerateText(ctx context.Context, prompt string) (string, error) {
	if s.primary == nil {
		return "", ErrNoProvider
	}

	text, err := s.callWithRetry(ctx, s.primary, prompt)
	if err == nil {
		return text, nil
	}

	if s.fallback == nil {
		return "", err
	}
	s.logger.Warn("主模型失败，降级到备用模型",
		"primary", s.primary.Name(), "fallback", s.fallback.Name(), "error", err)
	return s.callWithRetry(ctx, s.fallback, prompt)
}

func (s *Selector) callWithRetry(ctx context.Context, p Provider, prompt string) (string, error) {
	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		text, err := p.GenerateText(ctx, prompt)
		if err == nil {
			return text, nil
		}
		lastErr = err
		s.logger.Warn("模型调用失败", "provider", p.Name(), "attempt", attempt, "error", err)

		if attempt == maxAttempts {
			break
		}
		// 指数退避，封顶 5 秒
		wait := time.Second << (attempt - 1)
		if wait > maxRetryWait {
			wait = maxRetryWait
		}
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-time.After(wait):
		}
	}
	return "", lastErr
}
