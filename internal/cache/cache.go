// Package cache 实现命理报告的记忆化缓存。
// 两个后端（文件、内存）实现同一份契约，调用方无需感知差异；
// 条目带 TTL，读取时惰性过期，另有后台定时清扫兜底。
package cache

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"
)

// DefaultTTLHours 报告缓存默认存活 24 小时
const DefaultTTLHours = 24

// Store 缓存后端契约。
// 并发安全：Get/Set/Delete/Cleanup 可与后台清扫任意交错，
// 单个 key 的读写删是原子的，不会观察到写了一半的条目。
//
// 同一 key 的并发未命中会各自重复计算，这是接受的取舍：
// 这里不做 single-flight，重复生成只浪费一次模型调用，不影响正确性。
type Store interface {
	// Get 返回缓存数据。条目不存在、已过期或已损坏都算未命中；
	// 过期与损坏的条目会在读取时顺手删除。命中会累加命中数。
	Get(key string) (json.RawMessage, bool)

	// Set 写入条目并覆盖同名旧值。容量已满且 key 为新增时，
	// 先淘汰创建时间最早的一条——不是 LRU，命中频繁的老条目
	// 同样会被淘汰，这是刻意选择的简单可预测策略。
	Set(key string, data any, ttlHours int) error

	// Delete 删除条目，不存在则无事发生。
	Delete(key string)

	// Cleanup 全量清扫过期条目，返回删除数量。
	Cleanup() int

	// Clear 无条件清空，返回删除数量。
	Clear() int

	// Stats 聚合诊断信息，只读不产生副作用。
	Stats() Stats

	// Close 停掉后台清扫定时器。进程退出前必须调用，避免泄漏。
	Close()
}

// Stats 缓存聚合统计。
type Stats struct {
	Entries   int       `json:"entries"`
	TotalSize int64     `json:"total_size"`
	Oldest    time.Time `json:"oldest,omitzero"`
	Newest    time.Time `json:"newest,omitzero"`
	TotalHits int       `json:"total_hits"`
	Backend   string    `json:"backend"`
}

// Config 缓存配置，来自配置文件 cache 段。
type Config struct {
	Backend         string // auto / file / memory
	Dir             string
	MaxEntries      int
	CleanupInterval time.Duration
}

func (c *Config) applyDefaults() {
	if c.MaxEntries <= 0 {
		c.MaxEntries = 1000
	}
	if c.CleanupInterval <= 0 {
		c.CleanupInterval = time.Hour
	}
	if c.Dir == "" {
		c.Dir = "cache"
	}
}

// New 按配置选定后端并构造 Store。每个进程只构造一次，
// 由 main 注入到需要的地方；不做运行期的按次探测。
// 文件后端初始化失败（如缓存目录无权限）时降级为内存后端，
// 只记日志，不让缓存问题影响请求。
func New(cfg Config, logger *slog.Logger) Store {
	cfg.applyDefaults()

	backend := cfg.Backend
	if backend == "" || backend == "auto" {
		if isEphemeralEnv() {
			backend = "memory"
		} else {
			backend = "file"
		}
	}

	if backend == "file" {
		fs, err := newFileStore(cfg, logger)
		if err != nil {
			logger.Warn("文件缓存初始化失败，降级为内存缓存", "dir", cfg.Dir, "error", err)
		} else {
			logger.Info("使用文件缓存", "dir", cfg.Dir, "max_entries", cfg.MaxEntries)
			return fs
		}
	}

	logger.Info("使用内存缓存", "max_entries", cfg.MaxEntries)
	return newMemoryStore(cfg, logger)
}

// isEphemeralEnv 识别无持久化文件系统的 Serverless 运行环境。
func isEphemeralEnv() bool {
	if os.Getenv("VERCEL") == "1" {
		return true
	}
	for _, key := range []string{"AWS_LAMBDA_FUNCTION_NAME", "FUNCTION_TARGET", "K_SERVICE"} {
		if os.Getenv(key) != "" {
			return true
		}
	}
	return false
}

// GetAs 按具体类型读取缓存。反序列化失败视为未命中并删除该条目，
// 缓存里的数据永远不以 any 形态流出。
func GetAs[T any](s Store, key string) (T, bool) {
	var v T
	raw, ok := s.Get(key)
	if !ok {
		return v, false
	}
	if err := json.Unmarshal(raw, &v); err != nil {
		s.Delete(key)
		return v, false
	}
	return v, true
}

// marshalData 把任意可序列化负载转成条目数据。
func marshalData(data any) (json.RawMessage, error) {
	b, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("序列化缓存数据失败: %w", err)
	}
	return b, nil
}
