package cache

import (
	"encoding/json"
	"time"
)

// Entry 单条缓存记录。文件后端按此结构整条落盘，
// 字段布局即磁盘格式，不能随意改名。
type Entry struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"` // 创建时刻，epoch 毫秒
	TTL       int64           `json:"ttl"`       // 存活时长，毫秒
	CreatedAt string          `json:"createdAt"` // ISO-8601，给人看的
	Hits      int             `json:"hits"`
}

func newEntry(data json.RawMessage, ttlHours int, now time.Time) *Entry {
	return &Entry{
		Data:      data,
		Timestamp: now.UnixMilli(),
		TTL:       int64(ttlHours) * int64(time.Hour/time.Millisecond),
		CreatedAt: now.UTC().Format(time.RFC3339),
		Hits:      0,
	}
}

// Expired 判断条目是否超过存活期。TTL 不为正视为立即过期。
func (e *Entry) Expired(now time.Time) bool {
	if e.TTL <= 0 {
		return true
	}
	return now.UnixMilli()-e.Timestamp > e.TTL
}
