package cache

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"
)

// memoryStore 进程内 map 后端，用于 Serverless 等无持久化磁盘的环境。
// 进程重启缓存即清零，这是环境决定的，不是缺陷。
type memoryStore struct {
	mu         sync.Mutex
	entries    map[string]*Entry
	maxEntries int
	logger     *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

func newMemoryStore(cfg Config, logger *slog.Logger) *memoryStore {
	s := &memoryStore{
		entries:    make(map[string]*Entry),
		maxEntries: cfg.MaxEntries,
		logger:     logger,
		stop:       make(chan struct{}),
	}
	go s.sweepLoop(cfg.CleanupInterval)
	return s
}

func (s *memoryStore) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return nil, false
	}
	if e.Expired(time.Now()) {
		delete(s.entries, key)
		return nil, false
	}
	e.Hits++
	return e.Data, true
}

func (s *memoryStore) Set(key string, data any, ttlHours int) error {
	raw, err := marshalData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.entries[key]; !exists && len(s.entries) >= s.maxEntries {
		s.evictOldestLocked()
	}
	s.entries[key] = newEntry(raw, ttlHours, time.Now())
	return nil
}

// evictOldestLocked 淘汰创建时间最早的一条，调用方持锁。
func (s *memoryStore) evictOldestLocked() {
	var oldestKey string
	var oldestTs int64
	for k, e := range s.entries {
		if oldestKey == "" || e.Timestamp < oldestTs {
			oldestKey = k
			oldestTs = e.Timestamp
		}
	}
	if oldestKey != "" {
		delete(s.entries, oldestKey)
		s.logger.Debug("容量淘汰最旧缓存", "key", shortKey(oldestKey))
	}
}

func (s *memoryStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, key)
}

func (s *memoryStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for k, e := range s.entries {
		if e.Expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("清理过期缓存", "removed", removed)
	}
	return removed
}

func (s *memoryStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := len(s.entries)
	s.entries = make(map[string]*Entry)
	return n
}

func (s *memoryStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Entries: len(s.entries), Backend: "memory"}
	for _, e := range s.entries {
		st.TotalSize += int64(len(e.Data))
		st.TotalHits += e.Hits
		created := time.UnixMilli(e.Timestamp)
		if st.Oldest.IsZero() || created.Before(st.Oldest) {
			st.Oldest = created
		}
		if created.After(st.Newest) {
			st.Newest = created
		}
	}
	return st
}

func (s *memoryStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *memoryStore) sweepLoop(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.Cleanup()
		case <-s.stop:
			return
		}
	}
}

func shortKey(key string) string {
	if len(key) > 8 {
		return key[:8]
	}
	return key
}
