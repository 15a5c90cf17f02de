package cache

import (
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// fileStore 文件后端：每个 key 一个 <key>.json，整条 Entry 落盘。
// 写入走临时文件加改名，单条记录不会出现写了一半的状态；
// 进程崩溃留下的残缺文件在读取或清扫时当损坏处理、直接删除。
type fileStore struct {
	mu         sync.Mutex
	dir        string
	maxEntries int
	logger     *slog.Logger

	stopOnce sync.Once
	stop     chan struct{}
}

func newFileStore(cfg Config, logger *slog.Logger) (*fileStore, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, err
	}
	s := &fileStore{
		dir:        cfg.Dir,
		maxEntries: cfg.MaxEntries,
		logger:     logger,
		stop:       make(chan struct{}),
	}
	go s.sweepLoop(cfg.CleanupInterval)
	return s, nil
}

func (s *fileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *fileStore) Get(key string) (json.RawMessage, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.readLocked(key)
	if !ok {
		return nil, false
	}
	if e.Expired(time.Now()) {
		s.removeLocked(key)
		return nil, false
	}

	// 命中数只是诊断数据，回写失败不影响命中结果
	e.Hits++
	if err := s.writeLocked(key, e); err != nil {
		s.logger.Warn("回写命中数失败", "key", shortKey(key), "error", err)
	}
	return e.Data, true
}

// readLocked 读一条记录；文件损坏按缓存未命中处理并删除源文件。
func (s *fileStore) readLocked(key string) (*Entry, bool) {
	b, err := os.ReadFile(s.path(key))
	if err != nil {
		return nil, false
	}
	var e Entry
	if err := json.Unmarshal(b, &e); err != nil {
		s.logger.Warn("缓存文件损坏，已删除", "key", shortKey(key), "error", err)
		s.removeLocked(key)
		return nil, false
	}
	return &e, true
}

func (s *fileStore) writeLocked(key string, e *Entry) error {
	b, err := json.MarshalIndent(e, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.path(key) + ".tmp"
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.path(key))
}

func (s *fileStore) removeLocked(key string) {
	_ = os.Remove(s.path(key))
}

func (s *fileStore) Set(key string, data any, ttlHours int) error {
	raw, err := marshalData(data)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := os.Stat(s.path(key)); os.IsNotExist(err) {
		if len(s.listLocked()) >= s.maxEntries {
			s.evictOldestLocked()
		}
	}
	return s.writeLocked(key, newEntry(raw, ttlHours, time.Now()))
}

// listLocked 返回目录下所有缓存 key。
func (s *fileStore) listLocked() []string {
	files, err := os.ReadDir(s.dir)
	if err != nil {
		return nil
	}
	keys := make([]string, 0, len(files))
	for _, f := range files {
		name := f.Name()
		if strings.HasSuffix(name, ".json") {
			keys = append(keys, strings.TrimSuffix(name, ".json"))
		}
	}
	return keys
}

// evictOldestLocked 按条目创建时间淘汰最旧的一条。
// 用记录内的 timestamp 而不是文件 mtime：命中数回写会刷新 mtime，
// 按 mtime 排序会悄悄变成按访问时间淘汰。
func (s *fileStore) evictOldestLocked() {
	var oldestKey string
	var oldestTs int64
	for _, key := range s.listLocked() {
		e, ok := s.readLocked(key)
		if !ok {
			continue
		}
		if oldestKey == "" || e.Timestamp < oldestTs {
			oldestKey = key
			oldestTs = e.Timestamp
		}
	}
	if oldestKey != "" {
		s.removeLocked(oldestKey)
		s.logger.Debug("容量淘汰最旧缓存", "key", shortKey(oldestKey))
	}
}

func (s *fileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(key)
}

func (s *fileStore) Cleanup() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now()
	removed := 0
	for _, key := range s.listLocked() {
		b, err := os.ReadFile(s.path(key))
		if err != nil {
			continue
		}
		var e Entry
		if err := json.Unmarshal(b, &e); err != nil {
			// 损坏文件一并清掉
			s.removeLocked(key)
			removed++
			continue
		}
		if e.Expired(now) {
			s.removeLocked(key)
			removed++
		}
	}
	if removed > 0 {
		s.logger.Info("清理过期缓存文件", "removed", removed)
	}
	return removed
}

func (s *fileStore) Clear() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for _, key := range s.listLocked() {
		s.removeLocked(key)
		removed++
	}
	return removed
}

func (s *fileStore) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := Stats{Backend: "file"}
	for _, key := range s.listLocked() {
		info, err := os.Stat(s.path(key))
		if err != nil {
			continue
		}
		e, ok := s.readLocked(key)
		if !ok {
			continue
		}
		st.Entries++
		st.TotalSize += info.Size()
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

func (s *fileStore) Close() {
	s.stopOnce.Do(func() { close(s.stop) })
}

func (s *fileStore) sweepLoop(interval time.Duration) {
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
