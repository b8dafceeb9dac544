package game

import (
	"fmt"
	"log"
	"time"

	"github.com/gonewx/xmasdrive/pkg/utils"
	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// ProgressData 保存的旅程进度
type ProgressData struct {
	Progress float64   `yaml:"progress"` // 上次退出时的进度 [0, 1]
	SavedAt  time.Time `yaml:"savedAt"`
}

// ProgressStore 旅程进度存储
//
// 记住上次的滚动进度，下次启动时从同一位置继续。
// gdataManager 为 nil 时只在内存中保存。
type ProgressStore struct {
	gdataManager *gdata.Manager
	data         ProgressData
	now          func() time.Time
}

const (
	progressObject   = "journey"
	progressProperty = "progress"
)

// NewProgressStore 创建进度存储并加载已保存的进度
func NewProgressStore(gdataManager *gdata.Manager) *ProgressStore {
	ps := &ProgressStore{
		gdataManager: gdataManager,
		now:          time.Now,
	}
	if err := ps.Load(); err != nil {
		log.Printf("[ProgressStore] Warning: %v (starting from the beginning)", err)
	}
	return ps
}

// Load 从 gdata 加载进度，失败时进度归零
func (ps *ProgressStore) Load() error {
	ps.data = ProgressData{}
	if ps.gdataManager == nil || !ps.gdataManager.ObjectPropExists(progressObject, progressProperty) {
		return nil
	}

	raw, err := ps.gdataManager.LoadObjectProp(progressObject, progressProperty)
	if err != nil {
		return fmt.Errorf("failed to load progress: %w", err)
	}
	var data ProgressData
	if err := yaml.Unmarshal(raw, &data); err != nil {
		return fmt.Errorf("failed to unmarshal progress: %w", err)
	}
	data.Progress = utils.Clamp01(data.Progress)
	ps.data = data

	log.Printf("[ProgressStore] Loaded progress %.3f (saved %s)", data.Progress, data.SavedAt.Format(time.RFC3339))
	return nil
}

// Save 持久化当前进度
func (ps *ProgressStore) Save() error {
	ps.data.SavedAt = ps.now()
	if ps.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(&ps.data)
	if err != nil {
		return fmt.Errorf("failed to marshal progress: %w", err)
	}
	if err := ps.gdataManager.SaveObjectProp(progressObject, progressProperty, raw); err != nil {
		return fmt.Errorf("failed to save progress: %w", err)
	}
	log.Printf("[ProgressStore] Saved progress %.3f", ps.data.Progress)
	return nil
}

// Progress 返回记录的进度
func (ps *ProgressStore) Progress() float64 {
	return ps.data.Progress
}

// SavedAt 返回最后一次保存的时间，从未保存时为零值
func (ps *ProgressStore) SavedAt() time.Time {
	return ps.data.SavedAt
}

// SetProgress 更新内存中的进度，限制在 [0, 1]
func (ps *ProgressStore) SetProgress(p float64) {
	ps.data.Progress = utils.Clamp01(p)
}

// Reset 将进度归零并立即保存（对应 --fresh）
func (ps *ProgressStore) Reset() error {
	ps.data = ProgressData{}
	if err := ps.Save(); err != nil {
		return fmt.Errorf("failed to reset progress: %w", err)
	}
	return nil
}
