package game

import (
	"fmt"
	"log"
	"math"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"
)

// 滚动灵敏度范围
const (
	MinScrollSensitivity = 0.25
	MaxScrollSensitivity = 4.0
)

// JourneySettings 全局设置
type JourneySettings struct {
	Fullscreen        bool    `yaml:"fullscreen"`        // 启动时是否全屏
	ShowHUD           bool    `yaml:"showHUD"`           // 是否显示调试信息
	ScrollSensitivity float64 `yaml:"scrollSensitivity"` // 滚轮/按键滚动量倍率
}

// DefaultSettings 返回默认设置
func DefaultSettings() *JourneySettings {
	return &JourneySettings{
		Fullscreen:        false,
		ShowHUD:           false,
		ScrollSensitivity: 1.0,
	}
}

// SettingsManager 设置管理器
// 负责设置的加载、保存和内存管理
type SettingsManager struct {
	gdataManager *gdata.Manager // 可为 nil（降级模式）
	settings     *JourneySettings
}

// 存储路径常量
const (
	settingsObject   = "settings"
	settingsProperty = "global"
)

// NewSettingsManager 创建新的设置管理器实例
//
// 参数：
//   - gdataManager: gdata 跨平台存储管理器，可为 nil（降级模式，仅内存设置）
//
// 加载失败不影响创建，使用默认设置
func NewSettingsManager(gdataManager *gdata.Manager) *SettingsManager {
	sm := &SettingsManager{
		gdataManager: gdataManager,
		settings:     DefaultSettings(),
	}

	if err := sm.Load(); err != nil {
		log.Printf("[SettingsManager] Warning: Failed to load settings: %v (using defaults)", err)
	}

	return sm
}

// Load 从 gdata 加载设置
// gdataManager 为 nil 或数据不存在时使用默认设置
func (sm *SettingsManager) Load() error {
	sm.settings = DefaultSettings()
	if sm.gdataManager == nil {
		return nil
	}
	if !sm.gdataManager.ObjectPropExists(settingsObject, settingsProperty) {
		return nil
	}

	data, err := sm.gdataManager.LoadObjectProp(settingsObject, settingsProperty)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	loaded := DefaultSettings()
	if err := yaml.Unmarshal(data, loaded); err != nil {
		return fmt.Errorf("failed to unmarshal settings: %w", err)
	}
	loaded.ScrollSensitivity = clampSensitivity(loaded.ScrollSensitivity)

	sm.settings = loaded
	log.Printf("[SettingsManager] Settings loaded successfully")
	return nil
}

// Save 保存设置到 gdata
// 降级模式下直接返回 nil
func (sm *SettingsManager) Save() error {
	if sm.gdataManager == nil {
		return nil
	}

	data, err := yaml.Marshal(sm.settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if err := sm.gdataManager.SaveObjectProp(settingsObject, settingsProperty, data); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	log.Printf("[SettingsManager] Settings saved successfully")
	return nil
}

// GetSettings 获取当前设置
func (sm *SettingsManager) GetSettings() *JourneySettings {
	return sm.settings
}

// SetFullscreen 设置全屏模式
// 仅修改内存中的设置，需调用 Save() 持久化
func (sm *SettingsManager) SetFullscreen(enabled bool) {
	sm.settings.Fullscreen = enabled
}

// SetShowHUD 设置调试信息开关
func (sm *SettingsManager) SetShowHUD(enabled bool) {
	sm.settings.ShowHUD = enabled
}

// SetScrollSensitivity 设置滚动灵敏度，限制在 [0.25, 4] 范围内
func (sm *SettingsManager) SetScrollSensitivity(v float64) {
	sm.settings.ScrollSensitivity = clampSensitivity(v)
}

func clampSensitivity(v float64) float64 {
	if math.IsNaN(v) || v == 0 {
		return 1.0
	}
	if v < MinScrollSensitivity {
		return MinScrollSensitivity
	}
	if v > MaxScrollSensitivity {
		return MaxScrollSensitivity
	}
	return v
}
