package game

import (
	"os"
	"testing"

	"github.com/quasilyte/gdata/v2"
)

// openTestStorage 在临时 HOME 下打开 gdata
func openTestStorage(t *testing.T, appName string) *gdata.Manager {
	t.Helper()
	tempDir := t.TempDir()
	originalHome := os.Getenv("HOME")
	os.Setenv("HOME", tempDir)
	t.Cleanup(func() { os.Setenv("HOME", originalHome) })

	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		t.Fatalf("Failed to create gdata manager: %v", err)
	}
	return m
}

// TestDefaultSettings 测试默认值
func TestDefaultSettings(t *testing.T) {
	s := DefaultSettings()
	if s.Fullscreen {
		t.Error("Fullscreen: got true, want false")
	}
	if s.ShowHUD {
		t.Error("ShowHUD: got true, want false")
	}
	if s.ScrollSensitivity != 1.0 {
		t.Errorf("ScrollSensitivity: got %v, want 1.0", s.ScrollSensitivity)
	}
}

// TestNewSettingsManagerNilGdata 测试降级模式
func TestNewSettingsManagerNilGdata(t *testing.T) {
	sm := NewSettingsManager(nil)
	if sm.GetSettings() == nil {
		t.Fatal("GetSettings() returned nil in degraded mode")
	}
	sm.SetShowHUD(true)
	if err := sm.Save(); err != nil {
		t.Errorf("Save() in degraded mode error: %v", err)
	}
	if !sm.GetSettings().ShowHUD {
		t.Error("in-memory setting lost in degraded mode")
	}
}

// TestSettingsLoadSave 测试保存后重新加载
func TestSettingsLoadSave(t *testing.T) {
	m := openTestStorage(t, "test_journey_settings")

	sm1 := NewSettingsManager(m)
	sm1.SetFullscreen(true)
	sm1.SetShowHUD(true)
	sm1.SetScrollSensitivity(2.5)
	if err := sm1.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	sm2 := NewSettingsManager(m)
	s := sm2.GetSettings()
	if !s.Fullscreen || !s.ShowHUD || s.ScrollSensitivity != 2.5 {
		t.Errorf("loaded settings = %+v", *s)
	}
}

// TestSettingsLoadCorrupt 测试损坏数据回退到默认值
func TestSettingsLoadCorrupt(t *testing.T) {
	m := openTestStorage(t, "test_journey_settings_corrupt")
	if err := m.SaveObjectProp(settingsObject, settingsProperty, []byte("fullscreen: [oops")); err != nil {
		t.Fatalf("SaveObjectProp: %v", err)
	}

	sm := NewSettingsManager(m)
	if *sm.GetSettings() != *DefaultSettings() {
		t.Errorf("settings = %+v, 期望默认值", *sm.GetSettings())
	}
	if err := sm.Load(); err == nil {
		t.Error("Load() on corrupt data should return error")
	}
}

// TestSetScrollSensitivityClamp 测试灵敏度范围
func TestSetScrollSensitivityClamp(t *testing.T) {
	sm := NewSettingsManager(nil)

	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"正常值", 1.5, 1.5},
		{"下限", 0.25, 0.25},
		{"上限", 4, 4},
		{"低于下限", 0.1, MinScrollSensitivity},
		{"高于上限", 10, MaxScrollSensitivity},
		{"负数", -2, MinScrollSensitivity},
		{"零视为默认", 0, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sm.SetScrollSensitivity(tt.input)
			if got := sm.GetSettings().ScrollSensitivity; got != tt.expected {
				t.Errorf("SetScrollSensitivity(%v): got %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
