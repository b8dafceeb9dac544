package config

import (
	"fmt"
	"math"
	"os"

	"github.com/gonewx/xmasdrive/pkg/embedded"
	"github.com/gonewx/xmasdrive/pkg/utils"
	"gopkg.in/yaml.v3"
)

// DefaultJourneyConfigPath 嵌入的默认旅程配置路径
const DefaultJourneyConfigPath = "data/journey.yaml"

// JourneyConfig 旅程配置
// 描述车辆路径、镜头、雪花、角色、终章星星和字幕的全部可调参数
type JourneyConfig struct {
	// Seed 随机点云（雪花、星空、薯条）的种子，保证每次启动场景一致
	Seed uint64 `yaml:"seed"`

	// Length 旅程长度（沿 -Z 方向）
	Length float64 `yaml:"length"`

	// Pages 虚拟文档高度是视口高度的倍数
	Pages float64 `yaml:"pages"`

	Car        CarConfig         `yaml:"car"`
	Camera     CameraConfig      `yaml:"camera"`
	Driving    RangeConfig       `yaml:"driving"`
	Snow       SnowConfig        `yaml:"snow"`
	Stars      StarsConfig       `yaml:"stars"`
	Fog        FogConfig         `yaml:"fog"`
	Characters []CharacterConfig `yaml:"characters"`
	Finale     FinaleConfig      `yaml:"finale"`
	Captions   []CaptionConfig   `yaml:"captions"`

	// WaveRate 角色动画的时间系数（每毫秒）
	WaveRate float64 `yaml:"waveRate"`
}

// CarConfig 车辆参数
type CarConfig struct {
	Start     utils.Vec3 `yaml:"start"`
	End       utils.Vec3 `yaml:"end"`
	Smoothing float64    `yaml:"smoothing"` // 每帧向目标靠近的比例 α
	WheelStep float64    `yaml:"wheelStep"` // 行驶时每帧车轮转角减量（弧度）
}

// CameraConfig 镜头参数
type CameraConfig struct {
	Initial         utils.Vec3 `yaml:"initial"`         // 启动时的位置（拉远视角）
	InitialLookAt   utils.Vec3 `yaml:"initialLookAt"`   // 启动时的注视点
	FollowOffset    utils.Vec3 `yaml:"followOffset"`    // 跟随模式下相对车辆的偏移
	FinaleOffset    utils.Vec3 `yaml:"finaleOffset"`    // 终章模式下相对车辆的偏移
	FinaleThreshold float64    `yaml:"finaleThreshold"` // 进度达到此值后切换到终章偏移
	Smoothing       float64    `yaml:"smoothing"`       // 与车辆平滑系数概念上独立
	FOV             float64    `yaml:"fov"`             // 垂直视角（度）
	Near            float64    `yaml:"near"`
	Far             float64    `yaml:"far"`
}

// RangeConfig 开区间 (From, To)
type RangeConfig struct {
	From float64 `yaml:"from"`
	To   float64 `yaml:"to"`
}

// Contains 判断 v 是否严格位于区间内
func (r RangeConfig) Contains(v float64) bool {
	return utils.InOpenRange(v, r.From, r.To)
}

// SnowConfig 雪花粒子参数
type SnowConfig struct {
	Count       int     `yaml:"count"`
	Spread      float64 `yaml:"spread"`      // X/Z 方向的分布宽度
	FallRate    float64 `yaml:"fallRate"`    // 每帧下落距离
	Floor       float64 `yaml:"floor"`       // 低于此高度时重置
	Ceiling     float64 `yaml:"ceiling"`     // 重置后的高度
	DepthOffset float64 `yaml:"depthOffset"` // 雪场中心 = 镜头Z - DepthOffset
	Size        float64 `yaml:"size"`
	Opacity     float64 `yaml:"opacity"`
}

// StarsConfig 背景星空参数（静态）
type StarsConfig struct {
	Count  int     `yaml:"count"`
	Spread float64 `yaml:"spread"`
	Depth  float64 `yaml:"depth"` // 星空整体的 Z 位置
}

// FogConfig 线性雾参数
type FogConfig struct {
	Color uint32  `yaml:"color"`
	Near  float64 `yaml:"near"`
	Far   float64 `yaml:"far"`
}

// OscillatorConfig 周期摆动：Amplitude * wave(Frequency*t + Phase)
type OscillatorConfig struct {
	Wave      string  `yaml:"wave"` // "sin" 或 "cos"
	Frequency float64 `yaml:"frequency"`
	Phase     float64 `yaml:"phase"`
	Amplitude float64 `yaml:"amplitude"`
}

// Eval 计算 t 时刻的摆动值
func (o OscillatorConfig) Eval(t float64) float64 {
	x := o.Frequency*t + o.Phase
	if o.Wave == "cos" {
		return math.Cos(x) * o.Amplitude
	}
	return math.Sin(x) * o.Amplitude
}

// CharacterConfig 路点角色参数
type CharacterConfig struct {
	Name      string           `yaml:"name"`
	Color     uint32           `yaml:"color"`
	Position  utils.Vec3       `yaml:"position"`  // 中性姿态位置
	RotationY float64          `yaml:"rotationY"` // 中性姿态朝向
	Window    RangeConfig      `yaml:"window"`    // 可见窗口（进度开区间）
	Bob       OscillatorConfig `yaml:"bob"`       // 上下浮动
	Wobble    OscillatorConfig `yaml:"wobble"`    // 左右摇摆
}

// FinaleConfig 终章星星参数
type FinaleConfig struct {
	Threshold float64    `yaml:"threshold"` // 进度严格大于此值时显示
	SpinStep  float64    `yaml:"spinStep"`  // 可见时每帧旋转增量
	Position  utils.Vec3 `yaml:"position"`
	Scale     float64    `yaml:"scale"`
	RotationY float64    `yaml:"rotationY"` // 初始朝向
}

// CaptionConfig 字幕区间
// 每条字幕从 From 开始，到下一条的 From 结束，最后一条包含 1.0
type CaptionConfig struct {
	From  float64 `yaml:"from"`
	Title string  `yaml:"title"`
	Text  string  `yaml:"text"`
}

// DefaultJourneyConfig 返回默认旅程配置
func DefaultJourneyConfig() *JourneyConfig {
	const length = 100.0
	return &JourneyConfig{
		Seed:   20241225,
		Length: length,
		Pages:  10,
		Car: CarConfig{
			Start:     utils.V3(0, 0.4, 0),
			End:       utils.V3(0, 0.4, -length),
			Smoothing: 0.05,
			WheelStep: 0.2,
		},
		Camera: CameraConfig{
			Initial:         utils.V3(5, 5, 10),
			InitialLookAt:   utils.V3(0, 0, 0),
			FollowOffset:    utils.V3(0, 3, 7),
			FinaleOffset:    utils.V3(0, 10, -5),
			FinaleThreshold: 0.9,
			Smoothing:       0.05,
			FOV:             75,
			Near:            0.1,
			Far:             1000,
		},
		Driving: RangeConfig{From: 0.01, To: 0.9},
		Snow: SnowConfig{
			Count:       5000,
			Spread:      100,
			FallRate:    0.05,
			Floor:       -20,
			Ceiling:     50,
			DepthOffset: 50,
			Size:        0.1,
			Opacity:     0.8,
		},
		Stars: StarsConfig{Count: 10000, Spread: 200, Depth: -100},
		Fog:   FogConfig{Color: 0x0a0a1a, Near: 10, Far: 50},
		Characters: []CharacterConfig{
			{
				Name:     "joe",
				Color:    0x0091ff,
				Position: utils.V3(4.5, 0, -4),
				Window:   RangeConfig{From: 0.05, To: 0.15},
				Bob:      OscillatorConfig{Wave: "sin", Frequency: 1, Amplitude: 0.1},
				Wobble:   OscillatorConfig{Wave: "sin", Frequency: 2, Amplitude: 0.1},
			},
			{
				Name:     "jed",
				Color:    0x4ade80,
				Position: utils.V3(-4.5, 0, -29),
				Window:   RangeConfig{From: 0.25, To: 0.35},
				Bob:      OscillatorConfig{Wave: "sin", Frequency: 1, Phase: math.Pi / 2, Amplitude: 0.1},
				Wobble:   OscillatorConfig{Wave: "cos", Frequency: 2, Amplitude: 0.1},
			},
			{
				Name:      "hiker",
				Color:     0xfb923c,
				Position:  utils.V3(-9, 7.5, -58),
				RotationY: 0.5,
				Window:    RangeConfig{From: 0.48, To: 0.58},
				Bob:       OscillatorConfig{Wave: "sin", Frequency: 1.5, Amplitude: 0.2},
				Wobble:    OscillatorConfig{Wave: "sin", Frequency: 3, Amplitude: 0.05},
			},
		},
		Finale: FinaleConfig{
			Threshold: 0.95,
			SpinStep:  0.01,
			Position:  utils.V3(0, 5, -length),
			Scale:     1.5,
			RotationY: math.Pi / 4,
		},
		Captions: []CaptionConfig{
			{From: 0, Title: "Merry Christmas", Text: "Scroll down to start the drive home."},
			{From: 0.08, Title: "First stop", Text: "A quick wave from Joe by the burger sign."},
			{From: 0.25, Title: "Snack break", Text: "Jed kept the fries warm for the road."},
			{From: 0.45, Title: "The fells", Text: "Helvellyn and Langdale, white with snow."},
			{From: 0.65, Title: "Nearly there", Text: "The lights of home are somewhere ahead."},
			{From: 0.85, Title: "Home", Text: "Look up. Merry Christmas."},
		},
		WaveRate: 0.005,
	}
}

// LoadJourneyConfig 加载旅程配置
//
// 加载顺序：
//  1. path 为空时使用嵌入的默认配置文件
//  2. 嵌入文件系统中存在该路径时从嵌入资源读取
//  3. 否则从磁盘读取（用于 --config 覆盖）
//
// 返回：
//
//	*JourneyConfig - 解析并校验后的配置
//	error - 如果文件读取、解析或校验失败
func LoadJourneyConfig(path string) (*JourneyConfig, error) {
	if path == "" {
		path = DefaultJourneyConfigPath
	}

	var (
		data []byte
		err  error
	)
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err = embedded.ReadFile(path)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read journey config file %s: %w", path, err)
	}

	cfg, err := ParseJourneyConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid journey config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseJourneyConfig 解析 YAML 数据
// 未出现的字段保留默认值；列表字段（characters、captions）出现时整体替换
func ParseJourneyConfig(data []byte) (*JourneyConfig, error) {
	cfg := DefaultJourneyConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse journey config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validateJourneyConfig(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// applyDefaults 为缺失的可选字段设置默认值
func applyDefaults(cfg *JourneyConfig) {
	for i := range cfg.Characters {
		c := &cfg.Characters[i]
		if c.Bob.Wave == "" {
			c.Bob.Wave = "sin"
		}
		if c.Wobble.Wave == "" {
			c.Wobble.Wave = "sin"
		}
		if c.Color == 0 {
			c.Color = 0xffffff
		}
	}
	if cfg.Finale.Scale == 0 {
		cfg.Finale.Scale = 1
	}
}

// validateJourneyConfig 验证配置的合法性
func validateJourneyConfig(cfg *JourneyConfig) error {
	if cfg.Pages <= 1 {
		return fmt.Errorf("pages must be greater than 1, got %v", cfg.Pages)
	}
	if err := validateSmoothing("car.smoothing", cfg.Car.Smoothing); err != nil {
		return err
	}
	if err := validateSmoothing("camera.smoothing", cfg.Camera.Smoothing); err != nil {
		return err
	}
	if cfg.Driving.From >= cfg.Driving.To {
		return fmt.Errorf("driving range is empty: (%v, %v)", cfg.Driving.From, cfg.Driving.To)
	}
	if cfg.Snow.Count <= 0 {
		return fmt.Errorf("snow.count must be positive, got %d", cfg.Snow.Count)
	}
	if cfg.Snow.Floor >= cfg.Snow.Ceiling {
		return fmt.Errorf("snow.floor (%v) must be below snow.ceiling (%v)", cfg.Snow.Floor, cfg.Snow.Ceiling)
	}
	if cfg.Snow.FallRate <= 0 {
		return fmt.Errorf("snow.fallRate must be positive, got %v", cfg.Snow.FallRate)
	}
	if cfg.Stars.Count < 0 {
		return fmt.Errorf("stars.count must not be negative, got %d", cfg.Stars.Count)
	}
	if cfg.Camera.Near <= 0 || cfg.Camera.Far <= cfg.Camera.Near {
		return fmt.Errorf("camera clip planes invalid: near=%v far=%v", cfg.Camera.Near, cfg.Camera.Far)
	}
	if cfg.Camera.FOV <= 0 || cfg.Camera.FOV >= 180 {
		return fmt.Errorf("camera.fov out of range: %v", cfg.Camera.FOV)
	}
	if cfg.Finale.Threshold < 0 || cfg.Finale.Threshold > 1 {
		return fmt.Errorf("finale.threshold out of range: %v", cfg.Finale.Threshold)
	}

	names := make(map[string]bool, len(cfg.Characters))
	for i, c := range cfg.Characters {
		if c.Name == "" {
			return fmt.Errorf("character #%d missing 'name'", i)
		}
		if names[c.Name] {
			return fmt.Errorf("duplicate character name %q", c.Name)
		}
		names[c.Name] = true
		if c.Window.From >= c.Window.To {
			return fmt.Errorf("character %q has empty window (%v, %v)", c.Name, c.Window.From, c.Window.To)
		}
		for _, o := range []OscillatorConfig{c.Bob, c.Wobble} {
			if o.Wave != "sin" && o.Wave != "cos" {
				return fmt.Errorf("character %q has unknown wave %q", c.Name, o.Wave)
			}
		}
	}

	return validateCaptions(cfg.Captions)
}

// CaptionCount 字幕数量固定为 6
const CaptionCount = 6

// validateCaptions 字幕区间必须从 0 开始严格递增，且都小于 1
func validateCaptions(captions []CaptionConfig) error {
	if len(captions) != CaptionCount {
		return fmt.Errorf("expected %d captions, got %d", CaptionCount, len(captions))
	}
	if captions[0].From != 0 {
		return fmt.Errorf("first caption must start at 0, got %v", captions[0].From)
	}
	for i := 1; i < len(captions); i++ {
		if captions[i].From <= captions[i-1].From {
			return fmt.Errorf("caption %d starts at %v, not after caption %d (%v)",
				i+1, captions[i].From, i, captions[i-1].From)
		}
		if captions[i].From >= 1 {
			return fmt.Errorf("caption %d starts at %v, must be below 1", i+1, captions[i].From)
		}
	}
	return nil
}

func validateSmoothing(field string, alpha float64) error {
	if alpha <= 0 || alpha > 1 {
		return fmt.Errorf("%s must be in (0, 1], got %v", field, alpha)
	}
	return nil
}
