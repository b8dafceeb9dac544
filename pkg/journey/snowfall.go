package journey

import (
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
)

// Snowfall 雪花下落与循环
type Snowfall struct {
	field *scene.PointField
	cfg   config.SnowConfig
}

// NewSnowfall 创建雪花动画
func NewSnowfall(field *scene.PointField, cfg config.SnowConfig) *Snowfall {
	return &Snowfall{field: field, cfg: cfg}
}

// Update 推进一帧
//
// 每个点先下落 FallRate，低于 Floor 时立即回到 Ceiling。
// 点数量不变；整个雪场的 Z 中心跟随镜头深度。
func (s *Snowfall) Update(cameraZ float64) {
	points := s.field.Points
	for i := range points {
		points[i].Y -= s.cfg.FallRate
		if points[i].Y < s.cfg.Floor {
			points[i].Y = s.cfg.Ceiling
		}
	}
	s.field.Node.Position.Z = cameraZ - s.cfg.DepthOffset
}
