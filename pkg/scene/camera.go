package scene

import (
	"math"

	"github.com/gonewx/xmasdrive/pkg/utils"
)

// worldUp 世界坐标系的向上方向
var worldUp = utils.V3(0, 1, 0)

// Camera 透视相机
type Camera struct {
	Position utils.Vec3
	Target   utils.Vec3 // 注视点
	FOV      float64    // 垂直视角（度）
	Aspect   float64
	Near     float64
	Far      float64
}

// LookAt 设置注视点
func (c *Camera) LookAt(target utils.Vec3) {
	c.Target = target
}

// SetAspect 根据视口尺寸更新宽高比
// 高度为 0 时保持原值
func (c *Camera) SetAspect(width, height int) {
	if height <= 0 || width <= 0 {
		return
	}
	c.Aspect = float64(width) / float64(height)
}

// Basis 返回相机坐标系的 right、up、forward 单位向量
func (c *Camera) Basis() (right, up, forward utils.Vec3) {
	forward = c.Target.Sub(c.Position).Normalize()
	if forward == (utils.Vec3{}) {
		forward = utils.V3(0, 0, -1)
	}
	right = forward.Cross(worldUp)
	if right.Len() < 1e-9 {
		// 垂直向上/向下看时 worldUp 与视线平行
		right = utils.V3(1, 0, 0)
	}
	right = right.Normalize()
	up = right.Cross(forward)
	return right, up, forward
}

// Project 将世界坐标投影到 width×height 的屏幕
//
// 返回：
//   - sx, sy: 屏幕坐标（左上角为原点）
//   - depth: 沿视线方向的距离
//   - ok: 点位于近远裁剪面之间且屏幕尺寸有效时为 true
func (c *Camera) Project(p utils.Vec3, width, height int) (sx, sy, depth float64, ok bool) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, false
	}
	right, up, forward := c.Basis()
	d := p.Sub(c.Position)
	depth = d.Dot(forward)
	if depth < c.Near || depth > c.Far {
		return 0, 0, depth, false
	}

	f := 1 / math.Tan(c.FOV*math.Pi/360)
	aspect := c.Aspect
	if aspect <= 0 {
		aspect = float64(width) / float64(height)
	}
	ndcX := d.Dot(right) * f / (aspect * depth)
	ndcY := d.Dot(up) * f / depth

	sx = (ndcX + 1) / 2 * float64(width)
	sy = (1 - ndcY) / 2 * float64(height)
	return sx, sy, depth, true
}
