package scene

import (
	"math/rand/v2"

	"github.com/gonewx/xmasdrive/pkg/utils"
)

// PointField 点云（雪花、背景星空）
// 点坐标相对 Node 的位置；点数量在构建后固定不变
type PointField struct {
	Node    *Node
	Points  []utils.Vec3
	Color   uint32
	Size    float64
	Opacity float64
}

// NewPointField 创建点云节点
func NewPointField(name string, points []utils.Vec3, color uint32, size, opacity float64) *PointField {
	return &PointField{
		Node:    NewNode(name),
		Points:  points,
		Color:   color,
		Size:    size,
		Opacity: opacity,
	}
}

// WorldPoint 返回第 i 个点的世界坐标
func (f *PointField) WorldPoint(i int) utils.Vec3 {
	return f.Node.LocalToWorld(f.Points[i])
}

// randFloat 返回 [lo, hi) 内的均匀随机数
func randFloat(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}

// randSpread 返回 [-spread/2, spread/2) 内的均匀随机数
func randSpread(rng *rand.Rand, spread float64) float64 {
	return randFloat(rng, -spread/2, spread/2)
}

// scatterSnow 生成雪花初始位置：X/Z 均匀分布在 spread 范围，Y ∈ [0, maxHeight)
func scatterSnow(rng *rand.Rand, count int, spread, maxHeight float64) []utils.Vec3 {
	points := make([]utils.Vec3, count)
	for i := range points {
		points[i] = utils.V3(
			randSpread(rng, spread),
			randFloat(rng, 0, maxHeight),
			randSpread(rng, spread),
		)
	}
	return points
}

// scatterStars 生成星空：三个方向均匀分布
func scatterStars(rng *rand.Rand, count int, spread float64) []utils.Vec3 {
	points := make([]utils.Vec3, count)
	for i := range points {
		points[i] = utils.V3(
			randSpread(rng, spread),
			randSpread(rng, spread),
			randSpread(rng, spread),
		)
	}
	return points
}
