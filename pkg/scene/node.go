// Package scene 定义旅程场景图
//
// 场景图在启动时一次性构建（见 Build），之后只有 journey 包的动画驱动器
// 修改节点的位置、旋转和可见性。渲染器只读场景图。
package scene

import (
	"math"

	"github.com/gonewx/xmasdrive/pkg/utils"
)

// Box 节点局部坐标系下的长方体网格
type Box struct {
	Center   utils.Vec3
	Size     utils.Vec3
	Color    uint32
	Emissive bool // 自发光材质不受雾影响衰减
}

// Corners 返回长方体的 8 个顶点（局部坐标）
// 顶点顺序与 BoxEdges 对应
func (b Box) Corners() [8]utils.Vec3 {
	hx, hy, hz := b.Size.X/2, b.Size.Y/2, b.Size.Z/2
	c := b.Center
	return [8]utils.Vec3{
		{X: c.X - hx, Y: c.Y - hy, Z: c.Z - hz},
		{X: c.X + hx, Y: c.Y - hy, Z: c.Z - hz},
		{X: c.X + hx, Y: c.Y + hy, Z: c.Z - hz},
		{X: c.X - hx, Y: c.Y + hy, Z: c.Z - hz},
		{X: c.X - hx, Y: c.Y - hy, Z: c.Z + hz},
		{X: c.X + hx, Y: c.Y - hy, Z: c.Z + hz},
		{X: c.X + hx, Y: c.Y + hy, Z: c.Z + hz},
		{X: c.X - hx, Y: c.Y + hy, Z: c.Z + hz},
	}
}

// BoxEdges 长方体 12 条棱的顶点索引
var BoxEdges = [12][2]int{
	{0, 1}, {1, 2}, {2, 3}, {3, 0},
	{4, 5}, {5, 6}, {6, 7}, {7, 4},
	{0, 4}, {1, 5}, {2, 6}, {3, 7},
}

// Segment 局部坐标系下的线段
type Segment struct {
	A, B     utils.Vec3
	Color    uint32
	Emissive bool
}

// Polyline 将折线转换为线段，closed 为 true 时首尾相连
func Polyline(points []utils.Vec3, closed bool, color uint32, emissive bool) []Segment {
	if len(points) < 2 {
		return nil
	}
	segs := make([]Segment, 0, len(points))
	for i := 0; i+1 < len(points); i++ {
		segs = append(segs, Segment{A: points[i], B: points[i+1], Color: color, Emissive: emissive})
	}
	if closed && len(points) > 2 {
		segs = append(segs, Segment{A: points[len(points)-1], B: points[0], Color: color, Emissive: emissive})
	}
	return segs
}

// ConeSegments 以局部原点为中心的圆锥线框（底面在 -height/2，顶点在 +height/2）
func ConeSegments(radius, height float64, sides int, color uint32) []Segment {
	apex := utils.V3(0, height/2, 0)
	base := make([]utils.Vec3, sides)
	for i := range base {
		base[i] = utils.V3(radius, -height/2, 0).RotateY(2 * math.Pi * float64(i) / float64(sides))
	}
	segs := Polyline(base, true, color, false)
	for _, p := range base {
		segs = append(segs, Segment{A: p, B: apex, Color: color})
	}
	return segs
}

// Node 场景图节点
//
// 变换顺序：缩放 → 绕 Z → 绕 Y → 绕 X 旋转 → 平移，再应用父节点变换。
type Node struct {
	Name     string
	Position utils.Vec3
	Rotation utils.Vec3 // 欧拉角（弧度）
	Scale    float64
	Visible  bool

	Boxes    []Box
	Segments []Segment // 线框几何（道路中线、圆锥、星形轮廓）
	Label    string    // 悬浮文字标签

	Children []*Node
	parent   *Node
}

// NewNode 创建可见、缩放为 1 的节点
func NewNode(name string) *Node {
	return &Node{Name: name, Scale: 1, Visible: true}
}

// Add 添加子节点
func (n *Node) Add(children ...*Node) {
	for _, c := range children {
		c.parent = n
		n.Children = append(n.Children, c)
	}
}

// Parent 返回父节点，根节点返回 nil
func (n *Node) Parent() *Node {
	return n.parent
}

// LocalToWorld 将节点局部坐标转换为世界坐标
func (n *Node) LocalToWorld(p utils.Vec3) utils.Vec3 {
	for node := n; node != nil; node = node.parent {
		p = p.Scale(node.Scale).
			RotateZ(node.Rotation.Z).
			RotateY(node.Rotation.Y).
			RotateX(node.Rotation.X).
			Add(node.Position)
	}
	return p
}

// WorldPosition 返回节点原点的世界坐标
func (n *Node) WorldPosition() utils.Vec3 {
	return n.LocalToWorld(utils.Vec3{})
}

// IsVisible 节点及其所有祖先都可见时返回 true
func (n *Node) IsVisible() bool {
	for node := n; node != nil; node = node.parent {
		if !node.Visible {
			return false
		}
	}
	return true
}

// Walk 深度优先遍历子树（含自身）
// fn 返回 false 时跳过该节点的子节点
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find 在子树中按名称查找节点
func (n *Node) Find(name string) *Node {
	var found *Node
	n.Walk(func(node *Node) bool {
		if found != nil {
			return false
		}
		if node.Name == name {
			found = node
			return false
		}
		return true
	})
	return found
}
