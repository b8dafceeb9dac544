package scene

import (
	"log"
	"math"
	"math/rand/v2"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

// 场景节点名称
const (
	NodeCar        = "car"
	NodeRoad       = "road"
	NodeRoadLine   = "roadLine"
	NodeSign       = "sign"
	NodeSnacks     = "snacks"
	NodeMountains  = "mountains"
	NodeHome       = "home"
	NodeFinaleStar = "christmasStar"
	NodeSnow       = "snow"
	NodeStars      = "stars"
)

// Light 光源（只作为渲染器的着色参数）
type Light struct {
	Color     uint32
	Intensity float64
	Position  utils.Vec3 // 平行光方向来源；环境光忽略
}

// Graph 旅程场景图
// 所有字段在 Build 之后固定，动画期间不增删节点
type Graph struct {
	Root *Node

	Car      *Node
	Wheels   [4]*Node
	Road     *Node
	RoadLine *Node

	Sign      *Node
	Snacks    *Node
	Mountains *Node
	Home      *Node

	// Characters 按配置顺序排列的角色节点
	Characters []*Node

	FinaleStar *Node
	Snow       *PointField
	Stars      *PointField

	Camera  *Camera
	Ambient Light
	Sun     Light
	Fog     config.FogConfig
}

// Character 按名称查找角色节点
func (g *Graph) Character(name string) *Node {
	for _, c := range g.Characters {
		if c.Name == name {
			return c
		}
	}
	return nil
}

// Build 根据配置构建完整场景图
// 同一配置（含 Seed）总是产生相同的场景
func Build(cfg *config.JourneyConfig) *Graph {
	rng := rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0x9e3779b97f4a7c15))

	g := &Graph{
		Root: NewNode("root"),
		Camera: &Camera{
			Position: cfg.Camera.Initial,
			Target:   cfg.Camera.InitialLookAt,
			FOV:      cfg.Camera.FOV,
			Aspect:   float64(config.GameWindowWidth) / float64(config.GameWindowHeight),
			Near:     cfg.Camera.Near,
			Far:      cfg.Camera.Far,
		},
		Ambient: Light{Color: 0x404040, Intensity: 2},
		Sun:     Light{Color: 0xffffff, Intensity: 3, Position: utils.V3(10, 20, 5)},
		Fog:     cfg.Fog,
	}

	buildCar(g, cfg)
	buildRoad(g, cfg)
	buildWaypoints(g, cfg, rng)
	buildCharacters(g, cfg)
	buildFinaleStar(g, cfg)

	snowPoints := scatterSnow(rng, cfg.Snow.Count, cfg.Snow.Spread, cfg.Snow.Spread)
	g.Snow = NewPointField(NodeSnow, snowPoints, 0xffffff, cfg.Snow.Size, cfg.Snow.Opacity)
	g.Snow.Node.Position.Z = -cfg.Snow.DepthOffset

	g.Stars = NewPointField(NodeStars, scatterStars(rng, cfg.Stars.Count, cfg.Stars.Spread), 0xffffff, 0.1, 1)
	g.Stars.Node.Position.Z = cfg.Stars.Depth

	g.Root.Add(g.Car, g.Road, g.RoadLine, g.Sign, g.Snacks, g.Mountains, g.Home)
	g.Root.Add(g.Characters...)
	g.Root.Add(g.FinaleStar, g.Snow.Node, g.Stars.Node)

	log.Printf("[Scene] Built journey scene: %d snow points, %d stars, %d characters",
		len(g.Snow.Points), len(g.Stars.Points), len(g.Characters))
	return g
}

// buildCar 车身、驾驶舱、车灯和四个车轮
func buildCar(g *Graph, cfg *config.JourneyConfig) {
	car := NewNode(NodeCar)
	car.Position = cfg.Car.Start
	car.Boxes = []Box{
		{Size: utils.V3(2, 0.8, 3.5), Color: 0xef4444},
		{Center: utils.V3(0, 0.75, -0.2), Size: utils.V3(1.6, 0.7, 1.5), Color: 0x222222},
		// 车头灯
		{Center: utils.V3(0.7, 0.2, -1.75), Size: utils.V3(0.2, 0.2, 0.1), Color: 0xffffee, Emissive: true},
		{Center: utils.V3(-0.7, 0.2, -1.75), Size: utils.V3(0.2, 0.2, 0.1), Color: 0xffffee, Emissive: true},
		// 刹车灯
		{Center: utils.V3(0.7, 0.2, 1.75), Size: utils.V3(0.2, 0.2, 0.1), Color: 0xff0000, Emissive: true},
		{Center: utils.V3(-0.7, 0.2, 1.75), Size: utils.V3(0.2, 0.2, 0.1), Color: 0xff0000, Emissive: true},
	}

	wheelPositions := [4]utils.Vec3{
		utils.V3(1.1, -0.1, 1),
		utils.V3(-1.1, -0.1, 1),
		utils.V3(1.1, -0.1, -1),
		utils.V3(-1.1, -0.1, -1),
	}
	wheelNames := [4]string{"wheelFL", "wheelFR", "wheelRL", "wheelRR"}
	for i, pos := range wheelPositions {
		w := NewNode(wheelNames[i])
		w.Position = pos
		// 车轮轴沿 X 方向，绕 X 轴旋转即滚动
		w.Boxes = []Box{{Size: utils.V3(0.2, 0.6, 0.6), Color: 0x111111}}
		g.Wheels[i] = w
		car.Add(w)
	}
	g.Car = car
}

// buildRoad 路面和中心虚线
func buildRoad(g *Graph, cfg *config.JourneyConfig) {
	road := NewNode(NodeRoad)
	road.Position.Z = -cfg.Length/2 + 10
	road.Boxes = []Box{{Size: utils.V3(8, 0.01, cfg.Length+20), Color: 0x222228}}
	g.Road = road

	line := NewNode(NodeRoadLine)
	const dash = 0.5
	for z := 10.0; z > -cfg.Length-10; z -= 2 * dash {
		line.Segments = append(line.Segments, Segment{
			A:     utils.V3(0, 0.01, z),
			B:     utils.V3(0, 0.01, z-dash),
			Color: 0xaaaaaa,
		})
	}
	g.RoadLine = line
}

// buildWaypoints 招牌、小吃摊、山峰和家
func buildWaypoints(g *Graph, cfg *config.JourneyConfig, rng *rand.Rand) {
	sign := NewNode(NodeSign)
	sign.Position = utils.V3(5, 0, -5)
	sign.Boxes = []Box{
		{Center: utils.V3(0, 2, 0), Size: utils.V3(0.2, 4, 0.2), Color: 0x555555},
		{Center: utils.V3(0, 2.5, 0), Size: utils.V3(2, 1, 0.2), Color: 0x333333},
		{Center: utils.V3(0, 2.5, 0.11), Size: utils.V3(1.5, 0.8, 0.1), Color: 0xfde047, Emissive: true},
	}
	g.Sign = sign

	snacks := NewNode(NodeSnacks)
	snacks.Position = utils.V3(-5, 0.5, -30)
	snacks.Boxes = []Box{
		{Center: utils.V3(0, 0.3, 0), Size: utils.V3(1, 0.2, 1), Color: 0x966919},
		{Size: utils.V3(1, 0.2, 1), Color: 0x966919},
	}
	for i := 0; i < 10; i++ {
		snacks.Boxes = append(snacks.Boxes, Box{
			Center: utils.V3(
				randFloat(rng, -0.2, 0.2),
				randFloat(rng, 0, 0.25)+0.25,
				randFloat(rng, -0.2, 0.2),
			),
			Size:  utils.V3(0.1, 0.5, 0.1),
			Color: 0xfde047,
		})
	}
	g.Snacks = snacks

	mountains := NewNode(NodeMountains)
	helvellyn := NewNode("helvellyn")
	helvellyn.Position = utils.V3(-10, 7.5, -60)
	helvellyn.Segments = ConeSegments(8, 15, 6, 0x228b22)
	langdale := NewNode("langdale")
	langdale.Position = utils.V3(12, 6, -65)
	langdale.Scale = 0.8
	langdale.Segments = ConeSegments(8, 15, 6, 0x228b22)

	helvellynLabel := NewNode("helvellynLabel")
	helvellynLabel.Position = utils.V3(-10, 15, -60)
	helvellynLabel.Label = "HELVELLYN"
	langdaleLabel := NewNode("langdaleLabel")
	langdaleLabel.Position = utils.V3(12, 10, -65)
	langdaleLabel.Label = "LANGDALE"
	mountains.Add(helvellyn, langdale, helvellynLabel, langdaleLabel)
	g.Mountains = mountains

	home := NewNode(NodeHome)
	home.Position = utils.V3(0, 0, -cfg.Length)
	home.Boxes = []Box{{Center: utils.V3(0, 1, 0), Size: utils.V3(2, 2, 2), Color: 0xaaaaaa}}
	roof := NewNode("roof")
	roof.Position.Y = 2.5
	roof.Rotation.Y = math.Pi / 4
	roof.Segments = ConeSegments(1.7, 1, 4, 0x800000)
	home.Add(roof)
	g.Home = home
}

// buildCharacters 方块小人：头 + 身体
func buildCharacters(g *Graph, cfg *config.JourneyConfig) {
	g.Characters = make([]*Node, 0, len(cfg.Characters))
	for _, c := range cfg.Characters {
		n := NewNode(c.Name)
		n.Position = c.Position
		n.Rotation.Y = c.RotationY
		n.Boxes = []Box{
			{Center: utils.V3(0, 1.25, 0), Size: utils.V3(0.5, 0.5, 0.5), Color: c.Color},
			{Center: utils.V3(0, 0.5, 0), Size: utils.V3(0.6, 1, 0.4), Color: c.Color},
		}
		g.Characters = append(g.Characters, n)
	}
}

// starOutline 五角星轮廓（局部 XY 平面）
var starOutline = []utils.Vec3{
	{X: 0, Y: 1}, {X: 0.2, Y: 0.2}, {X: 1, Y: 0.2}, {X: 0.4, Y: -0.2}, {X: 0.6, Y: -1},
	{X: 0, Y: -0.6}, {X: -0.6, Y: -1}, {X: -0.4, Y: -0.2}, {X: -1, Y: 0.2}, {X: -0.2, Y: 0.2},
}

// buildFinaleStar 终章星星，初始隐藏
func buildFinaleStar(g *Graph, cfg *config.JourneyConfig) {
	star := NewNode(NodeFinaleStar)
	star.Position = cfg.Finale.Position
	star.Scale = cfg.Finale.Scale
	star.Rotation.Y = cfg.Finale.RotationY
	star.Visible = false

	// 挤出深度 0.2：前后两层轮廓加连接棱
	front := make([]utils.Vec3, len(starOutline))
	back := make([]utils.Vec3, len(starOutline))
	for i, p := range starOutline {
		front[i] = utils.V3(p.X, p.Y, 0.1)
		back[i] = utils.V3(p.X, p.Y, -0.1)
	}
	star.Segments = append(Polyline(front, true, 0xfde047, true), Polyline(back, true, 0xfde047, true)...)
	for i := range front {
		star.Segments = append(star.Segments, Segment{A: front[i], B: back[i], Color: 0xfde047, Emissive: true})
	}
	g.FinaleStar = star
}
