package journey

import (
	"log"
	"time"

	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/utils"
)

// Renderer 绘制当前场景图
// 渲染失败属于渲染子系统的问题，核心不处理错误
type Renderer interface {
	Render(g *scene.Graph)
}

// Driver 每帧动画驱动器
type Driver struct {
	cfg      *config.JourneyConfig
	state    *State
	graph    *scene.Graph
	renderer Renderer

	snow       *Snowfall
	characters []*characterAnimator

	frames uint64
}

// NewDriver 创建动画驱动器
//
// 参数：
//   - cfg: 旅程配置
//   - state: 由 ScrollMapper 写入的共享状态
//   - graph: 启动时构建的场景图
//   - renderer: 渲染器，可为 nil（只推进状态，不绘制）
func NewDriver(cfg *config.JourneyConfig, state *State, graph *scene.Graph, renderer Renderer) *Driver {
	d := &Driver{
		cfg:      cfg,
		state:    state,
		graph:    graph,
		renderer: renderer,
		snow:     NewSnowfall(graph.Snow, cfg.Snow),
	}

	for _, cc := range cfg.Characters {
		node := graph.Character(cc.Name)
		if node == nil {
			log.Printf("[Driver] Warning: character %q has no scene node, skipped", cc.Name)
			continue
		}
		d.characters = append(d.characters, &characterAnimator{node: node, cfg: cc})
	}
	return d
}

// SetRenderer 替换渲染器
// 宿主的渲染器通常依赖 Journey 创建的字幕板，只能在组装之后设置
func (d *Driver) SetRenderer(r Renderer) {
	d.renderer = r
}

// Tick 推进一帧
//
// 顺序固定：后面的步骤读取前面步骤刚算出的车辆和镜头位置。
// elapsed 为循环启动以来的时间，只影响角色摆动。
func (d *Driver) Tick(elapsed time.Duration) {
	p := d.state.Progress

	d.updateCar(p)
	d.updateCamera(p)
	d.updateWheels()
	d.snow.Update(d.graph.Camera.Position.Z)
	d.updateCharacters(p, elapsed)
	d.updateFinale(p)

	if d.renderer != nil {
		d.renderer.Render(d.graph)
	}
	d.frames++
}

// updateCar 车辆沿 Z 轴向插值目标平滑移动
func (d *Driver) updateCar(p float64) {
	car := d.graph.Car
	targetZ := utils.Lerp(d.cfg.Car.Start.Z, d.cfg.Car.End.Z, p)
	car.Position.Z = utils.Approach(car.Position.Z, targetZ, d.cfg.Car.Smoothing)
}

// updateCamera 跟随或终章视角，平滑后注视车辆
func (d *Driver) updateCamera(p float64) {
	cam := d.graph.Camera
	car := d.graph.Car.Position

	offset := d.cfg.Camera.FollowOffset
	if p >= d.cfg.Camera.FinaleThreshold {
		offset = d.cfg.Camera.FinaleOffset
	}
	cam.Position = cam.Position.Approach(car.Add(offset), d.cfg.Camera.Smoothing)
	cam.LookAt(car)
}

// updateWheels 行驶时转动车轮，否则保持当前角度
func (d *Driver) updateWheels() {
	if !d.state.Driving {
		return
	}
	for _, w := range d.graph.Wheels {
		w.Rotation.X -= d.cfg.Car.WheelStep
	}
}

func (d *Driver) updateCharacters(p float64, elapsed time.Duration) {
	wave := float64(elapsed.Microseconds()) / 1000 * d.cfg.WaveRate
	for _, c := range d.characters {
		c.update(p, wave)
	}
}

// updateFinale 终章星星：可见时旋转，隐藏时旋转角保持不变
func (d *Driver) updateFinale(p float64) {
	star := d.graph.FinaleStar
	if p > d.cfg.Finale.Threshold {
		star.Visible = true
		star.Rotation.Y += d.cfg.Finale.SpinStep
	} else {
		star.Visible = false
	}
}

// Frames 返回已执行的帧数
func (d *Driver) Frames() uint64 {
	return d.frames
}

// Pose 返回角色当前相对中性姿态的偏移
func (d *Driver) Pose(name string) (CharacterPose, bool) {
	for _, c := range d.characters {
		if c.cfg.Name == name {
			return c.pose, true
		}
	}
	return CharacterPose{}, false
}

// Graph 返回驱动的场景图
func (d *Driver) Graph() *scene.Graph {
	return d.graph
}
