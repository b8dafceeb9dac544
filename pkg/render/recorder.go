package render

import (
	"github.com/gonewx/xmasdrive/pkg/scene"
)

// Recorder 将每次渲染投影为 Frame 并保留最后一帧
// 用于无窗口环境（测试、基准）
type Recorder struct {
	projector *Projector
	frame     *Frame
	frames    int
}

// NewRecorder 创建指定尺寸的记录渲染器
func NewRecorder(width, height int) *Recorder {
	return &Recorder{projector: NewProjector(width, height)}
}

// Render 实现 journey.Renderer
func (r *Recorder) Render(g *scene.Graph) {
	r.frame = r.projector.Project(g, r.frame)
	r.frames++
}

// Resize 更新输出尺寸
func (r *Recorder) Resize(width, height int) {
	r.projector.Resize(width, height)
}

// Frames 返回渲染次数
func (r *Recorder) Frames() int {
	return r.frames
}

// Last 返回最后一帧，从未渲染时为 nil
func (r *Recorder) Last() *Frame {
	return r.frame
}
