package journey

import (
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
)

// Journey 旅程应用状态
// 把共享状态、字幕面板、滚动映射器、动画驱动器和帧循环组装在一起，
// 宿主只需要转发滚动事件并驱动循环。
type Journey struct {
	Config *config.JourneyConfig
	State  *State
	Graph  *scene.Graph
	Board  *CaptionBoard
	Mapper *ScrollMapper
	Driver *Driver
	Loop   *Loop
}

// New 组装旅程
// graph 由 scene.Build 构建；renderer 可为 nil
func New(cfg *config.JourneyConfig, graph *scene.Graph, renderer Renderer) *Journey {
	state := &State{}
	board := NewCaptionBoard(cfg.Captions)
	mapper := NewScrollMapper(state, cfg.Driving, NewNarrativeSelector(cfg.Captions), board)
	driver := NewDriver(cfg, state, graph, renderer)

	return &Journey{
		Config: cfg,
		State:  state,
		Graph:  graph,
		Board:  board,
		Mapper: mapper,
		Driver: driver,
		Loop:   NewLoop(driver.Tick),
	}
}

// Scroll 处理滚动事件
func (j *Journey) Scroll(offset, maxOffset float64) {
	j.Mapper.Update(offset, maxOffset)
}
