// Package game 提供宿主层的场景管理与持久化
package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene 宿主场景
// 每个场景有自己的更新与绘制逻辑
type Scene interface {
	// Update 每个逻辑 tick 调用一次，deltaTime 单位为秒
	Update(deltaTime float64)

	// Draw 绘制到 screen
	Draw(screen *ebiten.Image)
}

// Resizable 可选接口，窗口逻辑尺寸变化时被调用
// 对应浏览器的 resize 事件
type Resizable interface {
	Resize(width, height int)
}

// Saveable 可选接口，程序退出时保存状态
//
// 实现此接口的场景会在以下时机被调用 SaveOnExit()：
//   - 游戏窗口关闭
//   - 用户通过 OS 命令关闭程序
type Saveable interface {
	// SaveOnExit 返回 false 表示保存失败（程序仍会正常退出）
	SaveOnExit() bool
}
