package journey

import (
	"context"
	"time"
)

// Loop 可取消的重复帧任务
//
// 宿主（Ebitengine 的 Update 或终端预览的 ticker）每帧调用 Step；
// Stop 之后 Step 不再执行回调，Start 可以恢复。
// 测试可以逐帧调用 Step，不依赖真实时钟。
type Loop struct {
	tick    func(elapsed time.Duration)
	now     func() time.Time
	origin  time.Time
	started bool
	running bool
}

// NewLoop 创建帧循环，初始为停止状态
func NewLoop(tick func(elapsed time.Duration)) *Loop {
	return &Loop{tick: tick, now: time.Now}
}

// SetClock 替换时钟（测试用）
func (l *Loop) SetClock(now func() time.Time) {
	l.now = now
}

// Start 开始或恢复循环
// 首次启动时记录时间原点，之后的暂停不会重置它
func (l *Loop) Start() {
	if !l.started {
		l.origin = l.now()
		l.started = true
	}
	l.running = true
}

// Stop 停止循环，不再调度下一帧
func (l *Loop) Stop() {
	l.running = false
}

// Running 返回循环是否在运行
func (l *Loop) Running() bool {
	return l.running
}

// Elapsed 返回自首次启动以来的时间
func (l *Loop) Elapsed() time.Duration {
	if !l.started {
		return 0
	}
	return l.now().Sub(l.origin)
}

// Step 执行一帧
// 循环停止时不执行，返回 false
func (l *Loop) Step() bool {
	if !l.running {
		return false
	}
	l.tick(l.Elapsed())
	return true
}

// Run 在当前 goroutine 上以固定间隔运行循环
//
// events 中的回调（滚动、窗口尺寸变化等宿主事件）在帧之间执行，
// 与帧回调从不交错。events 可为 nil。
//
// 返回：
//   - ctx 取消时返回 ctx.Err()
//   - 循环被 Stop 时返回 nil
func (l *Loop) Run(ctx context.Context, interval time.Duration, events <-chan func()) error {
	l.Start()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			l.Stop()
			return ctx.Err()
		case fn, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			fn()
			if !l.running {
				return nil
			}
		case <-ticker.C:
			if !l.Step() {
				return nil
			}
		}
	}
}
