// journey-tui 终端预览：在字符终端里滚动同一段旅程
//
// 滚轮或方向键滚动，PageUp/PageDown/Space 翻页，Home/End 跳到首尾，q 或 Esc 退出。
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"io/fs"
	"log"
	"os"
	"os/signal"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/game"
	"github.com/gonewx/xmasdrive/pkg/journey"
	"github.com/gonewx/xmasdrive/pkg/render/term"
	"github.com/gonewx/xmasdrive/pkg/scene"
	"github.com/gonewx/xmasdrive/pkg/scenes"
)

// 终端中以字符行为滚动单位
const (
	wheelStepRows = 3
	arrowStepRows = 1
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging to stderr")
	configFlag  = flag.String("config", "", "Journey config file (default: data/journey.yaml, then built-in defaults)")
	freshFlag   = flag.Bool("fresh", false, "Ignore saved progress and start from the beginning")
)

// preview 终端预览的宿主状态，只在循环 goroutine 上访问
type preview struct {
	screen   tcell.Screen
	journey  *journey.Journey
	renderer *term.Renderer
	viewport *scenes.Viewport
	progress *game.ProgressStore
	scale    float64 // 滚动灵敏度
}

func main() {
	flag.Parse()
	if !*verboseFlag {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "journey-tui: %v\n", err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.JourneyConfig, error) {
	cfg, err := config.LoadJourneyConfig(path)
	if err != nil && path == "" && errors.Is(err, fs.ErrNotExist) {
		log.Printf("[TUI] %s not found, using built-in defaults", config.DefaultJourneyConfigPath)
		return config.DefaultJourneyConfig(), nil
	}
	return cfg, err
}

func run() error {
	cfg, err := loadConfig(*configFlag)
	if err != nil {
		return err
	}

	storage := game.OpenStorage(game.AppName)
	settings := game.NewSettingsManager(storage)
	progress := game.NewProgressStore(storage)
	if *freshFlag {
		if err := progress.Reset(); err != nil {
			log.Printf("[TUI] Warning: %v", err)
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()
	screen.EnableMouse()
	screen.HideCursor()

	j := journey.New(cfg, scene.Build(cfg), nil)
	r := term.New(screen, j.Board, j.State)
	j.Driver.SetRenderer(r)

	_, rows := screen.Size()
	p := &preview{
		screen:   screen,
		journey:  j,
		renderer: r,
		viewport: scenes.NewViewport(cfg.Pages, rows),
		progress: progress,
		scale:    settings.GetSettings().ScrollSensitivity,
	}
	j.Graph.Camera.SetAspect(r.Size())
	if resume := progress.Progress(); resume > 0 {
		p.viewport.ScrollToFraction(resume)
	}
	p.sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	events := make(chan func(), 64)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			if fn := p.handle(ev); fn != nil {
				select {
				case events <- fn:
				case <-ctx.Done():
					return
				}
			}
		}
	}()

	err = j.Loop.Run(ctx, time.Second/config.TicksPerSecond, events)

	progress.SetProgress(j.State.Progress)
	if saveErr := progress.Save(); saveErr != nil {
		log.Printf("[TUI] Warning: %v", saveErr)
	}
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// handle 将终端事件翻译为在循环 goroutine 上执行的回调
func (p *preview) handle(ev tcell.Event) func() {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		return func() {
			cols, rows := p.screen.Size()
			p.viewport.Resize(rows)
			p.renderer.Resize(cols, rows)
			p.journey.Graph.Camera.SetAspect(p.renderer.Size())
			p.screen.Sync()
			p.sync()
		}

	case *tcell.EventMouse:
		switch ev.Buttons() {
		case tcell.WheelDown:
			return p.scrollBy(wheelStepRows * p.scale)
		case tcell.WheelUp:
			return p.scrollBy(-wheelStepRows * p.scale)
		}

	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return p.journey.Loop.Stop
		case tcell.KeyDown:
			return p.scrollBy(arrowStepRows * p.scale)
		case tcell.KeyUp:
			return p.scrollBy(-arrowStepRows * p.scale)
		case tcell.KeyPgDn:
			return p.scrollPages(1)
		case tcell.KeyPgUp:
			return p.scrollPages(-1)
		case tcell.KeyHome:
			return p.scrollTo(0)
		case tcell.KeyEnd:
			return func() {
				p.viewport.ScrollTo(p.viewport.MaxOffset())
				p.sync()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return p.journey.Loop.Stop
			case ' ':
				return p.scrollPages(1)
			case 'j':
				return p.scrollBy(arrowStepRows * p.scale)
			case 'k':
				return p.scrollBy(-arrowStepRows * p.scale)
			}
		}
	}
	return nil
}

func (p *preview) scrollBy(delta float64) func() {
	return func() {
		if p.viewport.ScrollBy(delta) {
			p.sync()
		}
	}
}

// scrollPages 翻页，页高在循环 goroutine 上读取
func (p *preview) scrollPages(n float64) func() {
	return func() {
		if p.viewport.ScrollBy(n * p.viewport.ClientHeight() * config.PageStepRatio) {
			p.sync()
		}
	}
}

func (p *preview) scrollTo(offset float64) func() {
	return func() {
		if p.viewport.ScrollTo(offset) {
			p.sync()
		}
	}
}

// sync 把视口偏移交给滚动映射器
func (p *preview) sync() {
	p.journey.Scroll(p.viewport.Offset(), p.viewport.MaxOffset())
}
