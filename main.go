package main

import (
	"flag"
	"log"

	"github.com/gonewx/xmasdrive/pkg/app"
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

var (
	verboseFlag = flag.Bool("verbose", false, "Enable verbose logging (default off)")
	configFlag  = flag.String("config", "", "Journey config file (default: embedded data/journey.yaml)")
	freshFlag   = flag.Bool("fresh", false, "Ignore saved progress and start from the beginning")
	hudFlag     = flag.Bool("hud", false, "Show debug HUD on start")
)

func main() {
	flag.Parse()

	// dataFS 在 embed.go 中声明
	embedded.Init(dataFS)

	gameApp, err := app.NewApp(app.Config{
		Verbose:    *verboseFlag,
		ConfigPath: *configFlag,
		Fresh:      *freshFlag,
		HUD:        *hudFlag,
	})
	if err != nil {
		log.Fatalf("初始化失败: %v", err)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle("Driving Home for Christmas")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	runErr := ebiten.RunGame(gameApp)

	// 窗口关闭后保存进度与设置
	if !gameApp.SaveOnExit() {
		log.Printf("[Main] Warning: failed to save on exit")
	}
	if runErr != nil {
		log.Fatal(runErr)
	}
}
