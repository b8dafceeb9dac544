package config

// 布局配置常量
// 本文件定义窗口尺寸、滚动输入步长等与宿主环境相关的参数

// Window Configuration (窗口配置)
const (
	// GameWindowWidth 默认窗口宽度（像素）
	GameWindowWidth = 1280

	// GameWindowHeight 默认窗口高度（像素）
	GameWindowHeight = 720

	// TicksPerSecond 每秒逻辑帧数（与显示刷新率一致）
	TicksPerSecond = 60
)

// Scroll Input Configuration (滚动输入配置)
// 滚动量以"文档像素"为单位，与浏览器页面滚动等价
const (
	// WheelStepPixels 鼠标滚轮每格滚动的像素数
	WheelStepPixels = 100.0

	// ArrowStepPixels 方向键每次滚动的像素数
	ArrowStepPixels = 40.0

	// PageStepRatio PageUp/PageDown/Space 每次滚动的视口高度比例
	PageStepRatio = 0.9
)

// Caption Overlay Layout (字幕层布局)
const (
	// CaptionFontSize 字幕字号
	CaptionFontSize = 28.0

	// CaptionMarginBottom 字幕距窗口底部的距离
	CaptionMarginBottom = 80.0

	// CaptionMaxWidthRatio 字幕最大宽度占窗口宽度的比例
	CaptionMaxWidthRatio = 0.7
)
