package journey

import (
	"github.com/gonewx/xmasdrive/pkg/config"
	"github.com/gonewx/xmasdrive/pkg/scene"
)

// CharacterPose 角色相对中性姿态的偏移
type CharacterPose struct {
	Bob    float64 // 上下偏移
	Wobble float64 // 绕 Y 轴的摇摆
}

// characterAnimator 路点角色动画
// 进度位于可见窗口内时随时间摆动；窗口外立即回到中性姿态（不缓出）
type characterAnimator struct {
	node *scene.Node
	cfg  config.CharacterConfig
	pose CharacterPose
}

func (c *characterAnimator) update(progress, wave float64) {
	if c.cfg.Window.Contains(progress) {
		c.pose = CharacterPose{
			Bob:    c.cfg.Bob.Eval(wave),
			Wobble: c.cfg.Wobble.Eval(wave),
		}
	} else {
		c.pose = CharacterPose{}
	}

	c.node.Position.Y = c.cfg.Position.Y + c.pose.Bob
	c.node.Rotation.Y = c.cfg.RotationY + c.pose.Wobble
}
