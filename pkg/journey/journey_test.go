package journey

import (
	"testing"
)

// TestJourneyWiring 测试滚动 → 状态 → 字幕，以及循环单步驱动帧回调
func TestJourneyWiring(t *testing.T) {
	j, r := newTestJourney(t)

	j.Scroll(300, 1000)
	if j.State.Progress != 0.3 || !j.State.Driving {
		t.Errorf("state = %+v, 期望 progress 0.3 driving", *j.State)
	}
	if j.Board.Active() != Caption3 {
		t.Errorf("caption = %v, 期望 %v", j.Board.Active(), Caption3)
	}

	if j.Loop.Step() {
		t.Error("loop should not tick before Start")
	}
	j.Loop.Start()
	for i := 0; i < 3; i++ {
		j.Loop.Step()
	}
	if r.frames != 3 {
		t.Errorf("render calls = %d, 期望 3", r.frames)
	}

	j.Loop.Stop()
	j.Loop.Step()
	if r.frames != 3 {
		t.Errorf("render calls after Stop = %d, 期望 3", r.frames)
	}
}
