package agent

import (
	"github.com/decker502/agent/pkg/render"
)

// fakeSurface 记录型渲染面，用于驱动逻辑层测试
type fakeSurface struct {
	attached bool

	states    []render.VisualState
	positions [][2]float64

	speechText    string
	speechAlpha   float64
	speechVisible bool
	clearCount    int

	// onApply 可选钩子，在每次 ApplyVisualState 时调用
	onApply func(render.VisualState)
}

func (s *fakeSurface) Attach() {
	s.attached = true
}

func (s *fakeSurface) Detach() {
	s.attached = false
}

func (s *fakeSurface) ApplyVisualState(state render.VisualState) {
	s.states = append(s.states, state)
	if s.onApply != nil {
		s.onApply(state)
	}
}

func (s *fakeSurface) SetPosition(x, y float64) {
	s.positions = append(s.positions, [2]float64{x, y})
}

func (s *fakeSurface) ShowSpeech(text string, alpha float64) {
	s.speechText = text
	s.speechAlpha = alpha
	s.speechVisible = true
}

func (s *fakeSurface) ClearSpeech() {
	s.speechVisible = false
	s.speechText = ""
	s.speechAlpha = 0
	s.clearCount++
}

// lastState 返回最后提交的可渲染状态
func (s *fakeSurface) lastState() render.VisualState {
	if len(s.states) == 0 {
		return render.VisualState{}
	}
	return s.states[len(s.states)-1]
}

// lastPosition 返回最后提交的渲染位置
func (s *fakeSurface) lastPosition() (float64, float64) {
	if len(s.positions) == 0 {
		return 0, 0
	}
	p := s.positions[len(s.positions)-1]
	return p[0], p[1]
}
