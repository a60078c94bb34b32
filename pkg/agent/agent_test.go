package agent

import (
	"testing"

	"github.com/decker502/agent/pkg/atlas"
	"github.com/decker502/agent/pkg/catalog"
)

// newTestAgent 用代码构建的目录直接组装 Agent（跳过真实图集装载）
func newTestAgent(t *testing.T) (*Agent, *fakeSurface) {
	t.Helper()
	surface := &fakeSurface{}
	handle := &atlas.Handle{
		Width:   512,
		Height:  512,
		Catalog: newTestCatalog(t),
	}
	a, err := New(handle, surface, 10, 20)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return a, surface
}

// TestNewRequiresHandle 测试两阶段构造：缺少装载句柄时无法构建
func TestNewRequiresHandle(t *testing.T) {
	if _, err := New(nil, &fakeSurface{}, 0, 0); err == nil {
		t.Error("New(nil handle) should fail")
	}
	if _, err := New(&atlas.Handle{}, &fakeSurface{}, 0, 0); err == nil {
		t.Error("New with no catalog should fail")
	}
}

// TestShowAttachesAndPlaysIdle 测试 Show 挂接渲染面并立即播放 Idle
func TestShowAttachesAndPlaysIdle(t *testing.T) {
	a, surface := newTestAgent(t)

	if err := a.Show(); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	if !surface.attached {
		t.Error("Show should attach the surface")
	}
	if !a.Shown() {
		t.Error("agent should report shown")
	}
	if a.Sequencer().ActiveAnimation() != IdleAnimationName {
		t.Errorf("active animation: got %q, want %q", a.Sequencer().ActiveAnimation(), IdleAnimationName)
	}
	if len(surface.states) != 1 {
		t.Error("Idle frame 0 should be rendered by Show")
	}
}

// TestShowWithoutIdleAnimation 测试目录缺少 Idle 动画时 Show 返回错误
func TestShowWithoutIdleAnimation(t *testing.T) {
	cat := catalog.NewCatalog()
	if err := cat.Register(catalog.AnimationDefinition{
		Name:   "Wave",
		Frames: testFrames(waveX, 1),
	}); err != nil {
		t.Fatalf("Register() error: %v", err)
	}

	surface := &fakeSurface{}
	a, err := New(&atlas.Handle{Width: 512, Height: 512, Catalog: cat}, surface, 0, 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := a.Show(); err == nil {
		t.Error("Show() should fail when Idle is not registered")
	}
	if !surface.attached {
		t.Error("surface should still be attached")
	}
}

// TestHideCancelsEverything 测试 Hide 摘除渲染面并取消所有计时
func TestHideCancelsEverything(t *testing.T) {
	a, surface := newTestAgent(t)
	if err := a.Show(); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	done, err := a.Play("Wave")
	if err != nil {
		t.Fatalf("Play() error: %v", err)
	}
	a.Speak("hello", 1000)
	a.MoveTo(300, 300, 1000)

	a.Hide()

	if surface.attached {
		t.Error("Hide should detach the surface")
	}
	if a.Shown() {
		t.Error("agent should report hidden")
	}
	if a.Sequencer().Status() != StatusIdle {
		t.Error("Hide should stop the sequencer")
	}
	if a.Speech().Visible() {
		t.Error("Hide should clear the speech bubble")
	}
	if a.Mover().Moving() {
		t.Error("Hide should cancel the in-flight tween")
	}
	if !isClosed(done) {
		t.Error("Hide should release playback waiters")
	}

	// 隐藏后残留的 tick 不得修改实例
	statesBefore := len(surface.states)
	positionsBefore := len(surface.positions)
	a.Update(1.0)
	if len(surface.states) != statesBefore || len(surface.positions) != positionsBefore {
		t.Error("Update after Hide must have no side effects")
	}
}

// TestAgentUpdateDrivesComponents 测试 Update 统一推进三个组件
func TestAgentUpdateDrivesComponents(t *testing.T) {
	a, surface := newTestAgent(t)
	if err := a.Show(); err != nil {
		t.Fatalf("Show() error: %v", err)
	}

	a.Speak("hi", 100)
	a.MoveTo(110, 120, 100)

	// 一个 200ms 的 tick：帧计时到期、气泡淡入完成、补间走完
	a.Update(0.2)

	if a.Sequencer().FrameIndex() != 1 {
		t.Errorf("frame index: got %d, want 1", a.Sequencer().FrameIndex())
	}
	if a.Speech().Bubble() == nil || a.Speech().Bubble().Alpha != 1 {
		t.Error("speech fade-in should have completed")
	}
	x, y := a.Position()
	if x != 110 || y != 120 {
		t.Errorf("Position(): got (%v, %v), want (110, 120)", x, y)
	}
	if len(surface.positions) == 0 {
		t.Error("mover should have driven the surface position")
	}
}
