package agent

import (
	"github.com/decker502/agent/pkg/render"
)

// DefaultMoveDurationMs MoveTo 的默认补间时长（毫秒）
const DefaultMoveDurationMs = 1000

// MoveTween 一次进行中的锚点补间
type MoveTween struct {
	// FromX, FromY 起点（发起补间时已提交的锚点）
	FromX, FromY float64

	// ToX, ToY 终点
	ToX, ToY float64

	// DurationMs 补间总时长（毫秒）
	DurationMs float64

	elapsedMs float64
}

// Mover 锚点移动管理器
//
// 独立于帧动画播放，用三次方缓入缓出补间驱动锚点。逻辑锚点
// （Position 的返回值）只在补间完成回调触发时提交，补间进行中
// 读到的仍是上一次提交的值，避免后续相对调用与画面脱节。
//
// 设计决策：在上一个补间仍在进行时再次 MoveTo 会先取消旧补间，
// 从当前已提交的锚点重新出发。原行为允许两个插值竞争同一锚点，
// 这里选择取消语义并在此处显式记录。
type Mover struct {
	surface render.Surface

	x, y  float64
	tween *MoveTween
}

// NewMover 创建锚点位于 (x, y) 的 Mover
func NewMover(surface render.Surface, x, y float64) *Mover {
	m := &Mover{surface: surface, x: x, y: y}
	m.surface.SetPosition(x, y)
	return m
}

// MoveTo 移动锚点到 (x, y)
//
//   - durationMs == 0：同步提交新锚点，不产生补间
//   - durationMs < 0：使用 DefaultMoveDurationMs
//   - 其他：从当前已提交锚点开始补间，完成时提交逻辑锚点
//
// 进行中的旧补间会被取消（见类型注释）。
func (m *Mover) MoveTo(x, y float64, durationMs int) {
	if durationMs == 0 {
		m.tween = nil
		m.x, m.y = x, y
		m.surface.SetPosition(x, y)
		return
	}
	if durationMs < 0 {
		durationMs = DefaultMoveDurationMs
	}

	m.tween = &MoveTween{
		FromX:      m.x,
		FromY:      m.y,
		ToX:        x,
		ToY:        y,
		DurationMs: float64(durationMs),
	}
}

// Update 推进补间
// deltaTime 单位为秒。每个 tick 把插值位置交给渲染面；
// 进度到达 1 时提交逻辑锚点并结束补间。
func (m *Mover) Update(deltaTime float64) {
	if m.tween == nil {
		return
	}

	t := m.tween
	t.elapsedMs += deltaTime * 1000

	progress := t.elapsedMs / t.DurationMs
	if progress >= 1 {
		progress = 1
	}

	eased := easeInOutCubic(progress)
	m.surface.SetPosition(lerp(t.FromX, t.ToX, eased), lerp(t.FromY, t.ToY, eased))

	if progress >= 1 {
		// 补间完成：提交逻辑锚点
		m.x, m.y = t.ToX, t.ToY
		m.tween = nil
	}
}

// Cancel 取消进行中的补间（Hide 时调用）
// 逻辑锚点保持上一次提交的值
func (m *Mover) Cancel() {
	m.tween = nil
}

// Position 返回已提交的逻辑锚点
// 补间进行中返回的仍是起点侧最后提交的值
func (m *Mover) Position() (float64, float64) {
	return m.x, m.y
}

// Moving 返回是否有进行中的补间
func (m *Mover) Moving() bool {
	return m.tween != nil
}
