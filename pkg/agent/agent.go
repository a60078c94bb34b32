// Package agent 实现屏幕助手的动画核心
//
// 该包提供帧动画状态机 (Sequencer)、语音气泡 (SpeechOverlay)、
// 锚点补间 (Mover) 以及组合三者的 Agent 门面。所有组件由宿主的
// 游戏循环通过 Update(deltaTime) 协作式驱动，单 goroutine，
// 无后台计时器。
package agent

import (
	"fmt"
	"log"

	"github.com/decker502/agent/pkg/atlas"
	"github.com/decker502/agent/pkg/render"
)

// IdleAnimationName Show 时自动播放的动画名
const IdleAnimationName = "Idle"

// Agent 屏幕助手门面
//
// 两阶段构造：必须先由 atlas.Loader 装载成功得到 Handle，
// 再用 New 构建。装载失败对该 Agent 实例是致命的。
//
// 生命周期：New -> Show（挂接渲染面并播放 Idle）-> 若干
// Play/Speak/MoveTo -> Hide（摘除渲染面并取消一切计时，
// 防止残留回调修改已摘除的实例）。
type Agent struct {
	surface render.Surface

	sequencer *Sequencer
	speech    *SpeechOverlay
	mover     *Mover

	shown bool
}

// New 用装载成功的图集句柄构建 Agent
// 初始锚点为 (x, y)
func New(handle *atlas.Handle, surface render.Surface, x, y float64) (*Agent, error) {
	if handle == nil {
		return nil, fmt.Errorf("agent requires a loaded atlas handle")
	}
	if handle.Catalog == nil {
		return nil, fmt.Errorf("atlas handle carries no animation catalog")
	}

	return &Agent{
		surface:   surface,
		sequencer: NewSequencer(handle.Catalog, surface),
		speech:    NewSpeechOverlay(surface),
		mover:     NewMover(surface, x, y),
	}, nil
}

// Show 挂接渲染面并立即播放 Idle 动画
// 目录中没有 Idle 动画时返回错误（agent 仍处于已显示状态）
func (a *Agent) Show() error {
	a.surface.Attach()
	a.shown = true
	log.Printf("[Agent] Show")

	if _, err := a.sequencer.Play(IdleAnimationName); err != nil {
		return fmt.Errorf("failed to start idle animation: %w", err)
	}
	return nil
}

// Hide 摘除渲染面并取消所有未完成的计时
// 帧计时、语音淡入淡出计时、进行中的补间全部作废
func (a *Agent) Hide() {
	a.sequencer.Stop()
	a.speech.Clear()
	a.mover.Cancel()
	a.surface.Detach()
	a.shown = false
	log.Printf("[Agent] Hide")
}

// Play 播放指定名称的动画
// 返回的 channel 在该动画播放完成时关闭；
// 名称未注册时返回 *catalog.UnknownAnimationError，播放状态不受影响
func (a *Agent) Play(name string) (<-chan struct{}, error) {
	return a.sequencer.Play(name)
}

// Speak 显示语音气泡
// durationMs <= 0 时使用 DefaultSpeakDurationMs (3000)
func (a *Agent) Speak(text string, durationMs int) {
	a.speech.Speak(text, durationMs)
}

// MoveTo 移动锚点
// durationMs == 0 同步提交；durationMs < 0 使用
// DefaultMoveDurationMs (1000)
func (a *Agent) MoveTo(x, y float64, durationMs int) {
	a.mover.MoveTo(x, y, durationMs)
}

// Position 返回已提交的逻辑锚点
func (a *Agent) Position() (float64, float64) {
	return a.mover.Position()
}

// Shown 返回 agent 当前是否处于显示状态
func (a *Agent) Shown() bool {
	return a.shown
}

// Sequencer 返回帧动画状态机（供宿主查询播放状态）
func (a *Agent) Sequencer() *Sequencer {
	return a.sequencer
}

// Speech 返回语音气泡管理器
func (a *Agent) Speech() *SpeechOverlay {
	return a.speech
}

// Mover 返回锚点移动管理器
func (a *Agent) Mover() *Mover {
	return a.mover
}

// Update 推进所有计时
// 宿主每个 tick 调用一次，deltaTime 单位为秒。
// 隐藏状态下不推进任何计时（Hide 已取消全部状态）。
func (a *Agent) Update(deltaTime float64) {
	if !a.shown {
		return
	}
	a.sequencer.Update(deltaTime)
	a.speech.Update(deltaTime)
	a.mover.Update(deltaTime)
}
