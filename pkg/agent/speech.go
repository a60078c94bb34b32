package agent

import (
	"log"
	"math"

	"github.com/decker502/agent/pkg/render"
)

// 语音气泡时间常量
const (
	// DefaultSpeakDurationMs Speak 的默认停留时长（毫秒）
	DefaultSpeakDurationMs = 3000

	// speechFadeMs 淡入/淡出各自的时长（毫秒）
	speechFadeMs = 200.0
)

// speechPhase 气泡所处阶段
type speechPhase int

const (
	phaseFadeIn  speechPhase = iota // 淡入中
	phaseHold                       // 完全可见，停留中
	phaseFadeOut                    // 淡出中
)

// SpeechBubble 语音气泡状态
// 每个 Agent 至多一个活动气泡，由 SpeechOverlay 独占持有
type SpeechBubble struct {
	// Text 气泡文本
	Text string

	// Alpha 当前透明度 ∈ [0, 1]
	Alpha float64

	phase     speechPhase
	elapsedMs float64
	holdMs    float64
}

// SpeechOverlay 语音气泡管理器
//
// 独立于帧动画播放：自己的淡入/停留/淡出阶段机在 Update 中推进。
// 再次 Speak 直接替换旧气泡，旧气泡的淡出与移除计时随状态一起
// 作废，不可能误删新气泡。不排队：任何时刻至多一个活动气泡。
type SpeechOverlay struct {
	surface render.Surface
	bubble  *SpeechBubble
}

// NewSpeechOverlay 创建无活动气泡的管理器
func NewSpeechOverlay(surface render.Surface) *SpeechOverlay {
	return &SpeechOverlay{surface: surface}
}

// Speak 显示一个新气泡
//
// 立即开始淡入；淡出在淡入开始 durationMs 之后启动（因此停留
// 阶段时长为 durationMs - 淡入时长，最短为 0），淡出结束时移除
// 气泡。传入 durationMs <= 0 使用 DefaultSpeakDurationMs。
func (o *SpeechOverlay) Speak(text string, durationMs int) {
	if durationMs <= 0 {
		durationMs = DefaultSpeakDurationMs
	}

	if o.bubble != nil {
		log.Printf("[SpeechOverlay] 气泡替换: %q -> %q", o.bubble.Text, text)
	}

	o.bubble = &SpeechBubble{
		Text:   text,
		phase:  phaseFadeIn,
		holdMs: math.Max(0, float64(durationMs)-speechFadeMs),
	}
	o.surface.ShowSpeech(text, 0)
}

// Update 推进气泡阶段机
// deltaTime 单位为秒
func (o *SpeechOverlay) Update(deltaTime float64) {
	if o.bubble == nil {
		return
	}

	b := o.bubble
	b.elapsedMs += deltaTime * 1000

	switch b.phase {
	case phaseFadeIn:
		if b.elapsedMs >= speechFadeMs {
			b.phase = phaseHold
			b.elapsedMs = 0
			b.Alpha = 1
		} else {
			b.Alpha = b.elapsedMs / speechFadeMs
		}
		o.surface.ShowSpeech(b.Text, b.Alpha)

	case phaseHold:
		if b.elapsedMs >= b.holdMs {
			b.phase = phaseFadeOut
			b.elapsedMs = 0
		}

	case phaseFadeOut:
		if b.elapsedMs >= speechFadeMs {
			// 淡出完成，移除气泡
			o.bubble = nil
			o.surface.ClearSpeech()
			return
		}
		b.Alpha = 1 - b.elapsedMs/speechFadeMs
		o.surface.ShowSpeech(b.Text, b.Alpha)
	}
}

// Clear 立即移除气泡并作废所有淡入淡出计时（Hide 时调用）
func (o *SpeechOverlay) Clear() {
	o.bubble = nil
	o.surface.ClearSpeech()
}

// Bubble 返回当前活动气泡，无气泡时返回 nil
func (o *SpeechOverlay) Bubble() *SpeechBubble {
	return o.bubble
}

// Visible 返回当前是否有活动气泡
func (o *SpeechOverlay) Visible() bool {
	return o.bubble != nil
}
