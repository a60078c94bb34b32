package render

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// 语音气泡绘制常量
const (
	speechPaddingX   = 8.0
	speechPaddingY   = 6.0
	speechCharWidth  = 6.0 // ebitenutil 调试字体的字符宽度
	speechLineHeight = 16.0
	speechOffsetY    = 24.0 // 气泡底边距锚点的高度
)

// EbitenSurface 基于 Ebitengine 的渲染面实现
//
// 持有图集纹理和当前可渲染状态，宿主在自己的 Draw 回调里调用
// Draw(screen) 落屏。所有状态修改都来自核心组件的 Surface 调用，
// 单 goroutine 驱动，无需加锁。
type EbitenSurface struct {
	atlas *ebiten.Image

	attached bool
	hasState bool
	state    VisualState
	x, y     float64

	speechText  string
	speechAlpha float64
	hasSpeech   bool
}

// NewEbitenSurface 用解码后的图集图像创建渲染面
func NewEbitenSurface(atlasImage image.Image) *EbitenSurface {
	return &EbitenSurface{
		atlas: ebiten.NewImageFromImage(atlasImage),
	}
}

// Attach 实现 Surface 接口
func (s *EbitenSurface) Attach() {
	s.attached = true
}

// Detach 实现 Surface 接口
// 摘除后清空帧与气泡状态，避免再次挂接时残影
func (s *EbitenSurface) Detach() {
	s.attached = false
	s.hasState = false
	s.hasSpeech = false
}

// ApplyVisualState 实现 Surface 接口
func (s *EbitenSurface) ApplyVisualState(state VisualState) {
	s.state = state
	s.hasState = true
}

// SetPosition 实现 Surface 接口
func (s *EbitenSurface) SetPosition(x, y float64) {
	s.x = x
	s.y = y
}

// ShowSpeech 实现 Surface 接口
func (s *EbitenSurface) ShowSpeech(text string, alpha float64) {
	s.speechText = text
	s.speechAlpha = alpha
	s.hasSpeech = true
}

// ClearSpeech 实现 Surface 接口
func (s *EbitenSurface) ClearSpeech() {
	s.hasSpeech = false
	s.speechText = ""
	s.speechAlpha = 0
}

// Draw 将当前状态绘制到屏幕
// 未挂接时不绘制任何内容
func (s *EbitenSurface) Draw(screen *ebiten.Image) {
	if !s.attached {
		return
	}

	if s.hasState {
		r := s.state.Region
		rect := image.Rect(r.X, r.Y, r.X+r.Width, r.Y+r.Height)
		frameImage := s.atlas.SubImage(rect).(*ebiten.Image)

		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(s.x+s.state.Offset.X, s.y+s.state.Offset.Y)
		screen.DrawImage(frameImage, op)
	}

	if s.hasSpeech && s.speechAlpha > 0 {
		s.drawSpeechBubble(screen)
	}
}

// drawSpeechBubble 绘制语音气泡（背景矩形 + 调试字体文本）
// 淡入淡出通过背景透明度体现；调试字体不支持 alpha，
// 文本在透明度过半后才显示，近似淡入效果
func (s *EbitenSurface) drawSpeechBubble(screen *ebiten.Image) {
	w := float32(float64(len(s.speechText))*speechCharWidth + speechPaddingX*2)
	h := float32(speechLineHeight + speechPaddingY*2)
	bx := float32(s.x)
	by := float32(s.y - speechOffsetY - float64(h))

	bg := color.RGBA{R: 255, G: 255, B: 240, A: uint8(220 * s.speechAlpha)}
	vector.DrawFilledRect(screen, bx, by, w, h, bg, false)

	if s.speechAlpha >= 0.5 {
		ebitenutil.DebugPrintAt(screen, s.speechText,
			int(bx)+int(speechPaddingX), int(by)+int(speechPaddingY))
	}
}
