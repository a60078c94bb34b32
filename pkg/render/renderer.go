// Package render 定义渲染侧的能力接口与纯渲染映射
//
// 核心只依赖 Surface 能力接口，不关心宿主环境是 Ebitengine、
// 终端还是其他画布；EbitenSurface 是本仓库自带的一个实现。
package render

import "github.com/decker502/agent/pkg/catalog"

// VisualState 一帧的可渲染状态(纯数据)
// 由 FrameVisual 从帧定义映射而来，交给 Surface 落到具体画布上
type VisualState struct {
	// Region 图集上的源区域
	Region catalog.AtlasRegion

	// Offset 相对锚点的渲染偏移
	Offset catalog.Offset
}

// FrameVisual 帧定义到可渲染状态的纯映射
// 无副作用；Sequencer 每次帧切换调用一次，结果交给注入的 Surface
func FrameVisual(frame catalog.Frame) VisualState {
	return VisualState{
		Region: frame.Region,
		Offset: frame.Offset,
	}
}

// Surface 宿主渲染面能力接口
//
// 由宿主环境实现（如 EbitenSurface）。核心各组件只通过这组方法
// 产生可见副作用，保证逻辑层可以用记录型伪实现做测试。
type Surface interface {
	// Attach 将 agent 挂接到渲染面（Show 时调用）
	Attach()

	// Detach 将 agent 从渲染面摘除（Hide 时调用）
	Detach()

	// ApplyVisualState 提交一帧的可渲染状态
	ApplyVisualState(state VisualState)

	// SetPosition 更新锚点的渲染位置（Mover 每个 tick 调用）
	SetPosition(x, y float64)

	// ShowSpeech 显示/刷新语音气泡（alpha ∈ [0,1]，用于淡入淡出）
	ShowSpeech(text string, alpha float64)

	// ClearSpeech 移除语音气泡
	ClearSpeech()
}
