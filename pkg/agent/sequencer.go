package agent

import (
	"log"

	"github.com/decker502/agent/pkg/catalog"
	"github.com/decker502/agent/pkg/render"
)

// SequencerStatus 播放状态
type SequencerStatus int

const (
	// StatusIdle 空闲：无活动动画
	StatusIdle SequencerStatus = iota

	// StatusPlaying 播放中：activeAnimation 非空且 frameIndex 有效
	StatusPlaying
)

// playbackRequest 一次 Play 调用产生的临时请求
// done 在该请求对应的动画播放完成时关闭
type playbackRequest struct {
	def  *catalog.AnimationDefinition
	done chan struct{}
}

// Sequencer 帧动画状态机
//
// 在 IDLE 与 PLAYING 之间振荡，无终止状态。状态只由自身方法修改：
// Play 发起/排队/抢占，Update 按帧时长推进，Stop 取消一切。
// 每个 Agent 恰好持有一个 Sequencer。
//
// 完成通知以关闭 channel 的方式广播。关闭时机保证：先提交下一个
// 状态的渲染副作用（排队动画的第 0 帧或回到 IDLE），再关闭上一个
// 动画的通知 channel。等待方观察到完成时，紧随其后的排队动画一定
// 已经开始。
type Sequencer struct {
	catalog *catalog.Catalog
	surface render.Surface

	status         SequencerStatus
	active         *catalog.AnimationDefinition
	frameIndex     int
	frameElapsedMs float64
	pending        []*playbackRequest
	activeDone     chan struct{}
}

// NewSequencer 创建处于 IDLE 状态的 Sequencer
func NewSequencer(cat *catalog.Catalog, surface render.Surface) *Sequencer {
	return &Sequencer{
		catalog: cat,
		surface: surface,
		status:  StatusIdle,
	}
}

// Play 请求播放指定名称的动画
//
// 名称解析失败时返回 *catalog.UnknownAnimationError，此时状态机的
// 任何字段都未被修改：当前播放不受影响，等待队列顺序不变。
//
// 解析成功后按动画的排队策略处理：
//   - IDLE：立即开始播放，渲染第 0 帧
//   - PLAYING + PolicyEnqueue：追加到等待队列
//   - PLAYING + PolicyDropAndReplace：取消当前帧计时，立即切换
//     （等待队列保留；被替换动画的通知 channel 在新动画渲染第 0 帧后关闭）
//
// 若请求的动画就是当前活动动画且队列为空，直接返回当前播放的
// 通知 channel，不产生新请求（重复 Play 不会让队列增长）。
//
// 返回的 channel 在该请求的动画播放完成时关闭。
func (s *Sequencer) Play(name string) (<-chan struct{}, error) {
	def, err := s.catalog.Lookup(name)
	if err != nil {
		return nil, err
	}

	// 重复请求抑制：已在播放同一动画且无排队时复用现有通知
	if s.status == StatusPlaying && s.active == def && len(s.pending) == 0 {
		return s.activeDone, nil
	}

	req := &playbackRequest{def: def, done: make(chan struct{})}

	if s.status == StatusPlaying {
		if def.Policy == catalog.PolicyEnqueue {
			s.pending = append(s.pending, req)
			log.Printf("[Sequencer] 动画入队: %s (队列长度: %d)", name, len(s.pending))
			return req.done, nil
		}

		// 抢占：丢弃当前动画（不动队列），立即重入播放转移
		dropped := s.activeDone
		log.Printf("[Sequencer] 动画抢占: %s 替换 %s", name, s.active.Name)
		s.start(req)
		if dropped != nil {
			close(dropped)
		}
		return req.done, nil
	}

	s.start(req)
	return req.done, nil
}

// start 执行 IDLE --play--> PLAYING 转移：设置活动动画、重置帧计时、
// 渲染第 0 帧
func (s *Sequencer) start(req *playbackRequest) {
	s.status = StatusPlaying
	s.active = req.def
	s.frameIndex = 0
	s.frameElapsedMs = 0
	s.activeDone = req.done
	s.surface.ApplyVisualState(render.FrameVisual(req.def.Frames[0]))
}

// Update 推进帧计时
//
// deltaTime 单位为秒。当前帧的时长计时到期时前进一帧；一次 Update
// 至多前进一帧，帧回调严格串行。最后一帧到期时：队列非空则弹出
// 队首立即开始播放（保持剩余队列顺序），否则回到 IDLE。完成通知
// 在下一个状态的渲染副作用提交之后关闭。
func (s *Sequencer) Update(deltaTime float64) {
	if s.status != StatusPlaying {
		return
	}

	s.frameElapsedMs += deltaTime * 1000
	current := s.active.Frames[s.frameIndex]
	if s.frameElapsedMs < float64(current.DurationMs) {
		return
	}

	// 帧计时到期，重置计时并前进
	s.frameElapsedMs = 0
	s.frameIndex++

	if s.frameIndex < len(s.active.Frames) {
		s.surface.ApplyVisualState(render.FrameVisual(s.active.Frames[s.frameIndex]))
		return
	}

	// 动画播完，向 IDLE 转移
	finished := s.activeDone
	log.Printf("[Sequencer] 动画播放完成: %s", s.active.Name)

	if len(s.pending) > 0 {
		next := s.pending[0]
		s.pending = s.pending[1:]
		s.start(next)
	} else {
		s.status = StatusIdle
		s.active = nil
		s.frameIndex = 0
		s.activeDone = nil
	}

	// 先提交下一状态的渲染，再通知完成
	close(finished)
}

// Stop 取消一切播放（Hide 时调用）
//
// 取消帧计时、清空活动动画与等待队列，回到 IDLE。
// 所有未完成的通知 channel（活动的与排队的）都会被关闭，
// 等待方不会永久阻塞。对已停止的 Sequencer 调用是无操作。
func (s *Sequencer) Stop() {
	if s.activeDone != nil {
		close(s.activeDone)
		s.activeDone = nil
	}
	for _, req := range s.pending {
		close(req.done)
	}
	s.pending = nil
	s.status = StatusIdle
	s.active = nil
	s.frameIndex = 0
	s.frameElapsedMs = 0
}

// Status 返回当前播放状态
func (s *Sequencer) Status() SequencerStatus {
	return s.status
}

// ActiveAnimation 返回当前活动动画名，IDLE 时返回空字符串
func (s *Sequencer) ActiveAnimation() string {
	if s.active == nil {
		return ""
	}
	return s.active.Name
}

// FrameIndex 返回当前帧下标（仅 PLAYING 时有意义）
func (s *Sequencer) FrameIndex() int {
	return s.frameIndex
}

// PendingCount 返回等待队列长度
func (s *Sequencer) PendingCount() int {
	return len(s.pending)
}
