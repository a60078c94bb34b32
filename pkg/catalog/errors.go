package catalog

import "fmt"

// UnknownAnimationError 查找不存在的动画名时返回
// 调用方收到此错误时，Sequencer 的状态保证完全未被修改
type UnknownAnimationError struct {
	// Name 未注册的动画名称
	Name string
}

func (e *UnknownAnimationError) Error() string {
	return fmt.Sprintf("unknown animation: %q", e.Name)
}

// InvalidFrameDefinitionError 动画定义校验失败时返回
// 注册时校验帧时长与区域尺寸，图集边界校验推迟到图集装载成功之后
type InvalidFrameDefinitionError struct {
	// Animation 出错的动画名称
	Animation string

	// Reason 校验失败原因
	Reason string
}

func (e *InvalidFrameDefinitionError) Error() string {
	return fmt.Sprintf("invalid frame definition in animation %q: %s", e.Animation, e.Reason)
}
