package catalog

// QueuePolicy 动画排队策略
// 决定在已有动画播放时，新的播放请求是排队等待还是立即抢占
type QueuePolicy int

const (
	// PolicyDropAndReplace 抢占策略：取消当前动画的帧计时，立即播放新动画
	// 注意：只丢弃当前动画，不清空等待队列
	PolicyDropAndReplace QueuePolicy = iota

	// PolicyEnqueue 排队策略：追加到等待队列，当前播放不受影响
	PolicyEnqueue
)

// String 返回策略的可读名称（用于日志和调试）
func (p QueuePolicy) String() string {
	switch p {
	case PolicyDropAndReplace:
		return "drop_and_replace"
	case PolicyEnqueue:
		return "enqueue"
	default:
		return "unknown"
	}
}

// AtlasRegion 图集上的矩形区域（像素坐标）
// 每一帧对应图集上的一个区域
type AtlasRegion struct {
	X      int `yaml:"x"`
	Y      int `yaml:"y"`
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// Offset 帧渲染时相对锚点的偏移量
type Offset struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Frame 单帧定义(纯数据)
//
// 一帧 = 图集区域 + 显示时长 + 渲染偏移。
// 定义后不可变：Sequencer 播放时只读引用，从不修改。
type Frame struct {
	// DurationMs 该帧的显示时长（毫秒），必须为正数
	DurationMs int `yaml:"duration_ms"`

	// Region 该帧在图集上的区域
	Region AtlasRegion `yaml:"region"`

	// Offset 渲染偏移（相对锚点）
	Offset Offset `yaml:"offset"`
}

// AnimationDefinition 命名动画定义(纯数据)
//
// 由 Catalog 独占持有，注册后不可变。
// Frames 为有序帧列表，Policy 决定播放请求的排队行为。
type AnimationDefinition struct {
	// Name 动画名称（如 "Idle", "Wave"）
	Name string `yaml:"name"`

	// Frames 有序帧列表，至少一帧
	Frames []Frame `yaml:"frames"`

	// Policy 排队策略
	Policy QueuePolicy `yaml:"-"`
}
