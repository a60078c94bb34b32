package agent

import "math"

// 缓动函数
//
// 输入进度 t ∈ [0, 1]，返回缓动后的值 ∈ [0, 1]。
// 参考：https://easings.net/

// easeInOutCubic 三次方缓入缓出
// 特点：开始慢，中间快，结束慢（用于锚点移动补间）
// 公式：
//
//	t < 0.5: f(t) = 4t³
//	t >= 0.5: f(t) = 1 - (-2t + 2)³ / 2
func easeInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

// lerp 线性插值
// t=0 返回 a，t=1 返回 b
func lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
