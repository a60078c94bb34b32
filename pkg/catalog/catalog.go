package catalog

import (
	"fmt"
	"log"
	"sort"
)

// Catalog 动画目录
// 负责命名动画定义的注册、查找和校验
//
// 生命周期：
//  1. NewCatalog() 创建空目录
//  2. Register() 逐个注册动画（注册时校验帧时长、区域尺寸）
//  3. ValidateBounds() 在图集装载成功后校验所有区域是否落在图集范围内
//  4. Lookup() 供 Sequencer 按名称解析动画
//
// 注册完成后定义不可变，查找只返回只读引用。
type Catalog struct {
	defs map[string]*AnimationDefinition
}

// NewCatalog 创建空的动画目录
func NewCatalog() *Catalog {
	return &Catalog{
		defs: make(map[string]*AnimationDefinition),
	}
}

// Register 注册一个动画定义
//
// 注册时校验：
//   - 名称非空
//   - 至少一帧
//   - 每帧 DurationMs > 0
//   - 每帧区域宽高 > 0 且坐标非负
//
// 图集边界校验不在此处执行（图集尺寸在装载成功前未知），
// 见 ValidateBounds。
//
// 返回：
//   - error: 校验失败返回 *InvalidFrameDefinitionError，重名注册返回错误
func (c *Catalog) Register(def AnimationDefinition) error {
	if def.Name == "" {
		return &InvalidFrameDefinitionError{Animation: def.Name, Reason: "animation name is empty"}
	}
	if _, exists := c.defs[def.Name]; exists {
		return &InvalidFrameDefinitionError{Animation: def.Name, Reason: "animation already registered"}
	}
	if len(def.Frames) == 0 {
		return &InvalidFrameDefinitionError{Animation: def.Name, Reason: "animation has no frames"}
	}
	for i, frame := range def.Frames {
		if frame.DurationMs <= 0 {
			return &InvalidFrameDefinitionError{
				Animation: def.Name,
				Reason:    frameReason(i, "duration must be positive"),
			}
		}
		if frame.Region.Width <= 0 || frame.Region.Height <= 0 {
			return &InvalidFrameDefinitionError{
				Animation: def.Name,
				Reason:    frameReason(i, "region width/height must be positive"),
			}
		}
		if frame.Region.X < 0 || frame.Region.Y < 0 {
			return &InvalidFrameDefinitionError{
				Animation: def.Name,
				Reason:    frameReason(i, "region origin must be non-negative"),
			}
		}
	}

	stored := def
	c.defs[def.Name] = &stored
	log.Printf("[Catalog] 注册动画: %s (帧数: %d, 策略: %s)", def.Name, len(def.Frames), def.Policy)
	return nil
}

// Lookup 按名称查找动画定义
//
// 返回：
//   - *AnimationDefinition: 只读的动画定义
//   - error: 名称未注册时返回 *UnknownAnimationError
func (c *Catalog) Lookup(name string) (*AnimationDefinition, error) {
	def, ok := c.defs[name]
	if !ok {
		return nil, &UnknownAnimationError{Name: name}
	}
	return def, nil
}

// ValidateBounds 校验所有动画帧区域是否落在图集范围内
//
// 图集尺寸在 AtlasLoader 装载成功后才可知，因此此校验与注册分离，
// 由装载流程在构造 Agent 之前调用。
//
// 参数：
//   - width, height: 图集像素尺寸
//
// 返回：
//   - error: 任一帧越界时返回 *InvalidFrameDefinitionError
func (c *Catalog) ValidateBounds(width, height int) error {
	for _, name := range c.Names() {
		def := c.defs[name]
		for i, frame := range def.Frames {
			r := frame.Region
			if r.X+r.Width > width || r.Y+r.Height > height {
				return &InvalidFrameDefinitionError{
					Animation: name,
					Reason:    frameReason(i, "region exceeds atlas bounds"),
				}
			}
		}
	}
	return nil
}

// Names 返回所有已注册动画的名称（字典序，保证确定性）
func (c *Catalog) Names() []string {
	names := make([]string, 0, len(c.defs))
	for name := range c.defs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len 返回已注册动画数量
func (c *Catalog) Len() int {
	return len(c.defs)
}

func frameReason(index int, msg string) string {
	return fmt.Sprintf("frame #%d: %s", index, msg)
}
