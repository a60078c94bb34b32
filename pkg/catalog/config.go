package catalog

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CatalogConfig 动画目录配置文件的顶层结构
// 对应每个 agent 资源目录下的 agent.yaml
type CatalogConfig struct {
	// Animations 动画定义列表
	Animations []AnimationConfig `yaml:"animations"`
}

// AnimationConfig 单个动画的配置
type AnimationConfig struct {
	// Name 动画名称（代码中通过 Play(name) 引用）
	Name string `yaml:"name"`

	// QueuePolicy 排队策略（"drop_and_replace" 或 "enqueue"）
	// 省略时默认为 "drop_and_replace"
	QueuePolicy string `yaml:"queue_policy,omitempty"`

	// Frames 有序帧列表
	Frames []Frame `yaml:"frames"`
}

// ParseCatalogConfig 从 YAML 字节解析动画目录
//
// 解析后逐个注册到新的 Catalog，注册时校验即配置校验。
//
// 参数：
//   - data: agent.yaml 的原始内容
//
// 返回：
//   - *Catalog: 注册完成的动画目录
//   - error: 解析或校验错误
func ParseCatalogConfig(data []byte) (*Catalog, error) {
	var config CatalogConfig
	if err := yaml.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("无法解析动画配置: %w", err)
	}

	if len(config.Animations) == 0 {
		return nil, fmt.Errorf("动画配置为空: 缺少 'animations' 列表")
	}

	cat := NewCatalog()
	for i, anim := range config.Animations {
		policy, err := parseQueuePolicy(anim.QueuePolicy)
		if err != nil {
			return nil, fmt.Errorf("动画 #%d (%s): %w", i, anim.Name, err)
		}

		def := AnimationDefinition{
			Name:   anim.Name,
			Frames: anim.Frames,
			Policy: policy,
		}
		if err := cat.Register(def); err != nil {
			return nil, fmt.Errorf("动画 #%d 注册失败: %w", i, err)
		}
	}

	return cat, nil
}

// LoadCatalogConfig 从 YAML 文件加载动画目录
//
// 参数：
//   - path: 配置文件路径
//
// 返回：
//   - *Catalog: 注册完成的动画目录
//   - error: 读取、解析或校验错误
func LoadCatalogConfig(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("无法读取配置文件 %s: %w", path, err)
	}

	cat, err := ParseCatalogConfig(data)
	if err != nil {
		return nil, fmt.Errorf("配置文件 %s 解析失败: %w", path, err)
	}
	return cat, nil
}

// parseQueuePolicy 解析排队策略字符串
// 空字符串默认为 drop_and_replace
func parseQueuePolicy(s string) (QueuePolicy, error) {
	switch s {
	case "", "drop_and_replace":
		return PolicyDropAndReplace, nil
	case "enqueue":
		return PolicyEnqueue, nil
	default:
		return PolicyDropAndReplace, fmt.Errorf("未知的排队策略 %q (支持 'drop_and_replace' 或 'enqueue')", s)
	}
}
