package atlas

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"log"
	"strings"

	"github.com/quasilyte/gdata/v2"
	"golang.org/x/sync/errgroup"

	"github.com/decker502/agent/pkg/catalog"
)

// agent 资源目录下的固定文件名
const (
	atlasFileName   = "atlas.png"
	catalogFileName = "agent.yaml"
)

// gdata 缓存对象名
const cacheObject = "resource_cache"

// AtlasLoadError 图集装载失败
// 网络错误、解码失败、超时都归入此类；对 Agent 构造是致命的，
// 核心不做重试，重试策略由调用方决定
type AtlasLoadError struct {
	// Path 出错的资源路径
	Path string

	// Err 底层错误
	Err error
}

func (e *AtlasLoadError) Error() string {
	return fmt.Sprintf("atlas load failed: %s: %v", e.Path, e.Err)
}

func (e *AtlasLoadError) Unwrap() error {
	return e.Err
}

// Handle 装载成功的图集句柄
// Agent 的构造必须以一个 Handle 为前提（两阶段构造：先装载，后构建）
type Handle struct {
	// Image 解码后的图集图像
	Image image.Image

	// Width, Height 图集像素尺寸
	Width  int
	Height int

	// Catalog 随图集一起装载并通过边界校验的动画目录
	Catalog *catalog.Catalog
}

// Loader is responsible for resolving an agent's sprite resources.
// It fetches the atlas image and the animation catalog concurrently,
// decodes and validates them, and optionally caches raw bytes through
// a gdata manager so repeated startups avoid refetching.
//
// The cache manager may be nil, in which case the loader runs in a
// degraded mode and fetches on every call (the same nillable pattern
// the settings layer uses).
//
// Usage:
//
//	loader := atlas.NewLoader(&atlas.FileFetcher{}, nil)
//	handle, err := loader.Load(ctx, "assets/agents/clippy")
//	if err != nil {
//	    log.Fatalf("agent resources unavailable: %v", err)
//	}
type Loader struct {
	fetcher Fetcher
	cache   *gdata.Manager
}

// NewLoader creates a Loader with the given fetch capability.
// cache may be nil (degraded mode, no persistent byte cache).
func NewLoader(fetcher Fetcher, cache *gdata.Manager) *Loader {
	return &Loader{
		fetcher: fetcher,
		cache:   cache,
	}
}

// Load resolves the atlas image and animation catalog under basePath.
//
// Both resources are fetched concurrently. After both succeed, the
// catalog's atlas-bounds validation runs against the decoded image
// dimensions (the check deferred from registration time).
//
// Any failure — fetch, decode, parse, bounds — aborts the load and is
// reported as *AtlasLoadError (catalog validation errors keep their
// own type and are reachable via errors.Unwrap/As).
func (l *Loader) Load(ctx context.Context, basePath string) (*Handle, error) {
	atlasPath := joinPath(basePath, atlasFileName)
	catalogPath := joinPath(basePath, catalogFileName)

	var img image.Image
	var cat *catalog.Catalog

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		data, err := l.fetch(ctx, atlasPath)
		if err != nil {
			return &AtlasLoadError{Path: atlasPath, Err: err}
		}
		decoded, _, err := image.Decode(bytes.NewReader(data))
		if err != nil {
			return &AtlasLoadError{Path: atlasPath, Err: fmt.Errorf("decode failed: %w", err)}
		}
		img = decoded
		return nil
	})
	g.Go(func() error {
		data, err := l.fetch(ctx, catalogPath)
		if err != nil {
			return &AtlasLoadError{Path: catalogPath, Err: err}
		}
		parsed, err := catalog.ParseCatalogConfig(data)
		if err != nil {
			return &AtlasLoadError{Path: catalogPath, Err: err}
		}
		cat = parsed
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	width, height := bounds.Dx(), bounds.Dy()

	// 注册时推迟的图集边界校验，在这里执行
	if err := cat.ValidateBounds(width, height); err != nil {
		return nil, &AtlasLoadError{Path: basePath, Err: err}
	}

	log.Printf("[AtlasLoader] 装载完成: %s (图集 %dx%d, 动画 %d 个)",
		basePath, width, height, cat.Len())

	return &Handle{
		Image:   img,
		Width:   width,
		Height:  height,
		Catalog: cat,
	}, nil
}

// fetch 带缓存的资源获取
// 缓存命中时不触发网络/磁盘访问；fetch 成功后写回缓存。
// 缓存写失败只记日志，不影响装载结果。
func (l *Loader) fetch(ctx context.Context, path string) ([]byte, error) {
	key := cacheKey(path)

	if l.cache != nil && l.cache.ObjectPropExists(cacheObject, key) {
		data, err := l.cache.LoadObjectProp(cacheObject, key)
		if err == nil {
			log.Printf("[AtlasLoader] 缓存命中: %s", path)
			return data, nil
		}
		log.Printf("[AtlasLoader] Warning: cache read failed for %s: %v (refetching)", path, err)
	}

	data, err := l.fetcher.Fetch(ctx, path)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.SaveObjectProp(cacheObject, key, data); err != nil {
			log.Printf("[AtlasLoader] Warning: cache write failed for %s: %v", path, err)
		}
	}
	return data, nil
}

// joinPath 拼接 basePath 与固定文件名
// 同时适用于本地路径与 URL，因此不使用 filepath.Join
func joinPath(basePath, name string) string {
	if basePath == "" {
		return name
	}
	return strings.TrimRight(basePath, "/") + "/" + name
}

// cacheKey 将资源路径转成 gdata 属性名
func cacheKey(path string) string {
	r := strings.NewReplacer("/", "_", "\\", "_", ":", "_", ".", "_")
	return r.Replace(path)
}
