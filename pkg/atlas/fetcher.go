package atlas

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// Fetcher 资源获取能力接口
//
// 由宿主环境注入。Loader 通过它取回图集图像和动画配置的原始字节，
// 不关心资源是来自本地磁盘还是网络。
type Fetcher interface {
	// Fetch 获取 path 指向的资源内容
	// 实现必须尊重 ctx 的取消与超时
	Fetch(ctx context.Context, path string) ([]byte, error)
}

// FileFetcher 本地文件系统实现
// Root 为空时直接按 path 读取
type FileFetcher struct {
	// Root 资源根目录（可选）
	Root string
}

// Fetch 实现 Fetcher 接口
func (f *FileFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	full := path
	if f.Root != "" {
		full = filepath.Join(f.Root, path)
	}
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource %s: %w", full, err)
	}
	return data, nil
}

// HTTPFetcher HTTP 实现
// Client 为 nil 时使用带超时的默认客户端
type HTTPFetcher struct {
	Client *http.Client
}

// Fetch 实现 Fetcher 接口
func (f *HTTPFetcher) Fetch(ctx context.Context, path string) ([]byte, error) {
	client := f.Client
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request for %s: %w", path, err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s: unexpected status %s", path, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read body of %s: %w", path, err)
	}
	return data, nil
}

// IsRemotePath 判断 basePath 是否为远程地址
// 用于在宿主侧选择 FileFetcher 还是 HTTPFetcher
func IsRemotePath(basePath string) bool {
	return strings.HasPrefix(basePath, "http://") || strings.HasPrefix(basePath, "https://")
}
