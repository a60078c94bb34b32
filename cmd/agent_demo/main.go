// agent_demo 交互式演示宿主
//
// 用 Ebitengine 作为渲染面宿主，装载指定目录下的 agent 资源并
// 交互式触发 Play/Speak/MoveTo：
//
//	go run ./cmd/agent_demo -path assets/agents/clippy -verbose
//
// 按键：
//   - 数字键 1..9：按目录顺序播放动画
//   - S：显示语音气泡
//   - M：移动到随机位置（1 秒补间）
//   - H：Hide / Show 切换
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"io"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/agent/pkg/agent"
	"github.com/decker502/agent/pkg/atlas"
	"github.com/decker502/agent/pkg/render"
)

const (
	screenWidth  = 800
	screenHeight = 600
	loadTimeout  = 30 * time.Second
)

// Game 实现 ebiten.Game 接口，作为 agent 的宿主
type Game struct {
	agent      *agent.Agent
	surface    *render.EbitenSurface
	animations []string
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (g *Game) Update() error {
	// 数字键播放对应动画
	for i, name := range g.animations {
		if i >= 9 {
			break
		}
		key := ebiten.Key(int(ebiten.KeyDigit1) + i)
		if inpututil.IsKeyJustPressed(key) {
			if _, err := g.agent.Play(name); err != nil {
				log.Printf("[Demo] Play(%s) failed: %v", name, err)
			}
		}
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.agent.Speak("Hello! Need any help?", 0)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyM) {
		x := rand.Float64() * (screenWidth - 100)
		y := rand.Float64() * (screenHeight - 100)
		g.agent.MoveTo(x, y, -1)
	}

	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		if g.agent.Shown() {
			g.agent.Hide()
		} else {
			if err := g.agent.Show(); err != nil {
				log.Printf("[Demo] Show failed: %v", err)
			}
		}
	}

	deltaTime := 1.0 / 60.0
	g.agent.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 240, G: 240, B: 245, A: 255})
	g.surface.Draw(screen)

	seq := g.agent.Sequencer()
	status := "idle"
	if seq.Status() == agent.StatusPlaying {
		status = fmt.Sprintf("playing %s [frame %d, queued %d]",
			seq.ActiveAnimation(), seq.FrameIndex(), seq.PendingCount())
	}
	ebitenutil.DebugPrintAt(screen, "1-9: play  S: speak  M: move  H: hide/show", 10, 10)
	ebitenutil.DebugPrintAt(screen, status, 10, 26)
}

// Layout 返回游戏的逻辑屏幕尺寸
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return screenWidth, screenHeight
}

func main() {
	basePath := flag.String("path", "assets/agents/clippy", "agent 资源目录（本地路径或 URL）")
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	flag.Parse()

	if !*verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	// gdata 缓存：打开失败时降级为无缓存模式
	cache, err := gdata.Open(gdata.Config{AppName: "agent_demo"})
	if err != nil {
		log.Printf("[Demo] Warning: gdata unavailable: %v (cache disabled)", err)
		cache = nil
	}

	var fetcher atlas.Fetcher
	if atlas.IsRemotePath(*basePath) {
		fetcher = &atlas.HTTPFetcher{}
	} else {
		fetcher = &atlas.FileFetcher{}
	}

	// 两阶段构造：先装载，后构建
	ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
	defer cancel()

	loader := atlas.NewLoader(fetcher, cache)
	handle, err := loader.Load(ctx, *basePath)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("agent resources unavailable: %v", err)
	}

	surface := render.NewEbitenSurface(handle.Image)
	a, err := agent.New(handle, surface, screenWidth/2, screenHeight/2)
	if err != nil {
		log.SetOutput(os.Stderr)
		log.Fatalf("failed to build agent: %v", err)
	}
	if err := a.Show(); err != nil {
		log.Printf("[Demo] Show: %v", err)
	}

	game := &Game{
		agent:      a,
		surface:    surface,
		animations: handle.Catalog.Names(),
	}

	ebiten.SetWindowSize(screenWidth, screenHeight)
	ebiten.SetWindowTitle("屏幕助手演示 - Agent Demo")

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
