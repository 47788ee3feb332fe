// Command squaresdemo is the reference outer shell spec.md places out
// of scope: a real GLFW window, a real 2D OpenGL raster surface, real
// pointer callbacks, and golang.org/x/image/colornames supplying the
// square palette. It wires internal/engine against the core package
// the same way cmd/mini-mc wires internal/game against the voxel core.
package main

import (
	"context"
	"flag"
	"fmt"
	"image/color"
	"log"
	"runtime"
	"time"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"golang.org/x/image/colornames"

	"squareengine/internal/canvas"
	"squareengine/internal/clock"
	"squareengine/internal/config"
	"squareengine/internal/engine"
	"squareengine/internal/scheduler"
	"squareengine/internal/store"
	"squareengine/internal/track"
)

const (
	winW = 900
	winH = 600
)

func init() { runtime.LockOSThread() }

var palette = []string{
	"crimson", "royalblue", "goldenrod", "forestgreen", "darkorchid",
	"darkorange", "teal", "deeppink", "slategray", "lightseagreen",
}

func main() {
	objectCount := flag.Int("objects", 200, "number of squares to animate")
	dbPath := flag.String("db", "", "LevelDB path for chunk persistence (empty: in-memory)")
	flag.Parse()

	if err := glfw.Init(); err != nil {
		log.Fatalf("glfw.Init: %v", err)
	}
	defer glfw.Terminate()

	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 2)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)

	window, err := glfw.CreateWindow(winW, winH, "squaresdemo", nil, nil)
	if err != nil {
		log.Fatalf("glfw.CreateWindow: %v", err)
	}
	window.MakeContextCurrent()
	if err := gl.Init(); err != nil {
		log.Fatalf("gl.Init: %v", err)
	}
	glfw.SwapInterval(1)

	surface, err := newGLRasterSurface(window)
	if err != nil {
		log.Fatalf("newGLRasterSurface: %v", err)
	}

	backend, closeBackend, err := openBackend(*dbPath)
	if err != nil {
		log.Fatalf("openBackend: %v", err)
	}
	defer closeBackend()

	ctx := context.Background()
	totalDuration := float64(config.GetTrackKeyframeDensity()) * float64(config.GetChunkDuration())
	eng, err := engine.New(ctx, surface, consoleHitIndexSink{}, backend, totalDuration, clock.NewSystem())
	if err != nil {
		log.Fatalf("engine.New: %v", err)
	}

	if err := populate(ctx, eng, *objectCount); err != nil {
		log.Fatalf("populate: %v", err)
	}

	pointerSource := newGLFWPointerSource(window)
	pointerSource.OnPointer(eng.HandlePointer)

	repaintHostImpl := &repaintHost{}
	intervalHostImpl := &intervalHost{}

	scheduler.NewFrameLoop(repaintHostImpl, func() {
		eng.Enqueue(eng.NextRepaintTask())
	})
	scheduler.NewIntervalLoop(intervalHostImpl, int64(config.GetFetchInterval()), func() {
		eng.Enqueue(engine.FetchDataTask())
	})

	for !window.ShouldClose() {
		glfw.PollEvents()
		now := time.Now()
		intervalHostImpl.Tick(now)
		repaintHostImpl.Drain()
		eng.Drain(ctx)
		window.SwapBuffers()
	}
}

func openBackend(path string) (store.Backend, func(), error) {
	if path == "" {
		return store.NewMemoryBackend(), func() {}, nil
	}
	db, err := store.OpenLevelDBBackend(path)
	if err != nil {
		return nil, nil, err
	}
	return db, func() { _ = db.Close() }, nil
}

func populate(ctx context.Context, eng *engine.Engine, n int) error {
	size := config.GetDefaultSize()
	totalDuration := float64(config.GetTrackKeyframeDensity()) * float64(config.GetChunkDuration())
	for i := 0; i < n; i++ {
		col := paletteColor(i)
		pattern := track.NewRandomWalkPattern(int64(i)+1, float32(winW), 10)
		if _, err := eng.AddObject(ctx, pattern, size, col, totalDuration); err != nil {
			return fmt.Errorf("object %d: %w", i, err)
		}
	}
	return nil
}

func paletteColor(i int) color.RGBA {
	name := palette[i%len(palette)]
	return colornames.Map[name]
}

var _ canvas.RepaintScheduler = (*repaintHost)(nil)
var _ canvas.IntervalScheduler = (*intervalHost)(nil)
