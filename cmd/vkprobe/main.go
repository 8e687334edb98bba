package main

import (
	"errors"
	"os"
	"runtime"
	"unsafe"

	"github.com/gobuffalo/packr"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	"github.com/veandco/go-sdl2/sdl"

	"github.com/devblok/vkprobe/core"
)

func init() {
	runtime.LockOSThread()
}

//go:generate glslangValidator -V shaders/triangle.vert -o shaders/triangle.vert.spv
//go:generate glslangValidator -V shaders/triangle.frag -o shaders/triangle.frag.spv

// shaderBox carries the precompiled triangle pair so the probe runs
// without any shader files on disk. The .spv blobs come from the
// go:generate lines above; see shaders/ for the GLSL sources.
var shaderBox = packr.NewBox("./shaders")

func main() {
	os.Exit(run())
}

func run() int {
	// A .env is optional, the environment itself always wins
	_ = godotenv.Load()

	cfg, err := core.FromEnv()
	if err != nil {
		log.Error(err)
		return 1
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		log.Error("sdl.Init(): ", err)
		return 1
	}
	defer sdl.Quit()

	if err := sdl.VulkanLoadLibrary(""); err != nil {
		log.Error("sdl.VulkanLoadLibrary(): ", err)
		return 1
	}
	defer sdl.VulkanUnloadLibrary()

	shaders, err := loadShaders()
	if err != nil {
		log.Error("shader bytecode: ", err)
		return 1
	}
	cfg.Renderer.Shaders = shaders

	window, err := newWindow(cfg.Renderer)
	if err != nil {
		log.Error("sdl.CreateWindow(): ", err)
		return 1
	}
	defer window.destroy()

	// The windowing layer stays up across both passes, only
	// device-level state is rebuilt by the recovery pass.
	newPass := func() core.Pass {
		return core.NewProbePass(cfg, window, window)
	}

	outcome := core.RunRecovery(newPass)
	switch {
	case outcome.FirstErr != nil:
		log.Error("error occurred: ", outcome.FirstErr)
		return 1
	case outcome.RecoveryErr != nil:
		log.Error(outcome.RecoveryErr)
		return 1
	case outcome.Recovered():
		log.Info("re-initialization successful")
		return 0
	}
	log.WithField("frames", outcome.Frames).Info("clean shutdown")
	return 0
}

// loadShaders resolves the shader bytecode collaborator: an explicit
// spak bundle wins, then a directory of .spv files, then the embedded
// defaults.
func loadShaders() ([]core.ShaderSource, error) {
	if pack := core.ShaderPackFromEnv(); pack != "" {
		return core.LoadShaderPack(pack)
	}
	if dir := core.ShaderDirFromEnv(); dir != "" {
		return core.LoadShaderDir(dir)
	}

	var sources []core.ShaderSource
	for _, name := range shaderBox.List() {
		base, shaderType := core.ShaderTypeFromName(name)
		if shaderType == core.UnknownShaderType {
			continue
		}
		data, err := shaderBox.Find(name)
		if err != nil {
			return nil, err
		}
		sources = append(sources, core.ShaderSource{
			Name: base,
			Type: shaderType,
			Data: data,
		})
	}
	if len(sources) == 0 {
		return nil, errors.New("no .spv bytecode embedded, run go generate ./cmd/vkprobe or set " +
			core.EnvShaderDir + " / " + core.EnvShaderPack)
	}
	return sources, nil
}

// newWindow creates the probe window and wraps it for the core: it is
// both the Window the frame loop polls and the SurfaceSource the
// surface binder consumes.
func newWindow(cfg core.RendererConfiguration) (*probeWindow, error) {
	window, err := sdl.CreateWindow("vkprobe",
		sdl.WINDOWPOS_UNDEFINED,
		sdl.WINDOWPOS_UNDEFINED,
		int32(cfg.ScreenWidth),
		int32(cfg.ScreenHeight),
		sdl.WINDOW_VULKAN)
	if err != nil {
		return nil, err
	}
	return &probeWindow{window: window}, nil
}

type probeWindow struct {
	window *sdl.Window
	closed bool
}

// PollEvents implements core.Window. Escape and the window close
// button both request loop exit; the request is honored between
// frames, never mid-frame.
func (w *probeWindow) PollEvents() {
	for event := sdl.PollEvent(); event != nil; event = sdl.PollEvent() {
		switch et := event.(type) {
		case *sdl.KeyboardEvent:
			if et.Keysym.Sym == sdl.K_ESCAPE {
				w.closed = true
			}
		case *sdl.QuitEvent:
			w.closed = true
		}
	}
}

// ShouldClose implements core.Window
func (w *probeWindow) ShouldClose() bool {
	return w.closed
}

// InstanceExtensions implements core.SurfaceSource
func (w *probeWindow) InstanceExtensions() []string {
	return w.window.VulkanGetInstanceExtensions()
}

// ProcAddr implements core.SurfaceSource
func (w *probeWindow) ProcAddr() unsafe.Pointer {
	return sdl.VulkanGetVkGetInstanceProcAddr()
}

// CreateSurface implements core.SurfaceSource
func (w *probeWindow) CreateSurface(instance interface{}) (unsafe.Pointer, error) {
	return w.window.VulkanCreateSurface(instance)
}

func (w *probeWindow) destroy() {
	if w.window != nil {
		_ = w.window.Destroy()
		w.window = nil
	}
}
