package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/gobuffalo/envy"
)

// Environment variables understood by FromEnv. All of them are
// optional, the defaults reproduce the original probe setup: a
// 1280x720 window, double buffering, blue clear color and unbounded
// waits.
const (
	EnvWidth         = "VKPROBE_WIDTH"
	EnvHeight        = "VKPROBE_HEIGHT"
	EnvFPS           = "VKPROBE_FPS"
	EnvSwapchainSize = "VKPROBE_SWAPCHAIN_SIZE"
	EnvDeviceIndex   = "VKPROBE_DEVICE_INDEX"
	EnvWaitTimeout   = "VKPROBE_WAIT_TIMEOUT"
	EnvShaderDir     = "VKPROBE_SHADER_DIR"
	EnvShaderPack    = "VKPROBE_SHADER_PACK"
	EnvDebug         = "VKPROBE_DEBUG"
)

// FromEnv builds a Configuration from the process environment.
// Shader sources are not loaded here, the shader collaborator does
// that with the paths from ShaderDirFromEnv and ShaderPackFromEnv.
func FromEnv() (Configuration, error) {
	cfg := Configuration{
		Renderer: RendererConfiguration{
			SwapchainSize: 2,
			DeviceExtensions: []string{
				"VK_KHR_swapchain\x00",
			},
			ClearColor: mgl32.Vec4{0, 0, 1, 1},
		},
	}

	width, err := envUint(EnvWidth, 1280)
	if err != nil {
		return cfg, err
	}
	height, err := envUint(EnvHeight, 720)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.ScreenWidth = width
	cfg.Renderer.ScreenHeight = height

	size, err := envUint(EnvSwapchainSize, 2)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.SwapchainSize = size

	fps, err := envInt(EnvFPS, 0)
	if err != nil {
		return cfg, err
	}
	cfg.Time.FramesPerSecond = fps

	index, err := envInt(EnvDeviceIndex, 0)
	if err != nil {
		return cfg, err
	}
	cfg.Renderer.DeviceIndex = index

	if raw := envy.Get(EnvWaitTimeout, ""); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %s", EnvWaitTimeout, err.Error())
		}
		cfg.Renderer.WaitTimeout = timeout
	}

	if raw := envy.Get(EnvDebug, ""); raw != "" {
		debug, err := strconv.ParseBool(raw)
		if err != nil {
			return cfg, fmt.Errorf("%s: %s", EnvDebug, err.Error())
		}
		cfg.Instance.DebugMode = debug
	}

	return cfg, nil
}

// ShaderDirFromEnv returns the configured shader directory, empty when
// unset.
func ShaderDirFromEnv() string {
	return envy.Get(EnvShaderDir, "")
}

// ShaderPackFromEnv returns the configured shader bundle path, empty
// when unset.
func ShaderPackFromEnv() string {
	return envy.Get(EnvShaderPack, "")
}

func envUint(key string, def uint32) (uint32, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return def, fmt.Errorf("%s: %s", key, err.Error())
	}
	return uint32(parsed), nil
}

func envInt(key string, def int) (int, error) {
	raw := envy.Get(key, "")
	if raw == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(raw)
	if err != nil {
		return def, fmt.Errorf("%s: %s", key, err.Error())
	}
	return parsed, nil
}
