package core

import (
	"testing"
	"time"

	"github.com/gobuffalo/envy"
)

func TestFromEnvDefaults(t *testing.T) {
	envy.Temp(func() {
		for _, key := range []string{EnvWidth, EnvHeight, EnvFPS, EnvSwapchainSize, EnvDeviceIndex, EnvWaitTimeout, EnvDebug} {
			envy.Set(key, "")
		}

		cfg, err := FromEnv()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Renderer.ScreenWidth != 1280 || cfg.Renderer.ScreenHeight != 720 {
			t.Errorf("unexpected default extent %dx%d", cfg.Renderer.ScreenWidth, cfg.Renderer.ScreenHeight)
		}
		if cfg.Renderer.SwapchainSize != 2 {
			t.Errorf("unexpected default swapchain size %d", cfg.Renderer.SwapchainSize)
		}
		if cfg.Renderer.DeviceIndex != 0 {
			t.Errorf("unexpected default device index %d", cfg.Renderer.DeviceIndex)
		}
		if cfg.Renderer.WaitTimeout != 0 {
			t.Errorf("default wait timeout must be unbounded, got %v", cfg.Renderer.WaitTimeout)
		}
		if cfg.Renderer.ClearColor != [4]float32{0, 0, 1, 1} {
			t.Errorf("unexpected default clear color %v", cfg.Renderer.ClearColor)
		}
		if cfg.Instance.DebugMode {
			t.Error("debug mode on by default")
		}
	})
}

func TestFromEnvOverrides(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvWidth, "1920")
		envy.Set(EnvHeight, "1080")
		envy.Set(EnvSwapchainSize, "3")
		envy.Set(EnvDeviceIndex, "1")
		envy.Set(EnvFPS, "60")
		envy.Set(EnvWaitTimeout, "5s")
		envy.Set(EnvDebug, "true")

		cfg, err := FromEnv()
		if err != nil {
			t.Fatal(err)
		}
		if cfg.Renderer.ScreenWidth != 1920 || cfg.Renderer.ScreenHeight != 1080 {
			t.Errorf("unexpected extent %dx%d", cfg.Renderer.ScreenWidth, cfg.Renderer.ScreenHeight)
		}
		if cfg.Renderer.SwapchainSize != 3 {
			t.Errorf("unexpected swapchain size %d", cfg.Renderer.SwapchainSize)
		}
		if cfg.Renderer.DeviceIndex != 1 {
			t.Errorf("unexpected device index %d", cfg.Renderer.DeviceIndex)
		}
		if cfg.Time.FramesPerSecond != 60 {
			t.Errorf("unexpected fps %d", cfg.Time.FramesPerSecond)
		}
		if cfg.Renderer.WaitTimeout != 5*time.Second {
			t.Errorf("unexpected wait timeout %v", cfg.Renderer.WaitTimeout)
		}
		if !cfg.Instance.DebugMode {
			t.Error("debug mode not picked up")
		}
	})
}

func TestFromEnvRejectsGarbage(t *testing.T) {
	envy.Temp(func() {
		envy.Set(EnvWidth, "wide")
		if _, err := FromEnv(); err == nil {
			t.Error("non-numeric width accepted")
		}
	})

	envy.Temp(func() {
		envy.Set(EnvWaitTimeout, "soonish")
		if _, err := FromEnv(); err == nil {
			t.Error("unparseable timeout accepted")
		}
	})
}
