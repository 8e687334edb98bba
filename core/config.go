package core

import (
	"time"

	"github.com/go-gl/mathgl/mgl32"
)

// Configuration defines a global probe configuration setting
type Configuration struct {
	Time     TimeConfiguration
	Instance InstanceConfiguration
	Renderer RendererConfiguration
}

// TimeConfiguration is used to configure time services
type TimeConfiguration struct {
	// FramesPerSecond caps frames per second that is put out.
	// To unlimit, set to 0
	FramesPerSecond int
}

// InstanceConfiguration is used to configure the Vulkan instance
type InstanceConfiguration struct {
	DebugMode  bool
	Extensions []string
	Layers     []string
}

// RendererConfiguration is used to configure the renderer
type RendererConfiguration struct {
	SwapchainSize    uint32
	DeviceExtensions []string

	ScreenWidth  uint32
	ScreenHeight uint32

	// DeviceIndex pins the physical device to use. Selection within
	// the device stays first-match on queue families either way.
	DeviceIndex int

	// ClearColor is the fixed color the render pass clears to
	ClearColor mgl32.Vec4

	// WaitTimeout bounds every host-blocking wait (fence wait, image
	// acquire, queue idle). Zero means wait forever, which is the
	// condition the original device-loss hang was observed under, so
	// it is the default.
	WaitTimeout time.Duration

	// Shaders are the precompiled SPIR-V stages fed to the pipeline
	Shaders []ShaderSource
}
