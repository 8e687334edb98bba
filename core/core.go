package core

import (
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// Instance describes a Vulkan instance and supporting methods.
// Once created it is ready to use.
type Instance interface {
	// PhysicalDevicesInfo returns a struct for each Physical Device
	// along with info about those devices
	PhysicalDevicesInfo() []PhysicalDeviceInfo

	// AvailableDevices returns handles of Physical Devices
	// from the Vulkan API
	AvailableDevices() []vk.PhysicalDevice

	// SelectDevice picks the physical device with the given index and
	// the first queue family on it that has graphics capability and a
	// non-zero queue count. First match wins, the selection is
	// deterministic rather than optimal.
	SelectDevice(index int) (vk.PhysicalDevice, uint32, error)

	// SetSurface sets the window surface for rendering
	SetSurface(unsafe.Pointer)

	// Surface returns the window surface, if it's not set
	// it should return a valid but empty surface
	Surface() vk.Surface

	// Extensions returns enabled instance extensions
	Extensions() []string

	// Instance returns the inner handle of the underlying API
	Instance() interface{}

	// Destroy destroys internal members
	Destroy()
}

// Renderer describes the rendering machinery.
// It's created only with internal values set,
// it needs to be initialised with Initialise() before use.
type Renderer interface {
	FramePump

	// Initialise sets up the configured rendering pipeline
	Initialise() error

	// Destroy destroys internal members. Safe to call when
	// initialisation failed part way, and safe to call twice.
	Destroy()
}

// FramePump is the per-frame contract of a renderer. One iteration of
// the frame loop is Acquire, Wait, Record, Submit, Present, in that
// order, all against the same frame slot. Any step may report
// ErrDeviceLost, which terminates the loop.
type FramePump interface {
	// AcquireImage blocks until the presentation engine hands out the
	// next image and returns its slot index. The acquire semaphore is
	// signaled on completion.
	AcquireImage() (uint32, error)

	// WaitFrame blocks on the slot's fence until the previous
	// submission that used the slot has finished executing, then
	// resets the fence. This wait is the only thing stopping the
	// slot's command buffer from being re-recorded while the device
	// still reads it.
	WaitFrame(slot uint32) error

	// RecordFrame resets and re-records the slot's command buffer
	RecordFrame(slot uint32) error

	// SubmitFrame submits the slot's command buffer to the graphics
	// queue, waiting on the acquire semaphore and signaling the render
	// semaphore and the slot's fence
	SubmitFrame(slot uint32) error

	// PresentFrame queues the slot's image for presentation, waiting
	// on the render semaphore
	PresentFrame(slot uint32) error
}

// Window is the windowing collaborator seen by the frame loop. The
// concrete implementation (SDL) lives with the binaries.
type Window interface {
	// PollEvents pumps the platform event queue
	PollEvents()

	// ShouldClose reports whether a close was requested
	ShouldClose() bool
}

// SurfaceSource produces the platform pieces the instance and the
// surface binder need from the windowing layer.
type SurfaceSource interface {
	// InstanceExtensions lists the instance extensions the platform
	// requires for presentation
	InstanceExtensions() []string

	// ProcAddr returns the vkGetInstanceProcAddr loader pointer,
	// nil to use the default loader
	ProcAddr() unsafe.Pointer

	// CreateSurface binds the window to a presentation surface on the
	// given API instance
	CreateSurface(instance interface{}) (unsafe.Pointer, error)
}

// PhysicalDeviceInfo describes available physical properties of a
// rendering device
type PhysicalDeviceInfo struct {
	ID            int
	VendorID      int
	DriverVersion int
	Name          string
	Invalid       bool
	Extensions    []string
	Layers        []string
	Memory        uint
}

// ShaderType represents the type of shader thats loaded
type ShaderType int

// Identifies shader objects with their types
const (
	VertexShaderType ShaderType = iota
	FragmentShaderType
	UnknownShaderType
)

// ShaderSource is an opaque precompiled SPIR-V blob together with the
// stage it belongs to. The core never compiles shaders, it only
// consumes bytecode produced elsewhere.
type ShaderSource struct {
	Name string
	Type ShaderType
	Data []byte
}

// Shader is a device-owned shader module
type Shader interface {
	// Type returns the stage of the shader
	Type() ShaderType

	// Name returns the name of the shader
	Name() string

	// ShaderModule is an accessor to the underlying module handle
	ShaderModule() interface{}

	// Destroy destroys internal members
	Destroy()
}
