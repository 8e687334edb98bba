package core

import (
	"errors"
	"math"
	"testing"
	"time"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// stubInstance satisfies Instance without touching the Vulkan loader,
// for exercising renderer paths that never reach the device.
type stubInstance struct{}

func (stubInstance) PhysicalDevicesInfo() []PhysicalDeviceInfo { return nil }
func (stubInstance) AvailableDevices() []vk.PhysicalDevice     { return nil }
func (stubInstance) SetSurface(unsafe.Pointer)                 {}
func (stubInstance) Surface() vk.Surface                       { return vk.NullSurface }
func (stubInstance) Extensions() []string                      { return nil }
func (stubInstance) Instance() interface{}                     { return nil }
func (stubInstance) Destroy()                                  {}

func (stubInstance) SelectDevice(int) (vk.PhysicalDevice, uint32, error) {
	return nil, 0, ErrNoSuitableDevice
}

func TestRendererDestroyBeforeInitialise(t *testing.T) {
	renderer, err := NewVulkanRenderer(stubInstance{}, RendererConfiguration{})
	if err != nil {
		t.Fatal(err)
	}

	// Nothing was created, both calls must be clean no-ops.
	renderer.Destroy()
	renderer.Destroy()
}

func TestProbePassDestroyBeforeInitialise(t *testing.T) {
	pass := NewProbePass(Configuration{}, &countingWindow{}, nil)
	pass.Destroy()
	pass.Destroy()
}

func TestLoadShadersRequiresBytecode(t *testing.T) {
	renderer := &VulkanRenderer{}
	err := renderer.loadShaders()
	if !errors.Is(err, ErrPipelineCompilationFailed) {
		t.Errorf("expected ErrPipelineCompilationFailed for an empty shader set, got %v", err)
	}
}

func TestWaitNanos(t *testing.T) {
	unbounded := &VulkanRenderer{}
	if unbounded.waitNanos() != math.MaxUint64 {
		t.Error("zero timeout must mean an infinite wait")
	}

	bounded := &VulkanRenderer{configuration: RendererConfiguration{WaitTimeout: 5 * time.Second}}
	if bounded.waitNanos() != uint64(5*time.Second) {
		t.Errorf("unexpected bounded wait %d", bounded.waitNanos())
	}
}
