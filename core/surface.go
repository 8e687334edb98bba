package core

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// SetSurface implements interface. The surface itself is created by
// the windowing layer (SDL owns the platform binding), the instance
// only adopts and later destroys it.
func (v *VulkanInstance) SetSurface(pSurface unsafe.Pointer) {
	v.surface = vk.SurfaceFromPointer(uintptr(pSurface))
}

// Surface implements interface
func (v VulkanInstance) Surface() vk.Surface {
	if v.surface == nil {
		return vk.NullSurface
	}
	return v.surface
}

// BindSurface adopts the platform surface produced by src onto the
// instance and verifies the selected queue family can present to it.
// A surface that exists but cannot present is a creation failure, not
// a degraded-but-usable state.
func BindSurface(instance Instance, src SurfaceSource, physicalDevice vk.PhysicalDevice, queueFamily uint32) (vk.Surface, error) {
	pSurface, err := src.CreateSurface(instance.Instance())
	if err != nil {
		return vk.NullSurface, fmt.Errorf("%s: %w", err.Error(), ErrSurfaceCreationFailed)
	}
	instance.SetSurface(pSurface)
	surface := instance.Surface()

	if err := validatePresentSupport(physicalDevice, queueFamily, surface); err != nil {
		return vk.NullSurface, err
	}
	return surface, nil
}

func validatePresentSupport(physicalDevice vk.PhysicalDevice, queueFamily uint32, surface vk.Surface) error {
	var supported vk.Bool32
	ret := vk.GetPhysicalDeviceSurfaceSupport(physicalDevice, queueFamily, surface, &supported)
	if err := vk.Error(ret); err != nil {
		return fmt.Errorf("vk.GetPhysicalDeviceSurfaceSupport(): %s: %w", err.Error(), ErrSurfaceCreationFailed)
	}
	if !supported.B() {
		return fmt.Errorf("queue family %d cannot present to the surface: %w", queueFamily, ErrSurfaceCreationFailed)
	}
	return nil
}
