package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// SurfaceSettings is a plain snapshot of what the surface supports,
// pulled out of the vk structs so the validation predicates can run
// without a device in reach.
type SurfaceSettings struct {
	CurrentWidth  uint32
	CurrentHeight uint32

	// MinImageCount and MaxImageCount bound the swapchain size,
	// MaxImageCount 0 means unbounded
	MinImageCount uint32
	MaxImageCount uint32

	// SupportsColorAttachment reports whether swapchain images may be
	// rendered to as color attachments
	SupportsColorAttachment bool

	// Formats are the supported surface formats. A single
	// vk.FormatUndefined entry means any format is acceptable.
	Formats []vk.Format

	PresentModes []vk.PresentMode
}

// SwapchainRequirements are the fixed parameters the probe demands.
// There is deliberately no fallback path anywhere: the probe verifies
// conformance, it does not adapt.
type SwapchainRequirements struct {
	Width       uint32
	Height      uint32
	ImageCount  uint32
	Format      vk.Format
	PresentMode vk.PresentMode
}

// ReadSurfaceSettings snapshots the surface capabilities, formats and
// present modes for the given device/surface pair.
func ReadSurfaceSettings(physicalDevice vk.PhysicalDevice, surface vk.Surface) (SurfaceSettings, error) {
	var settings SurfaceSettings

	var capabilities vk.SurfaceCapabilities
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceCapabilities(physicalDevice, surface, &capabilities)); err != nil {
		return settings, fmt.Errorf("vk.GetPhysicalDeviceSurfaceCapabilities(): %s", err.Error())
	}
	capabilities.Deref()
	capabilities.CurrentExtent.Deref()

	settings.CurrentWidth = capabilities.CurrentExtent.Width
	settings.CurrentHeight = capabilities.CurrentExtent.Height
	settings.MinImageCount = capabilities.MinImageCount
	settings.MaxImageCount = capabilities.MaxImageCount
	settings.SupportsColorAttachment =
		capabilities.SupportedUsageFlags&vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit) != 0

	var formatCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, nil)); err != nil {
		return settings, fmt.Errorf("vk.GetPhysicalDeviceSurfaceFormats(): %s", err.Error())
	}
	surfaceFormats := make([]vk.SurfaceFormat, formatCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfaceFormats(physicalDevice, surface, &formatCount, surfaceFormats)); err != nil {
		return settings, fmt.Errorf("vk.GetPhysicalDeviceSurfaceFormats(): %s", err.Error())
	}
	for _, surfaceFormat := range surfaceFormats {
		surfaceFormat.Deref()
		settings.Formats = append(settings.Formats, surfaceFormat.Format)
	}

	var modeCount uint32
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &modeCount, nil)); err != nil {
		return settings, fmt.Errorf("vk.GetPhysicalDeviceSurfacePresentModes(): %s", err.Error())
	}
	modes := make([]vk.PresentMode, modeCount)
	if err := vk.Error(vk.GetPhysicalDeviceSurfacePresentModes(physicalDevice, surface, &modeCount, modes)); err != nil {
		return settings, fmt.Errorf("vk.GetPhysicalDeviceSurfacePresentModes(): %s", err.Error())
	}
	settings.PresentModes = modes

	return settings, nil
}

// Validate checks every swapchain precondition against the snapshot.
// Each violation fails immediately with ErrUnsupportedConfiguration
// wrapped in a description of the predicate that failed. Nothing is
// created before all predicates hold.
func (s SurfaceSettings) Validate(req SwapchainRequirements) error {
	if req.Width != s.CurrentWidth || req.Height != s.CurrentHeight {
		return fmt.Errorf("requested extent %dx%d does not equal surface extent %dx%d: %w",
			req.Width, req.Height, s.CurrentWidth, s.CurrentHeight, ErrUnsupportedConfiguration)
	}
	if req.ImageCount < s.MinImageCount {
		return fmt.Errorf("requested image count %d below surface minimum %d: %w",
			req.ImageCount, s.MinImageCount, ErrUnsupportedConfiguration)
	}
	if s.MaxImageCount != 0 && req.ImageCount > s.MaxImageCount {
		return fmt.Errorf("requested image count %d above surface maximum %d: %w",
			req.ImageCount, s.MaxImageCount, ErrUnsupportedConfiguration)
	}
	if !s.SupportsColorAttachment {
		return fmt.Errorf("surface cannot be used as color attachment: %w", ErrUnsupportedConfiguration)
	}

	formatFound := false
	for _, format := range s.Formats {
		if format == vk.FormatUndefined || format == req.Format {
			formatFound = true
			break
		}
	}
	if !formatFound {
		return fmt.Errorf("surface does not support format %d: %w", req.Format, ErrUnsupportedConfiguration)
	}

	for _, mode := range s.PresentModes {
		if mode == req.PresentMode {
			return nil
		}
	}
	return fmt.Errorf("surface does not support present mode %d: %w", req.PresentMode, ErrUnsupportedConfiguration)
}

// createSwapchain validates the fixed requirements against the surface
// and creates the swapchain and its images. The image count is fixed
// at construction and never resized.
func (v *VulkanRenderer) createSwapchain() error {
	settings, err := ReadSurfaceSettings(v.physicalDevice, v.surface)
	if err != nil {
		return err
	}

	requirements := SwapchainRequirements{
		Width:       v.configuration.ScreenWidth,
		Height:      v.configuration.ScreenHeight,
		ImageCount:  v.configuration.SwapchainSize,
		Format:      v.imageFormat,
		PresentMode: v.presentMode,
	}
	if err := settings.Validate(requirements); err != nil {
		return err
	}

	scci := vk.SwapchainCreateInfo{
		SType:            vk.StructureTypeSwapchainCreateInfo,
		Surface:          v.surface,
		MinImageCount:    requirements.ImageCount,
		ImageFormat:      requirements.Format,
		ImageColorSpace:  vk.ColorSpaceSrgbNonlinear,
		ImageExtent: vk.Extent2D{
			Width:  requirements.Width,
			Height: requirements.Height,
		},
		ImageUsage:       vk.ImageUsageFlags(vk.ImageUsageColorAttachmentBit),
		PreTransform:     vk.SurfaceTransformIdentityBit,
		CompositeAlpha:   vk.CompositeAlphaOpaqueBit,
		PresentMode:      requirements.PresentMode,
		Clipped:          vk.True,
		ImageArrayLayers: 1,
		ImageSharingMode: vk.SharingModeExclusive,
	}

	var swapchain vk.Swapchain
	if err := resultErr("vk.CreateSwapchain()", vk.CreateSwapchain(v.logicalDevice, &scci, nil, &swapchain)); err != nil {
		return err
	}
	v.swapchain = swapchain

	var numImages uint32
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, nil)); err != nil {
		return fmt.Errorf("vk.GetSwapchainImages(num): %s", err.Error())
	}
	v.swapchainImages = make([]vk.Image, numImages)
	if err := vk.Error(vk.GetSwapchainImages(v.logicalDevice, v.swapchain, &numImages, v.swapchainImages)); err != nil {
		return fmt.Errorf("vk.GetSwapchainImages(images): %s", err.Error())
	}
	return nil
}

// createImageViews makes one 2D color view per swapchain image,
// single mip level, single array layer.
func (v *VulkanRenderer) createImageViews() error {
	for idx := 0; idx < len(v.swapchainImages); idx++ {
		ivci := vk.ImageViewCreateInfo{
			SType:    vk.StructureTypeImageViewCreateInfo,
			Image:    v.swapchainImages[idx],
			ViewType: vk.ImageViewType2d,
			Format:   v.imageFormat,
			SubresourceRange: vk.ImageSubresourceRange{
				AspectMask: vk.ImageAspectFlags(vk.ImageAspectColorBit),
				LevelCount: 1,
				LayerCount: 1,
			},
		}

		var imageView vk.ImageView
		if err := resultErr(fmt.Sprintf("vk.CreateImageView()[%d]", idx), vk.CreateImageView(v.logicalDevice, &ivci, nil, &imageView)); err != nil {
			return err
		}
		v.swapchainImageViews = append(v.swapchainImageViews, imageView)
	}
	return nil
}
