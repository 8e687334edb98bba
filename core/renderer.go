package core

import (
	"math"
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// The probe renders with one fixed format and present mode. They are
// requirements, not preferences; surfaces that cannot do exactly this
// fail validation.
const (
	swapchainFormat      = vk.FormatB8g8r8a8Unorm
	swapchainPresentMode = vk.PresentModeFifo
)

// NewVulkanRenderer creates a not yet initialised Vulkan API renderer
func NewVulkanRenderer(instance Instance, cfg RendererConfiguration) (Renderer, error) {
	return &VulkanRenderer{
		configuration: cfg,
		instance:      instance,
		surface:       instance.Surface(),
		imageFormat:   swapchainFormat,
		presentMode:   swapchainPresentMode,
	}, nil
}

// VulkanRenderer is a Vulkan API renderer. It owns the logical device
// and, through it, every GPU resource below. All of them are created
// once in Initialise and destroyed once in Destroy; the steady-state
// loop creates nothing.
type VulkanRenderer struct {
	configuration RendererConfiguration

	instance Instance
	surface  vk.Surface

	physicalDevice vk.PhysicalDevice
	logicalDevice  vk.Device
	deviceQueue    vk.Queue

	graphicsQueueIndex uint32

	imageFormat vk.Format
	presentMode vk.PresentMode

	swapchain           vk.Swapchain
	swapchainImages     []vk.Image
	swapchainImageViews []vk.ImageView
	framebuffers        []vk.Framebuffer

	renderPass     vk.RenderPass
	pipelineLayout vk.PipelineLayout
	pipelineCache  vk.PipelineCache
	pipeline       vk.Pipeline
	shaders        []Shader

	commandPool    vk.CommandPool
	commandBuffers []vk.CommandBuffer
	fences         []vk.Fence

	acquireSemaphore vk.Semaphore
	renderSemaphore  vk.Semaphore
}

// Initialise implements interface. Resources come into existence in
// dependency order: device, surface compatibility, swapchain, render
// pass, pipeline, framebuffers, command buffers, synchronization. Any
// failure surfaces immediately; Destroy cleans up whatever exists.
func (v *VulkanRenderer) Initialise() error {
	physicalDevice, queueFamily, err := v.instance.SelectDevice(v.configuration.DeviceIndex)
	if err != nil {
		return err
	}
	v.physicalDevice = physicalDevice
	v.graphicsQueueIndex = queueFamily

	if err := validatePresentSupport(v.physicalDevice, v.graphicsQueueIndex, v.surface); err != nil {
		return err
	}

	device, queue, err := CreateLogicalDevice(v.physicalDevice, v.graphicsQueueIndex, v.configuration.DeviceExtensions)
	if err != nil {
		return err
	}
	v.logicalDevice = device
	v.deviceQueue = queue

	if err := v.createSwapchain(); err != nil {
		return err
	}

	if err := v.createImageViews(); err != nil {
		return err
	}

	if err := v.createRenderPass(); err != nil {
		return err
	}

	if err := v.createFramebuffers(); err != nil {
		return err
	}

	if err := v.loadShaders(); err != nil {
		return err
	}

	if err := v.createPipelineLayout(); err != nil {
		return err
	}

	if err := v.createPipelineCache(); err != nil {
		return err
	}

	if err := v.createPipeline(); err != nil {
		return err
	}

	if err := v.createCommandPool(); err != nil {
		return err
	}

	if err := v.allocateCommandBuffers(); err != nil {
		return err
	}

	if err := v.createSynchronization(); err != nil {
		return err
	}

	return nil
}

// waitNanos is the timeout for every host-blocking wait. The default
// is an infinite wait, which is the condition the original hang was
// observed under; WaitTimeout bounds it when reproduction semantics
// are not wanted.
func (v *VulkanRenderer) waitNanos() uint64 {
	if v.configuration.WaitTimeout == 0 {
		return math.MaxUint64
	}
	return uint64(v.configuration.WaitTimeout.Nanoseconds())
}

// WaitTimeout exposes the configured bound, mostly for logging.
func (v *VulkanRenderer) WaitTimeout() time.Duration {
	return v.configuration.WaitTimeout
}

// Destroy implements interface. Teardown reverses creation order and
// suppresses every error: a lost device may reject or fault any of
// these calls and teardown must still complete so a recovery attempt
// can proceed. Calling Destroy twice, or on a renderer that never
// finished Initialise, is a no-op for the parts that do not exist.
func (v *VulkanRenderer) Destroy() {
	if v.logicalDevice == nil {
		return
	}

	// The wait-idle on a lost device is exactly the call most likely
	// to misbehave, so it runs in its own protected region.
	func() {
		defer func() { _ = recover() }()
		vk.DeviceWaitIdle(v.logicalDevice)
	}()

	func() {
		defer func() { _ = recover() }()

		if v.acquireSemaphore != vk.NullSemaphore {
			vk.DestroySemaphore(v.logicalDevice, v.acquireSemaphore, nil)
		}
		if v.renderSemaphore != vk.NullSemaphore {
			vk.DestroySemaphore(v.logicalDevice, v.renderSemaphore, nil)
		}
		for _, fence := range v.fences {
			vk.DestroyFence(v.logicalDevice, fence, nil)
		}

		if v.commandPool != vk.NullCommandPool {
			vk.DestroyCommandPool(v.logicalDevice, v.commandPool, nil)
		}

		if v.pipeline != vk.NullPipeline {
			vk.DestroyPipeline(v.logicalDevice, v.pipeline, nil)
		}
		if v.pipelineCache != vk.NullPipelineCache {
			vk.DestroyPipelineCache(v.logicalDevice, v.pipelineCache, nil)
		}
		if v.pipelineLayout != vk.NullPipelineLayout {
			vk.DestroyPipelineLayout(v.logicalDevice, v.pipelineLayout, nil)
		}
		for _, shader := range v.shaders {
			shader.Destroy()
		}

		for _, framebuffer := range v.framebuffers {
			vk.DestroyFramebuffer(v.logicalDevice, framebuffer, nil)
		}
		if v.renderPass != vk.NullRenderPass {
			vk.DestroyRenderPass(v.logicalDevice, v.renderPass, nil)
		}

		for _, imageView := range v.swapchainImageViews {
			vk.DestroyImageView(v.logicalDevice, imageView, nil)
		}
		if v.swapchain != vk.NullSwapchain {
			vk.DestroySwapchain(v.logicalDevice, v.swapchain, nil)
		}

		vk.DestroyDevice(v.logicalDevice, nil)
	}()

	v.acquireSemaphore = vk.NullSemaphore
	v.renderSemaphore = vk.NullSemaphore
	v.fences = nil
	v.commandBuffers = nil
	v.commandPool = vk.NullCommandPool
	v.pipeline = vk.NullPipeline
	v.pipelineCache = vk.NullPipelineCache
	v.pipelineLayout = vk.NullPipelineLayout
	v.shaders = nil
	v.framebuffers = nil
	v.renderPass = vk.NullRenderPass
	v.swapchainImageViews = nil
	v.swapchainImages = nil
	v.swapchain = vk.NullSwapchain
	v.logicalDevice = nil
	v.deviceQueue = nil
}
