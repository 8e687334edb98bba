package core

import (
	vk "github.com/vulkan-go/vulkan"
)

// createCommandPool makes the pool the frame slots allocate from. The
// reset bit is required: each slot's buffer is individually
// re-recorded every frame, the pool as a whole is never reset.
func (v *VulkanRenderer) createCommandPool() error {
	cpci := vk.CommandPoolCreateInfo{
		SType:            vk.StructureTypeCommandPoolCreateInfo,
		QueueFamilyIndex: v.graphicsQueueIndex,
		Flags:            vk.CommandPoolCreateFlags(vk.CommandPoolCreateResetCommandBufferBit),
	}

	var commandPool vk.CommandPool
	if err := resultErr("vk.CreateCommandPool()", vk.CreateCommandPool(v.logicalDevice, &cpci, nil, &commandPool)); err != nil {
		return err
	}
	v.commandPool = commandPool
	return nil
}

// allocateCommandBuffers allocates one primary command buffer per
// swapchain image.
func (v *VulkanRenderer) allocateCommandBuffers() error {
	cbai := vk.CommandBufferAllocateInfo{
		SType:              vk.StructureTypeCommandBufferAllocateInfo,
		CommandPool:        v.commandPool,
		Level:              vk.CommandBufferLevelPrimary,
		CommandBufferCount: uint32(len(v.swapchainImages)),
	}

	commandBuffers := make([]vk.CommandBuffer, len(v.swapchainImages))
	if err := resultErr("vk.AllocateCommandBuffers()", vk.AllocateCommandBuffers(v.logicalDevice, &cbai, commandBuffers)); err != nil {
		return err
	}
	v.commandBuffers = commandBuffers
	return nil
}

// signaledFenceInfo is the create info every frame-slot fence is made
// with. The signaled initial state matters: the very first WaitFrame
// on each slot happens before anything was ever submitted, and an
// unsignaled fence would park the loop forever.
func signaledFenceInfo() vk.FenceCreateInfo {
	return vk.FenceCreateInfo{
		SType: vk.StructureTypeFenceCreateInfo,
		Flags: vk.FenceCreateFlags(vk.FenceCreateSignaledBit),
	}
}

// createSynchronization makes one fence per frame slot plus the single
// acquire/render semaphore pair shared across all slots. The pair
// orders acquisition, rendering and presentation entirely on the
// device timeline.
func (v *VulkanRenderer) createSynchronization() error {
	fci := signaledFenceInfo()
	for range v.swapchainImages {
		var fence vk.Fence
		if err := resultErr("vk.CreateFence()", vk.CreateFence(v.logicalDevice, &fci, nil, &fence)); err != nil {
			return err
		}
		v.fences = append(v.fences, fence)
	}

	sci := vk.SemaphoreCreateInfo{
		SType: vk.StructureTypeSemaphoreCreateInfo,
	}

	var acquireSemaphore, renderSemaphore vk.Semaphore
	if err := resultErr("vk.CreateSemaphore()", vk.CreateSemaphore(v.logicalDevice, &sci, nil, &acquireSemaphore)); err != nil {
		return err
	}
	if err := resultErr("vk.CreateSemaphore()", vk.CreateSemaphore(v.logicalDevice, &sci, nil, &renderSemaphore)); err != nil {
		return err
	}

	v.acquireSemaphore = acquireSemaphore
	v.renderSemaphore = renderSemaphore
	return nil
}
