package core

import (
	"time"

	vk "github.com/vulkan-go/vulkan"
)

// RunLoop is the steady-state frame loop. Per iteration it polls the
// window, checks for a close request (only here, never mid-frame),
// then drives one frame slot through acquire, wait, record, submit,
// present. Any error from the pump terminates the loop and propagates
// upward unretried; device loss in particular is the recovery
// controller's job, not the loop's.
//
// A non-nil ticker paces the iterations; the loop makes no other
// attempt at frame timing. The returned count is the number of fully
// presented frames.
func RunLoop(pump FramePump, win Window, ticker *time.Ticker) (int, error) {
	frames := 0
	for {
		if ticker != nil {
			<-ticker.C
		}

		win.PollEvents()
		if win.ShouldClose() {
			return frames, nil
		}

		slot, err := pump.AcquireImage()
		if err != nil {
			return frames, err
		}
		if err := pump.WaitFrame(slot); err != nil {
			return frames, err
		}
		if err := pump.RecordFrame(slot); err != nil {
			return frames, err
		}
		if err := pump.SubmitFrame(slot); err != nil {
			return frames, err
		}
		if err := pump.PresentFrame(slot); err != nil {
			return frames, err
		}
		frames++
	}
}

// AcquireImage implements FramePump. Blocks until the presentation
// engine releases an image; there is no alternative progress while no
// image is available, so the (by default infinite) wait is fine.
func (v *VulkanRenderer) AcquireImage() (uint32, error) {
	var imageIndex uint32
	ret := vk.AcquireNextImage(v.logicalDevice, v.swapchain, v.waitNanos(), v.acquireSemaphore, vk.NullFence, &imageIndex)
	if err := resultErr("vk.AcquireNextImage()", ret); err != nil {
		return 0, err
	}
	return imageIndex, nil
}

// WaitFrame implements FramePump. The fence wait guarantees the
// previous submission through this slot has finished executing before
// its command buffer is touched again; it is the sole mechanism
// preventing host-side re-recording of a buffer the device still
// consumes.
func (v *VulkanRenderer) WaitFrame(slot uint32) error {
	fences := []vk.Fence{v.fences[slot]}
	if err := resultErr("vk.WaitForFences()", vk.WaitForFences(v.logicalDevice, 1, fences, vk.True, v.waitNanos())); err != nil {
		return err
	}
	return resultErr("vk.ResetFences()", vk.ResetFences(v.logicalDevice, 1, fences))
}

// RecordFrame implements FramePump: reset the slot's buffer and record
// the fixed workload, a cleared render pass and a 3-vertex draw with
// no vertex or index buffers.
func (v *VulkanRenderer) RecordFrame(slot uint32) error {
	commandBuffer := v.commandBuffers[slot]

	if err := resultErr("vk.ResetCommandBuffer()", vk.ResetCommandBuffer(commandBuffer, 0)); err != nil {
		return err
	}

	cbbi := vk.CommandBufferBeginInfo{
		SType: vk.StructureTypeCommandBufferBeginInfo,
	}
	if err := resultErr("vk.BeginCommandBuffer()", vk.BeginCommandBuffer(commandBuffer, &cbbi)); err != nil {
		return err
	}

	clear := v.configuration.ClearColor
	clearValues := make([]vk.ClearValue, 1)
	clearValues[0].SetColor([]float32{clear.X(), clear.Y(), clear.Z(), clear.W()})

	rpbi := vk.RenderPassBeginInfo{
		SType:       vk.StructureTypeRenderPassBeginInfo,
		RenderPass:  v.renderPass,
		Framebuffer: v.framebuffers[slot],
		RenderArea: vk.Rect2D{
			Extent: vk.Extent2D{
				Width:  v.configuration.ScreenWidth,
				Height: v.configuration.ScreenHeight,
			},
		},
		ClearValueCount: uint32(len(clearValues)),
		PClearValues:    clearValues,
	}
	vk.CmdBeginRenderPass(commandBuffer, &rpbi, vk.SubpassContentsInline)
	vk.CmdBindPipeline(commandBuffer, vk.PipelineBindPointGraphics, v.pipeline)
	vk.CmdDraw(commandBuffer, 3, 1, 0, 0)
	vk.CmdEndRenderPass(commandBuffer)

	return resultErr("vk.EndCommandBuffer()", vk.EndCommandBuffer(commandBuffer))
}

// SubmitFrame implements FramePump. The submission waits on the
// acquire semaphore at the color-attachment-output stage and signals
// both the render semaphore and the slot's fence.
func (v *VulkanRenderer) SubmitFrame(slot uint32) error {
	submit := []vk.SubmitInfo{{
		SType:              vk.StructureTypeSubmitInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{v.acquireSemaphore},
		PWaitDstStageMask: []vk.PipelineStageFlags{
			vk.PipelineStageFlags(vk.PipelineStageColorAttachmentOutputBit),
		},
		CommandBufferCount:   1,
		PCommandBuffers:      []vk.CommandBuffer{v.commandBuffers[slot]},
		SignalSemaphoreCount: 1,
		PSignalSemaphores:    []vk.Semaphore{v.renderSemaphore},
	}}

	return resultErr("vk.QueueSubmit()", vk.QueueSubmit(v.deviceQueue, 1, submit, v.fences[slot]))
}

// PresentFrame implements FramePump, handing the image back to the
// presentation engine once the render semaphore signals.
func (v *VulkanRenderer) PresentFrame(slot uint32) error {
	presentInfo := vk.PresentInfo{
		SType:              vk.StructureTypePresentInfo,
		WaitSemaphoreCount: 1,
		PWaitSemaphores:    []vk.Semaphore{v.renderSemaphore},
		SwapchainCount:     1,
		PSwapchains:        []vk.Swapchain{v.swapchain},
		PImageIndices:      []uint32{slot},
	}

	return resultErr("vk.QueuePresent()", vk.QueuePresent(v.deviceQueue, &presentInfo))
}
