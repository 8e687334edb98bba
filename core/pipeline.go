package core

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// createRenderPass builds the single-subpass pass the probe draws
// with: one color attachment, cleared on load, stored on completion,
// left in presentable layout.
func (v *VulkanRenderer) createRenderPass() error {
	attachments := []vk.AttachmentDescription{{
		Format:         v.imageFormat,
		Samples:        vk.SampleCount1Bit,
		LoadOp:         vk.AttachmentLoadOpClear,
		StoreOp:        vk.AttachmentStoreOpStore,
		StencilLoadOp:  vk.AttachmentLoadOpDontCare,
		StencilStoreOp: vk.AttachmentStoreOpDontCare,
		InitialLayout:  vk.ImageLayoutUndefined,
		FinalLayout:    vk.ImageLayoutPresentSrc,
	}}

	colorAttachmentRef := []vk.AttachmentReference{{
		Attachment: 0,
		Layout:     vk.ImageLayoutColorAttachmentOptimal,
	}}

	subpass := vk.SubpassDescription{
		PipelineBindPoint:    vk.PipelineBindPointGraphics,
		ColorAttachmentCount: uint32(len(colorAttachmentRef)),
		PColorAttachments:    colorAttachmentRef,
	}

	rpci := vk.RenderPassCreateInfo{
		SType:           vk.StructureTypeRenderPassCreateInfo,
		AttachmentCount: uint32(len(attachments)),
		PAttachments:    attachments,
		SubpassCount:    1,
		PSubpasses:      []vk.SubpassDescription{subpass},
	}

	var renderPass vk.RenderPass
	if err := resultErr("vk.CreateRenderPass()", vk.CreateRenderPass(v.logicalDevice, &rpci, nil, &renderPass)); err != nil {
		return err
	}
	v.renderPass = renderPass
	return nil
}

// createFramebuffers makes one framebuffer per swapchain image view,
// in the same order as the images.
func (v *VulkanRenderer) createFramebuffers() error {
	for _, imageView := range v.swapchainImageViews {
		fci := vk.FramebufferCreateInfo{
			SType:           vk.StructureTypeFramebufferCreateInfo,
			RenderPass:      v.renderPass,
			AttachmentCount: 1,
			PAttachments:    []vk.ImageView{imageView},
			Width:           v.configuration.ScreenWidth,
			Height:          v.configuration.ScreenHeight,
			Layers:          1,
		}

		var framebuffer vk.Framebuffer
		if err := resultErr("vk.CreateFramebuffer()", vk.CreateFramebuffer(v.logicalDevice, &fci, nil, &framebuffer)); err != nil {
			return err
		}
		v.framebuffers = append(v.framebuffers, framebuffer)
	}
	return nil
}

func (v *VulkanRenderer) loadShaders() error {
	for _, source := range v.configuration.Shaders {
		shader, err := NewVulkanShader(source, v.logicalDevice)
		if err != nil {
			return err
		}
		v.shaders = append(v.shaders, shader)
	}
	if len(v.shaders) == 0 {
		return fmt.Errorf("no shader bytecode configured: %w", ErrPipelineCompilationFailed)
	}
	return nil
}

// The pipeline layout is empty, the shaders take no descriptors or
// push constants.
func (v *VulkanRenderer) createPipelineLayout() error {
	plci := vk.PipelineLayoutCreateInfo{
		SType: vk.StructureTypePipelineLayoutCreateInfo,
	}

	var pipelineLayout vk.PipelineLayout
	if err := resultErr("vk.CreatePipelineLayout()", vk.CreatePipelineLayout(v.logicalDevice, &plci, nil, &pipelineLayout)); err != nil {
		return err
	}
	v.pipelineLayout = pipelineLayout
	return nil
}

func (v *VulkanRenderer) createPipelineCache() error {
	pcci := vk.PipelineCacheCreateInfo{
		SType: vk.StructureTypePipelineCacheCreateInfo,
	}

	var pipelineCache vk.PipelineCache
	if err := resultErr("vk.CreatePipelineCache()", vk.CreatePipelineCache(v.logicalDevice, &pcci, nil, &pipelineCache)); err != nil {
		return err
	}
	v.pipelineCache = pipelineCache
	return nil
}

// createPipeline builds the fixed-function pipeline: triangle list, no
// vertex input (the vertex shader generates the geometry), full-extent
// static viewport and scissor, no culling, fill mode, single sample,
// no depth or stencil, opaque writes on all four channels. No dynamic
// state and no blending; the probe stresses lifecycle, not rendering.
func (v *VulkanRenderer) createPipeline() error {
	pipelineShaderStagesInfo := make([]vk.PipelineShaderStageCreateInfo, len(v.shaders))
	for idx, shader := range v.shaders {
		var stage vk.ShaderStageFlagBits
		switch shader.Type() {
		case VertexShaderType:
			stage = vk.ShaderStageVertexBit
		case FragmentShaderType:
			stage = vk.ShaderStageFragmentBit
		default:
			return fmt.Errorf("unsupported shader type for %q: %w", shader.Name(), ErrPipelineCompilationFailed)
		}

		shaderModule, ok := shader.ShaderModule().(vk.ShaderModule)
		if !ok {
			return fmt.Errorf("shader %q does not hold a vk.ShaderModule: %w", shader.Name(), ErrPipelineCompilationFailed)
		}

		pipelineShaderStagesInfo[idx].SType = vk.StructureTypePipelineShaderStageCreateInfo
		pipelineShaderStagesInfo[idx].Stage = stage
		pipelineShaderStagesInfo[idx].Module = shaderModule
		pipelineShaderStagesInfo[idx].PName = "main\x00"
	}

	viewports := []vk.Viewport{{
		Width:    float32(v.configuration.ScreenWidth),
		Height:   float32(v.configuration.ScreenHeight),
		MinDepth: 0.0,
		MaxDepth: 1.0,
	}}
	scissors := []vk.Rect2D{{
		Extent: vk.Extent2D{
			Width:  v.configuration.ScreenWidth,
			Height: v.configuration.ScreenHeight,
		},
	}}

	gpci := []vk.GraphicsPipelineCreateInfo{{
		SType:      vk.StructureTypeGraphicsPipelineCreateInfo,
		StageCount: uint32(len(pipelineShaderStagesInfo)),
		PStages:    pipelineShaderStagesInfo,
		PVertexInputState: &vk.PipelineVertexInputStateCreateInfo{
			SType: vk.StructureTypePipelineVertexInputStateCreateInfo,
		},
		PInputAssemblyState: &vk.PipelineInputAssemblyStateCreateInfo{
			SType:    vk.StructureTypePipelineInputAssemblyStateCreateInfo,
			Topology: vk.PrimitiveTopologyTriangleList,
		},
		PViewportState: &vk.PipelineViewportStateCreateInfo{
			SType:         vk.StructureTypePipelineViewportStateCreateInfo,
			ViewportCount: uint32(len(viewports)),
			PViewports:    viewports,
			ScissorCount:  uint32(len(scissors)),
			PScissors:     scissors,
		},
		PRasterizationState: &vk.PipelineRasterizationStateCreateInfo{
			SType:       vk.StructureTypePipelineRasterizationStateCreateInfo,
			PolygonMode: vk.PolygonModeFill,
			CullMode:    vk.CullModeFlags(vk.CullModeNone),
			LineWidth:   1.0,
		},
		PDepthStencilState: &vk.PipelineDepthStencilStateCreateInfo{
			SType: vk.StructureTypePipelineDepthStencilStateCreateInfo,
		},
		PMultisampleState: &vk.PipelineMultisampleStateCreateInfo{
			SType:                vk.StructureTypePipelineMultisampleStateCreateInfo,
			RasterizationSamples: vk.SampleCount1Bit,
		},
		PColorBlendState: &vk.PipelineColorBlendStateCreateInfo{
			SType:           vk.StructureTypePipelineColorBlendStateCreateInfo,
			AttachmentCount: 1,
			PAttachments: []vk.PipelineColorBlendAttachmentState{{
				ColorWriteMask: vk.ColorComponentFlags(
					vk.ColorComponentRBit | vk.ColorComponentGBit |
						vk.ColorComponentBBit | vk.ColorComponentABit),
				BlendEnable: vk.False,
			}},
		},
		Layout:     v.pipelineLayout,
		RenderPass: v.renderPass,
	}}

	pipelines := make([]vk.Pipeline, len(gpci))
	ret := vk.CreateGraphicsPipelines(v.logicalDevice, v.pipelineCache, uint32(len(gpci)), gpci, nil, pipelines)
	if ret != vk.Success {
		return fmt.Errorf("vk.CreateGraphicsPipelines(): %s: %w", vk.Error(ret).Error(), ErrPipelineCompilationFailed)
	}
	v.pipeline = pipelines[0]
	return nil
}
