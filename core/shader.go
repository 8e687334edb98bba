package core

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"

	vk "github.com/vulkan-go/vulkan"

	"github.com/devblok/vkprobe/utility/spak"
)

const shaderSuffix = ".spv"

// ShaderTypeFromName derives the stage from the second-to-last name
// node: name.vert.spv is a vertex stage, name.frag.spv a fragment
// stage. Anything else is unknown and skipped by the loaders.
func ShaderTypeFromName(name string) (string, ShaderType) {
	if !strings.HasSuffix(name, shaderSuffix) {
		return "", UnknownShaderType
	}
	shader := strings.TrimSuffix(name, shaderSuffix)
	nodes := strings.Split(shader, ".")
	if len(nodes) != 2 {
		return "", UnknownShaderType
	}
	switch nodes[1] {
	case "vert":
		return nodes[0], VertexShaderType
	case "frag":
		return nodes[0], FragmentShaderType
	}
	return "", UnknownShaderType
}

// LoadShaderDir collects compiled shader blobs from a directory tree.
// Only files named name.vert.spv or name.frag.spv are picked up, the
// rest is ignored.
func LoadShaderDir(dir string) ([]ShaderSource, error) {
	var sources []ShaderSource
	if err := filepath.Walk(dir, func(path string, f os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if f.IsDir() || !strings.HasSuffix(f.Name(), shaderSuffix) {
			return nil
		}
		name, shaderType := ShaderTypeFromName(f.Name())
		if shaderType == UnknownShaderType {
			return nil
		}
		data, err := ioutil.ReadFile(path)
		if err != nil {
			return err
		}
		sources = append(sources, ShaderSource{
			Name: name,
			Type: shaderType,
			Data: data,
		})
		return nil
	}); err != nil {
		return nil, err
	}
	return sources, nil
}

// LoadShaderPack collects shader blobs out of a spak bundle. Entry
// names follow the same name.vert.spv / name.frag.spv scheme as the
// directory loader.
func LoadShaderPack(path string) ([]ShaderSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	archive, err := spak.Open(f)
	if err != nil {
		return nil, err
	}

	var sources []ShaderSource
	for _, entry := range archive.Names() {
		name, shaderType := ShaderTypeFromName(entry)
		if shaderType == UnknownShaderType {
			continue
		}
		data, err := archive.ReadAll(entry)
		if err != nil {
			return nil, err
		}
		sources = append(sources, ShaderSource{
			Name: name,
			Type: shaderType,
			Data: data,
		})
	}
	return sources, nil
}

// NewVulkanShader creates a Vulkan shader module from an opaque
// precompiled blob. No compilation happens here, malformed bytecode
// surfaces as ErrPipelineCompilationFailed.
func NewVulkanShader(source ShaderSource, device vk.Device) (Shader, error) {
	smci := vk.ShaderModuleCreateInfo{
		SType:    vk.StructureTypeShaderModuleCreateInfo,
		CodeSize: uint(len(source.Data)),
		PCode:    SliceUint32(source.Data),
	}

	var shader vk.ShaderModule
	if ret := vk.CreateShaderModule(device, &smci, nil, &shader); ret != vk.Success {
		return nil, fmt.Errorf("vk.CreateShaderModule(%q): %s: %w",
			source.Name, vk.Error(ret).Error(), ErrPipelineCompilationFailed)
	}

	return &VulkanShader{
		shader:     shader,
		shaderType: source.Type,
		name:       source.Name,
		device:     device,
	}, nil
}

// VulkanShader is a Vulkan specific shader
type VulkanShader struct {
	name       string
	shaderType ShaderType
	device     vk.Device
	shader     vk.ShaderModule
}

// Type implements interface
func (v VulkanShader) Type() ShaderType {
	return v.shaderType
}

// ShaderModule is an accessor to the internal vk.ShaderModule
func (v VulkanShader) ShaderModule() interface{} {
	return v.shader
}

// Name implements interface
func (v VulkanShader) Name() string {
	return v.name
}

// Destroy implements interface
func (v VulkanShader) Destroy() {
	vk.DestroyShaderModule(v.device, v.shader, nil)
}
