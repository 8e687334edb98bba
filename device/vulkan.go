package device

import (
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultVulkanApplicationInfo identifies the enumeration probe
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 1, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "vkinfo\x00",
	PEngineName:        "vkprobe\x00",
}

// NewVulkanDevice creates an enumeration-only Vulkan handle: an
// instance with no surface and no logical device, enough to inspect
// what the host exposes.
func NewVulkanDevice(appInfo *vk.ApplicationInfo) (Device, error) {
	if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
		return nil, err
	}

	if err := vk.Init(); err != nil {
		return nil, err
	}

	v := &Vulkan{}

	var extensions []string
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	if err := vk.Error(vk.CreateInstance(&instanceInfo, nil, &v.instance)); err != nil {
		return nil, err
	}
	vk.InitInstance(v.instance)

	if err := v.enumerateDevices(); err != nil {
		vk.DestroyInstance(v.instance, nil)
		return nil, err
	}

	return v, nil
}

// Vulkan is the enumeration-only device handle
type Vulkan struct {
	availableDevices []vk.PhysicalDevice

	instance vk.Instance
}

func (v *Vulkan) enumerateDevices() error {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, nil)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	v.availableDevices = make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(v.instance, &deviceCount, v.availableDevices)); err != nil {
		return fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return nil
}

// InstanceExtensions lists instance extensions the loader exposes
func (v *Vulkan) InstanceExtensions() []string {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, properties)); err != nil {
		return nil
	}
	names := make([]string, 0, count)
	for _, property := range properties {
		property.Deref()
		names = append(names, vk.ToString(property.ExtensionName[:]))
	}
	return names
}

// InstanceLayers lists instance layers the loader exposes
func (v *Vulkan) InstanceLayers() []string {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil
	}
	properties := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, properties)); err != nil {
		return nil
	}
	names := make([]string, 0, count)
	for _, property := range properties {
		property.Deref()
		names = append(names, vk.ToString(property.LayerName[:]))
	}
	return names
}

// PhysicalDevices describes every adapter the instance can see
func (v *Vulkan) PhysicalDevices() []PhysicalDeviceInfo {
	pdi := make([]PhysicalDeviceInfo, len(v.availableDevices))

	for i := 0; i < len(v.availableDevices); i++ {
		// Get extension info
		var numDeviceExtensions uint32
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceExt := make([]vk.ExtensionProperties, numDeviceExtensions)
		if err := vk.Error(vk.EnumerateDeviceExtensionProperties(v.availableDevices[i], "", &numDeviceExtensions, deviceExt)); err != nil {
			pdi[i].Invalid = true
		}
		for _, ext := range deviceExt {
			ext.Deref()
			pdi[i].Extensions = append(pdi[i].Extensions, vk.ToString(ext.ExtensionName[:]))
		}

		// Get layers info
		var numDeviceLayers uint32
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, nil)); err != nil {
			pdi[i].Invalid = true
		}
		deviceLayers := make([]vk.LayerProperties, numDeviceLayers)
		if err := vk.Error(vk.EnumerateDeviceLayerProperties(v.availableDevices[i], &numDeviceLayers, deviceLayers)); err != nil {
			pdi[i].Invalid = true
		}
		for _, layer := range deviceLayers {
			layer.Deref()
			pdi[i].Layers = append(pdi[i].Layers, vk.ToString(layer.LayerName[:]))
		}

		// Get memory info
		var memoryProperties vk.PhysicalDeviceMemoryProperties
		vk.GetPhysicalDeviceMemoryProperties(v.availableDevices[i], &memoryProperties)
		memoryProperties.Deref()
		for iMem := (uint32)(0); iMem < memoryProperties.MemoryHeapCount; iMem++ {
			memoryProperties.MemoryHeaps[iMem].Deref()
			pdi[i].Memory = pdi[i].Memory + memoryProperties.MemoryHeaps[iMem].Size
		}

		// Get general device info
		var physicalDeviceProperties vk.PhysicalDeviceProperties
		vk.GetPhysicalDeviceProperties(v.availableDevices[i], &physicalDeviceProperties)
		physicalDeviceProperties.Deref()
		pdi[i].ID = (int)(physicalDeviceProperties.DeviceID)
		pdi[i].VendorID = (int)(physicalDeviceProperties.VendorID)
		pdi[i].Name = vk.ToString(physicalDeviceProperties.DeviceName[:])
		pdi[i].DriverVersion = (int)(physicalDeviceProperties.DriverVersion)
	}
	return pdi
}

// Destroy releases the instance; safe on a nil receiver and safe to
// call twice.
func (vd *Vulkan) Destroy() {
	if vd == nil || vd.instance == nil {
		return
	}
	vd.availableDevices = nil
	vk.DestroyInstance(vd.instance, nil)
	vd.instance = nil
}
