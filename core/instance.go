package core

import (
	"fmt"
	"unsafe"

	vk "github.com/vulkan-go/vulkan"
)

// DefaultVulkanApplicationInfo application info describes a Vulkan application
var DefaultVulkanApplicationInfo = &vk.ApplicationInfo{
	SType:              vk.StructureTypeApplicationInfo,
	ApiVersion:         vk.MakeVersion(1, 1, 0),
	ApplicationVersion: vk.MakeVersion(1, 0, 0),
	PApplicationName:   "vkprobe\x00",
	PEngineName:        "vkprobe\x00",
}

// NewVulkanInstance creates a Vulkan instance. Required extensions are
// verified against the loader before creation; a missing one fails the
// whole attempt with ErrMissingCapability. A failed attempt leaves no
// process state behind, the caller may retry with a fresh call, which
// is exactly what the recovery pass does.
func NewVulkanInstance(appInfo *vk.ApplicationInfo, procAddr unsafe.Pointer, cfg InstanceConfiguration) (Instance, error) {
	if cfg.DebugMode {
		cfg.Layers = append(cfg.Layers, "VK_LAYER_KHRONOS_validation\x00")
	}

	// SDL hands extension names out without the terminator the
	// bindings want
	cfg.Extensions = SafeStrings(cfg.Extensions)
	cfg.Layers = SafeStrings(cfg.Layers)

	if procAddr == nil {
		if err := vk.SetDefaultGetInstanceProcAddr(); err != nil {
			return nil, fmt.Errorf("vk.SetDefaultGetInstanceProcAddr(): %s", err.Error())
		}
	} else {
		vk.SetGetInstanceProcAddr(procAddr)
	}

	if err := vk.Init(); err != nil {
		return nil, fmt.Errorf("vk.Init(): %s", err.Error())
	}

	if err := RequireInstanceExtensions(cfg.Extensions); err != nil {
		return nil, err
	}
	if err := RequireInstanceLayers(cfg.Layers); err != nil {
		return nil, err
	}

	/* Create instance */
	instanceInfo := vk.InstanceCreateInfo{
		SType:                   vk.StructureTypeInstanceCreateInfo,
		PApplicationInfo:        appInfo,
		EnabledExtensionCount:   uint32(len(cfg.Extensions)),
		PpEnabledExtensionNames: cfg.Extensions,
		EnabledLayerCount:       uint32(len(cfg.Layers)),
		PpEnabledLayerNames:     cfg.Layers,
	}

	var instance vk.Instance
	if err := resultErr("vk.CreateInstance()", vk.CreateInstance(&instanceInfo, nil, &instance)); err != nil {
		return nil, err
	}
	vk.InitInstance(instance)

	/* Enumerate devices */
	physicalDevices, err := enumerateDevices(instance)
	if err != nil {
		vk.DestroyInstance(instance, nil)
		return nil, err
	}

	return &VulkanInstance{
		configuration:    cfg,
		instance:         instance,
		availableDevices: physicalDevices,
	}, nil
}

// VulkanInstance describes a Vulkan API Instance
type VulkanInstance struct {
	configuration InstanceConfiguration

	availableDevices []vk.PhysicalDevice
	surface          vk.Surface
	instance         vk.Instance
}

func enumerateDevices(instance vk.Instance) ([]vk.PhysicalDevice, error) {
	var deviceCount uint32
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, nil)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	availableDevices := make([]vk.PhysicalDevice, deviceCount)
	if err := vk.Error(vk.EnumeratePhysicalDevices(instance, &deviceCount, availableDevices)); err != nil {
		return nil, fmt.Errorf("vulkan physical device enumeration failed: %s", err)
	}
	return availableDevices, nil
}

// PhysicalDevicesInfo implements interface
func (v VulkanInstance) PhysicalDevicesInfo() []PhysicalDeviceInfo {
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
			pdi[i].Memory = pdi[i].Memory + uint(memoryProperties.MemoryHeaps[iMem].Size)
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

// SelectDevice implements interface. It returns the physical device at
// the given index and the first graphics-capable queue family on it.
// On multi-GPU systems first-match may pick a suboptimal adapter; the
// index pin is the only override, scoring would cost reproducibility.
func (v VulkanInstance) SelectDevice(index int) (vk.PhysicalDevice, uint32, error) {
	if index < 0 || index >= len(v.availableDevices) {
		return nil, 0, fmt.Errorf("physical device index %d of %d: %w",
			index, len(v.availableDevices), ErrNoSuitableDevice)
	}
	physicalDevice := v.availableDevices[index]

	var queueFamilyCount uint32
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, nil)
	queueFamilies := make([]vk.QueueFamilyProperties, queueFamilyCount)
	vk.GetPhysicalDeviceQueueFamilyProperties(physicalDevice, &queueFamilyCount, queueFamilies)

	for i := uint32(0); i < queueFamilyCount; i++ {
		queueFamilies[i].Deref()
		hasGraphics := queueFamilies[i].QueueFlags&vk.QueueFlags(vk.QueueGraphicsBit) != 0
		if hasGraphics && queueFamilies[i].QueueCount > 0 {
			return physicalDevice, i, nil
		}
	}
	return nil, 0, fmt.Errorf("device %d exposes no graphics queue family: %w",
		index, ErrNoSuitableQueueFamily)
}

// CreateLogicalDevice creates the logical device with exactly one
// queue from the given family at priority 1.0 and returns the device
// and its queue.
func CreateLogicalDevice(physicalDevice vk.PhysicalDevice, queueFamily uint32, extensions []string) (vk.Device, vk.Queue, error) {
	queueInfos := []vk.DeviceQueueCreateInfo{{
		SType:            vk.StructureTypeDeviceQueueCreateInfo,
		QueueFamilyIndex: queueFamily,
		QueueCount:       1,
		PQueuePriorities: []float32{1.0},
	}}

	extensions = SafeStrings(extensions)
	dci := vk.DeviceCreateInfo{
		SType:                   vk.StructureTypeDeviceCreateInfo,
		QueueCreateInfoCount:    uint32(len(queueInfos)),
		PQueueCreateInfos:       queueInfos,
		EnabledExtensionCount:   uint32(len(extensions)),
		PpEnabledExtensionNames: extensions,
	}

	var device vk.Device
	if err := resultErr("vk.CreateDevice()", vk.CreateDevice(physicalDevice, &dci, nil, &device)); err != nil {
		return nil, nil, err
	}

	var queue vk.Queue
	vk.GetDeviceQueue(device, queueFamily, 0, &queue)
	return device, queue, nil
}

// Extensions implements interface
func (v VulkanInstance) Extensions() []string {
	return v.configuration.Extensions
}

// AvailableDevices implements interface
func (v VulkanInstance) AvailableDevices() []vk.PhysicalDevice {
	return v.availableDevices
}

// Instance returns internal vk.Instance
func (v *VulkanInstance) Instance() interface{} {
	return v.instance
}

// Destroy implements interface
func (v *VulkanInstance) Destroy() {
	if v.instance == nil {
		return
	}
	if v.surface != vk.NullSurface {
		vk.DestroySurface(v.instance, v.surface, nil)
		v.surface = vk.NullSurface
	}
	v.availableDevices = nil
	vk.DestroyInstance(v.instance, nil)
	v.instance = nil
}
