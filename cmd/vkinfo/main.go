package main

import (
	"encoding/json"
	"fmt"

	"github.com/devblok/vkprobe/device"
)

// vkinfo dumps what the Vulkan loader exposes on this host as JSON:
// instance extensions and layers, plus every visible physical device.
// Useful for deciding which VKPROBE_DEVICE_INDEX to probe.
func main() {
	dev, err := device.NewVulkanDevice(device.DefaultVulkanApplicationInfo)
	if err != nil {
		panic(err)
	}
	defer dev.Destroy()

	report := struct {
		InstanceExtensions []string                    `json:"instanceExtensions"`
		InstanceLayers     []string                    `json:"instanceLayers"`
		Devices            []device.PhysicalDeviceInfo `json:"devices"`
	}{
		InstanceExtensions: dev.InstanceExtensions(),
		InstanceLayers:     dev.InstanceLayers(),
		Devices:            dev.PhysicalDevices(),
	}

	if bytes, err := json.Marshal(report); err == nil {
		fmt.Printf("%s", bytes)
	} else {
		panic(err)
	}
}
