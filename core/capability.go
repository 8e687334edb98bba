package core

import (
	"fmt"
	"strings"

	vk "github.com/vulkan-go/vulkan"
)

// SupportedInstanceExtensions returns the instance extensions the
// loader exposes. Read-only, the instance does not need to exist yet
// but vk.Init must have run.
func SupportedInstanceExtensions() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err.Error())
	}
	properties := make([]vk.ExtensionProperties, count)
	if err := vk.Error(vk.EnumerateInstanceExtensionProperties("", &count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceExtensionProperties(): %s", err.Error())
	}

	names := make([]string, 0, count)
	for _, property := range properties {
		property.Deref()
		names = append(names, vk.ToString(property.ExtensionName[:]))
	}
	return names, nil
}

// SupportedInstanceLayers returns the instance layers the loader
// exposes.
func SupportedInstanceLayers() ([]string, error) {
	var count uint32
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, nil)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %s", err.Error())
	}
	properties := make([]vk.LayerProperties, count)
	if err := vk.Error(vk.EnumerateInstanceLayerProperties(&count, properties)); err != nil {
		return nil, fmt.Errorf("vk.EnumerateInstanceLayerProperties(): %s", err.Error())
	}

	names := make([]string, 0, count)
	for _, property := range properties {
		property.Deref()
		names = append(names, vk.ToString(property.LayerName[:]))
	}
	return names, nil
}

// RequireInstanceExtensions verifies that every required extension is
// present before instance creation, failing fast instead of letting
// vk.CreateInstance reject late. Names may carry the trailing NUL the
// bindings want.
func RequireInstanceExtensions(required []string) error {
	available, err := SupportedInstanceExtensions()
	if err != nil {
		return err
	}
	return requireNames(required, available)
}

// RequireInstanceLayers is RequireInstanceExtensions for layers.
func RequireInstanceLayers(required []string) error {
	available, err := SupportedInstanceLayers()
	if err != nil {
		return err
	}
	return requireNames(required, available)
}

func requireNames(required, available []string) error {
	for _, want := range required {
		name := strings.TrimRight(want, "\x00")
		found := false
		for _, have := range available {
			if strings.TrimRight(have, "\x00") == name {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%s is not available: %w", name, ErrMissingCapability)
		}
	}
	return nil
}
