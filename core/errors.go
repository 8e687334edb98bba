package core

import (
	"errors"
	"fmt"

	vk "github.com/vulkan-go/vulkan"
)

// Failure kinds surfaced during initialisation and the frame loop.
// Every fallible step wraps one of these, so callers can match with
// errors.Is while still getting a description of which precondition
// failed. ErrDeviceLost is special: it is the one error the recovery
// controller watches for, everything else is fatal to the attempt.
var (
	// ErrMissingCapability means a required instance extension or
	// layer is absent
	ErrMissingCapability = errors.New("missing instance capability")

	// ErrNoSuitableDevice means physical device enumeration found
	// nothing usable at the requested index
	ErrNoSuitableDevice = errors.New("no suitable physical device")

	// ErrNoSuitableQueueFamily means the selected device exposes no
	// graphics-capable queue family
	ErrNoSuitableQueueFamily = errors.New("no suitable queue family")

	// ErrInitializationFailed means logical device creation failed
	ErrInitializationFailed = errors.New("device initialization failed")

	// ErrSurfaceCreationFailed covers both a failed surface creation
	// and a surface that exists but cannot present. A surface that
	// cannot present is not a degraded state, it is unusable.
	ErrSurfaceCreationFailed = errors.New("surface creation failed")

	// ErrUnsupportedConfiguration means the requested swapchain
	// parameters do not match the surface capabilities. There is no
	// negotiation, any mismatch is a hard failure.
	ErrUnsupportedConfiguration = errors.New("unsupported swapchain configuration")

	// ErrPipelineCompilationFailed means shader module or pipeline
	// creation was rejected
	ErrPipelineCompilationFailed = errors.New("pipeline compilation failed")

	// ErrDeviceLost means the device became permanently unusable and
	// must be destroyed and recreated. Further calls on it are
	// undefined.
	ErrDeviceLost = errors.New("device lost")
)

// resultErr converts a vk.Result into an error carrying the name of
// the failed call. Device loss maps onto ErrDeviceLost so that the
// recovery controller can pick it out of any wrapping.
func resultErr(call string, ret vk.Result) error {
	switch ret {
	case vk.Success:
		return nil
	case vk.ErrorDeviceLost:
		return fmt.Errorf("%s: %w", call, ErrDeviceLost)
	case vk.ErrorInitializationFailed:
		return fmt.Errorf("%s: %w", call, ErrInitializationFailed)
	}
	return fmt.Errorf("%s: %s", call, vk.Error(ret).Error())
}

// IsDeviceLost reports whether err signals device loss anywhere in
// its chain.
func IsDeviceLost(err error) bool {
	return errors.Is(err, ErrDeviceLost)
}
