package core

import (
	"fmt"

	log "github.com/sirupsen/logrus"
)

// Pass is one complete device lifecycle: bring every GPU resource into
// existence, run the frame loop until close or failure, tear it all
// down. The recovery controller drives passes, it never reaches inside
// one.
type Pass interface {
	// Initialise builds the full resource chain in dependency order
	Initialise() error

	// Run pumps frames until a close request or an error and returns
	// the number of presented frames
	Run() (int, error)

	// Destroy releases everything best-effort, swallowing errors, so
	// a recovery attempt can proceed even when the device is lost
	Destroy()
}

// Outcome reports how a probe run went, keeping the two passes
// distinct: the first pass exercises steady state, the second pass
// exists only to answer whether the driver survives recreating the
// device after loss.
type Outcome struct {
	// DeviceLost reports whether the first pass ended in device loss
	// and a recovery pass was therefore attempted
	DeviceLost bool

	// Frames is the number of frames the first pass presented
	Frames int

	// FirstErr is a non-device-loss failure of the first pass, fatal
	// with no recovery attempted
	FirstErr error

	// RecoveryErr is the failure of the recovery pass, nil when the
	// second initialisation succeeded or was never attempted. Note
	// that a hung second device creation never returns at all; that
	// hang is precisely the driver behavior this harness surfaces.
	RecoveryErr error
}

// Failed reports whether the run as a whole should exit non-zero.
func (o Outcome) Failed() bool {
	return o.FirstErr != nil || o.RecoveryErr != nil
}

// Recovered reports whether device loss occurred and the fresh
// initialisation pass succeeded.
func (o Outcome) Recovered() bool {
	return o.DeviceLost && o.RecoveryErr == nil
}

// RunRecovery executes the first pass and, if and only if it failed
// with device loss, tears it down and drives a second, completely
// independent pass built from fresh resources. newPass must construct
// a brand new Pass on every call; no handle crosses from the first
// pass into the second. Other first-pass errors propagate without a
// recovery attempt.
func RunRecovery(newPass func() Pass) Outcome {
	var outcome Outcome

	first := newPass()
	err := first.Initialise()
	if err == nil {
		outcome.Frames, err = first.Run()
	}
	// Teardown runs regardless and swallows its own failures; a lost
	// device rejects calls but must not stop the recovery attempt.
	first.Destroy()

	if err == nil {
		return outcome
	}
	if !IsDeviceLost(err) {
		outcome.FirstErr = err
		return outcome
	}
	outcome.DeviceLost = true

	// Logged before the attempt on purpose: when the second device
	// creation hangs inside the driver, this line is the last output.
	log.WithField("frames", outcome.Frames).Warn("device lost, re-initializing")

	second := newPass()
	defer second.Destroy()
	if err := second.Initialise(); err != nil {
		outcome.RecoveryErr = fmt.Errorf("re-initialization failed: %w", err)
	}
	return outcome
}

// NewProbePass assembles the standard pass used by the vkprobe binary:
// a fresh instance, surface binding, renderer and frame loop over the
// given window. The window and its SDL state live across passes; only
// device-level state is rebuilt.
func NewProbePass(cfg Configuration, win Window, src SurfaceSource) Pass {
	return &probePass{
		configuration: cfg,
		window:        win,
		surfaceSource: src,
	}
}

type probePass struct {
	configuration Configuration
	window        Window
	surfaceSource SurfaceSource

	instance Instance
	renderer Renderer
}

func (p *probePass) Initialise() error {
	instanceCfg := p.configuration.Instance
	instanceCfg.Extensions = append(instanceCfg.Extensions, p.surfaceSource.InstanceExtensions()...)

	instance, err := NewVulkanInstance(DefaultVulkanApplicationInfo, p.surfaceSource.ProcAddr(), instanceCfg)
	if err != nil {
		return err
	}
	p.instance = instance

	physicalDevice, queueFamily, err := instance.SelectDevice(p.configuration.Renderer.DeviceIndex)
	if err != nil {
		return err
	}
	if _, err := BindSurface(instance, p.surfaceSource, physicalDevice, queueFamily); err != nil {
		return err
	}

	renderer, err := NewVulkanRenderer(instance, p.configuration.Renderer)
	if err != nil {
		return err
	}
	p.renderer = renderer

	return renderer.Initialise()
}

func (p *probePass) Run() (int, error) {
	timeService := NewTime(p.configuration.Time)
	ticker := timeService.FpsTicker()
	defer ticker.Stop()
	return RunLoop(p.renderer, p.window, ticker)
}

func (p *probePass) Destroy() {
	if p.renderer != nil {
		p.renderer.Destroy()
		p.renderer = nil
	}
	if p.instance != nil {
		p.instance.Destroy()
		p.instance = nil
	}
}
