package core

import (
	"errors"
	"fmt"
	"testing"
)

// mockPass scripts one lifecycle and appends its events to a journal
// shared across passes, so tests can assert cross-pass ordering.
type mockPass struct {
	id      int
	journal *[]string

	initErr error
	frames  int
	runErr  error
}

func (p *mockPass) log(event string) {
	*p.journal = append(*p.journal, fmt.Sprintf("%s %d", event, p.id))
}

func (p *mockPass) Initialise() error {
	p.log("init")
	return p.initErr
}

func (p *mockPass) Run() (int, error) {
	p.log("run")
	return p.frames, p.runErr
}

func (p *mockPass) Destroy() {
	p.log("destroy")
}

// passFactory hands out scripted passes in order and counts how many
// were constructed.
type passFactory struct {
	journal []string
	passes  []*mockPass
	built   int
}

func (f *passFactory) new() Pass {
	pass := f.passes[f.built]
	pass.id = f.built
	pass.journal = &f.journal
	f.built++
	return pass
}

func TestRunRecoveryCleanRun(t *testing.T) {
	factory := &passFactory{passes: []*mockPass{
		{frames: 7},
	}}

	outcome := RunRecovery(factory.new)
	if outcome.Failed() {
		t.Errorf("unexpected failure: %+v", outcome)
	}
	if outcome.DeviceLost || outcome.Recovered() {
		t.Error("no device loss happened, none should be reported")
	}
	if outcome.Frames != 7 {
		t.Errorf("expected 7 frames, got %d", outcome.Frames)
	}
	if factory.built != 1 {
		t.Errorf("expected a single pass, got %d", factory.built)
	}
}

func TestRunRecoveryOnDeviceLoss(t *testing.T) {
	factory := &passFactory{passes: []*mockPass{
		{frames: 3, runErr: fmt.Errorf("vk.QueueSubmit(): %w", ErrDeviceLost)},
		{},
	}}

	outcome := RunRecovery(factory.new)
	if outcome.Failed() {
		t.Errorf("unexpected failure: %+v", outcome)
	}
	if !outcome.DeviceLost || !outcome.Recovered() {
		t.Error("expected a recovered device loss")
	}
	if outcome.Frames != 3 {
		t.Errorf("expected 3 first-pass frames, got %d", outcome.Frames)
	}
	if factory.built != 2 {
		t.Fatalf("expected two passes, got %d", factory.built)
	}

	// The first pass must be fully torn down before the second pass
	// initialises; no handle may cross between them.
	expected := []string{"init 0", "run 0", "destroy 0", "init 1", "destroy 1"}
	if len(factory.journal) != len(expected) {
		t.Fatalf("expected events %v, got %v", expected, factory.journal)
	}
	for idx, event := range expected {
		if factory.journal[idx] != event {
			t.Errorf("event %d: expected %q, got %q", idx, event, factory.journal[idx])
		}
	}
}

func TestRunRecoveryOnInitialisationDeviceLoss(t *testing.T) {
	factory := &passFactory{passes: []*mockPass{
		{initErr: fmt.Errorf("vk.CreateDevice(): %w", ErrDeviceLost)},
		{},
	}}

	outcome := RunRecovery(factory.new)
	if !outcome.Recovered() {
		t.Errorf("expected recovery after device loss during init: %+v", outcome)
	}
	if outcome.Frames != 0 {
		t.Errorf("expected 0 frames, got %d", outcome.Frames)
	}
}

func TestRunRecoverySkippedOnGenericError(t *testing.T) {
	failure := errors.New("vk.CreateSwapchain(): some driver problem")
	factory := &passFactory{passes: []*mockPass{
		{runErr: failure},
		{},
	}}

	outcome := RunRecovery(factory.new)
	if !outcome.Failed() {
		t.Error("expected a failed outcome")
	}
	if outcome.DeviceLost {
		t.Error("generic failure must not count as device loss")
	}
	if !errors.Is(outcome.FirstErr, failure) {
		t.Errorf("expected the original error, got %v", outcome.FirstErr)
	}
	if factory.built != 1 {
		t.Errorf("recovery pass constructed for a non-loss failure, built %d", factory.built)
	}
}

func TestRunRecoverySecondInitialisationFailure(t *testing.T) {
	factory := &passFactory{passes: []*mockPass{
		{runErr: fmt.Errorf("vk.QueuePresent(): %w", ErrDeviceLost)},
		{initErr: ErrInitializationFailed},
	}}

	outcome := RunRecovery(factory.new)
	if !outcome.Failed() {
		t.Error("expected a failed outcome")
	}
	if !outcome.DeviceLost {
		t.Error("device loss of the first pass must still be reported")
	}
	if outcome.Recovered() {
		t.Error("a failed second initialisation is not a recovery")
	}
	if !errors.Is(outcome.RecoveryErr, ErrInitializationFailed) {
		t.Errorf("expected ErrInitializationFailed, got %v", outcome.RecoveryErr)
	}
}
