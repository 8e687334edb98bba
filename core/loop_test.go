package core

import (
	"fmt"
	"testing"
)

// countingWindow requests close after a fixed number of polls, so a
// loop run presents exactly that many frames.
type countingWindow struct {
	frames int
	polled int
}

func (w *countingWindow) PollEvents() {
	w.polled++
}

func (w *countingWindow) ShouldClose() bool {
	return w.polled > w.frames
}

// scriptedPump alternates slots between 0 and 1 the way a double
// buffered swapchain would, records every step it is driven through,
// and can be told to fail a given step on a given frame.
type scriptedPump struct {
	calls []string
	frame int

	failStep  string
	failFrame int
	failErr   error
}

func (p *scriptedPump) step(name string, slot uint32) error {
	p.calls = append(p.calls, fmt.Sprintf("%s %d", name, slot))
	if p.failErr != nil && name == p.failStep && p.frame == p.failFrame {
		return p.failErr
	}
	return nil
}

func (p *scriptedPump) AcquireImage() (uint32, error) {
	slot := uint32(p.frame % 2)
	if err := p.step("acquire", slot); err != nil {
		return 0, err
	}
	return slot, nil
}

func (p *scriptedPump) WaitFrame(slot uint32) error   { return p.step("wait", slot) }
func (p *scriptedPump) RecordFrame(slot uint32) error { return p.step("record", slot) }
func (p *scriptedPump) SubmitFrame(slot uint32) error { return p.step("submit", slot) }

func (p *scriptedPump) PresentFrame(slot uint32) error {
	err := p.step("present", slot)
	p.frame++
	return err
}

func TestRunLoopDrivesSlotsInOrder(t *testing.T) {
	pump := &scriptedPump{}
	frames, err := RunLoop(pump, &countingWindow{frames: 4}, nil)
	if err != nil {
		t.Error(err)
	}
	if frames != 4 {
		t.Errorf("expected 4 frames, got %d", frames)
	}

	expected := []string{
		"acquire 0", "wait 0", "record 0", "submit 0", "present 0",
		"acquire 1", "wait 1", "record 1", "submit 1", "present 1",
		"acquire 0", "wait 0", "record 0", "submit 0", "present 0",
		"acquire 1", "wait 1", "record 1", "submit 1", "present 1",
	}
	if len(pump.calls) != len(expected) {
		t.Fatalf("expected %d pump calls, got %d: %v", len(expected), len(pump.calls), pump.calls)
	}
	for idx, call := range expected {
		if pump.calls[idx] != call {
			t.Errorf("call %d: expected %q, got %q", idx, call, pump.calls[idx])
		}
	}
}

func TestRunLoopWaitsBeforeReusingSlot(t *testing.T) {
	pump := &scriptedPump{}
	if _, err := RunLoop(pump, &countingWindow{frames: 6}, nil); err != nil {
		t.Error(err)
	}

	// Every record on a slot must be preceded by a wait on that same
	// slot with no other touch of the slot in between.
	for idx, call := range pump.calls {
		if call != "record 0" && call != "record 1" {
			continue
		}
		expected := "wait" + call[len("record"):]
		if pump.calls[idx-1] != expected {
			t.Errorf("call %d: %q not immediately preceded by %q", idx, call, expected)
		}
	}
}

func TestRunLoopStopsOnDeviceLost(t *testing.T) {
	pump := &scriptedPump{
		failStep:  "submit",
		failFrame: 2,
		failErr:   fmt.Errorf("vk.QueueSubmit(): %w", ErrDeviceLost),
	}

	frames, err := RunLoop(pump, &countingWindow{frames: 100}, nil)
	if !IsDeviceLost(err) {
		t.Errorf("expected device loss, got %v", err)
	}
	if frames != 2 {
		t.Errorf("expected 2 presented frames before the loss, got %d", frames)
	}
	last := pump.calls[len(pump.calls)-1]
	if last != "submit 0" {
		t.Errorf("loop continued past the failing step, last call %q", last)
	}
}

func TestRunLoopAcquireErrorPropagates(t *testing.T) {
	pump := &scriptedPump{
		failStep:  "acquire",
		failFrame: 1,
		failErr:   fmt.Errorf("vk.AcquireNextImage(): %w", ErrDeviceLost),
	}

	frames, err := RunLoop(pump, &countingWindow{frames: 100}, nil)
	if !IsDeviceLost(err) {
		t.Errorf("expected device loss, got %v", err)
	}
	if frames != 1 {
		t.Errorf("expected 1 presented frame, got %d", frames)
	}
}

func TestRunLoopCloseRequestStopsBeforeAcquire(t *testing.T) {
	pump := &scriptedPump{}
	frames, err := RunLoop(pump, &countingWindow{frames: 0}, nil)
	if err != nil {
		t.Error(err)
	}
	if frames != 0 {
		t.Errorf("expected 0 frames, got %d", frames)
	}
	if len(pump.calls) != 0 {
		t.Errorf("pump was driven after close request: %v", pump.calls)
	}
}
