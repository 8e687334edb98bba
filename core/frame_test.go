package core

import (
	"testing"

	vk "github.com/vulkan-go/vulkan"
)

func TestFrameFencesStartSignaled(t *testing.T) {
	fci := signaledFenceInfo()
	if fci.SType != vk.StructureTypeFenceCreateInfo {
		t.Errorf("unexpected SType %v", fci.SType)
	}
	if fci.Flags&vk.FenceCreateFlags(vk.FenceCreateSignaledBit) == 0 {
		t.Error("frame fences must be created signaled or the first wait on each slot deadlocks")
	}
}
