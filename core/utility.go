package core

import (
	"fmt"
	"strings"
	"unsafe"
)

type sliceHeader struct {
	Data uintptr
	Len  int
	Cap  int
}

// SliceUint32 reslices bytes into a uint32, that is used
// to submit vulkan shaders for processing
func SliceUint32(data []byte) []uint32 {
	const m = 0x7fffffff
	return (*[m / 4]uint32)(unsafe.Pointer((*sliceHeader)(unsafe.Pointer(&data)).Data))[:len(data)/4]
}

func safeString(s string) string {
	return fmt.Sprintf("%s\x00", s)
}

// SafeStrings NUL-terminates every string for handing to the bindings.
// Idempotent, strings that already carry the terminator pass through.
func SafeStrings(sgs []string) []string {
	safe := []string{}
	for _, s := range sgs {
		safe = append(safe, strings.TrimRight(s, "\x00")+"\x00")
	}
	return safe
}
