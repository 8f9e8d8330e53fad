package openrgb

import (
	"fmt"
	"hash/fnv"
)

// deviceIDHex derives a stable hex identifier from a device's HID path, used
// as the OpenRGB serial number and location string. The HID path itself is
// platform-specific and often contains characters unsuitable for display.
func deviceIDHex(path string) string {
	h := fnv.New64a()
	_, _ = h.Write([]byte(path))
	return fmt.Sprintf("%016x", h.Sum64())
}
