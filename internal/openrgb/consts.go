// Package openrgb implements the OpenRGB binary TCP wire protocol: request
// framing, response assembly, and the bit-exact GetControllerData payload.
package openrgb

// ProtocolVersion is the OpenRGB SDK protocol version this server speaks.
const ProtocolVersion = 3

// DefaultPort is the default TCP port the server listens on.
const DefaultPort = 6742

// Magic is the four ASCII bytes 'O','R','G','B' read as a little-endian
// u32, marking the start of every client request.
const Magic uint32 = 1111970383

// Request ids, matching the OpenRGB SDK wire protocol.
const (
	RequestGetControllerCount uint32 = 0
	RequestGetControllerData  uint32 = 1
	RequestGetProtocolVersion uint32 = 40
	RequestSetClientName      uint32 = 50
	RequestDeviceListUpdated  uint32 = 100
	RequestGetProfileList     uint32 = 150
	RequestSaveProfile        uint32 = 151
	RequestLoadProfile        uint32 = 152
	RequestDeleteProfile      uint32 = 153
	RequestResizeZone         uint32 = 1000
	RequestUpdateLeds         uint32 = 1050
	RequestUpdateZoneLeds     uint32 = 1051
	RequestUpdateSingleLed    uint32 = 1052
	RequestSetCustomMode      uint32 = 1100
	RequestUpdateMode         uint32 = 1101
	RequestSaveMode           uint32 = 1102
)

// DeviceTypeKeyboard is the OpenRGB device-type constant for keyboards.
const DeviceTypeKeyboard int32 = 5

// ZoneTypeMatrix is the OpenRGB zone-type constant for a matrix zone.
const ZoneTypeMatrix int32 = 2
