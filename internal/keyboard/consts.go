package keyboard

// QMK raw-HID command bytes (report payload byte 0).
const (
	qmkCustomSetCommand uint8 = 0x07
	qmkCustomGetCommand uint8 = 0x08
	qmkKeymapGetCommand uint8 = 0x12
)

// Custom channel (payload byte 1 when command is a custom get/set) and its
// subcommands (payload byte 2).
const (
	qmkCustomChannel           uint8 = 0x00
	qmkCommandMatrixChroma     uint8 = 0x01
	qmkCommandMatrixBrightness uint8 = 0x02
)

// RGB matrix channel and its subcommands.
const (
	qmkRGBMatrixChannel  uint8 = 0x03
	qmkCommandBrightness uint8 = 0x01
	qmkCommandEffect     uint8 = 0x02
	qmkCommandSpeed      uint8 = 0x03
	qmkCommandColor      uint8 = 0x04
)

// qmkSaveCommand persists the active RGB matrix config to the device's
// onboard EEPROM.
const qmkSaveCommand uint8 = 0x09
