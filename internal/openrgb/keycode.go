package openrgb

var keycodeNames = map[uint16]string{
	1:   "Right Fn",
	4:   "A",
	5:   "B",
	6:   "C",
	7:   "D",
	8:   "E",
	9:   "F",
	10:  "G",
	11:  "H",
	12:  "I",
	13:  "J",
	14:  "K",
	15:  "L",
	16:  "M",
	17:  "N",
	18:  "O",
	19:  "P",
	20:  "Q",
	21:  "R",
	22:  "S",
	23:  "T",
	24:  "U",
	25:  "V",
	26:  "W",
	27:  "X",
	28:  "Y",
	29:  "Z",
	30:  "1",
	31:  "2",
	32:  "3",
	33:  "4",
	34:  "5",
	35:  "6",
	36:  "7",
	37:  "8",
	38:  "9",
	39:  "0",
	40:  "Enter",
	41:  "Escape",
	42:  "Backspace",
	43:  "Tab",
	44:  "Space",
	45:  "-",
	46:  "=",
	47:  "[",
	48:  "]",
	49:  "\\",
	50:  "#",
	51:  ";",
	52:  "'",
	53:  "`",
	54:  ",",
	55:  ".",
	56:  "/",
	57:  "Caps Lock",
	58:  "F1",
	59:  "F2",
	60:  "F3",
	61:  "F4",
	62:  "F5",
	63:  "F6",
	64:  "F7",
	65:  "F8",
	66:  "F9",
	67:  "F10",
	68:  "F11",
	69:  "F12",
	70:  "Print Screen",
	71:  "Scroll Lock",
	72:  "Pause/Break",
	73:  "Insert",
	74:  "Home",
	75:  "Page Up",
	76:  "Delete",
	77:  "End",
	78:  "Page Down",
	79:  "Right Arrow",
	80:  "Left Arrow",
	81:  "Down Arrow",
	82:  "Up Arrow",
	83:  "Num Lock",
	84:  "Number Pad /",
	85:  "Number Pad *",
	86:  "Number Pad -",
	87:  "Number Pad +",
	88:  "Number Pad Enter",
	89:  "Number Pad 1",
	90:  "Number Pad 2",
	91:  "Number Pad 3",
	92:  "Number Pad 4",
	93:  "Number Pad 5",
	94:  "Number Pad 6",
	95:  "Number Pad 7",
	96:  "Number Pad 8",
	97:  "Number Pad 9",
	98:  "Number Pad 0",
	99:  "Number Pad .",
	100: "\\ (ISO)",
	101: "Menu",
	104: "F13",
	105: "F14",
	106: "F15",
	107: "F16",
	168: "Media Mute",
	169: "Media Volume +",
	170: "Media Volume -",
	171: "Media Next",
	172: "Media Previous",
	173: "Media Stop",
	174: "Media Play/Pause",
	175: "Media Select",
	176: "Media Eject",
	189: "Brightness Up",
	190: "Brightness Down",
	196: "Task Manager",
	202: "RGB Brightness Up",
	203: "RGB Brightness Down",
	216: "Left Shift",
	217: "Right Shift",
	224: "Left Control",
	225: "Left Shift",
	226: "Left Alt",
	227: "Left Windows",
	228: "Right Control",
	229: "Right Shift",
	230: "Right Alt",
	231: "Right Windows",
}

// KeycodeName maps a QMK keycode to the display name OpenRGB shows for a
// keyboard LED. An unlisted keycode whose low five bits are non-zero is
// named "Right Fn"; any other unlisted keycode is "Unknown".
func KeycodeName(keycode uint16) string {
	if name, ok := keycodeNames[keycode]; ok {
		return name
	}
	if keycode&0x1f != 0 {
		return "Right Fn"
	}
	return "Unknown"
}
