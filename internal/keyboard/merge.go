package keyboard

// mergeColors merges two pending UpdateColors operations into one,
// computing the minimal sequence covering both ranges. Gaps between the
// two ranges are filled with the "do not touch" sentinel (nil); where both
// writes cover the same index, the newer write (colorsNew/offsetNew) wins.
func mergeColors(colorsOld []*RGB, offsetOld int, colorsNew []*RGB, offsetNew int) ([]*RGB, int) {
	var left, right []*RGB
	var offsetLeft, offsetRight int
	newIsLeft := false

	if offsetOld < offsetNew {
		left, offsetLeft = colorsOld, offsetOld
		right, offsetRight = colorsNew, offsetNew
	} else {
		left, offsetLeft = colorsNew, offsetNew
		right, offsetRight = colorsOld, offsetOld
		newIsLeft = true
	}

	leftLen := len(left)
	rightLen := len(right)

	gap := offsetRight - (offsetLeft + leftLen)
	newLen := max(leftLen, leftLen+gap+rightLen)

	var writeOffset int
	if newIsLeft {
		writeOffset = max(leftLen+gap, leftLen)
	} else {
		writeOffset = leftLen + gap
	}

	var writeCount int
	if newIsLeft {
		writeCount = max(0, min(rightLen+gap, rightLen))
	} else {
		writeCount = rightLen
	}

	merged := make([]*RGB, newLen)
	copy(merged, left)
	copy(merged[writeOffset:writeOffset+writeCount], right[rightLen-writeCount:rightLen])

	return merged, offsetLeft
}
