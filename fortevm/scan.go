package fortevm

// skipForward returns the offset just past the closer matching an opener
// that sits right before v.IP. Without a closer the rest of the code is
// skipped.
func (v *VM) skipForward(opener, closer OpCode) int {
	depth := 1
	for i := v.IP; i < len(v.Code); i++ {
		switch v.Code[i] {
		case opener:
			depth++
		case closer:
			depth--
		}
		if depth == 0 {
			return i + 1
		}
	}
	return len(v.Code)
}

// scanBackward finds the loop-enter marker matching the loop-exit marker
// just executed and returns the offset of the first body instruction.
func (v *VM) scanBackward() (int, bool) {
	depth := 1
	for i := v.IP - 2; i >= 0; i-- {
		switch v.Code[i] {
		case OpWhile:
			depth--
		case OpUntil:
			depth++
		}
		if depth == 0 {
			return i + 1, true
		}
	}
	return 0, false
}
