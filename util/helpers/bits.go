package helpers

// GetBit reports whether bit idx (0 is the least significant) of b is set.
func GetBit(b uint8, idx int) bool {
	return b&(1<<idx) != 0
}

func SetBit(b *uint8, idx int, value bool) {
	if value {
		*b |= 1 << idx
	} else {
		*b &^= 1 << idx
	}
}
