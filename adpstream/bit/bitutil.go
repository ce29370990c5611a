package bit

// IsSet reports whether the bit at the specified index is set to 1.
func IsSet(index uint8, value uint32) bool {
	return ((value >> index) & 1) == 1
}

// Clear returns value with the bit at the specified index set to 0.
func Clear(index uint8, value uint32) uint32 {
	return value &^ (1 << index)
}

// Set returns value with the bit at the specified index set to 1.
func Set(index uint8, value uint32) uint32 {
	return value | (1 << index)
}

// Assign returns value with the bit at index set or cleared depending on on.
func Assign(index uint8, value uint32, on bool) uint32 {
	if on {
		return Set(index, value)
	}
	return Clear(index, value)
}

// Low returns the low nibble of a byte.
func Low(value uint8) uint8 {
	return value & 0x0F
}

// High returns the high nibble of a byte.
func High(value uint8) uint8 {
	return value >> 4
}

// SignExtend4 interprets the low 4 bits of value as a two's complement number.
func SignExtend4(value uint8) int32 {
	return int32(int8(value<<4) >> 4)
}
