package hwio

func Bit(v uint8, n uint) bool {
	return Biti(v, n) != 0
}

func Biti(v uint8, n uint) uint8 {
	return v >> n & 0x01
}

func SetBit(v *uint8, n uint) {
	*v |= 1 << n
}

func ClearBit(v *uint8, n uint) {
	*v &= ^(uint8(1) << n)
}

// PutBit sets or clears bit n of *v according to b.
func PutBit(v *uint8, n uint, b bool) {
	if b {
		SetBit(v, n)
	} else {
		ClearBit(v, n)
	}
}
