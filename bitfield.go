package nrf24l01

import (
	"github.com/pkg/errors"
)

func mask(length uint) uint {
	return 1<<length - 1
}

// Extract returns the length-bit field of v whose least-significant bit is at offset.
func Extract(v byte, length, offset uint) byte {
	return byte(mask(length) & (uint(v) >> offset))
}

// Inject returns v with the length-bit field at offset replaced by x.
func Inject(v byte, length, offset uint, x byte) (byte, error) {
	m := mask(length)
	if uint(x) > m {
		return v, errors.Wrapf(ErrFieldValueOutOfRange, "%d does not fit in %d bits", x, length)
	}
	return byte(uint(v)&^(m<<offset) | (uint(x)&m)<<offset), nil
}
