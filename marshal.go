package nrf24l01

// Marshaling of multi-byte register values.
// The chip transfers them least-significant byte first.

func marshalUint(n uint64, width int) []byte {
	b := make([]byte, width)
	for i := range b {
		b[i] = byte(n >> (8 * uint(i)))
	}
	return b
}

func unmarshalUint(b []byte) uint64 {
	var n uint64
	for i := len(b) - 1; i >= 0; i-- {
		n = n<<8 | uint64(b[i])
	}
	return n
}
