package nrf24l01

import (
	"fmt"
)

// Command represents an nRF24L01 SPI command word.
// See the nRF24L01+ datasheet, section 8.3.1, table 20.
type Command byte

const (
	R_REGISTER         Command = 0x00 // OR'd with a 5-bit register address
	W_REGISTER         Command = 0x20 // OR'd with a 5-bit register address
	R_RX_PAYLOAD       Command = 0x61
	W_TX_PAYLOAD       Command = 0xA0
	FLUSH_TX           Command = 0xE1
	FLUSH_RX           Command = 0xE2
	REUSE_TX_PL        Command = 0xE3
	R_RX_PL_WID        Command = 0x60
	W_ACK_PAYLOAD      Command = 0xA8 // OR'd with a 3-bit pipe index
	W_TX_PAYLOAD_NOACK Command = 0xB0
	NOP                Command = 0xFF
)

const (
	addressMask = 0x1F

	// MaxPayload is the size of the TX and RX FIFO entries.
	MaxPayload = 32

	// NumPipes is the number of receive data pipes.
	NumPipes = 6
)

var commandNames = map[Command]string{
	R_REGISTER:         "R_REGISTER",
	W_REGISTER:         "W_REGISTER",
	R_RX_PAYLOAD:       "R_RX_PAYLOAD",
	W_TX_PAYLOAD:       "W_TX_PAYLOAD",
	FLUSH_TX:           "FLUSH_TX",
	FLUSH_RX:           "FLUSH_RX",
	REUSE_TX_PL:        "REUSE_TX_PL",
	R_RX_PL_WID:        "R_RX_PL_WID",
	W_ACK_PAYLOAD:      "W_ACK_PAYLOAD",
	W_TX_PAYLOAD_NOACK: "W_TX_PAYLOAD_NOACK",
	NOP:                "NOP",
}

func (c Command) String() string {
	if s, ok := commandNames[c]; ok {
		return s
	}
	switch {
	case c&^addressMask == R_REGISTER:
		return fmt.Sprintf("R_REGISTER(%02X)", byte(c&addressMask))
	case c&^addressMask == W_REGISTER:
		return fmt.Sprintf("W_REGISTER(%02X)", byte(c&addressMask))
	case c&^0x07 == W_ACK_PAYLOAD:
		return fmt.Sprintf("W_ACK_PAYLOAD(%d)", byte(c&0x07))
	}
	return fmt.Sprintf("Command(%02X)", byte(c))
}
