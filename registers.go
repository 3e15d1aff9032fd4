package nrf24l01

import (
	"github.com/pkg/errors"
)

// Field describes a named bit range within a single-byte register.
type Field struct {
	Name   string
	Offset uint // bit position of the least-significant bit
	Length uint // number of bits
	Reset  byte // value after reset
}

// Register describes an nRF24L01 register.
// Multi-byte registers (pipe addresses) have no fields.
type Register struct {
	Name    string
	Address byte
	Width   int    // number of data bytes
	Reset   uint64 // power-on reset value
	Fields  []Field
}

// Register map from the nRF24L01+ datasheet, section 9.1, table 28.
var registers = []Register{
	{Name: "CONFIG", Address: 0x00, Width: 1, Reset: 0x08, Fields: []Field{
		{"MASK_RX_DR", 6, 1, 0},
		{"MASK_TX_DS", 5, 1, 0},
		{"MASK_MAX_RT", 4, 1, 0},
		{"EN_CRC", 3, 1, 1},
		{"CRCO", 2, 1, 0},
		{"PWR_UP", 1, 1, 0},
		{"PRIM_RX", 0, 1, 0},
	}},
	{Name: "EN_AA", Address: 0x01, Width: 1, Reset: 0x3F, Fields: []Field{
		{"ENAA_P5", 5, 1, 1},
		{"ENAA_P4", 4, 1, 1},
		{"ENAA_P3", 3, 1, 1},
		{"ENAA_P2", 2, 1, 1},
		{"ENAA_P1", 1, 1, 1},
		{"ENAA_P0", 0, 1, 1},
	}},
	{Name: "EN_RXADDR", Address: 0x02, Width: 1, Reset: 0x03, Fields: []Field{
		{"ERX_P5", 5, 1, 0},
		{"ERX_P4", 4, 1, 0},
		{"ERX_P3", 3, 1, 0},
		{"ERX_P2", 2, 1, 0},
		{"ERX_P1", 1, 1, 1},
		{"ERX_P0", 0, 1, 1},
	}},
	{Name: "SETUP_AW", Address: 0x03, Width: 1, Reset: 0x03, Fields: []Field{
		{"AW", 0, 2, 3},
	}},
	{Name: "SETUP_RETR", Address: 0x04, Width: 1, Reset: 0x03, Fields: []Field{
		{"ARD", 4, 4, 0},
		{"ARC", 0, 4, 3},
	}},
	{Name: "RF_CH", Address: 0x05, Width: 1, Reset: 0x02, Fields: []Field{
		{"RF_CH", 0, 7, 2},
	}},
	{Name: "RF_SETUP", Address: 0x06, Width: 1, Reset: 0x0E, Fields: []Field{
		{"CONT_WAVE", 7, 1, 0},
		{"RF_DR_LOW", 5, 1, 0},
		{"PLL_LOCK", 4, 1, 0},
		{"RF_DR_HIGH", 3, 1, 1},
		{"RF_PWR", 1, 2, 3},
	}},
	{Name: "STATUS", Address: 0x07, Width: 1, Reset: 0x0E, Fields: []Field{
		{"RX_DR", 6, 1, 0},
		{"TX_DS", 5, 1, 0},
		{"MAX_RT", 4, 1, 0},
		{"RX_P_NO", 1, 3, 7},
		{"TX_FULL", 0, 1, 0},
	}},
	{Name: "OBSERVE_TX", Address: 0x08, Width: 1, Reset: 0x00, Fields: []Field{
		{"PLOS_CNT", 4, 4, 0},
		{"ARC_CNT", 0, 4, 0},
	}},
	{Name: "RPD", Address: 0x09, Width: 1, Reset: 0x00, Fields: []Field{
		{"RPD", 0, 1, 0},
	}},
	{Name: "RX_ADDR_P0", Address: 0x0A, Width: 5, Reset: 0xE7E7E7E7E7},
	{Name: "RX_ADDR_P1", Address: 0x0B, Width: 5, Reset: 0xC2C2C2C2C2},
	{Name: "RX_ADDR_P2", Address: 0x0C, Width: 1, Reset: 0xC3},
	{Name: "RX_ADDR_P3", Address: 0x0D, Width: 1, Reset: 0xC4},
	{Name: "RX_ADDR_P4", Address: 0x0E, Width: 1, Reset: 0xC5},
	{Name: "RX_ADDR_P5", Address: 0x0F, Width: 1, Reset: 0xC6},
	{Name: "TX_ADDR", Address: 0x10, Width: 5, Reset: 0xE7E7E7E7E7},
	{Name: "RX_PW_P0", Address: 0x11, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P0", 0, 6, 0},
	}},
	{Name: "RX_PW_P1", Address: 0x12, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P1", 0, 6, 0},
	}},
	{Name: "RX_PW_P2", Address: 0x13, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P2", 0, 6, 0},
	}},
	{Name: "RX_PW_P3", Address: 0x14, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P3", 0, 6, 0},
	}},
	{Name: "RX_PW_P4", Address: 0x15, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P4", 0, 6, 0},
	}},
	{Name: "RX_PW_P5", Address: 0x16, Width: 1, Reset: 0x00, Fields: []Field{
		{"RX_PW_P5", 0, 6, 0},
	}},
	{Name: "FIFO_STATUS", Address: 0x17, Width: 1, Reset: 0x11, Fields: []Field{
		{"TX_REUSE", 6, 1, 0},
		{"TX_FULL", 5, 1, 0},
		{"TX_EMPTY", 4, 1, 1},
		{"RX_FULL", 1, 1, 0},
		{"RX_EMPTY", 0, 1, 1},
	}},
	{Name: "DYNPD", Address: 0x1C, Width: 1, Reset: 0x00, Fields: []Field{
		{"DPL_P5", 5, 1, 0},
		{"DPL_P4", 4, 1, 0},
		{"DPL_P3", 3, 1, 0},
		{"DPL_P2", 2, 1, 0},
		{"DPL_P1", 1, 1, 0},
		{"DPL_P0", 0, 1, 0},
	}},
	{Name: "FEATURE", Address: 0x1D, Width: 1, Reset: 0x00, Fields: []Field{
		{"EN_DPL", 2, 1, 0},
		{"EN_ACK_PAY", 1, 1, 0},
		{"EN_DYN_ACK", 0, 1, 0},
	}},
}

var registerIndex = make(map[string]int, len(registers))

func init() {
	for i, r := range registers {
		registerIndex[r.Name] = i
	}
}

// Registers returns the register map in address order.
func Registers() []Register {
	regs := make([]Register, len(registers))
	for i, r := range registers {
		regs[i] = r.clone()
	}
	return regs
}

func (r Register) clone() Register {
	if r.Fields != nil {
		r.Fields = append([]Field(nil), r.Fields...)
	}
	return r
}

// Lookup returns the description of the named register.
func Lookup(name string) (Register, error) {
	i, ok := registerIndex[name]
	if !ok {
		return Register{}, errors.Wrapf(ErrUnknownRegister, "%q", name)
	}
	return registers[i].clone(), nil
}

// LookupField returns the description of the named field of a register.
func LookupField(reg, field string) (Field, error) {
	r, err := Lookup(reg)
	if err != nil {
		return Field{}, err
	}
	if r.Width > 1 {
		return Field{}, errors.Wrapf(ErrInvalidForMultiByteRegister, "%s", reg)
	}
	for _, f := range r.Fields {
		if f.Name == field {
			return f, nil
		}
	}
	return Field{}, errors.Wrapf(ErrUnknownField, "%s.%s", reg, field)
}

// Bytes returns v as the register's contents in transmission order.
func (r Register) Bytes(v uint64) []byte {
	return marshalUint(v, r.Width)
}

// ResetBytes returns the register's reset value in transmission order.
func (r Register) ResetBytes() []byte {
	return r.Bytes(r.Reset)
}

// Decode returns the value of each field in the register byte v.
func (r Register) Decode(v byte) map[string]byte {
	m := make(map[string]byte, len(r.Fields))
	for _, f := range r.Fields {
		m[f.Name] = Extract(v, f.Length, f.Offset)
	}
	return m
}
