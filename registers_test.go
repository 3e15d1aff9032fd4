package nrf24l01

import (
	"bytes"
	"errors"
	"testing"
)

func TestRegisterMap(t *testing.T) {
	want := []struct {
		name    string
		address byte
	}{
		{"CONFIG", 0x00},
		{"EN_AA", 0x01},
		{"EN_RXADDR", 0x02},
		{"SETUP_AW", 0x03},
		{"SETUP_RETR", 0x04},
		{"RF_CH", 0x05},
		{"RF_SETUP", 0x06},
		{"STATUS", 0x07},
		{"OBSERVE_TX", 0x08},
		{"RPD", 0x09},
		{"RX_ADDR_P0", 0x0A},
		{"RX_ADDR_P1", 0x0B},
		{"RX_ADDR_P2", 0x0C},
		{"RX_ADDR_P3", 0x0D},
		{"RX_ADDR_P4", 0x0E},
		{"RX_ADDR_P5", 0x0F},
		{"TX_ADDR", 0x10},
		{"RX_PW_P0", 0x11},
		{"RX_PW_P1", 0x12},
		{"RX_PW_P2", 0x13},
		{"RX_PW_P3", 0x14},
		{"RX_PW_P4", 0x15},
		{"RX_PW_P5", 0x16},
		{"FIFO_STATUS", 0x17},
		{"DYNPD", 0x1C},
		{"FEATURE", 0x1D},
	}
	regs := Registers()
	if len(regs) != len(want) {
		t.Fatalf("%d registers, want %d", len(regs), len(want))
	}
	for i, w := range want {
		if regs[i].Name != w.name || regs[i].Address != w.address {
			t.Errorf("register %d == %s/%02X, want %s/%02X", i, regs[i].Name, regs[i].Address, w.name, w.address)
		}
	}
	seen := make(map[byte]string)
	for _, r := range regs {
		if r.Address > addressMask {
			t.Errorf("%s: address %02X does not fit in 5 bits", r.Name, r.Address)
		}
		if other, dup := seen[r.Address]; dup {
			t.Errorf("%s and %s share address %02X", r.Name, other, r.Address)
		}
		seen[r.Address] = r.Name
		switch r.Width {
		case 1:
		case 5:
			if len(r.Fields) != 0 {
				t.Errorf("%s: multi-byte register has fields", r.Name)
			}
		default:
			t.Errorf("%s: width %d", r.Name, r.Width)
		}
		if r.Reset >= 1<<(8*uint(r.Width)) {
			t.Errorf("%s: reset value %X wider than %d bytes", r.Name, r.Reset, r.Width)
		}
		var used byte
		for _, f := range r.Fields {
			if f.Length < 1 || f.Length > 7 || f.Offset+f.Length > 8 {
				t.Errorf("%s.%s: bits %d+%d out of range", r.Name, f.Name, f.Offset, f.Length)
				continue
			}
			m := byte(mask(f.Length) << f.Offset)
			if used&m != 0 {
				t.Errorf("%s.%s overlaps another field", r.Name, f.Name)
			}
			used |= m
			if x := Extract(byte(r.Reset), f.Length, f.Offset); x != f.Reset {
				t.Errorf("%s.%s: reset %X, register reset implies %X", r.Name, f.Name, f.Reset, x)
			}
		}
	}
}

func TestLookup(t *testing.T) {
	cases := []struct {
		name    string
		address byte
		width   int
	}{
		{"CONFIG", 0x00, 1},
		{"STATUS", 0x07, 1},
		{"RX_ADDR_P0", 0x0A, 5},
		{"RX_ADDR_P1", 0x0B, 5},
		{"RX_ADDR_P5", 0x0F, 1},
		{"TX_ADDR", 0x10, 5},
		{"RX_PW_P5", 0x16, 1},
		{"FIFO_STATUS", 0x17, 1},
		{"DYNPD", 0x1C, 1},
		{"FEATURE", 0x1D, 1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r, err := Lookup(c.name)
			if err != nil {
				t.Fatal(err)
			}
			if r.Address != c.address || r.Width != c.width {
				t.Errorf("Lookup(%s) == %02X/%d, want %02X/%d", c.name, r.Address, r.Width, c.address, c.width)
			}
		})
	}
	_, err := Lookup("NOT_A_REGISTER")
	if !errors.Is(err, ErrUnknownRegister) {
		t.Errorf("Lookup(NOT_A_REGISTER) error == %v, want %v", err, ErrUnknownRegister)
	}
}

func TestLookupField(t *testing.T) {
	f, err := LookupField("CONFIG", "PWR_UP")
	if err != nil {
		t.Fatal(err)
	}
	if f.Offset != 1 || f.Length != 1 {
		t.Errorf("CONFIG.PWR_UP == %d+%d, want 1+1", f.Offset, f.Length)
	}
	f, err = LookupField("STATUS", "RX_P_NO")
	if err != nil {
		t.Fatal(err)
	}
	if f.Offset != 1 || f.Length != 3 || f.Reset != 7 {
		t.Errorf("STATUS.RX_P_NO == %+v", f)
	}
	cases := []struct {
		reg, field string
		err        error
	}{
		{"RX_ADDR_P0", "anything", ErrInvalidForMultiByteRegister},
		{"TX_ADDR", "PWR_UP", ErrInvalidForMultiByteRegister},
		{"CONFIG", "RX_DR", ErrUnknownField},
		{"NOT_A_REGISTER", "PWR_UP", ErrUnknownRegister},
	}
	for _, c := range cases {
		_, err := LookupField(c.reg, c.field)
		if !errors.Is(err, c.err) {
			t.Errorf("LookupField(%s, %s) error == %v, want %v", c.reg, c.field, err, c.err)
		}
	}
}

func TestResetBytes(t *testing.T) {
	cases := []struct {
		name string
		rep  []byte
	}{
		{"CONFIG", []byte{0x08}},
		{"STATUS", []byte{0x0E}},
		{"RX_ADDR_P1", []byte{0xC2, 0xC2, 0xC2, 0xC2, 0xC2}},
		{"RX_ADDR_P2", []byte{0xC3}},
		{"FIFO_STATUS", []byte{0x11}},
	}
	for _, c := range cases {
		r, _ := Lookup(c.name)
		if rep := r.ResetBytes(); !bytes.Equal(rep, c.rep) {
			t.Errorf("%s.ResetBytes() == % X, want % X", c.name, rep, c.rep)
		}
	}
}

func TestRegistersIsCopy(t *testing.T) {
	regs := Registers()
	regs[0].Name = "CLOBBERED"
	if _, err := Lookup("CONFIG"); err != nil {
		t.Errorf("register map modified through Registers(): %v", err)
	}
	if registers[0].Name != "CONFIG" {
		t.Errorf("register map modified through Registers()")
	}
	regs[0].Fields[0].Name = "CLOBBERED"
	if _, err := LookupField("CONFIG", "MASK_RX_DR"); err != nil {
		t.Errorf("fields modified through Registers(): %v", err)
	}
	r, err := Lookup("CONFIG")
	if err != nil {
		t.Fatal(err)
	}
	r.Fields[0].Name = "CLOBBERED"
	r.Fields[1].Offset = 0
	f, err := LookupField("CONFIG", "MASK_RX_DR")
	if err != nil {
		t.Errorf("fields modified through Lookup(): %v", err)
	}
	if f.Offset != 6 {
		t.Errorf("CONFIG.MASK_RX_DR offset == %d, want 6", f.Offset)
	}
	f, err = LookupField("CONFIG", "MASK_TX_DS")
	if err != nil || f.Offset != 5 {
		t.Errorf("CONFIG.MASK_TX_DS == %+v, %v; fields modified through Lookup()", f, err)
	}
}
