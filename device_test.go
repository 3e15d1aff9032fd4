package nrf24l01

import (
	"bytes"
	"errors"
	"testing"
)

type rxPacket struct {
	pipe int
	data []byte
}

// fakeChip emulates the register file and FIFOs of an nRF24L01.
type fakeChip struct {
	regs   map[byte][]byte
	stuck  map[byte]bool // registers that ignore writes
	rx     []rxPacket
	tx     [][]byte
	frames []Frame
	ce     []bool
}

func newFakeChip() *fakeChip {
	c := &fakeChip{
		regs:  make(map[byte][]byte),
		stuck: make(map[byte]bool),
	}
	for _, r := range registers {
		c.regs[r.Address] = r.ResetBytes()
	}
	return c
}

func (c *fakeChip) reg(name string) []byte {
	r, _ := Lookup(name)
	return c.regs[r.Address]
}

func (c *fakeChip) status() byte {
	s := c.regs[0x07][0]
	pipe := byte(RXPipeEmpty)
	if len(c.rx) != 0 {
		pipe = byte(c.rx[0].pipe)
	}
	s, _ = Inject(s, 3, statusRXPNO, pipe)
	return s
}

func (c *fakeChip) Exchange(f Frame) ([]byte, error) {
	c.frames = append(c.frames, f)
	resp := make([]byte, f.ResponseLength())
	resp[0] = c.status()
	cmd := f.Command
	switch {
	case cmd&^addressMask == R_REGISTER:
		copy(resp[1:], c.regs[byte(cmd&addressMask)])
	case cmd&^addressMask == W_REGISTER:
		addr := byte(cmd & addressMask)
		if c.stuck[addr] {
			break
		}
		if addr == 0x07 {
			// Interrupt flags are cleared by writing 1.
			c.regs[addr][0] &^= f.Payload[0] & clearInterrupts
			break
		}
		c.regs[addr] = append([]byte(nil), f.Payload...)
	case cmd == R_RX_PL_WID:
		if len(c.rx) != 0 {
			resp[1] = byte(len(c.rx[0].data))
		}
	case cmd == R_RX_PAYLOAD:
		if len(c.rx) != 0 {
			copy(resp[1:], c.rx[0].data)
			c.rx = c.rx[1:]
		}
	case cmd == W_TX_PAYLOAD, cmd == W_TX_PAYLOAD_NOACK:
		c.tx = append(c.tx, f.Payload)
	case cmd == FLUSH_TX:
		c.tx = nil
	case cmd == FLUSH_RX:
		c.rx = nil
	}
	return resp, nil
}

func (c *fakeChip) SetCE(high bool) error {
	c.ce = append(c.ce, high)
	return nil
}

func TestReadWriteRegister(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	v, err := d.ReadRegister("CONFIG")
	if err != nil {
		t.Fatal(err)
	}
	if v.Data[0] != 0x08 || v.Fields["EN_CRC"] != 1 {
		t.Errorf("CONFIG == %02X %v", v.Data[0], v.Fields)
	}
	if v.Status != 0x0E {
		t.Errorf("status == %02X, want 0E", byte(v.Status))
	}
	addr := []byte{1, 2, 3, 4, 5}
	if _, err := d.WriteRegister("TX_ADDR", addr); err != nil {
		t.Fatal(err)
	}
	v, err = d.ReadRegister("TX_ADDR")
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(v.Data, addr) || v.Uint() != 0x0504030201 {
		t.Errorf("TX_ADDR == % X (%X)", v.Data, v.Uint())
	}
	if _, err := d.WriteRegister("TX_ADDR", addr[:3]); !errors.Is(err, ErrInvalidPayloadLength) {
		t.Errorf("short write: error == %v, want %v", err, ErrInvalidPayloadLength)
	}
	if len(c.frames) != 3 {
		t.Errorf("%d frames sent, want 3", len(c.frames))
	}
}

func TestFieldAccess(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	if err := d.SetField("CONFIG", "PWR_UP", 1); err != nil {
		t.Fatal(err)
	}
	if got := c.reg("CONFIG")[0]; got != 0x0A {
		t.Errorf("CONFIG == %02X, want 0A", got)
	}
	x, err := d.ReadField("CONFIG", "PWR_UP")
	if err != nil || x != 1 {
		t.Errorf("ReadField(CONFIG, PWR_UP) == %d, %v", x, err)
	}
	if err := d.SetField("SETUP_RETR", "ARD", 16); !errors.Is(err, ErrFieldValueOutOfRange) {
		t.Errorf("error == %v, want %v", err, ErrFieldValueOutOfRange)
	}
	if err := d.SetField("TX_ADDR", "AW", 1); !errors.Is(err, ErrInvalidForMultiByteRegister) {
		t.Errorf("error == %v, want %v", err, ErrInvalidForMultiByteRegister)
	}
	if err := d.SetField("CONFIG", "BOGUS", 1); !errors.Is(err, ErrUnknownField) {
		t.Errorf("error == %v, want %v", err, ErrUnknownField)
	}
	if got := c.reg("SETUP_RETR")[0]; got != 0x03 {
		t.Errorf("SETUP_RETR == %02X after failed write", got)
	}
}

func TestReset(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	c.regs[0x00] = []byte{0x0B}
	c.regs[0x10] = []byte{1, 2, 3, 4, 5}
	c.regs[0x07] = []byte{0x7E}
	c.rx = []rxPacket{{1, []byte{1}}}
	c.tx = [][]byte{{2}}
	if err := d.Reset(); err != nil {
		t.Fatal(err)
	}
	for _, r := range registers {
		if volatileRegisters[r.Name] {
			continue
		}
		if got := c.regs[r.Address]; !bytes.Equal(got, r.ResetBytes()) {
			t.Errorf("%s == % X, want % X", r.Name, got, r.ResetBytes())
		}
	}
	if s := c.status(); s != 0x0E {
		t.Errorf("status == %02X after reset, want 0E", s)
	}
	if len(c.rx) != 0 || len(c.tx) != 0 {
		t.Errorf("FIFOs not flushed: rx %d tx %d", len(c.rx), len(c.tx))
	}
}

func TestResetVerify(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	c.regs[0x05] = []byte{0x40}
	c.stuck[0x05] = true
	err := d.Reset()
	if !errors.Is(err, ErrVerify) {
		t.Fatalf("error == %v, want %v", err, ErrVerify)
	}
	// The rest of the registers are still reset.
	if got := c.reg("TX_ADDR"); !bytes.Equal(got, []byte{0xE7, 0xE7, 0xE7, 0xE7, 0xE7}) {
		t.Errorf("TX_ADDR == % X", got)
	}
}

func TestStatistics(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	if _, err := d.WriteTxPayload([]byte{1, 2, 3}); err != nil {
		t.Fatal(err)
	}
	if _, err := d.WriteTxPayloadNoAck([]byte{4}); err != nil {
		t.Fatal(err)
	}
	c.rx = []rxPacket{{0, []byte{5, 6}}}
	if _, _, err := d.ReadRxPayload(2); err != nil {
		t.Fatal(err)
	}
	stats := d.Statistics()
	if stats.Packets.Sent != 2 || stats.Bytes.Sent != 4 {
		t.Errorf("sent %d packets, %d bytes; want 2, 4", stats.Packets.Sent, stats.Bytes.Sent)
	}
	if stats.Packets.Received != 1 || stats.Bytes.Received != 2 {
		t.Errorf("received %d packets, %d bytes; want 1, 2", stats.Packets.Received, stats.Bytes.Received)
	}
}

func TestCommands(t *testing.T) {
	c := newFakeChip()
	d := New(c)
	c.rx = []rxPacket{{3, []byte{9, 8, 7}}}
	s, err := d.Nop()
	if err != nil {
		t.Fatal(err)
	}
	if s.RXPipe() != 3 {
		t.Errorf("RXPipe() == %d, want 3", s.RXPipe())
	}
	_, n, err := d.ReadRxPayloadWidth()
	if err != nil || n != 3 {
		t.Errorf("ReadRxPayloadWidth() == %d, %v", n, err)
	}
	if _, err := d.FlushRX(); err != nil {
		t.Fatal(err)
	}
	if len(c.rx) != 0 {
		t.Errorf("RX FIFO has %d entries after flush", len(c.rx))
	}
	if _, err := d.WriteAckPayload([]byte{1}, 2); err != nil {
		t.Fatal(err)
	}
	if _, err := d.WriteAckPayload([]byte{1}, NumPipes); !errors.Is(err, ErrInvalidPipeIndex) {
		t.Errorf("error == %v, want %v", err, ErrInvalidPipeIndex)
	}
	if _, err := d.ReuseTxPayload(); err != nil {
		t.Fatal(err)
	}
	want := []Command{NOP, R_RX_PL_WID, FLUSH_RX, W_ACK_PAYLOAD | 2, REUSE_TX_PL}
	if len(c.frames) != len(want) {
		t.Fatalf("%d frames sent, want %d", len(c.frames), len(want))
	}
	for i, f := range c.frames {
		if f.Command != want[i] {
			t.Errorf("frame %d: %v, want %v", i, f.Command, want[i])
		}
	}
}
