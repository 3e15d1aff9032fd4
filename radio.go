package nrf24l01

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// nRF24L01 RF constants.
const (
	BaseFrequency  = 2400000000 // Hz, channel 0
	ChannelSpacing = 1000000    // Hz
	MaxChannel     = 125

	clearInterrupts = 1<<statusRXDR | 1<<statusTXDS | 1<<statusMAXRT

	cePulse             = 15 * time.Microsecond // must exceed 10µs
	receivePollInterval = 10 * time.Millisecond
)

// Registers holding chip state rather than configuration.
// They are not written during Reset.
var volatileRegisters = map[string]bool{
	"STATUS":      true,
	"OBSERVE_TX":  true,
	"RPD":         true,
	"FIFO_STATUS": true,
}

// ReadField returns the value of a field of a single-byte register.
func (d *Device) ReadField(reg, field string) (byte, error) {
	f, err := LookupField(reg, field)
	if err != nil {
		return 0, err
	}
	v, err := d.ReadRegister(reg)
	if err != nil {
		return 0, err
	}
	return Extract(v.Data[0], f.Length, f.Offset), nil
}

// SetField changes one field of a single-byte register,
// leaving the other bits as they are.
func (d *Device) SetField(reg, field string, x byte) error {
	f, err := LookupField(reg, field)
	if err != nil {
		return err
	}
	v, err := d.ReadRegister(reg)
	if err != nil {
		return err
	}
	b, err := Inject(v.Data[0], f.Length, f.Offset, x)
	if err != nil {
		return errors.Wrapf(err, "%s.%s", reg, field)
	}
	_, err = d.WriteRegister(reg, []byte{b})
	return err
}

// Status returns the STATUS and FIFO_STATUS registers.
func (d *Device) Status() (RegisterValue, RegisterValue, error) {
	s, err := d.ReadRegister("STATUS")
	if err != nil {
		return s, RegisterValue{}, err
	}
	f, err := d.ReadRegister("FIFO_STATUS")
	return s, f, err
}

// ClearInterrupts clears the RX_DR, TX_DS and MAX_RT flags.
func (d *Device) ClearInterrupts() error {
	_, err := d.WriteRegister("STATUS", []byte{clearInterrupts})
	return err
}

// Reset writes every configuration register to its reset value,
// reads it back, and flushes both FIFOs.
// Registers that do not read back as written are reported with ErrVerify.
func (d *Device) Reset() error {
	var failed []string
	for _, r := range registers {
		if volatileRegisters[r.Name] {
			continue
		}
		want := r.ResetBytes()
		log.Debugf("resetting %s to % X", r.Name, want)
		if _, err := d.WriteRegister(r.Name, want); err != nil {
			return err
		}
		v, err := d.ReadRegister(r.Name)
		if err != nil {
			return err
		}
		if !bytes.Equal(v.Data, want) {
			log.Debugf("%s reads back % X", r.Name, v.Data)
			failed = append(failed, r.Name)
		}
	}
	if err := d.ClearInterrupts(); err != nil {
		return err
	}
	if _, err := d.FlushTX(); err != nil {
		return err
	}
	if _, err := d.FlushRX(); err != nil {
		return err
	}
	if len(failed) != 0 {
		return errors.Wrap(ErrVerify, strings.Join(failed, ", "))
	}
	return nil
}

// Channel returns the RF channel.
func (d *Device) Channel() (int, error) {
	ch, err := d.ReadField("RF_CH", "RF_CH")
	return int(ch), err
}

// SetChannel sets the RF channel.
func (d *Device) SetChannel(ch int) error {
	if ch < 0 || ch > MaxChannel {
		return errors.Wrapf(ErrFieldValueOutOfRange, "channel %d", ch)
	}
	_, err := d.WriteRegister("RF_CH", []byte{byte(ch)})
	return err
}

// Frequency returns the radio's current frequency, in Hertz.
func (d *Device) Frequency() (uint32, error) {
	ch, err := d.Channel()
	if err != nil {
		return 0, err
	}
	return BaseFrequency + uint32(ch)*ChannelSpacing, nil
}

// SetFrequency tunes the radio to the channel nearest freq.
func (d *Device) SetFrequency(freq uint32) error {
	if freq < BaseFrequency {
		return errors.Wrapf(ErrFieldValueOutOfRange, "frequency %d", freq)
	}
	ch := (freq - BaseFrequency + ChannelSpacing/2) / ChannelSpacing
	return d.SetChannel(int(ch))
}

// SetPower sets the output power level, from 0 (-18dBm) to 3 (0dBm).
func (d *Device) SetPower(level int) error {
	if level < 0 || level > 3 {
		return errors.Wrapf(ErrFieldValueOutOfRange, "power level %d", level)
	}
	return d.SetField("RF_SETUP", "RF_PWR", byte(level))
}

// DataRate is an air data rate.
type DataRate int

// Air data rates.
const (
	Rate1Mbps DataRate = iota
	Rate2Mbps
	Rate250kbps
)

func (r DataRate) String() string {
	switch r {
	case Rate1Mbps:
		return "1Mbps"
	case Rate2Mbps:
		return "2Mbps"
	case Rate250kbps:
		return "250kbps"
	}
	return fmt.Sprintf("DataRate(%d)", int(r))
}

// ParseDataRate converts "250k", "1M" or "2M" (or the String form) to a DataRate.
func ParseDataRate(s string) (DataRate, error) {
	switch strings.TrimSuffix(strings.ToLower(s), "bps") {
	case "250k":
		return Rate250kbps, nil
	case "1m":
		return Rate1Mbps, nil
	case "2m":
		return Rate2Mbps, nil
	}
	return 0, errors.Errorf("unknown data rate %q", s)
}

// SetDataRate sets the air data rate.
func (d *Device) SetDataRate(rate DataRate) error {
	var low, high byte
	switch rate {
	case Rate1Mbps:
	case Rate2Mbps:
		high = 1
	case Rate250kbps:
		low = 1
	default:
		return errors.Wrapf(ErrFieldValueOutOfRange, "%v", rate)
	}
	v, err := d.ReadRegister("RF_SETUP")
	if err != nil {
		return err
	}
	b := v.Data[0]
	for _, x := range []struct {
		field string
		value byte
	}{
		{"RF_DR_LOW", low},
		{"RF_DR_HIGH", high},
	} {
		f, err := LookupField("RF_SETUP", x.field)
		if err != nil {
			return err
		}
		if b, err = Inject(b, f.Length, f.Offset, x.value); err != nil {
			return errors.Wrapf(err, "RF_SETUP.%s", x.field)
		}
	}
	_, err = d.WriteRegister("RF_SETUP", []byte{b})
	return err
}

// SetAddressWidth sets the address width to 3, 4 or 5 bytes.
func (d *Device) SetAddressWidth(n int) error {
	if n < 3 || n > 5 {
		return errors.Wrapf(ErrFieldValueOutOfRange, "address width %d", n)
	}
	return d.SetField("SETUP_AW", "AW", byte(n-2))
}

// SetRetries sets the auto-retransmit delay (in units of 250µs, minus one)
// and the retransmit count.
func (d *Device) SetRetries(delay, count int) error {
	if delay < 0 || delay > 15 || count < 0 || count > 15 {
		return errors.Wrapf(ErrFieldValueOutOfRange, "retries %d/%d", delay, count)
	}
	_, err := d.WriteRegister("SETUP_RETR", []byte{byte(delay<<4 | count)})
	return err
}

// SetPayloadWidth sets the static payload width of a receive pipe.
func (d *Device) SetPayloadWidth(pipe int, n int) error {
	if err := checkPipe(pipe); err != nil {
		return err
	}
	if n < 0 || n > MaxPayload {
		return errors.Wrapf(ErrInvalidPayloadLength, "pipe %d: width %d", pipe, n)
	}
	_, err := d.WriteRegister(fmt.Sprintf("RX_PW_P%d", pipe), []byte{byte(n)})
	return err
}

// PipeAddress returns the 5-byte receive address of a pipe,
// least-significant byte first.
// Pipes 2-5 share the upper bytes of pipe 1's address.
func (d *Device) PipeAddress(pipe int) ([]byte, error) {
	if err := checkPipe(pipe); err != nil {
		return nil, err
	}
	if pipe < 2 {
		v, err := d.ReadRegister(fmt.Sprintf("RX_ADDR_P%d", pipe))
		return v.Data, err
	}
	base, err := d.ReadRegister("RX_ADDR_P1")
	if err != nil {
		return nil, err
	}
	low, err := d.ReadRegister(fmt.Sprintf("RX_ADDR_P%d", pipe))
	if err != nil {
		return nil, err
	}
	addr := make([]byte, len(base.Data))
	copy(addr, base.Data)
	addr[0] = low.Data[0]
	return addr, nil
}

type chipEnabler interface {
	SetCE(bool) error
}

// setCE drives CE when the transport has control of it.
// The serial bridge does not, and the chip's CE must be wired high.
func (d *Device) setCE(high bool) error {
	if ce, ok := d.transport.(chipEnabler); ok {
		return ce.SetCE(high)
	}
	return nil
}

func (d *Device) pulseCE() error {
	if err := d.setCE(true); err != nil {
		return err
	}
	time.Sleep(cePulse)
	return d.setCE(false)
}

func (d *Device) setMode(rx bool) error {
	if err := d.setCE(false); err != nil {
		return err
	}
	if err := d.SetField("CONFIG", "PWR_UP", 0); err != nil {
		return err
	}
	var primRX byte
	if rx {
		primRX = 1
	}
	return d.SetField("CONFIG", "PRIM_RX", primRX)
}

func (d *Device) powerUp() error {
	return d.SetField("CONFIG", "PWR_UP", 1)
}

// packets splits p into width-byte packets,
// padding the last one with zeros.
func packets(p []byte, width int) [][]byte {
	var v [][]byte
	for len(p) > 0 {
		pkt := make([]byte, width)
		n := copy(pkt, p)
		p = p[n:]
		v = append(v, pkt)
	}
	return v
}

// Transmit puts the radio in transmit mode addressed to pipe's address
// and queues p as a sequence of width-byte packets.
func (d *Device) Transmit(p []byte, width int, pipe int) error {
	if width < 1 || width > MaxPayload {
		return errors.Wrapf(ErrInvalidPayloadLength, "packet width %d", width)
	}
	if err := checkPipe(pipe); err != nil {
		return err
	}
	if err := d.setMode(false); err != nil {
		return err
	}
	if err := d.powerUp(); err != nil {
		return err
	}
	addr, err := d.PipeAddress(pipe)
	if err != nil {
		return err
	}
	if _, err := d.WriteRegister("TX_ADDR", addr); err != nil {
		return err
	}
	if err := d.ClearInterrupts(); err != nil {
		return err
	}
	for _, pkt := range packets(p, width) {
		log.Debugf("transmit % X", pkt)
		if _, err := d.WriteTxPayload(pkt); err != nil {
			return err
		}
		if err := d.pulseCE(); err != nil {
			return err
		}
	}
	return nil
}

// AllPipes selects every receive pipe in Listen and Receive.
const AllPipes = -1

// Listen puts the radio in receive mode on the given pipe, or AllPipes.
func (d *Device) Listen(pipe int) error {
	enable := byte(1<<NumPipes - 1)
	if pipe != AllPipes {
		if err := checkPipe(pipe); err != nil {
			return err
		}
		enable = 1 << uint(pipe)
	}
	if err := d.setMode(true); err != nil {
		return err
	}
	if _, err := d.WriteRegister("EN_RXADDR", []byte{enable}); err != nil {
		return err
	}
	if err := d.powerUp(); err != nil {
		return err
	}
	return d.setCE(true)
}

// Handler is called with each packet received and the pipe it arrived on.
type Handler func(pipe int, payload []byte) error

// Receive listens on pipe and passes each packet to h.
// It returns after count packets, or when ctx is done if count is 0.
func (d *Device) Receive(ctx context.Context, pipe int, count int, h Handler) error {
	if err := d.Listen(pipe); err != nil {
		return err
	}
	n := 0
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s, err := d.Nop()
		if err != nil {
			return err
		}
		if s.RXPipe() == RXPipeEmpty {
			time.Sleep(receivePollInterval)
			continue
		}
		_, width, err := d.ReadRxPayloadWidth()
		if err != nil {
			return err
		}
		if width > MaxPayload {
			// Corrupt width; the datasheet says to discard the FIFO.
			log.Debugf("discarding RX FIFO: payload width %d", width)
			if _, err := d.FlushRX(); err != nil {
				return err
			}
			continue
		}
		_, p, err := d.ReadRxPayload(width)
		if err != nil {
			return err
		}
		if _, err := d.WriteRegister("STATUS", []byte{1 << statusRXDR}); err != nil {
			return err
		}
		if err := h(s.RXPipe(), p); err != nil {
			return err
		}
		n++
		if count > 0 && n >= count {
			return nil
		}
	}
}
