package nrf24l01

import (
	"io"
	"os"

	"github.com/ecc1/radio"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

var log = newLogger()

func newLogger() *logrus.Logger {
	l := logrus.New()
	l.Formatter = new(logrus.TextFormatter)
	l.Level = logrus.InfoLevel
	l.Out = os.Stderr
	return l
}

// SetLogger replaces the logger used by the package.
func SetLogger(l *logrus.Logger) {
	log = l
}

// Device represents an nRF24L01 reached through a Transport.
type Device struct {
	transport Transport
	stats     radio.Statistics
}

// New returns a device that uses the given transport.
func New(t Transport) *Device {
	return &Device{transport: t}
}

// Open returns the device described by cfg.
func Open(cfg Config) (*Device, error) {
	switch cfg.Transport {
	case "", TransportSerial:
		return New(NewSession(cfg.Device, cfg.Baud)), nil
	case TransportSPI:
		t, err := openSPI(cfg)
		if err != nil {
			return nil, err
		}
		return New(t), nil
	default:
		return nil, errors.Errorf("unknown transport %q", cfg.Transport)
	}
}

// Close releases the transport, if it holds anything open.
func (d *Device) Close() error {
	if c, ok := d.transport.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Name returns the chip's name.
func (d *Device) Name() string {
	return "nRF24L01"
}

// Device returns the pathname of the underlying device, if known.
func (d *Device) Device() string {
	if p, ok := d.transport.(interface{ Device() string }); ok {
		return p.Device()
	}
	return ""
}

// Statistics returns the payload byte and packet counts.
func (d *Device) Statistics() radio.Statistics {
	return d.stats
}

func (d *Device) exchange(f Frame) (Response, error) {
	raw, err := d.transport.Exchange(f)
	if err != nil {
		return Response{}, err
	}
	return Decode(f, raw)
}

func (d *Device) command(f Frame) (Status, error) {
	resp, err := d.exchange(f)
	return resp.Status, err
}

// ReadRegister reads the named register.
func (d *Device) ReadRegister(name string) (RegisterValue, error) {
	f, err := ReadRegisterFrame(name)
	if err != nil {
		return RegisterValue{}, err
	}
	raw, err := d.transport.Exchange(f)
	if err != nil {
		return RegisterValue{}, err
	}
	return DecodeRegister(name, raw)
}

// WriteRegister writes the named register.
// The payload length must match the register's width.
func (d *Device) WriteRegister(name string, payload []byte) (Status, error) {
	f, err := WriteRegisterFrame(name, payload)
	if err != nil {
		return 0, err
	}
	return d.command(f)
}

// ReadRxPayload reads n bytes from the head of the RX FIFO.
func (d *Device) ReadRxPayload(n int) (Status, []byte, error) {
	f, err := ReadRxPayloadFrame(n)
	if err != nil {
		return 0, nil, err
	}
	resp, err := d.exchange(f)
	if err != nil {
		return 0, nil, err
	}
	d.stats.Packets.Received++
	d.stats.Bytes.Received += len(resp.Data)
	return resp.Status, resp.Data, nil
}

// WriteTxPayload adds a payload to the TX FIFO.
func (d *Device) WriteTxPayload(payload []byte) (Status, error) {
	f, err := WriteTxPayloadFrame(payload)
	if err != nil {
		return 0, err
	}
	return d.send(f)
}

// WriteTxPayloadNoAck adds a payload to the TX FIFO
// with auto-acknowledgement disabled for that packet.
func (d *Device) WriteTxPayloadNoAck(payload []byte) (Status, error) {
	f, err := WriteTxPayloadNoAckFrame(payload)
	if err != nil {
		return 0, err
	}
	return d.send(f)
}

func (d *Device) send(f Frame) (Status, error) {
	s, err := d.command(f)
	if err != nil {
		return s, err
	}
	d.stats.Packets.Sent++
	d.stats.Bytes.Sent += len(f.Payload)
	return s, nil
}

// WriteAckPayload queues a payload to be sent with the next ACK on pipe.
func (d *Device) WriteAckPayload(payload []byte, pipe int) (Status, error) {
	f, err := WriteAckPayloadFrame(payload, pipe)
	if err != nil {
		return 0, err
	}
	return d.command(f)
}

// FlushTX empties the TX FIFO.
func (d *Device) FlushTX() (Status, error) {
	return d.command(FlushTxFrame())
}

// FlushRX empties the RX FIFO.
func (d *Device) FlushRX() (Status, error) {
	return d.command(FlushRxFrame())
}

// ReuseTxPayload makes the chip resend the last transmitted payload.
func (d *Device) ReuseTxPayload() (Status, error) {
	return d.command(ReuseTxPayloadFrame())
}

// ReadRxPayloadWidth returns the width of the payload at the head of the RX FIFO.
func (d *Device) ReadRxPayloadWidth() (Status, int, error) {
	f := ReadRxPayloadWidthFrame()
	raw, err := d.transport.Exchange(f)
	if err != nil {
		return 0, 0, err
	}
	return DecodeRxPayloadWidth(raw)
}

// Nop returns the status register without any other effect.
func (d *Device) Nop() (Status, error) {
	return d.command(NopFrame())
}
