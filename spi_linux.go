package nrf24l01

import (
	"github.com/ecc1/gpio"
	"github.com/ecc1/spi"
	"github.com/pkg/errors"
)

// SPI drives a chip wired directly to the host's SPI bus,
// performing in-process the transaction the bridge firmware would.
type SPI struct {
	device *spi.Device
	ce     gpio.OutputPin
	path   string
}

// OpenSPI opens the SPI device and the GPIO pin connected to CE.
func OpenSPI(device string, speed int, cePin int) (*SPI, error) {
	s := &SPI{path: device}
	var err error
	s.device, err = spi.Open(device, speed, 0)
	if err != nil {
		return nil, errors.Wrapf(ErrPortUnavailable, "%s: %v", device, err)
	}
	s.ce, err = gpio.Output(cePin, false, false)
	if err != nil {
		_ = s.device.Close()
		return nil, errors.Wrapf(ErrPortUnavailable, "CE pin %d: %v", cePin, err)
	}
	return s, nil
}

func openSPI(cfg Config) (Transport, error) {
	return OpenSPI(cfg.SPIDevice, cfg.SPISpeed, cfg.CEPin)
}

// Device returns the pathname of the SPI device.
func (s *SPI) Device() string {
	return s.path
}

// Exchange clocks the command, the payload and filler bytes
// through the chip in a single transfer.
func (s *SPI) Exchange(f Frame) ([]byte, error) {
	buf := make([]byte, f.ResponseLength())
	buf[0] = byte(f.Command)
	copy(buf[1:], f.Payload)
	log.Debugf("xfer % X", buf)
	if err := s.device.Transfer(buf, buf); err != nil {
		return nil, errors.Wrap(err, "SPI transfer")
	}
	log.Debugf("received %d-byte response % X", len(buf), buf)
	return buf, nil
}

// SetCE drives the chip enable line.
func (s *SPI) SetCE(high bool) error {
	return s.ce.Write(high)
}

// Close releases the SPI device.
func (s *SPI) Close() error {
	return s.device.Close()
}
