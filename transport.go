package nrf24l01

import (
	"time"

	"github.com/pkg/errors"
)

// ReadTimeout bounds the wait for a complete response from the bridge.
const ReadTimeout = 1 * time.Second

// Transport carries one frame to the chip and returns its response,
// which is exactly f.ResponseLength() bytes long.
type Transport interface {
	Exchange(f Frame) ([]byte, error)
}

// Port is a byte-stream connection to the bridge.
type Port interface {
	Write(data []byte) error
	ReadAvailable(buf []byte) (int, error)
	Close() error
}

// Opener opens the serial device at the given baud rate.
type Opener func(device string, speed int) (Port, error)

// Session talks to the chip through the serial bridge.
// The port is opened and closed around every exchange,
// so nothing carries over from one command to the next.
// Callers must not run exchanges concurrently.
type Session struct {
	device  string
	speed   int
	open    Opener
	timeout time.Duration
}

// NewSession returns a session for the given serial device.
func NewSession(device string, speed int) *Session {
	return NewSessionWith(device, speed, openSerial)
}

// NewSessionWith returns a session that opens ports with open.
func NewSessionWith(device string, speed int, open Opener) *Session {
	return &Session{
		device:  device,
		speed:   speed,
		open:    open,
		timeout: ReadTimeout,
	}
}

// Device returns the pathname of the serial device.
func (s *Session) Device() string {
	return s.device
}

// Exchange writes the frame to the bridge and reads the response.
func (s *Session) Exchange(f Frame) (resp []byte, err error) {
	port, err := s.open(s.device, s.speed)
	if err != nil {
		return nil, errors.Wrapf(ErrPortUnavailable, "%s: %v", s.device, err)
	}
	defer func() {
		cerr := port.Close()
		if err == nil && cerr != nil {
			err = errors.Wrap(cerr, "close")
		}
	}()
	data := f.Bytes()
	log.Debugf("request: % X", data)
	if err = port.Write(data); err != nil {
		return nil, errors.Wrap(err, "write")
	}
	return readFull(port, f.ResponseLength(), s.timeout)
}

func readFull(port Port, n int, timeout time.Duration) ([]byte, error) {
	const pollInterval = 1 * time.Millisecond
	buf := make([]byte, n)
	off := 0
	deadline := time.Now().Add(timeout)
	for {
		m, err := port.ReadAvailable(buf[off:])
		if err != nil {
			return nil, errors.Wrap(err, "read")
		}
		off += m
		if off == n {
			log.Debugf("received %d-byte response % X", n, buf)
			return buf, nil
		}
		if !time.Now().Before(deadline) {
			break
		}
		// Response incomplete; wait for more data.
		time.Sleep(pollInterval)
	}
	log.Debugf("receive timeout after %d of %d bytes", off, n)
	return nil, errors.Wrapf(ErrShortRead, "%d of %d bytes", off, n)
}
