//go:build !linux
// +build !linux

package nrf24l01

import (
	"time"

	"go.bug.st/serial"
)

// bridgePort adapts go.bug.st/serial to Port.
type bridgePort struct {
	port serial.Port
}

func openSerial(device string, speed int) (Port, error) {
	p, err := serial.Open(device, &serial.Mode{
		BaudRate: speed,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
	})
	if err != nil {
		return nil, err
	}
	// Short reads let Session enforce its own deadline.
	if err := p.SetReadTimeout(time.Millisecond); err != nil {
		_ = p.Close()
		return nil, err
	}
	return bridgePort{port: p}, nil
}

func (p bridgePort) Write(data []byte) error {
	_, err := p.port.Write(data)
	return err
}

func (p bridgePort) ReadAvailable(buf []byte) (int, error) {
	return p.port.Read(buf)
}

func (p bridgePort) Close() error {
	return p.port.Close()
}
