package nrf24l01

import (
	"github.com/ecc1/serial"
)

func openSerial(device string, speed int) (Port, error) {
	p, err := serial.Open(device, speed)
	if err != nil {
		return nil, err
	}
	return p, nil
}
