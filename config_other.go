//go:build !linux && !windows && !darwin
// +build !linux,!windows,!darwin

package nrf24l01

const (
	serialDevice = "/dev/ttyU0"
	spiDevice    = ""
	spiSpeed     = 0
	cePin        = 0
)
