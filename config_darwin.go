package nrf24l01

// Configuration for a USB-serial bridge on macOS.

const (
	serialDevice = "/dev/tty.usbserial"
	spiDevice    = ""
	spiSpeed     = 0
	cePin        = 0
)
