package nrf24l01

// Configuration for a USB-serial bridge on Windows.

const (
	serialDevice = "COM3"
	spiDevice    = ""
	spiSpeed     = 0
	cePin        = 0
)
