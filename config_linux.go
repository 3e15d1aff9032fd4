package nrf24l01

// Configuration for a USB-serial bridge, or a Raspberry Pi
// with the radio on SPI0 and CE on GPIO 25.

const (
	serialDevice = "/dev/ttyUSB0"
	spiDevice    = "/dev/spidev0.0"
	spiSpeed     = 4000000 // Hz
	cePin        = 25
)
