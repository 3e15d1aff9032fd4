package nrf24l01

import (
	"io/ioutil"

	"github.com/flynn/json5"
	"github.com/pkg/errors"
)

// Transport names accepted in Config.
const (
	TransportSerial = "serial"
	TransportSPI    = "spi"
)

// DefaultBaud is the UART rate of the bridge firmware.
const DefaultBaud = 9600

// Config selects how the chip is reached.
type Config struct {
	Transport string `json:"transport"`
	Device    string `json:"device"`
	Baud      int    `json:"baud"`
	SPIDevice string `json:"spi_device"`
	SPISpeed  int    `json:"spi_speed"`
	CEPin     int    `json:"ce_pin"`
}

// DefaultConfig returns the configuration for this platform.
func DefaultConfig() Config {
	return Config{
		Transport: TransportSerial,
		Device:    serialDevice,
		Baud:      DefaultBaud,
		SPIDevice: spiDevice,
		SPISpeed:  spiSpeed,
		CEPin:     cePin,
	}
}

// LoadConfig reads a JSON5 configuration file over the platform defaults.
// An empty path returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return cfg, errors.Wrap(err, "config")
	}
	if err := json5.Unmarshal(data, &cfg); err != nil {
		return cfg, errors.Wrapf(err, "config %s", path)
	}
	switch cfg.Transport {
	case TransportSerial, TransportSPI:
	default:
		return cfg, errors.Errorf("config %s: unknown transport %q", path, cfg.Transport)
	}
	return cfg, nil
}
