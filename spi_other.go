//go:build !linux
// +build !linux

package nrf24l01

import (
	"github.com/pkg/errors"
)

func openSPI(cfg Config) (Transport, error) {
	return nil, errors.Wrapf(ErrPortUnavailable, "%s: direct SPI is only supported on Linux", cfg.SPIDevice)
}
