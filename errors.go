package nrf24l01

import (
	"github.com/pkg/errors"
)

// Errors returned by the driver.
// They are wrapped with context at the point of failure;
// use errors.Is to test for a particular kind.
var (
	ErrUnknownRegister             = errors.New("unknown register")
	ErrUnknownField                = errors.New("unknown field")
	ErrInvalidForMultiByteRegister = errors.New("multi-byte register has no fields")
	ErrFieldValueOutOfRange        = errors.New("field value out of range")
	ErrInvalidPayloadLength        = errors.New("invalid payload length")
	ErrInvalidPipeIndex            = errors.New("invalid pipe index")
	ErrPortUnavailable             = errors.New("port unavailable")
	ErrShortRead                   = errors.New("short read")
	ErrVerify                      = errors.New("verification failed")
)
