package nrf24l01

import (
	"github.com/pkg/errors"
)

// Frame is a single chip command as sent to the bridge:
// a transport length byte, a transfer length byte,
// then the command byte and any payload being written.
type Frame struct {
	Command Command
	Payload []byte // bytes written after the command
	ReadLen int    // data bytes expected after the status byte
}

func newFrame(cmd Command, payload []byte, readLen int) Frame {
	return Frame{Command: cmd, Payload: payload, ReadLen: readLen}
}

// TransportLength is the number of bytes following the two header bytes.
func (f Frame) TransportLength() byte {
	return byte(1 + len(f.Payload))
}

// TransferLength is the number of bytes exchanged on the SPI bus,
// which is also the length of the response.
func (f Frame) TransferLength() byte {
	n := len(f.Payload)
	if f.ReadLen > n {
		n = f.ReadLen
	}
	return byte(1 + n)
}

// ResponseLength is the number of bytes returned for the frame:
// the status byte followed by the data bytes.
func (f Frame) ResponseLength() int {
	return int(f.TransferLength())
}

// Bytes returns the frame in wire order.
func (f Frame) Bytes() []byte {
	b := make([]byte, 0, 3+len(f.Payload))
	b = append(b, f.TransportLength(), f.TransferLength(), byte(f.Command))
	return append(b, f.Payload...)
}

// ReadRegisterFrame encodes R_REGISTER for the named register.
func ReadRegisterFrame(name string) (Frame, error) {
	r, err := Lookup(name)
	if err != nil {
		return Frame{}, err
	}
	return newFrame(R_REGISTER|Command(r.Address), nil, r.Width), nil
}

// WriteRegisterFrame encodes W_REGISTER for the named register.
// The payload must be exactly the register's width.
func WriteRegisterFrame(name string, payload []byte) (Frame, error) {
	r, err := Lookup(name)
	if err != nil {
		return Frame{}, err
	}
	if len(payload) != r.Width {
		return Frame{}, errors.Wrapf(ErrInvalidPayloadLength, "%s: %d bytes, want %d", name, len(payload), r.Width)
	}
	return newFrame(W_REGISTER|Command(r.Address), payload, 0), nil
}

// ReadRxPayloadFrame encodes R_RX_PAYLOAD reading n bytes.
func ReadRxPayloadFrame(n int) (Frame, error) {
	if n < 0 || n > MaxPayload {
		return Frame{}, errors.Wrapf(ErrInvalidPayloadLength, "R_RX_PAYLOAD: %d bytes", n)
	}
	return newFrame(R_RX_PAYLOAD, nil, n), nil
}

func checkPayload(cmd Command, payload []byte) error {
	if len(payload) > MaxPayload {
		return errors.Wrapf(ErrInvalidPayloadLength, "%v: %d bytes", cmd, len(payload))
	}
	return nil
}

// WriteTxPayloadFrame encodes W_TX_PAYLOAD.
func WriteTxPayloadFrame(payload []byte) (Frame, error) {
	if err := checkPayload(W_TX_PAYLOAD, payload); err != nil {
		return Frame{}, err
	}
	return newFrame(W_TX_PAYLOAD, payload, 0), nil
}

// WriteTxPayloadNoAckFrame encodes W_TX_PAYLOAD_NOACK.
func WriteTxPayloadNoAckFrame(payload []byte) (Frame, error) {
	if err := checkPayload(W_TX_PAYLOAD_NOACK, payload); err != nil {
		return Frame{}, err
	}
	return newFrame(W_TX_PAYLOAD_NOACK, payload, 0), nil
}

// WriteAckPayloadFrame encodes W_ACK_PAYLOAD for the given pipe.
func WriteAckPayloadFrame(payload []byte, pipe int) (Frame, error) {
	if err := checkPipe(pipe); err != nil {
		return Frame{}, err
	}
	if err := checkPayload(W_ACK_PAYLOAD, payload); err != nil {
		return Frame{}, err
	}
	return newFrame(W_ACK_PAYLOAD|Command(pipe), payload, 0), nil
}

func checkPipe(pipe int) error {
	if pipe < 0 || pipe >= NumPipes {
		return errors.Wrapf(ErrInvalidPipeIndex, "%d", pipe)
	}
	return nil
}

// FlushTxFrame encodes FLUSH_TX.
func FlushTxFrame() Frame { return newFrame(FLUSH_TX, nil, 0) }

// FlushRxFrame encodes FLUSH_RX.
func FlushRxFrame() Frame { return newFrame(FLUSH_RX, nil, 0) }

// ReuseTxPayloadFrame encodes REUSE_TX_PL.
func ReuseTxPayloadFrame() Frame { return newFrame(REUSE_TX_PL, nil, 0) }

// ReadRxPayloadWidthFrame encodes R_RX_PL_WID.
func ReadRxPayloadWidthFrame() Frame { return newFrame(R_RX_PL_WID, nil, 1) }

// NopFrame encodes NOP, which only returns the status register.
func NopFrame() Frame { return newFrame(NOP, nil, 0) }
