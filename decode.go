package nrf24l01

import (
	"fmt"

	"github.com/pkg/errors"
)

// Status is the STATUS register value that the chip
// shifts out at the start of every command.
type Status byte

// STATUS bits.
const (
	statusRXDR   = 6
	statusTXDS   = 5
	statusMAXRT  = 4
	statusRXPNO  = 1
	statusTXFULL = 0

	// RXPipeEmpty is the RX_P_NO value reported when the RX FIFO is empty.
	RXPipeEmpty = 7
)

// RXDataReady reports the RX_DR interrupt flag.
func (s Status) RXDataReady() bool { return Extract(byte(s), 1, statusRXDR) == 1 }

// TXDataSent reports the TX_DS interrupt flag.
func (s Status) TXDataSent() bool { return Extract(byte(s), 1, statusTXDS) == 1 }

// MaxRetransmits reports the MAX_RT interrupt flag.
func (s Status) MaxRetransmits() bool { return Extract(byte(s), 1, statusMAXRT) == 1 }

// RXPipe returns the pipe of the payload at the head of the RX FIFO,
// or RXPipeEmpty.
func (s Status) RXPipe() int { return int(Extract(byte(s), 3, statusRXPNO)) }

// TXFull reports whether the TX FIFO is full.
func (s Status) TXFull() bool { return Extract(byte(s), 1, statusTXFULL) == 1 }

// Fields decodes the status byte against the STATUS register map.
func (s Status) Fields() map[string]byte {
	r, _ := Lookup("STATUS")
	return r.Decode(byte(s))
}

func (s Status) String() string {
	return fmt.Sprintf("RX_DR=%d TX_DS=%d MAX_RT=%d RX_P_NO=%d TX_FULL=%d",
		Extract(byte(s), 1, statusRXDR),
		Extract(byte(s), 1, statusTXDS),
		Extract(byte(s), 1, statusMAXRT),
		s.RXPipe(),
		Extract(byte(s), 1, statusTXFULL))
}

// Response is the reply to a Frame.
type Response struct {
	Raw    []byte // everything read, status byte included
	Status Status
	Data   []byte // bytes read back for the command
}

// Decode splits the raw response to f into status and data.
func Decode(f Frame, raw []byte) (Response, error) {
	n := f.ResponseLength()
	if len(raw) < n {
		return Response{}, errors.Wrapf(ErrShortRead, "%v: %d of %d bytes", f.Command, len(raw), n)
	}
	return Response{
		Raw:    raw[:n],
		Status: Status(raw[0]),
		Data:   raw[1 : 1+f.ReadLen],
	}, nil
}

// RegisterValue is a register as read from the chip.
type RegisterValue struct {
	Name   string
	Status Status
	Data   []byte          // register contents in transmission order
	Fields map[string]byte // nil for multi-byte registers
}

// Uint returns the register contents as an integer.
func (v RegisterValue) Uint() uint64 {
	return unmarshalUint(v.Data)
}

// DecodeRegister decodes the response to R_REGISTER for the named register.
func DecodeRegister(name string, raw []byte) (RegisterValue, error) {
	f, err := ReadRegisterFrame(name)
	if err != nil {
		return RegisterValue{}, err
	}
	resp, err := Decode(f, raw)
	if err != nil {
		return RegisterValue{}, err
	}
	v := RegisterValue{
		Name:   name,
		Status: resp.Status,
		Data:   resp.Data,
	}
	r, _ := Lookup(name)
	if r.Width == 1 {
		v.Fields = r.Decode(resp.Data[0])
	}
	return v, nil
}

// DecodeRxPayload decodes the response to R_RX_PAYLOAD of n bytes.
// The payload is returned as read; trailing zeros are not removed.
func DecodeRxPayload(n int, raw []byte) (Status, []byte, error) {
	f, err := ReadRxPayloadFrame(n)
	if err != nil {
		return 0, nil, err
	}
	resp, err := Decode(f, raw)
	if err != nil {
		return 0, nil, err
	}
	return resp.Status, resp.Data, nil
}

// DecodeRxPayloadWidth decodes the response to R_RX_PL_WID.
func DecodeRxPayloadWidth(raw []byte) (Status, int, error) {
	resp, err := Decode(ReadRxPayloadWidthFrame(), raw)
	if err != nil {
		return 0, 0, err
	}
	return resp.Status, int(resp.Data[0]), nil
}

// TrimPadding returns p without trailing zero bytes.
// Zero is a valid payload byte, so only use this when
// the sender is known to pad with zeros.
func TrimPadding(p []byte) []byte {
	n := len(p)
	for n > 0 && p[n-1] == 0 {
		n--
	}
	return p[:n]
}
