package main

import (
	"context"
	"encoding/hex"
	"fmt"
	"math/big"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/ecc1/nrf24l01"
	"github.com/pkg/errors"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
)

func status(d *nrf24l01.Device, args []string) error {
	flag, args := flags.New(args, "-x", "-b", "-fields")
	if len(args) != 0 {
		return errors.Errorf("%v: unexpected", args)
	}
	base := numberBase(flag)
	s, f, err := d.Status()
	if err != nil {
		return err
	}
	for _, v := range []nrf24l01.RegisterValue{s, f} {
		if !flag.ByName["-fields"] {
			fmt.Printf("%s: %s\n", v.Name, formatByte(v.Data[0], base))
			continue
		}
		fmt.Printf("%s:\n", v.Name)
		r, _ := nrf24l01.Lookup(v.Name)
		for _, field := range r.Fields {
			fmt.Printf("  %s: %s\n", field.Name, strconv.FormatUint(uint64(v.Fields[field.Name]), base))
		}
	}
	return nil
}

func reset(d *nrf24l01.Device, args []string) error {
	if len(args) != 0 {
		return errors.Errorf("%v: unexpected", args)
	}
	return d.Reset()
}

func config(d *nrf24l01.Device, args []string) error {
	parm, args := parms.New(args, "-channel", "-power", "-rate", "-aw", "-ard", "-arc")
	set := func(name string, f func(int) error) error {
		s := parm.ByName[name]
		if s == "" {
			return nil
		}
		n, err := parseInt(s, name)
		if err != nil {
			return err
		}
		return f(n)
	}
	if err := set("-channel", d.SetChannel); err != nil {
		return err
	}
	if err := set("-power", d.SetPower); err != nil {
		return err
	}
	if err := set("-aw", d.SetAddressWidth); err != nil {
		return err
	}
	if err := set("-ard", func(n int) error { return d.SetField("SETUP_RETR", "ARD", byte(n)) }); err != nil {
		return err
	}
	if err := set("-arc", func(n int) error { return d.SetField("SETUP_RETR", "ARC", byte(n)) }); err != nil {
		return err
	}
	if s := parm.ByName["-rate"]; s != "" {
		rate, err := nrf24l01.ParseDataRate(s)
		if err != nil {
			return err
		}
		if err := d.SetDataRate(rate); err != nil {
			return err
		}
	}
	for _, a := range args {
		eq := strings.IndexByte(a, '=')
		dot := strings.IndexByte(a, '.')
		if eq < 0 || dot < 0 || dot > eq {
			return errors.Errorf("%s: expected REGISTER.FIELD=VALUE", a)
		}
		n, err := strconv.ParseUint(a[eq+1:], 0, 8)
		if err != nil {
			return errors.Wrap(err, a)
		}
		if err := d.SetField(a[:dot], a[dot+1:eq], byte(n)); err != nil {
			return err
		}
	}
	return nil
}

func dump(d *nrf24l01.Device, args []string) error {
	flag, args := flags.New(args, "-x", "-b", "-d")
	if len(args) != 1 {
		return errors.New("expected one REGISTER")
	}
	var data []byte
	if args[0] == "RX_PLD" {
		_, p, err := d.ReadRxPayload(nrf24l01.MaxPayload)
		if err != nil {
			return err
		}
		data = p
	} else {
		v, err := d.ReadRegister(args[0])
		if err != nil {
			return err
		}
		data = v.Data
	}
	base := 2
	switch {
	case flag.ByName["-x"]:
		base = 16
	case flag.ByName["-d"]:
		base = 10
	}
	s := make([]string, len(data))
	for i, b := range data {
		s[i] = formatByte(b, base)
	}
	fmt.Printf("%s: %s\n", args[0], strings.Join(s, " "))
	return nil
}

func load(d *nrf24l01.Device, args []string) error {
	flag, args := flags.New(args, "-x", "-b", "-d")
	if len(args) != 2 {
		return errors.New("expected REGISTER and VALUE")
	}
	name, value := args[0], args[1]
	if name == "TX_PLD" {
		p, err := payloadArg(flag, value)
		if err != nil {
			return err
		}
		_, err = d.WriteTxPayload(p)
		return err
	}
	r, err := nrf24l01.Lookup(name)
	if err != nil {
		return err
	}
	n, err := strconv.ParseUint(value, numberBase(flag), 8*r.Width)
	if err != nil {
		return errors.Wrapf(nrf24l01.ErrInvalidPayloadLength, "%s: %v", value, err)
	}
	_, err = d.WriteRegister(name, r.Bytes(n))
	return err
}

func transmit(d *nrf24l01.Device, args []string) error {
	flag, args := flags.New(args, "-x", "-b", "-d", "-s")
	parm, args := parms.New(args, "-pipe", "-width")
	if len(args) != 1 {
		return errors.New("expected one PAYLOAD")
	}
	pipe, width := 0, 1
	var err error
	if s := parm.ByName["-pipe"]; s != "" {
		if pipe, err = parseInt(s, "-pipe"); err != nil {
			return err
		}
	}
	if s := parm.ByName["-width"]; s != "" {
		if width, err = parseInt(s, "-width"); err != nil {
			return err
		}
	}
	p, err := payloadArg(flag, args[0])
	if err != nil {
		return err
	}
	return d.Transmit(p, width, pipe)
}

func receive(d *nrf24l01.Device, args []string) error {
	flag, args := flags.New(args, "-detach")
	parm, args := parms.New(args, "-pipe", "-n")
	if len(args) != 0 {
		return errors.Errorf("%v: unexpected", args)
	}
	pipe, count := nrf24l01.AllPipes, 0
	var err error
	if s := parm.ByName["-pipe"]; s != "" {
		if pipe, err = parseInt(s, "-pipe"); err != nil {
			return err
		}
	}
	if s := parm.ByName["-n"]; s != "" {
		if count, err = parseInt(s, "-n"); err != nil {
			return err
		}
	}
	if flag.ByName["-detach"] {
		return d.Listen(pipe)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err = d.Receive(ctx, pipe, count, func(pipe int, p []byte) error {
		fmt.Printf("%d: % X\n", pipe, p)
		return nil
	})
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func numberBase(flag *flags.Flags) int {
	switch {
	case flag.ByName["-x"]:
		return 16
	case flag.ByName["-b"]:
		return 2
	}
	return 10
}

func formatByte(b byte, base int) string {
	switch base {
	case 16:
		return fmt.Sprintf("%02X", b)
	case 2:
		return fmt.Sprintf("%08b", b)
	}
	return strconv.Itoa(int(b))
}

// payloadArg reads a payload given as a number with -x, -b or -d,
// and as text otherwise.
func payloadArg(flag *flags.Flags, s string) ([]byte, error) {
	numeric := flag.ByName["-x"] || flag.ByName["-b"] || flag.ByName["-d"]
	return parsePayload(s, numberBase(flag), numeric)
}

// parsePayload reads s as an unsigned number in the given base
// when numeric is set, and as raw text otherwise.
func parsePayload(s string, base int, numeric bool) ([]byte, error) {
	if !numeric {
		return []byte(s), nil
	}
	if base == 16 {
		if p, err := hex.DecodeString(s); err == nil {
			return p, nil
		}
	}
	n, ok := new(big.Int).SetString(s, base)
	if !ok || n.Sign() < 0 {
		return nil, errors.Errorf("%s: not a base-%d number", s, base)
	}
	p := n.Bytes()
	if len(p) == 0 {
		p = []byte{0}
	}
	return p, nil
}

func parseInt(s string, name string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, errors.Wrap(err, name)
	}
	return n, nil
}

func registerNames() string {
	var names []string
	for _, r := range nrf24l01.Registers() {
		names = append(names, r.Name)
	}
	return strings.Join(names, " ")
}
