package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/ecc1/nrf24l01"
	"github.com/pkg/errors"
	"github.com/platinasystems/flags"
	"github.com/platinasystems/parms"
	"github.com/sirupsen/logrus"
)

const usage = `usage: nrf24l01 [-v] [-config FILE] [-transport serial|spi] [-device DEV] [-baud N] COMMAND [ARGS]

Commands:
	status [-x|-b] [-fields]
	reset
	config [-channel N] [-power N] [-rate 250k|1M|2M] [-aw N] [-ard N] [-arc N] [REG.FIELD=VALUE]...
	dump [-x|-b|-d] REGISTER|RX_PLD
	load [-x|-b|-d] REGISTER|TX_PLD VALUE
	transmit [-x|-b|-d|-s] [-pipe N] [-width N] PAYLOAD
	receive [-pipe N] [-n N] [-detach]`

var log = logrus.New()

type command func(d *nrf24l01.Device, args []string) error

var commands = map[string]command{
	"status":   status,
	"reset":    reset,
	"config":   config,
	"dump":     dump,
	"load":     load,
	"transmit": transmit,
	"receive":  receive,
}

func main() {
	log.Formatter = new(logrus.TextFormatter)
	log.Level = logrus.InfoLevel
	log.Out = os.Stderr
	if err := run(os.Args[1:]); err != nil {
		log.Fatal(describe(err))
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprintln(os.Stderr, usage)
		os.Exit(2)
	}
	i := commandIndex(args)
	if i >= len(args) {
		return errors.New("missing command")
	}
	flag, global := flags.New(args[:i], "-v")
	parm, global := parms.New(global, "-config", "-transport", "-device", "-baud")
	if len(global) != 0 {
		return errors.Errorf("%v: unexpected", global)
	}
	if flag.ByName["-v"] {
		log.Level = logrus.DebugLevel
		nrf24l01.SetLogger(log)
	}
	cfg, err := nrf24l01.LoadConfig(parm.ByName["-config"])
	if err != nil {
		return err
	}
	if s := parm.ByName["-transport"]; s != "" {
		cfg.Transport = s
	}
	if s := parm.ByName["-device"]; s != "" {
		if cfg.Transport == nrf24l01.TransportSPI {
			cfg.SPIDevice = s
		} else {
			cfg.Device = s
		}
	}
	if s := parm.ByName["-baud"]; s != "" {
		if cfg.Baud, err = parseInt(s, "-baud"); err != nil {
			return err
		}
	}
	name, rest := args[i], args[i+1:]
	cmd, ok := commands[name]
	if !ok {
		return errors.Errorf("%s: unknown command", name)
	}
	d, err := nrf24l01.Open(cfg)
	if err != nil {
		return err
	}
	defer d.Close()
	log.Debugf("%s on %s", name, d.Device())
	return cmd(d, rest)
}

// commandIndex returns the position of the command name,
// skipping the global options that precede it.
// Options other than -v take a value, either as the next
// argument or after '='.
func commandIndex(args []string) int {
	i := 0
	for i < len(args) && strings.HasPrefix(args[i], "-") {
		opt := args[i]
		i++
		if opt != "-v" && !strings.Contains(opt, "=") {
			i++
		}
	}
	return i
}

// describe gives each error kind its own explanation.
func describe(err error) string {
	hints := []struct {
		kind error
		hint string
	}{
		{nrf24l01.ErrPortUnavailable, "cannot open the device; check -device and the bridge connection"},
		{nrf24l01.ErrShortRead, "incomplete response from the bridge"},
		{nrf24l01.ErrUnknownRegister, "no such register; registers are " + registerNames()},
		{nrf24l01.ErrUnknownField, "no such field in that register"},
		{nrf24l01.ErrInvalidForMultiByteRegister, "address registers have no fields"},
		{nrf24l01.ErrFieldValueOutOfRange, "value too large for the field"},
		{nrf24l01.ErrInvalidPayloadLength, "wrong payload length"},
		{nrf24l01.ErrInvalidPipeIndex, "pipe must be 0-5"},
		{nrf24l01.ErrVerify, "registers did not read back as written"},
	}
	for _, h := range hints {
		if errors.Is(err, h.kind) {
			return fmt.Sprintf("%s (%v)", h.hint, err)
		}
	}
	return err.Error()
}
