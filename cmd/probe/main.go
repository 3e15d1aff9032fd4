package main

import (
	"fmt"
	"log"

	"github.com/ecc1/nrf24l01"
)

func main() {
	d, err := nrf24l01.Open(nrf24l01.DefaultConfig())
	if err != nil {
		log.Fatal(err)
	}
	defer d.Close()
	s, err := d.Nop()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("device: %s\n", d.Device())
	fmt.Printf("status: %v\n", s)
	f, err := d.Frequency()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("old frequency: %d\n", f)
	if err := d.SetFrequency(2476000000); err != nil {
		log.Fatal(err)
	}
	f, err = d.Frequency()
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("new frequency: %d\n", f)
}
