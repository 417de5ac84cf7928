package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/alecthomas/kingpin.v2"
)

// parseNumber accepts decimal numbers and 0x prefixed hexadecimal ones.
func parseNumber(s string, bitSize int) (uint64, error) {
	digits := strings.TrimSpace(s)
	base := 10
	if strings.HasPrefix(digits, "0x") || strings.HasPrefix(digits, "0X") {
		digits = digits[2:]
		base = 16
	}
	v, err := strconv.ParseUint(digits, base, bitSize)
	if err != nil {
		return 0, errors.Errorf("invalid number %q, expected decimal or 0x prefixed hex", s)
	}
	return v, nil
}

type addressValue uint32

func (a *addressValue) Set(s string) error {
	v, err := parseNumber(s, 32)
	if err != nil {
		return err
	}
	*a = addressValue(v)
	return nil
}

func (a *addressValue) String() string {
	return fmt.Sprintf("0x%x", uint32(*a))
}

func addressVar(s kingpin.Settings, target *uint32) {
	s.SetValue((*addressValue)(target))
}

// optionalIndex records whether the flag was given at all.
type optionalIndex struct {
	set   bool
	value int
}

func (o *optionalIndex) Set(s string) error {
	v, err := parseNumber(s, strconv.IntSize-1)
	if err != nil {
		return err
	}
	o.set = true
	o.value = int(v)
	return nil
}

func (o *optionalIndex) String() string {
	if !o.set {
		return ""
	}
	return strconv.Itoa(o.value)
}

// Ptr returns nil when the flag was not set.
func (o *optionalIndex) Ptr() *int {
	if !o.set {
		return nil
	}
	v := o.value
	return &v
}
