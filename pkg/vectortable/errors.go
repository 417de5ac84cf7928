package vectortable

import "github.com/pkg/errors"

// Format errors.
var (
	ErrUnsupportedWidth        = errors.New("64-bit ELF images are not supported")
	ErrUnsupportedEndianness   = errors.New("big-endian ELF images are not supported")
	ErrUnsupportedArchitecture = errors.New("only ARM ELF images are supported")
	ErrSameInputOutputPath     = errors.New("cannot use input file as output file")
)

// Lookup and bounds errors.
var (
	ErrSectionNotFound = errors.New("no section contains the vector table address")
	ErrNoFreeSlot      = errors.New("no zero entry found in the interrupt part of the vector table, specify the entry to patch explicitly")
	ErrOutOfBounds     = errors.New("vector table entry lies outside of the image")
)
