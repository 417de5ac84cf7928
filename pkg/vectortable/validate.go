package vectortable

import (
	"debug/elf"
	"os"
	"path/filepath"

	"github.com/pkg/errors"

	"github.com/grafana/vecpatch/pkg/elfimage"
)

// ValidateFormat rejects images whose word size, byte order or machine the
// patcher cannot handle. Rules are checked in that order.
func ValidateFormat(h elfimage.Header) error {
	if h.Is64() {
		return ErrUnsupportedWidth
	}
	if !h.LittleEndian() {
		return ErrUnsupportedEndianness
	}
	if h.Machine != elf.EM_ARM {
		return errors.Wrapf(ErrUnsupportedArchitecture, "machine is %s", h.Machine)
	}
	return nil
}

// ValidatePaths fails if input and output refer to the same file. Writing the
// output truncates it, so this must hold before anything is read.
func ValidatePaths(input, output string) error {
	if input == output {
		return ErrSameInputOutputPath
	}
	in, err := filepath.Abs(input)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", input)
	}
	out, err := filepath.Abs(output)
	if err != nil {
		return errors.Wrapf(err, "failed to resolve %s", output)
	}
	if in == out {
		return ErrSameInputOutputPath
	}

	inStat, err := os.Stat(in)
	if err != nil {
		// reported when the input is loaded
		return nil
	}
	outStat, err := os.Stat(out)
	if err != nil {
		return nil
	}
	if os.SameFile(inStat, outStat) {
		return ErrSameInputOutputPath
	}
	return nil
}
