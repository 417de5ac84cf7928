package vectortable

import (
	"context"
	"fmt"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"

	vpcontext "github.com/grafana/vecpatch/pkg/context"
	"github.com/grafana/vecpatch/pkg/elfimage"
)

// Config describes a single patch run.
type Config struct {
	InputPath  string
	OutputPath string

	// HandlerAddress is the interrupt handler to install.
	HandlerAddress uint32
	// TableAddress is the virtual address of the vector table.
	TableAddress uint32
	// Slot selects the entry explicitly. When nil the first free interrupt
	// entry is used.
	Slot *int

	DisableCorrection bool
	// DryRun runs the whole pipeline but does not create OutputPath.
	DryRun bool
}

type Result struct {
	Section    string
	Slot       int
	FileOffset uint64
	Value      uint32
	Correction Correction
	Written    bool
}

// Run patches cfg.InputPath and writes the result to cfg.OutputPath. The
// output file is only created once every step succeeded.
func Run(ctx context.Context, cfg Config) (Result, error) {
	logger := vpcontext.Logger(ctx)

	if err := ValidatePaths(cfg.InputPath, cfg.OutputPath); err != nil {
		return Result{}, err
	}

	data, err := LoadImage(cfg.InputPath)
	if err != nil {
		return Result{}, err
	}
	res, err := PatchImage(logger, data, cfg)
	if err != nil {
		return Result{}, err
	}

	if cfg.DryRun {
		level.Info(logger).Log("msg", "dry run, output file not written", "path", cfg.OutputPath)
		return res, nil
	}
	if err := WriteImage(cfg.OutputPath, data); err != nil {
		return Result{}, err
	}
	res.Written = true
	level.Debug(logger).Log("msg", "wrote output file", "path", cfg.OutputPath, "size", len(data))
	return res, nil
}

// PatchImage applies cfg to the in-memory image data.
func PatchImage(logger log.Logger, data []byte, cfg Config) (Result, error) {
	hdr, err := elfimage.ParseHeader(data)
	if err != nil {
		return Result{}, err
	}
	if err := ValidateFormat(hdr); err != nil {
		return Result{}, err
	}
	img, err := elfimage.Parse(data)
	if err != nil {
		return Result{}, err
	}

	loc, err := LocateSection(img.Sections, uint64(cfg.TableAddress))
	if err != nil {
		return Result{}, err
	}
	level.Info(logger).Log(
		"msg", "vector table located",
		"section", loc.Section.Name,
		"section_offset", hex(loc.Section.Offset),
		"table_offset", hex(loc.TableOffset),
	)

	slot, err := ResolveSlot(data, loc, cfg.Slot)
	if err != nil {
		return Result{}, err
	}
	level.Debug(logger).Log("msg", "resolved vector table entry", "entry", slot, "explicit", cfg.Slot != nil)

	corr := CorrectAddress(cfg.HandlerAddress, img.Symbols, cfg.DisableCorrection)
	if !corr.Disabled && !corr.Verified() {
		level.Warn(logger).Log(
			"msg", "interrupt address was not found as a sized symbol, proceed with caution",
			"address", hex(uint64(cfg.HandlerAddress)),
		)
	}
	if corr.Changed() {
		level.Info(logger).Log(
			"msg", "corrected interrupt address for ARM Thumb mode, pass -d to disable correction",
			"requested", hex(uint64(corr.Requested)),
			"address", hex(uint64(corr.Address)),
			"symbol", corr.Symbol,
		)
	}

	off, err := Patch(data, loc, slot, corr.Address)
	if err != nil {
		return Result{}, err
	}
	return Result{
		Section:    loc.Section.Name,
		Slot:       slot,
		FileOffset: off,
		Value:      corr.Address,
		Correction: corr,
	}, nil
}

func hex(v uint64) string {
	return fmt.Sprintf("0x%x", v)
}
