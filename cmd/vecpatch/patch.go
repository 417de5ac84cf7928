package main

import (
	"context"
	"fmt"

	"github.com/fatih/color"

	vpcontext "github.com/grafana/vecpatch/pkg/context"
	"github.com/grafana/vecpatch/pkg/vectortable"
)

type patchParams struct {
	vectortable.Config
	slot optionalIndex
}

func addPatchParams(cmd commander) *patchParams {
	params := &patchParams{}
	cmd.Flag("input-file", "Path of the ELF image to patch.").Short('i').Required().Envar(envPrefix + "INPUT_FILE").StringVar(&params.InputPath)
	cmd.Flag("output-file", "Path the patched image is written to. Must differ from the input file.").Short('o').Required().Envar(envPrefix + "OUTPUT_FILE").StringVar(&params.OutputPath)
	addressVar(cmd.Flag("interrupt-address", "Address of the interrupt handler to add (prefix with 0x for hex).").Short('a').Required(), &params.HandlerAddress)
	addressVar(cmd.Flag("vector-table-offset", "Address of the vector table (prefix with 0x for hex).").Short('v').Default("0"), &params.TableAddress)
	cmd.Flag("n-th-entry", "Which entry of the vector table to write to (defaults to the first zero entry in the interrupts part of the table).").Short('n').SetValue(&params.slot)
	cmd.Flag("do-not-correct", "Do not correct the interrupt address for ARM Thumb mode.").Short('d').Default("false").BoolVar(&params.DisableCorrection)
	cmd.Flag("dry-run", "Resolve and report the patch without writing the output file.").Default("false").BoolVar(&params.DryRun)
	return params
}

func patch(ctx context.Context, params *patchParams) error {
	cfg := params.Config
	cfg.Slot = params.slot.Ptr()

	res, err := vectortable.Run(ctx, cfg)
	if err != nil {
		return err
	}
	printResult(ctx, res)
	return nil
}

func printResult(ctx context.Context, res vectortable.Result) {
	out := vpcontext.Output(ctx)
	fmt.Fprintf(out, "Using interrupt address 0x%x for entry %d (%s)\n", res.Value, res.Slot, vectortable.SlotName(res.Slot))
	if !res.Written {
		fmt.Fprintf(out, "Would patch bytes at file offset 0x%x\n", res.FileOffset)
		return
	}
	color.New(color.FgGreen).Fprintf(out, "Patched bytes at file offset 0x%x\n", res.FileOffset)
}
