package main

import (
	"context"
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"

	vpcontext "github.com/grafana/vecpatch/pkg/context"
	"github.com/grafana/vecpatch/pkg/elfimage"
	"github.com/grafana/vecpatch/pkg/vectortable"
)

type tableParams struct {
	inputPath    string
	tableAddress uint32
}

func addTableParams(cmd commander) *tableParams {
	params := &tableParams{}
	cmd.Flag("input-file", "Path of the ELF image to inspect.").Short('i').Required().Envar(envPrefix + "INPUT_FILE").StringVar(&params.inputPath)
	addressVar(cmd.Flag("vector-table-offset", "Address of the vector table (prefix with 0x for hex).").Short('v').Default("0"), &params.tableAddress)
	return params
}

func vectorTable(ctx context.Context, params *tableParams) error {
	data, err := vectortable.LoadImage(params.inputPath)
	if err != nil {
		return err
	}
	hdr, err := elfimage.ParseHeader(data)
	if err != nil {
		return err
	}
	if err := vectortable.ValidateFormat(hdr); err != nil {
		return err
	}
	img, err := elfimage.Parse(data)
	if err != nil {
		return err
	}
	loc, err := vectortable.LocateSection(img.Sections, uint64(params.tableAddress))
	if err != nil {
		return err
	}
	slots := vectortable.ReadSlots(data, loc)

	out := vpcontext.Output(ctx)
	fmt.Fprintf(out, "image: %s (%s)\n", params.inputPath, humanize.Bytes(uint64(len(data))))
	fmt.Fprintf(out, "section: %s at file offset 0x%x, table at file offset 0x%x\n", loc.Section.Name, loc.Section.Offset, loc.TableOffset)
	fmt.Fprintf(out, "entries: %d, free interrupt entries: %d\n", len(slots), len(vectortable.FreeSlots(slots)))

	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Entry", "Name", "Offset", "Value", "Symbol"})
	for _, s := range slots {
		value := fmt.Sprintf("0x%08x", s.Value)
		if s.Free() {
			value = "free"
		}
		table.Append([]string{
			fmt.Sprintf("%d", s.Index),
			s.Name,
			fmt.Sprintf("0x%x", s.FileOffset),
			value,
			vectortable.SymbolFor(img.Symbols, s.Value),
		})
	}
	table.Render()
	return nil
}
