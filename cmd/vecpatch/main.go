package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/prometheus/common/version"
	"gopkg.in/alecthomas/kingpin.v2"

	vpcontext "github.com/grafana/vecpatch/pkg/context"
)

const envPrefix = "VECPATCH_"

var cfg struct {
	verbose bool
}

var (
	consoleOutput = os.Stderr
	logger        = log.NewLogfmtLogger(consoleOutput)
)

func main() {
	app := kingpin.New(filepath.Base(os.Args[0]), "Install interrupt handlers into the vector table of ARM firmware ELF images.").UsageWriter(os.Stdout)
	app.Version(version.Print("vecpatch"))
	app.HelpFlag.Short('h')
	app.Flag("verbose", "Enable verbose logging.").Default("false").BoolVar(&cfg.verbose)

	patchCmd := app.Command("patch", "Write an interrupt handler address into a vector table entry.").Default()
	patchParams := addPatchParams(patchCmd)

	tableCmd := app.Command("table", "Print the vector table of an image.")
	tableParams := addTableParams(tableCmd)

	// parse command line arguments
	parsedCmd := kingpin.MustParse(app.Parse(os.Args[1:]))

	// enable verbose logging if requested
	if !cfg.verbose {
		logger = level.NewFilter(logger, level.AllowInfo())
	}

	ctx := vpcontext.WithLogger(context.Background(), logger)
	ctx = vpcontext.WithOutput(ctx, os.Stdout)

	switch parsedCmd {
	case patchCmd.FullCommand():
		os.Exit(checkError(patch(ctx, patchParams)))
	case tableCmd.FullCommand():
		os.Exit(checkError(vectorTable(ctx, tableParams)))
	default:
		level.Error(logger).Log("msg", "unknown command", "cmd", parsedCmd)
		os.Exit(1)
	}
}

func checkError(err error) int {
	if err == nil {
		return 0
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	return 1
}

type commander interface {
	Flag(name, help string) *kingpin.FlagClause
}
