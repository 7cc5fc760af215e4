package main

import (
	"context"
	"energy-es/internal/app"
	"energy-es/internal/application/dto"
	"energy-es/internal/domain/entities"
	"energy-es/internal/domain/interfaces"
	"fmt"
	"io"
	"os"
	"strings"
	_ "time/tzdata"

	flag "github.com/spf13/pflag"
)

var version = "1.0.0"

// options son los flags de la CLI
type options struct {
	variable   string
	unit       string
	configPath string
	verbose    bool
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseFlags(args, stderr)
	if err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	variables, unit, err := parseSelection(opts.variable, opts.unit)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 2
	}

	cfg, err := app.LoadConfig(opts.configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	// Los logs van a stderr para no mezclarse con la tabla
	if !opts.verbose {
		cfg.Logging.Level = "error"
	}
	cfg.Logging.Format = "text"
	if err := app.InitLogging(cfg.Logging, version, stderr); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	ctx := context.Background()
	a, err := app.New(ctx, cfg)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	defer a.Close()

	if err := printPrices(ctx, stdout, a.Prices, dto.NewPriceMapper(a.Location), variables, unit); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var opts options

	fs := flag.NewFlagSet("prices", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&opts.variable, "variable", "v", "all", "price series: spot, pvpc or all")
	fs.StringVarP(&opts.unit, "unit", "u", "m", "unit: m (€/MWh) or k (€/kWh)")
	fs.StringVarP(&opts.configPath, "config", "c", "", "path to a config file (default: search config.yaml)")
	fs.BoolVar(&opts.verbose, "verbose", false, "log to stderr at the configured level")

	if err := fs.Parse(args); err != nil {
		return opts, err
	}
	if fs.NArg() > 0 {
		return opts, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}
	return opts, nil
}

// parseSelection valida los flags antes de tocar el almacén o la red
func parseSelection(variableFlag, unitFlag string) ([]entities.Variable, entities.Unit, error) {
	unit, err := dto.ParseUnitParam(unitFlag)
	if err != nil {
		return nil, "", err
	}

	if strings.EqualFold(strings.TrimSpace(variableFlag), "all") {
		return entities.Variables, unit, nil
	}

	variable, err := entities.ParseVariable(variableFlag)
	if err != nil {
		return nil, "", err
	}
	return []entities.Variable{variable}, unit, nil
}

// printPrices imprime una tabla por serie. Se detiene en el primer error.
func printPrices(ctx context.Context, w io.Writer, svc interfaces.PriceService, mapper *dto.PriceMapper, variables []entities.Variable, unit entities.Unit) error {
	for i, v := range variables {
		summary, err := svc.GetSummary(ctx, v, unit)
		if err != nil {
			return err
		}
		if i > 0 {
			fmt.Fprintln(w)
		}
		renderSummary(w, mapper.ToSummaryResponse(summary))
	}
	return nil
}
