package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"gonum.org/v1/plot/vg"

	"github.com/decibelcooper/trkhits"
)

func printUsage(fs *flag.FlagSet) {
	fmt.Fprintf(fs.Output(), `Usage: `+fs.Name()+` [options] <lcio-or-proio-input-files>...

Counts simulated hits in every layer of the tracker subsystems and reports
hit densities (hits/cm^2) and per-run statistics.

options:
`,
	)
	fs.PrintDefaults()
}

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		logrus.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	fs := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	collections := &trkhits.StringArrayFlags{Array: trkhits.DefaultCollections}
	var (
		geometry    = fs.String("geometry", "", "YAML detector geometry (required)")
		elementType = fs.String("type", "tracker", "type of the detector elements to analyse")
		encoding    = fs.String("encoding", "", "cell ID encoding of collections without one (default from geometry)")
		systemField = fs.String("system", "system", "name of the subsystem field in the cell ID")
		layerField  = fs.String("layer", "layer", "name of the layer field in the cell ID")
		format      = fs.String("format", "", "input format, lcio or proio (default from file extension)")
		firstRun    = fs.Int64("run", 0, "run number of the first proio input file")
		output      = fs.String("output", "", "output plot file (png, pdf, svg)")
		title       = fs.String("title", "", "plot title")
		logLevel    = fs.String("loglevel", "info", "log level (debug, info, warn, error)")
		profDir     = fs.String("profile", "", "write a CPU profile to this directory")
	)
	fs.Var(collections, "coll", "tracker hit collection to analyse (repeatable)")
	fs.Usage = func() { printUsage(fs) }
	if err := fs.Parse(args); err != nil {
		return err
	}

	log := setupLogger(*logLevel)
	if fs.NArg() < 1 || *geometry == "" {
		fs.Usage()
		return fmt.Errorf("invalid arguments")
	}

	if *profDir != "" {
		defer profile.Start(profile.ProfilePath(*profDir)).Stop()
	}

	geom, err := trkhits.LoadGeometry(*geometry)
	if err != nil {
		return err
	}

	hc := trkhits.NewHitCounter(trkhits.Config{
		Collections: collections.Array,
		ElementType: *elementType,
		Encoding:    *encoding,
		SystemField: *systemField,
		LayerField:  *layerField,
		Logger:      log,
	})
	if err := hc.Init(geom); err != nil {
		return err
	}

	src, err := openSource(*format, fs.Args(), collections.Array, *firstRun)
	if err != nil {
		return err
	}
	err = trkhits.Process(src, hc)
	src.Close()
	if err != nil {
		return err
	}

	report := hc.End()
	if _, err := report.WriteTo(stdout); err != nil {
		return err
	}

	if *output != "" {
		p, err := report.Plot(*title)
		if err != nil {
			return err
		}
		if err := p.Save(6*vg.Inch, 4*vg.Inch, *output); err != nil {
			return fmt.Errorf("could not save plot: %w", err)
		}
	}
	return nil
}

func setupLogger(level string) *logrus.Logger {
	log := logrus.New()
	log.SetOutput(os.Stderr)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})

	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		lvl = logrus.InfoLevel
	}
	log.SetLevel(lvl)
	return log
}

func openSource(format string, files, collections []string, firstRun int64) (trkhits.Source, error) {
	if format == "" {
		format = formatOf(files[0])
		for _, f := range files[1:] {
			if formatOf(f) != format {
				return nil, fmt.Errorf("mixed input formats, use -format")
			}
		}
	}

	switch format {
	case "lcio":
		return trkhits.NewLCIOSource(files, collections), nil
	case "proio":
		return trkhits.NewProioSource(files, collections, firstRun), nil
	}
	return nil, fmt.Errorf("unknown input format %q", format)
}

func formatOf(fname string) string {
	ext := strings.ToLower(filepath.Ext(strings.TrimSuffix(fname, ".gz")))
	switch ext {
	case ".slcio", ".lcio":
		return "lcio"
	case ".proio":
		return "proio"
	}
	return ext
}
