// Command boxscan reads an ISOBMFF file (MP4, MOV, HEIF, ...) and prints its
// box tree with the fields of the structural boxes.
package main

import (
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/phsym/console-slog"

	"github.com/tetsuo/boxscan"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("boxscan", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "YAML config file")
	format := fs.String("format", "", "output format: text (default), json")
	level := fs.String("log-level", "", "log level: debug, info, warn, error")
	dump := fs.Int("dump", -1, "hex-dump up to N payload bytes of skipped boxes")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: boxscan [flags] <file.mp4>\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 1 {
		fs.Usage()
		return 2
	}

	conf, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			conf.Format = *format
		case "log-level":
			conf.Log.Level = *level
		case "dump":
			conf.Dump = *dump
		}
	})
	if err := conf.validate(); err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	lvl, _ := parseLevel(conf.Log.Level)
	logger := slog.New(console.NewHandler(stderr, &console.HandlerOptions{
		Level:      lvl,
		NoColor:    !useColor(conf.Log.Color, stderr),
		TimeFormat: "15:04:05.000",
	}))

	var rep boxscan.Reporter
	if conf.Format == "json" {
		rep = boxscan.NewJSONReporter(stdout)
	} else {
		rep = boxscan.NewTextReporter(stdout, conf.Indent)
	}

	path := fs.Arg(0)
	count, err := boxscan.ScanFile(path, rep,
		boxscan.WithLogger(logger),
		boxscan.WithDump(conf.Dump),
	)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	logger.Debug("scan complete", "file", path, "boxes", count)
	return 0
}

// useColor resolves the color mode. "auto" colors only a terminal.
func useColor(mode string, w io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}
	f, ok := w.(*os.File)
	return ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()))
}
