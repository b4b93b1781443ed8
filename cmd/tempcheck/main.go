// Command tempcheck classifies a phone temperature from the command line.
//
// Usage:
//
//	tempcheck -t 44                          # manual entry
//	tempcheck -detect                        # read the battery via sysfs
//	tempcheck -detect -charging -level 0.1   # simulate a battery
//	tempcheck -t 52 -json                    # machine-readable output
//
// Exit codes: 0 on success, 1 for usage errors or invalid input, 2 when
// detection is unavailable or fails.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/couchcryptid/phone-temp-checker/internal/adapter/battery"
	"github.com/couchcryptid/phone-temp-checker/internal/checker"
	"github.com/couchcryptid/phone-temp-checker/internal/domain"
	"github.com/couchcryptid/phone-temp-checker/internal/observability"
)

const (
	exitOK = iota
	exitInvalid
	exitDetection
)

var findTemperatureHints = []string{
	"Check Settings → Battery → Battery Health (iOS)",
	"Check Settings → Device Care → Battery (Samsung)",
	"Use a CPU temperature monitoring app",
}

func main() {
	os.Exit(run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("tempcheck", flag.ContinueOnError)
	fs.SetOutput(stderr)
	temp := fs.String("t", "", "phone temperature in °C")
	detect := fs.Bool("detect", false, "estimate the temperature from the battery")
	sysfsPath := fs.String("sysfs", "/sys", "sysfs mount point used by -detect")
	charging := fs.Bool("charging", false, "with -level: simulate a charging battery")
	level := fs.Float64("level", 0, "simulate a battery at this charge level (0-1) instead of reading sysfs")
	timeout := fs.Duration("timeout", 2*time.Second, "battery probe timeout")
	asJSON := fs.Bool("json", false, "print the result as JSON")
	verbose := fs.Bool("v", false, "log debug output to stderr")
	if err := fs.Parse(args); err != nil {
		return exitInvalid
	}

	manual := *temp != ""
	if manual == *detect {
		fmt.Fprintln(stderr, "exactly one of -t or -detect is required")
		fs.Usage()
		printHints(stderr)
		return exitInvalid
	}

	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
	levelSet := set["level"]
	if set["charging"] && !levelSet {
		fmt.Fprintln(stderr, "-charging requires -level")
		return exitInvalid
	}

	var prober domain.BatteryProber = battery.NewSysfsProber(*sysfsPath)
	if levelSet {
		if *level < 0 || *level > 1 {
			fmt.Fprintln(stderr, "-level must be between 0 and 1")
			return exitInvalid
		}
		prober = battery.StaticProber{Status: domain.BatteryStatus{Charging: *charging, Level: *level}}
	}

	logLevel := slog.LevelWarn
	if *verbose {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: logLevel}))
	c := checker.New(prober, nil, logger, observability.NewUnregisteredMetrics(), *timeout)

	var (
		out checker.Outcome
		err error
	)
	if *detect {
		out, err = c.Detect(ctx)
	} else {
		out, err = c.Check(ctx, *temp)
	}

	if *asJSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		if encErr := enc.Encode(out); encErr != nil {
			fmt.Fprintf(stderr, "encode result: %v\n", encErr)
			return exitInvalid
		}
	} else {
		printOutcome(stdout, out)
	}

	switch {
	case err == nil:
		return exitOK
	case errors.Is(err, domain.ErrInvalidTemperature):
		return exitInvalid
	case errors.Is(err, domain.ErrDetectionUnsupported):
		if !*asJSON {
			printHints(stdout)
		}
		return exitDetection
	default:
		return exitDetection
	}
}

func printOutcome(w io.Writer, out checker.Outcome) {
	if out.Notice != nil {
		fmt.Fprintf(w, "[%s] %s: %s\n", out.Notice.Severity, out.Notice.Title, out.Notice.Message)
	}
	if out.Status == nil {
		return
	}

	info := out.Status.Info
	fmt.Fprintf(w, "%.1f°C %s %s (%s)\n", out.Status.Reading.Celsius, info.Emoji, info.Band, out.Status.Reading.Source)
	fmt.Fprintln(w, info.Message)
	fmt.Fprintln(w, "Suggestions:")
	for i, tip := range info.Tips {
		fmt.Fprintf(w, "  %d. %s: %s\n", i+1, tip.Title, tip.Description)
	}
}

func printHints(w io.Writer) {
	fmt.Fprintln(w, "How to find your phone temperature:")
	for _, h := range findTemperatureHints {
		fmt.Fprintf(w, "  - %s\n", h)
	}
}
