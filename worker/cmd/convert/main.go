// Command convert runs one batch conversion locally and prints progress.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"batchConverter/worker/converter"
	"batchConverter/worker/decoder"
	"batchConverter/worker/media"
	"batchConverter/worker/policy"
	"batchConverter/worker/resolution"
	"batchConverter/worker/runner"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		outDir   = flag.String("out", "", "output directory (required)")
		format   = flag.String("format", "png", "target format: "+strings.Join(formatNames(), ", "))
		preset   = flag.String("preset", string(media.DefaultPreset), "layered-composite resolution: low, mid, high")
		onError  = flag.String("on-error", string(policy.ReactReport), "reaction to errors: report, skip-extension, skip-all, abort")
		skipExt  = flag.String("skip-ext", "", "comma separated extensions to skip")
		skipAll  = flag.Bool("skip-all", false, "skip every file without converting")
		verbose  = flag.Bool("v", false, "debug logging")
		maxPixel = flag.Int64("max-pixels", decoder.DefaultMaxPixels, "largest decode allowed, in pixels")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "usage: %s -out DIR [flags] FILE...\n", os.Args[0])
		flag.PrintDefaults()
	}
	flag.Parse()

	if *outDir == "" || flag.NArg() == 0 {
		flag.Usage()
		return 2
	}

	logger := newLogger(*verbose)
	defer logger.Sync()

	target, err := media.ParseFormat(*format)
	if err != nil {
		logger.Error("Invalid format", zap.String("format", *format), zap.Error(err))
		return 2
	}
	res, err := media.ParsePreset(*preset)
	if err != nil {
		logger.Error("Invalid preset", zap.String("preset", *preset), zap.Error(err))
		return 2
	}
	reaction, err := policy.ParseReaction(*onError)
	if err != nil {
		logger.Error("Invalid error reaction", zap.Error(err))
		return 2
	}

	errPolicy := policy.New()
	errPolicy.SetSkipAll(*skipAll)
	for _, ext := range strings.Split(*skipExt, ",") {
		errPolicy.SkipExtension(ext)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	limits := decoder.DefaultLimits()
	limits.MaxPixels = *maxPixel
	conv := converter.NewConverter(logger, decoder.NewSet(logger, resolution.Default(), limits))
	r := runner.NewRunner(logger, conv, limits.LargeFileThreshold)

	job := runner.Job{
		ID:        uuid.New().String(),
		Files:     flag.Args(),
		OutputDir: *outDir,
		Format:    target,
		Preset:    res,
	}

	rep := &reporter{
		out:      os.Stdout,
		logger:   logger,
		reaction: reaction,
		policy:   errPolicy,
		cancel:   cancel,
	}
	for ev := range r.Start(ctx, job, errPolicy) {
		rep.handle(ev)
	}

	if rep.summary == nil || rep.summary.FailureCount > 0 || rep.summary.State == runner.StateCancelled {
		return 1
	}
	return 0
}

func formatNames() []string {
	var names []string
	for _, f := range media.Formats() {
		names = append(names, f.String())
	}
	return names
}

func newLogger(verbose bool) *zap.Logger {
	cfg := zap.NewDevelopmentConfig()
	if !verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	logger, err := cfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}
