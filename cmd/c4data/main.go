package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"

	"github.com/rs/zerolog"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
)

const (
	splitTraining   = "training"
	splitValidation = "validation"
	splitTest       = "test"
)

var logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
	With().Timestamp().Caller().Logger()

func main() {
	var err = run()
	if err != nil {
		logger.Error().Err(err).Msg("c4data failed")
		os.Exit(1)
	}
}

func run() error {
	var fileConfig = FileConfig{
		DataFolder: dataset.DefaultDataFolder,
		Threads:    runtime.NumCPU(),
	}
	if path, found := findConfigPath(); found {
		var cfg, err = loadFileConfig(path)
		if err != nil {
			return err
		}
		logger.Info().Str("path", path).Msg("loaded config")
		mergeFileConfig(&fileConfig, cfg)
	}

	var ctx, cancel = signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	var cli = NewCli()
	var paths = dataset.DefaultSplitPaths(mapPath(cli.StringParam("data", fileConfig.DataFolder)))
	var opts = dataset.Options{
		Weak:    cli.BoolParam("weak", fileConfig.Weak),
		Strict:  cli.BoolParam("strict", false),
		Threads: cli.IntParam("threads", fileConfig.Threads),
		Logger:  &logger,
	}
	logger.Debug().Interface("paths", paths).Bool("weak", opts.Weak).Msg("settings")

	cli.AddCommand("stats", func() error {
		return runStats(ctx, paths, opts)
	})
	cli.AddCommand("export", func() error {
		var split = cli.StringParam("split", splitTraining)
		var output = mapPath(cli.StringParam("out", split+".parquet"))
		return runExport(ctx, paths, split, output, opts)
	})
	cli.AddCommand("show", func() error {
		var split = cli.StringParam("split", splitTest)
		var count = cli.IntParam("n", 5)
		return runShow(ctx, paths, split, count, opts)
	})
	return cli.Execute()
}

func mergeFileConfig(dst *FileConfig, src FileConfig) {
	if src.DataFolder != "" {
		dst.DataFolder = src.DataFolder
	}
	if src.Threads > 0 {
		dst.Threads = src.Threads
	}
	dst.Weak = src.Weak
}
