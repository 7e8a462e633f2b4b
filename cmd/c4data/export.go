package main

import (
	"context"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
	"github.com/ChizhovVadim/connect4data/internal/export"
)

func runExport(
	ctx context.Context,
	paths dataset.SplitPaths,
	split string,
	output string,
	opts dataset.Options,
) error {
	var input, err = splitPath(paths, split)
	if err != nil {
		return err
	}
	rows, stats, err := dataset.LoadFile(ctx, input, export.Shaper(split, opts.Weak), opts)
	if err != nil {
		return err
	}
	var threads = int64(opts.Threads)
	if threads <= 0 {
		threads = 1
	}
	if err := export.WriteParquet(output, rows, threads); err != nil {
		return err
	}
	logger.Info().
		Str("split", split).
		Str("output", output).
		Int("rows", len(rows)).
		Int("skipped", stats.Skipped).
		Msg("export finished")
	return nil
}
