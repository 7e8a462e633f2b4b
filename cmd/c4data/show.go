package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
)

var errEnoughItems = errors.New("enough items")

func runShow(
	ctx context.Context,
	paths dataset.SplitPaths,
	split string,
	count int,
	opts dataset.Options,
) error {
	var path, err = splitPath(paths, split)
	if err != nil {
		return err
	}
	r, err := dataset.OpenSplit(path)
	if err != nil {
		return err
	}
	defer r.Close()
	return showPositions(ctx, r, os.Stdout, count, opts)
}

func showPositions(
	ctx context.Context,
	r io.Reader,
	w io.Writer,
	count int,
	opts dataset.Options,
) error {
	var shown int
	var err = dataset.Walk(ctx, r, opts, func(pos dataset.Position) error {
		if shown >= count {
			return errEnoughItems
		}
		shown++
		fmt.Fprintf(w, "id=%v moves=%q label=%v mask=%v\n", pos.ID, pos.Moves, pos.Label, pos.Mask)
		fmt.Fprintln(w, pos.Board.String())
		return nil
	})
	if errors.Is(err, errEnoughItems) {
		return nil
	}
	return err
}
