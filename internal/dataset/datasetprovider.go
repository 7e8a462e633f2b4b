package dataset

import (
	"context"
	"fmt"
	"io"
	"runtime"
	"sync"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

const batchSize = 1024

type Options struct {
	Weak bool
	// Strict reports malformed lines and illegal move strings instead of skipping them.
	// Without it both are dropped from the output and only counted in Stats.
	Strict  bool
	Threads int
	Logger  *zerolog.Logger
}

func (o *Options) threads() int {
	if o.Threads <= 0 {
		return runtime.NumCPU()
	}
	return o.Threads
}

func (o *Options) logger() *zerolog.Logger {
	if o.Logger == nil {
		var nop = zerolog.Nop()
		return &nop
	}
	return o.Logger
}

type Stats struct {
	Lines   int
	Records int
	Skipped int
	Illegal int
}

type lineBatch struct {
	seq       int
	firstLine int
	lines     []inputLine
}

type positionBatch struct {
	seq       int
	positions []Position
	skipped   int
	illegal   int
	err       error
}

// LoadSplit parses every data line of r and shapes it with shape.
// The result keeps input order regardless of Threads.
func LoadSplit[T any](
	ctx context.Context,
	r io.Reader,
	shape func(Position) T,
	opts Options,
) ([]T, Stats, error) {
	var logger = opts.logger()
	logger.Debug().Msg("load split started")

	g, ctx := errgroup.WithContext(ctx)

	var threads = opts.threads()
	var batches = make(chan lineBatch, threads)
	var results = make(chan positionBatch, threads)
	var stats Stats

	g.Go(func() error {
		defer close(batches)
		var lines, err = readLines(ctx, r, batches)
		stats.Lines = lines
		return err
	})

	var wg = &sync.WaitGroup{}
	for i := 0; i < threads; i++ {
		wg.Add(1)
		g.Go(func() error {
			defer wg.Done()
			return analyzeBatches(ctx, batches, results, opts.Weak, opts.Strict)
		})
	}

	g.Go(func() error {
		wg.Wait()
		close(results)
		return nil
	})

	var res []T
	g.Go(func() error {
		var err error
		res, err = mergeBatches(results, shape, &stats)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	logger.Info().
		Int("lines", stats.Lines).
		Int("records", stats.Records).
		Int("skipped", stats.Skipped).
		Int("illegal", stats.Illegal).
		Msg("load split finished")
	return res, stats, nil
}

func LoadTraining(ctx context.Context, r io.Reader, opts Options) ([]TrainingSample, Stats, error) {
	return LoadSplit(ctx, r, ToTraining, opts)
}

func LoadValidation(ctx context.Context, r io.Reader, opts Options) ([]ValidationSample, Stats, error) {
	return LoadSplit(ctx, r, ToValidation, opts)
}

func LoadTest(ctx context.Context, r io.Reader, opts Options) ([]TestSample, Stats, error) {
	return LoadSplit(ctx, r, ToTest, opts)
}

// Walk reconstructs positions one by one on the calling goroutine.
// An error from onItem stops the walk and is returned as is.
func Walk(
	ctx context.Context,
	r io.Reader,
	opts Options,
	onItem func(pos Position) error,
) error {
	var lines = newLineReader(r)
	for lineNumber := 1; ; lineNumber++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		var line, err = lines.next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("%w: read failed at line %v: %w", ErrResourceUnavailable, lineNumber, err)
		}
		pos, status, err := analyzeLine(line, lineNumber, opts.Weak, opts.Strict)
		if err != nil {
			return err
		}
		if status != lineOK {
			continue
		}
		if err := onItem(pos); err != nil {
			return err
		}
	}
}

func readLines(
	ctx context.Context,
	r io.Reader,
	batches chan<- lineBatch,
) (int, error) {
	var lines = newLineReader(r)
	var lineNumber int
	var batch = lineBatch{firstLine: 1}

	var flush = func() error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case batches <- batch:
		}
		batch = lineBatch{
			seq:       batch.seq + 1,
			firstLine: lineNumber + 1,
		}
		return nil
	}

	for {
		var line, err = lines.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return lineNumber, fmt.Errorf("%w: read failed at line %v: %w", ErrResourceUnavailable, lineNumber+1, err)
		}
		lineNumber++
		batch.lines = append(batch.lines, line)
		if len(batch.lines) == batchSize {
			if err := flush(); err != nil {
				return lineNumber, err
			}
		}
	}
	if len(batch.lines) != 0 {
		if err := flush(); err != nil {
			return lineNumber, err
		}
	}
	return lineNumber, nil
}

func analyzeBatches(
	ctx context.Context,
	batches <-chan lineBatch,
	results chan<- positionBatch,
	weak, strict bool,
) error {
	for batch := range batches {
		var result = analyzeBatch(batch, weak, strict)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case results <- result:
		}
	}
	return nil
}

func analyzeBatch(batch lineBatch, weak, strict bool) positionBatch {
	var result = positionBatch{
		seq:       batch.seq,
		positions: make([]Position, 0, len(batch.lines)),
	}
	for i, line := range batch.lines {
		var pos, status, err = analyzeLine(line, batch.firstLine+i, weak, strict)
		if err != nil {
			result.err = err
			break
		}
		switch status {
		case lineOK:
			result.positions = append(result.positions, pos)
		case lineMalformed:
			result.skipped++
		case lineIllegal:
			result.illegal++
		}
	}
	return result
}

type lineStatus int

const (
	lineOK lineStatus = iota
	lineMalformed
	lineIllegal
)

// analyzeLine returns an error only in strict mode.
func analyzeLine(line inputLine, lineNumber int, weak, strict bool) (Position, lineStatus, error) {
	if line.tooLong {
		if strict {
			return Position{}, lineMalformed, &LineError{Line: lineNumber, Text: line.text, Err: ErrLineTooLong}
		}
		return Position{}, lineMalformed, nil
	}
	var rec, ok = ParseLine(line.text)
	if !ok {
		if strict {
			return Position{}, lineMalformed, &LineError{Line: lineNumber, Text: line.text, Err: ErrMalformedLine}
		}
		return Position{}, lineMalformed, nil
	}
	var pos, err = Reconstruct(rec, weak)
	if err != nil {
		if strict {
			return Position{}, lineIllegal, &LineError{Line: lineNumber, Text: line.text, Err: err}
		}
		return Position{}, lineIllegal, nil
	}
	return pos, lineOK, nil
}
