package dataset

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/gzip"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	TrainingFile   = "connect4_training.txt.gz"
	ValidationFile = "connect4_validation.txt.gz"
	TestFile       = "connect4_test.txt.gz"

	DefaultDataFolder = "../data"
)

type SplitPaths struct {
	Training   string
	Validation string
	Test       string
}

func DefaultSplitPaths(folder string) SplitPaths {
	return SplitPaths{
		Training:   filepath.Join(folder, TrainingFile),
		Validation: filepath.Join(folder, ValidationFile),
		Test:       filepath.Join(folder, TestFile),
	}
}

type Splits struct {
	Training   []TrainingSample
	Validation []ValidationSample
	Test       []TestSample

	TrainingStats   Stats
	ValidationStats Stats
	TestStats       Stats
}

type splitReader struct {
	io.Reader
	gz   *gzip.Reader
	file *os.File
}

func (sr *splitReader) Close() error {
	var gzErr = sr.gz.Close()
	var fileErr = sr.file.Close()
	if gzErr != nil {
		return gzErr
	}
	return fileErr
}

// OpenSplit opens a gzip compressed UTF-8 dataset file.
func OpenSplit(path string) (io.ReadCloser, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrResourceUnavailable, err)
	}
	gz, err := gzip.NewReader(file)
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("%w: %v: %w", ErrResourceUnavailable, path, err)
	}
	return &splitReader{
		Reader: NewTextReader(gz),
		gz:     gz,
		file:   file,
	}, nil
}

// NewTextReader decodes UTF-8 and drops a leading byte order mark.
func NewTextReader(r io.Reader) io.Reader {
	return transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
}

func LoadFile[T any](
	ctx context.Context,
	path string,
	shape func(Position) T,
	opts Options,
) ([]T, Stats, error) {
	r, err := OpenSplit(path)
	if err != nil {
		return nil, Stats{}, err
	}
	defer r.Close()

	var logger = opts.logger().With().Str("path", path).Logger()
	opts.Logger = &logger
	res, stats, err := LoadSplit(ctx, r, shape, opts)
	if err != nil {
		return nil, Stats{}, errors.Wrapf(err, "load %v", path)
	}
	return res, stats, nil
}

// LoadAllSplits loads the three files concurrently.
func LoadAllSplits(ctx context.Context, paths SplitPaths, opts Options) (Splits, error) {
	var result Splits

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		result.Training, result.TrainingStats, err = LoadFile(ctx, paths.Training, ToTraining, opts)
		return err
	})

	g.Go(func() error {
		var err error
		result.Validation, result.ValidationStats, err = LoadFile(ctx, paths.Validation, ToValidation, opts)
		return err
	})

	g.Go(func() error {
		var err error
		result.Test, result.TestStats, err = LoadFile(ctx, paths.Test, ToTest, opts)
		return err
	})

	if err := g.Wait(); err != nil {
		return Splits{}, err
	}
	return result, nil
}
