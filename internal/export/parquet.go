// Package export writes reconstructed positions to Parquet for trainers that read columnar files.
package export

import (
	"github.com/pkg/errors"
	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/reader"
	"github.com/xitongsys/parquet-go/writer"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
)

type Row struct {
	Split string    `parquet:"name=split, type=BYTE_ARRAY, convertedtype=UTF8"`
	Moves string    `parquet:"name=moves, type=BYTE_ARRAY, convertedtype=UTF8"`
	ID    string    `parquet:"name=id, type=BYTE_ARRAY, convertedtype=UTF8"`
	Weak  bool      `parquet:"name=weak, type=BOOLEAN"`
	Board []float32 `parquet:"name=board, type=LIST, valuetype=FLOAT"`
	Label []int32   `parquet:"name=label, type=LIST, valuetype=INT32"`
	Mask  []float32 `parquet:"name=mask, type=LIST, valuetype=FLOAT"`
}

// Shaper converts positions of one split into rows.
// Label keeps the column indices, trainers one-hot them on their side.
func Shaper(split string, weak bool) func(dataset.Position) Row {
	return func(pos dataset.Position) Row {
		var board = pos.Board.Flatten()
		var row = Row{
			Split: split,
			Moves: pos.Moves,
			ID:    pos.ID,
			Weak:  weak,
			Board: make([]float32, len(board)),
			Label: make([]int32, len(pos.Label)),
			Mask:  make([]float32, len(pos.Mask)),
		}
		for i, v := range board {
			row.Board[i] = float32(v)
		}
		for i, v := range pos.Label {
			row.Label[i] = int32(v)
		}
		for i, v := range pos.Mask {
			row.Mask[i] = float32(v)
		}
		return row
	}
}

func WriteParquet(path string, rows []Row, parallel int64) error {
	fileWriter, err := local.NewLocalFileWriter(path)
	if err != nil {
		return errors.Wrapf(err, "create %v", path)
	}
	defer fileWriter.Close()

	parquetWriter, err := writer.NewParquetWriter(fileWriter, new(Row), parallel)
	if err != nil {
		return errors.Wrap(err, "parquet writer")
	}
	parquetWriter.CompressionType = parquet.CompressionCodec_SNAPPY

	for i := range rows {
		if err := parquetWriter.Write(rows[i]); err != nil {
			return errors.Wrapf(err, "write row %v", i)
		}
	}
	if err := parquetWriter.WriteStop(); err != nil {
		return errors.Wrap(err, "parquet write stop")
	}
	return fileWriter.Close()
}

func ReadParquet(path string, parallel int64) ([]Row, error) {
	fileReader, err := local.NewLocalFileReader(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %v", path)
	}
	defer fileReader.Close()

	parquetReader, err := reader.NewParquetReader(fileReader, new(Row), parallel)
	if err != nil {
		return nil, errors.Wrap(err, "parquet reader")
	}
	defer parquetReader.ReadStop()

	var num = int(parquetReader.GetNumRows())
	var rows = make([]Row, 0, num)
	var batchSize = 1024
	for offset := 0; offset < num; offset += batchSize {
		if remain := num - offset; remain < batchSize {
			batchSize = remain
		}
		var batch = make([]Row, batchSize)
		if err := parquetReader.Read(&batch); err != nil {
			return nil, errors.Wrapf(err, "read rows at %v", offset)
		}
		rows = append(rows, batch...)
	}
	return rows, nil
}
