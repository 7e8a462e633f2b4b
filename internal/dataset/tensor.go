package dataset

import (
	"github.com/ChizhovVadim/connect4data/pkg/connect4"
	"gorgonia.org/tensor"
)

// Tensors are column vectors: board (42,1), label (7,1), mask (7,1).
// Each call copies, the sample stays untouched.
func (s *TrainingSample) Tensors() (board, label, mask *tensor.Dense) {
	return columnTensor(s.Board[:]), columnTensor(s.Label[:]), columnTensor(s.Mask[:])
}

func (s *ValidationSample) Tensors() (board, mask *tensor.Dense) {
	return columnTensor(s.Board[:]), columnTensor(s.Mask[:])
}

func (s *TestSample) Tensors() (board, mask *tensor.Dense) {
	return columnTensor(s.Board[:]), columnTensor(s.Mask[:])
}

// BoardBatch stacks boards into a (n, 42) matrix, one row per sample.
func BoardBatch(samples []TrainingSample) *tensor.Dense {
	var data = make([]float64, 0, len(samples)*connect4.Area)
	for i := range samples {
		data = append(data, samples[i].Board[:]...)
	}
	return tensor.New(tensor.WithShape(len(samples), connect4.Area), tensor.WithBacking(data))
}

func columnTensor(src []float64) *tensor.Dense {
	var data = make([]float64, len(src))
	copy(data, src)
	return tensor.New(tensor.WithShape(len(data), 1), tensor.WithBacking(data))
}
