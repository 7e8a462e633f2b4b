package dataset

import (
	"github.com/ChizhovVadim/connect4data/pkg/connect4"
)

type TrainingSample struct {
	Board [connect4.Area]float64
	Label [connect4.Width]float64
	Mask  Mask
}

type ValidationSample struct {
	Board [connect4.Area]float64
	Label Label
	Mask  Mask
}

// TestSample keeps the move string and id for evaluation reports.
type TestSample struct {
	Board [connect4.Area]float64
	Label Label
	Mask  Mask
	Moves string
	ID    string
}

// OneHot sets 1.0 at every index of the label, so it may have several ones.
func OneHot(indices Label) [connect4.Width]float64 {
	var result [connect4.Width]float64
	for _, i := range indices {
		result[i] = 1.0
	}
	return result
}

func ToTraining(pos Position) TrainingSample {
	return TrainingSample{
		Board: pos.Board.Flatten(),
		Label: OneHot(pos.Label),
		Mask:  pos.Mask,
	}
}

func ToValidation(pos Position) ValidationSample {
	return ValidationSample{
		Board: pos.Board.Flatten(),
		Label: pos.Label,
		Mask:  pos.Mask,
	}
}

func ToTest(pos Position) TestSample {
	return TestSample{
		Board: pos.Board.Flatten(),
		Label: pos.Label,
		Mask:  pos.Mask,
		Moves: pos.Moves,
		ID:    pos.ID,
	}
}
