package dataset

import (
	"github.com/ChizhovVadim/connect4data/pkg/connect4"
)

// Label holds 0-based columns in ascending order.
type Label []int

type Mask [connect4.Width]float64

var fullMask = Mask{1, 1, 1, 1, 1, 1, 1}

type Position struct {
	Board connect4.Board
	Label Label
	Mask  Mask
	Moves string
	ID    string
}

func Reconstruct(rec GameRecord, weak bool) (Position, error) {
	var board, err = connect4.Replay(rec.Moves)
	if err != nil {
		return Position{}, err
	}
	return Position{
		Board: board,
		Label: SelectLabel(rec.Scores, weak),
		Mask:  MaskOf(rec.Scores),
		Moves: rec.Moves,
		ID:    rec.ID,
	}, nil
}

// SelectLabel returns the columns with the lowest known score.
// Lower scores are better for the side to move.
// With weak policy a non-winning position has no label,
// and a winning one accepts every column with a negative score.
func SelectLabel(scores [connect4.Width]Score, weak bool) Label {
	var best, found = minScore(scores)
	if !found {
		return Label{}
	}
	if weak {
		if best > 0 {
			return Label{}
		}
		if best < 0 {
			return collect(scores, func(v int) bool { return v < 0 })
		}
	}
	return collect(scores, func(v int) bool { return v == best })
}

func minScore(scores [connect4.Width]Score) (int, bool) {
	var result int
	var found bool
	for _, s := range scores {
		if s.Known && (!found || s.Value < result) {
			result = s.Value
			found = true
		}
	}
	return result, found
}

func collect(scores [connect4.Width]Score, accept func(v int) bool) Label {
	var result = Label{}
	for i, s := range scores {
		if s.Known && accept(s.Value) {
			result = append(result, i)
		}
	}
	return result
}

func MaskOf(scores [connect4.Width]Score) Mask {
	var result Mask
	var known int
	for i, s := range scores {
		if s.Known {
			result[i] = 1
			known++
		}
	}
	if known == connect4.Width {
		return fullMask
	}
	return result
}
