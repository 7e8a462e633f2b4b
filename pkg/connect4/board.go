package connect4

import (
	"errors"
	"fmt"
	"strings"
)

const (
	Width  = 7
	Height = 6
	Area   = Width * Height
)

const (
	First  = 1.0
	Second = -1.0
	Empty  = 0.0
)

var ErrIllegalMove = errors.New("illegal move")

// Board is the grid after replaying a move string.
// Row 0 is the top row, pieces stack from row Height-1 upwards.
type Board struct {
	Cells [Height][Width]float64
	Moves int
}

// Replay plays moves (1-based column digits) from the empty board.
func Replay(moves string) (Board, error) {
	var b Board
	var free [Width]int
	for i := range free {
		free[i] = Height
	}
	var mover = First
	for i := 0; i < len(moves); i++ {
		var ch = moves[i]
		if ch < '1' || ch > '0'+Width {
			return Board{}, fmt.Errorf("%w: column %q at ply %v", ErrIllegalMove, ch, i)
		}
		var col = int(ch - '1')
		if free[col] == 0 {
			return Board{}, fmt.Errorf("%w: column %v is full at ply %v", ErrIllegalMove, col+1, i)
		}
		free[col]--
		b.Cells[free[col]][col] = mover
		mover = -mover
	}
	b.Moves = len(moves)
	return b, nil
}

// Mover returns the value the next piece would be written with.
func (b *Board) Mover() float64 {
	if b.Moves%2 == 0 {
		return First
	}
	return Second
}

func (b *Board) Flatten() [Area]float64 {
	var result [Area]float64
	for row := 0; row < Height; row++ {
		copy(result[row*Width:], b.Cells[row][:])
	}
	return result
}

func (b *Board) String() string {
	var sb = &strings.Builder{}
	for row := 0; row < Height; row++ {
		for col := 0; col < Width; col++ {
			switch b.Cells[row][col] {
			case First:
				sb.WriteByte('X')
			case Second:
				sb.WriteByte('O')
			default:
				sb.WriteByte('.')
			}
		}
		sb.WriteByte('\n')
	}
	sb.WriteString("1234567\n")
	return sb.String()
}
