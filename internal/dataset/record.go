package dataset

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/ChizhovVadim/connect4data/pkg/connect4"
)

// moves, seven scores each followed by a space, id
var lineRegex = regexp.MustCompile(`^(\d*) ((?:(?:x|-?\d+) ){7})(\d+)\s*$`)

const unknownScore = "x"

type Score struct {
	Value int
	Known bool
}

type GameRecord struct {
	Moves  string
	Scores [connect4.Width]Score
	ID     string
}

// ParseLine returns false for anything that is not a data line.
func ParseLine(line string) (GameRecord, bool) {
	var m = lineRegex.FindStringSubmatch(line)
	if m == nil {
		return GameRecord{}, false
	}
	var tokens = strings.Fields(m[2])
	if len(tokens) != connect4.Width {
		return GameRecord{}, false
	}
	var rec = GameRecord{
		Moves: m[1],
		ID:    m[3],
	}
	for i, token := range tokens {
		if token == unknownScore {
			continue
		}
		var v, err = strconv.Atoi(token)
		if err != nil {
			return GameRecord{}, false
		}
		rec.Scores[i] = Score{Value: v, Known: true}
	}
	return rec, true
}
