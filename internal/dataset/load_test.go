package dataset

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/ChizhovVadim/connect4data/pkg/connect4"
	"github.com/klauspost/compress/gzip"
)

const sampleData = `41 3 x 3 1 x 1 5 1
garbage line

4 -1 -3 0 x x x x 2
 x x x x x x x 3
1111111 0 0 0 0 0 0 0 4
44 2 4 x x x x x 5
`

func TestLoadSplitSkipsMalformed(t *testing.T) {
	var samples, stats, err = LoadTest(context.Background(), strings.NewReader(sampleData), Options{Threads: 2})
	if err != nil {
		t.Fatal(err)
	}
	var ids []string
	for _, s := range samples {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []string{"1", "2", "3", "5"}) {
		t.Fatalf("unexpected ids %v", ids)
	}
	var want = Stats{Lines: 7, Records: 4, Skipped: 2, Illegal: 1}
	if stats != want {
		t.Fatalf("stats: got %+v want %+v", stats, want)
	}
	if !reflect.DeepEqual(samples[0].Label, Label{3, 5}) {
		t.Error("label", samples[0].Label)
	}
	if !reflect.DeepEqual(samples[1].Label, Label{1}) {
		t.Error("label", samples[1].Label)
	}
	if len(samples[2].Label) != 0 || samples[2].Mask != (Mask{}) {
		t.Errorf("all unknown %+v", samples[2])
	}
}

func TestLoadSplitWeak(t *testing.T) {
	var samples, _, err = LoadValidation(context.Background(), strings.NewReader(sampleData), Options{Weak: true})
	if err != nil {
		t.Fatal(err)
	}
	var want = []Label{{}, {0, 1}, {}, {}}
	if len(samples) != len(want) {
		t.Fatalf("got %v samples", len(samples))
	}
	for i := range want {
		if !reflect.DeepEqual(samples[i].Label, want[i]) {
			t.Errorf("sample %v: got %v want %v", i, samples[i].Label, want[i])
		}
	}
}

func TestLoadSplitEmpty(t *testing.T) {
	var samples, stats, err = LoadTraining(context.Background(), strings.NewReader(""), Options{})
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 0 || stats != (Stats{}) {
		t.Fatalf("got %v %+v", len(samples), stats)
	}
}

func TestLoadSplitParallelMatchesSequential(t *testing.T) {
	var data = generateLines(rand.New(rand.NewSource(1)), 5000, map[int]string{
		100:  "bad",
		2048: "",
		4000: "9 0 0 0 0 0 0 0 1",
	})
	var ctx = context.Background()
	seq, seqStats, err := LoadTraining(ctx, strings.NewReader(data), Options{Threads: 1})
	if err != nil {
		t.Fatal(err)
	}
	par, parStats, err := LoadTraining(ctx, strings.NewReader(data), Options{Threads: 8})
	if err != nil {
		t.Fatal(err)
	}
	if seqStats != parStats {
		t.Fatalf("stats differ %+v %+v", seqStats, parStats)
	}
	if seqStats.Records != 4997 || seqStats.Skipped != 2 || seqStats.Illegal != 1 {
		t.Fatalf("unexpected stats %+v", seqStats)
	}
	if !reflect.DeepEqual(seq, par) {
		t.Fatal("parallel result differs from sequential")
	}
}

func TestLoadSplitStrict(t *testing.T) {
	var data = generateLines(rand.New(rand.NewSource(2)), 4000, map[int]string{
		1500: "bad",
		3000: "also bad",
	})
	var _, _, err = LoadTraining(context.Background(), strings.NewReader(data), Options{Strict: true, Threads: 4})
	var lineErr *LineError
	if !errors.As(err, &lineErr) {
		t.Fatalf("expected LineError, got %v", err)
	}
	if lineErr.Line != 1501 || !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("unexpected error %v", err)
	}

	_, _, err = LoadTraining(context.Background(), strings.NewReader("11111111 0 0 0 0 0 0 0 1\n"), Options{Strict: true})
	if !errors.Is(err, connect4.ErrIllegalMove) {
		t.Fatalf("expected illegal move, got %v", err)
	}
}

func TestLoadSplitOversizedLine(t *testing.T) {
	var huge = strings.Repeat("9", 2*maxLineLength)
	var tests = []string{
		"41 3 x 3 1 x 1 5 1\n" + huge + "\n44 2 4 x x x x x 3\n",
		"41 3 x 3 1 x 1 5 1\r\n" + huge + "\r\n44 2 4 x x x x x 3",
		"41 3 x 3 1 x 1 5 1\n44 2 4 x x x x x 3\n" + huge,
	}
	for i, data := range tests {
		var samples, stats, err = LoadTest(context.Background(), strings.NewReader(data), Options{Threads: 2})
		if err != nil {
			t.Fatal(i, err)
		}
		if len(samples) != 2 || samples[0].ID != "1" || samples[1].ID != "3" {
			t.Fatalf("%v: unexpected samples %+v", i, samples)
		}
		var want = Stats{Lines: 3, Records: 2, Skipped: 1}
		if stats != want {
			t.Fatalf("%v: stats: got %+v want %+v", i, stats, want)
		}
	}

	var _, _, err = LoadTest(context.Background(), strings.NewReader(tests[0]), Options{Strict: true})
	var lineErr *LineError
	if !errors.As(err, &lineErr) || lineErr.Line != 2 {
		t.Fatalf("expected LineError at line 2, got %v", err)
	}
	if !errors.Is(err, ErrLineTooLong) || !errors.Is(err, ErrMalformedLine) {
		t.Fatalf("unexpected error %v", err)
	}
	if len(lineErr.Text) != tooLongPrefix {
		t.Errorf("error text is %v bytes", len(lineErr.Text))
	}

	var ids []string
	err = Walk(context.Background(), strings.NewReader(tests[0]), Options{}, func(pos Position) error {
		ids = append(ids, pos.ID)
		return nil
	})
	if err != nil || !reflect.DeepEqual(ids, []string{"1", "3"}) {
		t.Fatalf("walk: %v %v", ids, err)
	}
}

func TestLineReader(t *testing.T) {
	var tests = []struct {
		input string
		want  []string
	}{
		{"", nil},
		{"a", []string{"a"}},
		{"a\n", []string{"a"}},
		{"a\r\nb\n\nc", []string{"a", "b", "", "c"}},
		{"\n\n", []string{"", ""}},
	}
	for _, test := range tests {
		var lines = newLineReader(strings.NewReader(test.input))
		var got []string
		for {
			var line, err = lines.next()
			if err == io.EOF {
				break
			}
			if err != nil {
				t.Fatal(err)
			}
			got = append(got, line.text)
		}
		if !reflect.DeepEqual(got, test.want) {
			t.Errorf("%q: got %q want %q", test.input, got, test.want)
		}
	}
}

func TestWalk(t *testing.T) {
	var errStop = errors.New("stop")
	var ids []string
	var err = Walk(context.Background(), strings.NewReader(sampleData), Options{}, func(pos Position) error {
		ids = append(ids, pos.ID)
		if len(ids) == 2 {
			return errStop
		}
		return nil
	})
	if !errors.Is(err, errStop) {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(ids, []string{"1", "2"}) {
		t.Fatal(ids)
	}
}

func TestOpenSplitMissing(t *testing.T) {
	var _, err = OpenSplit(filepath.Join(t.TempDir(), "missing.txt.gz"))
	if !errors.Is(err, ErrResourceUnavailable) || !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("got %v", err)
	}
}

func TestOpenSplitNotGzip(t *testing.T) {
	var path = filepath.Join(t.TempDir(), "plain.txt.gz")
	if err := os.WriteFile(path, []byte(sampleData), 0o644); err != nil {
		t.Fatal(err)
	}
	var _, err = OpenSplit(path)
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadAllSplits(t *testing.T) {
	var folder = t.TempDir()
	var paths = DefaultSplitPaths(folder)
	writeGzip(t, paths.Training, "\ufeff"+sampleData)
	writeGzip(t, paths.Validation, sampleData)
	writeGzip(t, paths.Test, sampleData)

	var splits, err = LoadAllSplits(context.Background(), paths, Options{Threads: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(splits.Training) != 4 || len(splits.Validation) != 4 || len(splits.Test) != 4 {
		t.Fatalf("unexpected sizes %v %v %v", len(splits.Training), len(splits.Validation), len(splits.Test))
	}
	if splits.Training[0].Label != [7]float64{0, 0, 0, 1, 0, 1, 0} {
		t.Error("training label", splits.Training[0].Label)
	}
	if splits.Test[3].Moves != "44" || splits.Test[3].ID != "5" {
		t.Errorf("test sample %+v", splits.Test[3])
	}
	if splits.TestStats.Illegal != 1 {
		t.Errorf("test stats %+v", splits.TestStats)
	}

	os.Remove(paths.Validation)
	_, err = LoadAllSplits(context.Background(), paths, Options{})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("got %v", err)
	}
}

func TestLoadFileTruncated(t *testing.T) {
	var buf bytes.Buffer
	var zw = gzip.NewWriter(&buf)
	zw.Write([]byte(generateLines(rand.New(rand.NewSource(3)), 2000, nil)))
	zw.Close()
	var path = filepath.Join(t.TempDir(), "truncated.txt.gz")
	if err := os.WriteFile(path, buf.Bytes()[:buf.Len()/2], 0o644); err != nil {
		t.Fatal(err)
	}
	var _, _, err = LoadFile(context.Background(), path, ToTraining, Options{})
	if !errors.Is(err, ErrResourceUnavailable) {
		t.Fatalf("got %v", err)
	}
}

func writeGzip(t *testing.T, path, content string) {
	t.Helper()
	var buf bytes.Buffer
	var zw = gzip.NewWriter(&buf)
	if _, err := zw.Write([]byte(content)); err != nil {
		t.Fatal(err)
	}
	if err := zw.Close(); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// generateLines builds n lines of legal records, replacing the lines at the given 0-based indices.
func generateLines(rnd *rand.Rand, n int, replace map[int]string) string {
	var sb = &strings.Builder{}
	for i := 0; i < n; i++ {
		if line, found := replace[i]; found {
			sb.WriteString(line)
			sb.WriteByte('\n')
			continue
		}
		var heights [connect4.Width]int
		var plies = rnd.Intn(connect4.Area / 2)
		for j := 0; j < plies; j++ {
			var col = rnd.Intn(connect4.Width)
			for heights[col] == connect4.Height {
				col = (col + 1) % connect4.Width
			}
			heights[col]++
			sb.WriteByte(byte('1' + col))
		}
		for col := 0; col < connect4.Width; col++ {
			if rnd.Intn(4) == 0 {
				sb.WriteString(" x")
			} else {
				fmt.Fprintf(sb, " %v", rnd.Intn(21)-10)
			}
		}
		fmt.Fprintf(sb, " %v\n", i)
	}
	return sb.String()
}
