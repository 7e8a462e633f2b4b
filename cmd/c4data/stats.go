package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/ChizhovVadim/connect4data/internal/dataset"
	"github.com/ChizhovVadim/connect4data/pkg/connect4"
)

func runStats(ctx context.Context, paths dataset.SplitPaths, opts dataset.Options) error {
	var splits, err = dataset.LoadAllSplits(ctx, paths, opts)
	if err != nil {
		return err
	}

	var validationLabels = make([]dataset.Label, len(splits.Validation))
	for i := range splits.Validation {
		validationLabels[i] = splits.Validation[i].Label
	}
	var testLabels = make([]dataset.Label, len(splits.Test))
	for i := range splits.Test {
		testLabels[i] = splits.Test[i].Label
	}
	var trainingLabels = make([]dataset.Label, len(splits.Training))
	for i := range splits.Training {
		trainingLabels[i] = labelFromOneHot(splits.Training[i].Label)
	}

	printSplitStats(os.Stdout, splitTraining, splits.TrainingStats, trainingLabels)
	printSplitStats(os.Stdout, splitValidation, splits.ValidationStats, validationLabels)
	printSplitStats(os.Stdout, splitTest, splits.TestStats, testLabels)
	return nil
}

func labelFromOneHot(v [connect4.Width]float64) dataset.Label {
	var result = dataset.Label{}
	for i, x := range v {
		if x != 0 {
			result = append(result, i)
		}
	}
	return result
}

// labelHistogram counts samples by label size, index 0 is "no optimal move".
func labelHistogram(labels []dataset.Label) [connect4.Width + 1]int {
	var result [connect4.Width + 1]int
	for _, label := range labels {
		result[len(label)]++
	}
	return result
}

func printSplitStats(w io.Writer, name string, stats dataset.Stats, labels []dataset.Label) {
	fmt.Fprintf(w, "%-10v lines=%v records=%v skipped=%v illegal=%v\n",
		name, stats.Lines, stats.Records, stats.Skipped, stats.Illegal)
	var hist = labelHistogram(labels)
	for size, count := range hist {
		if count != 0 {
			fmt.Fprintf(w, "%-10v label size %v: %v\n", "", size, count)
		}
	}
}
