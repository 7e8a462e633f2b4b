package dataset

// mergeBatches restores input order and shapes the positions.
// The first error in line order wins.
func mergeBatches[T any](
	input <-chan positionBatch,
	shape func(Position) T,
	stats *Stats,
) ([]T, error) {
	var pending = make(map[int]positionBatch)
	var next int
	var result []T

	for batch := range input {
		pending[batch.seq] = batch
		for {
			var b, found = pending[next]
			if !found {
				break
			}
			delete(pending, next)
			next++
			if b.err != nil {
				return nil, b.err
			}
			for i := range b.positions {
				result = append(result, shape(b.positions[i]))
			}
			stats.Records += len(b.positions)
			stats.Skipped += b.skipped
			stats.Illegal += b.illegal
		}
	}
	return result, nil
}
