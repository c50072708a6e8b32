package eigen

import "sort"

// SortByCriterion orders values descending by the criterion score,
// in place. Ties are broken by descending real part, then descending
// imaginary part, so a conjugate pair stays adjacent with the
// positive-imaginary member first and the ordering is fully
// deterministic. The sort is stable.
func SortByCriterion(values []complex128, by Criterion) {
	sort.SliceStable(values, func(i, j int) bool {
		si, sj := by.Score(values[i]), by.Score(values[j])
		if si != sj {
			return si > sj
		}
		if real(values[i]) != real(values[j]) {
			return real(values[i]) > real(values[j])
		}

		return imag(values[i]) > imag(values[j])
	})
}

// selectTopBlocks flags the diagonal blocks holding the k highest-scored
// eigenvalues. Whole blocks are flagged at a time, so the flagged count is
// k, or k+1 when the k-th position falls inside a conjugate pair.
func selectTopBlocks(values []complex128, k int, by Criterion) []bool {
	type block struct {
		start, size int
		score       float64
	}
	var blocks []block
	for i := 0; i < len(values); {
		b := block{start: i, size: 1, score: by.Score(values[i])}
		if imag(values[i]) != 0 && i+1 < len(values) {
			b.size = 2
		}
		blocks = append(blocks, b)
		i += b.size
	}
	order := make([]int, len(blocks))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return blocks[order[i]].score > blocks[order[j]].score
	})

	selected := make([]bool, len(values))
	count := 0
	for _, bi := range order {
		if count >= k {
			break
		}
		for r := blocks[bi].start; r < blocks[bi].start+blocks[bi].size; r++ {
			selected[r] = true
		}
		count += blocks[bi].size
	}

	return selected
}

// countSelected returns the number of set flags.
func countSelected(selected []bool) int {
	n := 0
	for _, s := range selected {
		if s {
			n++
		}
	}

	return n
}

// blockEnd returns the smallest index ≥ want that does not split a
// conjugate pair: want itself, or want+1 when position want-1 is the
// first member of a 2×2 block.
func blockEnd(values []complex128, want int) int {
	for i := 0; i < len(values); {
		size := 1
		if imag(values[i]) != 0 && i+1 < len(values) {
			size = 2
		}
		if i < want && want < i+size {
			return i + size
		}
		i += size
	}

	return want
}
