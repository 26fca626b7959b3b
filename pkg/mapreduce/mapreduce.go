// Package mapreduce holds the count reduction and top-N ranking steps.
package mapreduce

// Reduce merges partial per-location counts into a single map.
func Reduce(intermediate []map[int64]int) map[int64]int {
	finalResults := make(map[int64]int)

	for _, counts := range intermediate {
		for id, count := range counts {
			finalResults[id] += count
		}
	}

	return finalResults
}

// Map adds one occurrence of id to the partial counts. Non-positive ids
// are not counted and Map reports false for them.
func Map(counts map[int64]int, id int64) bool {
	if id <= 0 {
		return false
	}
	counts[id]++
	return true
}
