package transcriber

import "time"

// PlanChunks splits [0, total) into contiguous windows of at most window.
// The last chunk holds the remainder.
func PlanChunks(total, window time.Duration) []Chunk {
	if total <= 0 || window <= 0 {
		return nil
	}

	chunks := make([]Chunk, 0, int((total+window-1)/window))
	for start := time.Duration(0); start < total; start += window {
		end := min(start+window, total)
		chunks = append(chunks, Chunk{Index: len(chunks), Start: start, End: end})
	}
	return chunks
}
