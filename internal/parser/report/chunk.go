package report

// SingleChunkThreshold is the file size below which chunking is not
// worth the coordination overhead and the whole file becomes one chunk.
const SingleChunkThreshold = 1 << 20

// Chunk is a half-open byte range [Start, End) of the mapped file.
// Every chunk except possibly the last ends one past a newline, so no
// line spans two chunks.
type Chunk struct {
	Start int
	End   int
}

// Len returns the chunk length in bytes.
func (c Chunk) Len() int { return c.End - c.Start }

// PlanChunks splits data into at most workers line-aligned chunks.
// Small files and workers == 1 produce a single chunk. The returned
// chunks are disjoint, in file order, and cover data exactly.
func PlanChunks(data []byte, workers int) []Chunk {
	size := len(data)
	if size == 0 {
		return nil
	}
	if workers < 1 {
		workers = 1
	}
	if workers == 1 || size < SingleChunkThreshold {
		return []Chunk{{0, size}}
	}

	target := size / workers
	chunks := make([]Chunk, 0, workers)
	start := 0
	for i := 0; i < workers && start < size; i++ {
		end := start + target
		if i == workers-1 || end >= size {
			end = size
		} else {
			// Pull the boundary back to just past the previous newline.
			for end > start && data[end-1] != '\n' {
				end--
			}
			if end == start {
				// A single line longer than the target span; push
				// forward to the line's end instead.
				end = start + target
				for end < size && data[end-1] != '\n' {
					end++
				}
			}
		}
		chunks = append(chunks, Chunk{Start: start, End: end})
		start = end
	}
	if start < size {
		chunks[len(chunks)-1].End = size
	}
	return chunks
}
