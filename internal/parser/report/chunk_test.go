package report

import (
	"bytes"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// requireExactCoverage asserts chunks are disjoint, ordered, and cover
// data completely.
func requireExactCoverage(t *testing.T, data []byte, chunks []Chunk) {
	t.Helper()
	require.NotEmpty(t, chunks)
	assert.Equal(t, 0, chunks[0].Start)
	assert.Equal(t, len(data), chunks[len(chunks)-1].End)
	for i := 1; i < len(chunks); i++ {
		assert.Equal(t, chunks[i-1].End, chunks[i].Start, "gap or overlap at chunk %d", i)
	}
	for i, c := range chunks {
		assert.Greater(t, c.End, c.Start, "empty chunk %d", i)
	}
}

func TestPlanChunks_EmptyFile(t *testing.T) {
	assert.Nil(t, PlanChunks(nil, 4))
}

func TestPlanChunks_SmallFileSingleChunk(t *testing.T) {
	data := bytes.Repeat([]byte("line\n"), 100)
	chunks := PlanChunks(data, 8)
	require.Len(t, chunks, 1)
	assert.Equal(t, Chunk{0, len(data)}, chunks[0])
}

func TestPlanChunks_SingleWorker(t *testing.T) {
	data := bytes.Repeat([]byte("some line content here\n"), 100000)
	require.Greater(t, len(data), SingleChunkThreshold)

	chunks := PlanChunks(data, 1)
	require.Len(t, chunks, 1)
	requireExactCoverage(t, data, chunks)
}

func TestPlanChunks_LineAlignment(t *testing.T) {
	data := bytes.Repeat([]byte("0123456789 some coverage line data\n"), 60000)
	require.Greater(t, len(data), SingleChunkThreshold)

	for _, workers := range []int{2, 3, 4, 8} {
		t.Run(fmt.Sprintf("workers=%d", workers), func(t *testing.T) {
			chunks := PlanChunks(data, workers)
			require.LessOrEqual(t, len(chunks), workers)
			requireExactCoverage(t, data, chunks)

			// Every boundary except the file end must sit one past a
			// newline.
			for i := 0; i < len(chunks)-1; i++ {
				end := chunks[i].End
				assert.Equal(t, byte('\n'), data[end-1], "chunk %d not line aligned", i)
			}
		})
	}
}

func TestPlanChunks_AssortedSizes(t *testing.T) {
	sizes := []int{1, 100, SingleChunkThreshold - 1, SingleChunkThreshold,
		SingleChunkThreshold + 1, 3*SingleChunkThreshold + 17}
	for _, size := range sizes {
		data := make([]byte, size)
		for i := range data {
			if i%40 == 39 {
				data[i] = '\n'
			} else {
				data[i] = 'x'
			}
		}
		for _, workers := range []int{1, 2, 7, 16} {
			chunks := PlanChunks(data, workers)
			requireExactCoverage(t, data, chunks)
		}
	}
}

func TestPlanChunks_NoTrailingNewline(t *testing.T) {
	data := bytes.Repeat([]byte("abcdefghij klmnop qrstuv\n"), 80000)
	data = data[:len(data)-1]
	require.Greater(t, len(data), SingleChunkThreshold)

	chunks := PlanChunks(data, 4)
	requireExactCoverage(t, data, chunks)
}

func TestPlanChunks_OneHugeLine(t *testing.T) {
	// No newline at all: everything must land in one chunk.
	data := bytes.Repeat([]byte{'x'}, 2*SingleChunkThreshold)
	chunks := PlanChunks(data, 4)
	requireExactCoverage(t, data, chunks)
	require.Len(t, chunks, 1)
}

func TestPlanChunks_InvalidWorkers(t *testing.T) {
	data := []byte("a\nb\n")
	chunks := PlanChunks(data, 0)
	require.Len(t, chunks, 1)
	requireExactCoverage(t, data, chunks)
}
