// Package report implements the high-throughput coverage report engine:
// memory-mapped input, vectorized line scanning, line-aligned chunk
// planning, and fork-join parallel parsing with a deterministic merge.
package report

import (
	"encoding/binary"
	"math/bits"
	"strconv"
)

// LaneWidth is the number of bytes examined per scanning step.
const LaneWidth = 8

const (
	swarLow7    = 0x7f7f7f7f7f7f7f7f
	newlineLane = 0x0a0a0a0a0a0a0a0a
)

// FindNewlines appends the offset of every '\n' in data to offsets and
// returns the extended slice. The bulk of the buffer is scanned eight
// bytes at a time; the tail shorter than one lane falls back to a
// byte-wise loop. Output is identical to a plain byte-wise scan.
func FindNewlines(data []byte, offsets []int) []int {
	i := 0
	n := len(data)
	for ; i+LaneWidth <= n; i += LaneWidth {
		w := binary.LittleEndian.Uint64(data[i:])
		x := w ^ newlineLane
		// Exact zero-byte detector: the high bit of m is set in
		// precisely the bytes where x is zero. The per-byte adds
		// cannot carry across byte boundaries, unlike the subtractive
		// variant whose borrows leak into neighboring bytes.
		y := (x & swarLow7) + swarLow7
		m := ^(y | x | swarLow7)
		for m != 0 {
			offsets = append(offsets, i+bits.TrailingZeros64(m)>>3)
			m &= m - 1
		}
	}
	for ; i < n; i++ {
		if data[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// findNewlinesScalar is the reference implementation used to validate
// FindNewlines.
func findNewlinesScalar(data []byte, offsets []int) []int {
	for i := 0; i < len(data); i++ {
		if data[i] == '\n' {
			offsets = append(offsets, i)
		}
	}
	return offsets
}

// SkipWhitespace returns the first index at or after pos that is not a
// space, tab, CR, or LF.
func SkipWhitespace(data []byte, pos int) int {
	for pos < len(data) {
		switch data[pos] {
		case ' ', '\t', '\r', '\n':
			pos++
		default:
			return pos
		}
	}
	return pos
}

// ParseUint parses an unsigned decimal integer. Inputs of up to eight
// digits take an unrolled accumulation path; longer inputs go through
// the general parser so overflow is detected. Any non-digit byte fails.
func ParseUint(data []byte) (uint64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	if len(data) <= 8 {
		var v uint64
		for _, c := range data {
			if c < '0' || c > '9' {
				return 0, false
			}
			v = v*10 + uint64(c-'0')
		}
		return v, true
	}
	v, err := strconv.ParseUint(string(data), 10, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParseFloat parses a decimal floating point number. There is no
// vectorized fast path; correctness over cleverness for doubles.
func ParseFloat(data []byte) (float64, bool) {
	if len(data) == 0 {
		return 0, false
	}
	v, err := strconv.ParseFloat(string(data), 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// ParsePercent parses a number with an optional trailing '%'.
func ParsePercent(data []byte) (float64, bool) {
	if n := len(data); n > 0 && data[n-1] == '%' {
		data = data[:n-1]
	}
	return ParseFloat(data)
}
