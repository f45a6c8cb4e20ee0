package compression

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sampleReport = []byte("COVERED EXPECTED PERCENT\n45 50 90.00 1 1 100 1 0 64 0 auto cg_a\n")

func TestGzipCompressor_RoundTrip(t *testing.T) {
	c := NewGzipCompressor(LevelDefault)
	assert.Equal(t, TypeGzip, c.Type())
	assert.Equal(t, "gzip", c.Name())

	compressed, err := c.Compress(sampleReport)
	require.NoError(t, err)
	require.NotEqual(t, sampleReport, compressed)

	plain, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, plain)
}

func TestZstdCompressor_RoundTrip(t *testing.T) {
	c, err := NewZstdCompressor(LevelDefault)
	require.NoError(t, err)
	defer c.Close()

	assert.Equal(t, TypeZstd, c.Type())
	assert.Equal(t, "zstd", c.Name())

	compressed, err := c.Compress(sampleReport)
	require.NoError(t, err)

	plain, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, plain)
}

func TestDetectType(t *testing.T) {
	gz, err := NewGzipCompressor(LevelFastest).Compress(sampleReport)
	require.NoError(t, err)
	assert.Equal(t, TypeGzip, DetectType(gz))

	zc, err := NewZstdCompressor(LevelFastest)
	require.NoError(t, err)
	defer zc.Close()
	zst, err := zc.Compress(sampleReport)
	require.NoError(t, err)
	assert.Equal(t, TypeZstd, DetectType(zst))

	assert.Equal(t, TypeNone, DetectType(sampleReport))
	assert.Equal(t, TypeNone, DetectType(nil))
}

func TestAutoDecompress(t *testing.T) {
	gz, err := NewGzipCompressor(LevelDefault).Compress(sampleReport)
	require.NoError(t, err)

	plain, err := AutoDecompress(gz)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, plain)

	// Plain text passes through unchanged.
	plain, err = AutoDecompress(sampleReport)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, plain)
}

func TestIsCompressedPath(t *testing.T) {
	assert.True(t, IsCompressedPath("report.txt.gz"))
	assert.True(t, IsCompressedPath("report.ZST"))
	assert.False(t, IsCompressedPath("report.txt"))
	assert.False(t, IsCompressedPath("report"))
}

func TestDecompressToFile(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "expanded")

	t.Run("GzipInput", func(t *testing.T) {
		gz, err := NewGzipCompressor(LevelDefault).Compress(sampleReport)
		require.NoError(t, err)
		src := filepath.Join(srcDir, "groups.txt.gz")
		require.NoError(t, os.WriteFile(src, gz, 0644))

		out, err := DecompressToFile(src, destDir)
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(destDir, "groups.txt"), out)

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Equal(t, sampleReport, data)
	})

	t.Run("PlainInputReturnedAsIs", func(t *testing.T) {
		src := filepath.Join(srcDir, "plain.txt")
		require.NoError(t, os.WriteFile(src, sampleReport, 0644))

		out, err := DecompressToFile(src, destDir)
		require.NoError(t, err)
		assert.Equal(t, src, out)
	})

	t.Run("MissingInput", func(t *testing.T) {
		_, err := DecompressToFile(filepath.Join(srcDir, "missing.gz"), destDir)
		assert.Error(t, err)
	})
}

func TestNew(t *testing.T) {
	c, err := New(TypeGzip, LevelBest)
	require.NoError(t, err)
	assert.Equal(t, TypeGzip, c.Type())

	c, err = New(TypeZstd, LevelFastest)
	require.NoError(t, err)
	assert.Equal(t, TypeZstd, c.Type())
	Close(c)

	_, err = New(Type(42), LevelDefault)
	assert.Error(t, err)
}

func TestDefault(t *testing.T) {
	c := Default()
	require.NotNil(t, c)
	defer Close(c)

	compressed, err := c.Compress(sampleReport)
	require.NoError(t, err)
	plain, err := c.Decompress(compressed)
	require.NoError(t, err)
	assert.Equal(t, sampleReport, plain)
}
