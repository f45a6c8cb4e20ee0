// Package compression handles compressed coverage report files. Large
// reports are commonly archived as gzip or zstd; they are expanded to
// plain text before parsing since the engine memory-maps its input.
package compression

import (
	"bytes"
	"compress/gzip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Type represents the compression algorithm used.
type Type uint8

const (
	// TypeGzip uses gzip compression.
	TypeGzip Type = 0
	// TypeZstd uses zstd compression.
	TypeZstd Type = 1
	// TypeNone represents uncompressed data.
	TypeNone Type = 255
)

// Level represents the compression level.
type Level int

const (
	LevelFastest Level = 1
	LevelDefault Level = 3
	LevelBest    Level = 9
)

// Compressor provides a unified interface for compression operations.
type Compressor interface {
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
	Type() Type
	Name() string
}

// GzipCompressor implements Compressor using gzip.
type GzipCompressor struct {
	level int
}

// NewGzipCompressor creates a gzip compressor.
func NewGzipCompressor(level Level) *GzipCompressor {
	gzipLevel := gzip.DefaultCompression
	switch level {
	case LevelFastest:
		gzipLevel = gzip.BestSpeed
	case LevelBest:
		gzipLevel = gzip.BestCompression
	}
	return &GzipCompressor{level: gzipLevel}
}

func (c *GzipCompressor) Compress(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	writer, err := gzip.NewWriterLevel(&buf, c.level)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip writer: %w", err)
	}
	if _, err := writer.Write(data); err != nil {
		writer.Close()
		return nil, fmt.Errorf("failed to write gzip data: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close gzip writer: %w", err)
	}
	return buf.Bytes(), nil
}

func (c *GzipCompressor) Decompress(data []byte) ([]byte, error) {
	reader, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer reader.Close()
	return io.ReadAll(reader)
}

func (c *GzipCompressor) Type() Type { return TypeGzip }

func (c *GzipCompressor) Name() string { return "gzip" }

// ZstdCompressor implements Compressor using zstd. It is reusable and
// safe for concurrent encoding.
type ZstdCompressor struct {
	encoder *zstd.Encoder
	decoder *zstd.Decoder
}

// NewZstdCompressor creates a zstd compressor.
func NewZstdCompressor(level Level) (*ZstdCompressor, error) {
	zstdLevel := zstd.SpeedDefault
	switch level {
	case LevelFastest:
		zstdLevel = zstd.SpeedFastest
	case LevelBest:
		zstdLevel = zstd.SpeedBestCompression
	}

	encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstdLevel))
	if err != nil {
		return nil, fmt.Errorf("failed to create zstd encoder: %w", err)
	}
	decoder, err := zstd.NewReader(nil)
	if err != nil {
		encoder.Close()
		return nil, fmt.Errorf("failed to create zstd decoder: %w", err)
	}

	return &ZstdCompressor{encoder: encoder, decoder: decoder}, nil
}

func (c *ZstdCompressor) Compress(data []byte) ([]byte, error) {
	return c.encoder.EncodeAll(data, make([]byte, 0, len(data)/2)), nil
}

func (c *ZstdCompressor) Decompress(data []byte) ([]byte, error) {
	return c.decoder.DecodeAll(data, nil)
}

func (c *ZstdCompressor) Type() Type { return TypeZstd }

func (c *ZstdCompressor) Name() string { return "zstd" }

// Close releases encoder and decoder resources.
func (c *ZstdCompressor) Close() {
	if c.encoder != nil {
		c.encoder.Close()
	}
	if c.decoder != nil {
		c.decoder.Close()
	}
}

// New creates a compressor by type and level.
func New(t Type, level Level) (Compressor, error) {
	switch t {
	case TypeZstd:
		return NewZstdCompressor(level)
	case TypeGzip:
		return NewGzipCompressor(level), nil
	default:
		return nil, fmt.Errorf("unknown compression type: %d", t)
	}
}

// Default returns the default compressor, zstd at the default level,
// falling back to gzip if zstd initialization fails.
func Default() Compressor {
	comp, err := NewZstdCompressor(LevelDefault)
	if err != nil {
		return NewGzipCompressor(LevelDefault)
	}
	return comp
}

// DetectType detects the compression type from magic bytes. Plain
// report text yields TypeNone.
func DetectType(data []byte) Type {
	// zstd magic: 0x28 0xb5 0x2f 0xfd
	if len(data) >= 4 && data[0] == 0x28 && data[1] == 0xb5 && data[2] == 0x2f && data[3] == 0xfd {
		return TypeZstd
	}
	// gzip magic: 0x1f 0x8b
	if len(data) >= 2 && data[0] == 0x1f && data[1] == 0x8b {
		return TypeGzip
	}
	return TypeNone
}

// IsCompressedPath reports whether path carries a recognized
// compressed-report extension.
func IsCompressedPath(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz", ".gzip", ".zst", ".zstd":
		return true
	}
	return false
}

// AutoDecompress detects the compression type from magic bytes and
// decompresses. Uncompressed data is returned unchanged.
func AutoDecompress(data []byte) ([]byte, error) {
	switch DetectType(data) {
	case TypeZstd:
		comp, err := NewZstdCompressor(LevelDefault)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decompressor: %w", err)
		}
		defer comp.Close()
		return comp.Decompress(data)
	case TypeGzip:
		return NewGzipCompressor(LevelDefault).Decompress(data)
	default:
		return data, nil
	}
}

// DecompressToFile expands a compressed report next to destDir and
// returns the path of the plain-text copy. An uncompressed input is
// returned as-is without copying.
func DecompressToFile(srcPath, destDir string) (string, error) {
	data, err := os.ReadFile(srcPath)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", srcPath, err)
	}

	if DetectType(data) == TypeNone {
		return srcPath, nil
	}

	plain, err := AutoDecompress(data)
	if err != nil {
		return "", fmt.Errorf("failed to decompress %s: %w", srcPath, err)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", fmt.Errorf("failed to create directory: %w", err)
	}

	name := filepath.Base(srcPath)
	if IsCompressedPath(name) {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	destPath := filepath.Join(destDir, name)

	if err := os.WriteFile(destPath, plain, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", destPath, err)
	}
	return destPath, nil
}

// Closeable is an optional interface for compressors holding resources.
type Closeable interface {
	Close()
}

// Close closes a compressor if it implements Closeable.
func Close(c Compressor) {
	if closer, ok := c.(Closeable); ok {
		closer.Close()
	}
}
