package dictionary

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// ErrUnknownFormat is returned for files whose extension names no word list format.
var ErrUnknownFormat = errors.New("unknown word list format")

// ErrTooLarge is returned when a compressed word list expands past MaxDecompressedSize.
var ErrTooLarge = errors.New("decompressed word list too large")

// MaxDecompressedSize caps the decompressed size of one word list file.
var MaxDecompressedSize = 64 << 20

// FileFormat is the encoding of a word list once decompressed.
type FileFormat int

const (
	FormatUnknown FileFormat = iota
	FormatText               // one word per line, optional /weight
	FormatJSON               // ["word", weight, "word", ...]
)

// Compression wraps a word list file.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionSnappy
	CompressionZstd
	CompressionLZ4
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionSnappy:
		return "snappy"
	case CompressionZstd:
		return "zstd"
	case CompressionLZ4:
		return "lz4"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// FormatInfo contains metadata about a word list format
type FormatInfo struct {
	Format      FileFormat
	Description string
	Extensions  []string
}

var supportedFormats = map[FileFormat]FormatInfo{
	FormatText: {
		Format:      FormatText,
		Description: "Plain Text Word List",
		Extensions:  []string{".txt", ".words"},
	},
	FormatJSON: {
		Format:      FormatJSON,
		Description: "JSON Word List",
		Extensions:  []string{".json"},
	},
}

var compressionExtensions = map[string]Compression{
	".sz":  CompressionSnappy,
	".zst": CompressionZstd,
	".lz4": CompressionLZ4,
}

// DetectFileFormat reads the format and compression from the file name:
// an optional compression extension wrapping a format extension, as in
// "animals.txt.zst".
func DetectFileFormat(filename string) (FileFormat, Compression, error) {
	name := strings.ToLower(filepath.Base(filename))
	comp := CompressionNone
	if c, ok := compressionExtensions[filepath.Ext(name)]; ok {
		comp = c
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	ext := filepath.Ext(name)
	for format, info := range supportedFormats {
		for _, e := range info.Extensions {
			if ext == e {
				return format, comp, nil
			}
		}
	}
	return FormatUnknown, comp, fmt.Errorf("%w: %s", ErrUnknownFormat, filename)
}

// listName strips the format and compression extensions from a file name.
func listName(filename string) string {
	name := filepath.Base(filename)
	if _, ok := compressionExtensions[strings.ToLower(filepath.Ext(name))]; ok {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// GetFormatInfo returns information about a specific format
func GetFormatInfo(format FileFormat) (FormatInfo, bool) {
	info, exists := supportedFormats[format]
	return info, exists
}

// Decompress unwraps data compressed with c. Output larger than
// MaxDecompressedSize is rejected with ErrTooLarge.
func Decompress(c Compression, data []byte) ([]byte, error) {
	limit := MaxDecompressedSize
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionSnappy:
		n, err := snappy.DecodedLen(data)
		if err != nil {
			return nil, fmt.Errorf("snappy header: %w", err)
		}
		if n > limit {
			return nil, fmt.Errorf("%w: snappy block of %d bytes", ErrTooLarge, n)
		}
		return snappy.Decode(nil, data)

	case CompressionLZ4:
		r := lz4.NewReader(bytes.NewReader(data))
		out, err := io.ReadAll(io.LimitReader(r, int64(limit)+1))
		if err != nil {
			return nil, fmt.Errorf("lz4 read: %w", err)
		}
		if len(out) > limit {
			return nil, fmt.Errorf("%w: lz4 stream over %d bytes", ErrTooLarge, limit)
		}
		return out, nil

	case CompressionZstd:
		decoder, err := zstd.NewReader(nil, zstd.WithDecoderMaxMemory(uint64(limit)))
		if err != nil {
			return nil, fmt.Errorf("zstd decoder: %w", err)
		}
		defer decoder.Close()
		out, err := decoder.DecodeAll(data, nil)
		if errors.Is(err, zstd.ErrDecoderSizeExceeded) || errors.Is(err, zstd.ErrWindowSizeExceeded) {
			return nil, fmt.Errorf("%w: zstd frame over %d bytes", ErrTooLarge, limit)
		}
		return out, err

	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}

// Compress wraps data with c.
func Compress(c Compression, data []byte) ([]byte, error) {
	switch c {
	case CompressionNone:
		return data, nil

	case CompressionSnappy:
		return snappy.Encode(nil, data), nil

	case CompressionLZ4:
		var buf bytes.Buffer
		w := lz4.NewWriter(&buf)
		if _, err := w.Write(data); err != nil {
			return nil, fmt.Errorf("lz4 write: %w", err)
		}
		if err := w.Close(); err != nil {
			return nil, fmt.Errorf("lz4 close: %w", err)
		}
		return buf.Bytes(), nil

	case CompressionZstd:
		encoder, err := zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
		if err != nil {
			return nil, fmt.Errorf("zstd encoder: %w", err)
		}
		defer encoder.Close()
		return encoder.EncodeAll(data, nil), nil

	default:
		return nil, fmt.Errorf("unsupported compression: %s", c)
	}
}
