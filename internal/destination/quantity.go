// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"

	"github.com/mia-platform/streamsynth/internal/template"
)

// DataSize is an amount of data with mebibyte resolution.
type DataSize struct {
	mebibytes int64
}

// Mebibytes returns a DataSize of value mebibytes.
func Mebibytes(value int64) DataSize {
	return DataSize{mebibytes: value}
}

// Mebibytes returns the size expressed in mebibytes.
func (s DataSize) Mebibytes() int64 {
	return s.mebibytes
}

// Compression is the algorithm applied to record batches written to an object
// store.
type Compression string

const (
	CompressionUncompressed Compression = "UNCOMPRESSED"
	CompressionGzip         Compression = "GZIP"
	CompressionZip          Compression = "ZIP"
	CompressionSnappy       Compression = "SNAPPY"
	CompressionHadoopSnappy Compression = "HADOOP_SNAPPY"
)

// ParseCompression converts the textual form of a compression algorithm into
// a Compression.
func ParseCompression(value string) (Compression, error) {
	switch Compression(value) {
	case CompressionUncompressed, CompressionGzip, CompressionZip, CompressionSnappy, CompressionHadoopSnappy:
		return Compression(value), nil
	}

	return "", fmt.Errorf("%w: unknown compression format %q", template.ErrDomainValidation, value)
}
