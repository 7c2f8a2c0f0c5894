// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mia-platform/streamsynth/internal/template"
)

func TestDataSize(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(64), Mebibytes(64).Mebibytes())
	assert.Equal(t, int64(0), DataSize{}.Mebibytes())
}

func TestParseCompression(t *testing.T) {
	t.Parallel()

	for _, value := range []string{"UNCOMPRESSED", "GZIP", "ZIP", "SNAPPY", "HADOOP_SNAPPY"} {
		compression, err := ParseCompression(value)
		require.NoError(t, err)
		assert.Equal(t, Compression(value), compression)
	}

	_, err := ParseCompression("LZ4")
	assert.ErrorIs(t, err, template.ErrDomainValidation)
	assert.EqualError(t, err, `invalid value: unknown compression format "LZ4"`)

	_, err = ParseCompression("gzip")
	assert.ErrorIs(t, err, template.ErrDomainValidation)
}
