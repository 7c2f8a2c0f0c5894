// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"
	"time"

	"github.com/mia-platform/streamsynth/internal/template"
)

// Buffering bounds accepted by the delivery service.
const (
	minBufferingIntervalSeconds = 60
	maxBufferingIntervalSeconds = 900

	minBufferingSizeMebibytes = 1
	maxBufferingSizeMebibytes = 128
)

// BufferingHints validates interval and size and returns the buffering hint
// fragment. When both are absent it returns nil and the delivery service
// applies its own defaults; only the supplied fields appear in the fragment.
func BufferingHints(interval *time.Duration, size *DataSize) (map[string]any, error) {
	if interval == nil && size == nil {
		return nil, nil
	}

	hints := map[string]any{}
	if interval != nil {
		seconds := int64(interval.Seconds())
		if seconds < minBufferingIntervalSeconds || seconds > maxBufferingIntervalSeconds {
			return nil, fmt.Errorf("%w: buffering interval must be between %d and %d seconds, got %d",
				template.ErrOutOfRange, minBufferingIntervalSeconds, maxBufferingIntervalSeconds, seconds)
		}
		hints["IntervalInSeconds"] = seconds
	}

	if size != nil {
		mebibytes := size.Mebibytes()
		if mebibytes < minBufferingSizeMebibytes || mebibytes > maxBufferingSizeMebibytes {
			return nil, fmt.Errorf("%w: buffering size must be between %d and %d MiB, got %d",
				template.ErrOutOfRange, minBufferingSizeMebibytes, maxBufferingSizeMebibytes, mebibytes)
		}
		hints["SizeInMBs"] = mebibytes
	}

	return hints, nil
}
