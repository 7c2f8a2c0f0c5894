// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

package destination

import (
	"fmt"
	"time"

	"github.com/mia-platform/streamsynth/internal/template"
)

const maxRetryDurationSeconds = 7200

// RetryOptions validates duration and returns the retry fragment used by
// destinations that re-drive failed deliveries. Returns nil when duration is
// absent, leaving the service default in place.
func RetryOptions(duration *time.Duration) (map[string]any, error) {
	if duration == nil {
		return nil, nil
	}

	seconds := int64(duration.Seconds())
	if seconds < 0 || seconds > maxRetryDurationSeconds {
		return nil, fmt.Errorf("%w: retry duration must be between 0 and %d seconds, got %d",
			template.ErrOutOfRange, maxRetryDurationSeconds, seconds)
	}

	return map[string]any{"DurationInSeconds": seconds}, nil
}
