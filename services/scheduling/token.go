package scheduling

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

// tokenRetryBackoff spaces the allocator's collision retries.
const tokenRetryBackoff = 50 * time.Millisecond

// formatToken renders a token number as its zero-padded display form.
func formatToken(n int) string {
	return fmt.Sprintf("T%03d", n)
}

// allocateToken issues the next token in the day's global sequence. The
// counter increment is the single atomic step token uniqueness rests on; the
// existence check against active bookings is defensive de-duplication with a
// bounded retry. Called only after validation has passed so rejected
// requests never burn sequence numbers.
func (s *DefaultSchedulingService) allocateToken(ctx context.Context, date string) (int, string, error) {
	scope := tokenScope(date)
	attempts := s.TokenRetries
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		n, err := s.Counters.Next(ctx, scope)
		if err != nil {
			return 0, "", fmt.Errorf("%w: %v", ErrTokenAllocation, err)
		}
		if int(n) > s.TokenMax {
			// The day's range is spent; retrying cannot help.
			return 0, "", fmt.Errorf("%w: %d tokens issued for %s", ErrTokenRangeExhausted, s.TokenMax, date)
		}

		tokenID := formatToken(int(n))
		taken, err := s.Bookings.ExistsActiveToken(ctx, date, tokenID)
		if err != nil {
			return 0, "", fmt.Errorf("%w: duplicate check failed: %v", ErrTokenAllocation, err)
		}
		if !taken {
			return int(n), tokenID, nil
		}

		s.logger().Warn("token collision, retrying",
			zap.String("date", date),
			zap.String("token", tokenID),
			zap.Int("attempt", attempt),
		)
		time.Sleep(tokenRetryBackoff)
	}

	return 0, "", fmt.Errorf("%w: retries exhausted for %s", ErrTokenAllocation, date)
}
