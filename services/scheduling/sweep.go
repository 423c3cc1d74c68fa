package scheduling

import (
	"context"

	"cliniq/models"

	"go.uber.org/zap"
)

// ExpireStale closes out active bookings dated before today: in_queue
// bookings become missed, booked ones are cancelled as no-shows. Failures
// are logged and skipped so one bad record never stalls the sweep. Returns
// the number of bookings closed.
func (s *DefaultSchedulingService) ExpireStale(ctx context.Context) (int, error) {
	today := s.now().Format(dateLayout)
	stale, err := s.Bookings.ListActiveBefore(ctx, today)
	if err != nil {
		return 0, err
	}

	closed := 0
	for _, booking := range stale {
		var err error
		if booking.Status == models.StatusInQueue {
			err = s.Bookings.SetStatus(ctx, booking.ID, models.StatusMissed)
		} else {
			err = s.Bookings.Cancel(ctx, booking.ID, "no-show", models.ActorSystem)
		}
		if err != nil {
			s.logger().Error("stale booking close failed",
				zap.String("booking_id", booking.ID),
				zap.Error(err),
			)
			continue
		}
		closed++
	}

	if closed > 0 {
		s.logger().Info("stale bookings closed",
			zap.String("before", today),
			zap.Int("count", closed),
		)
	}
	return closed, nil
}
