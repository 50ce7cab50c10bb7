package booking

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/fleetyard/rental-backend/internal/client"
	"github.com/fleetyard/rental-backend/internal/metrics"
	"github.com/fleetyard/rental-backend/internal/schedule"
	"github.com/fleetyard/rental-backend/internal/vehicle"
)

type CreateRequest struct {
	VehicleID string
	Kind      schedule.Kind
	ClientID  *string
	Label     string
	StartDate time.Time
	EndDate   time.Time
}

type UpdateRequest struct {
	StartDate *time.Time
	EndDate   *time.Time
	Label     *string
	ClientID  *string
}

type Service interface {
	Create(ctx context.Context, req CreateRequest) (*Booking, error)
	GetByID(ctx context.Context, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error)
	Transition(ctx context.Context, id string, to schedule.Status) (*Booking, error)
	Delete(ctx context.Context, id string) error

	// CalendarMonth derives per-day render hints for one vehicle's month.
	// excludeBookingID marks the booking under edit: its days render as
	// blocking-self and it is ignored for conflict purposes.
	CalendarMonth(ctx context.Context, vehicleID string, year int, month time.Month, excludeBookingID string) ([]schedule.DayHint, error)
}

type service struct {
	repo       Repository
	vehService vehicle.Service
	cliService client.Service
	logger     zerolog.Logger
}

func NewService(repo Repository, vehService vehicle.Service, cliService client.Service, logger zerolog.Logger) Service {
	return &service{
		repo:       repo,
		vehService: vehService,
		cliService: cliService,
		logger:     logger.With().Str("component", "booking").Logger(),
	}
}

func (s *service) Create(ctx context.Context, req CreateRequest) (*Booking, error) {
	if !schedule.ValidKind(req.Kind) {
		return nil, ErrInvalidKind
	}

	start, end, err := normalizeRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	if _, err := s.vehService.GetByID(ctx, req.VehicleID); err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	clientID, err := s.resolveClient(ctx, req.Kind, req.ClientID)
	if err != nil {
		return nil, err
	}

	// Authoritative conflict check against the latest persisted bookings.
	// The exclusion constraint on the table backs this up atomically.
	if blocking, err := s.repo.FindOverlap(ctx, req.VehicleID, start, end, ""); err != nil {
		return nil, err
	} else if blocking != nil {
		metrics.IncBookingConflict("create")
		s.logger.Info().
			Str("vehicle_id", req.VehicleID).
			Str("blocking_id", blocking.ID).
			Msg("booking create rejected: range conflict")
		return nil, ErrRangeConflict
	}

	b := &Booking{
		VehicleID: req.VehicleID,
		Kind:      req.Kind,
		ClientID:  clientID,
		Label:     req.Label,
		StartDate: start,
		EndDate:   end,
		Status:    schedule.StatusPending,
	}

	if err := s.repo.Create(ctx, b); err != nil {
		if errors.Is(err, ErrRangeConflict) {
			metrics.IncBookingConflict("create")
		}
		return nil, err
	}

	metrics.IncBookingCreated(string(b.Kind))
	return b, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Booking, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, id string, req UpdateRequest) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	newStart, newEnd := b.StartDate, b.EndDate
	rangeChanged := false

	if req.StartDate != nil {
		newStart = *req.StartDate
		rangeChanged = true
	}
	if req.EndDate != nil {
		newEnd = *req.EndDate
		rangeChanged = true
	}

	if rangeChanged {
		start, end, err := normalizeRange(newStart, newEnd)
		if err != nil {
			return nil, err
		}

		// Re-check excluding the booking itself: it must not conflict with
		// its own stored range.
		if blocking, err := s.repo.FindOverlap(ctx, b.VehicleID, start, end, b.ID); err != nil {
			return nil, err
		} else if blocking != nil {
			metrics.IncBookingConflict("update")
			return nil, ErrRangeConflict
		}

		b.StartDate = start
		b.EndDate = end
	}

	if req.Label != nil {
		b.Label = *req.Label
	}
	if req.ClientID != nil {
		clientID, err := s.resolveClient(ctx, b.Kind, req.ClientID)
		if err != nil {
			return nil, err
		}
		b.ClientID = clientID
	}

	if err := s.repo.Update(ctx, b); err != nil {
		if errors.Is(err, ErrRangeConflict) {
			metrics.IncBookingConflict("update")
		}
		return nil, err
	}

	return s.repo.GetByID(ctx, b.ID)
}

func (s *service) Transition(ctx context.Context, id string, to schedule.Status) (*Booking, error) {
	if !schedule.ValidStatus(to) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !schedule.CanTransition(b.Kind, b.Status, to) {
		return nil, ErrInvalidTransition
	}

	// A reactivated booking resumes blocking its stored range, so the range
	// must still be free: others may have booked it in the meantime.
	if schedule.IsReactivation(b.Status, to) {
		if blocking, err := s.repo.FindOverlap(ctx, b.VehicleID, b.StartDate, b.EndDate, b.ID); err != nil {
			return nil, err
		} else if blocking != nil {
			metrics.IncBookingConflict("reactivate")
			s.logger.Info().
				Str("booking_id", b.ID).
				Str("blocking_id", blocking.ID).
				Msg("reactivation rejected: stored range no longer free")
			return nil, ErrRangeConflict
		}
	}

	from := b.Status
	if err := s.repo.UpdateStatus(ctx, b.ID, to); err != nil {
		if errors.Is(err, ErrRangeConflict) {
			metrics.IncBookingConflict("reactivate")
		}
		return nil, err
	}

	metrics.IncStatusTransition(string(from), string(to))
	b.Status = to
	return b, nil
}

func (s *service) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.GetByID(ctx, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *service) CalendarMonth(ctx context.Context, vehicleID string, year int, month time.Month, excludeBookingID string) ([]schedule.DayHint, error) {
	if _, err := s.vehService.GetByID(ctx, vehicleID); err != nil {
		if errors.Is(err, vehicle.ErrNotFound) {
			return nil, ErrVehicleNotFound
		}
		return nil, err
	}

	bookings, err := s.repo.ListForVehicle(ctx, vehicleID)
	if err != nil {
		return nil, err
	}

	snapshot := make([]schedule.Booking, 0, len(bookings))
	var self *schedule.Booking
	for _, b := range bookings {
		occ := b.Occupancy()
		snapshot = append(snapshot, occ)
		if excludeBookingID != "" && b.ID == excludeBookingID {
			o := occ
			self = &o
		}
	}

	ix := schedule.BuildIndex(snapshot, vehicleID, excludeBookingID)
	return schedule.MonthHints(ix, self, year, month), nil
}

func (s *service) resolveClient(ctx context.Context, kind schedule.Kind, clientID *string) (*string, error) {
	if kind == schedule.KindMaintenance {
		// Maintenance windows never carry a client.
		return nil, nil
	}
	if clientID == nil || *clientID == "" {
		return nil, ErrClientRequired
	}
	if _, err := s.cliService.GetByID(ctx, *clientID); err != nil {
		if errors.Is(err, client.ErrNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return clientID, nil
}

// normalizeRange truncates both dates to calendar days and enforces the
// strict start < end invariant. The interactive selector already swaps and
// auto-extends picks; persistence re-checks the invariant regardless.
func normalizeRange(start, end time.Time) (time.Time, time.Time, error) {
	s, e := schedule.Day(start), schedule.Day(end)
	if !s.Before(e) {
		return time.Time{}, time.Time{}, ErrInvalidRange
	}
	return s, e, nil
}
