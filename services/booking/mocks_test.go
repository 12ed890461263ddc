package booking

import (
	"context"
	"sync"
	"time"

	bookingRepo "medibook/database/repository/booking"
	"medibook/models"
)

// memBookingRepo is an in-memory BookingRepository with the same versioned
// compare-and-swap semantics the Mongo implementation relies on.
type memBookingRepo struct {
	mu        sync.Mutex
	pending   map[string]*models.PendingBooking
	schedules map[string]*models.DaySchedule
}

func newMemBookingRepo() *memBookingRepo {
	return &memBookingRepo{
		pending:   make(map[string]*models.PendingBooking),
		schedules: make(map[string]*models.DaySchedule),
	}
}

func (m *memBookingRepo) InsertPending(ctx context.Context, pb *models.PendingBooking) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.pending[pb.OrderID]; ok {
		return bookingRepo.ErrDuplicate
	}
	cp := *pb
	m.pending[pb.OrderID] = &cp
	return nil
}

func (m *memBookingRepo) GetPending(ctx context.Context, orderID string) (*models.PendingBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	pb, ok := m.pending[orderID]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := *pb
	return &cp, nil
}

func (m *memBookingRepo) UpdatePendingStatus(ctx context.Context, orderID, status string, slotNumber int, paymentID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	pb, ok := m.pending[orderID]
	if !ok {
		return bookingRepo.ErrNotFound
	}
	pb.Status = status
	if slotNumber > 0 {
		pb.SlotNumber = slotNumber
	}
	if paymentID != "" {
		pb.PaymentID = paymentID
	}
	return nil
}

func (m *memBookingRepo) DeletePending(ctx context.Context, orderID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.pending, orderID)
	return nil
}

func (m *memBookingRepo) DeletePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var deleted int64
	for id, pb := range m.pending {
		if pb.CreatedAt.Before(cutoff) {
			delete(m.pending, id)
			deleted++
		}
	}
	return deleted, nil
}

func (m *memBookingRepo) GetDaySchedule(ctx context.Context, date string) (*models.DaySchedule, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.schedules[date]
	if !ok {
		return nil, bookingRepo.ErrNotFound
	}
	cp := models.DaySchedule{
		Date:     ds.Date,
		Bookings: append([]models.ConfirmedBooking{}, ds.Bookings...),
		Version:  ds.Version,
	}
	return &cp, nil
}

func (m *memBookingRepo) InsertDaySchedule(ctx context.Context, ds *models.DaySchedule) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.schedules[ds.Date]; ok {
		return bookingRepo.ErrDuplicate
	}
	cp := models.DaySchedule{
		Date:     ds.Date,
		Bookings: append([]models.ConfirmedBooking{}, ds.Bookings...),
		Version:  ds.Version,
	}
	m.schedules[ds.Date] = &cp
	return nil
}

func (m *memBookingRepo) SwapBookings(ctx context.Context, date string, version int64, bookings []models.ConfirmedBooking) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	ds, ok := m.schedules[date]
	if !ok || ds.Version != version {
		return false, nil
	}
	ds.Bookings = append([]models.ConfirmedBooking{}, bookings...)
	ds.Version++
	return true, nil
}

func (m *memBookingRepo) CountConfirmed(ctx context.Context, date string) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ds, ok := m.schedules[date]; ok {
		return len(ds.Bookings), nil
	}
	return 0, nil
}

func (m *memBookingRepo) FindConfirmedByOrder(ctx context.Context, orderID string) (*models.ConfirmedBooking, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, ds := range m.schedules {
		for i := range ds.Bookings {
			if ds.Bookings[i].OrderID == orderID {
				cp := ds.Bookings[i]
				return &cp, ds.Date, nil
			}
		}
	}
	return nil, "", bookingRepo.ErrNotFound
}

func (m *memBookingRepo) SearchConfirmed(ctx context.Context, phone, date string) ([]models.ConfirmedBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []models.ConfirmedBooking
	for d, ds := range m.schedules {
		if date != "" && d != date {
			continue
		}
		for _, b := range ds.Bookings {
			if b.Phone == phone {
				out = append(out, b)
			}
		}
	}
	return out, nil
}

func (m *memBookingRepo) ListConfirmed(ctx context.Context, date string) ([]models.ConfirmedBooking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ds, ok := m.schedules[date]; ok {
		return append([]models.ConfirmedBooking{}, ds.Bookings...), nil
	}
	return nil, nil
}
