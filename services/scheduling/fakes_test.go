package scheduling

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	bookingRepo "cliniq/database/repository/booking"
	"cliniq/models"

	"go.uber.org/zap"
)

// In-memory repository fakes mirroring the Mongo implementations' observable
// behavior, including the active-status filters and no-op re-cancellation.

type fakeCounterStore struct {
	mu       sync.Mutex
	counters map[string]int64
}

func newFakeCounterStore() *fakeCounterStore {
	return &fakeCounterStore{counters: make(map[string]int64)}
}

func (f *fakeCounterStore) Next(ctx context.Context, scope string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.counters[scope]++
	return f.counters[scope], nil
}

func (f *fakeCounterStore) Peek(ctx context.Context, scope string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.counters[scope], nil
}

type fakeDoctorRepo struct {
	doctors map[string]models.Doctor
}

func newFakeDoctorRepo(doctors ...models.Doctor) *fakeDoctorRepo {
	f := &fakeDoctorRepo{doctors: make(map[string]models.Doctor)}
	for _, d := range doctors {
		f.doctors[d.ID] = d
	}
	return f
}

func (f *fakeDoctorRepo) GetByID(ctx context.Context, doctorID string) (*models.Doctor, error) {
	d, ok := f.doctors[doctorID]
	if !ok {
		return nil, fmt.Errorf("doctor with id %s not found", doctorID)
	}
	return &d, nil
}

func (f *fakeDoctorRepo) ListByDepartment(ctx context.Context, department string) ([]models.Doctor, error) {
	var out []models.Doctor
	for _, d := range f.doctors {
		if d.Department == department && d.Active {
			out = append(out, d)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

type fakeScheduleRepo struct {
	mu        sync.Mutex
	schedules map[string]*models.Schedule
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{schedules: make(map[string]*models.Schedule)}
}

func scheduleKey(doctorID, date string) string {
	return doctorID + "|" + date
}

func (f *fakeScheduleRepo) Get(ctx context.Context, doctorID, date string) (*models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.schedules[scheduleKey(doctorID, date)]
	if !ok {
		return nil, nil
	}
	cp := *s
	return &cp, nil
}

func (f *fakeScheduleRepo) Upsert(ctx context.Context, schedule *models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *schedule
	f.schedules[scheduleKey(schedule.DoctorID, schedule.Date)] = &cp
	return nil
}

func (f *fakeScheduleRepo) CreateMany(ctx context.Context, schedules []models.Schedule) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range schedules {
		cp := schedules[i]
		f.schedules[scheduleKey(cp.DoctorID, cp.Date)] = &cp
	}
	return nil
}

func (f *fakeScheduleRepo) BlockDay(ctx context.Context, doctorID, date, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scheduleKey(doctorID, date)
	s, ok := f.schedules[key]
	if !ok {
		s = &models.Schedule{DoctorID: doctorID, Date: date}
		f.schedules[key] = s
	}
	s.IsAvailable = false
	s.MorningSession.Available = false
	s.AfternoonSession.Available = false
	s.LeaveReason = reason
	return nil
}

func (f *fakeScheduleRepo) BlockSession(ctx context.Context, doctorID, date, sessionType, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := scheduleKey(doctorID, date)
	s, ok := f.schedules[key]
	if !ok {
		s = &models.Schedule{DoctorID: doctorID, Date: date, IsAvailable: true}
		f.schedules[key] = s
	}
	switch sessionType {
	case models.SessionMorning:
		s.MorningSession.Available = false
	case models.SessionAfternoon:
		s.AfternoonSession.Available = false
	}
	s.LeaveReason = reason
	return nil
}

func (f *fakeScheduleRepo) ListForDoctor(ctx context.Context, doctorID, from, to string) ([]models.Schedule, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Schedule
	for _, s := range f.schedules {
		if s.DoctorID == doctorID && s.Date >= from && s.Date <= to {
			out = append(out, *s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

type fakeBookingRepo struct {
	mu       sync.Mutex
	bookings []*models.Booking
}

func newFakeBookingRepo() *fakeBookingRepo {
	return &fakeBookingRepo{}
}

func (f *fakeBookingRepo) Create(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Mirror the partial unique index on (doctor_id, date, time_slot).
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == booking.DoctorID && b.Date == booking.Date && b.TimeSlot == booking.TimeSlot {
			return fmt.Errorf("slot already taken: doctor %s at %s %s", booking.DoctorID, booking.Date, booking.TimeSlot)
		}
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	cp := *booking
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeBookingRepo) CreateWithinCapacity(ctx context.Context, booking *models.Booking, sessionStart, sessionEnd string, maxPatients int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// Mirror the transactional count-then-insert.
	booked := 0
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == booking.DoctorID && b.Date == booking.Date &&
			b.TimeSlot >= sessionStart && b.TimeSlot < sessionEnd {
			booked++
		}
	}
	if booked >= maxPatients {
		return bookingRepo.ErrCapacityExceeded
	}
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == booking.DoctorID && b.Date == booking.Date && b.TimeSlot == booking.TimeSlot {
			return fmt.Errorf("slot already taken: doctor %s at %s %s", booking.DoctorID, booking.Date, booking.TimeSlot)
		}
	}
	booking.CreatedAt = time.Now()
	booking.UpdatedAt = booking.CreatedAt
	cp := *booking
	f.bookings = append(f.bookings, &cp)
	return nil
}

func (f *fakeBookingRepo) GetByID(ctx context.Context, bookingID string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, fmt.Errorf("booking with id %s not found", bookingID)
}

func (f *fakeBookingRepo) Update(ctx context.Context, booking *models.Booking) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, b := range f.bookings {
		if b.ID == booking.ID {
			cp := *booking
			cp.UpdatedAt = time.Now()
			f.bookings[i] = &cp
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", booking.ID)
}

func (f *fakeBookingRepo) SetStatus(ctx context.Context, bookingID, status string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID {
			b.Status = status
			b.UpdatedAt = time.Now()
			return nil
		}
	}
	return fmt.Errorf("booking %s not found", bookingID)
}

func (f *fakeBookingRepo) Cancel(ctx context.Context, bookingID, reason, actor string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.ID == bookingID && b.IsActive() {
			now := time.Now()
			b.Status = models.StatusCancelled
			b.CancellationReason = reason
			b.CancelledBy = actor
			b.CancelledAt = &now
			b.UpdatedAt = now
		}
	}
	return nil
}

func sameSubject(b *models.Booking, patientID, dependentName string) bool {
	return b.PatientID == patientID && b.DependentName == dependentName
}

func (f *fakeBookingRepo) FindActiveBySubjectDoctorDate(ctx context.Context, patientID, dependentName, doctorID, date string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.IsActive() && sameSubject(b, patientID, dependentName) && b.DoctorID == doctorID && b.Date == date {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) FindActiveBySubjectDepartmentDate(ctx context.Context, patientID, dependentName, department, date string) (*models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.IsActive() && sameSubject(b, patientID, dependentName) && b.Department == department && b.Date == date {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeBookingRepo) CountActiveInClockRange(ctx context.Context, doctorID, date, start, end string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == doctorID && b.Date == date &&
			strings.Compare(b.TimeSlot, start) >= 0 && strings.Compare(b.TimeSlot, end) < 0 {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) CountActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	count := 0
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == doctorID && b.Date == date &&
			(sessionType == "" || b.SessionType == sessionType) {
			count++
		}
	}
	return count, nil
}

func (f *fakeBookingRepo) ExistsActiveToken(ctx context.Context, date, tokenID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, b := range f.bookings {
		if b.IsActive() && b.Date == date && b.TokenID == tokenID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBookingRepo) ListActiveForDoctorDate(ctx context.Context, doctorID, date, sessionType string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.IsActive() && b.DoctorID == doctorID && b.Date == date &&
			(sessionType == "" || b.SessionType == sessionType) {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) ListForDoctorDate(ctx context.Context, doctorID, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.DoctorID == doctorID && b.Date == date {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TokenNumber < out[j].TokenNumber })
	return out, nil
}

func (f *fakeBookingRepo) ListForPatient(ctx context.Context, patientID string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (f *fakeBookingRepo) ListActiveBefore(ctx context.Context, date string) ([]models.Booking, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.Booking
	for _, b := range f.bookings {
		if b.IsActive() && b.Date < date {
			out = append(out, *b)
		}
	}
	return out, nil
}

type fakeLeaveRepo struct {
	mu     sync.Mutex
	leaves map[string]*models.LeaveRequest
	nextID int
}

func newFakeLeaveRepo() *fakeLeaveRepo {
	return &fakeLeaveRepo{leaves: make(map[string]*models.LeaveRequest)}
}

func (f *fakeLeaveRepo) Create(ctx context.Context, req *models.LeaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.ID == "" {
		f.nextID++
		req.ID = fmt.Sprintf("leave-%d", f.nextID)
	}
	req.Status = models.LeavePending
	req.CreatedAt = time.Now()
	cp := *req
	f.leaves[req.ID] = &cp
	return nil
}

func (f *fakeLeaveRepo) GetByID(ctx context.Context, requestID string) (*models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.leaves[requestID]
	if !ok {
		return nil, fmt.Errorf("leave request %s not found", requestID)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeLeaveRepo) UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.leaves[requestID]
	if !ok || r.Status != expectedStatus {
		return fmt.Errorf("leave request %s not in %s status", requestID, expectedStatus)
	}
	now := time.Now()
	r.Status = newStatus
	r.AdminComment = adminComment
	r.DecidedAt = &now
	return nil
}

func (f *fakeLeaveRepo) ListByDoctor(ctx context.Context, doctorID, status string) ([]models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LeaveRequest
	for _, r := range f.leaves {
		if r.DoctorID == doctorID && (status == "" || r.Status == status) {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeLeaveRepo) ListByStatus(ctx context.Context, status string) ([]models.LeaveRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.LeaveRequest
	for _, r := range f.leaves {
		if status == "" || r.Status == status {
			out = append(out, *r)
		}
	}
	return out, nil
}

type fakeScheduleRequestRepo struct {
	mu       sync.Mutex
	requests map[string]*models.ScheduleRequest
	nextID   int
}

func newFakeScheduleRequestRepo() *fakeScheduleRequestRepo {
	return &fakeScheduleRequestRepo{requests: make(map[string]*models.ScheduleRequest)}
}

func (f *fakeScheduleRequestRepo) Create(ctx context.Context, req *models.ScheduleRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if req.ID == "" {
		f.nextID++
		req.ID = fmt.Sprintf("schedreq-%d", f.nextID)
	}
	req.Status = models.RequestPending
	req.CreatedAt = time.Now()
	cp := *req
	f.requests[req.ID] = &cp
	return nil
}

func (f *fakeScheduleRequestRepo) GetByID(ctx context.Context, requestID string) (*models.ScheduleRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok {
		return nil, fmt.Errorf("schedule request %s not found", requestID)
	}
	cp := *r
	return &cp, nil
}

func (f *fakeScheduleRequestRepo) UpdateStatus(ctx context.Context, requestID, expectedStatus, newStatus, adminComment string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	r, ok := f.requests[requestID]
	if !ok || r.Status != expectedStatus {
		return fmt.Errorf("schedule request %s not in %s status", requestID, expectedStatus)
	}
	now := time.Now()
	r.Status = newStatus
	r.AdminComment = adminComment
	r.DecidedAt = &now
	return nil
}

func (f *fakeScheduleRequestRepo) ListPending(ctx context.Context) ([]models.ScheduleRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ScheduleRequest
	for _, r := range f.requests {
		if r.Status == models.RequestPending {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeScheduleRequestRepo) ListByDoctor(ctx context.Context, doctorID string) ([]models.ScheduleRequest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []models.ScheduleRequest
	for _, r := range f.requests {
		if r.DoctorID == doctorID {
			out = append(out, *r)
		}
	}
	return out, nil
}

// testEnv bundles a service instance with its fakes for direct inspection.
type testEnv struct {
	svc       *DefaultSchedulingService
	doctors   *fakeDoctorRepo
	schedules *fakeScheduleRepo
	bookings  *fakeBookingRepo
	leaves    *fakeLeaveRepo
	requests  *fakeScheduleRequestRepo
	counters  *fakeCounterStore
}

// newTestEnv builds the engine against in-memory fakes with a clock frozen
// well before any same-day cutoff.
func newTestEnv(doctors ...models.Doctor) *testEnv {
	env := &testEnv{
		doctors:   newFakeDoctorRepo(doctors...),
		schedules: newFakeScheduleRepo(),
		bookings:  newFakeBookingRepo(),
		leaves:    newFakeLeaveRepo(),
		requests:  newFakeScheduleRequestRepo(),
		counters:  newFakeCounterStore(),
	}
	env.svc = &DefaultSchedulingService{
		Doctors:      env.doctors,
		Schedules:    env.schedules,
		Bookings:     env.bookings,
		Leaves:       env.leaves,
		Requests:     env.requests,
		Counters:     env.counters,
		Logger:       zap.NewNop(),
		TokenMax:     999,
		TokenRetries: 3,
		CutoffLead:   time.Hour,
		Now: func() time.Time {
			return time.Date(2026, 3, 1, 7, 0, 0, 0, time.Local)
		},
	}
	return env
}

// standardDefaults is a typical clinic day: 09:00-17:00 with a 13:00-14:00
// break and 30 minute slots.
func standardDefaults() models.DoctorDefaults {
	return models.DoctorDefaults{
		WorkingHours: models.TimeRange{Start: "09:00", End: "17:00"},
		BreakTime:    &models.TimeRange{Start: "13:00", End: "14:00"},
		SlotDuration: 30,
		MorningSession: models.Session{
			Available: true, Start: "09:00", End: "13:00", MaxPatients: 8,
		},
		AfternoonSession: models.Session{
			Available: true, Start: "14:00", End: "17:00", MaxPatients: 6,
		},
	}
}

func testDoctor(id, department string) models.Doctor {
	return models.Doctor{
		ID:         id,
		Name:       "Dr. " + id,
		Department: department,
		Active:     true,
		Defaults:   standardDefaults(),
	}
}
