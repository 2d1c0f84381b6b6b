package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"luminacine/internal/data/entity"
	"luminacine/pkg/backend"
	"luminacine/pkg/metrics"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
	LoadError   LoadState = "error"
	LoadStale   LoadState = "stale"
)

type Step string

const (
	StepSeats     Step = "seat-selection"
	StepReview    Step = "review"
	StepSubmitted Step = "submitted"
)

type SubmitState string

const (
	SubmitIdle       SubmitState = "idle"
	SubmitSubmitting SubmitState = "submitting"
	SubmitSubmitted  SubmitState = "submitted"
)

// Inventory reads what a showing offers.
type Inventory interface {
	Schedule(ctx context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error)
	Seats(ctx context.Context, scheduleID entity.ID) ([]entity.Seat, error)
}

// Gateway submits bookings. Update keeps the booking's identity.
type Gateway interface {
	Create(ctx context.Context, payload entity.BookingPayload) (*entity.Booking, error)
	Update(ctx context.Context, id entity.ID, payload entity.BookingPayload) (*entity.Booking, error)
}

type Params struct {
	MovieID    entity.ID
	ScheduleID entity.ID
	UserID     entity.ID
	// RescheduleBookingID turns the submission into an update of that booking.
	RescheduleBookingID entity.ID
}

func (p Params) IsReschedule() bool {
	return !p.RescheduleBookingID.IsZero()
}

// Result is what a successful confirm hands back for navigation.
type Result struct {
	BookingID    entity.ID
	Rescheduled  bool
	TotalPrice   entity.Amount
	BackendTotal entity.Amount
}

func (r Result) TicketPath() string {
	return "/ticket/" + r.BookingID.String()
}

// Flow is one checkout: seat inventory, selection, review and submission
// for a single showing. All methods are safe for concurrent use; backend
// calls run outside the lock and their results are dropped once the flow
// is closed or a newer load has started.
type Flow struct {
	id         uuid.UUID
	params     Params
	serviceFee entity.Amount
	inventory  Inventory
	gateway    Gateway
	log        *zap.Logger

	mu        sync.Mutex
	epoch     uint64
	closed    bool
	loadState LoadState
	loadErr   error
	schedule  *entity.Schedule
	seats     []entity.Seat
	seatIndex map[entity.ID]int
	selection *Selection
	step      Step
	submit    SubmitState
	submitErr error
	bookingID entity.ID
}

func NewFlow(params Params, inventory Inventory, gateway Gateway, serviceFee entity.Amount, log *zap.Logger) *Flow {
	id := uuid.New()
	return &Flow{
		id:         id,
		params:     params,
		serviceFee: serviceFee,
		inventory:  inventory,
		gateway:    gateway,
		log: log.With(
			zap.String("flow_id", id.String()),
			zap.String("schedule_id", params.ScheduleID.String()),
		),
		loadState: LoadIdle,
		seatIndex: make(map[entity.ID]int),
		selection: NewSelection(),
		step:      StepSeats,
		submit:    SubmitIdle,
	}
}

func (f *Flow) ID() uuid.UUID {
	return f.id
}

func (f *Flow) Params() Params {
	return f.params
}

// NeedsLoad reports whether the inventory has never been loaded or went stale.
func (f *Flow) NeedsLoad() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return !f.closed && (f.loadState == LoadIdle || f.loadState == LoadStale)
}

// Load fetches schedule and seat status concurrently. Both must succeed
// before anything is exposed; on failure the flow drops to LoadError with
// no seats and an empty selection.
func (f *Flow) Load(ctx context.Context) error {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return ErrFlowClosed
	}
	if f.submit == SubmitSubmitting {
		f.mu.Unlock()
		return ErrSubmissionInFlight
	}
	f.epoch++
	epoch := f.epoch
	f.loadState = LoadLoading
	f.loadErr = nil
	f.mu.Unlock()

	schedule, seats, err := f.fetch(ctx)

	f.mu.Lock()
	defer f.mu.Unlock()

	if f.closed || epoch != f.epoch {
		f.log.Debug("Dropping late inventory result", zap.Uint64("epoch", epoch))
		return ErrLoadSuperseded
	}

	if err != nil {
		f.loadState = LoadError
		f.loadErr = err
		f.schedule = nil
		f.seats = nil
		f.seatIndex = make(map[entity.ID]int)
		f.selection.Clear()
		f.step = StepSeats
		f.log.Warn("Failed to load seat inventory", zap.Error(err))
		return err
	}

	f.schedule = schedule
	f.seats = seats
	f.seatIndex = make(map[entity.ID]int, len(seats))
	for i, seat := range seats {
		f.seatIndex[seat.ID] = i
	}

	// seats taken since the last load leave the selection
	for _, seat := range f.selection.Seats() {
		i, ok := f.seatIndex[seat.ID]
		if !ok || !seats[i].IsAvailable() {
			f.selection.Remove(seat.ID)
		}
	}
	if f.selection.Len() == 0 && f.step == StepReview {
		f.step = StepSeats
	}

	f.loadState = LoadReady
	return nil
}

func (f *Flow) fetch(ctx context.Context) (*entity.Schedule, []entity.Seat, error) {
	var (
		schedule *entity.Schedule
		seats    []entity.Seat
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s, err := f.inventory.Schedule(gctx, f.params.MovieID, f.params.ScheduleID)
		if err != nil {
			return fmt.Errorf("load schedule: %w", err)
		}
		schedule = s
		return nil
	})
	g.Go(func() error {
		s, err := f.inventory.Seats(gctx, f.params.ScheduleID)
		if err != nil {
			return fmt.Errorf("load seats: %w", err)
		}
		seats = s
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}
	if schedule == nil {
		return nil, nil, ErrScheduleMissing
	}
	return schedule, seats, nil
}

// Toggle adds an available seat or removes a selected one and reports
// whether the seat ends up selected. Any change sends the flow back to
// seat selection.
func (f *Flow) Toggle(seatID entity.ID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editableLocked(); err != nil {
		return false, err
	}

	i, ok := f.seatIndex[seatID]
	if !ok {
		return false, ErrSeatNotFound
	}

	f.step = StepSeats
	f.submitErr = nil

	if f.selection.Remove(seatID) {
		return false, nil
	}

	seat := f.seats[i]
	if !seat.IsAvailable() {
		return false, ErrSeatBooked
	}

	f.selection.Add(seat)
	return true, nil
}

// Proceed moves a non-empty selection to the review step.
func (f *Flow) Proceed() error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if err := f.editableLocked(); err != nil {
		return err
	}
	if f.selection.Len() == 0 {
		return ErrEmptySelection
	}

	f.step = StepReview
	return nil
}

func (f *Flow) editableLocked() error {
	switch {
	case f.closed:
		return ErrFlowClosed
	case f.submit == SubmitSubmitted:
		return ErrAlreadySubmitted
	case f.submit == SubmitSubmitting:
		return ErrSubmissionInFlight
	case f.loadState != LoadReady:
		return ErrNotReady
	}
	return nil
}

// Confirm submits the selection, as a create or as an update of
// the booking being rescheduled. The flow is marked submitted and the
// selection discarded before Confirm returns.
func (f *Flow) Confirm(ctx context.Context) (*Result, error) {
	f.mu.Lock()
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return nil, err
	}
	if f.schedule == nil {
		f.mu.Unlock()
		return nil, ErrScheduleMissing
	}
	if f.selection.Len() == 0 {
		f.mu.Unlock()
		return nil, ErrEmptySelection
	}

	quote := f.quoteLocked()
	payload := entity.BookingPayload{
		UserID:     f.params.UserID,
		ScheduleID: f.params.ScheduleID,
		TotalPrice: quote.Total,
		Seats:      f.selection.IDs(),
	}
	f.submit = SubmitSubmitting
	f.submitErr = nil
	f.mu.Unlock()

	kind := "create"
	var (
		booking *entity.Booking
		err     error
	)
	if f.params.IsReschedule() {
		kind = "reschedule"
		booking, err = f.gateway.Update(ctx, f.params.RescheduleBookingID, payload)
	} else {
		booking, err = f.gateway.Create(ctx, payload)
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	if err != nil {
		return nil, f.failLocked(kind, err)
	}

	bookingID := booking.ID
	if f.params.IsReschedule() {
		bookingID = f.params.RescheduleBookingID
	}

	if !f.closed {
		f.submit = SubmitSubmitted
		f.step = StepSubmitted
		f.bookingID = bookingID
		f.selection.Clear()
	}
	metrics.ObserveSubmission(kind, "success")

	if bookingID.IsZero() {
		f.log.Error("Booking accepted without id", zap.String("kind", kind))
		return nil, ErrMissingBookingID
	}

	if booking.TotalPrice != 0 && booking.TotalPrice != payload.TotalPrice {
		f.log.Warn("Backend total differs from proposed total",
			zap.String("booking_id", bookingID.String()),
			zap.Int64("proposed", int64(payload.TotalPrice)),
			zap.Int64("backend", int64(booking.TotalPrice)),
		)
	}

	f.log.Info("Booking submitted",
		zap.String("kind", kind),
		zap.String("booking_id", bookingID.String()),
		zap.Int("seats", len(payload.Seats)),
	)

	return &Result{
		BookingID:    bookingID,
		Rescheduled:  f.params.IsReschedule(),
		TotalPrice:   payload.TotalPrice,
		BackendTotal: booking.TotalPrice,
	}, nil
}

// failLocked records a rejected submission. A conflict invalidates the
// selection and the inventory; anything else keeps the selection for a retry.
func (f *Flow) failLocked(kind string, err error) error {
	if errors.Is(err, backend.ErrConflict) {
		metrics.ObserveSubmission(kind, "conflict")
		if !f.closed {
			f.selection.Clear()
			f.loadState = LoadStale
			f.step = StepSeats
			f.submit = SubmitIdle
			f.submitErr = ErrBookingConflict
		}
		f.log.Info("Booking conflict", zap.String("kind", kind), zap.Error(err))
		return fmt.Errorf("%w: %w", ErrBookingConflict, err)
	}

	metrics.ObserveSubmission(kind, "error")
	if !f.closed {
		f.submit = SubmitIdle
		f.submitErr = err
	}
	f.log.Warn("Booking submission failed", zap.String("kind", kind), zap.Error(err))
	return fmt.Errorf("submit booking: %w", err)
}

func (f *Flow) quoteLocked() Quote {
	var price entity.Amount
	if f.schedule != nil {
		price = f.schedule.Price
	}
	return Price(f.selection.Len(), price, f.serviceFee)
}

// Close discards the selection and makes every pending result a no-op.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.closed = true
	f.epoch++
	f.selection.Clear()
}

// View is a consistent snapshot of the flow.
type View struct {
	ID         uuid.UUID
	Params     Params
	Step       Step
	LoadState  LoadState
	LoadErr    error
	Schedule   *entity.Schedule
	Rows       []Row
	Selected   []entity.Seat
	Quote      Quote
	CanProceed bool
	CanConfirm bool
	Submission SubmitState
	SubmitErr  error
	BookingID  entity.ID
}

func (v View) IsSelected(id entity.ID) bool {
	for _, seat := range v.Selected {
		if seat.ID == id {
			return true
		}
	}
	return false
}

func (f *Flow) Snapshot() View {
	f.mu.Lock()
	defer f.mu.Unlock()

	view := View{
		ID:         f.id,
		Params:     f.params,
		Step:       f.step,
		LoadState:  f.loadState,
		LoadErr:    f.loadErr,
		Selected:   f.selection.Seats(),
		Quote:      f.quoteLocked(),
		Submission: f.submit,
		SubmitErr:  f.submitErr,
		BookingID:  f.bookingID,
	}

	if f.loadState == LoadReady || f.loadState == LoadStale {
		if f.schedule != nil {
			schedule := *f.schedule
			view.Schedule = &schedule
		}
		seats := make([]entity.Seat, len(f.seats))
		copy(seats, f.seats)
		view.Rows = GroupRows(seats)
	}

	ready := !f.closed && f.loadState == LoadReady && f.submit == SubmitIdle
	view.CanProceed = ready && f.selection.Len() > 0
	view.CanConfirm = view.CanProceed && f.schedule != nil
	return view
}
