package checkout_test

import (
	"context"
	"sync"

	"luminacine/internal/data/entity"
)

type MockInventory struct {
	lock sync.Mutex

	Show        *entity.Schedule
	SeatList    []entity.Seat
	ScheduleErr error
	SeatsErr    error
	// BeforeSeats runs before the seat answer is returned; tests block in it.
	BeforeSeats func()
	Calls       int
}

func (m *MockInventory) Schedule(_ context.Context, movieID, scheduleID entity.ID) (*entity.Schedule, error) {
	m.lock.Lock()
	defer m.lock.Unlock()

	if m.ScheduleErr != nil {
		return nil, m.ScheduleErr
	}
	schedule := *m.Show
	return &schedule, nil
}

func (m *MockInventory) Seats(_ context.Context, scheduleID entity.ID) ([]entity.Seat, error) {
	m.lock.Lock()
	m.Calls++
	before := m.BeforeSeats
	seats := append([]entity.Seat(nil), m.SeatList...)
	err := m.SeatsErr
	m.lock.Unlock()

	if before != nil {
		before()
	}
	if err != nil {
		return nil, err
	}
	return seats, nil
}

func (m *MockInventory) SetSeats(seats []entity.Seat) {
	m.lock.Lock()
	m.SeatList = seats
	m.lock.Unlock()
}

type GatewayCall struct {
	Method  string
	ID      entity.ID
	Payload entity.BookingPayload
}

type MockGateway struct {
	lock  sync.Mutex
	Calls []GatewayCall

	Booking *entity.Booking
	Err     error
	// Block, when set, is received from before answering.
	Block chan struct{}
}

func (m *MockGateway) Create(_ context.Context, payload entity.BookingPayload) (*entity.Booking, error) {
	return m.answer(GatewayCall{Method: "POST", Payload: payload})
}

func (m *MockGateway) Update(_ context.Context, id entity.ID, payload entity.BookingPayload) (*entity.Booking, error) {
	return m.answer(GatewayCall{Method: "PUT", ID: id, Payload: payload})
}

func (m *MockGateway) answer(call GatewayCall) (*entity.Booking, error) {
	m.lock.Lock()
	m.Calls = append(m.Calls, call)
	block := m.Block
	booking, err := m.Booking, m.Err
	m.lock.Unlock()

	if block != nil {
		<-block
	}
	if err != nil {
		return nil, err
	}
	if booking == nil {
		return &entity.Booking{}, nil
	}
	copied := *booking
	return &copied, nil
}

func (m *MockGateway) CallsMade() []GatewayCall {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]GatewayCall(nil), m.Calls...)
}
