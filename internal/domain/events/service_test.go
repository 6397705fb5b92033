package events

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

type fakeEventsRepo struct {
	events map[string]Event
}

func newFakeEventsRepo() *fakeEventsRepo {
	return &fakeEventsRepo{events: make(map[string]Event)}
}

func (f *fakeEventsRepo) Create(ctx context.Context, event Event) (*Event, error) {
	f.events[event.ID] = event
	return &event, nil
}

func (f *fakeEventsRepo) List(ctx context.Context) ([]Event, error) {
	out := make([]Event, 0, len(f.events))
	for _, event := range f.events {
		out = append(out, event)
	}
	return out, nil
}

func (f *fakeEventsRepo) GetByID(ctx context.Context, id string) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &event, nil
}

func (f *fakeEventsRepo) Update(ctx context.Context, id string, params UpdateParams) (*Event, error) {
	event, ok := f.events[id]
	if !ok {
		return nil, ErrNotFound
	}
	if params.Title != nil {
		event.Title = *params.Title
	}
	if params.Description != nil {
		event.Description = *params.Description
	}
	if params.StartDate != nil {
		event.StartDate = *params.StartDate
	}
	if params.EndDate != nil {
		event.EndDate = *params.EndDate
	}
	if params.MaxRegistrations != nil {
		event.MaxRegistrations = *params.MaxRegistrations
	}
	if params.Categories != nil {
		event.Categories = params.Categories
	}
	if params.Price != nil {
		event.Price = *params.Price
	}
	event.UpdatedAt = time.Now().UTC()
	f.events[id] = event
	return &event, nil
}

func (f *fakeEventsRepo) Delete(ctx context.Context, id string) error {
	if _, ok := f.events[id]; !ok {
		return ErrNotFound
	}
	delete(f.events, id)
	return nil
}

func validCreateParams() CreateParams {
	start := time.Date(2026, 10, 1, 18, 0, 0, 0, time.UTC)
	return CreateParams{
		Title:     "Launch Night",
		StartDate: start,
		EndDate:   start.Add(2 * time.Hour),
	}
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc := NewService(newFakeEventsRepo())

	event, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)
	require.Equal(t, PriceFree, event.Price)
	require.Equal(t, DefaultMaxRegistrations, event.MaxRegistrations)
	require.NotEmpty(t, event.ID)
	require.False(t, event.CreatedAt.IsZero())
}

func TestCreateRejectsEmptyTitle(t *testing.T) {
	svc := NewService(newFakeEventsRepo())

	params := validCreateParams()
	params.Title = "   "
	_, err := svc.Create(context.Background(), params)

	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "title", validationErr.Field)
}

func TestCreateRejectsEndBeforeStart(t *testing.T) {
	svc := NewService(newFakeEventsRepo())

	params := validCreateParams()
	params.EndDate = params.StartDate.Add(-time.Hour)
	_, err := svc.Create(context.Background(), params)

	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "endDate", validationErr.Field)
}

func TestCreateRejectsNegativeCapacity(t *testing.T) {
	svc := NewService(newFakeEventsRepo())

	params := validCreateParams()
	params.MaxRegistrations = -3
	_, err := svc.Create(context.Background(), params)

	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
}

func TestUpdatePartial(t *testing.T) {
	repo := newFakeEventsRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)

	title := "Renamed Night"
	updated, err := svc.Update(context.Background(), event.ID, UpdateParams{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "Renamed Night", updated.Title)
	require.Equal(t, event.MaxRegistrations, updated.MaxRegistrations)
	require.Equal(t, event.Price, updated.Price)
}

func TestUpdateAllowsLoweringCapacity(t *testing.T) {
	repo := newFakeEventsRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)

	lower := 1
	updated, err := svc.Update(context.Background(), event.ID, UpdateParams{MaxRegistrations: &lower})
	require.NoError(t, err)
	require.Equal(t, 1, updated.MaxRegistrations)
}

func TestUpdateRejectsInvalidPrice(t *testing.T) {
	repo := newFakeEventsRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)

	price := "donation"
	_, err = svc.Update(context.Background(), event.ID, UpdateParams{Price: &price})

	var validationErr ValidationError
	require.ErrorAs(t, err, &validationErr)
	require.Equal(t, "price", validationErr.Field)
}

func TestUpdateUnknownEvent(t *testing.T) {
	svc := NewService(newFakeEventsRepo())

	title := "anything"
	_, err := svc.Update(context.Background(), "01JUNKNOWNEVENT0000000000", UpdateParams{Title: &title})
	require.ErrorIs(t, err, ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := newFakeEventsRepo()
	svc := NewService(repo)

	event, err := svc.Create(context.Background(), validCreateParams())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), event.ID))
	_, err = svc.Get(context.Background(), event.ID)
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, svc.Delete(context.Background(), event.ID), ErrNotFound)
}
