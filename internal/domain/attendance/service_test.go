package attendance

import (
	"context"
	"sync"
	"testing"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/events"
	"github.com/alialif/JoinUp-Event-Management/internal/domain/members"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[[2]string]Attendance
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: make(map[[2]string]Attendance)}
}

func (f *fakeAttendanceRepo) CreateIfAbsent(ctx context.Context, record Attendance) (*Attendance, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{record.EventID, record.MemberID}
	if existing, ok := f.records[key]; ok {
		return &existing, false, nil
	}
	f.records[key] = record
	return &record, true, nil
}

func (f *fakeAttendanceRepo) ListForEvent(ctx context.Context, eventID string) ([]Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []Attendance
	for key, record := range f.records {
		if key[0] == eventID {
			out = append(out, record)
		}
	}
	return out, nil
}

type stubMembersRepo struct{ known map[string]bool }

func (s *stubMembersRepo) Create(ctx context.Context, member members.Member) (*members.Member, error) {
	return &member, nil
}

func (s *stubMembersRepo) GetByID(ctx context.Context, id string) (*members.Member, error) {
	if !s.known[id] {
		return nil, members.ErrNotFound
	}
	return &members.Member{ID: id}, nil
}

func (s *stubMembersRepo) GetByEmail(ctx context.Context, email string) (*members.Member, error) {
	return nil, members.ErrNotFound
}

func (s *stubMembersRepo) List(ctx context.Context) ([]members.Member, error) { return nil, nil }

func (s *stubMembersRepo) UpdateRole(ctx context.Context, id string, role string) (*members.Member, error) {
	return nil, members.ErrNotFound
}

type stubEventsRepo struct{ known map[string]bool }

func (s *stubEventsRepo) Create(ctx context.Context, event events.Event) (*events.Event, error) {
	return &event, nil
}

func (s *stubEventsRepo) List(ctx context.Context) ([]events.Event, error) { return nil, nil }

func (s *stubEventsRepo) GetByID(ctx context.Context, id string) (*events.Event, error) {
	if !s.known[id] {
		return nil, events.ErrNotFound
	}
	return &events.Event{ID: id}, nil
}

func (s *stubEventsRepo) Update(ctx context.Context, id string, params events.UpdateParams) (*events.Event, error) {
	return nil, events.ErrNotFound
}

func (s *stubEventsRepo) Delete(ctx context.Context, id string) error { return events.ErrNotFound }

type countingRecorder struct {
	mu    sync.Mutex
	count int
}

func (c *countingRecorder) Record(ctx context.Context, actorID, action, entityType, entityID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.count++
}

func newTestService(recorder *countingRecorder) *Service {
	return NewService(
		newFakeAttendanceRepo(),
		&stubMembersRepo{known: map[string]bool{"m1": true, "m2": true}},
		&stubEventsRepo{known: map[string]bool{"e1": true}},
		recorder,
		zerolog.Nop(),
	)
}

func TestMark(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)

	record, err := svc.Mark(context.Background(), "m1", "e1", "staff-1")
	require.NoError(t, err)
	require.Equal(t, "m1", record.MemberID)
	require.Equal(t, "e1", record.EventID)
	require.False(t, record.AttendedAt.IsZero())
	require.Equal(t, 1, recorder.count)
}

func TestMarkIsIdempotent(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)
	ctx := context.Background()

	first, err := svc.Mark(ctx, "m1", "e1", "staff-1")
	require.NoError(t, err)

	second, err := svc.Mark(ctx, "m1", "e1", "staff-1")
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, first.AttendedAt, second.AttendedAt)

	// The repeat neither audits nor grows the list.
	require.Equal(t, 1, recorder.count)
	list, err := svc.ListForEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestMarkUnknownMember(t *testing.T) {
	svc := newTestService(&countingRecorder{})

	_, err := svc.Mark(context.Background(), "ghost", "e1", "staff-1")
	require.ErrorIs(t, err, members.ErrNotFound)
}

func TestMarkUnknownEvent(t *testing.T) {
	svc := newTestService(&countingRecorder{})

	_, err := svc.Mark(context.Background(), "m1", "nope", "staff-1")
	require.ErrorIs(t, err, events.ErrNotFound)
}

func TestConcurrentMarksSingleRecord(t *testing.T) {
	recorder := &countingRecorder{}
	svc := newTestService(recorder)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Mark(ctx, "m1", "e1", "staff-1")
			require.NoError(t, err)
		}()
	}
	wg.Wait()

	list, err := svc.ListForEvent(ctx, "e1")
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, 1, recorder.count)
}
