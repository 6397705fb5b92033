package audit

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alialif/JoinUp-Event-Management/internal/domain/ids"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

type fakeAuditRepo struct {
	mu        sync.Mutex
	entries   []Entry
	appendErr error
	lastLimit int
}

func (f *fakeAuditRepo) Append(ctx context.Context, entry Entry) (*Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.appendErr != nil {
		return nil, f.appendErr
	}
	entry.ID = ids.MustNewULID()
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeAuditRepo) List(ctx context.Context, limit int) ([]Entry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastLimit = limit
	out := make([]Entry, 0, limit)
	for i := len(f.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, f.entries[i])
	}
	return out, nil
}

func TestStoreRecorderAppends(t *testing.T) {
	repo := &fakeAuditRepo{}
	recorder := NewStoreRecorder(repo, zerolog.Nop())

	recorder.Record(context.Background(), "actor-1", "registration.create", "Registration", "reg-1")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	require.Equal(t, "actor-1", entry.ActorID)
	require.Equal(t, "registration.create", entry.Action)
	require.Equal(t, "Registration", entry.EntityType)
	require.Equal(t, "reg-1", entry.EntityID)
	require.False(t, entry.CreatedAt.IsZero())
}

func TestStoreRecorderSwallowsAppendFailure(t *testing.T) {
	repo := &fakeAuditRepo{appendErr: errors.New("disk full")}
	recorder := NewStoreRecorder(repo, zerolog.Nop())

	// Best-effort: must not panic or propagate the failure.
	recorder.Record(context.Background(), "actor-1", "attendance.mark", "Attendance", "att-1")

	require.Empty(t, repo.entries)
}

func TestServiceListClampsLimit(t *testing.T) {
	repo := &fakeAuditRepo{}
	svc := NewService(repo)

	_, err := svc.List(context.Background(), 0)
	require.NoError(t, err)
	require.Equal(t, DefaultListLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), 10_000)
	require.NoError(t, err)
	require.Equal(t, DefaultListLimit, repo.lastLimit)

	_, err = svc.List(context.Background(), 5)
	require.NoError(t, err)
	require.Equal(t, 5, repo.lastLimit)
}

func TestServiceListNewestFirst(t *testing.T) {
	repo := &fakeAuditRepo{}
	recorder := NewStoreRecorder(repo, zerolog.Nop())
	ctx := context.Background()

	recorder.Record(ctx, "a", "registration.create", "Registration", "r1")
	recorder.Record(ctx, "a", "attendance.mark", "Attendance", "t1")
	recorder.Record(ctx, "a", "certificate.issue", "Certificate", "c1")

	entries, err := NewService(repo).List(ctx, 2)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "certificate.issue", entries[0].Action)
	require.Equal(t, "attendance.mark", entries[1].Action)
}
