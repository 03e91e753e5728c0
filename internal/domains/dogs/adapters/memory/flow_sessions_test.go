package memory

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	dogtypes "github.com/Apurer/go-gin-doglist/internal/domains/dogs/application/types"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/domain"
	"github.com/Apurer/go-gin-doglist/internal/domains/dogs/ports"
)

type fakeFlow struct {
	started int
	closed  int
}

func (f *fakeFlow) Start(context.Context)         { f.started++ }
func (f *fakeFlow) Retry(context.Context)         {}
func (f *fakeFlow) State() domain.PhotoFetchState { return domain.Loading() }
func (f *fakeFlow) Close()                        { f.closed++ }
func (f *fakeFlow) Wait(context.Context) (domain.PhotoFetchState, error) {
	return domain.Loading(), nil
}
func (f *fakeFlow) Submit(context.Context, string, string) (*dogtypes.AddDogResult, bool, error) {
	return nil, false, nil
}

func TestFlowSessions_OpenGetClose(t *testing.T) {
	var created []*fakeFlow
	sessions := NewFlowSessions(func() ports.AddFlow {
		f := &fakeFlow{}
		created = append(created, f)
		return f
	}, 0)
	ctx := context.Background()

	id, flow, err := sessions.Open(ctx)
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, 1, created[0].started)

	got, err := sessions.Get(ctx, id)
	require.NoError(t, err)
	require.Same(t, flow, got)

	require.NoError(t, sessions.Close(ctx, id))
	require.Equal(t, 1, created[0].closed)
	_, err = sessions.Get(ctx, id)
	require.ErrorIs(t, err, ports.ErrFlowNotFound)
	require.ErrorIs(t, sessions.Close(ctx, id), ports.ErrFlowNotFound)
}

func TestFlowSessions_PurgeIdle(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	sessions := NewFlowSessions(func() ports.AddFlow { return &fakeFlow{} }, 10*time.Minute)
	sessions.WithClock(func() time.Time { return now })
	ctx := context.Background()

	stale, _, err := sessions.Open(ctx)
	require.NoError(t, err)
	now = now.Add(8 * time.Minute)
	fresh, _, err := sessions.Open(ctx)
	require.NoError(t, err)

	now = now.Add(5 * time.Minute)
	require.Equal(t, 1, sessions.PurgeIdle(ctx))
	_, err = sessions.Get(ctx, stale)
	require.ErrorIs(t, err, ports.ErrFlowNotFound)
	_, err = sessions.Get(ctx, fresh)
	require.NoError(t, err)

	sessions.CloseAll()
	require.Zero(t, sessions.Len())
}
