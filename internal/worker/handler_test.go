package worker_test

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"chatgenius/internal/tasks"
	"chatgenius/internal/worker"
)

type fakeSweeper struct {
	expired int64
	err     error
	calls   int
}

func (s *fakeSweeper) ExpirePending(context.Context) (int64, error) {
	s.calls++
	return s.expired, s.err
}

type fakeBlobs struct {
	removeErr error
	removed   []string
}

func (b *fakeBlobs) Put(context.Context, string, string, io.Reader, int64) (string, error) {
	return "", nil
}

func (b *fakeBlobs) Remove(_ context.Context, key string) error {
	b.removed = append(b.removed, key)
	return b.removeErr
}

func TestInviteExpiryHandler_ProcessTask(t *testing.T) {
	sweeper := &fakeSweeper{expired: 3}
	h := worker.NewInviteExpiryHandler(sweeper)
	payload, err := tasks.NewInviteExpirySweepTask(time.Now())
	require.NoError(t, err)

	err = h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeInviteExpirySweep, payload))

	assert.NoError(t, err)
	assert.Equal(t, 1, sweeper.calls)
}

func TestInviteExpiryHandler_BadPayloadSkipsRetry(t *testing.T) {
	sweeper := &fakeSweeper{}
	h := worker.NewInviteExpiryHandler(sweeper)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeInviteExpirySweep, []byte("{")))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Zero(t, sweeper.calls)
}

func TestInviteExpiryHandler_SweepFailureRetries(t *testing.T) {
	h := worker.NewInviteExpiryHandler(&fakeSweeper{err: errors.New("db down")})

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeInviteExpirySweep, nil))

	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestBlobRemoveHandler_ProcessTask(t *testing.T) {
	blobs := &fakeBlobs{}
	h := worker.NewBlobRemoveHandler(blobs)
	payload, err := tasks.NewBlobRemoveTask("uploads/abc-notes.txt")
	require.NoError(t, err)

	require.NoError(t, h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBlobRemove, payload)))
	assert.Equal(t, []string{"uploads/abc-notes.txt"}, blobs.removed)

	// 删除失败返回错误以便重试
	blobs.removeErr = errors.New("storage unavailable")
	err = h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBlobRemove, payload))
	require.Error(t, err)
	assert.NotErrorIs(t, err, asynq.SkipRetry)
}

func TestBlobRemoveHandler_EmptyKeySkipsRetry(t *testing.T) {
	blobs := &fakeBlobs{}
	h := worker.NewBlobRemoveHandler(blobs)

	err := h.ProcessTask(context.Background(), asynq.NewTask(tasks.TypeBlobRemove, []byte(`{"key":""}`)))

	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, blobs.removed)
}
