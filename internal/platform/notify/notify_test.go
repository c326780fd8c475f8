package notify

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"watchlist_backend/internal/feature/watchlist/domain/entity"
)

func sampleEvent() entity.ChangeEvent {
	return entity.ChangeEvent{
		UserID:     42,
		Symbol:     "AAPL",
		Action:     entity.ChangeActionAdded,
		OccurredAt: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func TestRedisNotifier_Notify(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	ev := sampleEvent()
	payload, _ := json.Marshal(ev)
	mock.ExpectPublish("watchlist:changed", payload).SetVal(1)

	err := NewRedisNotifier(rdb, "watchlist:changed").Notify(context.Background(), ev)

	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRedisNotifier_PublishError(t *testing.T) {
	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	ev := sampleEvent()
	payload, _ := json.Marshal(ev)
	mock.ExpectPublish("watchlist:changed", payload).SetErr(errors.New("connection refused"))

	err := NewRedisNotifier(rdb, "watchlist:changed").Notify(context.Background(), ev)

	assert.ErrorContains(t, err, "connection refused")
}

type fakeWriter struct {
	msgs   []kafka.Message
	err    error
	closed bool
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	if f.err != nil {
		return f.err
	}
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) Close() error {
	f.closed = true
	return nil
}

func TestKafkaNotifier_Notify(t *testing.T) {
	w := &fakeWriter{}
	n := &KafkaNotifier{w: w}
	ev := sampleEvent()

	require.NoError(t, n.Notify(context.Background(), ev))
	require.Len(t, w.msgs, 1)
	assert.Equal(t, "42", string(w.msgs[0].Key))
	assert.Equal(t, ev.OccurredAt, w.msgs[0].Time)

	var got entity.ChangeEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, ev, got)

	require.NoError(t, n.Close())
	assert.True(t, w.closed)
}

func TestKafkaNotifier_WriteError(t *testing.T) {
	n := &KafkaNotifier{w: &fakeWriter{err: errors.New("leader not available")}}

	err := n.Notify(context.Background(), sampleEvent())

	assert.ErrorContains(t, err, "leader not available")
}

type recordingNotifier struct {
	calls int
	err   error
}

func (r *recordingNotifier) Notify(ctx context.Context, ev entity.ChangeEvent) error {
	r.calls++
	return r.err
}

func TestMulti_Notify(t *testing.T) {
	errA := errors.New("a failed")
	a := &recordingNotifier{err: errA}
	b := &recordingNotifier{}

	err := Multi{a, b}.Notify(context.Background(), sampleEvent())

	assert.ErrorIs(t, err, errA)
	assert.Equal(t, 1, a.calls)
	assert.Equal(t, 1, b.calls, "later notifiers still run after a failure")

	assert.NoError(t, Multi{}.Notify(context.Background(), sampleEvent()))
}
