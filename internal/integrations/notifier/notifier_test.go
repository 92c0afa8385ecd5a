package notifier

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/jobfair-interviews/pkg/logger"
)

type fakeRedis struct {
	mu       sync.Mutex
	channels []string
	payloads [][]byte
	err      error
	closed   bool
}

func (f *fakeRedis) Publish(_ context.Context, channel string, message interface{}) *redis.IntCmd {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.channels = append(f.channels, channel)
	if b, ok := message.([]byte); ok {
		f.payloads = append(f.payloads, b)
	}
	return redis.NewIntResult(1, f.err)
}

func (f *fakeRedis) Close() error {
	f.closed = true
	return nil
}

type fakeNATS struct {
	mu       sync.Mutex
	subjects []string
	err      error
	closed   bool
}

func (f *fakeNATS) Publish(subject string, _ []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subjects = append(f.subjects, subject)
	return f.err
}

func (f *fakeNATS) Close() {
	f.closed = true
}

type fakeMetrics struct {
	mu     sync.Mutex
	counts map[string]int
}

func (m *fakeMetrics) IncNotification(backend, result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counts == nil {
		m.counts = make(map[string]int)
	}
	m.counts[backend+"/"+result]++
}

type blockingPublisher struct{}

func (blockingPublisher) Name() string { return "slow" }

func (blockingPublisher) Publish(ctx context.Context, _ Notification) error {
	<-ctx.Done()
	return ctx.Err()
}

func (blockingPublisher) Close() error { return nil }

func TestRedisPublisher_Publish(t *testing.T) {
	client := &fakeRedis{}
	p := NewRedisPublisher(client, "jobfair")

	err := p.Publish(context.Background(), Notification{
		UserID: 42,
		Kind:   KindBookingConfirmed,
		Title:  "Interview booked",
		RelatedEntity: RelatedEntity{
			Type: "slot",
			ID:   "abc",
		},
	})
	require.NoError(t, err)

	require.Len(t, client.channels, 1)
	assert.Equal(t, "jobfair:user:42", client.channels[0])

	var decoded Notification
	require.NoError(t, json.Unmarshal(client.payloads[0], &decoded))
	assert.Equal(t, KindBookingConfirmed, decoded.Kind)
	assert.Equal(t, "abc", decoded.RelatedEntity.ID)

	client.err = errors.New("connection reset")
	err = p.Publish(context.Background(), Notification{UserID: 1})
	assert.ErrorIs(t, err, ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, client.closed)
}

func TestNATSPublisher_Publish(t *testing.T) {
	conn := &fakeNATS{}
	p := NewNATSPublisher(conn, "jobfair")

	require.NoError(t, p.Publish(context.Background(), Notification{UserID: 7}))
	assert.Equal(t, []string{"jobfair.user.7"}, conn.subjects)

	conn.err = errors.New("nats: connection closed")
	assert.ErrorIs(t, p.Publish(context.Background(), Notification{UserID: 7}), ErrPublish)

	require.NoError(t, p.Close())
	assert.True(t, conn.closed)
}

func TestEmitter_Notify_FanOut(t *testing.T) {
	redisClient := &fakeRedis{}
	natsConn := &fakeNATS{err: errors.New("down")}
	metrics := &fakeMetrics{}

	emitter := NewEmitter(time.Second, logger.Nop(), metrics,
		NewRedisPublisher(redisClient, "jf"),
		NewNATSPublisher(natsConn, "jf"),
		NewLogPublisher(logger.Nop()),
	)

	emitter.Notify(context.Background(),
		Notification{UserID: 1, Kind: KindApplicationAccepted},
		Notification{UserID: 2, Kind: KindBookingConfirmed},
	)
	emitter.Wait()

	assert.ElementsMatch(t, []string{"jf:user:1", "jf:user:2"}, redisClient.channels)
	assert.Len(t, natsConn.subjects, 2)
	assert.Equal(t, 2, metrics.counts["redis/sent"])
	assert.Equal(t, 2, metrics.counts["nats/failed"])
	assert.Equal(t, 2, metrics.counts["log/sent"])

	var decoded Notification
	require.NoError(t, json.Unmarshal(redisClient.payloads[0], &decoded))
	assert.False(t, decoded.CreatedAt.IsZero())
}

func TestEmitter_Notify_IgnoresCallerCancellation(t *testing.T) {
	redisClient := &fakeRedis{}
	emitter := NewEmitter(time.Second, logger.Nop(), nil, NewRedisPublisher(redisClient, "jf"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	emitter.Notify(ctx, Notification{UserID: 3})
	emitter.Wait()
	assert.Equal(t, []string{"jf:user:3"}, redisClient.channels)
}

func TestEmitter_Notify_DoesNotBlockCaller(t *testing.T) {
	metrics := &fakeMetrics{}
	emitter := NewEmitter(300*time.Millisecond, logger.Nop(), metrics, blockingPublisher{})

	ctx, cancel := context.WithCancel(context.Background())
	start := time.Now()
	emitter.Notify(ctx, Notification{UserID: 1})
	assert.Less(t, time.Since(start), 100*time.Millisecond)

	// отмена запроса не прерывает фоновую отправку
	cancel()
	done := make(chan struct{})
	go func() {
		emitter.Wait()
		close(done)
	}()
	select {
	case <-done:
		t.Fatal("delivery stopped together with the request context")
	case <-time.After(50 * time.Millisecond):
	}

	<-done
	assert.Equal(t, 1, metrics.counts["slow/failed"])
}

func TestEmitter_Notify_BoundedByTimeout(t *testing.T) {
	metrics := &fakeMetrics{}
	emitter := NewEmitter(50*time.Millisecond, logger.Nop(), metrics, blockingPublisher{})

	start := time.Now()
	emitter.Notify(context.Background(), Notification{UserID: 1})
	emitter.Wait()
	assert.Less(t, time.Since(start), time.Second)
	assert.Equal(t, 1, metrics.counts["slow/failed"])
}

func TestEmitter_Close(t *testing.T) {
	redisClient := &fakeRedis{}
	natsConn := &fakeNATS{}
	emitter := NewEmitter(time.Second, logger.Nop(), nil,
		NewRedisPublisher(redisClient, "jf"),
		NewNATSPublisher(natsConn, "jf"),
	)

	// начатая рассылка доставляется до закрытия backends
	emitter.Notify(context.Background(), Notification{UserID: 9})
	require.NoError(t, emitter.Close())
	assert.Equal(t, []string{"jf:user:9"}, redisClient.channels)
	assert.Equal(t, []string{"jf.user.9"}, natsConn.subjects)
	assert.True(t, redisClient.closed)
	assert.True(t, natsConn.closed)
}

func TestNew_UnknownBackend(t *testing.T) {
	_, err := New(context.Background(), Options{Backends: []string{"log", "kafka"}}, logger.Nop(), nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)

	emitter, err := New(context.Background(), Options{Backends: []string{"log"}, Timeout: time.Second}, logger.Nop(), nil)
	require.NoError(t, err)
	emitter.Notify(context.Background(), Notification{UserID: 1})
	require.NoError(t, emitter.Close())
}
