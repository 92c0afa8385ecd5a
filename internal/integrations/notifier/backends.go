package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/redis/go-redis/v9"
)

// RedisClient часть *redis.Client, используемая notifier
type RedisClient interface {
	Publish(ctx context.Context, channel string, message interface{}) *redis.IntCmd
	Close() error
}

// RedisPublisher публикует уведомления в Redis Pub/Sub, канал <prefix>:user:<id>
type RedisPublisher struct {
	client RedisClient
	prefix string
}

// NewRedisPublisher создает publisher поверх готового клиента
func NewRedisPublisher(client RedisClient, prefix string) *RedisPublisher {
	return &RedisPublisher{client: client, prefix: prefix}
}

// DialRedis подключается к Redis и проверяет соединение
func DialRedis(ctx context.Context, addr, password string, db int, prefix string) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		DialTimeout:  5 * time.Second,
		WriteTimeout: 3 * time.Second,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("%w: redis ping %s: %v", ErrPublish, addr, err)
	}

	return NewRedisPublisher(client, prefix), nil
}

// Name возвращает имя backend
func (p *RedisPublisher) Name() string {
	return "redis"
}

// Channel возвращает канал пользователя
func (p *RedisPublisher) Channel(userID int64) string {
	return fmt.Sprintf("%s:user:%d", p.prefix, userID)
}

// Publish отправляет уведомление
func (p *RedisPublisher) Publish(ctx context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := p.client.Publish(ctx, p.Channel(n.UserID), payload).Err(); err != nil {
		return fmt.Errorf("%w: redis: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает соединение
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NATSConn часть *nats.Conn, используемая notifier
type NATSConn interface {
	Publish(subject string, data []byte) error
	Close()
}

// NATSPublisher публикует уведомления в NATS, subject <prefix>.user.<id>
type NATSPublisher struct {
	conn   NATSConn
	prefix string
}

// NewNATSPublisher создает publisher поверх готового соединения
func NewNATSPublisher(conn NATSConn, prefix string) *NATSPublisher {
	return &NATSPublisher{conn: conn, prefix: prefix}
}

// DialNATS подключается к NATS
func DialNATS(url, prefix string) (*NATSPublisher, error) {
	conn, err := nats.Connect(url,
		nats.Name("jobfair-interviews"),
		nats.Timeout(5*time.Second),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("%w: nats connect %s: %v", ErrPublish, url, err)
	}

	return NewNATSPublisher(conn, prefix), nil
}

// Name возвращает имя backend
func (p *NATSPublisher) Name() string {
	return "nats"
}

// Subject возвращает subject пользователя
func (p *NATSPublisher) Subject(userID int64) string {
	return fmt.Sprintf("%s.user.%d", p.prefix, userID)
}

// Publish отправляет уведомление
// nats.Conn буферизует сообщение, поэтому ctx не используется
func (p *NATSPublisher) Publish(_ context.Context, n Notification) error {
	payload, err := json.Marshal(n)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrMarshal, err)
	}

	if err := p.conn.Publish(p.Subject(n.UserID), payload); err != nil {
		return fmt.Errorf("%w: nats: %v", ErrPublish, err)
	}
	return nil
}

// Close закрывает соединение
func (p *NATSPublisher) Close() error {
	p.conn.Close()
	return nil
}

// LogPublisher пишет уведомления только в лог
type LogPublisher struct {
	logger Logger
}

// NewLogPublisher создает publisher, пишущий в лог
func NewLogPublisher(logger Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Name возвращает имя backend
func (p *LogPublisher) Name() string {
	return "log"
}

// Publish пишет уведомление в лог
func (p *LogPublisher) Publish(_ context.Context, n Notification) error {
	p.logger.Info("Notification: user=%d, kind=%s, entity=%s/%s, title=%q",
		n.UserID, n.Kind, n.RelatedEntity.Type, n.RelatedEntity.ID, n.Title)
	return nil
}

// Close ничего не делает
func (p *LogPublisher) Close() error {
	return nil
}
