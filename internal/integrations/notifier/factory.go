package notifier

import (
	"context"
	"fmt"
	"time"
)

// Options настройки backends
type Options struct {
	Backends      []string
	ChannelPrefix string
	Timeout       time.Duration
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	NATSURL       string
}

// New создает Emitter по списку имён backends: redis, nats, log
// При ошибке подключения к любому из backends уже открытые соединения закрываются
func New(ctx context.Context, opts Options, logger Logger, metrics MetricsRecorder) (*Emitter, error) {
	publishers := make([]Publisher, 0, len(opts.Backends))

	closeAll := func() {
		for _, p := range publishers {
			_ = p.Close()
		}
	}

	for _, name := range opts.Backends {
		switch name {
		case "redis":
			p, err := DialRedis(ctx, opts.RedisAddr, opts.RedisPassword, opts.RedisDB, opts.ChannelPrefix)
			if err != nil {
				closeAll()
				return nil, err
			}
			publishers = append(publishers, p)
		case "nats":
			p, err := DialNATS(opts.NATSURL, opts.ChannelPrefix)
			if err != nil {
				closeAll()
				return nil, err
			}
			publishers = append(publishers, p)
		case "log":
			publishers = append(publishers, NewLogPublisher(logger))
		default:
			closeAll()
			return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, name)
		}
		logger.Info("Notifier: backend %s enabled", name)
	}

	return NewEmitter(opts.Timeout, logger, metrics, publishers...), nil
}
