package fluentlogger

import (
	"fmt"
	"time"

	"github.com/fluent/fluent-logger-golang/fluent"
)

// Config хранит конфигурацию для подключения к Fluent Bit.
type Config struct {
	Host      string // "127.0.0.1" или "fluent-bit" в Docker
	Port      int    // обычно 24224
	TagPrefix string // общий префикс тегов, обычно имя сервиса
	Timeout   time.Duration
	Async     bool // не блокировать запись лога при недоступном Fluent Bit
}

// NewClient создает клиента Fluent Bit.
// Пинга нет: ошибки соединения проявятся при первой отправке.
func NewClient(cfg Config) (*fluent.Fluent, error) {
	if cfg.TagPrefix == "" {
		return nil, fmt.Errorf("fluentd tag prefix is required")
	}
	if cfg.Host == "" {
		return nil, fmt.Errorf("fluentd host is required")
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 3 * time.Second
	}

	logger, err := fluent.New(fluent.Config{
		FluentHost:         cfg.Host,
		FluentPort:         cfg.Port,
		TagPrefix:          cfg.TagPrefix,
		Timeout:            timeout,
		Async:              cfg.Async,
		MaxRetry:           3,
		SubSecondPrecision: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create fluentd logger: %w", err)
	}

	return logger, nil
}
