package rabbitmq_adapter

import (
	"estate-agent-service/internal/core/port"
	"estate-agent-service/pkg/rabbitmq/rabbitmq_common"
	"fmt"
)

// PkgLoggerBridge подключает LoggerPort приложения к логгеру пакета rabbitmq_common.
type PkgLoggerBridge struct {
	logger port.LoggerPort
}

func NewPkgLoggerBridge(logger port.LoggerPort) rabbitmq_common.Logger {
	return &PkgLoggerBridge{logger: logger}
}

// toFields собирает пары ключ/значение. Ключ не строка - берется его fmt-представление,
// значение без пары пишется под ключом "extra".
func toFields(keysAndValues []interface{}) port.Fields {
	if len(keysAndValues) == 0 {
		return nil
	}
	fields := make(port.Fields, (len(keysAndValues)+1)/2)
	for i := 0; i < len(keysAndValues); i += 2 {
		if i+1 >= len(keysAndValues) {
			fields["extra"] = keysAndValues[i]
			break
		}
		key, ok := keysAndValues[i].(string)
		if !ok {
			key = fmt.Sprint(keysAndValues[i])
		}
		fields[key] = keysAndValues[i+1]
	}
	return fields
}

func (b *PkgLoggerBridge) Debug(msg string, keysAndValues ...interface{}) {
	b.logger.Debug(msg, toFields(keysAndValues))
}

func (b *PkgLoggerBridge) Info(msg string, keysAndValues ...interface{}) {
	b.logger.Info(msg, toFields(keysAndValues))
}

func (b *PkgLoggerBridge) Warn(msg string, keysAndValues ...interface{}) {
	b.logger.Warn(msg, toFields(keysAndValues))
}

func (b *PkgLoggerBridge) Error(err error, msg string, keysAndValues ...interface{}) {
	b.logger.Error(msg, err, toFields(keysAndValues))
}
