package rabbitmq_common

// Logger - минимальный логгер пакета, не зависящий от логгера приложения.
// keysAndValues - чередующиеся пары ключ/значение.
type Logger interface {
	Debug(msg string, keysAndValues ...interface{})
	Info(msg string, keysAndValues ...interface{})
	Warn(msg string, keysAndValues ...interface{})
	Error(err error, msg string, keysAndValues ...interface{})
}

type noopLogger struct{}

func (noopLogger) Debug(string, ...interface{})        {}
func (noopLogger) Info(string, ...interface{})         {}
func (noopLogger) Warn(string, ...interface{})         {}
func (noopLogger) Error(error, string, ...interface{}) {}

func NewNoopLogger() Logger {
	return noopLogger{}
}
