package port

// Fields - структурированные поля записи лога.
type Fields map[string]interface{}

// LoggerPort определяет контракт для системы логирования.
// Он абстрагирует ядро приложения от конкретной реализации логгера.
type LoggerPort interface {
	// Info записывает информационное сообщение.
	Info(msg string, fields Fields)

	// Warn записывает предупреждение.
	Warn(msg string, fields Fields)

	// Error записывает ошибку, обычно вместе с объектом error.
	Error(msg string, err error, fields Fields)

	Debug(msg string, fields Fields)

	// WithFields создает новый экземпляр логгера с уже добавленными полями.
	WithFields(fields Fields) LoggerPort
}
