package port

import "context"

// KeyValueStorePort - долговременное хранилище "ключ - текст", переживающее перезапуск.
type KeyValueStorePort interface {
	// Read возвращает found == false, если ключа нет. Это не ошибка.
	Read(ctx context.Context, key string) (value string, found bool, err error)
	Write(ctx context.Context, key string, value string) error
}
