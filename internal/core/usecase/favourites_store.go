package usecase

import (
	"context"
	"encoding/json"
	"estate-agent-service/internal/contextkeys"
	"estate-agent-service/internal/core/domain"
	"estate-agent-service/internal/core/port"
	"fmt"
	"sync"
)

// FavouritesKey - фиксированный ключ, под которым хранится весь список избранного.
const FavouritesKey = "favourites"

// FavouritesStore владеет списком избранного. Все изменения идут только через его методы.
// Список уникален по ID и упорядочен по времени добавления.
// Каждое изменение сразу целиком сохраняется в хранилище; изменение и запись выполняются
// под одним мьютексом, поэтому наблюдатель никогда не видит частично примененное состояние.
type FavouritesStore struct {
	mu    sync.Mutex
	kv    port.KeyValueStorePort
	items []domain.Listing
}

// NewFavouritesStore создает хранилище и восстанавливает ранее сохраненный список.
// Если сохраненные данные не читаются или не разбираются, стартуем с пустого списка.
func NewFavouritesStore(ctx context.Context, kv port.KeyValueStorePort) (*FavouritesStore, error) {
	if kv == nil {
		return nil, fmt.Errorf("key-value store cannot be nil")
	}

	s := &FavouritesStore{
		kv:    kv,
		items: []domain.Listing{},
	}
	s.load(ctx)
	return s, nil
}

func (s *FavouritesStore) load(ctx context.Context) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "FavouritesStore",
		"method":    "load",
		"key":       FavouritesKey,
	})

	raw, found, err := s.kv.Read(ctx, FavouritesKey)
	if err != nil {
		logger.Warn("Could not read persisted favourites, starting with an empty list.", port.Fields{"error": err.Error()})
		return
	}
	if !found {
		logger.Debug("No persisted favourites found.", nil)
		return
	}

	var loaded []domain.Listing
	if err := json.Unmarshal([]byte(raw), &loaded); err != nil {
		logger.Warn("Persisted favourites are malformed, starting with an empty list.", port.Fields{"error": err.Error()})
		return
	}

	s.items = dedupeByID(loaded)
	if dropped := len(loaded) - len(s.items); dropped > 0 {
		logger.Warn("Dropped duplicate entries from persisted favourites.", port.Fields{"dropped": dropped})
	}
	logger.Info("Favourites restored.", port.Fields{"count": len(s.items)})
}

// Add добавляет объект в конец списка. Если объект с таким ID уже есть, список не меняется.
// Возвращает true, если объект был добавлен, и снимок, записанный этим же изменением.
func (s *FavouritesStore) Add(ctx context.Context, listing domain.Listing) (bool, []domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if indexByID(s.items, listing.ID) >= 0 {
		if err := s.commit(ctx, s.items); err != nil {
			return false, nil, err
		}
		return false, s.snapshotLocked(), nil
	}

	if err := s.commit(ctx, appendListing(s.items, listing)); err != nil {
		return false, nil, err
	}
	return true, s.snapshotLocked(), nil
}

// Remove удаляет объект по ID. Отсутствие объекта не ошибка.
// Возвращает true, если что-то было удалено, и снимок после изменения.
func (s *FavouritesStore) Remove(ctx context.Context, listingID int) (bool, []domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.items, listingID)
	if idx < 0 {
		if err := s.commit(ctx, s.items); err != nil {
			return false, nil, err
		}
		return false, s.snapshotLocked(), nil
	}

	if err := s.commit(ctx, removeAt(s.items, idx)); err != nil {
		return false, nil, err
	}
	return true, s.snapshotLocked(), nil
}

// Clear очищает список безусловно. Возвращает true, если список до этого был непуст.
func (s *FavouritesStore) Clear(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	hadItems := len(s.items) > 0
	if err := s.commit(ctx, []domain.Listing{}); err != nil {
		return false, err
	}
	return hadItems, nil
}

// Toggle атомарно убирает объект из избранного, если он там есть, иначе добавляет.
// Возвращает новое состояние и снимок после изменения.
func (s *FavouritesStore) Toggle(ctx context.Context, listing domain.Listing) (bool, []domain.Listing, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := indexByID(s.items, listing.ID)
	if idx >= 0 {
		if err := s.commit(ctx, removeAt(s.items, idx)); err != nil {
			return true, nil, err
		}
		return false, s.snapshotLocked(), nil
	}

	if err := s.commit(ctx, appendListing(s.items, listing)); err != nil {
		return false, nil, err
	}
	return true, s.snapshotLocked(), nil
}

// IsFavourite - линейный поиск, список небольшой.
func (s *FavouritesStore) IsFavourite(listingID int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return indexByID(s.items, listingID) >= 0
}

// Snapshot возвращает глубокую копию текущего списка.
func (s *FavouritesStore) Snapshot() []domain.Listing {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.snapshotLocked()
}

func (s *FavouritesStore) snapshotLocked() []domain.Listing {
	return domain.CloneListings(s.items)
}

// commit сохраняет next целиком и только после успешной записи делает его текущим.
// Вызывается под s.mu.
func (s *FavouritesStore) commit(ctx context.Context, next []domain.Listing) error {
	body, err := json.Marshal(next)
	if err != nil {
		return fmt.Errorf("failed to encode favourites: %w", err)
	}

	if err := s.kv.Write(ctx, FavouritesKey, string(body)); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to persist favourites, keeping previous state", err, port.Fields{
			"component": "FavouritesStore",
			"key":       FavouritesKey,
		})
		return fmt.Errorf("failed to persist favourites: %w", err)
	}

	s.items = next
	return nil
}

// appendListing копирует список и добавляет в него копию объекта.
func appendListing(items []domain.Listing, listing domain.Listing) []domain.Listing {
	next := make([]domain.Listing, len(items), len(items)+1)
	copy(next, items)
	return append(next, listing.Clone())
}

func removeAt(items []domain.Listing, idx int) []domain.Listing {
	next := make([]domain.Listing, 0, len(items)-1)
	next = append(next, items[:idx]...)
	return append(next, items[idx+1:]...)
}

func indexByID(items []domain.Listing, id int) int {
	for i, item := range items {
		if item.ID == id {
			return i
		}
	}
	return -1
}

// dedupeByID оставляет первое вхождение каждого ID.
func dedupeByID(items []domain.Listing) []domain.Listing {
	seen := make(map[int]struct{}, len(items))
	result := make([]domain.Listing, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		result = append(result, item)
	}
	return result
}
