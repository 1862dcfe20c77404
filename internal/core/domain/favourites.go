package domain

// FavouritesAction - что произошло с избранным. Используется в событиях.
type FavouritesAction string

const (
	FavouritesAdded   FavouritesAction = "added"
	FavouritesRemoved FavouritesAction = "removed"
	FavouritesCleared FavouritesAction = "cleared"
)

// FavouritesChange - описание одного изменения избранного вместе с новым снимком.
type FavouritesChange struct {
	Action    FavouritesAction
	ListingID int // 0 для очистки
	Snapshot  []Listing
}
