package domain

// CardRepository defines the interface for card persistence.
// Boards are insert-only, so there is no Update or Delete.
type CardRepository interface {
	// Insert stores a new card and assigns its ID
	Insert(card *Card) error

	// FindBySession returns a session's cards, most recently inserted first
	FindBySession(sessionID string) ([]*Card, error)

	// CountBySession returns the number of cards on a session's board
	CountBySession(sessionID string) (int64, error)
}
