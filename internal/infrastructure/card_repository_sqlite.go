package infrastructure

import (
	"fmt"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/mediascraper-go/internal/domain"
)

// SQLiteCardRepository implements CardRepository using SQLite
type SQLiteCardRepository struct {
	db *gorm.DB
}

// NewSQLiteCardRepository creates a new SQLite repository. dbPath may be
// ":memory:" for a throwaway board.
func NewSQLiteCardRepository(dbPath string) (*SQLiteCardRepository, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database handle: %w", err)
	}
	// Each ":memory:" connection is a separate database.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(&domain.Card{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return &SQLiteCardRepository{db: db}, nil
}

// Insert stores a new card, assigning its ID
func (r *SQLiteCardRepository) Insert(card *domain.Card) error {
	if card.ID != 0 {
		return fmt.Errorf("card %d already stored", card.ID)
	}
	return r.db.Create(card).Error
}

// FindBySession returns a session's board, newest card first
func (r *SQLiteCardRepository) FindBySession(sessionID string) ([]*domain.Card, error) {
	var cards []*domain.Card
	err := r.db.Where("session_id = ?", sessionID).
		Order("id DESC").
		Find(&cards).Error
	return cards, err
}

// CountBySession counts the cards on a session's board
func (r *SQLiteCardRepository) CountBySession(sessionID string) (int64, error) {
	var count int64
	err := r.db.Model(&domain.Card{}).Where("session_id = ?", sessionID).Count(&count).Error
	return count, err
}

// Close closes the database connection
func (r *SQLiteCardRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
