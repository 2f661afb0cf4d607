package records

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm/clause"

	"github.com/ajakgroup/pqtrack/internal/database"
	"github.com/ajakgroup/pqtrack/internal/models"
)

// Store persists PQ records through GORM. The application keeps an
// in-memory working copy and reloads it after every mutation, so the store
// surface is just upsert/delete/list.
type Store struct {
	db *database.DB
}

// NewStore creates a record store over the shared database handle.
func NewStore(db *database.DB) *Store {
	return &Store{db: db}
}

// Upsert saves a record. The id and creation timestamp are assigned on first
// save and never touched afterwards.
func (s *Store) Upsert(rec *models.PQRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}
	if rec.CreatedAt == 0 {
		rec.CreatedAt = time.Now().UnixMilli()
	}
	if err := s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(rec).Error; err != nil {
		return fmt.Errorf("save record %s: %w", rec.ID, err)
	}
	return nil
}

// Get loads a single record by id.
func (s *Store) Get(id string) (*models.PQRecord, error) {
	var rec models.PQRecord
	if err := s.db.First(&rec, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// Delete removes a record. Attachment objects are the caller's problem; the
// handler cascades them through the storage service before calling this.
func (s *Store) Delete(id string) error {
	if err := s.db.Delete(&models.PQRecord{}, "id = ?", id).Error; err != nil {
		return fmt.Errorf("delete record %s: %w", id, err)
	}
	return nil
}

// List returns every record, most recently created first.
func (s *Store) List() ([]models.PQRecord, error) {
	var recs []models.PQRecord
	if err := s.db.Order("created_at DESC").Find(&recs).Error; err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}
	return recs, nil
}
