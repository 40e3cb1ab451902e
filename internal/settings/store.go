// Package settings holds the singleton integration configuration store.
// Each integration (payments, email, editor, media) has exactly one row;
// loads are cached per process and every save invalidates the cache so a
// read after a write always observes the new values.
package settings

import (
	"errors"
	"log"
	"sync"

	"turbo/internal/models"

	"gorm.io/gorm"
)

// Cache keys, one per singleton type.
const (
	KeyStripe     = "stripe"
	KeyResend     = "resend"
	KeyEditor     = "editor"
	KeyCloudinary = "cloudinary"
)

type Store struct {
	db    *gorm.DB
	mu    sync.RWMutex
	cache map[string]interface{}
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, cache: make(map[string]interface{})}
}

// LoadStripe returns the Stripe configuration row, or an unpersisted
// default instance when none has been saved yet. Loaded instances are
// cached until the next save; callers must treat them as read-only.
func (s *Store) LoadStripe() (*models.StripeConfig, error) {
	if v := s.cached(KeyStripe); v != nil {
		return v.(*models.StripeConfig), nil
	}
	cfg := models.DefaultStripeConfig()
	if err := s.loadRow(KeyStripe, cfg); err != nil {
		return nil, err
	}
	s.put(KeyStripe, cfg)
	return cfg, nil
}

func (s *Store) LoadResend() (*models.ResendConfig, error) {
	if v := s.cached(KeyResend); v != nil {
		return v.(*models.ResendConfig), nil
	}
	cfg := models.DefaultResendConfig()
	if err := s.loadRow(KeyResend, cfg); err != nil {
		return nil, err
	}
	s.put(KeyResend, cfg)
	return cfg, nil
}

func (s *Store) LoadEditor() (*models.EditorConfig, error) {
	if v := s.cached(KeyEditor); v != nil {
		return v.(*models.EditorConfig), nil
	}
	cfg := models.DefaultEditorConfig()
	if err := s.loadRow(KeyEditor, cfg); err != nil {
		return nil, err
	}
	s.put(KeyEditor, cfg)
	return cfg, nil
}

func (s *Store) LoadCloudinary() (*models.CloudinaryConfig, error) {
	if v := s.cached(KeyCloudinary); v != nil {
		return v.(*models.CloudinaryConfig), nil
	}
	cfg := models.DefaultCloudinaryConfig()
	if err := s.loadRow(KeyCloudinary, cfg); err != nil {
		return nil, err
	}
	s.put(KeyCloudinary, cfg)
	return cfg, nil
}

// SaveStripe persists cfg, reusing the existing row so a second row can
// never be created through the store, then drops the cached instance.
func (s *Store) SaveStripe(cfg *models.StripeConfig) error {
	var existing models.StripeConfig
	if err := s.adoptRow(&existing, &cfg.Singleton); err != nil {
		return err
	}
	if err := s.db.Save(cfg).Error; err != nil {
		return err
	}
	s.Invalidate(KeyStripe)
	return nil
}

func (s *Store) SaveResend(cfg *models.ResendConfig) error {
	var existing models.ResendConfig
	if err := s.adoptRow(&existing, &cfg.Singleton); err != nil {
		return err
	}
	if err := s.db.Save(cfg).Error; err != nil {
		return err
	}
	s.Invalidate(KeyResend)
	return nil
}

func (s *Store) SaveEditor(cfg *models.EditorConfig) error {
	var existing models.EditorConfig
	if err := s.adoptRow(&existing, &cfg.Singleton); err != nil {
		return err
	}
	if err := s.db.Save(cfg).Error; err != nil {
		return err
	}
	s.Invalidate(KeyEditor)
	return nil
}

func (s *Store) SaveCloudinary(cfg *models.CloudinaryConfig) error {
	var existing models.CloudinaryConfig
	if err := s.adoptRow(&existing, &cfg.Singleton); err != nil {
		return err
	}
	if err := s.db.Save(cfg).Error; err != nil {
		return err
	}
	s.Invalidate(KeyCloudinary)
	return nil
}

// Invalidate drops one cached singleton.
func (s *Store) Invalidate(key string) {
	s.mu.Lock()
	delete(s.cache, key)
	s.mu.Unlock()
}

// Reset drops every cached singleton.
func (s *Store) Reset() {
	s.mu.Lock()
	s.cache = make(map[string]interface{})
	s.mu.Unlock()
}

// loadRow reads the lowest-id row of dest's table into dest, leaving dest
// untouched when the table is empty. More than one row should be
// structurally impossible, but direct database edits can produce it; the
// store picks deterministically and reports rather than failing.
func (s *Store) loadRow(key string, dest interface{}) error {
	var count int64
	if err := s.db.Model(dest).Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return nil
	}
	if count > 1 {
		log.Printf("[settings] %s: %d rows present, using lowest id", key, count)
	}
	return s.db.Order("id ASC").First(dest).Error
}

// adoptRow loads the current persisted row (lowest id) into existing and
// points row at it, so the following Save updates that row instead of
// inserting a second one. existing must be a zero-value model instance.
func (s *Store) adoptRow(existing interface{ RowMeta() models.Singleton }, row *models.Singleton) error {
	err := s.db.Order("id ASC").First(existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row.SetID(0)
		return nil
	}
	if err != nil {
		return err
	}
	meta := existing.RowMeta()
	row.SetID(meta.ID)
	row.CreatedAt = meta.CreatedAt
	return nil
}

func (s *Store) cached(key string) interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cache[key]
}

func (s *Store) put(key string, v interface{}) {
	s.mu.Lock()
	s.cache[key] = v
	s.mu.Unlock()
}
