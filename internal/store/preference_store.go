package store

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/sirupsen/logrus"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/models"
	"github.com/fhiwniwxnms/TyvaRepublicTravelBot/internal/prefs"
)

// PreferenceStore persists one preference document per chat user. Documents
// are written whole; the row update is the atomicity boundary per user.
type PreferenceStore struct {
	db *gorm.DB
}

func NewPreferenceStore(db *gorm.DB) *PreferenceStore {
	return &PreferenceStore{db: db}
}

// EnsureUser creates the chat user on first contact and refreshes the
// display name when it changed.
func (s *PreferenceStore) EnsureUser(ctx context.Context, chatID int64, name string) (models.User, error) {
	var user models.User
	err := s.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		user = models.User{ChatID: &chatID, Name: name, Role: "traveler"}
		err = s.db.WithContext(ctx).Create(&user).Error
	}
	if err != nil {
		return models.User{}, err
	}
	if name != "" && user.Name != name {
		user.Name = name
		if err := s.db.WithContext(ctx).Model(&user).Update("name", name).Error; err != nil {
			return models.User{}, err
		}
	}
	return user, nil
}

// Get returns the user's document, or an empty default for a chat id never
// seen before (the user row is created as a side effect).
func (s *PreferenceStore) Get(ctx context.Context, chatID int64) (prefs.Document, error) {
	user, err := s.EnsureUser(ctx, chatID, "")
	if err != nil {
		return prefs.Document{}, err
	}
	if len(user.Preferences) == 0 {
		return prefs.Document{}, nil
	}
	var doc prefs.Document
	if err := json.Unmarshal(user.Preferences, &doc); err != nil {
		// A corrupt document is unrecoverable; start the user over.
		logrus.WithError(err).WithField("chat_id", chatID).Warn("discarding unreadable preference document")
		return prefs.Document{}, nil
	}
	return doc, nil
}

// Save overwrites the user's document in a single row update.
func (s *PreferenceStore) Save(ctx context.Context, chatID int64, doc prefs.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	if _, err := s.EnsureUser(ctx, chatID, ""); err != nil {
		return err
	}
	return s.db.WithContext(ctx).
		Model(&models.User{}).
		Where("chat_id = ?", chatID).
		Update("preferences", datatypes.JSON(raw)).Error
}
