package repository

import (
	"context"

	"brvm-market-api/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// UserRepository defines the interface for user and preferences persistence.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error)
	SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error
	DeletePreferences(ctx context.Context, userID uuid.UUID) error
}

// NewUserRepository creates a new GORM-based user repository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

type userRepository struct {
	db *gorm.DB
}

// Create inserts a new user.
func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// FindByEmail retrieves a user by email. Returns gorm.ErrRecordNotFound when
// no such user exists.
func (r *userRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// FindActiveByID retrieves an active user by id.
func (r *userRepository) FindActiveByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	var user entity.User
	if err := r.db.WithContext(ctx).Where("id = ? AND is_active = ?", id, true).First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// GetPreferences retrieves the stored preferences for a user.
func (r *userRepository) GetPreferences(ctx context.Context, userID uuid.UUID) (*entity.UserPreferences, error) {
	var prefs entity.UserPreferences
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&prefs).Error; err != nil {
		return nil, err
	}
	return &prefs, nil
}

// SavePreferences inserts or updates a user's preferences row.
func (r *userRepository) SavePreferences(ctx context.Context, prefs *entity.UserPreferences) error {
	return r.db.WithContext(ctx).Save(prefs).Error
}

// DeletePreferences removes a user's preferences row.
func (r *userRepository) DeletePreferences(ctx context.Context, userID uuid.UUID) error {
	return r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&entity.UserPreferences{}).Error
}
