package credentials

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
)

type GormStore struct {
	db   *gorm.DB
	cost int
}

var _ auth.Credentials = (*GormStore)(nil)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db, cost: bcrypt.DefaultCost}
}

func (s *GormStore) Create(ctx context.Context, email, password string) (auth.Credential, error) {
	var count int64
	if err := s.db.WithContext(ctx).
		Model(&Credential{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return auth.Credential{}, err
	}
	if count > 0 {
		return auth.Credential{}, auth.ErrEmailTaken
	}

	hashed, err := hashPassword(password, s.cost)
	if err != nil {
		return auth.Credential{}, err
	}

	cred := Credential{
		UID:          uuid.NewString(),
		Email:        email,
		PasswordHash: hashed,
	}
	if err := s.db.WithContext(ctx).Create(&cred).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return auth.Credential{}, auth.ErrEmailTaken
		}
		return auth.Credential{}, err
	}
	return toAuth(cred), nil
}

func (s *GormStore) SetDisplayName(ctx context.Context, uid, name string) error {
	return s.update(ctx, uid, "display_name", name)
}

func (s *GormStore) Delete(ctx context.Context, uid string) error {
	return s.db.WithContext(ctx).Delete(&Credential{}, "uid = ?", uid).Error
}

func (s *GormStore) Verify(ctx context.Context, email, password string) (auth.Credential, error) {
	cred, err := s.find(ctx, "email = ?", email)
	if errors.Is(err, auth.ErrCredentialNotFound) {
		return auth.Credential{}, auth.ErrInvalidCredentials
	}
	if err != nil {
		return auth.Credential{}, err
	}
	if !checkPassword(cred.PasswordHash, password) {
		return auth.Credential{}, auth.ErrInvalidCredentials
	}
	return toAuth(cred), nil
}

func (s *GormStore) Get(ctx context.Context, uid string) (auth.Credential, error) {
	cred, err := s.find(ctx, "uid = ?", uid)
	if err != nil {
		return auth.Credential{}, err
	}
	return toAuth(cred), nil
}

func (s *GormStore) Lookup(ctx context.Context, email string) (auth.Credential, error) {
	cred, err := s.find(ctx, "email = ?", email)
	if err != nil {
		return auth.Credential{}, err
	}
	return toAuth(cred), nil
}

func (s *GormStore) SetPassword(ctx context.Context, uid, password string) error {
	hashed, err := hashPassword(password, s.cost)
	if err != nil {
		return err
	}
	return s.update(ctx, uid, "password_hash", hashed)
}

// --------- Helpers ---------

func (s *GormStore) find(ctx context.Context, query string, args ...any) (Credential, error) {
	var cred Credential
	err := s.db.WithContext(ctx).Where(query, args...).First(&cred).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Credential{}, auth.ErrCredentialNotFound
	}
	return cred, err
}

func (s *GormStore) update(ctx context.Context, uid, column string, value any) error {
	res := s.db.WithContext(ctx).
		Model(&Credential{}).
		Where("uid = ?", uid).
		Update(column, value)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return auth.ErrCredentialNotFound
	}
	return nil
}

func toAuth(c Credential) auth.Credential {
	return auth.Credential{
		UID:           c.UID,
		Email:         c.Email,
		DisplayName:   c.DisplayName,
		PasswordStamp: passwordStamp(c.PasswordHash),
	}
}
