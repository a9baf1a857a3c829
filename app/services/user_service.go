package services

import (
	"errors"

	"pubboard/app/models"
	"pubboard/app/repo"
	"pubboard/app/storage"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	users  *repo.UserRepository
	photos *storage.Store
}

func NewUserService(users *repo.UserRepository, photos *storage.Store) *UserService {
	return &UserService{users: users, photos: photos}
}

// Register creates a user with a hashed password and, when a photo payload
// is supplied, a stored avatar. The read-then-write email check yields the
// domain conflict; the unique index backstops the race.
func (s *UserService) Register(fullname, email, password, photoB64 string) (*models.User, error) {
	existing, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	u := &models.User{Fullname: fullname, Email: email, Password: string(hash)}
	if photoB64 != "" {
		name, err := s.photos.Save(photoB64)
		if err != nil {
			return nil, err
		}
		u.Photo = &name
	}

	if err := s.users.Create(u); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return u, nil
}

func (s *UserService) ValidateCredentials(email, password string) (*models.User, error) {
	u, err := s.users.FindByEmail(email)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, ErrUnknownEmail
	}
	if bcrypt.CompareHashAndPassword([]byte(u.Password), []byte(password)) != nil {
		return nil, ErrWrongPassword
	}
	return u, nil
}

func (s *UserService) GetByID(id uint) (*models.User, error) {
	u, err := s.users.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (s *UserService) ListAll() ([]models.User, error) { return s.users.ListAll() }

// Update applies validated fields to u. Passwords are re-hashed, photos
// re-stored (replacing the old file), and an email change is re-checked
// for uniqueness against other accounts.
func (s *UserService) Update(u *models.User, data map[string]any) (*models.User, error) {
	updates := make(map[string]any, len(data))
	for name, raw := range data {
		value := raw.(string)
		switch name {
		case "password":
			hash, err := bcrypt.GenerateFromPassword([]byte(value), bcrypt.DefaultCost)
			if err != nil {
				return nil, err
			}
			updates["password"] = string(hash)
		case "photo":
			filename, err := s.photos.Save(value)
			if err != nil {
				return nil, err
			}
			if u.Photo != nil {
				s.photos.Remove(*u.Photo)
			}
			updates["photo"] = filename
		case "email":
			other, err := s.users.FindByEmail(value)
			if err != nil {
				return nil, err
			}
			if other != nil && other.ID != u.ID {
				return nil, ErrEmailTaken
			}
			updates["email"] = value
		case "fullname":
			updates["fullname"] = value
		}
	}

	if err := s.users.Updates(u, updates); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}
	return s.GetByID(u.ID)
}

// Delete removes the user and their stored avatar.
func (s *UserService) Delete(u *models.User) error {
	if u.Photo != nil {
		s.photos.Remove(*u.Photo)
	}
	return s.users.Delete(u)
}

// CanMutate allows a user to change only their own account.
func (s *UserService) CanMutate(acting, target *models.User) bool {
	return acting.ID == target.ID
}
