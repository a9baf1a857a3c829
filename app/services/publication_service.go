package services

import (
	"errors"

	"pubboard/app/models"
	"pubboard/app/repo"

	"gorm.io/gorm"
)

type PublicationService struct {
	posts *repo.PublicationRepository
}

func NewPublicationService(posts *repo.PublicationRepository) *PublicationService {
	return &PublicationService{posts: posts}
}

// Create builds a publication owned by user from validated fields; absent
// priority and status fall back to the defaults.
func (s *PublicationService) Create(user *models.User, data map[string]any) (*models.Publication, error) {
	p := &models.Publication{
		Title:       data["title"].(string),
		Description: data["description"].(string),
		Priority:    models.PriorityNormal,
		Status:      models.StatusActive,
		UserID:      user.ID,
	}
	if v, ok := data["priority"]; ok {
		p.Priority = v.(string)
	}
	if v, ok := data["status"]; ok {
		p.Status = v.(string)
	}
	if err := s.posts.Create(p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PublicationService) GetByID(id uint) (*models.Publication, error) {
	p, err := s.posts.GetByID(id)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PublicationService) ListAll() ([]models.Publication, error) { return s.posts.ListAll() }

func (s *PublicationService) ListByUser(userID uint) ([]models.Publication, error) {
	return s.posts.ListByUser(userID)
}

// Update applies validated fields; the owner never changes. GORM bumps
// updated_at on the write.
func (s *PublicationService) Update(p *models.Publication, data map[string]any) (*models.Publication, error) {
	updates := make(map[string]any, len(data))
	for _, name := range []string{"title", "description", "priority", "status"} {
		if v, ok := data[name]; ok {
			updates[name] = v.(string)
		}
	}
	if err := s.posts.Updates(p, updates); err != nil {
		return nil, err
	}
	return s.GetByID(p.ID)
}

func (s *PublicationService) Delete(p *models.Publication) error { return s.posts.Delete(p) }

// CanMutate allows only the owner to change or delete a publication.
func (s *PublicationService) CanMutate(user *models.User, p *models.Publication) bool {
	return p.UserID == user.ID
}
