package repo

import (
	"pubboard/app/models"

	"gorm.io/gorm"
)

type PublicationRepository struct{ db *gorm.DB }

func NewPublicationRepository(db *gorm.DB) *PublicationRepository {
	return &PublicationRepository{db: db}
}

func (r *PublicationRepository) Create(p *models.Publication) error { return r.db.Create(p).Error }

func (r *PublicationRepository) GetByID(id uint) (*models.Publication, error) {
	var p models.Publication
	if err := r.db.First(&p, id).Error; err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PublicationRepository) ListAll() ([]models.Publication, error) {
	var posts []models.Publication
	err := r.db.Order("id").Find(&posts).Error
	return posts, err
}

func (r *PublicationRepository) ListByUser(userID uint) ([]models.Publication, error) {
	var posts []models.Publication
	err := r.db.Where("user_id = ?", userID).Order("id").Find(&posts).Error
	return posts, err
}

func (r *PublicationRepository) Updates(p *models.Publication, fields map[string]any) error {
	return r.db.Model(p).Updates(fields).Error
}

func (r *PublicationRepository) Delete(p *models.Publication) error { return r.db.Delete(p).Error }
