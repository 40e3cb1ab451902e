package repository

import (
	"turbo/internal/models"

	"gorm.io/gorm"
)

// TaxonomyRepository manages blog categories and tags.
type TaxonomyRepository struct {
	db *gorm.DB
}

func NewTaxonomyRepository(db *gorm.DB) *TaxonomyRepository {
	return &TaxonomyRepository{db: db}
}

func (r *TaxonomyRepository) CreateCategory(c *models.Category) error {
	return r.db.Create(c).Error
}

func (r *TaxonomyRepository) UpdateCategory(c *models.Category) error {
	return r.db.Save(c).Error
}

func (r *TaxonomyRepository) DeleteCategory(id uint) error {
	return r.db.Delete(&models.Category{}, id).Error
}

func (r *TaxonomyRepository) GetCategoryByID(id uint) (*models.Category, error) {
	var c models.Category
	if err := r.db.First(&c, id).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TaxonomyRepository) GetCategoryBySlug(slug string) (*models.Category, error) {
	var c models.Category
	if err := r.db.Where("slug = ?", slug).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *TaxonomyRepository) ListCategories() ([]models.Category, error) {
	var list []models.Category
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

func (r *TaxonomyRepository) CreateTag(t *models.Tag) error {
	return r.db.Create(t).Error
}

func (r *TaxonomyRepository) DeleteTag(id uint) error {
	return r.db.Delete(&models.Tag{}, id).Error
}

func (r *TaxonomyRepository) ListTags() ([]models.Tag, error) {
	var list []models.Tag
	err := r.db.Order("name ASC").Find(&list).Error
	return list, err
}

// GetTagsByIDs returns the tags for the given ids (missing ids are skipped).
func (r *TaxonomyRepository) GetTagsByIDs(ids []uint) ([]models.Tag, error) {
	var list []models.Tag
	if len(ids) == 0 {
		return list, nil
	}
	err := r.db.Where("id IN ?", ids).Find(&list).Error
	return list, err
}
