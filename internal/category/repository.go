package category

import (
	"gorm.io/gorm"
)

type Repository interface {
	Create(c *Category) error
	FindByName(name string) (*Category, error)
	FindByID(id string) (*Category, error)
	List() ([]Category, error)
	Delete(id string) error
}

type repository struct{ db *gorm.DB }

func NewRepository(db *gorm.DB) Repository {
	return &repository{db}
}

func (r *repository) Create(c *Category) error {
	return r.db.Create(c).Error
}

func (r *repository) FindByName(name string) (*Category, error) {
	var c Category
	err := r.db.Where("name = ?", name).First(&c).Error
	return &c, err
}

func (r *repository) FindByID(id string) (*Category, error) {
	var c Category
	err := r.db.First(&c, "id = ?", id).Error
	return &c, err
}

func (r *repository) List() ([]Category, error) {
	var categories []Category
	err := r.db.Order("name ASC").Find(&categories).Error
	return categories, err
}

// Delete removes the category together with its event links; the legacy
// single-category reference on events is cleared, not cascaded.
func (r *repository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM event_categories WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		if err := tx.Exec("UPDATE events SET category_id = NULL WHERE category_id = ?", id).Error; err != nil {
			return err
		}
		return tx.Delete(&Category{}, "id = ?", id).Error
	})
}
