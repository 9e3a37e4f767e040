package category

import (
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID    string `gorm:"type:varchar(36);primaryKey" json:"id"`
	Name  string `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Icon  string `gorm:"type:varchar(50)" json:"icon,omitempty"`
	Color string `gorm:"type:varchar(20)" json:"color,omitempty"`
}

func (Category) TableName() string {
	return "categories"
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}
