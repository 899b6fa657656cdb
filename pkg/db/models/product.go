package models

import "time"

// Product is a catalog item. Its category is cleared when the category is deleted.
type Product struct {
	ID          uint             `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string           `gorm:"column:name;size:200;not null"`
	CategoryID  *uint            `gorm:"column:category_id;index"`
	Category    *Category        `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL"`
	Description string           `gorm:"column:description;type:text;not null"`
	IsActive    bool             `gorm:"column:is_active;not null"`
	Variants    []ProductVariant `gorm:"foreignKey:ProductID;constraint:OnDelete:CASCADE"`
	CreatedAt   time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Product) TableName() string { return "products" }

func (p Product) String() string { return p.Name }
