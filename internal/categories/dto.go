package categories

import "github.com/angelmondragon/bakery-catalog/pkg/db/models"

// CategoryDTO is the public category representation.
type CategoryDTO struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewCategoryDTO(m *models.Category) CategoryDTO {
	return CategoryDTO{ID: m.ID, Name: m.Name}
}
