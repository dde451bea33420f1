package repository

import (
	"strconv"

	"posbackend/entity"

	"gorm.io/gorm"
)

type MenuRepository struct{ DB *gorm.DB }

func NewMenuRepository(db *gorm.DB) *MenuRepository { return &MenuRepository{DB: db} }

func (r *MenuRepository) List(category string) ([]entity.MenuItem, error) {
	var items []entity.MenuItem
	q := r.DB.Model(&entity.MenuItem{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("category, name").Find(&items).Error
	return items, err
}

func (r *MenuRepository) FindByID(id uint) (*entity.MenuItem, error) {
	var m entity.MenuItem
	if err := r.DB.First(&m, id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MenuRepository) Create(m *entity.MenuItem) error {
	return r.DB.Create(m).Error
}

func (r *MenuRepository) Update(m *entity.MenuItem) error {
	return r.DB.Save(m).Error
}

func (r *MenuRepository) Delete(id uint) error {
	return r.DB.Delete(&entity.MenuItem{}, id).Error
}

// Lookup satisfies normalize.Catalog so bare item references in foreign order
// records can resolve against the local menu.
func (r *MenuRepository) Lookup(id string) (string, float64, bool) {
	n, err := strconv.ParseUint(id, 10, 64)
	if err != nil {
		var m entity.MenuItem
		if err := r.DB.Where("name = ?", id).First(&m).Error; err != nil {
			return "", 0, false
		}
		return m.Name, m.Price, true
	}
	m, err := r.FindByID(uint(n))
	if err != nil {
		return "", 0, false
	}
	return m.Name, m.Price, true
}
