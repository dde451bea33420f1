package repository

import (
	"posbackend/entity"

	"gorm.io/gorm"
)

type TableRepository struct{ DB *gorm.DB }

func NewTableRepository(db *gorm.DB) *TableRepository { return &TableRepository{DB: db} }

func (r *TableRepository) List() ([]entity.DiningTable, error) {
	var tables []entity.DiningTable
	err := r.DB.Order("table_no").Find(&tables).Error
	return tables, err
}

func (r *TableRepository) FindByID(id uint) (*entity.DiningTable, error) {
	var t entity.DiningTable
	if err := r.DB.First(&t, id).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TableRepository) SetStatus(id uint, status string) error {
	return r.DB.Model(&entity.DiningTable{}).Where("id = ?", id).Update("status", status).Error
}
