package repository

import (
	"context"
	"time"

	"petcarehub/internal/domain"

	"gorm.io/gorm"
)

type PetRepository struct {
	db *gorm.DB
}

func NewPetRepository(db *gorm.DB) *PetRepository {
	return &PetRepository{db: db}
}

type petModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	OwnerID   int64     `gorm:"column:owner_id;index"`
	Name      string    `gorm:"column:name"`
	Species   string    `gorm:"column:species"`
	Breed     *string   `gorm:"column:breed"`
	Age       int       `gorm:"column:age"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (petModel) TableName() string { return "pets" }

func toDomainPet(m petModel) *domain.Pet {
	var breed string
	if m.Breed != nil {
		breed = *m.Breed
	}

	return &domain.Pet{
		ID:        m.ID,
		OwnerID:   m.OwnerID,
		Name:      m.Name,
		Species:   m.Species,
		Breed:     breed,
		Age:       m.Age,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func toPetModel(p *domain.Pet) petModel {
	var breed *string
	if p.Breed != "" {
		v := p.Breed
		breed = &v
	}

	return petModel{
		ID:        p.ID,
		OwnerID:   p.OwnerID,
		Name:      p.Name,
		Species:   p.Species,
		Breed:     breed,
		Age:       p.Age,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

func (r *PetRepository) Create(ctx context.Context, p *domain.Pet) error {
	m := toPetModel(p)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainPet(m)
	return nil
}

func (r *PetRepository) GetByID(ctx context.Context, id int64) (*domain.Pet, error) {
	var m petModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainPet(m), nil
}

func (r *PetRepository) GetByOwnerID(ctx context.Context, ownerID int64) ([]domain.Pet, error) {
	var rows []petModel
	tx := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Pet, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainPet(m))
	}
	return out, nil
}

func (r *PetRepository) Update(ctx context.Context, p *domain.Pet) error {
	m := toPetModel(p)
	return r.db.WithContext(ctx).Model(&petModel{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":    m.Name,
		"species": m.Species,
		"breed":   m.Breed,
		"age":     m.Age,
	}).Error
}

func (r *PetRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&petModel{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
