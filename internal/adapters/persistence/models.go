package persistence

import (
	"time"
)

// BodyModel represents the bodies table
type BodyModel struct {
	ID        string    `gorm:"column:id;primaryKey"`
	Kind      string    `gorm:"column:kind;not null"`
	Position  int       `gorm:"column:position;not null;default:0"` // listing order
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (BodyModel) TableName() string {
	return "bodies"
}

// DistanceModel represents the distances table. BodyA < BodyB always holds.
type DistanceModel struct {
	BodyA     string     `gorm:"column:body_a;primaryKey"`
	BodyB     string     `gorm:"column:body_b;primaryKey"`
	A         *BodyModel `gorm:"foreignKey:BodyA;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	B         *BodyModel `gorm:"foreignKey:BodyB;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	Value     float64    `gorm:"column:value;not null"`
	UpdatedAt time.Time  `gorm:"column:updated_at;not null"`
}

func (DistanceModel) TableName() string {
	return "distances"
}
