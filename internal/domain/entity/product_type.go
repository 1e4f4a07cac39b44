package entity

import "time"

// ProductType agrupa productos del catálogo (ej. "Eletrônico", "Móvel").
// El nombre es único y no puede quedar vacío.
type ProductType struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
