package dto

import "time"

// ProductTypeRequest entrada para crear o renombrar un tipo de producto.
type ProductTypeRequest struct {
	Name string `json:"nome" validate:"required,max=100"`
}

// ProductTypeResponse salida de un tipo de producto.
type ProductTypeResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"nome"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
