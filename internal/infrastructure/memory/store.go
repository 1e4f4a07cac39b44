// Package memory implementa los repositorios en memoria.
//
// Las transacciones (Store.Run) acumulan escrituras y las aplican juntas al confirmar.
// GetForUpdate toma un lock por producto que se mantiene hasta el fin de la transacción,
// de modo que movimientos concurrentes sobre el mismo producto se serializan y los de
// productos distintos no se esperan entre sí. Update y Delete de catálogo toman el mismo lock.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/entity"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
)

var _ inventory.TxRunner = (*Store)(nil)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu        sync.RWMutex
	types     map[string]*entity.ProductType
	products  map[string]*entity.Product
	movements []*entity.StockMovement

	locksMu sync.Mutex
	locks   map[string]chan struct{}
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		types:    map[string]*entity.ProductType{},
		products: map[string]*entity.Product{},
		locks:    map[string]chan struct{}{},
	}
}

// Products repositorio de productos fuera de transacción.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// ProductTypes repositorio de tipos de producto.
func (s *Store) ProductTypes() *ProductTypeRepo { return &ProductTypeRepo{s: s} }

// Movements libro de movimientos fuera de transacción.
func (s *Store) Movements() *StockMovementRepo { return &StockMovementRepo{s: s} }

// Reports consultas agregadas.
func (s *Store) Reports() *ReportRepo { return &ReportRepo{s: s} }

// Run ejecuta fn con repositorios atados a una transacción nueva.
// Si fn devuelve error nada de lo escrito se aplica.
func (s *Store) Run(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
) error) error {
	tx := &txState{s: s, products: map[string]*entity.Product{}}
	defer tx.release()

	if err := fn(&ProductRepo{s: s, tx: tx}, &StockMovementRepo{s: s, tx: tx}); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	tx.commit()
	return nil
}

// productLock devuelve el semáforo del producto (canal de capacidad 1), creándolo si hace falta.
func (s *Store) productLock(id string) chan struct{} {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.locks[id]
	if !ok {
		l = make(chan struct{}, 1)
		s.locks[id] = l
	}
	return l
}

// withProductLock ejecuta fn con el lock del producto tomado. Update y Delete fuera de una
// transacción esperan así a que termine el movimiento en curso, igual que un UPDATE/DELETE
// de PostgreSQL espera la fila bloqueada con FOR UPDATE.
func (s *Store) withProductLock(ctx context.Context, id string, fn func() error) error {
	l := s.productLock(id)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-l }()
	return fn()
}

// txState escrituras pendientes y locks tomados por una transacción.
type txState struct {
	s         *Store
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	held      []chan struct{}
	heldIDs   map[string]bool
}

func (tx *txState) lock(ctx context.Context, productID string) error {
	if tx.heldIDs[productID] {
		return nil
	}
	l := tx.s.productLock(productID)
	select {
	case l <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	if tx.heldIDs == nil {
		tx.heldIDs = map[string]bool{}
	}
	tx.heldIDs[productID] = true
	tx.held = append(tx.held, l)
	return nil
}

func (tx *txState) commit() {
	tx.s.mu.Lock()
	defer tx.s.mu.Unlock()
	for id, p := range tx.products {
		tx.s.products[id] = p
	}
	tx.s.movements = append(tx.s.movements, tx.movements...)
	tx.products = nil
	tx.movements = nil
}

func (tx *txState) release() {
	for _, l := range tx.held {
		<-l
	}
	tx.held = nil
	tx.heldIDs = nil
}

func cloneProduct(p *entity.Product) *entity.Product {
	c := *p
	return &c
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	c := *m
	if m.SaleValue != nil {
		v := *m.SaleValue
		c.SaleValue = &v
	}
	return &c
}

func sortProducts(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if !list[i].CreatedAt.Equal(list[j].CreatedAt) {
			return list[i].CreatedAt.Before(list[j].CreatedAt)
		}
		return list[i].ID < list[j].ID
	})
}

func sortByDescription(list []*entity.Product) {
	sort.SliceStable(list, func(i, j int) bool {
		if list[i].Description != list[j].Description {
			return list[i].Description < list[j].Description
		}
		return list[i].ID < list[j].ID
	})
}
