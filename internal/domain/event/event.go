// Package event define los eventos de dominio publicados hacia sistemas externos.
//
// Cada evento viaja en un Envelope cuyo campo EventType es el discriminante;
// Decode selecciona el tipo concreto del payload según ese campo.
package event

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Type discriminante del evento.
type Type string

const (
	TypeMovementPosted Type = "MOVIMENTO_ESTOQUE"
	TypeStockAlert     Type = "ALERTA_ESTOQUE"
	TypeProductChanged Type = "PRODUTO_EVENT"
)

// Version versión del contrato del envelope.
const Version = "1.0"

// Envelope forma de transporte de todos los eventos.
type Envelope struct {
	EventID   string          `json:"eventId"`
	EventType Type            `json:"eventType"`
	Timestamp time.Time       `json:"timestamp"`
	Version   string          `json:"version"`
	UserID    string          `json:"userId,omitempty"`
	Key       string          `json:"-"` // clave de partición (ej. produto-<id>)
	Payload   json.RawMessage `json:"payload"`
}

// Payload lo implementan los tipos concretos de evento.
type Payload interface {
	EventType() Type
	PartitionKey() string
}

// MovementPosted se emite tras confirmar un movimiento de stock.
type MovementPosted struct {
	MovementID      string           `json:"movimentoId"`
	ProductID       string           `json:"produtoId"`
	Description     string           `json:"produtoDescricao"`
	MovementType    string           `json:"tipoMovimentacao"`
	Quantity        int              `json:"quantidadeMovimentada"`
	SaleValue       *decimal.Decimal `json:"valorVenda,omitempty"`
	SupplierValue   decimal.Decimal  `json:"valorFornecedor"`
	PreviousStock   int              `json:"estoqueAnterior"`
	CurrentStock    int              `json:"estoqueAtual"`
	MovedAt         time.Time        `json:"dataMovimento"`
	Profit          *decimal.Decimal `json:"lucro,omitempty"`
	ProductTypeName string           `json:"tipoProduto,omitempty"`
}

func (MovementPosted) EventType() Type        { return TypeMovementPosted }
func (p MovementPosted) PartitionKey() string { return "produto-" + p.ProductID }

// StockAlert se emite cuando el stock queda en nivel bajo, crítico o agotado.
type StockAlert struct {
	AlertType       string `json:"tipoAlerta"`
	ProductID       string `json:"produtoId"`
	Description     string `json:"produtoDescricao"`
	CurrentStock    int    `json:"quantidadeAtual"`
	Threshold       int    `json:"quantidadeMinima"`
	Priority        string `json:"prioridade"`
	Message         string `json:"mensagem"`
	ImmediateAction bool   `json:"acaoImediata"`
}

func (StockAlert) EventType() Type        { return TypeStockAlert }
func (p StockAlert) PartitionKey() string { return "alerta-produto-" + p.ProductID }

// Acciones de ProductChanged.
const (
	ActionCreated = "CREATED"
	ActionUpdated = "UPDATED"
	ActionDeleted = "DELETED"
)

// ProductChanged se emite en altas, cambios y bajas del catálogo.
type ProductChanged struct {
	Action         string          `json:"action"`
	ProductID      string          `json:"produtoId"`
	Description    string          `json:"descricao"`
	SupplierValue  decimal.Decimal `json:"valorFornecedor"`
	QuantityOnHand int             `json:"quantidadeEmEstoque"`
	ProductTypeID  string          `json:"tipoProdutoId"`
}

func (ProductChanged) EventType() Type        { return TypeProductChanged }
func (p ProductChanged) PartitionKey() string { return "produto-" + p.ProductID }

// New envuelve un payload con id, timestamp y versión.
func New(p Payload, userID string) (Envelope, error) {
	raw, err := json.Marshal(p)
	if err != nil {
		return Envelope{}, fmt.Errorf("event: serializar payload %s: %w", p.EventType(), err)
	}
	return Envelope{
		EventID:   uuid.New().String(),
		EventType: p.EventType(),
		Timestamp: time.Now().UTC(),
		Version:   Version,
		UserID:    userID,
		Key:       p.PartitionKey(),
		Payload:   raw,
	}, nil
}

// Decode devuelve el payload concreto según EventType.
func Decode(e Envelope) (Payload, error) {
	var (
		p   Payload
		err error
	)
	switch e.EventType {
	case TypeMovementPosted:
		var v MovementPosted
		err = json.Unmarshal(e.Payload, &v)
		p = v
	case TypeStockAlert:
		var v StockAlert
		err = json.Unmarshal(e.Payload, &v)
		p = v
	case TypeProductChanged:
		var v ProductChanged
		err = json.Unmarshal(e.Payload, &v)
		p = v
	default:
		return nil, fmt.Errorf("event: tipo desconocido %q", e.EventType)
	}
	if err != nil {
		return nil, fmt.Errorf("event: decodificar %s: %w", e.EventType, err)
	}
	return p, nil
}
