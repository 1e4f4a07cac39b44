package inventory

// AlertKind clasificación del nivel de stock después de un movimiento.
type AlertKind string

const (
	AlertNone       AlertKind = ""
	AlertLow        AlertKind = "ESTOQUE_BAIXO"
	AlertCritical   AlertKind = "ESTOQUE_CRITICO"
	AlertOutOfStock AlertKind = "ESTOQUE_ESGOTADO"
)

// Thresholds umbrales de alerta (inclusive).
type Thresholds struct {
	Critical int
	Low      int
}

// DefaultThresholds 5 unidades = crítico, 10 unidades = bajo.
var DefaultThresholds = Thresholds{Critical: 5, Low: 10}

// Classify devuelve el tipo de alerta para una cantidad en stock.
func (t Thresholds) Classify(quantity int) AlertKind {
	switch {
	case quantity <= 0:
		return AlertOutOfStock
	case quantity <= t.Critical:
		return AlertCritical
	case quantity <= t.Low:
		return AlertLow
	}
	return AlertNone
}

// Priority prioridad asociada a la alerta.
func (k AlertKind) Priority() string {
	switch k {
	case AlertOutOfStock:
		return "HIGH"
	case AlertCritical:
		return "CRITICAL"
	case AlertLow:
		return "MEDIUM"
	}
	return ""
}

// ImmediateAction indica si la alerta requiere reposición inmediata.
func (k AlertKind) ImmediateAction() bool {
	return k == AlertOutOfStock || k == AlertCritical
}

// Threshold umbral que disparó la alerta.
func (t Thresholds) Threshold(k AlertKind) int {
	switch k {
	case AlertCritical:
		return t.Critical
	case AlertLow:
		return t.Low
	}
	return 0
}
