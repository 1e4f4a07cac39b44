package messaging

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/gofiber/contrib/websocket"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/domain/event"
	"github.com/jhoicas/estoque-api/pkg/logger"
)

var _ inventory.EventPublisher = (*Hub)(nil)

// Client lo que el hub necesita de una conexión (*websocket.Conn lo cumple).
type Client interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// clientQueue es cuántos mensajes puede acumular un cliente antes de ser descartado por lento.
const clientQueue = 16

// peer es un cliente registrado con su cola de salida; un goroutine por peer escribe en la conexión.
type peer struct {
	conn   Client
	send   chan []byte
	exited chan struct{}
}

// unregisterReq pide la baja de c; si reply no es nil recibe el canal que se cierra al terminar su escritor.
type unregisterReq struct {
	c     Client
	reply chan chan struct{}
}

// Hub difunde los eventos a los clientes WebSocket conectados a /ws/estoque.
// Un único goroutine (Run) es dueño del mapa de clientes y nunca escribe en una conexión:
// encola en cada peer sin bloquear y descarta al que tiene la cola llena.
type Hub struct {
	clients    map[Client]*peer
	register   chan Client
	unregister chan unregisterReq
	broadcast  chan []byte
	count      chan chan int
	done       chan struct{}
	log        *logger.Logger
}

// NewHub crea el hub; hay que lanzar Run en un goroutine.
func NewHub(log *logger.Logger) *Hub {
	if log == nil {
		log = logger.Nop()
	}
	return &Hub{
		clients:    make(map[Client]*peer),
		register:   make(chan Client),
		unregister: make(chan unregisterReq),
		broadcast:  make(chan []byte, 64),
		count:      make(chan chan int),
		done:       make(chan struct{}),
		log:        log.Component("ws-hub"),
	}
}

// Run atiende registros, bajas y difusiones hasta que ctx termina; entonces cierra todos los clientes.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			if _, ok := h.clients[c]; ok {
				continue
			}
			p := &peer{conn: c, send: make(chan []byte, clientQueue), exited: make(chan struct{})}
			h.clients[c] = p
			go h.write(p)
			h.log.Debug().Int("clients", len(h.clients)).Msg("cliente ws conectado")

		case req := <-h.unregister:
			exited := h.drop(req.c)
			if req.reply != nil {
				req.reply <- exited
			}

		case msg := <-h.broadcast:
			for c, p := range h.clients {
				select {
				case p.send <- msg:
				default:
					h.log.Warn().Msg("cliente ws lento, desconectado")
					h.drop(c)
				}
			}

		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// drop quita el cliente, termina su escritor y cierra la conexión (desbloquea una escritura en curso).
func (h *Hub) drop(c Client) chan struct{} {
	p, ok := h.clients[c]
	if !ok {
		return nil
	}
	delete(h.clients, c)
	close(p.send)
	_ = c.Close()
	return p.exited
}

// write envía la cola del peer en orden. Ante un error se da de baja y descarta lo pendiente.
func (h *Hub) write(p *peer) {
	defer close(p.exited)
	for msg := range p.send {
		if err := p.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.log.Debug().Err(err).Msg("escritura ws fallida")
			select {
			case h.unregister <- unregisterReq{c: p.conn}:
			case <-h.done:
			}
			for range p.send {
			}
			return
		}
	}
}

// Register agrega un cliente. Si el hub ya terminó, cierra el cliente.
func (h *Hub) Register(c Client) {
	select {
	case h.register <- c:
	case <-h.done:
		_ = c.Close()
	}
}

// Unregister quita y cierra un cliente. Vuelve cuando su escritor terminó, así el llamador
// puede liberar la conexión sin escrituras en curso.
func (h *Hub) Unregister(c Client) {
	reply := make(chan chan struct{}, 1)
	select {
	case h.unregister <- unregisterReq{c: c, reply: reply}:
	case <-h.done:
		return
	}
	if exited := <-reply; exited != nil {
		<-exited
	}
}

// Clients devuelve cuántos clientes hay conectados (0 si el hub terminó).
func (h *Hub) Clients() int {
	reply := make(chan int, 1)
	select {
	case h.count <- reply:
		return <-reply
	case <-h.done:
		return 0
	}
}

// Publish encola el envelope para difusión. Si la cola está llena espera hasta que ctx expire.
func (h *Hub) Publish(ctx context.Context, e event.Envelope) error {
	msg, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("ws: serializar evento %s: %w", e.EventID, err)
	}
	select {
	case h.broadcast <- msg:
		return nil
	case <-h.done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("ws: cola de difusión llena: %w", ctx.Err())
	}
}
