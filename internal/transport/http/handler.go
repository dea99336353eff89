package http

import (
	"net/http"

	"github.com/qwisky/relay-service/internal/domain"
	"github.com/qwisky/relay-service/pkg/httputil"
)

// PresenceReader — read-only взгляд коллабораторов на онлайн-статусы.
type PresenceReader interface {
	Snapshot() []domain.Presence
}

type Handler struct {
	presence PresenceReader
}

func NewHandler(presence PresenceReader) *Handler {
	return &Handler{presence: presence}
}

// GET /presence — снапшот известных реле статусов.
func (h *Handler) Presence(w http.ResponseWriter, r *http.Request) {
	httputil.OK(w, h.presence.Snapshot())
}
