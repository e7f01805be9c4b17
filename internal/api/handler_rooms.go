package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"keycontrol-backend/internal/model"
	"keycontrol-backend/internal/mw"
	"keycontrol-backend/internal/store"
	"keycontrol-backend/internal/validate"
)

// ListRooms handles GET /api/rooms: every room with the current holder
// of each key, ordered by room number.
func (h *Handler) ListRooms(c *gin.Context) {
	rooms, err := h.store.ListRoomsWithKeys(c.Request.Context())
	if err != nil {
		failStore(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sucesso": true, "dados": rooms})
}

// CheckoutKey handles POST /api/rooms/:id/checkout.
func (h *Handler) CheckoutKey(c *gin.Context) {
	var req validate.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dados de entrada inválidos")
		return
	}
	if errs := validate.Check(&req); errs != nil {
		failValidation(c, errs)
		return
	}

	record, err := h.store.CheckoutKey(c.Request.Context(), store.CheckoutParams{
		RoomID:     c.Param("id"),
		UserID:     mw.CurrentUser(c).ID,
		Kind:       model.KeyKind(req.TipoChave),
		HolderName: req.NomePessoa,
		Notes:      req.Observacoes,
	})
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			fail(c, http.StatusNotFound, "Sala não encontrada")
		case errors.Is(err, store.ErrKeyNotAvailable):
			fail(c, http.StatusBadRequest, "Chave não disponível")
		default:
			failStore(c, err)
		}
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sucesso":      true,
		"mensagem":     "Chave retirada com sucesso",
		"historico_id": record.ID,
	})
}

// CheckinKey handles POST /api/rooms/:id/checkin.
func (h *Handler) CheckinKey(c *gin.Context) {
	var req validate.ReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dados de entrada inválidos")
		return
	}
	if errs := validate.Check(&req); errs != nil {
		failValidation(c, errs)
		return
	}

	record, err := h.store.ReturnKey(c.Request.Context(), c.Param("id"), model.KeyKind(req.TipoChave))
	if err != nil {
		switch {
		case errors.Is(err, store.ErrRoomNotFound):
			fail(c, http.StatusNotFound, "Sala não encontrada")
		case errors.Is(err, store.ErrNoActiveCheckout):
			fail(c, http.StatusBadRequest, "Chave não está retirada")
		default:
			failStore(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"sucesso":      true,
		"mensagem":     "Chave devolvida com sucesso",
		"historico_id": record.ID,
	})
}
