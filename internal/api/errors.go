package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"keycontrol-backend/internal/store"
	"keycontrol-backend/internal/validate"
)

// fail writes the error envelope shared by every failure response.
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{"sucesso": false, "erro": msg})
}

// failValidation writes a 400 with the per-field error list.
func failValidation(c *gin.Context, errs []validate.FieldError) {
	c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
		"sucesso":  false,
		"erro":     "Dados de entrada inválidos",
		"detalhes": errs,
	})
}

// failStore maps an unclassified store error to a status code. This is
// the only place operational errors turn into responses, and the only
// place they get logged.
func failStore(c *gin.Context, err error) {
	log.Printf("request failed: %s %s: %v", c.Request.Method, c.Request.URL.Path, err)

	switch store.Classify(err) {
	case store.KindDuplicate:
		fail(c, http.StatusConflict, "Registro duplicado")
	case store.KindUnavailable:
		fail(c, http.StatusServiceUnavailable, "Serviço indisponível")
	default:
		fail(c, http.StatusInternalServerError, "Erro interno do servidor")
	}
}
