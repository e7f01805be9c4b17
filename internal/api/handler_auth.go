package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"keycontrol-backend/internal/auth"
	"keycontrol-backend/internal/model"
	"keycontrol-backend/internal/mw"
	"keycontrol-backend/internal/validate"
)

// Login handles POST /api/auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req validate.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dados de entrada inválidos")
		return
	}
	if errs := validate.Check(&req); errs != nil {
		failValidation(c, errs)
		return
	}

	ip := c.ClientIP()
	if !h.guard.Allow(ip) {
		fail(c, http.StatusTooManyRequests, "Muitas tentativas de login. Tente novamente em alguns minutos.")
		return
	}

	user, token, err := h.auth.Authenticate(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			h.guard.RecordFailure(ip)
			fail(c, http.StatusUnauthorized, "Credenciais inválidas")
			return
		}
		failStore(c, err)
		return
	}
	h.guard.Reset(ip)

	c.JSON(http.StatusOK, gin.H{
		"sucesso":  true,
		"mensagem": "Login realizado com sucesso",
		"usuario":  user,
		"token":    token,
	})
}

// Verify handles POST /api/auth/verify. The auth middleware already
// validated the token and loaded the user.
func (h *Handler) Verify(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"sucesso": true,
		"usuario": mw.CurrentUser(c),
	})
}

// Register handles POST /api/auth/register (administrators only).
func (h *Handler) Register(c *gin.Context) {
	var req validate.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, "Dados de entrada inválidos")
		return
	}
	if errs := validate.Check(&req); errs != nil {
		failValidation(c, errs)
		return
	}
	req.Normalize()

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		failStore(c, err)
		return
	}

	user := &model.User{
		ID:           uuid.NewString(),
		Username:     req.Username,
		PasswordHash: hash,
		NivelAcesso:  model.AccessLevel(req.NivelAcesso),
	}
	if err := h.store.CreateUser(c.Request.Context(), user); err != nil {
		failStore(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sucesso":  true,
		"mensagem": "Usuário criado com sucesso",
		"usuario":  user,
	})
}
