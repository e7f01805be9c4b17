package validate

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// FieldError is one per-field validation failure, serialized in the
// error envelope's "detalhes" list.
type FieldError struct {
	Campo    string `json:"campo"`
	Mensagem string `json:"mensagem"`
}

var v = newValidator()

func newValidator() *validator.Validate {
	val := validator.New()
	// Report fields by their wire name, not the Go name.
	val.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return val
}

// LoginRequest is the POST /api/auth/login payload.
type LoginRequest struct {
	Username string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password string `json:"password" validate:"required,min=6"`
}

// CreateUserRequest is the POST /api/auth/register payload. The access
// level defaults to employee when omitted.
type CreateUserRequest struct {
	Username    string `json:"username" validate:"required,alphanum,min=3,max=30"`
	Password    string `json:"password" validate:"required,min=6"`
	NivelAcesso string `json:"nivel_acesso" validate:"omitempty,oneof=funcionario administrador"`
}

// Normalize applies payload defaults.
func (r *CreateUserRequest) Normalize() {
	if r.NivelAcesso == "" {
		r.NivelAcesso = "funcionario"
	}
}

// CheckoutRequest is the POST /api/rooms/:id/checkout payload.
type CheckoutRequest struct {
	TipoChave   string `json:"tipo_chave" validate:"required,oneof=principal reserva"`
	NomePessoa  string `json:"nome_pessoa" validate:"required,min=2"`
	Observacoes string `json:"observacoes" validate:"omitempty,max=500"`
}

// ReturnRequest is the POST /api/rooms/:id/checkin payload.
type ReturnRequest struct {
	TipoChave string `json:"tipo_chave" validate:"required,oneof=principal reserva"`
}

// Check validates any request struct and returns the list of per-field
// errors, or nil when the payload is valid. Pure: no I/O.
func Check(payload interface{}) []FieldError {
	err := v.Struct(payload)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return []FieldError{{Campo: "", Mensagem: err.Error()}}
	}

	out := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		out = append(out, FieldError{Campo: fe.Field(), Mensagem: message(fe)})
	}
	return out
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "campo obrigatório"
	case "min":
		return fmt.Sprintf("deve ter no mínimo %s caracteres", fe.Param())
	case "max":
		return fmt.Sprintf("deve ter no máximo %s caracteres", fe.Param())
	case "alphanum":
		return "deve conter apenas letras e números"
	case "oneof":
		return fmt.Sprintf("deve ser um de: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	default:
		return "valor inválido"
	}
}
