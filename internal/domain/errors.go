package domain

import (
	"errors"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrUserNotFound       = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists = errors.New("el email ya está registrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
)

// ErrorKind clasifica los errores del flujo de disponibilidad/publicación.
type ErrorKind string

const (
	KindIneligibleTransition      ErrorKind = "INELIGIBLE_TRANSITION"
	KindInvalidRejection          ErrorKind = "INVALID_REJECTION"
	KindNotFound                  ErrorKind = "NOT_FOUND"
	KindAlreadyResolved           ErrorKind = "ALREADY_RESOLVED"
	KindConflictingPendingRequest ErrorKind = "CONFLICTING_PENDING_REQUEST"
)

// WorkflowError error estructurado (tipo + motivos) para que la capa HTTP
// pueda mostrar un mensaje por motivo.
type WorkflowError struct {
	Kind    ErrorKind
	Reasons []string
}

// Sentinelas para comparar con errors.Is (la comparación es por Kind).
var (
	ErrIneligibleTransition      = &WorkflowError{Kind: KindIneligibleTransition}
	ErrInvalidRejection          = &WorkflowError{Kind: KindInvalidRejection}
	ErrAlreadyResolved           = &WorkflowError{Kind: KindAlreadyResolved}
	ErrConflictingPendingRequest = &WorkflowError{Kind: KindConflictingPendingRequest}
)

// NewWorkflowError construye un WorkflowError con los motivos dados.
func NewWorkflowError(kind ErrorKind, reasons ...string) *WorkflowError {
	return &WorkflowError{Kind: kind, Reasons: reasons}
}

// Ineligible atajo para KindIneligibleTransition.
func Ineligible(reasons ...string) *WorkflowError {
	return NewWorkflowError(KindIneligibleTransition, reasons...)
}

func (e *WorkflowError) Error() string {
	if len(e.Reasons) == 0 {
		return strings.ToLower(string(e.Kind))
	}
	return strings.ToLower(string(e.Kind)) + ": " + strings.Join(e.Reasons, "; ")
}

// Is compara por Kind. Un WorkflowError NOT_FOUND también satisface errors.Is(err, ErrNotFound).
func (e *WorkflowError) Is(target error) bool {
	if target == ErrNotFound {
		return e.Kind == KindNotFound
	}
	t, ok := target.(*WorkflowError)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// ReasonsOf devuelve los motivos si err es (o envuelve) un WorkflowError.
func ReasonsOf(err error) []string {
	var we *WorkflowError
	if errors.As(err, &we) {
		return we.Reasons
	}
	return nil
}
