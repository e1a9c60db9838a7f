// ABOUTME: Error normalization into a message/title/field-errors/retry shape
// ABOUTME: Normalize is total: any input, including nil, yields a usable Info

package apperror

import (
	"errors"
	"net/http"
)

const (
	MessageUnexpected    = "Ha ocurrido un error inesperado"
	MessageCommunication = "Error de comunicación con el servidor"
	TitleGeneric         = "Error"
)

// Info is what the console shows for a failed operation.
type Info struct {
	Message     string              `json:"message"`
	Title       string              `json:"title,omitempty"`
	FieldErrors map[string][]string `json:"fieldErrors,omitempty"`
	CanRetry    bool                `json:"canRetry"`
}

type statusEntry struct {
	title    string
	message  string
	canRetry bool
}

var statusTable = map[int]statusEntry{
	http.StatusBadRequest:          {"Solicitud Incorrecta", "La solicitud contiene datos incorrectos o incompletos", false},
	http.StatusUnauthorized:        {"No Autorizado", "Debes iniciar sesión para acceder a este recurso", true},
	http.StatusForbidden:           {"Acceso Denegado", "No tienes permisos para realizar esta acción", false},
	http.StatusNotFound:            {"No Encontrado", "El recurso solicitado no fue encontrado", false},
	http.StatusConflict:            {"Conflicto", "El recurso ya existe o hay un conflicto con los datos", false},
	http.StatusUnprocessableEntity: {"Datos Inválidos", "Los datos proporcionados no son válidos", false},
	http.StatusInternalServerError: {"Error del Servidor", "Error interno del servidor. Por favor, inténtalo más tarde", true},
}

var defaultEntry = statusEntry{TitleGeneric, MessageUnexpected, true}

func lookup(status int) statusEntry {
	if e, ok := statusTable[status]; ok {
		return e
	}
	return defaultEntry
}

// Title returns the display title for an HTTP status.
func Title(status int) string { return lookup(status).title }

// retryable applies when the backend supplied its own message.
func retryable(status int) bool {
	return status >= 500 || status == http.StatusUnauthorized || status == http.StatusTooManyRequests
}

// Normalize converts err into an Info. It never panics.
func Normalize(err error) (info Info) {
	defer func() {
		if r := recover(); r != nil {
			info = Info{Message: MessageCommunication, Title: TitleGeneric, CanRetry: true}
		}
	}()

	if err == nil {
		return Info{Message: MessageUnexpected, Title: TitleGeneric, CanRetry: true}
	}

	var n *Normalized
	if errors.As(err, &n) {
		return n.Info
	}

	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindHTTP:
			return fromHTTP(e)
		case KindValidation:
			return Info{
				Message:     lookup(http.StatusUnprocessableEntity).message,
				Title:       lookup(http.StatusUnprocessableEntity).title,
				FieldErrors: e.Fields,
				CanRetry:    false,
			}
		}
	}

	msg := err.Error()
	if msg == "" {
		msg = MessageUnexpected
	}
	return Info{Message: msg, Title: TitleGeneric, CanRetry: true}
}

func fromHTTP(e *Error) Info {
	if be, ok := parseBody(e.Body); ok && be.Message != "" {
		return Info{
			Message:     be.Message,
			Title:       Title(e.Status),
			FieldErrors: parseFieldErrors(be.FieldErrors),
			CanRetry:    retryable(e.Status),
		}
	}
	entry := lookup(e.Status)
	return Info{Message: entry.message, Title: entry.title, CanRetry: entry.canRetry}
}

// Normalized is the error returned from service facades: the display Info
// plus the operation label and the underlying cause.
type Normalized struct {
	Info
	Op  string
	Err error
}

func (n *Normalized) Error() string {
	if n.Op == "" {
		return n.Message
	}
	return n.Op + ": " + n.Message
}

func (n *Normalized) Unwrap() error { return n.Err }

// Wrap normalizes err under an operation label. It returns nil for nil.
func Wrap(op string, err error) error {
	if err == nil {
		return nil
	}
	var n *Normalized
	if errors.As(err, &n) {
		return err
	}
	return &Normalized{Info: Normalize(err), Op: op, Err: err}
}
