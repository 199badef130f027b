package notify

import "context"

// Notifier entrega un mensaje corto (SMS, webhook, log) a un contacto.
// Es best-effort: quien llama registra el error y sigue.
type Notifier interface {
	Send(ctx context.Context, contact, message string) error
}
