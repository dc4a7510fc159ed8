package notify

import "context"

// Message es un aviso por email al solicitante.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier entrega avisos. Los errores no deben abortar la operación que lo llama.
type Notifier interface {
	Notify(ctx context.Context, msg Message) error
}
