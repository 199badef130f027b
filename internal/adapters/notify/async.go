package notify

import (
	"context"
	"sync"
	"time"

	"app-vet/internal/platform/logger"
	ports "app-vet/internal/ports/notify"
)

// Async entrega en segundo plano con un contexto propio. Send nunca falla;
// los errores quedan en el log.
type Async struct {
	next    ports.Notifier
	timeout time.Duration
	log     logger.Logger
	wg      sync.WaitGroup
}

func NewAsync(next ports.Notifier, timeout time.Duration, log logger.Logger) *Async {
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	if log == nil {
		log = logger.Nop()
	}
	return &Async{next: next, timeout: timeout, log: log}
}

func (a *Async) Send(ctx context.Context, contact, message string) error {
	// El request puede terminar antes que la entrega.
	base := context.WithoutCancel(ctx)

	a.wg.Add(1)
	go func() {
		defer a.wg.Done()

		sendCtx, cancel := context.WithTimeout(base, a.timeout)
		defer cancel()

		if err := a.next.Send(sendCtx, contact, message); err != nil {
			a.log.Warn("async notification failed", logger.Fields{
				"contact": contact,
				"error":   err,
			})
		}
	}()
	return nil
}

// Wait espera los envíos pendientes o hasta que ctx expire.
func (a *Async) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		a.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
