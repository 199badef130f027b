package notify

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

var ErrNoContact = errors.New("notify: empty contact")

// SMSLog simula el envío de SMS agregando una línea por mensaje a un archivo.
type SMSLog struct {
	mu   sync.Mutex
	path string
	now  func() time.Time
}

func NewSMSLog(path string) *SMSLog {
	path = strings.TrimSpace(path)
	if path == "" {
		path = "sms.log"
	}
	return &SMSLog{path: path, now: time.Now}
}

func (s *SMSLog) Send(_ context.Context, contact, message string) error {
	contact = strings.TrimSpace(contact)
	if contact == "" {
		return ErrNoContact
	}

	line := fmt.Sprintf("%s SMS to %s: %s\n",
		s.now().UTC().Format(time.RFC3339),
		contact,
		strings.ReplaceAll(message, "\n", " "),
	)

	s.mu.Lock()
	defer s.mu.Unlock()

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("notify: create dir: %w", err)
		}
	}
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o640)
	if err != nil {
		return fmt.Errorf("notify: open sms log: %w", err)
	}
	if _, err := f.WriteString(line); err != nil {
		_ = f.Close()
		return fmt.Errorf("notify: write sms log: %w", err)
	}
	return f.Close()
}
