// Package smtp реализует транспорт отправки писем сброса пароля
// поверх net/smtp с обязательным STARTTLS.
package smtp

import "io"

// Client покрывает команды SMTP-сессии, которые нужны отправителю писем.
// Реализуется обёрткой над *smtp.Client и моками в тестах.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface устанавливает SMTP-соединение и знает адрес отправителя.
type TransportInterface interface {
	// Connect открывает соединение, проходит STARTTLS и аутентификацию.
	Connect() (Client, error)
	// SenderAddress возвращает адрес, от имени которого уходят письма.
	SenderAddress() string
}
