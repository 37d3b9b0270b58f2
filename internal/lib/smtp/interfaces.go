// Package smtp реализует почтовый транспорт отправителя уведомлений.
// Через него уходят приветственные письма новым пользователям платформы.
package smtp

import "io"

// Client интерфейс для SMTP клиента.
type Client interface {
	Mail(from string) error
	Rcpt(to string) error
	Data() (io.WriteCloser, error)
	Quit() error
	Close() error
}

// TransportInterface интерфейс транспорта приветственных писем.
type TransportInterface interface {
	Connect() (Client, error)
	GetSMTPUser() string
}
