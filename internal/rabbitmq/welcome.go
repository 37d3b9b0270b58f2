package rabbitmq

import (
	"github.com/streadway/amqp"

	"github.com/magabrotheeeer/consulting-platform/internal/models"
)

// WelcomePublisher публикует события регистрации в очередь приветственных писем.
type WelcomePublisher struct {
	ch *amqp.Channel
}

// NewWelcomePublisher создает издателя поверх открытого канала.
func NewWelcomePublisher(ch *amqp.Channel) *WelcomePublisher {
	return &WelcomePublisher{ch: ch}
}

// Publish отправляет событие регистрации в exchange уведомлений.
func (p *WelcomePublisher) Publish(info models.UserInfo) error {
	return PublishMessage(p.ch, ExchangeName, WelcomeRoutingKey, info)
}
