package rabbitmq

import (
	"context"
	"fmt"
	"strings"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-calendar/internal/config"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

type AppointmentListener struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	useCase in.ClinicCalendarUseCase
	cfg     *config.Config
	logger  out.LoggerPort
}

type (
	MessageAction       string
	MessageResourceType string
)

type MessageRoutingKey struct {
	Source       string
	Receiver     string
	ResourceType MessageResourceType
	Action       MessageAction
}

const (
	MessageResourceTypeAppointment MessageResourceType = "appointment"
)

const (
	MessageActionAdd MessageAction = "add"
)

func NewAppointmentListener(useCase in.ClinicCalendarUseCase, cfg *config.Config, logger out.LoggerPort) (*AppointmentListener, error) {
	if !cfg.RabbitMQ.Enabled {
		logger.Info("rabbitmq.disabled", out.LogFields{
			"message": "RabbitMQ is disabled, listener will not be started",
		})
		return nil, nil
	}

	conn, err := amqp.Dial(cfg.RabbitMQ.URL)
	if err != nil {
		logger.Error("rabbitmq.connect.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.connect.failed: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		logger.Error("rabbitmq.channel.failed", out.LogFields{
			"error": err.Error(),
		})
		return nil, fmt.Errorf("rabbitmq.channel.failed: %w", err)
	}

	return &AppointmentListener{
		conn:    conn,
		channel: channel,
		useCase: useCase,
		cfg:     cfg,
		logger:  logger,
	}, nil
}

func (l *AppointmentListener) Start(ctx context.Context) error {
	if err := l.startAppointmentQueue(ctx); err != nil {
		return err
	}

	l.logger.Info("appointment.queue.started", out.LogFields{
		"queue":    l.cfg.RabbitMQ.Queue,
		"exchange": l.cfg.RabbitMQ.Exchange,
		"bind":     l.cfg.RabbitMQ.Bind,
	})

	return nil
}

func (l *AppointmentListener) Stop() error {
	if l == nil || l.channel == nil {
		return nil
	}

	if err := l.channel.Close(); err != nil {
		return err
	}
	return l.conn.Close()
}

// Пример routingKey:
// clinic.clinic-calendar.appointment.add
func parseMessageRoutingKey(routingKey string) (MessageRoutingKey, error) {
	parts := strings.Split(routingKey, ".")

	if len(parts) != 4 {
		return MessageRoutingKey{}, fmt.Errorf("invalid routing key: %s", routingKey)
	}

	return MessageRoutingKey{
		Source:       parts[0],
		Receiver:     parts[1],
		ResourceType: MessageResourceType(parts[2]),
		Action:       MessageAction(parts[3]),
	}, nil
}
