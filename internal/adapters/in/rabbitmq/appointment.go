package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/in"
	"github.com/suchimauz/clinic-calendar/internal/core/ports/out"
)

type AddAppointmentMessage struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Doctor    string `json:"doctor"`
	DateTime  string `json:"dateTime"`
}

func (l *AppointmentListener) startAppointmentQueue(ctx context.Context) error {
	queue, err := l.channel.QueueDeclare(
		l.cfg.RabbitMQ.Queue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.declare_failed: %w", err)
	}
	err = l.channel.QueueBind(
		queue.Name,
		l.cfg.RabbitMQ.Bind,
		l.cfg.RabbitMQ.Exchange,
		false,
		nil,
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.bind_failed: %w", err)
	}

	msgs, err := l.channel.Consume(
		queue.Name,
		"",    // consumer
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("rabbitmq.queue.consume_failed: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-msgs:
				if !ok {
					l.logger.Warn("appointment.queue.closed", out.LogFields{
						"queue": queue.Name,
					})
					return
				}
				l.handleDelivery(ctx, msg)
			}
		}
	}()

	return nil
}

func (l *AppointmentListener) handleDelivery(ctx context.Context, msg amqp.Delivery) {
	if err := l.processAppointmentMessage(ctx, msg); err != nil {
		l.logger.Error("appointment.message.rejected", out.LogFields{
			"routingKey": msg.RoutingKey,
			"error":      err.Error(),
		})
		// Повтор с тем же телом даст ту же ошибку, поэтому без requeue
		msg.Nack(false, false)
		return
	}
	msg.Ack(false)
}

func (l *AppointmentListener) processAppointmentMessage(ctx context.Context, msg amqp.Delivery) error {
	routingKey, err := parseMessageRoutingKey(msg.RoutingKey)
	if err != nil {
		return err
	}

	if routingKey.ResourceType != MessageResourceTypeAppointment {
		return nil
	}

	if routingKey.Action != MessageActionAdd {
		return fmt.Errorf("unsupported appointment action: %s", routingKey.Action)
	}

	var msgJson AddAppointmentMessage
	if err := json.Unmarshal(msg.Body, &msgJson); err != nil {
		return fmt.Errorf("appointment.message.decode_failed: %w", err)
	}

	l.logger.Info("appointment.message.received", out.LogFields{
		"source": routingKey.Source,
		"doctor": msgJson.Doctor,
	})

	appointment, err := l.useCase.AddAppointment(ctx, in.AddAppointmentCommand{
		PatientFirstName: msgJson.FirstName,
		PatientLastName:  msgJson.LastName,
		DoctorID:         msgJson.Doctor,
		DateTime:         msgJson.DateTime,
	})
	if err != nil {
		return err
	}

	l.logger.Info("appointment.message.stored", out.LogFields{
		"appointment_id": appointment.ID(),
	})

	return nil
}
