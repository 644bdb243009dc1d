package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
)

// AppointmentBooked доменное событие успешного бронирования
// Потребляется внешними сервисами уведомлений
type AppointmentBooked struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	StaffID       uuid.UUID `json:"staffId"`
	OwnerRecordID uuid.UUID `json:"ownerRecordId"`
	Outcome       string    `json:"outcome"` // created | merged | rescheduled
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher интерфейс публикации доменных событий
type Publisher interface {
	PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error
	Close() error
}

// KafkaPublisher публикует доменные события в Kafka
type KafkaPublisher struct {
	writer *kafka.Writer
	logger Logger
}

// NewKafkaPublisher создает публикатор событий поверх Kafka
func NewKafkaPublisher(brokers []string, topic string, logger Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.LeastBytes{},
		},
		logger: logger,
	}
}

// PublishAppointmentBooked публикует событие бронирования
// Ключ сообщения - ID партии, чтобы события одной партии шли в один partition
func (p *KafkaPublisher) PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: marshal AppointmentBooked: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.OwnerRecordID.String()),
		Value: payload,
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte("appointment.booked")},
		},
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		p.logger.Error("PublishAppointmentBooked: write failed: appointment=%s: %v", event.AppointmentID, err)
		return fmt.Errorf("events: publish AppointmentBooked: %w", err)
	}

	p.logger.Info("PublishAppointmentBooked: appointment=%s staff=%s outcome=%s",
		event.AppointmentID, event.StaffID, event.Outcome)
	return nil
}

// Close закрывает writer
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}

// NopPublisher заглушка, когда публикация событий отключена в конфигурации
type NopPublisher struct{}

// PublishAppointmentBooked ничего не делает
func (NopPublisher) PublishAppointmentBooked(ctx context.Context, event AppointmentBooked) error {
	return nil
}

// Close ничего не делает
func (NopPublisher) Close() error { return nil }
