package events

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"

	"github.com/tu-usuario/reservas-api/internal/application/reservation"
	"github.com/tu-usuario/reservas-api/internal/domain/entity"
	"github.com/tu-usuario/reservas-api/pkg/logger"
)

var _ reservation.EventPublisher = (*KafkaPublisher)(nil)

// KafkaPublisher publica eventos de reservas en Kafka. La publicación es
// best-effort: el caso de uso registra el error pero nunca revierte la
// operación de dominio.
type KafkaPublisher struct {
	writer *kafka.Writer
	log    *logger.Logger
}

// NewKafkaPublisher construye el publisher. brokers es una lista separada por
// comas.
func NewKafkaPublisher(brokers, topic string, log *logger.Logger) *KafkaPublisher {
	writer := &kafka.Writer{
		Addr:         kafka.TCP(strings.Split(brokers, ",")...),
		Topic:        topic,
		Balancer:     &kafka.LeastBytes{},
		BatchTimeout: 10 * time.Millisecond,
	}
	return &KafkaPublisher{writer: writer, log: log}
}

// ReservationCreated publica el evento de creación.
func (p *KafkaPublisher) ReservationCreated(ctx context.Context, r *entity.Reservation) error {
	return p.publish(ctx, TypeReservationCreated, r)
}

// ReservationCancelled publica el evento de anulación.
func (p *KafkaPublisher) ReservationCancelled(ctx context.Context, r *entity.Reservation) error {
	return p.publish(ctx, TypeReservationCancelled, r)
}

func (p *KafkaPublisher) publish(ctx context.Context, eventType string, r *entity.Reservation) error {
	event := ReservationEvent{
		EventID:       uuid.New().String(),
		Type:          eventType,
		ReservationID: r.ID,
		ClientID:      r.ClientID,
		ProductID:     r.ProductID,
		Quantity:      r.Quantity,
		TotalAmount:   r.TotalAmount,
		Status:        string(r.Status),
		Timestamp:     time.Now(),
	}
	value, err := json.Marshal(event)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	msg := kafka.Message{
		Key:   []byte(event.EventID),
		Value: value,
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return err
	}
	p.log.Debug().
		Str("event_id", event.EventID).
		Str("type", eventType).
		Int64("reservation_id", r.ID).
		Msg("evento publicado")
	return nil
}

// Close cierra el writer.
func (p *KafkaPublisher) Close() error {
	if p.writer != nil {
		return p.writer.Close()
	}
	return nil
}
