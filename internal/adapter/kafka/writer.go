// Package kafka publishes retained flight summaries to a sink topic for
// downstream consumers that want rows as they are produced rather than the
// assembled report file.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/couchcryptid/flight-trace-etl/internal/config"
	"github.com/couchcryptid/flight-trace-etl/internal/domain"
)

// summaryMessage is the published JSON shape of one report row. Coordinate
// and duration fields carry the same rendered strings as the persisted
// report so every output agrees byte for byte.
type summaryMessage struct {
	FlightDate        string `json:"flight_date"`
	FlightNum         int    `json:"flight_num"`
	TakeoffTimestamp  string `json:"takeoff_timestamp"`
	TakeoffLat        string `json:"takeoff_lat"`
	TakeoffLng        string `json:"takeoff_lng"`
	TakeoffAltitudeFt int    `json:"takeoff_altitude_ft"`
	TakeoffLocation   string `json:"takeoff_location"`
	LandingTimestamp  string `json:"landing_timestamp"`
	LandingLat        string `json:"landing_lat"`
	LandingLng        string `json:"landing_lng"`
	LandingAltitudeFt int    `json:"landing_altitude_ft"`
	LandingLocation   string `json:"landing_location"`
	DurationMinutes   string `json:"flight_duration_minutes"`
	NumPoints         int    `json:"num_points"`
	ProcessedAt       string `json:"processed_at"`
}

// Publisher produces flight summaries to a Kafka topic.
// It implements pipeline.ReportSink.
type Publisher struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewPublisher creates a Kafka producer for the configured summary topic.
func NewPublisher(cfg *config.Config, logger *slog.Logger) *Publisher {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Publisher{writer: w, logger: logger}
}

// WriteReport serializes and publishes all rows in a single WriteMessages
// call. The message key is the row identity, so compacted topics retain one
// message per flight across re-runs.
func (p *Publisher) WriteReport(ctx context.Context, rows []domain.FlightSummary) error {
	if len(rows) == 0 {
		return nil
	}
	msgs := make([]kafkago.Message, len(rows))
	for i := range rows {
		msg, err := serializeToMessage(rows[i])
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return p.writer.WriteMessages(ctx, msgs...)
}

// Close flushes and closes the producer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

// serializeToMessage marshals a FlightSummary into a Kafka message.
func serializeToMessage(s domain.FlightSummary) (kafkago.Message, error) {
	data, err := json.Marshal(summaryMessage{
		FlightDate:        s.FlightDate.Format(time.DateOnly),
		FlightNum:         s.FlightNum,
		TakeoffTimestamp:  domain.FormatTimestamp(s.Takeoff.Timestamp),
		TakeoffLat:        domain.FormatCoord(s.Takeoff.Lat),
		TakeoffLng:        domain.FormatCoord(s.Takeoff.Lon),
		TakeoffAltitudeFt: s.Takeoff.AltitudeFt,
		TakeoffLocation:   s.Takeoff.Location,
		LandingTimestamp:  domain.FormatTimestamp(s.Landing.Timestamp),
		LandingLat:        domain.FormatCoord(s.Landing.Lat),
		LandingLng:        domain.FormatCoord(s.Landing.Lon),
		LandingAltitudeFt: s.Landing.AltitudeFt,
		LandingLocation:   s.Landing.Location,
		DurationMinutes:   domain.FormatDuration(s.DurationMinutes),
		NumPoints:         s.NumPoints,
		ProcessedAt:       s.ProcessedAt.Format(time.RFC3339),
	})
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize flight summary: %w", err)
	}
	return kafkago.Message{
		Key:   []byte(s.RowID()),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "flight_date", Value: []byte(s.FlightDate.Format(time.DateOnly))},
			{Key: "processed_at", Value: []byte(s.ProcessedAt.Format(time.RFC3339))},
		},
	}, nil
}
