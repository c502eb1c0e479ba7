// Package kafka publishes canonical dataset rows to a Kafka topic for
// downstream consumers.
package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/reedmaris/bls-data-service/internal/config"
	"github.com/reedmaris/bls-data-service/internal/domain"
	kafkago "github.com/segmentio/kafka-go"
)

// Exporter produces one message per canonical table row.
// It implements pipeline.Exporter.
type Exporter struct {
	writer *kafkago.Writer
	logger *slog.Logger
}

// NewExporter creates a Kafka producer for the configured sink topic.
func NewExporter(cfg *config.Config, logger *slog.Logger) *Exporter {
	w := &kafkago.Writer{
		Addr:         kafkago.TCP(cfg.KafkaBrokers...),
		Topic:        cfg.KafkaSinkTopic,
		Balancer:     &kafkago.LeastBytes{},
		RequiredAcks: kafkago.RequireAll,
	}
	return &Exporter{writer: w, logger: logger}
}

// RowMessage is the wire shape of one published row. Missing cells are null.
type RowMessage struct {
	Date   string              `json:"date"`
	Values map[string]*float64 `json:"values"`
}

// ExportDataset serializes and publishes every row of the dataset in a
// single WriteMessages call for efficiency.
func (e *Exporter) ExportDataset(ctx context.Context, ds domain.Dataset) error {
	if ds.Table.IsEmpty() {
		return nil
	}
	msgs := make([]kafkago.Message, len(ds.Table.Index))
	for i := range ds.Table.Index {
		msg, err := serializeRow(ds, i)
		if err != nil {
			return err
		}
		msgs[i] = msg
	}
	return e.writer.WriteMessages(ctx, msgs...)
}

func (e *Exporter) Close() error {
	return e.writer.Close()
}

// serializeRow marshals one table row into a Kafka message keyed by its date.
func serializeRow(ds domain.Dataset, row int) (kafkago.Message, error) {
	values := make(map[string]*float64, len(ds.Table.Columns))
	for j, col := range ds.Table.Columns {
		values[col] = ds.Table.Rows[row][j]
	}
	msg := RowMessage{Date: ds.Table.Index[row], Values: values}

	data, err := json.Marshal(msg)
	if err != nil {
		return kafkago.Message{}, fmt.Errorf("serialize row %s: %w", msg.Date, err)
	}
	return kafkago.Message{
		Key:   []byte(msg.Date),
		Value: data,
		Headers: []kafkago.Header{
			{Key: "fetched_at", Value: []byte(ds.FetchedAt.Format(time.RFC3339))},
		},
	}, nil
}
