// Package export publishes a generated dataset to Kafka so external
// consumers (notebooks, downstream demos) can replay the same telemetry
// the dashboard renders. The export is one-shot and best-effort.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/AngelP17/manufacturing-demo/internal/demodata"
	"github.com/AngelP17/manufacturing-demo/internal/telemetry"
)

// Record is the wire envelope for one exported sample. Exactly one of
// Machine or Production is set, discriminated by Kind.
type Record struct {
	Kind        string                      `json:"kind"`
	GeneratedAt time.Time                   `json:"generatedAt"`
	Machine     *telemetry.MachineSample    `json:"machine,omitempty"`
	Production  *telemetry.ProductionSample `json:"production,omitempty"`
}

const (
	kindMachine    = "machine"
	kindProduction = "production"
)

// Publisher writes dataset records to a single Kafka topic. Machine
// samples are keyed by machine id so per-machine ordering survives
// partitioning; production samples share one key.
type Publisher struct {
	log    *slog.Logger
	writer *kafka.Writer
}

func NewPublisher(log *slog.Logger, brokers []string, topic string) *Publisher {
	return &Publisher{
		log: log,
		writer: &kafka.Writer{
			Addr:     kafka.TCP(brokers...),
			Topic:    topic,
			Balancer: &kafka.Hash{},
		},
	}
}

// PublishDataset writes every sample of the dataset and closes with a
// single batched WriteMessages call.
func (p *Publisher) PublishDataset(ctx context.Context, ds *demodata.Dataset) error {
	msgs, err := buildMessages(ds)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msgs...); err != nil {
		p.log.Error("kafka write failed", "err", err, "messages", len(msgs))
		return fmt.Errorf("export dataset: %w", err)
	}
	p.log.Info("dataset exported", "topic", p.writer.Topic, "messages", len(msgs))
	return nil
}

// Close flushes and releases the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}

func buildMessages(ds *demodata.Dataset) ([]kafka.Message, error) {
	if ds == nil {
		return nil, fmt.Errorf("build messages: %w", telemetry.ErrInvalidArgument)
	}
	msgs := make([]kafka.Message, 0, len(ds.Machines)+len(ds.Production))
	for i := range ds.Machines {
		s := ds.Machines[i]
		b, err := json.Marshal(Record{Kind: kindMachine, GeneratedAt: ds.GeneratedAt, Machine: &s})
		if err != nil {
			return nil, fmt.Errorf("marshal machine record: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(s.Machine), Value: b, Time: s.Timestamp})
	}
	for i := range ds.Production {
		s := ds.Production[i]
		b, err := json.Marshal(Record{Kind: kindProduction, GeneratedAt: ds.GeneratedAt, Production: &s})
		if err != nil {
			return nil, fmt.Errorf("marshal production record: %w", err)
		}
		msgs = append(msgs, kafka.Message{Key: []byte(kindProduction), Value: b, Time: s.Timestamp})
	}
	return msgs, nil
}
