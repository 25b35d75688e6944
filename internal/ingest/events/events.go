// Package events publishes submission-accepted events to Kafka for
// downstream consumers (reporting, archival). Publication is best effort:
// a broker outage never fails the submission that triggered it.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/twmb/franz-go/pkg/kgo"

	"originform/internal/ingest/models"
)

// SubmissionAccepted is the event payload.
type SubmissionAccepted struct {
	SubmissionID   string    `json:"submission_id"`
	ExporterName   string    `json:"exporter_name"`
	ExporterEmail  string    `json:"exporter_email"`
	AttachmentKeys []string  `json:"attachment_keys"`
	ReceivedAt     time.Time `json:"received_at"`
}

// Encode builds the Kafka record for an accepted submission. Split out from
// publishing so tests can assert the payload without a broker.
func Encode(topic string, sub models.Submission) (*kgo.Record, error) {
	payload, err := json.Marshal(SubmissionAccepted{
		SubmissionID:   sub.ID,
		ExporterName:   sub.ExporterName,
		ExporterEmail:  sub.ExporterEmail,
		AttachmentKeys: sub.AttachmentKeys,
		ReceivedAt:     sub.ReceivedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal submission event: %w", err)
	}
	return &kgo.Record{
		Topic: topic,
		Key:   []byte(sub.ID),
		Value: payload,
	}, nil
}

// Publisher produces submission events to a Kafka topic.
type Publisher struct {
	client *kgo.Client
	topic  string
}

// NewPublisher dials the given brokers. Returns an error when no brokers are
// reachable at client build time.
func NewPublisher(brokers []string, topic string) (*Publisher, error) {
	client, err := kgo.NewClient(
		kgo.SeedBrokers(brokers...),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}
	return &Publisher{client: client, topic: topic}, nil
}

// Publish produces one submission-accepted event synchronously.
func (p *Publisher) Publish(ctx context.Context, sub models.Submission) error {
	rec, err := Encode(p.topic, sub)
	if err != nil {
		return err
	}
	if err := p.client.ProduceSync(ctx, rec).FirstErr(); err != nil {
		return fmt.Errorf("produce submission event: %w", err)
	}
	return nil
}

// Close flushes and releases the Kafka client.
func (p *Publisher) Close() {
	p.client.Close()
}
