package usecase

import (
	"context"
	"encoding/json"
	"time"

	"CycleSense/internal/domain/models"
	domrepo "CycleSense/internal/domain/repository"
	pkgkafka "CycleSense/pkg/kafka"
)

// KafkaEntriesHandler consumes Kafka messages and writes to storage.
type KafkaEntriesHandler struct {
	topic   string
	storage domrepo.Storage
	metrics domrepo.Metrics
}

func NewKafkaEntriesHandler(topic string, storage domrepo.Storage, metrics domrepo.Metrics) *KafkaEntriesHandler {
	return &KafkaEntriesHandler{topic: topic, storage: storage, metrics: metrics}
}

func (h *KafkaEntriesHandler) Topic() string { return h.topic }

// Handle decodes one entry message and persists it.
func (h *KafkaEntriesHandler) Handle(ctx context.Context, b []byte) error {
	var e models.Entry
	if err := json.Unmarshal(b, &e); err != nil {
		h.metrics.RecordError("consumer_unmarshal")
		return err
	}
	if !e.Valid() {
		h.metrics.RecordError("consumer_invalid")
		return nil // poison entries are counted, not retried
	}
	if !e.ReceivedAt.IsZero() {
		// E2E latency from device receive time to now (approx)
		h.metrics.RecordLatency("ingest_e2e_seconds", time.Since(e.ReceivedAt).Seconds())
	}

	start := time.Now()
	err := h.storage.Store(ctx, &e)
	h.metrics.RecordLatency("ch_insert_seconds", time.Since(start).Seconds())
	if err != nil {
		h.metrics.RecordError("consumer_store")
		return err
	}
	h.metrics.RecordEntryStored("clickhouse", string(e.Kind))
	return nil
}

var _ pkgkafka.MessageHandler = (*KafkaEntriesHandler)(nil)
