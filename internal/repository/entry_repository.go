package repository

import (
    "context"
    "database/sql"
    "fmt"
    "strings"
    "time"

    "CycleSense/internal/domain/models"
    "CycleSense/internal/domain/repository"
    pkgkafka "CycleSense/pkg/kafka"
)

// ClickHouseStorage implements Storage for ClickHouse.
type ClickHouseStorage struct {
    db            *sql.DB
    cyclesTable   string
    symptomsTable string
}

// NewClickHouseStorage creates ClickHouse storage.
func NewClickHouseStorage(db *sql.DB, cyclesTable, symptomsTable string) repository.Storage {
    return &ClickHouseStorage{db: db, cyclesTable: cyclesTable, symptomsTable: symptomsTable}
}

func (s *ClickHouseStorage) Init(ctx context.Context) error {
    return nil // Schema init in pkg
}

func (s *ClickHouseStorage) Store(ctx context.Context, e *models.Entry) error {
    switch e.Kind {
    case models.EntryKindCycle:
        return s.storeCycles(ctx, []*models.CycleRecord{e.Cycle})
    case models.EntryKindSymptom:
        return s.storeSymptoms(ctx, []*models.SymptomObservation{e.Symptom})
    default:
        return fmt.Errorf("unknown entry kind: %s", e.Kind)
    }
}

func (s *ClickHouseStorage) StoreBatch(ctx context.Context, entries []*models.Entry) error {
    if len(entries) == 0 {
        return nil
    }
    var cycleRecords []*models.CycleRecord
    var symptoms []*models.SymptomObservation
    for _, e := range entries {
        if e == nil {
            continue
        }
        switch e.Kind {
        case models.EntryKindCycle:
            if e.Cycle != nil {
                cycleRecords = append(cycleRecords, e.Cycle)
            }
        case models.EntryKindSymptom:
            if e.Symptom != nil {
                symptoms = append(symptoms, e.Symptom)
            }
        }
    }
    if err := s.storeCycles(ctx, cycleRecords); err != nil {
        return err
    }
    return s.storeSymptoms(ctx, symptoms)
}

// Chunk size tuned to keep batch inserts in a single round-trip.
const chunkSize = 2000

func (s *ClickHouseStorage) storeCycles(ctx context.Context, records []*models.CycleRecord) error {
    for start := 0; start < len(records); start += chunkSize {
        end := start + chunkSize
        if end > len(records) {
            end = len(records)
        }

        values := make([]string, 0, end-start)
        args := make([]interface{}, 0, (end-start)*7)
        for _, r := range records[start:end] {
            if r == nil || r.ID == "" || r.UserID == "" || r.StartDate.IsZero() {
                continue
            }
            var endDate interface{}
            if r.EndDate != nil {
                endDate = *r.EndDate
            }
            createdAt := r.CreatedAt
            if createdAt.IsZero() {
                createdAt = time.Now()
            }
            values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
            args = append(args, r.ID, r.UserID, r.StartDate, endDate, string(r.Flow), r.Notes, createdAt)
        }
        if len(values) == 0 {
            continue
        }
        q := fmt.Sprintf("INSERT INTO %s (id, user_id, start_date, end_date, flow, notes, created_at) VALUES %s",
            s.cyclesTable, strings.Join(values, ","))
        if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
            return fmt.Errorf("store cycles: %w", err)
        }
    }
    return nil
}

func (s *ClickHouseStorage) storeSymptoms(ctx context.Context, observations []*models.SymptomObservation) error {
    for start := 0; start < len(observations); start += chunkSize {
        end := start + chunkSize
        if end > len(observations) {
            end = len(observations)
        }

        values := make([]string, 0, end-start)
        args := make([]interface{}, 0, (end-start)*7)
        for _, o := range observations[start:end] {
            if o == nil || o.ID == "" || o.UserID == "" || o.Date.IsZero() || o.Type == "" {
                continue
            }
            createdAt := o.CreatedAt
            if createdAt.IsZero() {
                createdAt = time.Now()
            }
            values = append(values, "(?, ?, ?, ?, ?, ?, ?)")
            args = append(args, o.ID, o.UserID, o.Date, o.Type, string(o.Severity), o.Note, createdAt)
        }
        if len(values) == 0 {
            continue
        }
        q := fmt.Sprintf("INSERT INTO %s (id, user_id, date, type, severity, note, created_at) VALUES %s",
            s.symptomsTable, strings.Join(values, ","))
        if _, err := s.db.ExecContext(ctx, q, args...); err != nil {
            return fmt.Errorf("store symptoms: %w", err)
        }
    }
    return nil
}

func (s *ClickHouseStorage) Health(ctx context.Context) error {
    return s.db.PingContext(ctx)
}

func (s *ClickHouseStorage) Close() error {
    return nil // Managed by pkg
}

// KafkaPublisher implements Publisher for Kafka.
type KafkaPublisher struct {
    producer *pkgkafka.Producer
    topic    string
}

// NewKafkaPublisher creates Kafka publisher.
func NewKafkaPublisher(producer *pkgkafka.Producer, topic string) repository.Publisher {
    return &KafkaPublisher{producer: producer, topic: topic}
}

func (p *KafkaPublisher) Publish(ctx context.Context, e *models.Entry) error {
    return p.producer.Publish(ctx, p.topic, []byte(e.UserID), e)
}

func (p *KafkaPublisher) PublishBatch(ctx context.Context, entries []*models.Entry) error {
    if len(entries) == 0 {
        return nil
    }
    msgs := make([]pkgkafka.Message, len(entries))
    for i, e := range entries {
        msgs[i] = pkgkafka.Message{
            Key:   []byte(e.UserID),
            Value: e,
        }
    }
    return p.producer.PublishBatch(ctx, p.topic, msgs)
}

func (p *KafkaPublisher) Close() error {
    if p.producer != nil {
        return p.producer.Close()
    }
    return nil
}
