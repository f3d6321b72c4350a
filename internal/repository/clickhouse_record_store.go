package repository

import (
    "context"
    "database/sql"
    "fmt"
    "time"

    "CycleSense/internal/domain/models"
    pkgch "CycleSense/pkg/clickhouse"
    applogger "CycleSense/pkg/logger"
)

// CHRecordStore implements RecordStore backed by ClickHouse.
type CHRecordStore struct {
    db *sql.DB
    l  *applogger.Logger
}

func NewCHRecordStore(ch *pkgch.Client) *CHRecordStore {
    return &CHRecordStore{db: ch.DB()}
}

// SetLogger injects a structured logger.
func (s *CHRecordStore) SetLogger(l *applogger.Logger) { s.l = l }

func (s *CHRecordStore) GetCycles(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.CycleRecord, error) {
    start := time.Now()
    const q = `
        SELECT id, user_id, start_date, end_date, flow, notes, created_at
        FROM cyclesense.cycle_records
        WHERE user_id = ? AND start_date >= ? AND start_date <= ?
        ORDER BY start_date ASC
        LIMIT ?
    `
    rows, err := s.db.QueryContext(ctx, q, userID, from, to, limit)
    if err != nil {
        if s.l != nil {
            s.l.Error("clickhouse get_cycles query error",
                applogger.String("user_id", userID),
                applogger.Error(err),
            )
        }
        return nil, fmt.Errorf("get cycles: %w", err)
    }
    defer rows.Close()

    out := make([]models.CycleRecord, 0, 64)
    for rows.Next() {
        var r models.CycleRecord
        var flow string
        var endDate sql.NullTime
        if err := rows.Scan(&r.ID, &r.UserID, &r.StartDate, &endDate, &flow, &r.Notes, &r.CreatedAt); err != nil {
            if s.l != nil {
                s.l.Error("clickhouse get_cycles scan error",
                    applogger.String("user_id", userID),
                    applogger.Error(err),
                )
            }
            return nil, fmt.Errorf("scan cycle: %w", err)
        }
        if endDate.Valid {
            end := endDate.Time
            r.EndDate = &end
        }
        r.Flow = models.FlowIntensity(flow)
        out = append(out, r)
    }
    if err := rows.Err(); err != nil {
        if s.l != nil {
            s.l.Error("clickhouse get_cycles rows error",
                applogger.String("user_id", userID),
                applogger.Error(err),
            )
        }
        return nil, fmt.Errorf("rows: %w", err)
    }
    if s.l != nil {
        s.l.Info("clickhouse get_cycles ok",
            applogger.String("user_id", userID),
            applogger.Int("rows", len(out)),
            applogger.Duration("duration_ms", time.Since(start)),
        )
    }
    return out, nil
}

func (s *CHRecordStore) GetSymptoms(ctx context.Context, userID string, from, to time.Time, limit int) ([]models.SymptomObservation, error) {
    start := time.Now()
    const q = `
        SELECT id, user_id, date, type, severity, note, created_at
        FROM cyclesense.symptom_observations
        WHERE user_id = ? AND date >= ? AND date <= ?
        ORDER BY date ASC
        LIMIT ?
    `
    rows, err := s.db.QueryContext(ctx, q, userID, from, to, limit)
    if err != nil {
        if s.l != nil {
            s.l.Error("clickhouse get_symptoms query error",
                applogger.String("user_id", userID),
                applogger.Error(err),
            )
        }
        return nil, fmt.Errorf("get symptoms: %w", err)
    }
    defer rows.Close()

    out := make([]models.SymptomObservation, 0, 256)
    for rows.Next() {
        var o models.SymptomObservation
        var severity string
        if err := rows.Scan(&o.ID, &o.UserID, &o.Date, &o.Type, &severity, &o.Note, &o.CreatedAt); err != nil {
            if s.l != nil {
                s.l.Error("clickhouse get_symptoms scan error",
                    applogger.String("user_id", userID),
                    applogger.Error(err),
                )
            }
            return nil, fmt.Errorf("scan symptom: %w", err)
        }
        o.Severity = models.Severity(severity)
        out = append(out, o)
    }
    if err := rows.Err(); err != nil {
        if s.l != nil {
            s.l.Error("clickhouse get_symptoms rows error",
                applogger.String("user_id", userID),
                applogger.Error(err),
            )
        }
        return nil, fmt.Errorf("rows: %w", err)
    }
    if s.l != nil {
        s.l.Info("clickhouse get_symptoms ok",
            applogger.String("user_id", userID),
            applogger.Int("rows", len(out)),
            applogger.Duration("duration_ms", time.Since(start)),
        )
    }
    return out, nil
}
