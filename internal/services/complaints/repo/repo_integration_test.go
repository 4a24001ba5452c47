//go:build integration_pg
// +build integration_pg

package repo

import (
	"context"
	"fmt"
	"io"
	"testing"
	"time"

	"gripewatch/internal/platform/store"
	"gripewatch/internal/services/complaints/domain"

	"github.com/rs/zerolog"
	tc "github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startPostgres launches a disposable Postgres and returns DSN + stop func
func startPostgres(t *testing.T) (dsn string, stop func()) {
	t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Minute)

	req := tc.ContainerRequest{
		Image:        "postgres:16-alpine",
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     "postgres",
			"POSTGRES_PASSWORD": "postgres",
			"POSTGRES_DB":       "postgres",
		},
		WaitingFor: wait.ForAll(
			wait.ForListeningPort("5432/tcp"),
			wait.ForLog("database system is ready to accept connections"),
		).WithDeadline(2 * time.Minute),
	}
	c, err := tc.GenericContainer(ctx, tc.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		cancel()
		t.Fatalf("failed to start postgres container: %v", err)
	}

	host, err := c.Host(ctx)
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get container host: %v", err)
	}
	mp, err := c.MappedPort(ctx, "5432/tcp")
	if err != nil {
		_ = c.Terminate(context.Background())
		cancel()
		t.Fatalf("failed to get mapped port: %v", err)
	}

	dsn = fmt.Sprintf("postgres://postgres:postgres@%s:%s/postgres?sslmode=disable", host, mp.Port())
	stop = func() {
		_ = c.Terminate(context.Background())
		cancel()
	}
	return dsn, stop
}

const complaintsDDL = `
CREATE TABLE IF NOT EXISTS complaints (
	id            BIGSERIAL PRIMARY KEY,
	external_id   TEXT,
	entity        TEXT        NOT NULL,
	title         TEXT        NOT NULL,
	description   TEXT        NOT NULL DEFAULT 'no description',
	status        TEXT        NOT NULL DEFAULT 'unknown',
	occurred_at   TEXT        NOT NULL,
	location      TEXT        NOT NULL DEFAULT 'unknown',
	link          TEXT,
	collected_at  TIMESTAMPTZ NOT NULL,
	UNIQUE (external_id, entity)
)`

func openStorage(t *testing.T, ctx context.Context, dsn string) Storage {
	t.Helper()

	s, err := store.Open(ctx, store.Config{
		AppName: "gripewatch-complaints-it",
		PG:      store.PGConfig{Enabled: true, URL: dsn, MaxConns: 2},
	}, store.WithLogger(zerolog.New(io.Discard)))
	if err != nil {
		t.Fatalf("store open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close(context.Background()) })

	if _, err := s.PG.Exec(ctx, complaintsDDL); err != nil {
		t.Fatalf("create table: %v", err)
	}
	return NewPG().Bind(s.PG)
}

func strp(s string) *string { return &s }

func writeFixture(entity, extID string, collected time.Time) domain.RecordWrite {
	w := domain.RecordWrite{
		Entity:      entity,
		Title:       "No answer for weeks",
		Description: "opened a ticket, silence since",
		Status:      "unanswered",
		OccurredAt:  collected.Format(time.RFC3339),
		Location:    "unknown",
		CollectedAt: collected,
	}
	if extID != "" {
		w.ExternalID = strp(extID)
		w.Link = strp("https://upstream.test/complaint/" + extID + "/")
	}
	return w
}

func TestUpsertBatch_Integration_Idempotent(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	st := openStorage(t, ctx, dsn)

	now := time.Now().UTC().Truncate(time.Millisecond)
	batch := []domain.RecordWrite{
		writeFixture("acme-telecom", "1001", now),
		writeFixture("acme-telecom", "1002", now),
		writeFixture("acme-telecom", "1003", now),
	}

	first, err := st.UpsertBatch(ctx, batch)
	if err != nil {
		t.Fatalf("first upsert: %v", err)
	}
	if first.Inserted != 3 || first.Duplicate != 0 {
		t.Fatalf("first upsert: got %+v, want 3 inserted", first)
	}

	second, err := st.UpsertBatch(ctx, batch)
	if err != nil {
		t.Fatalf("second upsert: %v", err)
	}
	if second.Inserted != 0 || second.Duplicate != 3 {
		t.Fatalf("second upsert: got %+v, want 3 duplicate", second)
	}

	// same external id under another entity is a distinct record
	other, err := st.UpsertBatch(ctx, []domain.RecordWrite{writeFixture("other-co", "1001", now)})
	if err != nil {
		t.Fatalf("other entity upsert: %v", err)
	}
	if other.Inserted != 1 {
		t.Fatalf("other entity upsert: got %+v, want 1 inserted", other)
	}
}

func TestUpsertBatch_Integration_NullExternalIDsAlwaysInsert(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	st := openStorage(t, ctx, dsn)

	now := time.Now().UTC()
	anon := writeFixture("acme-telecom", "", now)

	for i := 1; i <= 2; i++ {
		res, err := st.UpsertBatch(ctx, []domain.RecordWrite{anon})
		if err != nil {
			t.Fatalf("upsert %d: %v", i, err)
		}
		if res.Inserted != 1 || res.Duplicate != 0 {
			t.Fatalf("upsert %d: got %+v, want insert (null ids never collide)", i, res)
		}
	}
}

func TestRecent_Integration_OrderAndLimit(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	st := openStorage(t, ctx, dsn)

	base := time.Now().UTC().Add(-time.Hour).Truncate(time.Millisecond)
	var batch []domain.RecordWrite
	for i := 0; i < 5; i++ {
		batch = append(batch, writeFixture("acme-telecom", fmt.Sprintf("20%02d", i), base.Add(time.Duration(i)*time.Minute)))
	}
	batch = append(batch, writeFixture("other-co", "9999", base))
	if _, err := st.UpsertBatch(ctx, batch); err != nil {
		t.Fatalf("seed: %v", err)
	}

	got, err := st.Recent(ctx, "acme-telecom", 3)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("recent: got %d rows, want 3", len(got))
	}
	for i, r := range got {
		if r.Entity != "acme-telecom" {
			t.Fatalf("row %d: foreign entity %q leaked in", i, r.Entity)
		}
		if i > 0 && got[i-1].CollectedAt.Before(r.CollectedAt) {
			t.Fatalf("rows not ordered newest first: %v then %v", got[i-1].CollectedAt, r.CollectedAt)
		}
	}
	if got[0].ExternalID == nil || *got[0].ExternalID != "2004" {
		t.Fatalf("newest row: got %v, want external id 2004", got[0].ExternalID)
	}
}

func TestSearch_Integration_Filters(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	st := openStorage(t, ctx, dsn)

	base := time.Now().UTC().Add(-48 * time.Hour).Truncate(time.Millisecond)
	old := writeFixture("acme-telecom", "3001", base)
	old.Status = "resolved"
	fresh := writeFixture("acme-telecom", "3002", base.Add(24*time.Hour))
	if _, err := st.UpsertBatch(ctx, []domain.RecordWrite{old, fresh}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	cut := base.Add(12 * time.Hour)
	got, err := st.Search(ctx, domain.Query{Entity: "acme-telecom", From: &cut, Limit: 10})
	if err != nil {
		t.Fatalf("search from: %v", err)
	}
	if len(got) != 1 || got[0].ExternalID == nil || *got[0].ExternalID != "3002" {
		t.Fatalf("search from: got %+v, want only 3002", got)
	}

	got, err = st.Search(ctx, domain.Query{Status: "resolved", Limit: 10})
	if err != nil {
		t.Fatalf("search status: %v", err)
	}
	if len(got) != 1 || got[0].Status != "resolved" {
		t.Fatalf("search status: got %+v, want only the resolved row", got)
	}

	got, err = st.Search(ctx, domain.Query{Limit: 10})
	if err != nil {
		t.Fatalf("search open: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("search open: got %d rows, want 2", len(got))
	}
}

func TestPurgeOlderThan_Integration(t *testing.T) {
	dsn, stop := startPostgres(t)
	defer stop()

	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()
	st := openStorage(t, ctx, dsn)

	now := time.Now().UTC()
	stale := writeFixture("acme-telecom", "4001", now.Add(-10*24*time.Hour))
	kept := writeFixture("acme-telecom", "4002", now)
	if _, err := st.UpsertBatch(ctx, []domain.RecordWrite{stale, kept}); err != nil {
		t.Fatalf("seed: %v", err)
	}

	n, err := st.CountOlderThan(ctx, 7)
	if err != nil {
		t.Fatalf("count: %v", err)
	}
	if n != 1 {
		t.Fatalf("count: got %d, want 1", n)
	}

	removed, err := st.PurgeOlderThan(ctx, 7)
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if removed != 1 {
		t.Fatalf("purge: removed %d, want 1", removed)
	}

	rest, err := st.Recent(ctx, "acme-telecom", 10)
	if err != nil {
		t.Fatalf("recent after purge: %v", err)
	}
	if len(rest) != 1 || rest[0].ExternalID == nil || *rest[0].ExternalID != "4002" {
		t.Fatalf("after purge: got %+v, want only 4002", rest)
	}
}
