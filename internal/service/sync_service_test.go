package service

import (
	"context"
	"errors"
	"testing"

	"github.com/cfc-orderdesk/internal/backend"
	"github.com/cfc-orderdesk/internal/constants"
	"github.com/cfc-orderdesk/internal/repository"
)

func TestSyncRunsInlineWhenQueueDisabled(t *testing.T) {
	f := newServiceFixture(t, fixtureOrders())
	ctx := context.Background()

	result, err := f.sync.SyncGmail(ctx, 0, "req-1")
	if err != nil {
		t.Fatalf("gmail sync failed: %v", err)
	}
	if result.Mode != SyncModeInline || result.Action != constants.IntentGmailSync {
		t.Fatalf("unexpected result %+v", result)
	}
	calls := callsByMethod(f.backend.recorded(), "SyncGmail")
	if len(calls) != 1 || calls[0].Value != "2" {
		t.Fatalf("hours back should default to 2, got %+v", calls)
	}

	if _, err := f.sync.SyncB2BWave(ctx, -1, ""); err != nil {
		t.Fatalf("b2bwave sync failed: %v", err)
	}
	calls = callsByMethod(f.backend.recorded(), "SyncB2BWave")
	if len(calls) != 1 || calls[0].Value != "14" {
		t.Fatalf("days back should default to 14, got %+v", calls)
	}
}

func TestSyncSummaries(t *testing.T) {
	f := newServiceFixture(t, fixtureOrders())
	ctx := context.Background()

	result, err := f.sync.RegenerateSummaries(ctx, true, "")
	if err != nil {
		t.Fatalf("regenerate failed: %v", err)
	}
	batch, ok := result.Result.(*backend.SummaryBatchResult)
	if !ok || batch.Success != 3 {
		t.Fatalf("unexpected batch result %+v", result.Result)
	}
	if calls := callsByMethod(f.backend.recorded(), "RegenerateSummaries"); len(calls) != 1 || calls[0].Value != "true" {
		t.Fatalf("unexpected calls %+v", calls)
	}

	if _, err := f.sync.RegenerateOrderSummary(ctx, " ", ""); !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("want ErrOrderNotFound got %v", err)
	}
	if _, err := f.sync.RegenerateOrderSummary(ctx, "42", ""); err != nil {
		t.Fatalf("order summary failed: %v", err)
	}
}

func TestSyncAllRunsBothJobs(t *testing.T) {
	f := newServiceFixture(t, fixtureOrders())
	result, err := f.sync.SyncAll(context.Background(), 6, 3, "req-2")
	if err != nil {
		t.Fatalf("sync all failed: %v", err)
	}
	combined, ok := result.Result.(*SyncAllResult)
	if !ok {
		t.Fatalf("unexpected result type %T", result.Result)
	}
	if combined.Gmail["processed"] != 2 || combined.B2BWave["synced"] != 5 {
		t.Fatalf("unexpected combined result %+v", combined)
	}
	counts, err := f.intents.CountByResult()
	if err != nil || counts[constants.IntentResultSuccess] != 2 {
		t.Fatalf("want 2 success audits got %v %v", counts, err)
	}
}

func TestSyncAllFailureNamesFailedJob(t *testing.T) {
	f := newServiceFixture(t, fixtureOrders())
	f.backend.gmailErr = backend.ErrUnavailable

	_, err := f.sync.SyncAll(context.Background(), 0, 0, "")
	if !errors.Is(err, backend.ErrUnavailable) {
		t.Fatalf("want backend unavailable got %v", err)
	}
	if IntentAction(err) != constants.IntentGmailSync {
		t.Fatalf("want failed action %s got %s", constants.IntentGmailSync, IntentAction(err))
	}
	rows, _, err := f.intentDB.List(repository.UpdateIntentListFilter{Result: constants.IntentResultFailed})
	if err != nil || len(rows) != 1 {
		t.Fatalf("want 1 failed audit row got %d %v", len(rows), err)
	}
}

func TestSyncInvalidatesSnapshot(t *testing.T) {
	f := newServiceFixture(t, fixtureOrders())
	ctx := context.Background()
	if _, err := f.orders.Refresh(ctx); err != nil {
		t.Fatalf("refresh failed: %v", err)
	}
	if _, err := f.sync.SyncGmail(ctx, 1, ""); err != nil {
		t.Fatalf("sync failed: %v", err)
	}
	if _, err := f.orders.FindOrder(ctx, "42"); err != nil {
		t.Fatalf("find order failed: %v", err)
	}
	if f.backend.fetches() != 2 {
		t.Fatalf("sync should force a refetch on next read, fetched %d times", f.backend.fetches())
	}
}
