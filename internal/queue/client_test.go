package queue

import (
	"encoding/json"
	"testing"

	"github.com/cfc-orderdesk/internal/config"
)

func TestDisabledClientIsNoop(t *testing.T) {
	client, err := NewClient(&config.QueueConfig{Enabled: false})
	if err != nil {
		t.Fatalf("new client failed: %v", err)
	}
	if client.Enabled() {
		t.Fatalf("client should be disabled")
	}
	id, err := client.EnqueueGmailSync(GmailSyncPayload{HoursBack: 2})
	if err != nil || id != "" {
		t.Fatalf("disabled enqueue should be noop, id=%q err=%v", id, err)
	}
	if err := client.EnqueueRefreshOrderSnapshot(RefreshOrderSnapshotPayload{}, 0); err != nil {
		t.Fatalf("disabled refresh should be noop: %v", err)
	}
	if err := client.Close(); err != nil {
		t.Fatalf("close failed: %v", err)
	}
	var nilClient *Client
	if nilClient.Enabled() {
		t.Fatalf("nil client should be disabled")
	}
}

func TestBuildServerConfig(t *testing.T) {
	opt, cfg := BuildServerConfig(&config.QueueConfig{Host: " redis ", Port: 6380, DB: 2, Concurrency: 3})
	if opt.Addr != "redis:6380" || opt.DB != 2 {
		t.Fatalf("unexpected redis opt %+v", opt)
	}
	if cfg.Concurrency != 3 || cfg.Queues[SyncQueue] != 1 || cfg.Queues[DefaultQueue] != 2 {
		t.Fatalf("unexpected server config %+v", cfg)
	}
	_, cfg = BuildServerConfig(&config.QueueConfig{Queues: map[string]int{"sync": 9}})
	if cfg.Queues["sync"] != 9 || cfg.Concurrency != 4 {
		t.Fatalf("configured queues should be used, got %+v", cfg)
	}
}

func TestSyncAllTaskPayload(t *testing.T) {
	task, err := NewSyncAllTask(SyncAllPayload{HoursBack: 2, DaysBack: 14, RequestID: "r1"})
	if err != nil {
		t.Fatalf("new task failed: %v", err)
	}
	if task.Type() != TaskSyncAll {
		t.Fatalf("task type want %s got %s", TaskSyncAll, task.Type())
	}
	var payload SyncAllPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		t.Fatalf("decode payload failed: %v", err)
	}
	if payload.HoursBack != 2 || payload.DaysBack != 14 || payload.RequestID != "r1" {
		t.Fatalf("unexpected payload %+v", payload)
	}
}
