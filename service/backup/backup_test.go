package backup

import (
	"context"
	"reflect"
	"testing"
	"time"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/internal/dbtest"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

func newBackup(t *testing.T, retention time.Duration) (*Service, *FSBlob) {
	t.Helper()
	db := dbtest.Open(t)
	if err := db.Create(&[]entity.Broker{{BrokerID: 1, Broker: "Ball"}, {BrokerID: 2, Broker: "Syngenta"}}).Error; err != nil {
		t.Fatal(err)
	}
	blob, err := NewFSBlob(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	return New(db, blob, Options{Prefix: "/farm/", Retention: retention, Log: logger.Discard()}), blob
}

func TestRun_WritesOneDocumentPerTable(t *testing.T) {
	s, blob := newBackup(t, 0)
	s.now = func() time.Time { return time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC) }
	ctx := context.Background()

	snap, err := s.Run(ctx)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if snap.Stamp != "20240601T030000Z" {
		t.Errorf("Stamp = %s", snap.Stamp)
	}
	if len(snap.Keys) != len(entity.Tables()) {
		t.Errorf("keys = %d, want %d", len(snap.Keys), len(entity.Tables()))
	}
	if snap.Tables["T_Brokers"] != 2 || snap.Tables["T_Items"] != 0 {
		t.Errorf("row counts = %v", snap.Tables)
	}
	keys, _ := blob.List(ctx, "farm/20240601T030000Z/")
	if len(keys) != len(snap.Keys) {
		t.Errorf("stored keys = %d", len(keys))
	}

	var brokers []entity.Broker
	if err := s.Load(ctx, snap.Stamp, "T_Brokers", &brokers); err != nil {
		t.Fatal(err)
	}
	if len(brokers) != 2 || brokers[1].Broker != "Syngenta" {
		t.Errorf("loaded = %+v", brokers)
	}
}

func TestPrune_DropsExpiredSnapshots(t *testing.T) {
	s, _ := newBackup(t, 7*24*time.Hour)
	ctx := context.Background()
	now := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for _, age := range []int{10, 8, 1} {
		ts := now.AddDate(0, 0, -age)
		s.now = func() time.Time { return ts }
		if _, err := s.Run(ctx); err != nil {
			t.Fatal(err)
		}
	}
	s.now = func() time.Time { return now }

	pruned, err := s.Prune(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if want := []string{"20240522T000000Z", "20240524T000000Z"}; !reflect.DeepEqual(pruned, want) {
		t.Errorf("pruned = %v, want %v", pruned, want)
	}
	left, _ := s.Snapshots(ctx)
	if want := []string{"20240531T000000Z"}; !reflect.DeepEqual(left, want) {
		t.Errorf("remaining = %v, want %v", left, want)
	}
}

func TestPrune_ZeroRetentionKeepsAll(t *testing.T) {
	s, _ := newBackup(t, 0)
	if _, err := s.Run(context.Background()); err != nil {
		t.Fatal(err)
	}
	pruned, err := s.Prune(context.Background())
	if err != nil || len(pruned) != 0 {
		t.Errorf("Prune = %v, %v", pruned, err)
	}
}

func TestFSBlob_RejectsTraversal(t *testing.T) {
	blob, _ := NewFSBlob(t.TempDir())
	for _, key := range []string{"", "../x", "/etc/passwd"} {
		if err := blob.Put(context.Background(), key, []byte("x")); err == nil {
			t.Errorf("Put(%q): want error", key)
		}
	}
}
