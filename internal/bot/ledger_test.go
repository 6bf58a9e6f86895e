package bot

import (
	"context"
	"errors"
	"sync"
	"testing"
)

type recordingDeleter struct {
	mu      sync.Mutex
	deleted []int
	fail    map[int]error
}

func (d *recordingDeleter) Delete(_ context.Context, _ int64, messageID int) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if err, ok := d.fail[messageID]; ok {
		return err
	}
	d.deleted = append(d.deleted, messageID)
	return nil
}

func TestCleanupKeepsLastBotMessage(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	d := &recordingDeleter{}

	l.TrackUser(1, 10)
	l.TrackUser(1, 11)
	l.TrackBot(1, 20)
	l.TrackBot(1, 21)
	l.TrackBot(1, 22)

	l.Cleanup(ctx, 1, d)

	want := map[int]bool{10: true, 11: true, 20: true, 21: true}
	if len(d.deleted) != len(want) {
		t.Fatalf("deleted %v, want exactly ids 10,11,20,21", d.deleted)
	}
	for _, id := range d.deleted {
		if !want[id] {
			t.Errorf("unexpected delete of %d", id)
		}
		if id == 22 {
			t.Error("latest bot message must survive cleanup")
		}
	}
}

func TestCleanupIdempotent(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	d := &recordingDeleter{}

	l.TrackUser(1, 10)
	l.TrackBot(1, 20)
	l.TrackBot(1, 21)

	l.Cleanup(ctx, 1, d)
	n := len(d.deleted)

	// Second pass with no new messages deletes nothing: the surviving bot
	// message is the most recent one and stays.
	l.Cleanup(ctx, 1, d)
	if len(d.deleted) != n {
		t.Errorf("second cleanup deleted %v, want no new deletes", d.deleted[n:])
	}
}

func TestCleanupSurvivingMessageDeletedNextRound(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	d := &recordingDeleter{}

	l.TrackBot(1, 20)
	l.Cleanup(ctx, 1, d)
	if len(d.deleted) != 0 {
		t.Fatalf("deleted %v, want none on first pass", d.deleted)
	}

	l.TrackBot(1, 21)
	l.Cleanup(ctx, 1, d)
	if len(d.deleted) != 1 || d.deleted[0] != 20 {
		t.Errorf("deleted %v, want [20]", d.deleted)
	}
}

func TestCleanupSwallowsDeleteFailures(t *testing.T) {
	ctx := context.Background()
	l := NewLedger()
	d := &recordingDeleter{fail: map[int]error{10: errors.New("message to delete not found")}}

	l.TrackUser(1, 10)
	l.TrackUser(1, 11)
	l.Cleanup(ctx, 1, d)

	if len(d.deleted) != 1 || d.deleted[0] != 11 {
		t.Errorf("deleted %v, want [11] despite the failure on 10", d.deleted)
	}

	// Failed ids are dropped, not retried.
	l.Cleanup(ctx, 1, d)
	if len(d.deleted) != 1 {
		t.Errorf("failed delete was retried: %v", d.deleted)
	}
}

func TestCleanupUnknownUserNoop(t *testing.T) {
	l := NewLedger()
	d := &recordingDeleter{}
	l.Cleanup(context.Background(), 404, d)
	if len(d.deleted) != 0 {
		t.Errorf("deleted %v for unseen user", d.deleted)
	}
}
