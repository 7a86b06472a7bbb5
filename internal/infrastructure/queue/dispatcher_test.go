package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/payrollhq/payroll-system/internal/core/domain"
	"github.com/payrollhq/payroll-system/internal/core/ports"
)

type recordingService struct {
	mu        sync.Mutex
	processed []ports.PunchInput
	done      chan struct{}
	expect    int
}

func newRecordingService(expect int) *recordingService {
	return &recordingService{done: make(chan struct{}), expect: expect}
}

func (s *recordingService) Process(_ context.Context, punch ports.PunchInput) error {
	s.mu.Lock()
	s.processed = append(s.processed, punch)
	if len(s.processed) == s.expect {
		close(s.done)
	}
	s.mu.Unlock()
	return nil
}

func (s *recordingService) List(_ context.Context, _ string) ([]domain.Attendance, error) {
	return nil, nil
}

func (s *recordingService) wait(t *testing.T) {
	t.Helper()
	select {
	case <-s.done:
	case <-time.After(5 * time.Second):
		t.Fatalf("timed out waiting for punches to be processed")
	}
}

func TestDispatcher_ProcessesAllPunches(t *testing.T) {
	svc := newRecordingService(4)
	d := NewDispatcher(4, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	d.EnqueueBatch([]ports.PunchInput{
		{EmployeeID: "emp_1", Type: "check_in", Timestamp: base},
		{EmployeeID: "emp_2", Type: "check_in", Timestamp: base},
		{EmployeeID: "emp_1", Type: "check_out", Timestamp: base.Add(8 * time.Hour)},
		{EmployeeID: "emp_3", Type: "check_in", Timestamp: base},
	})

	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	if len(svc.processed) != 4 {
		t.Fatalf("expected 4 processed punches, got %d", len(svc.processed))
	}
}

func TestDispatcher_PreservesPerEmployeeOrder(t *testing.T) {
	const n = 20
	svc := newRecordingService(n)
	d := NewDispatcher(3, svc, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	base := time.Date(2026, 9, 1, 9, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		d.Enqueue(ports.PunchInput{
			EmployeeID: "emp_1",
			Type:       "check_in",
			Timestamp:  base.Add(time.Duration(i) * time.Minute),
		})
	}

	svc.wait(t)

	svc.mu.Lock()
	defer svc.mu.Unlock()
	for i := 1; i < len(svc.processed); i++ {
		if !svc.processed[i].Timestamp.After(svc.processed[i-1].Timestamp) {
			t.Fatalf("punch %d processed out of order", i)
		}
	}
}

func TestDispatcher_ShardIsStablePerEmployee(t *testing.T) {
	d := NewDispatcher(5, newRecordingService(1), zerolog.Nop())

	for _, id := range []string{"emp_1", "emp_2", "another-employee"} {
		first := d.shardIndex(id)
		for i := 0; i < 10; i++ {
			if d.shardIndex(id) != first {
				t.Fatalf("shard index for %s is not deterministic", id)
			}
		}
	}
}
