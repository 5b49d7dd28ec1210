package workers

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/artcontest/contest-backend/domain"
)

type recordingNotifier struct {
	mu   sync.Mutex
	got  []string
	fail bool
}

func (r *recordingNotifier) Notify(_ context.Context, n domain.SubmissionNotice) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, n.SubmissionID)
	if r.fail {
		return errors.New("boom")
	}
	return nil
}

func (r *recordingNotifier) ids() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.got...)
}

func TestNotifyWorkerDelivers(t *testing.T) {
	rec := &recordingNotifier{}
	w := NewNotifyWorker(rec)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	w.Send(domain.SubmissionNotice{SubmissionID: "a"})
	w.Send(domain.SubmissionNotice{SubmissionID: "b"})

	assert.Eventually(t, func() bool { return len(rec.ids()) == 2 }, time.Second, 10*time.Millisecond)
	cancel()
	<-done
	assert.Equal(t, []string{"a", "b"}, rec.ids())
}

func TestNotifyWorkerDrainsOnShutdown(t *testing.T) {
	rec := &recordingNotifier{}
	w := NewNotifyWorker(rec)

	w.Send(domain.SubmissionNotice{SubmissionID: "a"})
	w.Send(domain.SubmissionNotice{SubmissionID: "b"})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.ElementsMatch(t, []string{"a", "b"}, rec.ids())
}

func TestNotifyWorkerSendDropsWhenFull(t *testing.T) {
	rec := &recordingNotifier{}
	w := NewNotifyWorker(rec)

	for i := 0; i < notifyQueueSize+10; i++ {
		w.Send(domain.SubmissionNotice{SubmissionID: "x"})
	}
	assert.Len(t, w.ch, notifyQueueSize)
}

func TestNotifyWorkerSurvivesFailures(t *testing.T) {
	rec := &recordingNotifier{fail: true}
	w := NewNotifyWorker(rec)

	w.Send(domain.SubmissionNotice{SubmissionID: "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Equal(t, []string{"a"}, rec.ids())
}
