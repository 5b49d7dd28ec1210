package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
)

const (
	notifyQueueSize = 1024
	notifyTimeout   = 30 * time.Second
)

type notifyWorker struct {
	notifier domain.Notifier
	ch       chan domain.SubmissionNotice
	timeout  time.Duration
}

var _ domain.NotificationWorker = (*notifyWorker)(nil)

func NewNotifyWorker(n domain.Notifier) *notifyWorker {
	return &notifyWorker{
		notifier: n,
		ch:       make(chan domain.SubmissionNotice, notifyQueueSize),
		timeout:  notifyTimeout,
	}
}

// Send queues a notice. It never blocks the request that triggered it.
func (w *notifyWorker) Send(n domain.SubmissionNotice) {
	select {
	case w.ch <- n:
	default:
		logrus.WithField("submission", n.SubmissionID).Warn("notify worker's channel is full, notice dropped")
	}
}

// Start delivers notices until ctx is done, then drains what is already queued.
func (w *notifyWorker) Start(ctx context.Context) {
	for {
		select {
		case n := <-w.ch:
			w.deliver(ctx, n)
		case <-ctx.Done():
			logrus.Info("shutting down notify worker, flushing remaining notices...")
			w.drain()
			return
		}
	}
}

func (w *notifyWorker) drain() {
	for {
		select {
		case n := <-w.ch:
			w.deliver(context.Background(), n)
		default:
			return
		}
	}
}

func (w *notifyWorker) deliver(parent context.Context, n domain.SubmissionNotice) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), w.timeout)
	defer cancel()

	if err := w.notifier.Notify(ctx, n); err != nil {
		logrus.WithError(err).WithField("submission", n.SubmissionID).Error("failed to send submission notice")
		return
	}
	logrus.WithField("submission", n.SubmissionID).Info("submission notice sent")
}
