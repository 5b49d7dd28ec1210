package domain

import "context"

// SubmissionNotice is what the notification channel learns about a new entry
type SubmissionNotice struct {
	SubmissionID string
	Nickname     string
	Email        string
	Category     string
	Description  string
	FileURL      string
	Storage      string
	LocalPath    string // set when the file is on local disk
}

// Notifier delivers a notice to an outside channel.
type Notifier interface {
	Notify(ctx context.Context, n SubmissionNotice) error
}

// NotificationWorker dispatches notices in the background.
type NotificationWorker interface {
	Start(ctx context.Context)

	// Send never blocks. Notices are dropped when the queue is full.
	Send(n SubmissionNotice)
}
