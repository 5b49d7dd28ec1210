package notify

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artcontest/contest-backend/domain"
)

type captured struct {
	path     string
	chatID   string
	text     string
	caption  string
	document string
}

func newTelegramServer(t *testing.T, ok bool) (*httptest.Server, *captured) {
	t.Helper()
	got := &captured{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.path = r.URL.Path
		if r.URL.Path == "/botTOKEN/sendDocument" {
			assert.NoError(t, r.ParseMultipartForm(1<<20))
			got.chatID = r.FormValue("chat_id")
			got.caption = r.FormValue("caption")
			if f, _, err := r.FormFile("document"); assert.NoError(t, err) {
				data, _ := io.ReadAll(f)
				got.document = string(data)
			}
		} else {
			assert.NoError(t, r.ParseForm())
			got.chatID = r.FormValue("chat_id")
			got.text = r.FormValue("text")
		}

		w.Header().Set("Content-Type", "application/json")
		if ok {
			_, _ = w.Write([]byte(`{"ok":true}`))
			return
		}
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"ok":false,"description":"Bad Request: chat not found"}`))
	}))
	t.Cleanup(srv.Close)
	return srv, got
}

func notice() domain.SubmissionNotice {
	return domain.SubmissionNotice{
		SubmissionID: "id-1",
		Nickname:     "ana",
		Email:        "ana@x.io",
		Category:     "nature",
		Description:  "sunset",
		FileURL:      "http://minio:9000/contest/1-ana.jpg",
		Storage:      domain.StorageMinio,
	}
}

func TestTelegramSendMessage(t *testing.T) {
	srv, got := newTelegramServer(t, true)
	tg := NewTelegram(srv.URL, "TOKEN", "42", time.Second)

	require.NoError(t, tg.Notify(context.Background(), notice()))

	assert.Equal(t, "/botTOKEN/sendMessage", got.path)
	assert.Equal(t, "42", got.chatID)
	assert.Contains(t, got.text, "ana@x.io")
	assert.Contains(t, got.text, "http://minio:9000/contest/1-ana.jpg")
}

func TestTelegramSendDocument(t *testing.T) {
	srv, got := newTelegramServer(t, true)
	tg := NewTelegram(srv.URL, "TOKEN", "42", time.Second)

	path := filepath.Join(t.TempDir(), "1-ana.jpg")
	require.NoError(t, os.WriteFile(path, []byte("jpeg-bytes"), 0o644))

	n := notice()
	n.Storage = domain.StorageLocal
	n.LocalPath = path
	require.NoError(t, tg.Notify(context.Background(), n))

	assert.Equal(t, "/botTOKEN/sendDocument", got.path)
	assert.Equal(t, "42", got.chatID)
	assert.Contains(t, got.caption, "sunset")
	assert.Equal(t, "jpeg-bytes", got.document)
}

func TestTelegramAPIError(t *testing.T) {
	srv, _ := newTelegramServer(t, false)
	tg := NewTelegram(srv.URL, "TOKEN", "42", time.Second)

	err := tg.Notify(context.Background(), notice())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "chat not found")
}

func TestTelegramDisabled(t *testing.T) {
	tg := NewTelegram("http://127.0.0.1:1", "", "", time.Second)

	assert.False(t, tg.Enabled())
	assert.NoError(t, tg.Notify(context.Background(), notice()))
}
