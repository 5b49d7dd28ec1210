package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
)

const DefaultTelegramAPI = "https://api.telegram.org"

// Telegram posts new submissions to a chat through the Bot API.
type Telegram struct {
	apiURL string
	token  string
	chatID string
	client *http.Client
}

var _ domain.Notifier = (*Telegram)(nil)

func NewTelegram(apiURL, token, chatID string, timeout time.Duration) *Telegram {
	if apiURL == "" {
		apiURL = DefaultTelegramAPI
	}
	return &Telegram{
		apiURL: strings.TrimRight(apiURL, "/"),
		token:  token,
		chatID: chatID,
		client: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether both the token and the chat are configured.
func (t *Telegram) Enabled() bool {
	return t.token != "" && t.chatID != ""
}

type telegramReply struct {
	OK          bool   `json:"ok"`
	Description string `json:"description"`
}

// Notify uploads the file itself when it is on local disk, otherwise sends its URL.
func (t *Telegram) Notify(ctx context.Context, n domain.SubmissionNotice) error {
	if !t.Enabled() {
		logrus.Debug("telegram is not configured, notice skipped")
		return nil
	}
	if n.LocalPath != "" {
		return t.sendDocument(ctx, n)
	}
	return t.sendMessage(ctx, n)
}

func caption(n domain.SubmissionNotice) string {
	return fmt.Sprintf("📥 New submission:\n👤 %s\n✉️ %s\n🎨 %s\n📝 %s",
		n.Nickname, n.Email, domain.CategoryLabel(n.Category), n.Description)
}

func (t *Telegram) sendMessage(ctx context.Context, n domain.SubmissionNotice) error {
	form := url.Values{}
	form.Set("chat_id", t.chatID)
	form.Set("text", caption(n)+"\n🔗 "+n.FileURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.method("sendMessage"), strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return t.do(req)
}

func (t *Telegram) sendDocument(ctx context.Context, n domain.SubmissionNotice) error {
	f, err := os.Open(n.LocalPath)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", n.LocalPath, err)
	}
	defer f.Close()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("chat_id", t.chatID)
	_ = w.WriteField("caption", caption(n))

	part, err := w.CreateFormFile("document", filepath.Base(n.LocalPath))
	if err != nil {
		return err
	}
	if _, err := io.Copy(part, f); err != nil {
		return fmt.Errorf("failed to read %s: %w", n.LocalPath, err)
	}
	if err := w.Close(); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.method("sendDocument"), &body)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	return t.do(req)
}

func (t *Telegram) method(name string) string {
	return fmt.Sprintf("%s/bot%s/%s", t.apiURL, t.token, name)
}

func (t *Telegram) do(req *http.Request) error {
	resp, err := t.client.Do(req)
	if err != nil {
		return fmt.Errorf("telegram request failed: %w", err)
	}
	defer resp.Body.Close()

	var reply telegramReply
	if err := json.NewDecoder(resp.Body).Decode(&reply); err != nil {
		return fmt.Errorf("telegram returned %d: %w", resp.StatusCode, err)
	}
	if !reply.OK {
		return fmt.Errorf("telegram API error: %s", reply.Description)
	}
	return nil
}
