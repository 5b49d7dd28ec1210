package otp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/artcontest/contest-backend/domain"
)

const (
	initiatePath = "/initiateValidationWithOTP"
	confirmPath  = "/confirmValidationWithOTP"

	destTypeEmail = "email"
	codeExpiresIn = 5
	codeLength    = 6
	codeAlphabet  = "0123456789"
)

// Client speaks the provider's form-encoded REST protocol.
type Client struct {
	baseURL string
	system  string
	client  *http.Client
}

var _ domain.OTPProvider = (*Client)(nil)

func NewClient(baseURL, system string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		system:  system,
		client:  &http.Client{Timeout: timeout},
	}
}

func (c *Client) Initiate(ctx context.Context, email string, langID int) (domain.OTPReply, error) {
	form := url.Values{}
	form.Set("system", c.system)
	form.Set("destType", destTypeEmail)
	form.Set("destination", email)
	form.Set("langId", strconv.Itoa(langID))
	form.Set("expiresMin", strconv.Itoa(codeExpiresIn))
	form.Set("length", strconv.Itoa(codeLength))
	form.Set("chars", codeAlphabet)
	return c.post(ctx, initiatePath, form)
}

func (c *Client) Confirm(ctx context.Context, email, code string) (domain.OTPReply, error) {
	form := url.Values{}
	form.Set("system", c.system)
	form.Set("destType", destTypeEmail)
	form.Set("destination", email)
	form.Set("otp", code)
	return c.post(ctx, confirmPath, form)
}

func (c *Client) post(ctx context.Context, path string, form url.Values) (domain.OTPReply, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, strings.NewReader(form.Encode()))
	if err != nil {
		return domain.OTPReply{}, err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return domain.OTPReply{}, fmt.Errorf("otp request %s failed: %w", path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return domain.OTPReply{}, fmt.Errorf("failed to read otp response: %w", err)
	}

	logrus.WithFields(logrus.Fields{
		"path":    path,
		"status":  resp.StatusCode,
		"latency": time.Since(start),
	}).Debug("otp provider replied")

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return domain.OTPReply{}, fmt.Errorf("otp provider returned %d: %s", resp.StatusCode, string(body))
	}

	var reply domain.OTPReply
	if err := json.Unmarshal(body, &reply); err != nil {
		return domain.OTPReply{}, fmt.Errorf("failed to decode otp response: %w", err)
	}
	return reply, nil
}
