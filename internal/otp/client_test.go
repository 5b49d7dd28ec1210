package otp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newProvider(t *testing.T, status int, body string) (*httptest.Server, *url.Values, *string) {
	t.Helper()
	form := &url.Values{}
	path := new(string)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		assert.NoError(t, r.ParseForm())
		*form = r.PostForm
		*path = r.URL.Path
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv, form, path
}

func TestClientInitiate(t *testing.T) {
	srv, form, path := newProvider(t, http.StatusOK, `{"resultCode":0,"resultText":"OK"}`)
	c := NewClient(srv.URL+"/rest/serv/app/", "contest", time.Second)

	reply, err := c.Initiate(context.Background(), "ana@x.io", 2)
	require.NoError(t, err)

	assert.Equal(t, 0, reply.ResultCode)
	assert.Nil(t, reply.Status)
	assert.Equal(t, "/rest/serv/app/initiateValidationWithOTP", *path)
	assert.Equal(t, "contest", form.Get("system"))
	assert.Equal(t, "email", form.Get("destType"))
	assert.Equal(t, "ana@x.io", form.Get("destination"))
	assert.Equal(t, "2", form.Get("langId"))
	assert.Equal(t, "5", form.Get("expiresMin"))
	assert.Equal(t, "6", form.Get("length"))
	assert.Equal(t, "0123456789", form.Get("chars"))
}

func TestClientConfirm(t *testing.T) {
	srv, form, path := newProvider(t, http.StatusOK, `{"resultCode":0,"status":-1}`)
	c := NewClient(srv.URL, "contest", time.Second)

	reply, err := c.Confirm(context.Background(), "ana@x.io", "123456")
	require.NoError(t, err)

	require.NotNil(t, reply.Status)
	assert.Equal(t, -1, *reply.Status)
	assert.Equal(t, "/confirmValidationWithOTP", *path)
	assert.Equal(t, "123456", form.Get("otp"))
}

func TestClientHTTPError(t *testing.T) {
	srv, _, _ := newProvider(t, http.StatusBadGateway, `bad gateway`)
	c := NewClient(srv.URL, "contest", time.Second)

	_, err := c.Initiate(context.Background(), "ana@x.io", 1)
	assert.Error(t, err)
}

func TestClientBadBody(t *testing.T) {
	srv, _, _ := newProvider(t, http.StatusOK, `<html>`)
	c := NewClient(srv.URL, "contest", time.Second)

	_, err := c.Confirm(context.Background(), "ana@x.io", "1")
	assert.Error(t, err)
}

func TestClientUnreachable(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", "contest", 200*time.Millisecond)

	_, err := c.Initiate(context.Background(), "ana@x.io", 1)
	assert.Error(t, err)
}
