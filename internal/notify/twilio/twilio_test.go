package twilio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/linnemanlabs/skywarn/internal/evidence"
)

func TestSend_PostsMessage(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/2010-04-01/Accounts/AC123/Messages.json" {
			t.Errorf("path = %q", r.URL.Path)
		}
		user, pass, ok := r.BasicAuth()
		if !ok || user != "AC123" || pass != "secret" {
			t.Errorf("basic auth = %q/%q ok=%v", user, pass, ok)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.PostFormValue("To"); got != "+15550001111" {
			t.Errorf("To = %q", got)
		}
		if got := r.PostFormValue("From"); got != "+15552223333" {
			t.Errorf("From = %q", got)
		}
		if got := r.PostFormValue("Body"); got != "MODERATE ALERT: Flood in Chennai. Stay indoors." {
			t.Errorf("Body = %q", got)
		}
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"sid":"SM1"}`))
	}))
	defer srv.Close()

	n := New(srv.URL, "AC123", "secret", "+15552223333", "+15550001111")
	alert := evidence.Alert{
		Level: evidence.SeverityModerate,
		Body:  "MODERATE ALERT: Flood in Chennai. Stay indoors.",
	}
	if err := n.Send(context.Background(), alert); err != nil {
		t.Fatalf("Send: %v", err)
	}
}

func TestSend_APIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"code": 20003, "message": "Authenticate"}`))
	}))
	defer srv.Close()

	n := New(srv.URL, "AC123", "wrong", "+15552223333", "+15550001111")
	err := n.Send(context.Background(), evidence.Alert{Body: "test"})
	if err == nil {
		t.Fatal("expected error on 401 response")
	}
	if !strings.Contains(err.Error(), "401") {
		t.Errorf("error = %q, want to contain status code 401", err.Error())
	}
}

func TestNew_DefaultBaseURL(t *testing.T) {
	t.Parallel()

	n := New("", "AC123", "secret", "+1", "+2")
	if n.baseURL != defaultBaseURL {
		t.Errorf("baseURL = %q, want %q", n.baseURL, defaultBaseURL)
	}
}
