package providers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
)

func newTestProvider(logger *logging.Logger) *BaseProvider {
	return &BaseProvider{
		Name: SCA,
		Client: &http.Client{
			Timeout: time.Second * 30,
		},
		Logger: logger,
	}
}

func TestMakeRequestStampsRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	logger := logging.NewLoggerWithOptions(logging.Options{RunID: "run-123"})
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	resp, err := newTestProvider(logger).MakeRequest("GET", srv.URL, nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	out := buf.String()
	if !strings.Contains(out, "External Request") {
		t.Fatalf("request log=%q", out)
	}
	if !strings.Contains(out, `"run_id":"run-123"`) {
		t.Fatalf("request log=%q", out)
	}
}

func TestMakeFormRequestStampsRunID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	t.Cleanup(srv.Close)

	logger := logging.NewLoggerWithOptions(logging.Options{RunID: "run-123"})
	var buf bytes.Buffer
	logger.SetOutput(&buf)

	form := url.Values{}
	form.Set("grant_type", "client_credentials")
	form.Set("client_secret", "svc-pass")

	resp, err := newTestProvider(logger).MakeFormRequest("POST", srv.URL, form, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	out := buf.String()
	if !strings.Contains(out, `"run_id":"run-123"`) {
		t.Fatalf("request log=%q", out)
	}

	// Field names are logged, field values never are.
	if !strings.Contains(out, "client_secret") {
		t.Fatalf("request log=%q", out)
	}
	if strings.Contains(out, "svc-pass") {
		t.Fatalf("secret reached the log: %q", out)
	}
}
