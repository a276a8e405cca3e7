package providers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/secopshq/cyberark-policy-retriever/services/monitoring/logging"
)

const (
	Identity = "IDENTITY"
	SCA      = "SCA"
	SIA      = "SIA"
)

// BaseProvider contains common fields and methods. Logger is the run logger
// handed down at construction, so request lines carry the run correlation id.
type BaseProvider struct {
	Name    string
	BaseURL string
	Client  *http.Client
	Logger  *logging.Logger
}

// Request Processing
func (p *BaseProvider) MakeRequest(method, requestURL string, body interface{}, extraHeaders map[string]string) (*http.Response, error) {

	requestLog := struct {
		Provider string
		Method   string
		URL      string
	}{
		Provider: p.Name,
		Method:   method,
		URL:      requestURL,
	}

	p.Logger.Info("External Request", requestLog)

	var req *http.Request
	var err error

	if body != nil {
		jsonBody, marshalErr := json.Marshal(body)
		if marshalErr != nil {
			return nil, marshalErr
		}
		req, err = http.NewRequest(method, requestURL, bytes.NewBuffer(jsonBody))
	} else {
		req, err = http.NewRequest(method, requestURL, nil)
	}

	if err != nil {
		return nil, err
	}

	// Set headers
	req.Header.Set("Content-Type", "application/json")
	// Allows for overwriting pre-set keys
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	// Make the request
	return p.Client.Do(req)
}

// MakeFormRequest submits url-encoded form fields. Only the field names reach
// the log line; the values may carry client secrets.
func (p *BaseProvider) MakeFormRequest(method, requestURL string, form url.Values, extraHeaders map[string]string) (*http.Response, error) {

	fields := make([]string, 0, len(form))
	for k := range form {
		fields = append(fields, k)
	}
	sort.Strings(fields)

	requestLog := struct {
		Provider string
		Method   string
		URL      string
		Fields   []string
	}{
		Provider: p.Name,
		Method:   method,
		URL:      requestURL,
		Fields:   fields,
	}

	p.Logger.Info("External Request", requestLog)

	req, err := http.NewRequest(method, requestURL, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, err
	}

	// Set headers
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	// Allows for overwriting pre-set keys
	for k, v := range extraHeaders {
		req.Header.Set(k, v)
	}

	// Make the request
	return p.Client.Do(req)
}
