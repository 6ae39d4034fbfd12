package ksp

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	// DefaultBaseURL is the production API endpoint.
	DefaultBaseURL = "https://api.bugbounty-ksp.com"
	// DefaultTimeout is the default per-request timeout.
	DefaultTimeout = 30 * time.Second

	// authProbeTimeout bounds the verification probe at construction. It
	// is deliberately shorter than DefaultTimeout: the probe is a
	// liveness check, not a data operation.
	authProbeTimeout = 5 * time.Second

	keyPrefix      = "sk_"
	userAgent      = "BugBountyKSP-SDK/1.0 (Go)"
	verifyEndpoint = "/api/auth/verify"
)

// Client wraps the BugBountyKE-KSP publishing API.
//
// A Client is safe for sequential reuse across operations. Concurrent use
// from multiple goroutines is only as safe as the underlying
// *http.Client, which is shared; that contract is inherited from
// net/http, not guaranteed by this layer.
type Client struct {
	baseURL    string
	apiKey     string
	timeout    time.Duration
	httpClient *http.Client
	logger     zerolog.Logger
}

// NewClient creates a new API client and verifies the key against the
// server before returning. A successfully constructed client therefore
// always holds a currently valid key; callers never discover a bad
// credential mid-workflow.
//
// NewClient fails with a KindValidation error when the key does not match
// the sk_ format, with a KindAuthentication error when the server rejects
// the key, and with a KindNetwork error when the server is unreachable.
func NewClient(apiKey string, logger zerolog.Logger, opts ...Option) (*Client, error) {
	if apiKey == "" {
		return nil, &Error{Kind: KindValidation, Message: "API key must be a non-empty string"}
	}
	if !strings.HasPrefix(apiKey, keyPrefix) {
		return nil, &Error{Kind: KindValidation, Message: "invalid API key format, must start with 'sk_'"}
	}

	options := clientOptions{
		baseURL:   DefaultBaseURL,
		timeout:   DefaultTimeout,
		verifyTLS: true,
	}
	for _, opt := range opts {
		opt(&options)
	}

	httpClient := options.httpClient
	if httpClient == nil {
		transport := http.DefaultTransport.(*http.Transport).Clone()
		if !options.verifyTLS {
			transport.TLSClientConfig = &tls.Config{InsecureSkipVerify: true}
		}
		httpClient = &http.Client{Transport: transport}
	}

	client := &Client{
		baseURL:    strings.TrimRight(options.baseURL, "/"),
		apiKey:     apiKey,
		timeout:    options.timeout,
		httpClient: httpClient,
		logger:     logger,
	}

	if err := client.verifyAuthentication(context.Background()); err != nil {
		return nil, err
	}

	return client, nil
}

// verifyAuthentication probes the verification endpoint to confirm the
// key is currently valid.
func (c *Client) verifyAuthentication(ctx context.Context) error {
	status, _, err := c.doRequest(ctx, http.MethodGet, verifyEndpoint, nil, nil, authProbeTimeout)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Kind == KindNetwork {
			return &Error{
				Kind:    KindNetwork,
				Message: fmt.Sprintf("failed to verify authentication: %s", apiErr.Message),
			}
		}
		statusCode := 0
		var payload map[string]any
		if errors.As(err, &apiErr) {
			statusCode = apiErr.StatusCode
			payload = apiErr.Payload
		}
		return &Error{
			Kind:       KindAuthentication,
			Message:    "invalid API key, verify at https://bugbounty-ksp.com/settings/api-keys",
			StatusCode: statusCode,
			Payload:    payload,
		}
	}
	if status != http.StatusOK {
		return &Error{
			Kind:       KindAuthentication,
			Message:    "invalid API key, verify at https://bugbounty-ksp.com/settings/api-keys",
			StatusCode: status,
		}
	}

	c.logger.Debug().Msg("API key verified")
	return nil
}

// multipartForm carries the pieces of a multipart/form-data request body.
type multipartForm struct {
	fields map[string]string
	images map[string][]byte
}

// doRequest makes an authenticated request and returns the status code
// and body on success (status < 400). Exactly one of jsonBody and form
// may be set; with neither the request has no body. A timeout of zero
// uses the client default. Transport failures come back as KindNetwork
// errors, error statuses as classified *Error values. A single attempt is
// made; there is no retry.
func (c *Client) doRequest(ctx context.Context, method, endpoint string, jsonBody any, form *multipartForm, timeout time.Duration) (int, []byte, error) {
	if timeout <= 0 {
		timeout = c.timeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var body io.Reader
	contentType := ""
	switch {
	case form != nil:
		buf, boundary, err := encodeMultipart(form)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode multipart body: %w", err)
		}
		body = buf
		contentType = boundary
	case jsonBody != nil:
		encoded, err := json.Marshal(jsonBody)
		if err != nil {
			return 0, nil, fmt.Errorf("failed to encode request body: %w", err)
		}
		body = bytes.NewReader(encoded)
		contentType = "application/json"
	}

	requestURL := c.baseURL + endpoint
	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	c.logger.Debug().
		Str("method", method).
		Str("url", requestURL).
		Msg("Making KSP API request")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, networkError(err, timeout)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, networkError(err, timeout)
	}

	if resp.StatusCode >= 400 {
		return resp.StatusCode, nil, classifyResponse(resp.StatusCode, respBody)
	}

	return resp.StatusCode, respBody, nil
}

// networkError wraps a transport-level failure. Timeouts and connection
// failures share the KindNetwork kind and differ in message only.
func networkError(err error, timeout time.Duration) *Error {
	var urlErr *url.Error
	timedOut := errors.Is(err, context.DeadlineExceeded)
	if errors.As(err, &urlErr) && urlErr.Timeout() {
		timedOut = true
	}
	if timedOut {
		return &Error{Kind: KindNetwork, Message: fmt.Sprintf("request timeout after %s", timeout)}
	}
	return &Error{Kind: KindNetwork, Message: fmt.Sprintf("connection failed: %s", err)}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func escapeQuotes(s string) string {
	return quoteEscaper.Replace(s)
}

// encodeMultipart builds a multipart/form-data body. Scalar fields are
// written as plain form fields; each image becomes its own file part
// named images[<filename>]. Parts are written in sorted key order.
func encodeMultipart(form *multipartForm) (*bytes.Buffer, string, error) {
	buf := &bytes.Buffer{}
	writer := multipart.NewWriter(buf)

	for _, name := range sortedKeys(form.fields) {
		if err := writer.WriteField(name, form.fields[name]); err != nil {
			return nil, "", err
		}
	}

	for _, filename := range sortedKeys(form.images) {
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition",
			fmt.Sprintf(`form-data; name="images[%s]"; filename="%s"`,
				escapeQuotes(filename), escapeQuotes(filename)))
		part, err := writer.CreatePart(h)
		if err != nil {
			return nil, "", err
		}
		if _, err := part.Write(form.images[filename]); err != nil {
			return nil, "", err
		}
	}

	if err := writer.Close(); err != nil {
		return nil, "", err
	}

	return buf, writer.FormDataContentType(), nil
}

func sortedKeys[V any](m map[string]V) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Close releases idle connections held by the transport. It is safe to
// call more than once; after Close the client can still make requests,
// new connections are simply dialed on demand.
func (c *Client) Close() {
	if c.httpClient != nil {
		c.httpClient.CloseIdleConnections()
	}
}
