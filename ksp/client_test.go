package ksp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// verifyOK answers the authentication probe and 404s everything else.
func verifyOK(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == "/api/auth/verify" {
		w.WriteHeader(http.StatusOK)
		return
	}
	http.NotFound(w, r)
}

func newTestClient(t *testing.T, handler http.HandlerFunc, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	opts = append([]Option{WithBaseURL(server.URL)}, opts...)
	client, err := NewClient("sk_test_1234567890ab", zerolog.Nop(), opts...)
	require.NoError(t, err)
	return client, server
}

func TestNewClient_KeyValidation(t *testing.T) {
	var requests atomic.Int64
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		verifyOK(w, r)
	}))
	defer server.Close()

	tests := []struct {
		name   string
		apiKey string
		errMsg string
	}{
		{
			name:   "empty key",
			apiKey: "",
			errMsg: "non-empty",
		},
		{
			name:   "wrong prefix",
			apiKey: "pk_test_1234567890",
			errMsg: "must start with 'sk_'",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewClient(tt.apiKey, zerolog.Nop(), WithBaseURL(server.URL))
			require.Error(t, err)

			var apiErr *Error
			require.ErrorAs(t, err, &apiErr)
			assert.Equal(t, KindValidation, apiErr.Kind)
			assert.Contains(t, apiErr.Message, tt.errMsg)
		})
	}

	// Format validation happens before any network activity.
	assert.Equal(t, int64(0), requests.Load())
}

func TestNewClient_VerifiesAuthentication(t *testing.T) {
	var probed atomic.Bool
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/verify" {
			probed.Store(true)
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "Bearer sk_test_1234567890ab", r.Header.Get("Authorization"))
			assert.Equal(t, userAgent, r.Header.Get("User-Agent"))
			assert.Equal(t, "application/json", r.Header.Get("Accept"))
		}
		verifyOK(w, r)
	})

	assert.NotNil(t, client)
	assert.True(t, probed.Load())
}

func TestNewClient_ProbeRejected(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden, http.StatusInternalServerError} {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))

		_, err := NewClient("sk_test_1234567890ab", zerolog.Nop(), WithBaseURL(server.URL))
		server.Close()

		var apiErr *Error
		require.ErrorAs(t, err, &apiErr, "status %d", status)
		assert.Equal(t, KindAuthentication, apiErr.Kind, "status %d", status)
		assert.Contains(t, apiErr.Message, "settings/api-keys")
	}
}

func TestNewClient_ProbeUnreachable(t *testing.T) {
	// Grab a URL that refuses connections by closing the server first.
	server := httptest.NewServer(http.HandlerFunc(verifyOK))
	url := server.URL
	server.Close()

	_, err := NewClient("sk_test_1234567890ab", zerolog.Nop(), WithBaseURL(url))

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "failed to verify authentication")
}

func TestNewClient_TrimsTrailingSlash(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(verifyOK))
	defer server.Close()

	client, err := NewClient("sk_test_1234567890ab", zerolog.Nop(), WithBaseURL(server.URL+"/"))
	require.NoError(t, err)
	assert.Equal(t, server.URL, client.baseURL)
}

func TestClientOptions(t *testing.T) {
	t.Run("with timeout", func(t *testing.T) {
		client, _ := newTestClient(t, verifyOK, WithTimeout(5*time.Second))
		assert.Equal(t, 5*time.Second, client.timeout)
	})

	t.Run("with custom http client", func(t *testing.T) {
		custom := &http.Client{}
		client, _ := newTestClient(t, verifyOK, WithHTTPClient(custom))
		assert.Equal(t, custom, client.httpClient)
	})

	t.Run("defaults", func(t *testing.T) {
		client, _ := newTestClient(t, verifyOK)
		assert.Equal(t, DefaultTimeout, client.timeout)
	})
}

func TestRequestTimeout(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/api/auth/verify" {
			w.WriteHeader(http.StatusOK)
			return
		}
		time.Sleep(500 * time.Millisecond)
	}, WithTimeout(50*time.Millisecond))

	_, err := client.GetArticle(context.Background(), "pub_1")

	var apiErr *Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, KindNetwork, apiErr.Kind)
	assert.Contains(t, apiErr.Message, "request timeout after")
}

func TestClient_Close(t *testing.T) {
	client, _ := newTestClient(t, verifyOK)

	// Close must be idempotent.
	client.Close()
	client.Close()
}

func TestClient_CloseOnEveryExitPath(t *testing.T) {
	var closes int
	run := func(fail bool) (err error) {
		client, _ := newTestClient(t, verifyOK)
		defer func() {
			client.Close()
			closes++
			if r := recover(); r != nil {
				err = assert.AnError
			}
		}()

		if fail {
			panic("mid-block failure")
		}
		return nil
	}

	require.NoError(t, run(false))
	require.Error(t, run(true))
	assert.Equal(t, 2, closes)
}
