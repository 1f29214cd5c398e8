package adapter

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "twinpick.dev/pkg/twinpick/internal/model"
)

const scanResponseBody = `{
  "pairs": [
    {
      "file1": {"path": "/p/a.jpg", "resolution": [1920, 1080], "file_size": 500, "mod_time": 1.5,
                "hash": "abcd", "hash_matrix": "[1, 0, 1, 0]"},
      "file2": {"path": "/p/b.jpg", "resolution": [1280, 720], "file_size": 300, "mod_time": 2.5,
                "hash": "abce", "hash_matrix": [1, 0, 1, 1]},
      "similarity": 96.875
    }
  ]
}`

func TestHTTPScanClient_Scan(t *testing.T) {
	var got map[string]interface{}

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/scan", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))

		_, _ = w.Write([]byte(scanResponseBody))
	}))
	defer server.Close()

	client := NewHTTPScanClient(server.URL + "/")
	pairs, err := client.Scan(context.Background(), m.ScanRequest{Path: "/p", HashType: m.HashAverage, Threshold: 85})
	require.NoError(t, err)

	assert.Equal(t, map[string]interface{}{"path": "/p", "hash_type": "ahash", "threshold": 85.0}, got)

	require.Len(t, pairs, 1)
	assert.Equal(t, m.Path("/p/a.jpg"), pairs[0].File1.Path)
	assert.Equal(t, m.Resolution{Width: 1280, Height: 720}, pairs[0].File2.Resolution)
	assert.Equal(t, m.HashMatrix{1, 0, 1, 0}, pairs[0].File1.HashMatrix)
	assert.Equal(t, m.HashMatrix{1, 0, 1, 1}, pairs[0].File2.HashMatrix)
	assert.InDelta(t, 96.875, pairs[0].Similarity, 0.0001)
}

func TestHTTPScanClient_ServiceError(t *testing.T) {
	tests := []struct {
		name        string
		status      int
		body        string
		wantMessage string
	}{
		{"json error body", http.StatusBadRequest, `{"error": "Invalid directory path"}`, "Invalid directory path"},
		{"plain text body", http.StatusBadGateway, "upstream down\n", "upstream down"},
		{"empty body", http.StatusInternalServerError, "", "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			}))
			defer server.Close()

			_, err := NewHTTPScanClient(server.URL).Scan(context.Background(), m.ScanRequest{Path: "/x"})

			var serviceErr *ServiceError
			require.ErrorAs(t, err, &serviceErr)
			assert.Equal(t, tt.status, serviceErr.Status)
			assert.Equal(t, tt.wantMessage, serviceErr.Message)
		})
	}
}

func TestHTTPScanClient_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	_, err := NewHTTPScanClient(url).Scan(context.Background(), m.ScanRequest{Path: "/x"})

	var serviceErr *ServiceError
	require.ErrorAs(t, err, &serviceErr)
	assert.Zero(t, serviceErr.Status)
}

func TestHTTPScanClient_BadJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"pairs": [`))
	}))
	defer server.Close()

	_, err := NewHTTPScanClient(server.URL).Scan(context.Background(), m.ScanRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode response")
}

func TestHTTPDeleteClient_Delete(t *testing.T) {
	t.Run("echoes the deleted path", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/delete", r.URL.Path)

			var body map[string]string
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))

			_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "path": body["path"]})
		}))
		defer server.Close()

		deleted, err := NewHTTPDeleteClient(server.URL).Delete(context.Background(), "/p/a.jpg")
		require.NoError(t, err)
		assert.Equal(t, m.Path("/p/a.jpg"), deleted)
	})

	t.Run("service error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error": "File does not exist or path is invalid"}`))
		}))
		defer server.Close()

		_, err := NewHTTPDeleteClient(server.URL).Delete(context.Background(), "/p/a.jpg")

		var serviceErr *ServiceError
		require.ErrorAs(t, err, &serviceErr)
		assert.Equal(t, "File does not exist or path is invalid", serviceErr.Message)
	})

	t.Run("unconfirmed deletion", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"success": false}`))
		}))
		defer server.Close()

		_, err := NewHTTPDeleteClient(server.URL).Delete(context.Background(), "/p/a.jpg")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not confirmed")
	})
}

func TestWithRateLimit(t *testing.T) {
	var calls atomic.Int32

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		_, _ = w.Write([]byte(`{"success": true}`))
	}))
	defer server.Close()

	client := NewHTTPDeleteClient(server.URL, WithRateLimit(1))

	_, err := client.Delete(context.Background(), "/one")
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = client.Delete(ctx, "/two")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limit")
	assert.Equal(t, int32(1), calls.Load())

	assert.Nil(t, newHTTPClient("x", WithRateLimit(0)).limiter)
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	client := newHTTPClient("http://svc/", WithHTTPClient(custom))

	assert.Same(t, custom, client.client)
	assert.Equal(t, "http://svc", client.baseURL)
}

func TestServiceError_Error(t *testing.T) {
	assert.Equal(t, "boom", (&ServiceError{Message: "boom"}).Error())
	assert.Equal(t, "boom (status 400)", (&ServiceError{Status: 400, Message: "boom"}).Error())
	assert.False(t, errors.Is(&ServiceError{}, context.Canceled))
}
