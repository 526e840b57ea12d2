package askclient

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

func TestAskPostsQuestionAndReturnsAnswer(t *testing.T) {
	var gotBody []byte
	var gotType, gotPath, gotMethod string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath, gotType = r.Method, r.URL.Path, r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"question":"What is the notice period?","answer":"30 days"}`))
	}))
	defer srv.Close()

	c := New(srv.URL+"/", 0)
	answer, err := c.Ask(context.Background(), "What is the notice period?")
	require.NoError(t, err)
	require.Equal(t, "30 days", answer)
	require.Equal(t, http.MethodPost, gotMethod)
	require.Equal(t, "/ask", gotPath)
	require.Equal(t, "application/json", gotType)
	require.JSONEq(t, `{"question":"What is the notice period?"}`, string(gotBody))
}

func TestAskEmptyAnswerIsValid(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"answer":""}`))
	}))
	defer srv.Close()

	answer, err := New(srv.URL, 0).Ask(context.Background(), "q")
	require.NoError(t, err)
	require.Equal(t, "", answer)
}

func TestAskFailures(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantErr error
	}{
		{name: "server error", status: http.StatusInternalServerError, body: `{"error":"boom"}`, wantErr: ErrStatus},
		{name: "missing answer", status: http.StatusOK, body: `{"question":"q"}`, wantErr: ErrNoAnswer},
		{name: "not json", status: http.StatusOK, body: `<html>oops</html>`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := New(srv.URL, 0).Ask(context.Background(), "q")
			require.Error(t, err)
			if tc.wantErr != nil {
				require.True(t, errors.Is(err, tc.wantErr), "got %v", err)
			}
		})
	}
}

func TestAskTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	_, err := New(url, time.Second).Ask(context.Background(), "q")
	require.Error(t, err)
}

func TestAskHonoursContext(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer srv.Close()
	defer close(release)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	_, err := New(srv.URL, 0).Ask(ctx, "q")
	require.Error(t, err)
	require.True(t, errors.Is(err, context.DeadlineExceeded), "got %v", err)
}

func TestNewDefaultsBaseURL(t *testing.T) {
	require.Equal(t, DefaultBaseURL, New("  ", 0).BaseURL())
}

func TestAskRequestShape(t *testing.T) {
	b, err := json.Marshal(AskRequest{Question: "hi"})
	require.NoError(t, err)
	require.Equal(t, `{"question":"hi"}`, string(b))
}
