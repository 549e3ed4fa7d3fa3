package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// newTestClient cierra las conexiones keep-alive al terminar el test
// para que no queden goroutines del transport vivas.
func newTestClient(t *testing.T, ts *httptest.Server) *Client {
	t.Helper()
	tr := &http.Transport{}
	c := NewWithTransport(time.Second, tr)
	if ts != nil {
		require.NoError(t, c.SetBaseURL(ts.URL))
	}
	t.Cleanup(tr.CloseIdleConnections)
	return c
}

func newTestServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestDo_ReturnsBodyOn2xx(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/pets/pets/", r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Accept"))
		_, _ = w.Write([]byte(`{"id":1}`))
	})

	c := newTestClient(t, nil)
	require.NoError(t, c.SetBaseURL(ts.URL+"/api/"))

	raw, err := c.Do(context.Background(), "", "pets/pets/", nil, nil)
	require.NoError(t, err)
	require.JSONEq(t, `{"id":1}`, string(raw))
}

func TestDo_Non2xxIsRequestError(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusNotFound)
	})
	c := newTestClient(t, nil)

	_, err := c.Do(context.Background(), http.MethodGet, ts.URL+"/missing", nil, nil)
	require.Error(t, err)

	var re *RequestError
	require.True(t, errors.As(err, &re))
	require.Equal(t, http.StatusNotFound, re.StatusCode)
	require.Equal(t, "nope", re.Body)
	require.Equal(t, http.StatusNotFound, StatusCode(err))
}

func TestDo_HeadersReplaceDefaults(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "text/plain", r.Header.Get("Accept"))
		require.Equal(t, "yes", r.Header.Get("X-Extra"))
		body, _ := io.ReadAll(r.Body)
		require.Equal(t, "payload", string(body))
		_, _ = w.Write([]byte(`null`))
	})
	c := newTestClient(t, ts)

	h := http.Header{}
	h.Set("Accept", "text/plain")
	h.Set("X-Extra", "yes")
	_, err := c.Do(context.Background(), http.MethodPost, "/", h, []byte("payload"))
	require.NoError(t, err)
}

func TestDo_BodyOverLimitIsReported(t *testing.T) {
	ts := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`["` + strings.Repeat("x", 64) + `"]`))
	})
	c := newTestClient(t, ts)

	c.MaxBody = 16
	_, err := c.Do(context.Background(), http.MethodGet, "/big", nil, nil)
	require.ErrorIs(t, err, ErrBodyTooLarge)

	c.MaxBody = 1024
	raw, err := c.Do(context.Background(), http.MethodGet, "/big", nil, nil)
	require.NoError(t, err)
	require.Len(t, raw, 68)
}

func TestDo_TransportFailureIsWrapped(t *testing.T) {
	boom := errors.New("network unreachable")
	c := NewWithTransport(time.Second, roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, boom
	}))

	_, err := c.Do(context.Background(), http.MethodGet, "http://petstore.invalid/api/", nil, nil)
	require.ErrorIs(t, err, boom)
	require.Zero(t, StatusCode(err))
}

func TestSetBaseURL_Validation(t *testing.T) {
	c := NewWithTransport(0, nil)
	require.Equal(t, DefaultTimeout, c.HTTP.Timeout)
	require.Error(t, c.SetBaseURL("::not-a-url"))
	require.Error(t, c.SetBaseURL("ftp://host/api"))
	require.NoError(t, c.SetBaseURL("http://localhost:8000/api/"))
	require.Equal(t, "http://localhost:8000/api", c.BaseURL)

	_, err := NewWithTransport(0, nil).Do(context.Background(), http.MethodGet, "/relative", nil, nil)
	require.Error(t, err)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }
