package httpserver_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"mailgenie/internal/config"
	"mailgenie/internal/gateway"
	"mailgenie/internal/handler"
	"mailgenie/internal/httpserver"
	"mailgenie/internal/service/email"
)

const allowHeaders = "authorization, x-client-info, apikey, content-type"

type fakeUpstream struct {
	calls    atomic.Int32
	lastUser string
	status   int
	body     string
}

func (u *fakeUpstream) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	u.calls.Add(1)
	var req gateway.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err == nil && len(req.Messages) == 2 {
		u.lastUser = req.Messages[1].Content
	}
	w.WriteHeader(u.status)
	_, _ = w.Write([]byte(u.body))
}

func newTestServer(t *testing.T, apiKey string, u *fakeUpstream) *httptest.Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	upstreamSrv := httptest.NewServer(u)
	t.Cleanup(upstreamSrv.Close)

	logger := zap.NewNop()
	client := gateway.NewClient(gateway.Options{
		URL:    upstreamSrv.URL,
		Model:  config.DefaultUpstreamModel,
		APIKey: apiKey,
	}, logger)
	svc := email.NewService(apiKey, client, logger)
	router := httpserver.NewRouter(handler.NewGenerateHandler(svc, logger), config.Default().CORS, logger)

	srv := httptest.NewServer(router.Engine)
	t.Cleanup(srv.Close)
	return srv
}

func post(t *testing.T, url, body string) (*http.Response, map[string]string) {
	t.Helper()
	resp, err := http.Post(url, "application/json", strings.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()

	out := map[string]string{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return resp, out
}

func assertCORS(t *testing.T, h http.Header) {
	t.Helper()
	assert.Equal(t, "*", h.Get("Access-Control-Allow-Origin"))
	assert.Equal(t, allowHeaders, h.Get("Access-Control-Allow-Headers"))
}

func TestReplyRoundTrip(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{"choices":[{"message":{"content":"Friday is perfect!"}}]}`}
	srv := newTestServer(t, "key", u)

	resp, out := post(t, srv.URL+"/generate-email",
		`{"emailType":"reply","formData":{"existingEmail":"Hi, can we meet Friday?","tone":"friendly"}}`)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, map[string]string{"generatedEmail": "Friday is perfect!"}, out)
	assert.EqualValues(t, 1, u.calls.Load())
	assert.Contains(t, u.lastUser, "Hi, can we meet Friday?")
	assert.Contains(t, u.lastUser, "friendly")
	assertCORS(t, resp.Header)
}

func TestRootPathAlsoGenerates(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{"choices":[{"message":{"content":"ok"}}]}`}
	srv := newTestServer(t, "key", u)

	resp, out := post(t, srv.URL+"/", `{"emailType":"summarize","formData":{"existingEmail":"x","tone":"formal"}}`)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "ok", out["generatedEmail"])
}

func TestUpstreamStatusMapping(t *testing.T) {
	cases := []struct {
		name       string
		upstream   int
		wantStatus int
		wantError  string
	}{
		{"rate limited", http.StatusTooManyRequests, http.StatusTooManyRequests, "Rate limit exceeded. Please try again in a moment."},
		{"credits depleted", http.StatusPaymentRequired, http.StatusPaymentRequired, "AI credits depleted. Please add more credits to continue."},
		{"outage", http.StatusServiceUnavailable, http.StatusInternalServerError, "AI gateway error: 503"},
		{"unauthorized", http.StatusUnauthorized, http.StatusInternalServerError, "AI gateway error: 401"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &fakeUpstream{status: tc.upstream, body: `{"error":"upstream says no"}`}
			srv := newTestServer(t, "key", u)

			resp, out := post(t, srv.URL+"/generate-email",
				`{"emailType":"reformat","formData":{"existingEmail":"send it","tone":"apologetic"}}`)

			assert.Equal(t, tc.wantStatus, resp.StatusCode)
			assert.Equal(t, map[string]string{"error": tc.wantError}, out)
			assert.EqualValues(t, 1, u.calls.Load())
			assertCORS(t, resp.Header)
		})
	}
}

func TestInvalidEmailTypeSkipsUpstream(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{}`}
	srv := newTestServer(t, "key", u)

	resp, out := post(t, srv.URL+"/generate-email", `{"emailType":"bogus","formData":{"existingEmail":"x","tone":"formal"}}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "Invalid email type", out["error"])
	assert.EqualValues(t, 0, u.calls.Load())
}

func TestMissingFormDataSkipsUpstream(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{}`}
	srv := newTestServer(t, "key", u)

	resp, out := post(t, srv.URL+"/generate-email", `{"emailType":"reply"}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "invalid request body", out["error"])
	assert.EqualValues(t, 0, u.calls.Load())
	assertCORS(t, resp.Header)
}

func TestMissingAPIKey(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{}`}
	srv := newTestServer(t, "", u)

	resp, out := post(t, srv.URL+"/generate-email", `{"emailType":"new","formData":{"subject":"s","context":"c","tone":"formal"}}`)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Equal(t, "AI_GATEWAY_API_KEY is not configured", out["error"])
	assert.EqualValues(t, 0, u.calls.Load())
	assertCORS(t, resp.Header)
}

func TestPreflight(t *testing.T) {
	u := &fakeUpstream{status: http.StatusOK, body: `{}`}
	srv := newTestServer(t, "key", u)

	for _, path := range []string{"/", "/generate-email", "/anything/else"} {
		req, err := http.NewRequest(http.MethodOptions, srv.URL+path, nil)
		require.NoError(t, err)
		req.Header.Set("Origin", "https://example.com")
		req.Header.Set("Access-Control-Request-Method", "POST")

		resp, err := http.DefaultClient.Do(req)
		require.NoError(t, err)
		body, err := io.ReadAll(resp.Body)
		resp.Body.Close()
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Empty(t, body, path)
		assertCORS(t, resp.Header)
		assert.Empty(t, resp.Header.Get("Allow"), path)
	}
	assert.EqualValues(t, 0, u.calls.Load())
}

func TestHealthz(t *testing.T) {
	srv := newTestServer(t, "key", &fakeUpstream{status: http.StatusOK})

	resp, err := http.Get(srv.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assertCORS(t, resp.Header)
	assert.NotEmpty(t, resp.Header.Get("X-Trace-ID"))
}

func TestMethodNotAllowed(t *testing.T) {
	srv := newTestServer(t, "key", &fakeUpstream{status: http.StatusOK})

	resp, err := http.Get(srv.URL + "/generate-email")
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
	assertCORS(t, resp.Header)
}
