package client_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mailgenie/internal/client"
	"mailgenie/internal/model"
)

func TestInvokeSuccess(t *testing.T) {
	var got model.EmailRequest
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		_, _ = w.Write([]byte(`{"generatedEmail":"Dear Jane,"}`))
	}))
	defer srv.Close()

	req := model.EmailRequest{
		EmailType: model.KindNew,
		FormData:  model.FormData{Subject: "Hi", Context: "Hello", Tone: model.ToneFormal},
	}
	out, err := client.NewFunctionClient(srv.URL, nil).Invoke(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Dear Jane,", out)
	assert.Equal(t, req, got)
}

func TestInvokeErrors(t *testing.T) {
	cases := []struct {
		name    string
		status  int
		body    string
		wantMsg string
	}{
		{"rate limited", http.StatusTooManyRequests, `{"error":"Rate limit exceeded. Please try again in a moment."}`, "Rate limit exceeded. Please try again in a moment."},
		{"server error", http.StatusInternalServerError, `{"error":"Invalid email type"}`, "Invalid email type"},
		{"no body", http.StatusBadGateway, ``, "function returned status 502"},
		{"error on 200", http.StatusOK, `{"error":"something broke"}`, "something broke"},
		{"no fields on 200", http.StatusOK, `{}`, "function returned an empty email"},
		{"empty email on 200", http.StatusOK, `{"generatedEmail":""}`, "function returned an empty email"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer srv.Close()

			_, err := client.NewFunctionClient(srv.URL, nil).Invoke(context.Background(), model.EmailRequest{EmailType: model.KindReply})

			var fe *client.FunctionError
			require.True(t, errors.As(err, &fe))
			assert.Equal(t, tc.status, fe.StatusCode)
			assert.Equal(t, tc.wantMsg, err.Error())
			assert.True(t, client.IsFunctionError(err))
		})
	}
}

func TestInvokeTransportError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := client.NewFunctionClient(url, nil).Invoke(context.Background(), model.EmailRequest{EmailType: model.KindReply})
	require.Error(t, err)
	assert.False(t, client.IsFunctionError(err))
}
