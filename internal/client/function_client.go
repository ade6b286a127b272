package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"mailgenie/internal/model"
)

const msgEmptyEmail = "function returned an empty email"

// Invoker sends one EmailRequest to the generate-email function.
type Invoker interface {
	Invoke(ctx context.Context, req model.EmailRequest) (string, error)
}

// FunctionClient talks to the generate-email function over HTTP. It sets no
// timeout of its own.
type FunctionClient struct {
	url        string
	httpClient *http.Client
}

func NewFunctionClient(url string, httpClient *http.Client) *FunctionClient {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &FunctionClient{
		url:        url,
		httpClient: httpClient,
	}
}

// Invoke returns the generated email, or an error carrying the function's
// {error} message when there is one.
func (c *FunctionClient) Invoke(ctx context.Context, req model.EmailRequest) (string, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return "", fmt.Errorf("json.Marshal failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to generate email: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	var out model.EmailResponse
	decodeErr := json.Unmarshal(respBody, &out)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		if decodeErr == nil && out.Error != "" {
			return "", &FunctionError{StatusCode: resp.StatusCode, Message: out.Error}
		}
		return "", &FunctionError{
			StatusCode: resp.StatusCode,
			Message:    fmt.Sprintf("function returned status %d", resp.StatusCode),
		}
	}

	if decodeErr != nil {
		return "", fmt.Errorf("failed to decode response: %w", decodeErr)
	}
	if out.Error != "" {
		return "", &FunctionError{StatusCode: resp.StatusCode, Message: out.Error}
	}
	if out.GeneratedEmail == "" {
		return "", &FunctionError{StatusCode: resp.StatusCode, Message: msgEmptyEmail}
	}

	return out.GeneratedEmail, nil
}

// FunctionError is an error reported by the function itself.
type FunctionError struct {
	StatusCode int
	Message    string
}

func (e *FunctionError) Error() string {
	return e.Message
}

// IsFunctionError reports whether err came back from the function rather
// than from the network.
func IsFunctionError(err error) bool {
	var fe *FunctionError
	return errors.As(err, &fe)
}
