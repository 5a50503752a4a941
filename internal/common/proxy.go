package common

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	OK                     int = 200
	BAD_REQUEST            int = 400
	UNAUTHORIZED           int = 401
	FORBIDDEN              int = 403
	DATA_NOT_FOUND         int = 404
	METHOD_NOT_ALLOWED     int = 405
	UNSUPPORTED_MEDIA_TYPE int = 415
	RATE_LIMIT_EXCEEDED    int = 429
	INTERNAL_SERVER_ERROR  int = 500
	BAD_GATEWAY            int = 502
	SERVICE_UNAVAILABLE    int = 503
	GATEWAY_TIMEOUT        int = 504
)

var messages = map[int]string{
	OK:                     "OK",
	BAD_REQUEST:            "Bad request",
	UNAUTHORIZED:           "Unauthorized",
	FORBIDDEN:              "Forbidden",
	DATA_NOT_FOUND:         "Data not found",
	METHOD_NOT_ALLOWED:     "Method not allowed",
	UNSUPPORTED_MEDIA_TYPE: "Unsupported media type",
	RATE_LIMIT_EXCEEDED:    "Rate limit exceeded",
	INTERNAL_SERVER_ERROR:  "Internal server error",
	BAD_GATEWAY:            "Bad gateway",
	SERVICE_UNAVAILABLE:    "Service unavailable",
	GATEWAY_TIMEOUT:        "Gateway timeout",
}

const defaultTimeout = 10 * time.Second

var (
	ErrNotFound    = errors.New("data not found")
	ErrRateLimited = errors.New("rate limit exceeded")
)

// StatusError is returned for any response that is neither a success
// nor one of the statuses with a sentinel error
type StatusError struct {
	Url        string
	StatusCode int
}

func (e *StatusError) Error() string {
	message, ok := messages[e.StatusCode]
	if !ok {
		message = "status not understood"
	}
	return fmt.Sprintf("request to %s failed: %d %s", e.Url, e.StatusCode, message)
}

type Proxy struct {
	header map[string]string
	client *http.Client
}

// Build a proxy that adds the provided header to every request.
// A nil client gets replaced by one with a default timeout
func NewProxy(header map[string]string, client *http.Client) Proxy {
	if client == nil {
		client = &http.Client{Timeout: defaultTimeout}
	}
	return Proxy{header, client}
}

// Make a GET request to the provided url and return the body of the response
func (proxy *Proxy) Request(ctx context.Context, url string) ([]byte, error) {

	// Create the request and add the header
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("could not create request for url %s: %w", url, err)
	}
	for key, value := range proxy.header {
		request.Header.Set(key, value)
	}

	// Perform the request
	res, err := proxy.client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("could not perform request to %s: %w", url, err)
	}
	defer res.Body.Close()

	if message, ok := messages[res.StatusCode]; ok {
		log.Debug().Str("url", url).Msg(fmt.Sprintf("%d %s", res.StatusCode, message))
	} else {
		log.Warn().Str("url", url).Msg(fmt.Sprintf("Status code of request (%d) is not understood", res.StatusCode))
	}

	switch res.StatusCode {
	case OK:
		// Read the response
		stream, err := io.ReadAll(res.Body)
		if err != nil {
			return nil, fmt.Errorf("could not extract the response for url %s: %w", url, err)
		}
		return stream, nil
	case DATA_NOT_FOUND:
		return nil, ErrNotFound
	case RATE_LIMIT_EXCEEDED:
		return nil, ErrRateLimited
	default:
		return nil, &StatusError{Url: url, StatusCode: res.StatusCode}
	}
}
