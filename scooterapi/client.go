package scooterapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/scooter-qa/courier-contract-tests/framework"
	"github.com/scooter-qa/courier-contract-tests/servicedef"

	"github.com/google/uuid"
	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

const (
	DefaultTimeout  = time.Second * 10
	RequestIDHeader = "X-Request-Id"
)

// Config contains everything the Client needs to know about the service. It is fixed for the
// lifetime of a Client.
type Config struct {
	// BaseURL is the scheme and host of the service, such as "https://example.com".
	BaseURL string

	// Timeout bounds each request, including reading the response body. Zero means DefaultTimeout.
	Timeout time.Duration

	// HTTPClient, if set, is used instead of a new http.Client. Its Timeout is left alone.
	HTTPClient *http.Client

	// RequestIDs adds a unique X-Request-Id header to every request, so that requests in the
	// debug output can be matched to the service's own logs.
	RequestIDs bool
}

// Client issues one HTTP request per API operation. A response with any status code is returned
// as a Response; only failures to get a response at all are returned as errors, always of type
// *TransportError.
type Client struct {
	baseURL    string
	httpClient *http.Client
	requestIDs bool
	logger     framework.Logger
}

// Response is the status and body of one API call.
type Response struct {
	StatusCode int

	// Body is the parsed JSON body, or a null value if the body was empty or not valid JSON.
	Body ldvalue.Value

	// Raw is the body exactly as received.
	Raw []byte
}

func (r Response) String() string {
	return fmt.Sprintf("%d %s", r.StatusCode, string(r.Raw))
}

// SessionID returns the numeric "id" property of a successful login response.
func (r Response) SessionID() (int, bool) {
	id := r.Body.GetByKey("id")
	if id.IsNull() {
		return 0, false
	}
	if id.IsNumber() {
		return id.IntValue(), true
	}
	if n, err := strconv.Atoi(id.StringValue()); err == nil {
		return n, true
	}
	return 0, false
}

func NewClient(config Config) (*Client, error) {
	u, err := url.Parse(config.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" || u.Host == "" {
		return nil, fmt.Errorf("invalid base URL %q: must be an absolute http or https URL", config.BaseURL)
	}
	httpClient := config.HTTPClient
	if httpClient == nil {
		timeout := config.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &Client{
		baseURL:    strings.TrimSuffix(config.BaseURL, "/"),
		httpClient: httpClient,
		requestIDs: config.RequestIDs,
		logger:     framework.NullLogger(),
	}, nil
}

// WithLogger returns a copy of the client that writes every request and response to logger.
func (c *Client) WithLogger(logger framework.Logger) *Client {
	c1 := *c
	if logger == nil {
		logger = framework.NullLogger()
	}
	c1.logger = logger
	return &c1
}

func (c *Client) CreateCourier(ctx context.Context, params servicedef.CourierParams) (Response, error) {
	return c.do(ctx, http.MethodPost, servicedef.CourierPath, params)
}

func (c *Client) LoginCourier(ctx context.Context, params servicedef.LoginParams) (Response, error) {
	return c.do(ctx, http.MethodPost, servicedef.CourierLoginPath, params)
}

func (c *Client) DeleteCourier(ctx context.Context, id int) (Response, error) {
	return c.do(ctx, http.MethodDelete, servicedef.CourierPath+"/"+strconv.Itoa(id), nil)
}

func (c *Client) ListOrders(ctx context.Context) (Response, error) {
	return c.do(ctx, http.MethodGet, servicedef.OrdersPath, nil)
}

func (c *Client) CreateOrder(ctx context.Context, params servicedef.OrderParams) (Response, error) {
	return c.do(ctx, http.MethodPost, servicedef.OrdersPath, params)
}

func (c *Client) do(ctx context.Context, method, path string, body interface{}) (Response, error) {
	target := c.baseURL + path
	var reqBody io.Reader
	var data []byte
	if body != nil {
		var err error
		if data, err = json.Marshal(body); err != nil {
			return Response{}, err
		}
		reqBody = bytes.NewBuffer(data)
	}
	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")
	if c.requestIDs {
		req.Header.Set(RequestIDHeader, uuid.New().String())
	}

	if data != nil {
		c.logger.Printf(">> %s %s %s %s", method, path, requestIDSuffix(req), string(data))
	} else {
		c.logger.Printf(">> %s %s %s", method, path, requestIDSuffix(req))
	}
	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Printf("<< %s %s failed: %s", method, path, err)
		return Response{}, &TransportError{Method: method, URL: target, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		c.logger.Printf("<< %s %s failed reading body: %s", method, path, err)
		return Response{}, &TransportError{Method: method, URL: target, Err: err}
	}

	result := Response{StatusCode: resp.StatusCode, Body: ldvalue.Null(), Raw: raw}
	if len(raw) > 0 {
		result.Body = ldvalue.Parse(raw)
	}
	c.logger.Printf("<< %d %s (%s)", resp.StatusCode, string(raw), time.Since(started).Round(time.Millisecond))
	return result, nil
}

func requestIDSuffix(req *http.Request) string {
	if id := req.Header.Get(RequestIDHeader); id != "" {
		return "[" + id + "]"
	}
	return ""
}

// AwaitService polls the service until it responds to any HTTP request, or the timeout
// elapses. Progress is written to output.
func (c *Client) AwaitService(ctx context.Context, timeout time.Duration, output io.Writer) error {
	fmt.Fprintf(output, "Connecting to service at %s", c.baseURL)

	deadline := time.Now().Add(timeout)
	for {
		fmt.Fprintf(output, ".")
		resp, err := c.ListOrders(ctx)
		if err == nil {
			fmt.Fprintln(output)
			fmt.Fprintf(output, "Service responded with status %d\n", resp.StatusCode)
			return nil
		}
		if ctx.Err() != nil {
			fmt.Fprintln(output)
			return ctx.Err()
		}
		if !time.Now().Before(deadline) {
			fmt.Fprintln(output)
			return fmt.Errorf("timed out, result of last query was: %w", err)
		}
		time.Sleep(time.Millisecond * 100)
	}
}

// TransportError means that no HTTP response was received: the connection failed, timed out,
// or broke before the body was read. It is never used for a response with an error status.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s %s: transport error: %s", e.Method, e.URL, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Timeout is true if the request was abandoned because it took too long.
func (e *TransportError) Timeout() bool {
	var t interface{ Timeout() bool }
	if errors.As(e.Err, &t) && t.Timeout() {
		return true
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// IsTransportError returns true if err is, or wraps, a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
