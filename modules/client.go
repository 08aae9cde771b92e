package modules

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/parnurzeal/gorequest"
	"github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"

	"github.com/mexc-tools/mexc-bot-panel/models"
)

const (
	DefaultEndpoint = "http://localhost:8001"
	EndpointEnv     = "MEXC_PANEL_ENDPOINT"

	apiBotStatus = "/api/bot-status"
	apiStartBot  = "/api/start-bot"
	apiStopBot   = "/api/stop-bot"
	apiHealth    = "/api/health"

	requestTimeout = 10 * time.Second
)

var (
	// ErrBusy rejects a command while another one is still in flight.
	ErrBusy = errors.New("another command is in flight")
	// ErrNotSubmittable rejects a start without both credential fields.
	ErrNotSubmittable = errors.New("api key and secret key are required")
)

// RemoteRejection is a non-2xx response carrying the server's detail field.
type RemoteRejection struct {
	Status int
	Detail string
}

func (e *RemoteRejection) Error() string {
	return fmt.Sprintf("remote rejected request (%d): %s", e.Status, e.Detail)
}

// TransportError means no usable response was obtained at all.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("connection error: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// EndpointFromEnv resolves the control API base URL.
func EndpointFromEnv() string {
	if v := os.Getenv(EndpointEnv); v != "" {
		return v
	}
	return DefaultEndpoint
}

// HealthStatus is the health endpoint response.
type HealthStatus struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BotClient is the only path to the remote trading process. All requests
// go through the shared rate limiter.
type BotClient struct {
	Endpoint    string
	Logger      *logrus.Logger
	RateLimiter ratelimit.Limiter

	// Debug logs every outbound request in curl format.
	Debug bool
}

func NewBotClient(endpoint string, logger *logrus.Logger, ratelimiter ratelimit.Limiter) *BotClient {
	return &BotClient{
		Endpoint:    endpoint,
		Logger:      logger,
		RateLimiter: ratelimiter,
	}
}

func (c *BotClient) agent() *gorequest.SuperAgent {
	agent := gorequest.New().Timeout(requestTimeout)
	if c.Debug {
		agent = agent.
			SetDebug(true).
			SetLogger(log.New(c.Logger.WriterLevel(logrus.DebugLevel), "", 0))
	}
	return agent
}

// Status fetches the bot's authoritative state. A malformed body is an
// error; the caller decides whether it is operator-visible.
func (c *BotClient) Status() (models.StatusSnapshot, error) {
	c.RateLimiter.Take()

	resp, body, errs := c.agent().Get(c.Endpoint + apiBotStatus).EndBytes()
	if len(errs) > 0 {
		return models.StatusSnapshot{}, &TransportError{Err: errs[0]}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return models.StatusSnapshot{}, &RemoteRejection{
			Status: resp.StatusCode,
			Detail: rejectionDetail(resp.StatusCode, body),
		}
	}

	var snapshot models.StatusSnapshot
	if err := json.Unmarshal(body, &snapshot); err != nil {
		return models.StatusSnapshot{}, fmt.Errorf("malformed status payload: %w", err)
	}
	return snapshot, nil
}

// Start submits the full configuration to the start endpoint.
func (c *BotClient) Start(cfg models.Configuration) error {
	c.RateLimiter.Take()

	resp, body, errs := c.agent().
		Post(c.Endpoint+apiStartBot).
		Type(gorequest.TypeJSON).
		Send(cfg).
		EndBytes()
	return commandOutcome(resp, body, errs)
}

// Stop asks the bot to stop. No request body.
func (c *BotClient) Stop() error {
	c.RateLimiter.Take()

	resp, body, errs := c.agent().Post(c.Endpoint + apiStopBot).EndBytes()
	return commandOutcome(resp, body, errs)
}

// Health checks the control API itself, not the trading cycle.
func (c *BotClient) Health() (HealthStatus, error) {
	c.RateLimiter.Take()

	var health HealthStatus
	resp, _, errs := c.agent().Get(c.Endpoint + apiHealth).EndStruct(&health)
	if len(errs) > 0 {
		return HealthStatus{}, &TransportError{Err: errs[0]}
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return HealthStatus{}, &RemoteRejection{Status: resp.StatusCode, Detail: http.StatusText(resp.StatusCode)}
	}
	return health, nil
}

func commandOutcome(resp gorequest.Response, body []byte, errs []error) error {
	if len(errs) > 0 {
		return &TransportError{Err: errs[0]}
	}
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	return &RemoteRejection{
		Status: resp.StatusCode,
		Detail: rejectionDetail(resp.StatusCode, body),
	}
}

// rejectionDetail extracts the server-supplied detail verbatim, falling
// back to the raw body and then the status text.
func rejectionDetail(status int, body []byte) string {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return payload.Detail
	}
	if len(body) > 0 {
		return string(body)
	}
	return http.StatusText(status)
}
