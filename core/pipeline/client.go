package pipeline

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.opentelemetry.io/otel/attribute"
)

// Client talks to the generation service over streamed HTTP responses.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

type ClientOption func(*Client)

// WithHTTPClient overrides the HTTP client used for streaming requests. The
// transport is still wrapped for instrumentation.
func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		if httpClient != nil {
			c.httpClient = httpClient
		}
	}
}

func NewClient(baseURL string, opts ...ClientOption) *Client {
	client := &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{},
	}
	for _, opt := range opts {
		opt(client)
	}

	transport := client.httpClient.Transport
	if transport == nil {
		transport = http.DefaultTransport
	}
	client.httpClient.Transport = otelhttp.NewTransport(transport,
		otelhttp.WithSpanNameFormatter(func(operationName string, request *http.Request) string {
			return operationName + " " + request.URL.Path
		}),
	)

	return client
}

// TurnRequest is the outbound body for a full pipeline turn.
type TurnRequest struct {
	Content      string   `json:"content"`
	SessionID    string   `json:"session_id"`
	CharacterID  string   `json:"character_id,omitempty"`
	WorldbookIDs []string `json:"worldbook_ids"`
}

type messageRequest struct {
	Content string `json:"content"`
}

// StreamTurn opens a turn through the staged generation pipeline.
func (c *Client) StreamTurn(_ context.Context, request TurnRequest) *Stream {
	return &Stream{
		client:   c.httpClient,
		endpoint: c.baseURL + "/generate",
		body:     request,
	}
}

// StreamMessage opens a plain chat turn, bypassing the staged pipeline. The
// stream carries a narrower record vocabulary: content deltas, the assigned
// message id, completion and failure.
func (c *Client) StreamMessage(_ context.Context, sessionID string, content string) *Stream {
	return &Stream{
		client:   c.httpClient,
		endpoint: fmt.Sprintf("%s/sessions/%s/messages", c.baseURL, url.PathEscape(sessionID)),
		body:     messageRequest{Content: content},
	}
}

// StreamRegenerate opens a regeneration stream replacing an existing
// assistant message.
func (c *Client) StreamRegenerate(_ context.Context, sessionID string, messageID string) *Stream {
	return &Stream{
		client:   c.httpClient,
		endpoint: fmt.Sprintf("%s/sessions/%s/regenerate/%s", c.baseURL, url.PathEscape(sessionID), url.PathEscape(messageID)),
	}
}

// Stream is one pending turn stream. Envelopes performs the request; a
// Stream is consumed at most once.
type Stream struct {
	client   *http.Client
	endpoint string
	body     any
}

// Envelopes is an iterator over decoded stream records, in arrival order.
//
// Malformed record payloads are dropped without surfacing an error; a frame
// can legitimately be clipped only at frame granularity, so a payload that
// does not parse is noise, not a stream failure. Transport errors and
// non-success statuses end the iteration with an error.
func (s *Stream) Envelopes(ctx context.Context) func(func(Envelope, error) bool) {
	requestToFirstRecordTime := time.Time{}

	return func(yield func(Envelope, error) bool) {
		ctx, span := tracer.Start(ctx, "stream turn")
		defer span.End()
		span.SetAttributes(attribute.String("request.endpoint", s.endpoint))

		var bodyReader io.Reader
		if s.body != nil {
			requestBodyBytes, err := json.Marshal(s.body)
			if err != nil {
				err = fmt.Errorf("error marshalling JSON: %w", err)
				span.RecordError(err)
				yield(Envelope{}, err)
				return
			}
			bodyReader = bytes.NewBuffer(requestBodyBytes)
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.endpoint, bodyReader)
		if err != nil {
			err = fmt.Errorf("error creating HTTP request: %w", err)
			span.RecordError(err)
			yield(Envelope{}, err)
			return
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Accept", "text/event-stream")

		requestToFirstRecordTime = time.Now()
		span.AddEvent("request started")
		resp, err := s.client.Do(req)
		if err != nil {
			err = fmt.Errorf("error sending request: %w", err)
			span.RecordError(err)
			yield(Envelope{}, err)
			return
		}
		defer resp.Body.Close()

		span.SetAttributes(attribute.Int("response.status_code", resp.StatusCode))
		if resp.StatusCode != http.StatusOK {
			if errorBody, err := io.ReadAll(resp.Body); err == nil {
				span.SetAttributes(attribute.String("response.error", string(errorBody)))
			}

			err := fmt.Errorf("non-OK HTTP status: %s", resp.Status)
			span.RecordError(err)
			yield(Envelope{}, err)
			return
		}

		records := 0
		defer func() {
			span.SetAttributes(attribute.Int("response.records", records))
		}()

		frames := newFrameReader(resp.Body)
		for payload, err := range frames.Frames(ctx) {
			if err != nil {
				span.RecordError(err)
				yield(Envelope{}, fmt.Errorf("error reading streamed response: %w", err))
				return
			}

			if !requestToFirstRecordTime.IsZero() {
				span.SetAttributes(attribute.Float64("response.request_to_first_record_time", time.Since(requestToFirstRecordTime).Seconds()))
				span.AddEvent("received first frame")
				requestToFirstRecordTime = time.Time{}
			}

			if payload == endMessage {
				break
			}

			var envelope Envelope
			if err := json.Unmarshal([]byte(payload), &envelope); err != nil {
				logger.DebugContext(ctx, "dropping malformed stream record", "error", err)
				continue
			}

			records++
			if !yield(envelope, nil) {
				return
			}
		}
	}
}
