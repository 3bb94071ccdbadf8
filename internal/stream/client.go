package stream

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/S-Soo100/Resource-Planning-System-sub004/internal/dto"
)

// State is the lifecycle position of a Subscription.
type State int32

const (
	StateDisconnected State = iota
	StateConnecting
	StateOpen
	StateClosed
)

// String implements fmt.Stringer.
func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateOpen:
		return "open"
	case StateClosed:
		return "closed"
	default:
		return "disconnected"
	}
}

// Health is the advisory connection-quality signal shown next to a channel.
type Health string

const (
	HealthDisconnected Health = "disconnected"
	HealthConnected    Health = "connected"
	HealthUnstable     Health = "unstable"
)

// Options configure a Subscription.
type Options struct {
	// URL is the fully built stream endpoint, including any types filter.
	URL string
	// Token authenticates the channel. Empty token means the subscription
	// never attempts to connect; that is a valid idle state, not an error.
	Token string
	// TokenInQuery appends the token as a query parameter instead of the
	// Authorization header (per-entity channels use the query form).
	TokenInQuery bool
	// Enabled gates connecting the same way a missing token does.
	Enabled bool

	RetryDelay time.Duration // plain reconnect delay, no backoff
	StaleAfter time.Duration // heartbeat age after which health is unstable

	HTTPClient *http.Client
	Logger     *zap.Logger

	// OnChange fires after a pushed record has been prepended to the cache.
	OnChange func(dto.ChangeHistoryItem)
	// OnNotify carries the one-line actor/action summary for transient UI.
	OnNotify func(summary string)
	// OnHeartbeat fires on every liveness signal.
	OnHeartbeat func(at time.Time)
	// OnError reports connect/read failures; recovery is the automatic
	// reconnect loop, the callback is informational.
	OnError func(err error)
}

// Subscription is one owned push connection with its local cache. All cache
// mutation happens through the frame handler, which checks liveness first so
// a close always wins over in-flight delivery.
type Subscription struct {
	opts   Options
	cache  *Cache
	logger *zap.Logger

	mu            sync.Mutex
	state         State
	lastHeartbeat time.Time
	closed        bool
	cancel        context.CancelFunc

	now func() time.Time
}

// NewSubscription builds a subscription in the disconnected state.
func NewSubscription(opts Options) *Subscription {
	if opts.RetryDelay <= 0 {
		opts.RetryDelay = 3 * time.Second
	}
	if opts.StaleAfter <= 0 {
		opts.StaleAfter = 60 * time.Second
	}
	if opts.HTTPClient == nil {
		opts.HTTPClient = &http.Client{} // no client timeout: the stream is long-lived
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Subscription{
		opts:   opts,
		cache:  NewCache(),
		logger: logger,
		state:  StateDisconnected,
		now:    time.Now,
	}
}

// Start begins connecting unless the subscription is disabled or has no
// token, in which case it stays disconnected without attempting anything.
func (s *Subscription) Start(ctx context.Context) {
	if s.opts.Token == "" || !s.opts.Enabled {
		return
	}

	s.mu.Lock()
	if s.closed || s.cancel != nil {
		s.mu.Unlock()
		return
	}
	runCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.mu.Unlock()

	go s.run(runCtx)
}

// Close tears the connection down. No cache mutation can happen afterwards.
func (s *Subscription) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.state = StateClosed
	cancel := s.cancel
	s.mu.Unlock()

	if cancel != nil {
		cancel()
	}
}

// Cache exposes the local history view.
func (s *Subscription) Cache() *Cache { return s.cache }

// State returns the current lifecycle state.
func (s *Subscription) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// LastHeartbeat returns the time of the most recent liveness signal.
func (s *Subscription) LastHeartbeat() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastHeartbeat
}

// Health reports the advisory connection quality. A stale heartbeat makes an
// open channel unstable; it does not change the state.
func (s *Subscription) Health() Health {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state != StateOpen {
		return HealthDisconnected
	}
	if !s.lastHeartbeat.IsZero() && s.now().Sub(s.lastHeartbeat) > s.opts.StaleAfter {
		return HealthUnstable
	}
	return HealthConnected
}

// ── connection loop ──

func (s *Subscription) run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}

		s.setState(StateConnecting)
		err := s.connectOnce(ctx)
		if ctx.Err() != nil {
			return
		}

		s.setState(StateDisconnected)
		if err != nil {
			s.reportError(err)
		}

		select {
		case <-ctx.Done():
			return
		case <-time.After(s.opts.RetryDelay):
		}
	}
}

func (s *Subscription) connectOnce(ctx context.Context) error {
	url := s.opts.URL
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("build stream request: %w", err)
	}
	req.Header.Set("Accept", "text/event-stream")
	req.Header.Set("Cache-Control", "no-cache")

	if s.opts.TokenInQuery {
		q := req.URL.Query()
		q.Set("token", s.opts.Token)
		req.URL.RawQuery = q.Encode()
	} else {
		req.Header.Set("Authorization", "Bearer "+s.opts.Token)
	}

	resp, err := s.opts.HTTPClient.Do(req)
	if err != nil {
		return fmt.Errorf("connect stream: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("stream endpoint returned %s", resp.Status)
	}

	s.markOpen()
	return s.readLoop(resp.Body)
}

// markOpen enters the open state and primes the heartbeat clock so health
// starts from "connected" rather than an instant stale reading.
func (s *Subscription) markOpen() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = StateOpen
	s.lastHeartbeat = s.now()
}

func (s *Subscription) setState(st State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = st
}

// readLoop parses the text/event-stream framing: "event:"/"data:" lines
// accumulate until a blank line dispatches the frame.
func (s *Subscription) readLoop(body io.Reader) error {
	scanner := bufio.NewScanner(body)
	scanner.Buffer(make([]byte, 0, 4096), 1<<20)

	var eventName string
	var data []string

	for scanner.Scan() {
		line := scanner.Text()

		switch {
		case line == "":
			if len(data) > 0 {
				s.handleFrame(eventName, []byte(strings.Join(data, "\n")))
			}
			eventName = ""
			data = data[:0]
		case strings.HasPrefix(line, ":"):
			// comment, keep-alive padding
		case strings.HasPrefix(line, "event:"):
			eventName = strings.TrimSpace(strings.TrimPrefix(line, "event:"))
		case strings.HasPrefix(line, "data:"):
			data = append(data, strings.TrimPrefix(strings.TrimPrefix(line, "data:"), " "))
		case strings.HasPrefix(line, "retry:"):
			// server-suggested retry delay; the fixed RetryDelay stands in
			// for the transport's automatic behavior
		}
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("read stream: %w", err)
	}
	return io.EOF
}

// ── frame handling ──

// handleFrame dispatches one delivered frame. A malformed payload is logged
// and dropped; it never crashes the channel and never touches the cache. A
// closed subscription ignores everything, guarding against deliveries racing
// with teardown.
func (s *Subscription) handleFrame(eventName string, data []byte) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	switch eventName {
	case EventHeartbeat:
		s.touchHeartbeat()
	case EventChange:
		var item dto.ChangeHistoryItem
		if err := json.Unmarshal(data, &item); err != nil {
			s.logger.Warn("dropping malformed change payload", zap.Error(err))
			return
		}
		s.acceptChange(item)
	default:
		// Team-scoped channels deliver an untyped message with a tagged
		// JSON envelope.
		var env dto.TeamStreamEvent
		if err := json.Unmarshal(data, &env); err != nil {
			s.logger.Warn("dropping malformed stream envelope", zap.Error(err))
			return
		}
		switch env.Type {
		case EventHeartbeat:
			s.touchHeartbeat()
		case EventChange:
			if env.Item == nil {
				s.logger.Warn("dropping change envelope without item")
				return
			}
			s.acceptChange(*env.Item)
		default:
			s.logger.Warn("dropping stream envelope with unknown type",
				zap.String("type", env.Type),
			)
		}
	}
}

func (s *Subscription) touchHeartbeat() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	at := s.now()
	s.lastHeartbeat = at
	s.mu.Unlock()

	if s.opts.OnHeartbeat != nil {
		s.opts.OnHeartbeat(at)
	}
}

func (s *Subscription) acceptChange(item dto.ChangeHistoryItem) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.mu.Unlock()

	s.cache.Prepend(item)

	if s.opts.OnNotify != nil {
		s.opts.OnNotify(fmt.Sprintf("%s: %s", item.UserName, item.Action))
	}
	if s.opts.OnChange != nil {
		s.opts.OnChange(item)
	}
}

func (s *Subscription) reportError(err error) {
	s.logger.Warn("stream subscription error", zap.Error(err))
	if s.opts.OnError != nil {
		s.opts.OnError(err)
	}
}
