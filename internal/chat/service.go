package chat

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

var (
	// ErrEmptyMessage is returned when the input is blank after trimming.
	ErrEmptyMessage = errors.New("chat: message is empty")
	// ErrReplyPending is returned by the reject policy while a reply is outstanding.
	ErrReplyPending = errors.New("chat: reply pending")
	// ErrConversationNotFound is returned for unknown or evicted conversations.
	ErrConversationNotFound = errors.New("chat: conversation not found")
)

// Policy decides what happens when a message is sent while a reply is outstanding.
type Policy string

const (
	// PolicyOverlap lets every send schedule its own reply. Replies land in timer order.
	PolicyOverlap Policy = "overlap"
	// PolicyRejectWhilePending refuses sends until the outstanding reply has landed.
	PolicyRejectWhilePending Policy = "reject"
)

// ParsePolicy validates a policy name.
func ParsePolicy(raw string) (Policy, error) {
	switch Policy(strings.ToLower(strings.TrimSpace(raw))) {
	case PolicyOverlap:
		return PolicyOverlap, nil
	case PolicyRejectWhilePending, "":
		return PolicyRejectWhilePending, nil
	}
	return "", fmt.Errorf("chat: unknown send policy %q", raw)
}

const (
	defaultReplyDelay = 2 * time.Second
	subscriberBuffer  = 16
)

// Options configures a Service.
type Options struct {
	ReplyDelay time.Duration
	Policy     Policy
	Scheduler  Scheduler
	IdleTTL    time.Duration
	Now        func() time.Time
	Logger     *zap.Logger
	// Meter records message counters. Defaults to the global meter provider.
	Meter metric.Meter
}

// Snapshot is a point-in-time copy of a conversation.
type Snapshot struct {
	ID        string
	Messages  []Message
	Pending   int
	CreatedAt time.Time
}

// IsPending reports whether at least one reply is outstanding.
func (s Snapshot) IsPending() bool { return s.Pending > 0 }

// Fresh reports whether the conversation holds only the greeting.
func (s Snapshot) Fresh() bool { return len(s.Messages) <= 1 }

// Service keeps conversations in memory. It is safe for concurrent use.
type Service struct {
	mu            sync.Mutex
	conversations map[string]*conversation

	delay     time.Duration
	policy    Policy
	scheduler Scheduler
	idleTTL   time.Duration
	now       func() time.Time
	logger    *zap.Logger
	metrics   instruments
}

type conversation struct {
	id        string
	messages  []Message
	pending   int
	createdAt time.Time
	touchedAt time.Time
	subs      map[int]chan Message
	nextSub   int
}

// NewService builds a Service, filling unset options with defaults.
func NewService(opts Options) *Service {
	if opts.ReplyDelay <= 0 {
		opts.ReplyDelay = defaultReplyDelay
	}
	if opts.Policy == "" {
		opts.Policy = PolicyRejectWhilePending
	}
	if opts.Scheduler == nil {
		opts.Scheduler = TimerScheduler{}
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Service{
		conversations: make(map[string]*conversation),
		delay:         opts.ReplyDelay,
		policy:        opts.Policy,
		scheduler:     opts.Scheduler,
		idleTTL:       opts.IdleTTL,
		now:           opts.Now,
		logger:        opts.Logger,
		metrics:       newInstruments(opts.Meter, opts.Logger),
	}
}

// Create starts a conversation seeded with the assistant greeting.
func (s *Service) Create(_ context.Context) Snapshot {
	now := s.now()
	conv := &conversation{
		id:        uuid.NewString(),
		messages:  make([]Message, 0, 8),
		createdAt: now,
		touchedAt: now,
		subs:      map[int]chan Message{},
	}
	conv.messages = append(conv.messages, newMessage(SenderAssistant, greetingHindi, now, nil))

	s.mu.Lock()
	s.conversations[conv.id] = conv
	s.mu.Unlock()
	return conv.snapshot()
}

// Get returns a snapshot of the conversation.
func (s *Service) Get(_ context.Context, id string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return Snapshot{}, ErrConversationNotFound
	}
	return conv.snapshot(), nil
}

// Ensure returns the conversation with id, creating a fresh one when it does not exist.
func (s *Service) Ensure(ctx context.Context, id string) Snapshot {
	if id != "" {
		if snap, err := s.Get(ctx, id); err == nil {
			return snap
		}
	}
	return s.Create(ctx)
}

// Send appends the visitor's message and schedules the canned assistant reply.
// Blank input is a no-op reported as ErrEmptyMessage.
func (s *Service) Send(ctx context.Context, id, text string, lang Lang) (Message, error) {
	_, span := otel.Tracer("nyaysathi.in/web/internal/chat").Start(ctx, "chat.Send")
	defer span.End()
	span.SetAttributes(
		attribute.String("chat.lang", string(lang)),
		attribute.String("chat.policy", string(s.policy)),
	)

	msg, err := s.appendUser(id, text)
	if err != nil {
		s.metrics.reject(ctx, err)
		return Message{}, err
	}
	s.metrics.message(ctx, SenderUser)
	s.scheduler.After(s.delay, func() { s.deliver(id, lang) })
	return msg, nil
}

func (s *Service) appendUser(id, text string) (Message, error) {
	if strings.TrimSpace(text) == "" {
		return Message{}, ErrEmptyMessage
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return Message{}, ErrConversationNotFound
	}
	if s.policy == PolicyRejectWhilePending && conv.pending > 0 {
		return Message{}, ErrReplyPending
	}
	now := s.now()
	msg := newMessage(SenderUser, text, now, nil)
	conv.append(msg)
	conv.pending++
	conv.touchedAt = now
	return cloneMessage(msg), nil
}

// deliver appends the assistant reply. Replies for evicted conversations are dropped.
func (s *Service) deliver(id string, lang Lang) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		s.logger.Debug("chat reply dropped", zap.String("conversation_id", id))
		s.metrics.drop(context.Background())
		return
	}
	now := s.now()
	conv.append(newMessage(SenderAssistant, CannedReply(lang), now, replyCitations))
	s.metrics.message(context.Background(), SenderAssistant)
	if conv.pending > 0 {
		conv.pending--
	}
	conv.touchedAt = now
}

// Subscribe streams messages appended after the call. The returned function must be
// called to release the subscription. Slow subscribers miss messages instead of blocking.
func (s *Service) Subscribe(_ context.Context, id string) (<-chan Message, func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	conv, ok := s.conversations[id]
	if !ok {
		return nil, nil, ErrConversationNotFound
	}
	ch := make(chan Message, subscriberBuffer)
	key := conv.nextSub
	conv.nextSub++
	conv.subs[key] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			s.mu.Lock()
			defer s.mu.Unlock()
			if c, ok := conv.subs[key]; ok {
				delete(conv.subs, key)
				close(c)
			}
		})
	}
	return ch, cancel, nil
}

// Sweep evicts conversations idle for longer than the configured TTL with no reply
// outstanding. It returns the number of evicted conversations.
func (s *Service) Sweep(_ context.Context) int {
	if s.idleTTL <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	evicted := 0
	for id, conv := range s.conversations {
		if conv.pending > 0 || conv.touchedAt.After(cutoff) {
			continue
		}
		for key, ch := range conv.subs {
			delete(conv.subs, key)
			close(ch)
		}
		delete(s.conversations, id)
		evicted++
	}
	if evicted > 0 {
		s.logger.Info("chat conversations evicted", zap.Int("count", evicted))
	}
	return evicted
}

func (c *conversation) append(m Message) {
	c.messages = append(c.messages, m)
	for _, ch := range c.subs {
		select {
		case ch <- cloneMessage(m):
		default:
		}
	}
}

func (c *conversation) snapshot() Snapshot {
	return Snapshot{
		ID:        c.id,
		Messages:  cloneMessages(c.messages),
		Pending:   c.pending,
		CreatedAt: c.createdAt,
	}
}
