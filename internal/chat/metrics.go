package chat

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
)

const meterName = "nyaysathi.in/web/internal/chat"

// instruments holds the chat counters. Nil instruments are skipped.
type instruments struct {
	messages metric.Int64Counter
	rejected metric.Int64Counter
	dropped  metric.Int64Counter
}

func newInstruments(meter metric.Meter, logger *zap.Logger) instruments {
	if meter == nil {
		meter = otel.GetMeterProvider().Meter(meterName)
	}
	var ins instruments
	var err error
	if ins.messages, err = meter.Int64Counter("chat.messages",
		metric.WithDescription("Messages appended to conversations by sender")); err != nil {
		logger.Warn("chat: unable to register message counter", zap.Error(err))
	}
	if ins.rejected, err = meter.Int64Counter("chat.sends.rejected",
		metric.WithDescription("Sends refused by reason")); err != nil {
		logger.Warn("chat: unable to register rejection counter", zap.Error(err))
	}
	if ins.dropped, err = meter.Int64Counter("chat.replies.dropped",
		metric.WithDescription("Replies that arrived after their conversation was evicted")); err != nil {
		logger.Warn("chat: unable to register dropped reply counter", zap.Error(err))
	}
	return ins
}

func (i instruments) message(ctx context.Context, sender Sender) {
	if i.messages != nil {
		i.messages.Add(ctx, 1, metric.WithAttributes(attribute.String("sender", string(sender))))
	}
}

func (i instruments) reject(ctx context.Context, err error) {
	if i.rejected == nil {
		return
	}
	reason := "other"
	switch {
	case errors.Is(err, ErrEmptyMessage):
		reason = "empty"
	case errors.Is(err, ErrReplyPending):
		reason = "pending"
	case errors.Is(err, ErrConversationNotFound):
		reason = "not_found"
	}
	i.rejected.Add(ctx, 1, metric.WithAttributes(attribute.String("reason", reason)))
}

func (i instruments) drop(ctx context.Context) {
	if i.dropped != nil {
		i.dropped.Add(ctx, 1)
	}
}
