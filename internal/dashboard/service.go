package dashboard

import (
	"context"
	"errors"
	"time"
)

// ErrNotConfigured indicates the dashboard service dependency has not been provided.
var ErrNotConfigured = errors.New("dashboard service not configured")

// Service exposes data retrieval for the law-firm dashboard.
type Service interface {
	// FetchKPIs returns summary metrics for the stat cards.
	FetchKPIs(ctx context.Context) ([]KPI, error)
	// FetchActivity returns recent client queries, newest first.
	FetchActivity(ctx context.Context, limit int) ([]ActivityItem, error)
	// FetchQuickActions returns the shortcut buttons in the side rail.
	FetchQuickActions(ctx context.Context) ([]QuickAction, error)
	// FetchSystemStatus returns component health badges.
	FetchSystemStatus(ctx context.Context) ([]Component, error)
}

// KPI represents a dashboard metric card.
type KPI struct {
	ID       string
	LabelKey string
	Label    string
	Icon     string
	Value    float64
	Decimals int
	Suffix   string
	// Delta is the month-over-month change in percent.
	Delta float64
}

// Trend derives the card direction from the sign of Delta.
func (k KPI) Trend() Trend { return TrendFromDelta(k.Delta) }

// Trend describes the direction of a KPI delta.
type Trend string

const (
	// TrendFlat indicates no significant change.
	TrendFlat Trend = "flat"
	// TrendUp indicates a positive change.
	TrendUp Trend = "up"
	// TrendDown indicates a negative change.
	TrendDown Trend = "down"
)

// TrendFromDelta maps a signed change to a Trend.
func TrendFromDelta(delta float64) Trend {
	switch {
	case delta > 0:
		return TrendUp
	case delta < 0:
		return TrendDown
	}
	return TrendFlat
}

// ActivityItem represents a recent query in the activity list.
type ActivityItem struct {
	ID       string
	Title    string
	Detail   string
	Occurred time.Time
}

// QuickAction is a shortcut button.
type QuickAction struct {
	LabelKey string
	Label    string
	Icon     string
}

// ComponentStatus is a health badge value.
type ComponentStatus string

const (
	StatusOnline   ComponentStatus = "online"
	StatusDegraded ComponentStatus = "degraded"
	StatusOffline  ComponentStatus = "offline"
)

// Component is one row in the system status card.
type Component struct {
	LabelKey string
	Label    string
	Status   ComponentStatus
}
