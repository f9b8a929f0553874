package dashboard

import (
	"context"
	"fmt"
	"time"
)

// StaticService provides canned responses for the demo dashboard and tests.
type StaticService struct {
	KPIs         []KPI
	Activity     []StaticActivity
	QuickActions []QuickAction
	Components   []Component
	// Now stamps activity times on every fetch.
	Now func() time.Time
}

// StaticActivity is a sample activity entry that always happened Age before the fetch.
type StaticActivity struct {
	Item ActivityItem
	Age  time.Duration
}

// NewStaticService returns a StaticService populated with sample data. A nil clock means
// time.Now.
func NewStaticService(now func() time.Time) *StaticService {
	if now == nil {
		now = time.Now
	}
	kpis := []KPI{
		{ID: "queries", LabelKey: "dashboard.kpi.queries", Label: "AI Queries Handled", Icon: "message-circle", Value: 1247, Delta: 12},
		{ID: "documents", LabelKey: "dashboard.kpi.documents", Label: "Documents Generated", Icon: "file-text", Value: 856, Delta: 8},
		{ID: "clients", LabelKey: "dashboard.kpi.clients", Label: "Active Clients", Icon: "users", Value: 234, Delta: 15},
		{ID: "response", LabelKey: "dashboard.kpi.response", Label: "Avg Response Time", Icon: "clock", Value: 2.3, Decimals: 1, Suffix: "m", Delta: -5},
	}

	activity := make([]StaticActivity, 0, 4)
	for i := 1; i <= 4; i++ {
		activity = append(activity, StaticActivity{
			Item: ActivityItem{
				ID:     fmt.Sprintf("query-%d", i),
				Title:  fmt.Sprintf("Property Registration Query #%d", i),
				Detail: "Client asked about stamp duty calculation",
			},
			Age: 2 * time.Hour,
		})
	}

	actions := []QuickAction{
		{LabelKey: "dashboard.action.upload", Label: "Upload New Template", Icon: "file-text"},
		{LabelKey: "dashboard.action.clients", Label: "Manage Clients", Icon: "users"},
		{LabelKey: "dashboard.action.analytics", Label: "View Analytics", Icon: "trending-up"},
		{LabelKey: "dashboard.action.training", Label: "AI Training Data", Icon: "message-circle"},
	}

	components := []Component{
		{LabelKey: "dashboard.status.assistant", Label: "AI Assistant", Status: StatusOnline},
		{LabelKey: "dashboard.status.generator", Label: "Document Generator", Status: StatusOnline},
		{LabelKey: "dashboard.status.library", Label: "Template Library", Status: StatusOnline},
	}

	return &StaticService{
		KPIs:         kpis,
		Activity:     activity,
		QuickActions: actions,
		Components:   components,
		Now:          now,
	}
}

// FetchKPIs returns configured KPI cards.
func (s *StaticService) FetchKPIs(ctx context.Context) ([]KPI, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]KPI(nil), s.KPIs...), nil
}

// FetchActivity returns configured activity entries timed relative to the current clock.
func (s *StaticService) FetchActivity(ctx context.Context, limit int) ([]ActivityItem, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	entries := s.Activity
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	at := now()
	items := make([]ActivityItem, 0, len(entries))
	for _, e := range entries {
		item := e.Item
		item.Occurred = at.Add(-e.Age)
		items = append(items, item)
	}
	return items, nil
}

// FetchQuickActions returns configured shortcut buttons.
func (s *StaticService) FetchQuickActions(ctx context.Context) ([]QuickAction, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]QuickAction(nil), s.QuickActions...), nil
}

// FetchSystemStatus returns configured component health.
func (s *StaticService) FetchSystemStatus(ctx context.Context) ([]Component, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return append([]Component(nil), s.Components...), nil
}
