// Package dashboard holds the authenticated screen's state and reconciles
// mutations against the remote store. Every mutation patches local state
// from the server's own response where the response carries data, refetches
// where it does not, and reloads only for create-without-echo and sync.
package dashboard

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/Griffon01/borelli-advocacia/internal/agenda"
	"github.com/Griffon01/borelli-advocacia/internal/api"
	"github.com/Griffon01/borelli-advocacia/internal/model"
)

var (
	// ErrBusy is returned when the same action is already in flight.
	ErrBusy = errors.New("another operation is in progress")
	// ErrPermission is returned when the user's role does not allow the action.
	ErrPermission = errors.New("role does not allow this action")
	// ErrEmptyComment is returned for blank comment text.
	ErrEmptyComment = errors.New("comment text is empty")
)

// Controller drives the dashboard for one authenticated user. It is meant
// for a single event loop: methods are not safe for concurrent use, and the
// busy flags exist to gate duplicate submissions, not to serialize requests.
type Controller struct {
	client *api.Client
	logger *slog.Logger

	user   model.User
	events []model.Event
	team   []model.User

	filter   agenda.Filter
	anchor   time.Time
	selected *model.Event

	loading bool
	syncing bool
	saving  bool
}

// New creates a controller for the given user. The week anchor starts at
// now; navigation moves it in whole weeks.
func New(client *api.Client, user model.User, now time.Time, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{
		client: client,
		logger: logger,
		user:   user,
		filter: agenda.Filter{Type: agenda.AllTypes},
		anchor: now,
	}
}

// User returns the authenticated identity.
func (c *Controller) User() model.User { return c.user }

// Events returns the raw event list as last loaded.
func (c *Controller) Events() []model.Event { return c.events }

// Team returns the roster as last loaded.
func (c *Controller) Team() []model.User { return c.team }

// Load fetches the event list and the roster. On failure prior state is left
// untouched and the error is surfaced for the caller's banner.
func (c *Controller) Load(ctx context.Context) error {
	if c.loading {
		return ErrBusy
	}
	c.loading = true
	defer func() { c.loading = false }()

	events, err := c.client.Events(ctx, nil)
	if err != nil {
		return err
	}
	team, err := c.client.Team(ctx)
	if err != nil {
		return err
	}

	c.events = events
	c.team = team
	c.logger.Debug("data loaded", "events", len(events), "team", len(team))
	return nil
}

// SetSearch updates the search text.
func (c *Controller) SetSearch(text string) { c.filter.Search = text }

// SetTypeFilter updates the type filter. AllTypes disables it.
func (c *Controller) SetTypeFilter(t model.EventType) { c.filter.Type = t }

// Filter returns the current filter state.
func (c *Controller) Filter() agenda.Filter { return c.filter }

// Filtered returns the events visible under the current filter.
func (c *Controller) Filtered() []model.Event {
	return c.filter.Apply(c.events)
}

// Stats returns the counters for the filtered set.
func (c *Controller) Stats() agenda.Stats {
	return agenda.ComputeStats(c.Filtered())
}

// Anchor returns the date whose week is visible.
func (c *Controller) Anchor() time.Time { return c.anchor }

// NavigateWeek moves the visible week by delta weeks.
func (c *Controller) NavigateWeek(delta int) {
	c.anchor = c.anchor.AddDate(0, 0, 7*delta)
}

// GoToDate moves the visible week to the one containing t.
func (c *Controller) GoToDate(t time.Time) { c.anchor = t }

// WeekDays returns the 7 days of the visible week.
func (c *Controller) WeekDays() [7]time.Time {
	return agenda.WeekOf(c.anchor)
}

// EventsOn returns the filtered events bucketed on the given day.
func (c *Controller) EventsOn(day time.Time) []model.Event {
	return agenda.EventsOn(c.Filtered(), day)
}

// Select opens the detail view for a locally known event.
func (c *Controller) Select(id int64) (*model.Event, bool) {
	for i := range c.events {
		if c.events[i].ID == id {
			ev := c.events[i]
			c.selected = &ev
			return c.selected, true
		}
	}
	return nil, false
}

// Selected returns the open detail, or nil.
func (c *Controller) Selected() *model.Event { return c.selected }

// CloseDetail dismisses the detail view.
func (c *Controller) CloseDetail() { c.selected = nil }

// UpdateStatus changes an event's status. On success the list entry is
// patched, preferring the event echoed by the backend, and the open detail
// for the same event is patched too.
func (c *Controller) UpdateStatus(ctx context.Context, id int64, status model.Status) error {
	if !c.user.CanEdit() {
		return ErrPermission
	}

	updated, err := c.client.UpdateEvent(ctx, id, map[string]any{"status": status})
	if err != nil {
		return err
	}

	for i := range c.events {
		if c.events[i].ID != id {
			continue
		}
		if updated != nil {
			c.events[i] = *updated
		} else {
			c.events[i].Status = status
		}
		break
	}
	if c.selected != nil && c.selected.ID == id {
		if updated != nil {
			ev := *updated
			c.selected = &ev
		} else {
			c.selected.Status = status
		}
	}
	return nil
}

// AddComment appends a comment, then refetches the full event and replaces
// both the list entry and any open detail with the fresh copy.
func (c *Controller) AddComment(ctx context.Context, id int64, content string) error {
	content = strings.TrimSpace(content)
	if content == "" {
		return ErrEmptyComment
	}

	if err := c.client.AddComment(ctx, id, c.user.ID, content); err != nil {
		return err
	}

	fresh, err := c.client.Event(ctx, id)
	if err != nil {
		return err
	}
	for i := range c.events {
		if c.events[i].ID == id {
			c.events[i] = *fresh
			break
		}
	}
	if c.selected != nil && c.selected.ID == id {
		ev := *fresh
		c.selected = &ev
	}
	return nil
}

// DeleteEvent removes an event. Interactive confirmation is the caller's
// responsibility; on success the event leaves the local list and a matching
// open detail is closed.
func (c *Controller) DeleteEvent(ctx context.Context, id int64) error {
	if !c.user.CanEdit() {
		return ErrPermission
	}

	if err := c.client.DeleteEvent(ctx, id); err != nil {
		return err
	}

	remaining := c.events[:0]
	for _, e := range c.events {
		if e.ID != id {
			remaining = append(remaining, e)
		}
	}
	c.events = remaining
	if c.selected != nil && c.selected.ID == id {
		c.selected = nil
	}
	return nil
}

// CreateEvent validates and submits the draft with the user as creator. The
// echoed event is appended locally; without an echo the list is reloaded.
func (c *Controller) CreateEvent(ctx context.Context, draft model.EventDraft) error {
	if !c.user.CanCreate() {
		return ErrPermission
	}
	if c.saving {
		return ErrBusy
	}
	draft.Normalize()
	if err := draft.Validate(); err != nil {
		return err
	}

	c.saving = true
	defer func() { c.saving = false }()

	created, err := c.client.CreateEvent(ctx, draft, c.user.ID)
	if err != nil {
		return err
	}
	if created != nil {
		c.events = append(c.events, *created)
		return nil
	}
	return c.reload(ctx)
}

// SyncCalendar triggers the external calendar import, reloads on success and
// returns the imported count.
func (c *Controller) SyncCalendar(ctx context.Context) (int, error) {
	if c.syncing {
		return 0, ErrBusy
	}
	c.syncing = true
	defer func() { c.syncing = false }()

	synced, err := c.client.SyncCalendar(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.reload(ctx); err != nil {
		return synced, err
	}
	return synced, nil
}

// reload refetches without the duplicate-submission gate, for use inside an
// already gated mutation.
func (c *Controller) reload(ctx context.Context) error {
	events, err := c.client.Events(ctx, nil)
	if err != nil {
		return err
	}
	team, err := c.client.Team(ctx)
	if err != nil {
		return err
	}
	c.events = events
	c.team = team
	return nil
}
