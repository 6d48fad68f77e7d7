package model

// EventType classifies an appointment. Values are the wire strings used by
// the backend.
type EventType string

const (
	TypeHearing   EventType = "audiencia"
	TypeMeeting   EventType = "reuniao"
	TypeDiligence EventType = "diligencia"
	TypeDeadline  EventType = "prazo"
	TypeInternal  EventType = "interno"
	TypeSales     EventType = "comercial"
)

// EventTypeInfo holds display metadata for an event type.
type EventTypeInfo struct {
	Label   string
	Color   string
	BgColor string
}

var eventTypeInfo = map[EventType]EventTypeInfo{
	TypeHearing:   {Label: "Audiência", Color: "#DC2626", BgColor: "#FEE2E2"},
	TypeMeeting:   {Label: "Reunião", Color: "#2563EB", BgColor: "#DBEAFE"},
	TypeDiligence: {Label: "Diligência", Color: "#7C3AED", BgColor: "#EDE9FE"},
	TypeDeadline:  {Label: "Prazo", Color: "#EA580C", BgColor: "#FFEDD5"},
	TypeInternal:  {Label: "Interno", Color: "#059669", BgColor: "#D1FAE5"},
	TypeSales:     {Label: "Comercial", Color: "#0891B2", BgColor: "#CFFAFE"},
}

// Info returns the display metadata for the type. Unknown types fall back to
// the meeting styling; the raw value is preserved in data.
func (t EventType) Info() EventTypeInfo {
	if info, ok := eventTypeInfo[t]; ok {
		return info
	}
	return eventTypeInfo[TypeMeeting]
}

// Known reports whether the type is one of the fixed enumeration values.
func (t EventType) Known() bool {
	_, ok := eventTypeInfo[t]
	return ok
}

// EventTypes lists the enumeration in display order.
func EventTypes() []EventType {
	return []EventType{TypeHearing, TypeMeeting, TypeDiligence, TypeDeadline, TypeInternal, TypeSales}
}

// Status is an event's lifecycle state. Values are the wire strings used by
// the backend.
type Status string

const (
	StatusPending   Status = "pendente"
	StatusConfirmed Status = "confirmado"
	StatusDone      Status = "concluido"
	StatusUrgent    Status = "urgente"
	StatusCancelled Status = "cancelado"
)

// StatusInfo holds display metadata for a status.
type StatusInfo struct {
	Label string
	Color string
}

var statusInfo = map[Status]StatusInfo{
	StatusPending:   {Label: "Pendente", Color: "#F59E0B"},
	StatusConfirmed: {Label: "Confirmado", Color: "#10B981"},
	StatusDone:      {Label: "Concluído", Color: "#6B7280"},
	StatusUrgent:    {Label: "Urgente", Color: "#DC2626"},
	StatusCancelled: {Label: "Cancelado", Color: "#EF4444"},
}

// Info returns the display metadata for the status. Unknown statuses fall
// back to the pending styling; the raw value is preserved in data.
func (s Status) Info() StatusInfo {
	if info, ok := statusInfo[s]; ok {
		return info
	}
	return statusInfo[StatusPending]
}

// Known reports whether the status is one of the fixed enumeration values.
func (s Status) Known() bool {
	_, ok := statusInfo[s]
	return ok
}

// Statuses lists the enumeration in display order.
func Statuses() []Status {
	return []Status{StatusPending, StatusConfirmed, StatusDone, StatusUrgent, StatusCancelled}
}

// Comment is an append-only note on an event. The author's name and avatar
// are snapshots taken when the comment was written.
type Comment struct {
	UserName   string `json:"user_name"`
	UserAvatar string `json:"user_avatar,omitempty"`
	Content    string `json:"content"`
	CreatedAt  string `json:"created_at,omitempty"`
}

// Event is an appointment on the firm's agenda. Date and time are kept as
// the literal strings the backend sends; day matching is exact string
// equality on Date, never range containment.
type Event struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Type       EventType `json:"type"`
	Date       string    `json:"event_date"`
	Time       string    `json:"event_time"`
	Status     Status    `json:"status"`
	Location   string    `json:"location,omitempty"`
	ClientName string    `json:"client_name,omitempty"`
	Category   string    `json:"category,omitempty"`
	Assignees  []User    `json:"assignees,omitempty"`
	Comments   []Comment `json:"comments,omitempty"`
}

// DisplayTime returns the time-of-day trimmed to HH:MM.
func (e Event) DisplayTime() string {
	if len(e.Time) > 5 {
		return e.Time[:5]
	}
	return e.Time
}

// AssignedTo reports whether the given team member is an assignee.
func (e Event) AssignedTo(memberID int64) bool {
	for _, a := range e.Assignees {
		if a.ID == memberID {
			return true
		}
	}
	return false
}
