package session

// Per-chat conversation state. Everything a flow collects lives in this
// struct, serialized as one JSON blob in redis with an idle TTL, so an
// abandoned conversation expires on its own and two chats can never see
// each other's accumulator or list positions.

type ListKind string

const (
	ListJobs         ListKind = "jobs"
	ListSavedJobs    ListKind = "saved_jobs"
	ListApplications ListKind = "applications"
	ListMyJobs       ListKind = "my_jobs"
	ListMyCompanies  ListKind = "my_companies"
	ListApplicants   ListKind = "applicants"
)

// Cursor is a zero-based position in a result set. Next and Prev clamp, so
// a stray button press at either end re-renders the same element instead of
// running off the backing list.
type Cursor struct {
	Index int `json:"index"`
	Total int `json:"total"`
}

func (c *Cursor) Next() {
	if c.Index < c.Total-1 {
		c.Index++
	}
}

func (c *Cursor) Prev() {
	if c.Index > 0 {
		c.Index--
	}
}

// Sync records a freshly recomputed total and clamps the index into range.
func (c *Cursor) Sync(total int) {
	c.Total = total
	if total <= 0 {
		c.Index = 0
		return
	}
	if c.Index > total-1 {
		c.Index = total - 1
	}
	if c.Index < 0 {
		c.Index = 0
	}
}

type Session struct {
	ChatID int64  `json:"chat_id"`
	Role   string `json:"role"`

	// Active flow, empty when idle
	Flow  string            `json:"flow,omitempty"`
	State string            `json:"state,omitempty"`
	Acc   map[string]string `json:"acc,omitempty"`

	// Subject of the active flow or list (job being applied to, job whose
	// applicants are being browsed)
	JobID int64 `json:"job_id,omitempty"`

	Cursors map[ListKind]*Cursor `json:"cursors,omitempty"`
}

func (s *Session) Set(field, value string) {
	if s.Acc == nil {
		s.Acc = make(map[string]string)
	}
	s.Acc[field] = value
}

func (s *Session) Get(field string) string {
	return s.Acc[field]
}

// ResetFlow discards the accumulator and returns the session to idle.
func (s *Session) ResetFlow() {
	s.Flow = ""
	s.State = ""
	s.Acc = nil
	s.JobID = 0
}

func (s *Session) InFlow() bool {
	return s.Flow != ""
}

// Cursor returns the cursor for a list kind, creating it on first use.
func (s *Session) Cursor(kind ListKind) *Cursor {
	if s.Cursors == nil {
		s.Cursors = make(map[ListKind]*Cursor)
	}
	c, ok := s.Cursors[kind]
	if !ok {
		c = &Cursor{}
		s.Cursors[kind] = c
	}
	return c
}
