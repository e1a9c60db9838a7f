// ABOUTME: Mutable pagination state for one listing view
// ABOUTME: Tracks the current params and server totals; navigation is a no-op at the bounds

package pagination

import "sync"

// Listing defaults.
var (
	StudentDefaults    = Params{Size: DefaultSize, SortBy: "firstName", SortDirection: Asc}
	ProfessorDefaults  = Params{Size: DefaultSize, SortBy: "firstName", SortDirection: Asc}
	ClassDefaults      = Params{Size: DefaultSize, SortBy: "title", SortDirection: Asc}
	PaymentDefaults    = Params{Size: DefaultSize, SortBy: "createdAt", SortDirection: Desc}
	DeliveryDefaults   = Params{Size: DefaultSize, SortBy: "deliveredAt", SortDirection: Desc}
	ExerciseDefaults   = Params{Size: DefaultSize, SortBy: "name", SortDirection: Asc}
	MaterialDefaults   = Params{Size: DefaultSize, SortBy: "name", SortDirection: Asc}
	EnrollmentDefaults = Defaults()
)

// Snapshot is a copy of State at one instant.
type Snapshot struct {
	Params
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
}

// State is safe for concurrent use. Each mutation replaces fields under a
// single lock; the last writer wins.
type State struct {
	mu            sync.RWMutex
	defaults      Params
	params        Params
	totalElements int64
	totalPages    int
}

// NewState starts at page 0 with def's size and sort.
func NewState(def Params) *State {
	def = def.Normalize(Defaults())
	def.Page = 0
	return &State{defaults: def, params: def}
}

func (s *State) Params() Params {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.params
}

func (s *State) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Params: s.params, TotalElements: s.totalElements, TotalPages: s.totalPages}
}

// Load replaces the params with already-parsed values (e.g. from ParseQuery).
func (s *State) Load(p Params) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = p.Normalize(s.defaults)
}

// UpdateFromResponse takes the backend's totals and current page as
// authoritative.
func (s *State) UpdateFromResponse(m Metadata) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.totalElements = max(0, m.TotalElements)
	s.totalPages = max(0, m.TotalPages)
	s.params.Page = clampPage(m.Number)
	if m.Size > 0 {
		s.params.Size = clampSize(m.Size)
	}
}

func (s *State) SetPage(page int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Page = clampPage(page)
}

// SetPageSize changes the size and returns to the first page.
func (s *State) SetPageSize(size int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params.Size = clampSize(size)
	s.params.Page = 0
}

// SetSort changes the ordering and returns to the first page.
func (s *State) SetSort(sortBy string, dir Direction) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if sortBy != "" {
		s.params.SortBy = sortBy
	}
	s.params.SortDirection = ParseDirection(string(dir))
	s.params.Page = 0
}

// NextPage advances unless already on the last known page.
func (s *State) NextPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.params.Page >= s.totalPages-1 {
		return false
	}
	s.params.Page++
	return true
}

// PreviousPage steps back unless on page 0.
func (s *State) PreviousPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.params.Page <= 0 {
		return false
	}
	s.params.Page--
	return true
}

func (s *State) FirstPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.params.Page == 0 {
		return false
	}
	s.params.Page = 0
	return true
}

func (s *State) LastPage() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	last := max(0, s.totalPages-1)
	if s.params.Page == last {
		return false
	}
	s.params.Page = last
	return true
}

// Reset restores the listing defaults and forgets server totals.
func (s *State) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.params = s.defaults
	s.totalElements = 0
	s.totalPages = 0
}
