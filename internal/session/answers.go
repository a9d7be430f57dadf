package session

// AnswerEntry is one question's recorded response. An empty value means
// unanswered.
type AnswerEntry struct {
	QuestionID int    `json:"question_id"`
	Value      string `json:"value"`
}

// AnswerStore is the single source of truth for a session's responses.
// Writes are last-write-wins upserts; reads default to "". Enumeration
// preserves catalog order. The store is not safe for concurrent use on its
// own; the owning Session serializes access.
type AnswerStore struct {
	order  []int
	known  map[int]struct{}
	values map[int]string
}

// NewAnswerStore creates an empty store for the given catalog order.
func NewAnswerStore(order []int) *AnswerStore {
	known := make(map[int]struct{}, len(order))
	for _, id := range order {
		known[id] = struct{}{}
	}
	return &AnswerStore{
		order:  append([]int(nil), order...),
		known:  known,
		values: make(map[int]string, len(order)),
	}
}

// Set records the value for a question. Ids outside the catalog are ignored.
func (s *AnswerStore) Set(questionID int, value string) {
	if _, ok := s.known[questionID]; !ok {
		return
	}
	s.values[questionID] = value
}

// Get returns the recorded value, or "" when the question is unanswered or
// unknown.
func (s *AnswerStore) Get(questionID int) string {
	return s.values[questionID]
}

// IsAnswered reports whether the question has a non-empty value.
func (s *AnswerStore) IsAnswered(questionID int) bool {
	return s.values[questionID] != ""
}

// Snapshot returns all entries in catalog order, including unanswered ones.
func (s *AnswerStore) Snapshot() []AnswerEntry {
	out := make([]AnswerEntry, len(s.order))
	for i, id := range s.order {
		out[i] = AnswerEntry{QuestionID: id, Value: s.values[id]}
	}
	return out
}

// Values returns a copy of the non-empty responses keyed by question id.
func (s *AnswerStore) Values() map[int]string {
	out := make(map[int]string, len(s.values))
	for id, v := range s.values {
		if v != "" {
			out[id] = v
		}
	}
	return out
}

// AnsweredCount returns the number of questions with a non-empty value.
func (s *AnswerStore) AnsweredCount() int {
	n := 0
	for _, v := range s.values {
		if v != "" {
			n++
		}
	}
	return n
}

// Len returns the catalog size the store was built for.
func (s *AnswerStore) Len() int {
	return len(s.order)
}
