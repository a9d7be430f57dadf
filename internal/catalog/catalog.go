package catalog

import "fmt"

type QuestionType string

const (
	FillInBlank       QuestionType = "fill_in_blank"
	MultipleChoice    QuestionType = "multiple_choice"
	TrueFalseNotGiven QuestionType = "true_false_not_given"
	Matching          QuestionType = "matching"
	Drag              QuestionType = "drag"
)

func (t QuestionType) Valid() bool {
	switch t {
	case FillInBlank, MultipleChoice, TrueFalseNotGiven, Matching, Drag:
		return true
	}
	return false
}

type TestKind string

const (
	KindReading   TestKind = "reading"
	KindListening TestKind = "listening"
)

func (k TestKind) Valid() bool {
	return k == KindReading || k == KindListening
}

// Question is one entry of a test catalog. Immutable once the catalog is built.
type Question struct {
	ID            int          `json:"id"`
	Type          QuestionType `json:"type"`
	Prompt        string       `json:"prompt"`
	Options       []string     `json:"options,omitempty"` // multiple_choice / matching only
	CorrectAnswer string       `json:"correct_answer"`
	GroupID       int          `json:"group_id"` // passage or part number
}

// Passage is the reading text (or listening part transcript header) questions
// refer to via GroupID.
type Passage struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

// TokenDef declares one reusable draggable value for drag-type questions.
type TokenDef struct {
	ID    string `json:"id"`
	Value string `json:"value"`
}

// Catalog is an ordered, immutable test definition. All lookups are O(1);
// enumeration preserves authoring order.
type Catalog struct {
	ID              string     `json:"id"`
	Title           string     `json:"title"`
	Kind            TestKind   `json:"kind"`
	DurationSeconds int        `json:"duration_seconds"`
	Passages        []Passage  `json:"passages"`
	Questions       []Question `json:"questions"`
	Tokens          []TokenDef `json:"tokens,omitempty"`
	Bands           BandScale  `json:"bands"`

	index map[int]int // question id -> position in Questions
}

// New validates and indexes a catalog definition.
func New(id, title string, kind TestKind, durationSeconds int, passages []Passage, questions []Question, tokens []TokenDef, bands BandScale) (*Catalog, error) {
	if id == "" {
		return nil, fmt.Errorf("catalog id is required")
	}
	if !kind.Valid() {
		return nil, fmt.Errorf("invalid test kind %q", kind)
	}
	if durationSeconds <= 0 {
		return nil, fmt.Errorf("duration must be positive, got %d", durationSeconds)
	}
	if len(questions) == 0 {
		return nil, fmt.Errorf("catalog %s has no questions", id)
	}

	index := make(map[int]int, len(questions))
	for i, q := range questions {
		if !q.Type.Valid() {
			return nil, fmt.Errorf("question %d: invalid type %q", q.ID, q.Type)
		}
		if _, dup := index[q.ID]; dup {
			return nil, fmt.Errorf("duplicate question id %d", q.ID)
		}
		index[q.ID] = i
	}

	seen := make(map[string]struct{}, len(tokens))
	for _, tok := range tokens {
		if tok.ID == "" || tok.Value == "" {
			return nil, fmt.Errorf("token %q must have an id and a value", tok.ID)
		}
		if _, dup := seen[tok.ID]; dup {
			return nil, fmt.Errorf("duplicate token id %q", tok.ID)
		}
		seen[tok.ID] = struct{}{}
	}

	return &Catalog{
		ID:              id,
		Title:           title,
		Kind:            kind,
		DurationSeconds: durationSeconds,
		Passages:        passages,
		Questions:       questions,
		Tokens:          tokens,
		Bands:           bands.normalized(),
		index:           index,
	}, nil
}

// Question returns the question with the given id.
func (c *Catalog) Question(id int) (Question, bool) {
	i, ok := c.index[id]
	if !ok {
		return Question{}, false
	}
	return c.Questions[i], true
}

// Has reports whether the catalog contains the given question id.
func (c *Catalog) Has(id int) bool {
	_, ok := c.index[id]
	return ok
}

// Order returns all question ids in catalog order.
func (c *Catalog) Order() []int {
	ids := make([]int, len(c.Questions))
	for i, q := range c.Questions {
		ids[i] = q.ID
	}
	return ids
}

// PartQuestions returns the questions of one part/passage, in catalog order.
func (c *Catalog) PartQuestions(groupID int) []Question {
	var out []Question
	for _, q := range c.Questions {
		if q.GroupID == groupID {
			out = append(out, q)
		}
	}
	return out
}

// Passage returns the passage with the given id.
func (c *Catalog) Passage(id int) (Passage, bool) {
	for _, p := range c.Passages {
		if p.ID == id {
			return p, true
		}
	}
	return Passage{}, false
}
