package session

// MarkState is the navigator rendering state of one question. Priority when
// several apply: current > review > answered > unanswered.
type MarkState string

const (
	MarkCurrent    MarkState = "current"
	MarkReview     MarkState = "review"
	MarkAnswered   MarkState = "answered"
	MarkUnanswered MarkState = "unanswered"
)

// Navigator tracks the current position and the flagged-for-review set over
// a fixed catalog order. All operations are total: unknown ids are ignored
// and movement clamps at the ends.
type Navigator struct {
	order      []int
	positions  map[int]int
	pos        int
	review     map[int]struct{}
	isAnswered func(questionID int) bool
}

// NewNavigator positions at the first question of the given order.
func NewNavigator(order []int, isAnswered func(int) bool) *Navigator {
	positions := make(map[int]int, len(order))
	for i, id := range order {
		positions[id] = i
	}
	return &Navigator{
		order:      append([]int(nil), order...),
		positions:  positions,
		review:     make(map[int]struct{}),
		isAnswered: isAnswered,
	}
}

// Current returns the question id at the current position.
func (n *Navigator) Current() int {
	if len(n.order) == 0 {
		return 0
	}
	return n.order[n.pos]
}

// GoTo moves to the given question; unknown ids leave the position unchanged.
func (n *Navigator) GoTo(questionID int) {
	if i, ok := n.positions[questionID]; ok {
		n.pos = i
	}
}

// Next advances one question, clamped at the last (no wraparound).
func (n *Navigator) Next() {
	if n.pos < len(n.order)-1 {
		n.pos++
	}
}

// Prev moves back one question, clamped at the first.
func (n *Navigator) Prev() {
	if n.pos > 0 {
		n.pos--
	}
}

// ToggleReview flips the review flag for a question.
func (n *Navigator) ToggleReview(questionID int) {
	if _, ok := n.positions[questionID]; !ok {
		return
	}
	if _, flagged := n.review[questionID]; flagged {
		delete(n.review, questionID)
	} else {
		n.review[questionID] = struct{}{}
	}
}

// IsFlagged reports whether the question is flagged for review.
func (n *Navigator) IsFlagged(questionID int) bool {
	_, ok := n.review[questionID]
	return ok
}

// Flagged returns the flagged question ids in catalog order.
func (n *Navigator) Flagged() []int {
	var out []int
	for _, id := range n.order {
		if n.IsFlagged(id) {
			out = append(out, id)
		}
	}
	return out
}

// IsComplete reports whether the question has a non-empty answer.
func (n *Navigator) IsComplete(questionID int) bool {
	return n.isAnswered != nil && n.isAnswered(questionID)
}

// MarkState derives the rendering state for one question.
func (n *Navigator) MarkState(questionID int) MarkState {
	switch {
	case questionID == n.Current():
		return MarkCurrent
	case n.IsFlagged(questionID):
		return MarkReview
	case n.IsComplete(questionID):
		return MarkAnswered
	default:
		return MarkUnanswered
	}
}
