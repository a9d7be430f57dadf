package session

import (
	"errors"

	"github.com/ieltslab/practice-service/internal/catalog"
)

var (
	ErrTokenNotFound    = errors.New("token not found")
	ErrSlotNotDraggable = errors.New("question does not accept dragged tokens")
	ErrTokenNotAssigned = errors.New("token is not assigned to any slot")
)

// Token is the public view of one draggable value.
type Token struct {
	ID       string `json:"id"`
	Value    string `json:"value"`
	Assigned bool   `json:"assigned"`
}

// TokenBoard tracks the one-to-one correspondence between draggable tokens
// and drag-type question slots. Both directions are kept in a single pair of
// maps so a token can never be marked used without occupying a visible slot:
// assigning a token vacates its previous slot, and a slot accepting a token
// releases whichever token it held before.
type TokenBoard struct {
	order     []string
	values    map[string]string // token id -> value
	tokenSlot map[string]int    // token id -> question id
	slotToken map[int]string    // question id -> token id
}

// NewTokenBoard builds a board from the catalog's token pool.
func NewTokenBoard(defs []catalog.TokenDef) *TokenBoard {
	b := &TokenBoard{
		values:    make(map[string]string, len(defs)),
		tokenSlot: make(map[string]int, len(defs)),
		slotToken: make(map[int]string, len(defs)),
	}
	for _, d := range defs {
		b.order = append(b.order, d.ID)
		b.values[d.ID] = d.Value
	}
	return b
}

// AssignResult reports the slots whose answers changed during an assignment.
type AssignResult struct {
	Value        string // value now held by the target slot
	VacatedSlots []int  // slots whose answers must be cleared
}

// Assign places the token into the question slot, maintaining the
// bidirectional invariant.
func (b *TokenBoard) Assign(tokenID string, questionID int) (AssignResult, error) {
	value, ok := b.values[tokenID]
	if !ok {
		return AssignResult{}, ErrTokenNotFound
	}

	var vacated []int

	// The token leaves its previous slot, if any.
	if prevSlot, assigned := b.tokenSlot[tokenID]; assigned {
		if prevSlot == questionID {
			return AssignResult{Value: value}, nil
		}
		delete(b.slotToken, prevSlot)
		vacated = append(vacated, prevSlot)
	}

	// The slot releases its previous token, if any.
	if prevToken, held := b.slotToken[questionID]; held && prevToken != tokenID {
		delete(b.tokenSlot, prevToken)
	}

	b.tokenSlot[tokenID] = questionID
	b.slotToken[questionID] = tokenID
	return AssignResult{Value: value, VacatedSlots: vacated}, nil
}

// Unassign removes the token from its slot and returns the vacated question
// id.
func (b *TokenBoard) Unassign(tokenID string) (int, error) {
	if _, ok := b.values[tokenID]; !ok {
		return 0, ErrTokenNotFound
	}
	slot, assigned := b.tokenSlot[tokenID]
	if !assigned {
		return 0, ErrTokenNotAssigned
	}
	delete(b.tokenSlot, tokenID)
	delete(b.slotToken, slot)
	return slot, nil
}

// IsAssigned reports whether the token currently occupies a slot.
func (b *TokenBoard) IsAssigned(tokenID string) bool {
	_, ok := b.tokenSlot[tokenID]
	return ok
}

// SlotToken returns the token held by the given question slot.
func (b *TokenBoard) SlotToken(questionID int) (Token, bool) {
	id, ok := b.slotToken[questionID]
	if !ok {
		return Token{}, false
	}
	return Token{ID: id, Value: b.values[id], Assigned: true}, true
}

// Tokens returns every token in pool order with its assignment state.
func (b *TokenBoard) Tokens() []Token {
	out := make([]Token, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, Token{ID: id, Value: b.values[id], Assigned: b.IsAssigned(id)})
	}
	return out
}

// Available returns only unassigned tokens; these are the draggable ones.
func (b *TokenBoard) Available() []Token {
	var out []Token
	for _, t := range b.Tokens() {
		if !t.Assigned {
			out = append(out, t)
		}
	}
	return out
}
