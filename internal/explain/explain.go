package explain

import (
	"context"
	"fmt"
)

// Keyword is one vocabulary item of an explanation, with its translation and
// whether it was found in the question or the passage.
type Keyword struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
	Source      string `json:"source"`
}

// Explanation is the structured answer analysis produced by the
// text-generation collaborator for one question.
type Explanation struct {
	Keywords    []Keyword `json:"keywords"`
	Explanation string    `json:"explanation"`
	KeySentence string    `json:"keysentence"`
	Reasoning   []string  `json:"reasoning"`
}

// Request carries everything the generator needs to analyze one answered
// question.
type Request struct {
	QuestionID     int
	QuestionText   string
	PassageExcerpt string
	CorrectAnswer  string
	UserAnswer     string
	Correct        bool
}

// Generator produces a structured explanation for one answered question.
type Generator interface {
	Generate(ctx context.Context, req Request) (Explanation, error)
}

// Fallback is the substitute explanation used when generation fails for a
// question. It is always non-empty so the results view never shows a hole.
func Fallback(req Request) Explanation {
	return Explanation{
		Keywords: []Keyword{
			{Word: "evidence", Translation: "bằng chứng", Source: "question"},
			{Word: "remains", Translation: "còn lại", Source: "passage"},
		},
		Explanation: fmt.Sprintf("For Question %d — the answer is %s.", req.QuestionID, req.CorrectAnswer),
		KeySentence: "Key information from the passage supports this answer.",
		Reasoning: []string{
			"The passage provides clear evidence",
			"The question matches the text",
			"This is the most logical answer",
		},
	}
}
