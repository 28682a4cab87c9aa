package feedback

// QuestionType is how the survey form renders a question.
type QuestionType string

const (
	Dropdown QuestionType = "dropdown"
	Text     QuestionType = "text"
	Number   QuestionType = "number"
	Checkbox QuestionType = "checkbox"
)

// Question is one survey question. Audience is the person type the form shows
// it to; empty means everyone.
type Question struct {
	ID       string       `json:"id"`
	Text     string       `json:"text"`
	Type     QuestionType `json:"type"`
	Audience PersonType   `json:"audience,omitempty"`
	Options  []string     `json:"options,omitempty"`
}

// Choice reports whether answers to q are tallied as discrete options.
func (q Question) Choice() bool {
	return q.Type == Dropdown || q.Type == Checkbox
}

// Multi reports whether q allows several options per submission.
func (q Question) Multi() bool {
	return q.Type == Checkbox
}

// Questions is the survey catalogue. The options are informational: answers
// are stored as submitted.
var Questions = []Question{
	{ID: "q1", Text: "How easy was it to find or offer a service?", Type: Dropdown, Options: []string{"Very easy", "Average", "Hard"}},
	{ID: "q2", Text: "Would you use this platform?", Type: Dropdown, Options: []string{"Yes", "No"}},
	{ID: "q3", Text: "What feature do you wish we had?", Type: Text},
	{ID: "q4", Text: "How do you usually find technicians/customers today?", Type: Text},
	{ID: "q5", Text: "Would you recommend our platform to others?", Type: Dropdown, Options: []string{"Yes", "No"}},
	{ID: "q6", Text: "How often do you get new customers weekly?", Type: Number, Audience: Technician},
	{ID: "q7", Text: "What commission % feels fair to you?", Type: Number, Audience: Technician},
	{ID: "q8", Text: "Would you prefer cash or digital payments?", Type: Dropdown, Audience: Technician, Options: []string{"Cash", "UPI", "Card"}},
	{ID: "q9", Text: "How quickly do you expect a technician to arrive?", Type: Dropdown, Audience: Customer, Options: []string{"30 min", "1 hr", "2 hrs", "Same day"}},
	{ID: "q10", Text: "What matters most to you?", Type: Checkbox, Audience: Customer, Options: []string{"Price", "Trust", "Speed", "Reviews"}},
}

// SearchableAnswerKeys are the answers included in free-text search.
var SearchableAnswerKeys = []string{"q1", "q2", "q3", "q4", "q5"}

// ChoiceQuestions returns the catalogue entries that are tallied by the choice analytics.
func ChoiceQuestions() []Question {
	out := make([]Question, 0, len(Questions))
	for _, q := range Questions {
		if q.Choice() {
			out = append(out, q)
		}
	}
	return out
}

// QuestionByID looks up a catalogue entry.
func QuestionByID(id string) (Question, bool) {
	for _, q := range Questions {
		if q.ID == id {
			return q, true
		}
	}
	return Question{}, false
}

func questionOrder(id string) int {
	for i, q := range Questions {
		if q.ID == id {
			return i
		}
	}
	return len(Questions)
}
