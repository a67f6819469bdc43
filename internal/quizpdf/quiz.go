package quizpdf

import "fmt"

// Quiz is a titled, ordered list of questions to print.
type Quiz struct {
	Title     string     `json:"title"`
	Questions []Question `json:"questions"`
}

type Question struct {
	Title        string   `json:"title"`
	Statement    string   `json:"statement"`
	Type         string   `json:"type"`
	Font         string   `json:"font"`
	Year         *int     `json:"year"`
	Alternatives []string `json:"alternatives"`
	Response     string   `json:"response"`
}

func (q Question) sourceLine() string {
	if q.Year != nil {
		return fmt.Sprintf("Fonte: %s %d [%s]", q.Font, *q.Year, q.Type)
	}
	return fmt.Sprintf("Fonte: %s [%s]", q.Font, q.Type)
}

// alternativeLabel returns "a) ", "b) ", ... for index i.
func alternativeLabel(i int) string {
	if i < 0 {
		i = 0
	}
	label := ""
	for {
		label = string(rune('a'+i%26)) + label
		i = i/26 - 1
		if i < 0 {
			break
		}
	}
	return label + ") "
}
