package split

import (
	"strings"

	"github.com/Makepad-fr/pizza/internal/model"
)

// HalfSuffix marks a half portion at the end of a name.
const HalfSuffix = "/2"

// Parse turns the participant text box into participants, one per line.
// Lines are kept as typed: no trimming, no deduplication, and an empty line
// in the middle is an unnamed participant. The empty tail left by a final
// newline is not a participant.
func Parse(text string) []model.Participant {
	lines := strings.Split(text, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	out := make([]model.Participant, 0, len(lines))
	for _, name := range lines {
		out = append(out, model.Participant{
			Name: name,
			Half: strings.HasSuffix(name, HalfSuffix),
		})
	}
	return out
}

// Format writes one name per line. Half and paid flags are not part of the
// text form.
func Format(participants []model.Participant) string {
	names := make([]string, len(participants))
	for i, p := range participants {
		names[i] = p.Name
	}
	return strings.Join(names, "\n")
}
