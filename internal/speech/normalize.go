package speech

import (
	"regexp"
	"strings"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/validate"
)

// MaxInputRunes bounds the raw text accepted by Normalize.
const MaxInputRunes = 10000

// Input is the validated form of raw text.
type Input struct {
	Text string `json:"text" validate:"notblank,max=10000"`
}

var (
	validator = validate.New()

	imageLink   = regexp.MustCompile(`!\[([^\]]*)\]\([^)]*\)`)
	link        = regexp.MustCompile(`\[([^\]]*)\]\([^)]*\)`)
	heading     = regexp.MustCompile(`(?m)^[ \t]{0,3}#{1,6}[ \t]*`)
	blockquote  = regexp.MustCompile(`(?m)^[ \t]*>[ \t]?`)
	bullet      = regexp.MustCompile(`(?m)^[ \t]*[-+][ \t]+`)
	strong      = regexp.MustCompile(`\*\*|__`)
	underscore  = regexp.MustCompile(`\b_+|_+\b`)
	paragraphs  = regexp.MustCompile(`\n[ \t]*\n`)
	whitespace  = regexp.MustCompile(`\s+`)
	sentenceEnd = ".!?"
)

// Normalize turns markdown-ish lesson text into plain text suitable for a
// speech engine. Paragraph breaks become sentence pauses.
func Normalize(text string) (string, error) {
	if err := validator.Struct(Input{Text: text}); err != nil {
		return "", errors.Wrap(err, "speech: invalid text")
	}

	s := strings.ReplaceAll(text, "\r\n", "\n")
	s = imageLink.ReplaceAllString(s, "$1")
	s = link.ReplaceAllString(s, "$1")
	s = heading.ReplaceAllString(s, "")
	s = blockquote.ReplaceAllString(s, "")
	s = bullet.ReplaceAllString(s, "")
	s = strong.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "*", "")
	s = underscore.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "`", "")

	var parts []string
	for _, p := range paragraphs.Split(s, -1) {
		p = strings.TrimSpace(whitespace.ReplaceAllString(p, " "))
		if p != "" {
			parts = append(parts, p)
		}
	}

	var out strings.Builder
	for i, p := range parts {
		out.WriteString(p)
		if i == len(parts)-1 {
			break
		}
		if strings.ContainsRune(sentenceEnd, rune(p[len(p)-1])) {
			out.WriteString(" ")
		} else {
			out.WriteString(". ")
		}
	}
	return out.String(), nil
}

// Fields exposes per-field messages for a Normalize validation error.
func Fields(err error) map[string]string {
	return validator.Fields(err)
}
