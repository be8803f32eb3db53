package speech

import (
	"context"

	"github.com/pkg/errors"

	"github.com/san-kum/eduverse/internal/logging"
)

type Level string

const (
	LevelInfo    Level = "info"
	LevelWarning Level = "warning"
)

// Notice is a non-blocking message for the user. The zero Notice means
// there is nothing to report.
type Notice struct {
	Level   Level  `json:"level,omitempty"`
	Message string `json:"message,omitempty"`
}

func (n Notice) Empty() bool { return n.Message == "" }

// Dispatcher normalizes text and hands it to the host capabilities.
type Dispatcher struct {
	synth Synthesizer
	rec   Recognizer
	log   logging.Logger
}

func NewDispatcher(s Synthesizer, r Recognizer, log logging.Logger) *Dispatcher {
	if s == nil {
		s = UnavailableSynthesizer()
	}
	if r == nil {
		r = UnavailableRecognizer()
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Dispatcher{synth: s, rec: r, log: log}
}

// Say speaks raw after normalizing it. Only invalid input is returned as an
// error; capability problems come back as a notice.
func (d *Dispatcher) Say(ctx context.Context, raw string) (string, Notice, error) {
	text, err := Normalize(raw)
	if err != nil {
		return "", Notice{}, err
	}
	if text == "" {
		return "", Notice{Level: LevelInfo, Message: "nothing to read aloud"}, nil
	}
	if !d.synth.Available() {
		d.log.Warnf("speech: synthesis unavailable")
		return text, Notice{Level: LevelWarning, Message: "speech synthesis is not supported here"}, nil
	}
	if err := d.synth.Speak(ctx, text); err != nil {
		if errors.Is(err, ErrUnsupported) {
			d.log.Warnf("speech: %v", err)
			return text, Notice{Level: LevelWarning, Message: "speech synthesis is not supported here"}, nil
		}
		d.log.Errorf("speech: speak: %v", err)
		return text, Notice{Level: LevelWarning, Message: "could not read the text aloud"}, nil
	}
	return text, Notice{}, nil
}

// Listen returns recognized speech, or a notice when recognition is not
// possible.
func (d *Dispatcher) Listen(ctx context.Context) (string, Notice) {
	if !d.rec.Available() {
		return "", Notice{Level: LevelWarning, Message: "speech recognition is not supported here"}
	}
	text, err := d.rec.Listen(ctx)
	if err != nil {
		d.log.Errorf("speech: listen: %v", err)
		return "", Notice{Level: LevelWarning, Message: "could not understand the recording"}
	}
	return text, Notice{}
}
