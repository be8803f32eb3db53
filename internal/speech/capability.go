package speech

import (
	"context"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnsupported is returned by capabilities the host does not provide.
var ErrUnsupported = errors.New("speech: capability not supported")

type Synthesizer interface {
	Available() bool
	Speak(ctx context.Context, text string) error
}

type Recognizer interface {
	Available() bool
	Listen(ctx context.Context) (string, error)
}

type unavailable struct{}

func (unavailable) Available() bool                       { return false }
func (unavailable) Speak(context.Context, string) error    { return ErrUnsupported }
func (unavailable) Listen(context.Context) (string, error) { return "", ErrUnsupported }

// UnavailableSynthesizer and UnavailableRecognizer stand in for missing
// host capabilities.
func UnavailableSynthesizer() Synthesizer { return unavailable{} }
func UnavailableRecognizer() Recognizer   { return unavailable{} }

// ExecSynthesizer speaks by running a local text-to-speech binary with the
// text as its last argument.
type ExecSynthesizer struct {
	Name string
	Args []string
}

// NewExecSynthesizer splits a command line such as "espeak -s 150".
func NewExecSynthesizer(command string) *ExecSynthesizer {
	f := strings.Fields(command)
	if len(f) == 0 {
		return &ExecSynthesizer{}
	}
	return &ExecSynthesizer{Name: f[0], Args: f[1:]}
}

func (e *ExecSynthesizer) Available() bool {
	if e.Name == "" {
		return false
	}
	_, err := exec.LookPath(e.Name)
	return err == nil
}

func (e *ExecSynthesizer) Speak(ctx context.Context, text string) error {
	if !e.Available() {
		return errors.Wrapf(ErrUnsupported, "%q not on PATH", e.Name)
	}
	args := append(append([]string(nil), e.Args...), text)
	out, err := exec.CommandContext(ctx, e.Name, args...).CombinedOutput()
	if err != nil {
		return errors.Wrapf(err, "speech: %s: %s", e.Name, strings.TrimSpace(string(out)))
	}
	return nil
}

var knownEngines = []string{"espeak-ng", "espeak", "say", "spd-say"}

// DetectSynthesizer returns an ExecSynthesizer for preferred when it is
// runnable, else the first known engine on PATH, else an unavailable one.
func DetectSynthesizer(preferred string) Synthesizer {
	if preferred != "" {
		if s := NewExecSynthesizer(preferred); s.Available() {
			return s
		}
	}
	for _, name := range knownEngines {
		if s := NewExecSynthesizer(name); s.Available() {
			return s
		}
	}
	return UnavailableSynthesizer()
}
