package viz

import (
	"fmt"
	"image"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/logging"
	"github.com/san-kum/eduverse/internal/scene"
)

const (
	defaultWidth    = 72
	defaultHeight   = 24
	historyCapacity = 300
	maxGIFFrames    = 600
)

type frameMsg time.Time

type PreviewOptions struct {
	FPS           int
	Width, Height int
	Theme         string
	GIFPath       string
	Seed          int64
	Logger        logging.Logger
}

// Preview is the Bubble Tea model for one mounted scene. Every frame it
// advances its own clock by 1/FPS unless paused and emits the elapsed time
// on a frame host the animation session is subscribed to.
type Preview struct {
	asm      *scene.Assembler
	desc     scene.Descriptor
	params   scene.Params
	host     *anim.FrameHost
	session  *anim.Session
	log      logging.Logger
	canvas   *Canvas
	camera   *Camera
	fps      int
	elapsed  float64
	seed     int64
	paused   bool
	theme    int
	history  []float64
	notice   string
	showHelp bool
	gifPath  string
	frames   []*image.Paletted
	record   bool
}

func NewPreview(asm *scene.Assembler, desc scene.Descriptor, params scene.Params, bindings []anim.Binding, opts PreviewOptions) (Preview, error) {
	if opts.FPS <= 0 {
		opts.FPS = 60
	}
	if opts.Width <= 0 {
		opts.Width = defaultWidth
	}
	if opts.Height <= 0 {
		opts.Height = defaultHeight
	}
	if opts.GIFPath == "" {
		opts.GIFPath = "eduverse.gif"
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}

	sc, err := asm.Build(desc, params.WithSeed(opts.Seed))
	if err != nil {
		return Preview{}, err
	}
	host := anim.NewFrameHost()
	sess, err := anim.Mount(host, sc, bindings, opts.Logger)
	if err != nil {
		return Preview{}, err
	}

	return Preview{
		asm:     asm,
		desc:    desc,
		params:  params,
		host:    host,
		session: sess,
		log:     opts.Logger,
		canvas:  NewCanvas(opts.Width, opts.Height),
		camera:  NewCamera(),
		fps:     opts.FPS,
		seed:    opts.Seed,
		theme:   ThemeIndex(opts.Theme),
		history: make([]float64, 0, historyCapacity),
		gifPath: opts.GIFPath,
	}, nil
}

func (m Preview) tick() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(m.fps), func(t time.Time) tea.Msg { return frameMsg(t) })
}

func (m Preview) Init() tea.Cmd {
	return m.tick()
}

func (m Preview) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			m.Close()
			return m, tea.Quit
		case " ":
			m.paused = !m.paused
		case "r":
			m.regenerate(time.Now().UnixNano())
		case "x":
			m.camera.RotateX(0.1)
		case "X":
			m.camera.RotateX(-0.1)
		case "y":
			m.camera.RotateY(0.1)
		case "Y":
			m.camera.RotateY(-0.1)
		case "z":
			m.camera.RotateZ(0.1)
		case "Z":
			m.camera.RotateZ(-0.1)
		case "+", "=":
			m.camera.ZoomIn()
		case "-", "_":
			m.camera.ZoomOut()
		case "t":
			m.theme = (m.theme + 1) % len(Themes)
		case "g":
			m.toggleRecording()
		case "?":
			m.showHelp = !m.showHelp
		}
	case tea.WindowSizeMsg:
		w, h := msg.Width-48, msg.Height-4
		if w >= 20 && h >= 8 {
			m.canvas = NewCanvas(w, h)
		}
	case frameMsg:
		m.Step()
		if m.record {
			m.frames = append(m.frames, m.canvas.Image(gifCharW, gifCharH, gifBackground))
			if len(m.frames) >= maxGIFFrames {
				m.toggleRecording()
			}
		}
		return m, m.tick()
	}
	return m, nil
}

// Step advances the clock by one frame when running and redraws.
func (m *Preview) Step() {
	if !m.paused && m.session.Mounted() {
		m.elapsed += 1 / float64(m.fps)
		m.host.Emit(anim.ClockSample(m.elapsed))
		m.sample()
	}
	m.draw()
}

func (m *Preview) sample() {
	b := m.session.Driver.Bindings()
	if len(b) == 0 {
		return
	}
	r, _ := m.session.Driver.Rotation(b[0].Group)
	m.history = append(m.history, r[b[0].Axis])
	if len(m.history) > historyCapacity {
		m.history = m.history[1:]
	}
}

func (m *Preview) regenerate(seed int64) {
	m.seed = seed
	next, err := m.asm.Build(m.desc, m.params.WithSeed(seed))
	if err == nil {
		err = m.session.Regenerate(next)
	}
	if err != nil {
		m.log.Warnf("preview: regenerate %s: %v", m.desc.Kind, err)
		m.notice = "regenerate failed: " + err.Error()
		return
	}
	m.notice = fmt.Sprintf("regenerated (seed %d)", seed)
}

func (m *Preview) toggleRecording() {
	if !m.record {
		m.record = true
		m.frames = m.frames[:0]
		m.notice = "recording"
		return
	}
	m.record = false
	delay := 100 / m.fps
	if err := WriteGIF(m.gifPath, m.frames, delay); err != nil {
		m.log.Warnf("preview: %v", err)
		m.notice = err.Error()
	} else {
		m.notice = fmt.Sprintf("saved %d frames to %s", len(m.frames), m.gifPath)
	}
	m.frames = nil
}

// Close unmounts the session. It is safe to call more than once.
func (m Preview) Close() {
	if m.session != nil {
		m.session.Unmount()
	}
}

func (m Preview) Session() *anim.Session { return m.session }

func (m Preview) Elapsed() float64 { return m.elapsed }

func (m *Preview) draw() {
	m.canvas.Clear()
	wf := FromScene(m.session.Scene(), m.session.Driver.Snapshot())
	if t := Themes[m.theme]; t.Mono {
		for i := range wf.Edges {
			wf.Edges[i].Color = string(t.Primary)
		}
	}
	Render3D(m.canvas, wf, m.camera)
}

func (m Preview) View() string {
	t := Themes[m.theme]
	m.draw()

	var s strings.Builder
	s.WriteString(headerStyle(t).Render(GradientText(strings.ToUpper(string(m.desc.Kind)), lipgloss.Color(t.Primary), lipgloss.Color(t.Accent))) + "\n")
	s.WriteString(subtle.Render(scene.Describe(m.desc.Kind)) + "\n\n")

	switch {
	case m.record:
		s.WriteString(statusRecording.Render("● REC") + "  ")
	case !m.session.Mounted():
		s.WriteString(statusPaused.Render("UNMOUNTED") + "  ")
	}
	if m.paused {
		s.WriteString(statusPaused.Render("PAUSED") + "\n")
	} else {
		s.WriteString(statusRunning.Render("RUNNING") + "\n")
	}

	if len(m.history) > 1 {
		b := m.session.Driver.Bindings()
		caption := ""
		if len(b) > 0 {
			caption = fmt.Sprintf("%s.%s", b[0].Group, b[0].Axis)
		}
		chart := asciigraph.Plot(m.history, asciigraph.Height(4), asciigraph.Width(30), asciigraph.Caption(caption))
		s.WriteString(graphStyle.Foreground(t.Secondary).Render(chart) + "\n")
	}

	row := func(label, value string) {
		s.WriteString(labelStyle.Render(label) + valueStyle.Render(value) + "\n")
	}
	row("Time", fmt.Sprintf("%.2fs", m.elapsed))
	row("Ticks", fmt.Sprintf("%d", m.session.Driver.Ticks()))
	row("Scale", fmt.Sprintf("%.2f", m.desc.ScaleFactor))
	row("Shapes", fmt.Sprintf("%d", len(m.session.Scene().Placements())))
	if m.seed != 0 {
		row("Seed", fmt.Sprintf("%d", m.seed))
	}
	row("Theme", t.Name)

	s.WriteString("\nGROUPS\n")
	snap := m.session.Driver.Snapshot()
	for _, id := range m.session.Scene().Groups() {
		r, ok := snap[id]
		if !ok {
			s.WriteString("  " + subtle.Render(string(id)) + "\n")
			continue
		}
		s.WriteString(fmt.Sprintf("  %-15s %6.2f %6.2f %6.2f\n", id, r[0], r[1], r[2]))
	}
	if m.notice != "" {
		s.WriteString("\n" + lipgloss.NewStyle().Foreground(t.Accent).Render(m.notice) + "\n")
	}
	s.WriteString(helpStyle.Render(Separator(30) + "\n" +
		keyHints(t, "SP", "pause", "R", "regen", "Q", "quit") + "\n" +
		keyHints(t, "XYZ", "orbit", "+/-", "zoom", "T", "theme") + "\n" +
		keyHints(t, "G", "gif", "?", "help")))

	main := lipgloss.JoinHorizontal(lipgloss.Top, canvasStyle.Render(m.canvas.Render()), statsStyle.Render(s.String()))
	if m.showHelp {
		return helpOverlay + "\n\n" + main
	}
	return main
}

const helpOverlay = `
╔══════════════════════════════════════╗
║          KEYBOARD SHORTCUTS          ║
╠══════════════════════════════════════╣
║  Space    - Pause/Resume the clock   ║
║  R        - Regenerate (new seed)    ║
║  x/y/z    - Orbit camera (+)         ║
║  X/Y/Z    - Orbit camera (-)         ║
║  + / -    - Zoom in / out            ║
║  T        - Cycle themes             ║
║  G        - Toggle GIF recording     ║
║  ?        - Toggle this help         ║
║  Q        - Quit                     ║
╚══════════════════════════════════════╝`

// RunPreview runs p full screen and unmounts it on exit.
func RunPreview(p Preview) error {
	defer p.Close()
	_, err := tea.NewProgram(p, tea.WithAltScreen()).Run()
	return err
}
