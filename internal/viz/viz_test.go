package viz

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/scene"
)

func TestCanvas_SetAndClear(t *testing.T) {
	c := NewCanvas(4, 2)
	c.SetColor(3, 5, "#ff0000")
	if !c.IsSet(3, 5) {
		t.Fatal("expected pixel to be set")
	}
	if c.Colors[1][1] != "#ff0000" {
		t.Errorf("expected cell color, got %q", c.Colors[1][1])
	}
	c.Unset(3, 5)
	if c.IsSet(3, 5) {
		t.Error("expected pixel to be cleared")
	}

	c.Set(-1, 0)
	c.Set(100, 100)
	c.DrawLine(0, 0, 7, 7, "")
	c.Clear()
	for _, row := range c.Grid {
		for _, r := range row {
			if r != blank {
				t.Fatalf("expected blank canvas, got %q", r)
			}
		}
	}
}

func TestCanvas_ImageSize(t *testing.T) {
	c := NewCanvas(3, 2)
	c.DrawLine(0, 0, 5, 7, "#00ff00")
	img := c.Image(gifCharW, gifCharH, gifBackground)
	if b := img.Bounds(); b.Dx() != 24 || b.Dy() != 32 {
		t.Errorf("unexpected bounds %v", b)
	}
	if img.ColorIndexAt(0, 0) != 2 {
		t.Errorf("expected lit dot in cell color, got index %d", img.ColorIndexAt(0, 0))
	}
}

func TestParseColor(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"#ff6b6b", "#ff6b6b"},
		{"#fff", "#ffffff"},
		{"hsl(0, 100%, 50%)", "#ff0000"},
		{"hsl(120, 100%, 50%)", "#00ff00"},
		{geometry.HeightColor(0), "#269dd9"},
	}
	for _, tt := range tests {
		c, err := ParseColor(tt.in)
		if err != nil {
			t.Errorf("%s: %v", tt.in, err)
			continue
		}
		if got := c.Hex(); got != tt.want {
			t.Errorf("%s: got %s, want %s", tt.in, got, tt.want)
		}
	}

	if _, err := ParseColor("teal"); err == nil {
		t.Error("expected error for named color")
	}
	if got := HexColor("nope", "#123456"); got != "#123456" {
		t.Errorf("expected fallback, got %s", got)
	}
}

func TestCamera_ProjectCenter(t *testing.T) {
	cam := &Camera{Zoom: 1, Distance: 12, Near: 0.1, Extent: 4}
	x, y, _, ok := cam.Project(geometry.Vec3{}, 100, 80)
	if !ok || x != 50 || y != 40 {
		t.Errorf("origin projected to (%d, %d, %v)", x, y, ok)
	}

	_, y2, _, _ := cam.Project(geometry.Vec3{0, 1, 0}, 100, 80)
	if y2 >= y {
		t.Errorf("up should project above center: %d >= %d", y2, y)
	}

	if _, _, _, ok := cam.Project(geometry.Vec3{0, 0, 20}, 100, 80); ok {
		t.Error("point behind the camera should be invisible")
	}
}

func buildScene(t *testing.T, k scene.Kind) *scene.Scene {
	t.Helper()
	s, err := scene.NewAssembler(nil).Build(scene.Descriptor{Kind: k, ScaleFactor: 1}, scene.DefaultParams().WithSeed(5))
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestFromScene_AppliesRotationTable(t *testing.T) {
	s := buildScene(t, scene.Atom)

	still := FromScene(s, nil)
	if len(still.Edges) == 0 {
		t.Fatal("expected edges")
	}

	rotated := FromScene(s, map[scene.GroupID]geometry.Vec3{scene.ElectronOrbit1: {0, 0, math.Pi / 2}})
	if len(rotated.Edges) != len(still.Edges) {
		t.Fatalf("edge count changed: %d vs %d", len(rotated.Edges), len(still.Edges))
	}
	moved := 0
	for i := range still.Edges {
		if still.Edges[i].Start.Sub(rotated.Edges[i].Start).Len() > 1e-9 {
			moved++
		}
	}
	if moved == 0 {
		t.Error("expected rotation to move orbit edges")
	}
}

func TestFromScene_RootScale(t *testing.T) {
	one := buildScene(t, scene.DNA)
	two, err := scene.NewAssembler(nil).Build(scene.Descriptor{Kind: scene.DNA, ScaleFactor: 2}, scene.DefaultParams())
	if err != nil {
		t.Fatal(err)
	}
	_, hi1 := FromScene(one, nil).Bounds()
	_, hi2 := FromScene(two, nil).Bounds()
	if math.Abs(hi2.Y()-2*hi1.Y()) > 1e-9 {
		t.Errorf("expected doubled extent, got %v vs %v", hi2.Y(), hi1.Y())
	}
}

func TestRender3D_DrawsSomething(t *testing.T) {
	c := NewCanvas(40, 20)
	Render3D(c, FromScene(buildScene(t, scene.MathSurface), nil), NewCamera())
	if !strings.ContainsFunc(c.String(), func(r rune) bool { return r > blank && r <= 0x28ff }) {
		t.Error("expected lit cells")
	}
	if lines := strings.Count(c.Render(), "\n"); lines != 20 {
		t.Errorf("expected 20 rendered rows, got %d", lines)
	}
}

func newPreview(t *testing.T, k scene.Kind) Preview {
	t.Helper()
	p, err := NewPreview(scene.NewAssembler(nil), scene.Descriptor{Kind: k, ScaleFactor: 1},
		scene.DefaultParams(), anim.DefaultBindings(k), PreviewOptions{FPS: 10, Seed: 9, GIFPath: filepath.Join(t.TempDir(), "out.gif")})
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func key(s string) tea.KeyMsg {
	if s == " " {
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune(" ")}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPreview_ClockAndPause(t *testing.T) {
	p := newPreview(t, scene.Atom)
	defer p.Close()

	for i := 0; i < 5; i++ {
		p.Step()
	}
	if math.Abs(p.Elapsed()-0.5) > 1e-9 {
		t.Errorf("expected 0.5s elapsed, got %v", p.Elapsed())
	}
	r, _ := p.Session().Driver.Rotation(scene.ElectronOrbit1)
	if math.Abs(r.Z()-0.5) > 1e-9 {
		t.Errorf("expected orbit at 0.5 rad, got %v", r.Z())
	}

	next, _ := p.Update(key(" "))
	p = next.(Preview)
	p.Step()
	if math.Abs(p.Elapsed()-0.5) > 1e-9 {
		t.Errorf("clock advanced while paused: %v", p.Elapsed())
	}
	if p.View() == "" {
		t.Error("expected a view")
	}
}

func TestPreview_RegenerateKeepsBindings(t *testing.T) {
	p := newPreview(t, scene.Cell)
	defer p.Close()

	p.Step()
	before, _ := p.Session().Scene().Lookup(scene.NucleusGroup)
	next, _ := p.Update(key("r"))
	p = next.(Preview)
	after, _ := p.Session().Scene().Lookup(scene.NucleusGroup)
	if before != after {
		t.Error("regenerate replaced the nucleus group")
	}
	p.Step()
	if _, ok := p.Session().Driver.Rotation(scene.NucleusGroup); !ok {
		t.Error("binding lost after regenerate")
	}
}

func TestPreview_QuitUnmounts(t *testing.T) {
	p := newPreview(t, scene.DNA)
	_, cmd := p.Update(key("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if p.Session().Mounted() {
		t.Error("expected session to be unmounted")
	}
	ticks := p.Session().Driver.Ticks()
	p.Step()
	if p.Session().Driver.Ticks() != ticks {
		t.Error("driver ticked after unmount")
	}
}

func TestPreview_RecordGIF(t *testing.T) {
	p := newPreview(t, scene.DNA)
	defer p.Close()

	next, _ := p.Update(key("g"))
	p = next.(Preview)
	for i := 0; i < 3; i++ {
		next, _ = p.Update(frameMsg{})
		p = next.(Preview)
	}
	next, _ = p.Update(key("g"))
	p = next.(Preview)

	if _, err := os.Stat(p.gifPath); err != nil {
		t.Errorf("expected gif on disk: %v", err)
	}
}

func TestApp_OpenAndBack(t *testing.T) {
	asm := scene.NewAssembler(nil)
	app := NewApp(asm.Kinds(), func(k scene.Kind) (Preview, error) {
		return NewPreview(asm, scene.Descriptor{Kind: k, ScaleFactor: 1}, scene.DefaultParams(), anim.DefaultBindings(k), PreviewOptions{})
	})

	next, _ := app.Update(key("j"))
	app = next.(App)
	if app.Selected() != asm.Kinds()[1] {
		t.Errorf("expected cursor on %s, got %s", asm.Kinds()[1], app.Selected())
	}

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEnter})
	app = next.(App)
	if !app.InPreview() {
		t.Fatal("expected preview after enter")
	}
	sess := app.preview.Session()

	next, _ = app.Update(tea.KeyMsg{Type: tea.KeyEsc})
	app = next.(App)
	if app.InPreview() {
		t.Error("expected menu after esc")
	}
	if sess.Mounted() {
		t.Error("expected preview session to be unmounted")
	}
	if !strings.Contains(app.View(), "navigate") {
		t.Error("expected menu hints")
	}
}
