package export

import (
	"fmt"
	"io"
	"strings"

	"github.com/san-kum/eduverse/internal/anim"
	"github.com/san-kum/eduverse/internal/geometry"
	"github.com/san-kum/eduverse/internal/scene"
	"github.com/san-kum/eduverse/internal/viz"
)

const background = "#0a0a0a"

// SceneToSVG projects the scene's wireframe and writes one <line> per
// visible edge, drawn far to near and stroked with the placement color.
func SceneToSVG(w io.Writer, sc *scene.Scene, rotations map[scene.GroupID]geometry.Vec3, cam *viz.Camera, width, height int) error {
	if cam == nil {
		cam = viz.NewCamera()
	}
	edges := viz.ProjectEdges(viz.FromScene(sc, rotations), cam, width, height)

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<g stroke-width="1" stroke-linecap="round">
`, width, height, width, height, background)

	hex := map[string]string{}
	for _, e := range edges {
		col, ok := hex[e.Color]
		if !ok {
			col = viz.HexColor(e.Color, "#ffffff")
			hex[e.Color] = col
		}
		fmt.Fprintf(&sb, `<line x1="%d" y1="%d" x2="%d" y2="%d" stroke="%s"/>
`, e.X1, e.Y1, e.X2, e.Y2, col)
	}
	sb.WriteString("</g>\n</svg>\n")

	_, err := io.WriteString(w, sb.String())
	return err
}

// CanvasToSVG converts a braille canvas to SVG dots in their cell colors.
func CanvasToSVG(canvas *viz.Canvas, scale float64) string {
	if canvas == nil {
		return ""
	}

	width := float64(canvas.Width) * scale * 2
	height := float64(canvas.Height) * scale * 4

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff00">
`, width, height, width, height, background)

	dotRadius := scale * 0.4
	for y := 0; y < canvas.Height*4; y++ {
		for x := 0; x < canvas.Width*2; x++ {
			if !canvas.IsSet(x, y) {
				continue
			}
			fill := ""
			if col := canvas.Colors[y/4][x/2]; col != "" {
				fill = fmt.Sprintf(` fill="%s"`, col)
			}
			fmt.Fprintf(&sb, `<circle cx="%.1f" cy="%.1f" r="%.1f"%s/>
`, float64(x)*scale+scale/2, float64(y)*scale+scale/2, dotRadius, fill)
		}
	}

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

var tracePalette = []string{"#4ecdc4", "#ff6b6b", "#ffe66d", "#45b7d1", "#96ceb4"}

// TraceToSVG plots every trace column against time as one path each.
func TraceToSVG(tr anim.Trace, width, height int) string {
	if len(tr.Times) < 2 || len(tr.Columns) == 0 {
		return ""
	}

	minX, maxX := tr.Times[0], tr.Times[len(tr.Times)-1]
	minY, maxY := tr.Rows[0][0], tr.Rows[0][0]
	for _, row := range tr.Rows {
		for _, v := range row {
			minY, maxY = min(minY, v), max(maxY, v)
		}
	}

	rangeX, rangeY := maxX-minX, maxY-minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	minY -= rangeY * 0.1
	rangeY *= 1.2

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
`, width, height, width, height, background)

	for c, name := range tr.Columns {
		fmt.Fprintf(&sb, `<path data-column="%s" fill="none" stroke="%s" stroke-width="1.5" d="M`, name, tracePalette[c%len(tracePalette)])
		for i, t := range tr.Times {
			x := (t - minX) / rangeX * float64(width)
			y := float64(height) - (tr.Rows[i][c]-minY)/rangeY*float64(height)
			if i == 0 {
				fmt.Fprintf(&sb, "%.1f,%.1f", x, y)
			} else {
				fmt.Fprintf(&sb, " L%.1f,%.1f", x, y)
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
