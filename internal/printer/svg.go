package printer

import (
	"fmt"
	"html"
	"io"
	"text/template"

	"github.com/slok/asyncviz/internal/model"
)

const (
	taskRadius   = 45
	markerRadius = 4
)

var svgTemplate = template.Must(template.New("frame").Funcs(template.FuncMap{
	"num":    func(f float64) string { return fmt.Sprintf("%.2f", f) },
	"escape": html.EscapeString,
}).Parse(`<svg xmlns="http://www.w3.org/2000/svg" width="{{ .Width }}" height="{{ .Height }}" viewBox="0 0 {{ .Width }} {{ .Height }}">
  <rect width="100%" height="100%" fill="#111827"/>
  <circle class="event-loop" cx="{{ num .Center.X }}" cy="{{ num .Center.Y }}" r="{{ num .Radius }}" fill="none" stroke="#4B5563" stroke-width="2" stroke-dasharray="4 4"/>
  <line x1="{{ num .LabelArrowStart }}" y1="{{ num .Center.Y }}" x2="{{ num .LabelArrowEnd }}" y2="{{ num .Center.Y }}" stroke="#4B5563" stroke-width="2" stroke-dasharray="4 4"/>
  <text x="{{ num .LabelX }}" y="{{ num .LabelY }}" fill="#ffffff" font-family="monospace" font-size="14">Event Loop</text>
{{- range .Markers }}
  <circle class="await-marker" cx="{{ num .X }}" cy="{{ num .Y }}" r="{{ $.MarkerRadius }}" fill="{{ $.MarkerColor }}" opacity="0.5"/>
{{- end }}
{{- range .Tasks }}
  <g class="task status-{{ .Status }}" id="task-{{ .ID }}">
    <circle cx="{{ num .X }}" cy="{{ num .Y }}" r="{{ $.TaskRadius }}" fill="{{ .Color }}" opacity="0.2"/>
    <text x="{{ num .X }}" y="{{ num .Y }}" text-anchor="middle" fill="#ffffff" font-family="monospace" font-size="14"><tspan x="{{ num .X }}" dy="-5">{{ escape .Name }}</tspan>{{ if .Awaiting }}<tspan x="{{ num .X }}" dy="20">(await ...)</tspan>{{ end }}</text>
  </g>
{{- end }}
{{- if .Caption }}
  <text class="caption" x="{{ num .Center.X }}" y="{{ .CaptionY }}" text-anchor="middle" fill="#ffffff" font-family="monospace" font-size="16">{{ escape .Caption }} ({{ .Counter }})</text>
{{- end }}
</svg>
`))

type svgTask struct {
	ID       int
	Name     string
	Status   model.TaskStatus
	Color    string
	X, Y     float64
	Awaiting bool
}

type svgData struct {
	Width, Height   int
	Center          model.Point
	Radius          float64
	LabelArrowStart float64
	LabelArrowEnd   float64
	LabelX, LabelY  float64
	Markers         []model.Point
	MarkerRadius    int
	MarkerColor     string
	Tasks           []svgTask
	TaskRadius      int
	Caption         string
	Counter         string
	CaptionY        int
}

// SVGPrinter prints frames as SVG images.
type SVGPrinter struct {
	writer  io.Writer
	caption bool
}

// NewSVGPrinter creates a new SVG printer. When caption is true the step caption
// is drawn at the bottom of the image.
func NewSVGPrinter(w io.Writer, caption bool) *SVGPrinter {
	return &SVGPrinter{writer: w, caption: caption}
}

// PrintFrame draws the frame: the event loop, the await points and the tasks.
func (s *SVGPrinter) PrintFrame(frame model.Frame) error {
	scene := frame.Scene
	data := svgData{
		Width:           scene.Width,
		Height:          scene.Height,
		Center:          scene.Center,
		Radius:          scene.Radius,
		LabelArrowStart: scene.Center.X + scene.Radius + 20,
		LabelArrowEnd:   scene.Center.X + scene.Radius + 80,
		LabelX:          scene.Center.X + scene.Radius + 90,
		LabelY:          scene.Center.Y + 5,
		Markers:         frame.AwaitMarkers,
		MarkerRadius:    markerRadius,
		MarkerColor:     colorPurple.Hex,
		TaskRadius:      taskRadius,
		Tasks:           make([]svgTask, 0, len(frame.Tasks)),
	}

	for _, t := range frame.Tasks {
		data.Tasks = append(data.Tasks, svgTask{
			ID:       t.ID,
			Name:     t.Name,
			Status:   t.Status,
			Color:    StatusColor(t.Status).Hex,
			X:        t.Position.X,
			Y:        t.Position.Y,
			Awaiting: t.Status == model.TaskStatusAwaiting,
		})
	}

	if s.caption {
		data.Caption = frame.Caption
		data.Counter = StepCounter(frame)
		data.CaptionY = scene.Height - 30
	}

	if err := svgTemplate.Execute(s.writer, data); err != nil {
		return fmt.Errorf("could not render svg: %w", err)
	}

	return nil
}

// PrintMessage prints a message as a single line SVG document.
func (s *SVGPrinter) PrintMessage(msg string) error {
	_, err := fmt.Fprintf(s.writer, `<svg xmlns="http://www.w3.org/2000/svg" width="700" height="40" viewBox="0 0 700 40">
  <text x="10" y="25" font-family="monospace" font-size="14" fill="#374151">%s</text>
</svg>
`, html.EscapeString(msg))
	return err
}
