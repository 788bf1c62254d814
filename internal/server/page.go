package server

import (
	"html/template"
	"net/http"

	"github.com/slok/asyncviz/internal/printer"
)

type pageLegendEntry struct {
	Name        string
	Hex         string
	Description string
}

type pageData struct {
	Width   int
	MaxStep int
	Step    int
	Counter string
	Caption string
	Legend  []pageLegendEntry
}

var pageTemplate = template.Must(template.New("index").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <title>Python Asyncio Visualization</title>
  <style>
    body { background: #111827; color: #ffffff; font-family: monospace; display: flex; flex-direction: column; align-items: center; padding: 2rem; }
    #controls { width: {{ .Width }}px; display: flex; flex-direction: column; align-items: center; gap: 1rem; margin-top: 2rem; }
    #controls div { width: 100%; display: flex; align-items: center; gap: 1rem; }
    input[type=range] { width: 100%; }
    #legend { margin-top: 2rem; background: #1f2937; padding: 1.5rem; border-radius: 0.5rem; max-width: 28rem; }
    #legend li { list-style: none; display: flex; align-items: center; margin: 0.5rem 0; color: #d1d5db; }
    .dot { width: 0.75rem; height: 0.75rem; border-radius: 9999px; margin-right: 0.5rem; }
  </style>
</head>
<body>
  <h1>Python Asyncio Visualization</h1>
  <div id="frame"></div>
  <div id="controls">
    <div>
      <input id="step" type="range" min="0" max="{{ .MaxStep }}" step="1" value="{{ .Step }}">
      <span id="counter">{{ .Counter }}</span>
    </div>
    <div id="caption">{{ .Caption }}</div>
  </div>
  <div id="legend">
    <h2>How it works:</h2>
    <ul>
      {{- range .Legend }}
      <li><span class="dot" style="background: {{ .Hex }}"></span><span>{{ .Name }}: {{ .Description }}</span></li>
      {{- end }}
    </ul>
  </div>
  <script>
    const frameEl = document.getElementById("frame");
    const stepEl = document.getElementById("step");
    const counterEl = document.getElementById("counter");
    const captionEl = document.getElementById("caption");
    let loading = false;

    async function refreshFrame() {
      if (loading) { return; }
      loading = true;
      try {
        const res = await fetch("/frame.svg");
        frameEl.innerHTML = await res.text();
      } finally {
        loading = false;
      }
    }

    stepEl.addEventListener("input", () => {
      fetch("/api/v1/step", {
        method: "PUT",
        headers: { "Content-Type": "application/json" },
        body: JSON.stringify({ step: parseInt(stepEl.value, 10) }),
      });
    });

    const events = new EventSource("/api/v1/events");
    events.addEventListener("frame", (e) => {
      const frame = JSON.parse(e.data);
      if (document.activeElement !== stepEl) { stepEl.value = frame.step; }
      counterEl.textContent = frame.step + "/" + (frame.total_steps - 1);
      captionEl.textContent = frame.caption;
      refreshFrame();
    });

    refreshFrame();
  </script>
</body>
</html>
`))

// handleIndex renders the visualisation page.
// GET /
func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	frame := s.session.Frame()

	data := pageData{
		Width:   frame.Scene.Width,
		MaxStep: frame.TotalSteps - 1,
		Step:    frame.Step,
		Counter: printer.StepCounter(frame),
		Caption: frame.Caption,
	}
	for _, e := range printer.Legend() {
		data.Legend = append(data.Legend, pageLegendEntry{
			Name:        e.Color.Title(),
			Hex:         e.Color.Hex,
			Description: e.Description,
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.logger.Errorf("could not render page: %s", err)
	}
}
