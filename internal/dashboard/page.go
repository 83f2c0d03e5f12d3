package dashboard

import (
	"fmt"
	"html/template"
	"io"
)

var pageTemplate = template.Must(template.New("page").Parse(pageHTML))

// WritePage renders the dashboard page for the layout.
func WritePage(w io.Writer, l Layout) error {
	if err := pageTemplate.Execute(w, l); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	return nil
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.Title}}</title>
<script src="https://cdn.plot.ly/plotly-2.35.2.min.js" charset="utf-8"></script>
<style>
body { font-family: -apple-system, BlinkMacSystemFont, "Segoe UI", Roboto, sans-serif; margin: 0 auto; max-width: 1200px; padding: 1rem; color: #1a1a2e; }
h1 { text-align: center; }
.welcome { padding: 10px; }
.block { margin: 1rem 0; }
.inline label { display: inline-block; margin-right: 1rem; }
select, input[type=number] { font-size: 1rem; padding: .25rem; }
select { width: 100%; }
input[type=range] { width: 100%; }
.marks { display: flex; justify-content: space-between; font-size: .75rem; color: #6c757d; }
#{{.GraphID}} { min-height: 450px; }
</style>
</head>
<body>
<h1>{{.Title}}</h1>
<div class="welcome">
  <h2>{{.Welcome}}</h2>
  <p>{{.Intro}}</p>
</div>
<br>
<h3>{{.Prompt}}</h3>
<select id="dropdown-comp">
  <option value="" selected>{{.Placeholder}}</option>
  {{- range .Options}}
  <option value="{{.Value}}">{{.Label}}</option>
  {{- end}}
</select>
<br><br>
<button id="{{.DownloadID}}">{{.DownloadLbl}}</button>
{{range .Blocks}}
<div id="{{.ID}}" class="block" style="display: none">
  <p><strong>{{.Prompt}}</strong></p>
  {{- with .Number}}
  <input id="{{.ID}}" type="number" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}">
  {{- end}}
  {{- with .Checklist}}
  <div id="{{.ID}}" class="checklist{{if .Inline}} inline{{end}}">
    {{- range .Options}}
    <label><input type="checkbox" value="{{.Value}}"{{if .Selected}} checked{{end}}> {{.Label}}</label>
    {{- end}}
  </div>
  {{- end}}
  {{- with .Slider}}
  <input id="{{.ID}}" type="range" min="{{.Min}}" max="{{.Max}}" step="{{.Step}}" value="{{.Value}}">
  <div class="marks">{{range .Marks}}<span>{{.}}</span>{{end}}</div>
  {{- end}}
</div>
<br>
{{- end}}
<div id="{{.GraphID}}"></div>
<script>
(function () {
  const byId = (id) => document.getElementById(id);
  const checked = (id) => Array.from(byId(id).querySelectorAll("input:checked")).map((el) => el.value);
  const number = (id) => { const v = byId(id).value; return v === "" ? null : Number(v); };

  async function post(path, body) {
    const res = await fetch(path, {
      method: "POST",
      headers: { "Content-Type": "application/json" },
      body: JSON.stringify(body),
    });
    if (!res.ok) { throw new Error(path + ": " + res.status); }
    return res.json();
  }

  async function updateControls() {
    const styles = await post("/callbacks/controls", { plot_choice: byId("dropdown-comp").value });
    for (const [id, style] of Object.entries(styles)) {
      byId(id).style.display = style.display;
    }
  }

  async function updateFigure() {
    const fig = await post("/callbacks/figure", {
      plot_choice: byId("dropdown-comp").value,
      bins: number("input-comp"),
      color_mag: checked("color-comp"),
      selected_nets: checked("box-comp"),
      top_n: number("slider-comp"),
    });
    Plotly.react("{{.GraphID}}", fig.data || [], fig.layout || {});
  }

  const report = (err) => console.error(err);

  byId("dropdown-comp").addEventListener("change", () => {
    updateControls().catch(report);
    updateFigure().catch(report);
  });
  for (const id of ["input-comp", "color-comp", "box-comp", "slider-comp"]) {
    byId(id).addEventListener("change", () => updateFigure().catch(report));
  }

  let nClicks = 0;
  byId("{{.DownloadID}}").addEventListener("click", () => {
    nClicks += 1;
    window.location.href = "/download?n_clicks=" + nClicks;
  });

  updateFigure().catch(report);
})();
</script>
</body>
</html>
`
