package web

import (
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/sweeney/oled-buttons/internal/status"
)

var indexTmpl = template.Must(template.New("index").Funcs(template.FuncMap{
	"uptime": func(d time.Duration) string {
		d = d.Truncate(time.Second)
		days := int(d.Hours()) / 24
		h := int(d.Hours()) % 24
		m := int(d.Minutes()) % 60
		s := int(d.Seconds()) % 60
		if days > 0 {
			return fmt.Sprintf("%dd %dh %dm %ds", days, h, m, s)
		}
		if h > 0 {
			return fmt.Sprintf("%dh %dm %ds", h, m, s)
		}
		if m > 0 {
			return fmt.Sprintf("%dm %ds", m, s)
		}
		return fmt.Sprintf("%ds", s)
	},
	// channels are 0-based, people count buttons from 1
	"button": func(ch int) int { return ch + 1 },
	"screenOrNone": func(s string) string {
		if s == "" {
			return "NONE"
		}
		return s
	},
}).Parse(indexHTML))

const indexHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>OLED Buttons</title>
<style>
body { font-family: monospace; max-width: 600px; margin: 2em auto; padding: 0 1em; }
h1 { font-size: 1.4em; }
table { border-collapse: collapse; width: 100%; margin: 1em 0; }
td, th { text-align: left; padding: 4px 8px; border-bottom: 1px solid #ddd; }
th { width: 40%; }
.pressed { color: green; font-weight: bold; }
.released { color: #888; }
.connected { color: green; }
.disconnected { color: red; }
</style>
</head>
<body>
<h1>OLED Buttons</h1>

<h2>Display</h2>
<table>
<tr><th>Screen</th><td id="screen">{{screenOrNone .Screen}}</td></tr>
<tr><th>Last press</th><td>{{if ge .LastPressed 0}}button {{button .LastPressed}} at {{.LastPressAt.UTC.Format "2006-01-02T15:04:05Z"}}{{else}}none{{end}}</td></tr>
<tr><th>Driver</th><td>{{.Config.Display}}</td></tr>
</table>

<h2>Buttons</h2>
<table>
<tr><th>Button</th><td>Pin / Screen / State / Presses</td></tr>
{{range .Buttons}}<tr><th>{{button .Channel}}</th><td>GPIO{{.Pin}} / {{.Screen}} / <span class="{{if .Pressed}}pressed{{else}}released{{end}}">{{if .Pressed}}pressed{{else}}released{{end}}</span> / {{.Presses}}</td></tr>
{{end}}</table>

<h2>Connectivity</h2>
<table>
<tr><th>MQTT</th><td class="{{if .MQTTConnected}}connected{{else}}disconnected{{end}}">{{if .MQTTConnected}}connected{{else}}disconnected{{end}}</td></tr>
<tr><th>Broker</th><td>{{if .Config.Broker}}{{.Config.Broker}}{{else}}disabled{{end}}</td></tr>
</table>

<h2>System</h2>
<table>
<tr><th>Uptime</th><td>{{uptime .Uptime}}</td></tr>
<tr><th>Started</th><td>{{.StartTime.UTC.Format "2006-01-02T15:04:05Z"}}</td></tr>
<tr><th>Poll</th><td>{{.Config.PollMs}}ms</td></tr>
<tr><th>Debounce</th><td>{{.Config.DebounceMs}}ms</td></tr>
<tr><th>Heartbeat</th><td>{{if eq .Config.HeartbeatMs 0}}disabled{{else}}{{.Config.HeartbeatMs}}ms{{end}}</td></tr>
<tr><th>GPIO</th><td>{{.Config.GPIO}}</td></tr>
<tr><th>HTTP</th><td>{{.Config.HTTPAddr}}</td></tr>
</table>

<p><a href="/index.json">JSON</a></p>
</body>
</html>
`

func renderHTML(w io.Writer, snap status.Snapshot) error {
	// Snapshot has Uptime() and Buttons() methods but the template needs fields.
	data := struct {
		status.Snapshot
		Uptime  time.Duration
		Buttons []status.ButtonJSON
	}{
		Snapshot: snap,
		Uptime:   snap.Uptime(),
		Buttons:  snap.Buttons(),
	}
	return indexTmpl.Execute(w, data)
}
