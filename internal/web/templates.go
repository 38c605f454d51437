package web

// Base layout shared by all pages. The styling follows the compact
// single-binary dashboard approach: everything inline, no asset files.

const tmplBase = `
{{define "base"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="UTF-8">
<meta name="viewport" content="width=device-width,initial-scale=1">
<title>Manufacturing Demo</title>
<style>
*{box-sizing:border-box;margin:0;padding:0}
body{font-family:-apple-system,'Segoe UI',sans-serif;background:#0d1117;color:#c9d1d9;font-size:14px;line-height:1.5}
a{color:#58a6ff;text-decoration:none}
a:hover{text-decoration:underline}
nav{background:#161b22;border-bottom:1px solid #30363d;padding:8px 16px;display:flex;gap:16px;align-items:center}
nav .brand{color:#f0f6fc;font-weight:700;font-size:15px;margin-right:8px}
nav a{color:#8b949e;padding:4px 8px;border-radius:4px}
nav a:hover{color:#c9d1d9;background:#21262d;text-decoration:none}
main{padding:16px;max-width:1100px;margin:0 auto}
h1{font-size:18px;font-weight:700;color:#f0f6fc;margin-bottom:12px}
h2{font-size:13px;font-weight:600;color:#8b949e;text-transform:uppercase;letter-spacing:.06em;margin:20px 0 8px}
.cards{display:flex;gap:12px;flex-wrap:wrap;margin-bottom:16px}
.card{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px 16px;min-width:150px}
.card .val{font-size:22px;font-weight:700;color:#f0f6fc}
.card .lbl{font-size:11px;color:#8b949e;margin-top:2px}
.chart{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:12px;margin-bottom:16px}
.chart svg{width:100%;height:auto}
.legend{display:flex;gap:12px;font-size:11px;color:#8b949e;margin-top:6px;flex-wrap:wrap}
.legend .dot{display:inline-block;width:8px;height:8px;border-radius:4px;margin-right:4px}
.ok{color:#56d364}
.warn{color:#f59e0b}
form.settings{background:#161b22;border:1px solid #30363d;border-radius:6px;padding:16px;max-width:560px}
form.settings label{display:block;font-size:12px;color:#8b949e;margin:10px 0 2px}
form.settings input[type=number]{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:4px 8px;width:120px}
form.settings .check{margin:6px 0;font-size:13px;color:#c9d1d9}
button{background:#1f6feb;border:none;color:#fff;padding:6px 14px;border-radius:4px;cursor:pointer;font-size:13px;margin-top:12px}
button:hover{background:#388bfd}
table{width:100%;border-collapse:collapse;font-size:13px}
th{text-align:left;padding:6px 10px;border-bottom:1px solid #30363d;color:#8b949e;font-weight:600;font-size:11px;text-transform:uppercase}
td{padding:5px 10px;border-bottom:1px solid #21262d}
.msg{background:#12261e;border:1px solid #238636;border-radius:6px;padding:8px 12px;margin-bottom:12px;color:#56d364;font-size:13px}
select{background:#0d1117;border:1px solid #30363d;color:#c9d1d9;border-radius:4px;padding:4px 8px}
</style>
</head>
<body>
<nav>
  <span class="brand">Manufacturing Demo</span>
  <a href="/">Dashboard</a>
  <a href="/machines">Machine Monitoring</a>
  <a href="/production">Production Analytics</a>
  <a href="/settings">System Settings</a>
</nav>
<main>
{{template "content" .}}
</main>
</body>
</html>{{end}}`

const tmplDashboard = `
{{define "content"}}
<h1>Manufacturing System Dashboard</h1>
<div class="cards">
  <div class="card"><div class="val">{{.Fleet.Active}}/{{.Fleet.Total}}</div><div class="lbl">Active Machines ({{printf "%.0f%%" .FleetPct}})</div></div>
  <div class="card"><div class="val">{{printf "%.1f%%" .MeanEfficiency}}</div><div class="lbl">Average Efficiency</div></div>
  <div class="card"><div class="val">{{printf "%.1f°C" .MeanTemperature}}</div><div class="lbl">Average Temperature</div></div>
  <div class="card"><div class="val">{{printf "%.1f%%" .QualityScore}}</div><div class="lbl">Quality Score</div></div>
</div>

<h2>Machine Efficiency Trends</h2>
<div class="chart">
  <svg viewBox="0 0 640 220" preserveAspectRatio="none">
    {{range .EfficiencyLines}}<polyline points="{{.Points}}" fill="none" stroke="{{.Color}}" stroke-width="1.5"/>
    {{end}}
  </svg>
  <div class="legend">{{range .EfficiencyLines}}<span><span class="dot" style="background:{{.Color}}"></span>{{.Label}}</span>{{end}}</div>
</div>

<h2>Production Metrics</h2>
<div class="chart">
  <svg viewBox="0 0 640 220" preserveAspectRatio="none">
    {{range .ProductionLines}}<polyline points="{{.Points}}" fill="none" stroke="{{.Color}}" stroke-width="1.5"/>
    {{end}}
  </svg>
  <div class="legend">{{range .ProductionLines}}<span><span class="dot" style="background:{{.Color}}"></span>{{.Label}}</span>{{end}}</div>
</div>
{{end}}`

const tmplMachines = `
{{define "content"}}
<h1>Machine Monitoring</h1>
<form method="get" action="/machines">
  <select name="machine" onchange="this.form.submit()">
    {{$sel := .Selected}}{{range .Machines}}<option value="{{.}}"{{if eq . $sel}} selected{{end}}>{{.}}</option>{{end}}
  </select>
  <noscript><button type="submit">View</button></noscript>
</form>

<div class="cards" style="margin-top:12px">
  <div class="card"><div class="val {{if .IsActive}}ok{{else}}warn{{end}}">{{.Latest.Status}}</div><div class="lbl">Status</div></div>
  <div class="card"><div class="val">{{printf "%.1f°C" .Latest.Temperature}}</div><div class="lbl">Temperature</div></div>
  <div class="card"><div class="val">{{printf "%.1f PSI" .Latest.Pressure}}</div><div class="lbl">Pressure</div></div>
</div>

<h2>Temperature Trend — {{.Selected}}</h2>
<div class="chart">
  <svg viewBox="0 0 640 220" preserveAspectRatio="none">
    <polyline points="{{.TemperatureLine.Points}}" fill="none" stroke="{{.TemperatureLine.Color}}" stroke-width="1.5"/>
  </svg>
</div>
{{end}}`

const tmplProduction = `
{{define "content"}}
<h1>Production Analytics</h1>
<div class="cards">
  <div class="card"><div class="val">{{printf "%.1f/hr" .Latest.ProductionRate}}</div><div class="lbl">Production Rate</div></div>
  <div class="card"><div class="val">{{printf "%.1f%%" .Latest.QualityScore}}</div><div class="lbl">Quality Score</div></div>
  <div class="card"><div class="val">{{printf "%.2f%%" .Latest.DefectRate}}</div><div class="lbl">Defect Rate</div></div>
</div>

<h2>Production Trends</h2>
<div class="chart">
  <svg viewBox="0 0 640 220" preserveAspectRatio="none">
    {{range .Lines}}<polyline points="{{.Points}}" fill="none" stroke="{{.Color}}" stroke-width="1.5"/>
    {{end}}
  </svg>
  <div class="legend">{{range .Lines}}<span><span class="dot" style="background:{{.Color}}"></span>{{.Label}}</span>{{end}}</div>
</div>
{{end}}`

const tmplSettings = `
{{define "content"}}
<h1>System Settings</h1>
{{if .Saved}}<div class="msg">Settings saved.</div>{{end}}
{{if .Report}}<div class="msg">System diagnostics completed successfully ({{.Report.RunID}}, {{len .Report.Steps}} checks).</div>{{end}}

<h2>Alert Configuration</h2>
<form class="settings" method="post" action="/settings">
  <label>Temperature Alert Threshold (°C)</label>
  <input type="number" step="0.1" name="temperatureC" value="{{.Settings.Alerts.TemperatureC}}">
  <label>Pressure Alert Threshold (PSI)</label>
  <input type="number" step="0.1" name="pressurePSI" value="{{.Settings.Alerts.PressurePSI}}">
  <label>Efficiency Alert Threshold (%)</label>
  <input type="number" step="0.1" name="efficiencyPct" value="{{.Settings.Alerts.EfficiencyPct}}">
  <label>Quality Score Alert Threshold (%)</label>
  <input type="number" step="0.1" name="qualityPct" value="{{.Settings.Alerts.QualityPct}}">

  <h2>System Maintenance</h2>
  <div class="check"><label><input type="checkbox" name="automaticUpdates"{{if .Settings.Maintenance.AutomaticUpdates}} checked{{end}}> Enable Automatic Updates</label></div>
  <div class="check"><label><input type="checkbox" name="performanceMonitoring"{{if .Settings.Maintenance.PerformanceMonitoring}} checked{{end}}> Enable Performance Monitoring</label></div>
  <div class="check"><label><input type="checkbox" name="errorReporting"{{if .Settings.Maintenance.ErrorReporting}} checked{{end}}> Enable Error Reporting</label></div>

  <button type="submit">Save Settings</button>
</form>

<form method="post" action="/settings/diagnostics">
  <button type="submit">Run System Diagnostics</button>
</form>
{{end}}`
