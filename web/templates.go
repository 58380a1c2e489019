package web

import (
	"html/template"
	"time"
)

func newTemplates() *template.Template {
	funcs := template.FuncMap{
		"formatDate": formatDate,
		"shortID":    shortID,
	}
	tmpl := template.New("root").Funcs(funcs)
	template.Must(tmpl.Parse(layoutTemplate))
	template.Must(tmpl.New("dashboard").Parse(dashboardTemplate))
	template.Must(tmpl.New("pipeline").Parse(pipelineTemplate))
	template.Must(tmpl.New("prep").Parse(prepTemplate))
	template.Must(tmpl.New("codex").Parse(codexTemplate))
	return tmpl
}

func formatDate(value time.Time) string {
	if value.IsZero() {
		return "-"
	}
	return value.Format("2006-01-02")
}

func shortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}

const layoutTemplate = `{{define "head"}}<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Mission: Employed</title>
  <style>
    :root { color-scheme: light; }
    body {
      margin: 0;
      font-family: "Charter", "Georgia", serif;
      color: #222c26;
      background: radial-gradient(circle at top left, #e9f2ec 0%, #fafcfa 55%, #eef4ef 100%);
    }
    header {
      padding: 16px 24px;
      border-bottom: 1px solid #c4d4c9;
      background: rgba(255, 255, 255, 0.72);
    }
    header h1 { margin: 0 0 8px 0; font-size: 20px; letter-spacing: 0.02em; }
    .tabs { display: flex; gap: 12px; }
    .tab {
      padding: 8px 14px;
      border-radius: 999px;
      text-decoration: none;
      color: #48584e;
      border: 1px solid transparent;
    }
    .tab.active {
      color: #121a15;
      border-color: #b6c9bc;
      background: #e6efe8;
      font-weight: 600;
    }
    main { padding: 24px; max-width: 960px; }
    table { border-collapse: collapse; width: 100%; }
    th, td { text-align: left; padding: 6px 10px; border-bottom: 1px solid #d5e0d8; vertical-align: top; }
    .error { color: #8a2d22; padding: 8px 0; }
    .grid { font-family: monospace; white-space: pre; line-height: 1.4; }
    .done { color: #1d7a3e; }
    .missed { color: #9aa79e; }
    .today { font-weight: 700; }
    .streak { font-size: 18px; font-weight: 700; margin: 0 0 16px 0; }
    form.inline { display: inline; }
    textarea { width: 100%; min-height: 90px; font: inherit; }
    input[type=text] { font: inherit; padding: 4px 6px; }
    button { font: inherit; padding: 4px 12px; cursor: pointer; }
    section { margin-bottom: 28px; }
  </style>
</head>
<body>
<header>
  <h1>Mission: Employed</h1>
  <nav class="tabs">
    <a class="tab{{if eq .ActiveTab "dashboard"}} active{{end}}" href="/">Dashboard</a>
    <a class="tab{{if eq .ActiveTab "pipeline"}} active{{end}}" href="/pipeline">Pipeline</a>
    <a class="tab{{if eq .ActiveTab "prep"}} active{{end}}" href="/prep">Prep Room</a>
    <a class="tab{{if eq .ActiveTab "codex"}} active{{end}}" href="/codex">The Codex</a>
    <a class="tab" href="/export">Export</a>
  </nav>
</header>
<main>
{{end}}
{{define "foot"}}</main>
</body>
</html>{{end}}`

const dashboardTemplate = `{{template "head" .}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<p class="streak">Streak: {{.Streak}}</p>
<section>
  <h2>Today's Protocol ({{.Today}})</h2>
  <table>
    <tr><th></th><th>Task</th><th>Duration</th><th></th></tr>
    {{range .Tasks}}
    <tr>
      <td>{{if .Done}}&#9745;{{else}}&#9744;{{end}}</td>
      <td>{{.Task.Label}}</td>
      <td>{{.Task.Duration}}</td>
      <td>
        <form class="inline" method="post" action="/toggle">
          <input type="hidden" name="task" value="{{.Task.ID}}">
          <input type="hidden" name="date" value="{{$.Today}}">
          <button type="submit">{{if .Done}}Undo{{else}}Done{{end}}</button>
        </form>
      </td>
    </tr>
    {{end}}
  </table>
</section>
<section>
  <h2>History</h2>
  <div class="grid">{{range .History}}{{if .Today}}<span class="today">{{end}}{{$all := true}}{{range .Done}}{{if not .}}{{$all = false}}{{end}}{{end}}{{if $all}}<span class="done">#</span>{{else}}<span class="missed">.</span>{{end}}{{if .Today}}</span>{{end}}{{end}}</div>
</section>
{{template "foot" .}}`

const pipelineTemplate = `{{template "head" .}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
<section>
  <h2>Applications</h2>
  <table>
    <tr><th>ID</th><th>Company</th><th>Role</th><th>Applied</th><th>Score</th><th>Status</th><th></th></tr>
    {{range .Applications}}
    <tr>
      <td>{{shortID .ID}}</td>
      <td>{{.Company}}</td>
      <td>{{.Role}}</td>
      <td>{{formatDate .DateApplied}}</td>
      <td>{{.CriteriaScore}}/{{len $.Criteria}}</td>
      <td>
        <form class="inline" method="post" action="/pipeline/status">
          <input type="hidden" name="id" value="{{.ID}}">
          <select name="status">
            {{$current := .Status}}
            {{range $.Statuses}}<option value="{{.}}"{{if eq . $current}} selected{{end}}>{{.}}</option>{{end}}
          </select>
          <button type="submit">Move</button>
        </form>
      </td>
      <td>
        <form class="inline" method="post" action="/pipeline/delete">
          <input type="hidden" name="id" value="{{.ID}}">
          <button type="submit">Terminate</button>
        </form>
      </td>
    </tr>
    {{end}}
  </table>
</section>
<section>
  <h2>New Application (target score {{.TargetScore}})</h2>
  <form method="post" action="/pipeline/add">
    <p><input type="text" name="company" placeholder="Company"> <input type="text" name="role" placeholder="Role"> <input type="text" name="url" placeholder="URL"></p>
    <p>
      {{range .Criteria}}
      <label><input type="checkbox" name="criteria" value="{{.ID}}"> {{.Label}}</label><br>
      {{end}}
    </p>
    <p><textarea name="notes" placeholder="Notes / job description"></textarea></p>
    <p><button type="submit">Add</button></p>
  </form>
</section>
{{template "foot" .}}`

const prepTemplate = `{{template "head" .}}
{{if .Error}}<p class="error">{{.Error}}</p>{{end}}
{{range .Themes}}
<section>
  <h2>{{.Theme.Label}}</h2>
  <form method="post" action="/prep/update">
    <input type="hidden" name="theme" value="{{.Theme.ID}}">
    <textarea name="bullets" placeholder="One bullet per line">{{.Joined}}</textarea>
    <p><button type="submit">Save</button></p>
  </form>
</section>
{{end}}
{{template "foot" .}}`

const codexTemplate = `{{template "head" .}}
<section>
  <h2>Don'ts</h2>
  <ul>{{range .Rules.Donts}}<li>{{.}}</li>{{end}}</ul>
</section>
<section>
  <h2>Dos</h2>
  <ul>{{range .Rules.Dos}}<li>{{.}}</li>{{end}}</ul>
</section>
{{template "foot" .}}`
