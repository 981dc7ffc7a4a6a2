package site

// The pages share a header/footer pair. Mermaid sources are embedded
// as element text and rendered client-side; the reload script is a
// silent no-op when no websocket endpoint is serving.

const layoutTemplate = `
{{define "head"}}<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<meta name="viewport" content="width=device-width, initial-scale=1">
<title>{{.ProjectName}} &middot; {{.Title}}</title>
<style>
  body { font-family: -apple-system, "Segoe UI", Roboto, sans-serif; margin: 0; color: #1f2430; }
  nav { display: flex; gap: 1.25rem; padding: 0.75rem 1.5rem; background: #1f2430; }
  nav a { color: #c8ccd6; text-decoration: none; font-size: 0.9rem; }
  nav a.active, nav a:hover { color: #fff; }
  main { max-width: 1100px; margin: 0 auto; padding: 1.5rem; }
  h1 { font-size: 1.4rem; }
  pre.mermaid { background: #f6f7f9; border-radius: 6px; padding: 1rem; overflow-x: auto; }
  .cards { display: flex; gap: 1rem; }
  .card { flex: 1; background: #f6f7f9; border-radius: 6px; padding: 1rem; text-align: center; }
  .card strong { display: block; font-size: 1.6rem; }
  footer { color: #8a8f9c; font-size: 0.8rem; padding: 1rem 1.5rem; }
  details { margin-bottom: 1rem; }
  summary { cursor: pointer; font-weight: 600; }
</style>
</head>
<body>
<nav>
  <a href="index.html"{{if eq .Active "index"}} class="active"{{end}}>Overview</a>
  <a href="erd.html"{{if eq .Active "erd"}} class="active"{{end}}>ERD</a>
  <a href="classes.html"{{if eq .Active "classes"}} class="active"{{end}}>Classes</a>
  <a href="sequences.html"{{if eq .Active "sequences"}} class="active"{{end}}>Sequences</a>
  <a href="api.html"{{if eq .Active "api"}} class="active"{{end}}>API</a>
</nav>
<main>
<h1>{{.Title}}</h1>
{{end}}

{{define "foot"}}</main>
<footer>{{.ProjectName}}{{with .FrameworkVersion}} &middot; laravel/framework {{.}}{{end}} &middot; generated {{.GeneratedAt}}</footer>
<script>
  (function () {
    try {
      var ws = new WebSocket("ws://" + location.host + "/ws");
      ws.onmessage = function () { location.reload(); };
      ws.onerror = function () { ws.close(); };
    } catch (e) { /* no live-reload endpoint */ }
  })();
</script>
</body>
</html>
{{end}}

{{define "mermaidScript"}}
<script type="module">
  import mermaid from "https://cdn.jsdelivr.net/npm/mermaid@10/dist/mermaid.esm.min.mjs";
  mermaid.initialize({ startOnLoad: true, theme: "neutral" });
</script>
{{end}}
`

const indexTemplate = `
{{define "index"}}{{template "head" .}}
<div class="cards">
  <div class="card"><strong>{{.Models}}</strong> models</div>
  <div class="card"><strong>{{.Controllers}}</strong> controllers</div>
  <div class="card"><strong>{{.Endpoints}}</strong> endpoints</div>
</div>
<p>Documentation generated from a static snapshot of <b>{{.ProjectName}}</b>.
Pick an artifact family above.</p>
{{template "foot" .}}{{end}}
`

const erdTemplate = `
{{define "erd"}}{{template "head" .}}
<pre class="mermaid">{{.ERD}}</pre>
{{template "mermaidScript" .}}
{{template "foot" .}}{{end}}
`

const classesTemplate = `
{{define "classes"}}{{template "head" .}}
<details open>
  <summary>Models</summary>
  <pre class="mermaid">{{.ClassModels}}</pre>
</details>
<details>
  <summary>Models, controllers, and services</summary>
  <pre class="mermaid">{{.ClassFull}}</pre>
</details>
{{template "mermaidScript" .}}
{{template "foot" .}}{{end}}
`

const sequencesTemplate = `
{{define "sequences"}}{{template "head" .}}
{{range .Sequences}}
<details>
  <summary>{{.DisplayName}} <em>({{.Classification}})</em></summary>
  <p>{{.Description}}</p>
  <pre class="mermaid">{{.Diagram}}</pre>
</details>
{{else}}
<p>No controller actions were found.</p>
{{end}}
{{template "mermaidScript" .}}
{{template "foot" .}}{{end}}
`

const apiTemplate = `
{{define "api"}}{{template "head" .}}
<div id="api-doc"></div>
<pre id="api-source" hidden>{{.APIMarkdown}}</pre>
<script src="https://cdn.jsdelivr.net/npm/marked/marked.min.js"></script>
<script>
  var source = document.getElementById("api-source").textContent;
  document.getElementById("api-doc").innerHTML = marked.parse(source);
</script>
{{template "foot" .}}{{end}}
`
