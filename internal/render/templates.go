package render

import "html/template"

var listTemplate = template.Must(template.New("list").Parse(
	`{{- if .Empty -}}
<p class="empty-state" role="status">{{.Placeholder}}</p>
{{- else -}}
{{- range .Cards}}
<article class="facility-card" data-slug="{{.Slug}}">
  <span class="pill">{{.Badge}}</span>
  <h2><a href="{{.DetailURL}}">{{.Name}}</a></h2>
  <p class="address">{{.Address}}</p>
  <p class="capacity{{if not .CapacityKnown}} missing{{end}}"><span class="label">{{$.Labels.Capacity}}</span> {{.Capacity}}</p>
  <p class="division{{if not .DivisionKnown}} missing{{end}}"><span class="label">{{$.Labels.Division}}</span> {{.Division}}</p>
  <div class="actions">
    <a class="button" href="{{.DetailURL}}">{{$.Labels.Details}}</a>
    <a class="ghost" href="{{.MapURL}}" target="_blank" rel="noopener noreferrer">{{$.Labels.Map}}</a>
  </div>
</article>
{{- end}}
{{- end}}
`))

var unavailableTemplate = template.Must(template.New("unavailable").Parse(
	`<div class="unavailable" role="alert">
  <p>{{.Message}}</p>
  <pre class="diagnostic">{{.Detail}}</pre>
</div>
`))
