package render

import (
	"html/template"

	"travel/internal/models"
	"travel/internal/session"
)

// PageName is the template name the HTTP server renders.
const PageName = "index.html"

// Page is the data behind the HTML page.
type Page struct {
	Query string
	State session.State
}

// Template helpers. requested tells "places not asked for" (nil) from "none found".
var funcs = template.FuncMap{
	"weatherLine":  WeatherLine,
	"placesIntro":  PlacesIntro,
	"errorTitle":   func() string { return ErrorTitle },
	"noPlacesNote": func() string { return NoPlacesNotice },
	"requested":    func(p []models.Place) bool { return p != nil },
}

// PageTemplate parses the page. It panics on a template error, which can
// only come from the constant below.
func PageTemplate() *template.Template {
	return template.Must(template.New(PageName).Funcs(funcs).Parse(pageHTML))
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>Travel Explorer</title>
</head>
<body>
<main>
<h1>Where do you want to go?</h1>
<form method="post" action="/">
<input type="text" name="query" value="{{.Query}}" placeholder="e.g. I'm going to Paris, what's the weather?" required>
<button type="submit"{{if .State.Loading}} disabled{{end}}>Start Adventure</button>
</form>
{{with .State.Error}}
<section class="error-card">
<h3 class="error-title">{{errorTitle}}</h3>
<p class="error-message">{{.}}</p>
</section>
{{end}}
{{with .State.Result}}
<section class="results">
<h2 class="result-title">{{.Place}}</h2>
{{if .DisplayName}}<p class="display-name">{{.DisplayName}}</p>{{end}}
{{if .Weather}}
<div class="weather-card">
<h3>Weather Forecast</h3>
<p>{{weatherLine .Place .Weather}}</p>
</div>
{{end}}
{{if .Places}}
<div class="places-card">
<h3>Must-Visit Places</h3>
<p>{{placesIntro .Place}}</p>
<ol>
{{range .Places}}<li class="place-item">{{.Name}}</li>
{{end}}</ol>
</div>
{{else if requested .Places}}
<p class="no-places">{{noPlacesNote}}</p>
{{end}}
</section>
{{end}}
</main>
</body>
</html>
`
