package handler

import "html/template"

var dashboardTemplate = template.Must(template.New("dashboard").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Photobooth Admin</title></head>
<body>
<h1>Photobooth Admin</h1>
<ul>
	<li>Stored photos: {{.Stats.TotalPhotos}}</li>
	<li>Total size: {{.TotalSize}}</li>
	<li>Legacy rows (no blob): {{.Stats.LegacyRows}}</li>
	{{if .Stats.LastUploadAt}}<li>Last upload: {{.Stats.LastUploadAt.Format "2006-01-02 15:04:05 MST"}}</li>{{end}}
</ul>
<p><a href="/admin/photos">Browse photos</a></p>
</body>
</html>
`))

var photosTemplate = template.Must(template.New("photos").Parse(`<!doctype html>
<html>
<head><meta charset="utf-8"><title>Photos</title></head>
<body>
<h1>Photos ({{.Total}})</h1>
<form method="get" action="/admin/photos">
	<input type="text" name="q" value="{{.Query}}" placeholder="Search by filename">
	<button type="submit">Search</button>
</form>
<table border="1" cellpadding="4">
	<tr><th>Name</th><th>Type</th><th>Size</th><th>Created</th><th></th><th></th></tr>
	{{range .Photos}}
	<tr>
		<td>{{if .BlobURL}}<a href="{{.BlobURL}}">{{.OriginalName}}</a>{{else}}{{.OriginalName}}{{end}}</td>
		<td>{{.MimeType}}</td>
		<td>{{.Size}}</td>
		<td>{{.CreatedAt.Format "2006-01-02 15:04:05"}}</td>
		<td><a href="/admin/photos/{{.ID}}/download">Download</a></td>
		<td>
			<form method="post" action="/admin/photos/{{.ID}}/delete" onsubmit="return confirm('Delete this photo?')">
				<button type="submit">Delete</button>
			</form>
		</td>
	</tr>
	{{else}}
	<tr><td colspan="6">No photos found.</td></tr>
	{{end}}
</table>
<p>
	{{if .HasPrev}}<a href="/admin/photos?page={{.PrevPage}}&q={{.Query}}">Previous</a>{{end}}
	Page {{.Page}} of {{.Pages}}
	{{if .HasNext}}<a href="/admin/photos?page={{.NextPage}}&q={{.Query}}">Next</a>{{end}}
</p>
<p><a href="/admin">Dashboard</a></p>
</body>
</html>
`))
