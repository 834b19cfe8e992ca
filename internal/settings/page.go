package settings

import (
	"html/template"
	"io"
	"strings"
)

// pageTmpl renders the settings page chrome around the host-rendered
// sections and fields, plus a collapsed debug panel describing the
// extension's resolved spec.
var pageTmpl = template.Must(template.New("options-page").Parse(`<div class="wrap plugkit-settings">
<h1>{{.Title}}</h1>
<form method="post" action="options">
{{.Sections}}
<p class="submit"><button type="submit" class="button button-primary">Save Changes</button></p>
</form>
<details class="plugkit-debug">
<summary>Debug</summary>
<table class="widefat">
<tr><th>identity</th><td>{{.Spec.Identity}}</td></tr>
<tr><th>root</th><td>{{.Spec.RootDir}}</td></tr>
<tr><th>public url</th><td>{{.Spec.PublicURL}}</td></tr>
<tr><th>autoload root</th><td>{{.Spec.AutoloadRoot}}</td></tr>
<tr><th>language dir</th><td>{{.Spec.LanguageDir}}</td></tr>
<tr><th>min host version</th><td>{{.Spec.MinHostVersion}}</td></tr>
</table>
</details>
</div>
`))

// ShowOptionsPage renders the full settings page for the extension. It is
// pure view logic: the host renders the sections and fields it has stored,
// and this method wraps them in page chrome. Render errors surface in-page
// rather than aborting the request.
func (r *Registry) ShowOptionsPage(w io.Writer) {
	sections := &strings.Builder{}
	r.backend.RenderSections(r.sp.SettingsPageID, sections)

	data := struct {
		Title    string
		Sections template.HTML
		Spec     any
	}{
		Title:    r.sp.ShortName,
		Sections: template.HTML(sections.String()),
		Spec:     r.sp,
	}
	if err := pageTmpl.Execute(w, data); err != nil {
		io.WriteString(w, "<!-- settings page render failed: "+template.HTMLEscapeString(err.Error())+" -->")
	}
}
