package cli

import (
	"fmt"
	"io"
	"text/template"
	"time"

	"github.com/iudanet/gophblog/internal/models"
)

const postsTemplate = `
=== {{.Username}}'s Blog ===
{{- if eq (len .Blogs) 0 }}

No posts yet.

Use 'gophblog post add' to write your first post.
{{ else }}
{{- range .Blogs }}

[{{ .ID }}] {{ date .Date }}
{{ template "content" .Content }}
{{- end }}

{{ len .Blogs }} post(s)
{{ end -}}
`

const postTemplate = `
[{{ .ID }}] {{ date .Date }}
{{ template "content" .Content }}
`

const contentTemplate = `
{{- define "content" -}}
{{- if eq .Type "image" }}Media: {{ .Content }}{{ else }}{{ .Content }}{{ end -}}
{{- end -}}
`

const versionTemplate = `GophBlog Client
Version:    {{.Version}}
Build Date: {{.BuildDate}}
Git Commit: {{.GitCommit}}
`

const shellHelp = `
Commands:
  list                 Show your posts
  add [text]           Create a post (attached media wins over text)
  attach <path>        Attach an image or video to the next post
  detach               Remove the attached file
  edit <id> [text]     Replace the text of a post
  delete <id>          Delete a post
  logout               Log out
  help                 Show this help
  quit                 Leave the shell
`

var templates = template.Must(
	template.New("cli").
		Funcs(template.FuncMap{"date": formatDate}).
		Parse(contentTemplate),
)

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}

// render выполняет шаблон text с данными data
func render(w io.Writer, text string, data any) error {
	tmpl, err := templates.Clone()
	if err != nil {
		return fmt.Errorf("failed to clone templates: %w", err)
	}
	if _, err := tmpl.Parse(text); err != nil {
		return fmt.Errorf("failed to parse template: %w", err)
	}
	return tmpl.Execute(w, data)
}

func renderPost(w io.Writer, post models.Post) error {
	return render(w, postTemplate, post)
}
