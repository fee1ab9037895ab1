package main

import (
	"bytes"
	"fmt"
	"github.com/OPSAF/Anime/internal/contexthelpers"
	"github.com/OPSAF/Anime/internal/errors"
	"github.com/OPSAF/Anime/internal/i18n"
	"github.com/OPSAF/Anime/ui"
	"html/template"
	"io/fs"
	"log/slog"
	"net/http"
	"path"
)

// pages lists the directories under ui/templates/pages. Each has to include a template named "page".
var pages = []string{"home", "characters"}

// parseTemplates parses the base layout together with the files of every page.
func parseTemplates() (map[string]*template.Template, error) {
	templates := make(map[string]*template.Template, len(pages))
	for _, pageName := range pages {
		pageTemplateFiles, err := fs.Glob(ui.Files, fmt.Sprintf("templates/pages/%s/*.gohtml", pageName))
		if err != nil {
			return nil, errors.Wrap(err, "glob page template files", slog.String("page", pageName))
		}
		files := append([]string{"templates/base.gohtml"}, pageTemplateFiles...)

		// We need to initialize the FuncMap before parsing the files. These will be overridden in the render function.
		t, err := template.New(pageName).Funcs(template.FuncMap{
			"nonce": func() template.HTMLAttr {
				panic("not implemented")
			},
			"csrf": func() template.HTML {
				panic("not implemented")
			},
			"t": func(string, ...any) string {
				panic("not implemented")
			},
			"lang": func() string {
				panic("not implemented")
			},
			"currentPath": func() string {
				panic("not implemented")
			},
		}).ParseFS(ui.Files, files...)
		if err != nil {
			return nil, errors.Wrap(err, "parse template", slog.String("page", pageName))
		}
		templates[pageName] = t
	}
	return templates, nil
}

// render executes the base layout of page. Board fragments for htmx requests are rendered with [renderFragment].
func (app *application) render(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	app.execute(w, r, status, page, "base", data)
}

// renderFragment executes a single named template of page without the layout.
func (app *application) renderFragment(w http.ResponseWriter, r *http.Request, status int, page, name string,
	data any) {
	app.execute(w, r, status, page, name, data)
}

func (app *application) execute(w http.ResponseWriter, r *http.Request, status int, page, name string, data any) {
	cached, ok := app.templates[page]
	if !ok {
		app.serverError(w, r, errors.New("template not found", slog.String("template", page)))
		return
	}
	t, err := cached.Clone()
	if err != nil {
		app.serverError(w, r, errors.Wrap(err, "clone template", slog.String("template", page)))
		return
	}

	ctx := r.Context()
	tag := contexthelpers.Language(ctx)
	printer := i18n.Printer(tag)
	nonce := fmt.Sprintf("nonce=\"%s\"", contexthelpers.CSPNonce(ctx))
	csrf := fmt.Sprintf("<input type=\"hidden\" name=\"csrf_token\" value=\"%s\"/>",
		template.HTMLEscapeString(contexthelpers.CSRFToken(ctx)))
	t.Funcs(template.FuncMap{
		"nonce": func() template.HTMLAttr {
			return template.HTMLAttr(nonce) //nolint:gosec // we trust the nonce since it's not provided by user.
		},
		"csrf": func() template.HTML {
			return template.HTML(csrf) //nolint:gosec // the token is escaped above.
		},
		"t": func(key string, args ...any) string {
			return printer.Sprintf(key, args...)
		},
		"lang": tag.String,
		"currentPath": func() string {
			return path.Clean(contexthelpers.CurrentPath(ctx))
		},
	})

	buf := new(bytes.Buffer)
	if err = t.ExecuteTemplate(buf, name, data); err != nil {
		app.serverError(w, r, errors.Wrap(err, "execute template",
			slog.String("template", page), slog.String("name", name)))
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)

	_, _ = buf.WriteTo(w)
}
