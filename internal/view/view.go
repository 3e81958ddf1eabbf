// Package view renders the Hoaxify pages as HTML. Every page shares the
// layout with the NavBar and the language switcher; labels are looked up
// in the active locale through the "t" template function.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/patric-chuzhbe/hoaxify/internal/auth"
	"github.com/patric-chuzhbe/hoaxify/internal/i18n"
	"github.com/patric-chuzhbe/hoaxify/internal/pages"
)

// Page template names.
const (
	PageHome       = "home"
	PageSignUp     = "signup"
	PageLogin      = "login"
	PageUser       = "user"
	PageActivation = "activation"
	PageNotFound   = "notfound"
)

var pageNames = []string{
	PageHome,
	PageSignUp,
	PageLogin,
	PageUser,
	PageActivation,
	PageNotFound,
}

//go:embed templates/*.html
var templatesFS embed.FS

// Data is what every page template receives.
type Data struct {
	Locale    string
	Locales   []string
	Nav       []Link
	CSRFField string
	CSRFToken string
	Content   any
}

// NewData builds the common part of a page from the session and locale.
func NewData(session auth.Session, locale, csrfField, csrfToken string, content any) Data {
	return Data{
		Locale:    locale,
		Locales:   i18n.Locales(),
		Nav:       NavLinks(session),
		CSRFField: csrfField,
		CSRFToken: csrfToken,
		Content:   content,
	}
}

type Renderer struct {
	pages map[string]*template.Template
}

type formInput struct {
	Locale   string
	Name     string
	LabelKey string
	Type     string
	Value    string
	Error    string
}

type failureBlock struct {
	Locale  string
	Failure pages.Failure
}

var funcs = template.FuncMap{
	"t": i18n.Translate,
	"add": func(a, b int) int {
		return a + b
	},
	"input": func(locale, name, labelKey, kind string, values, errors map[string]string) formInput {
		return formInput{
			Locale:   locale,
			Name:     name,
			LabelKey: labelKey,
			Type:     kind,
			Value:    values[name],
			Error:    errors[name],
		}
	},
	"failure": func(locale string, failure pages.Failure) failureBlock {
		return failureBlock{Locale: locale, Failure: failure}
	},
}

func New() (*Renderer, error) {
	r := &Renderer{pages: make(map[string]*template.Template, len(pageNames))}

	for _, name := range pageNames {
		page, err := template.New("layout.html").
			Funcs(funcs).
			ParseFS(templatesFS, "templates/layout.html", "templates/"+name+".html")
		if err != nil {
			return nil, fmt.Errorf("in internal/view/view.go/New(): error while `template.ParseFS()` calling for %q: %w", name, err)
		}
		r.pages[name] = page
	}

	return r, nil
}

// Render writes the named page. Nothing is written when rendering fails.
func (r *Renderer) Render(w io.Writer, name string, data Data) error {
	page, ok := r.pages[name]
	if !ok {
		return fmt.Errorf("in internal/view/view.go/Render(): unknown page %q", name)
	}

	var buf bytes.Buffer
	if err := page.Execute(&buf, data); err != nil {
		return fmt.Errorf("in internal/view/view.go/Render(): error while `page.Execute()` calling: %w", err)
	}

	_, err := buf.WriteTo(w)

	return err
}
