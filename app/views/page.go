package views

import (
	"bytes"
	"embed"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTmpl = template.Must(template.ParseFS(templateFS, "templates/page.html"))

// UserForm is what the user form currently shows.
type UserForm struct {
	Name        string
	Description string
	Editing     bool
	Button      string
}

// OrderForm is what the order form currently shows.
type OrderForm struct {
	Dish        string
	Description string
	UserID      uint
	Editing     bool
	Button      string
}

// Page is everything the HTML page needs.
type Page struct {
	Snapshot
	UserForm  UserForm
	OrderForm OrderForm
	Alert     string // blocking message, e.g. a validation failure
	Notice    string
}

// WritePage renders the full page. Record text is escaped by html/template.
// Nothing is written when rendering fails.
func WritePage(w io.Writer, p Page) error {
	var buf bytes.Buffer
	if err := pageTmpl.Execute(&buf, p); err != nil {
		return err
	}
	_, err := buf.WriteTo(w)
	return err
}
