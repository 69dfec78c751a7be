// Package views holds the HTML pages of the host UI.
package views

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/receipt"
)

//go:embed templates/*.html
var templateFS embed.FS

// Template names
const (
	LoginTemplate   = "login.html"
	BillsTemplate   = "bills.html"
	NewBillTemplate = "newbill.html"
	ErrorTemplate   = "error.html"
)

// LoginPage is the data of the login page
type LoginPage struct {
	Error string
	Email string
	Type  string
}

// BillsPage is the data of the bill list page
type BillsPage struct {
	User  entity.User
	Bills []entity.BillView

	// Active is the route highlighted in the navigation bar
	Active string

	// Modal is set when the receipt overlay is open
	Modal    bool
	ModalURL string
}

// NewBillForm echoes the submitted fields back into the form
type NewBillForm struct {
	ExpenseType string
	Name        string
	Date        string
	Amount      int
	VAT         string
	Pct         int
	Commentary  string
}

// NewBillPage is the data of the new bill page
type NewBillPage struct {
	User   entity.User
	Form   NewBillForm
	Alerts []string
	Active string

	// FileCleared renders the receipt input empty after a rejected file
	FileCleared bool
	Error       string
}

// ErrorPage is the data of the error page
type ErrorPage struct {
	Status  int
	Message string
}

// Templates parses the embedded pages
func Templates() (*template.Template, error) {
	tmpl, err := template.New("").Funcs(funcMap()).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}
	return tmpl, nil
}

func funcMap() template.FuncMap {
	return template.FuncMap{
		"expenseTypes": func() []string { return entity.ExpenseTypes },
		"accept": func() string {
			accept := ""
			for i, ext := range receipt.AllowedExtensions() {
				if i > 0 {
					accept += ","
				}
				accept += "." + ext
			}
			return accept
		},
		"defaultPct":   func() int { return entity.DefaultPct },
		"billsRoute":   func() string { return route.Bills },
		"newBillRoute": func() string { return route.NewBill },
	}
}
