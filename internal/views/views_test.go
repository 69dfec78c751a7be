package views

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/domain/receipt"
)

func render(t *testing.T, name string, data interface{}) string {
	t.Helper()
	tmpl, err := Templates()
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, tmpl.ExecuteTemplate(&buf, name, data))
	return buf.String()
}

func TestBillsTemplate(t *testing.T) {
	html := render(t, BillsTemplate, BillsPage{
		User: entity.User{Email: "a@a"},
		Bills: []entity.BillView{
			{
				Bill:          entity.Bill{ID: "1", Type: "Transports", Name: "test1", Amount: 100, FileURL: "https://localhost:3456/images/test.jpg"},
				DisplayDate:   "1 Jan. 01",
				DisplayStatus: "Refusé",
			},
		},
	})

	assert.Contains(t, html, "1 Jan. 01")
	assert.Contains(t, html, "Refusé")
	assert.Contains(t, html, `data-bill-url="https://localhost:3456/images/test.jpg"`)
	assert.NotContains(t, html, `data-testid="modaleFile"`)
}

func TestBillsTemplate_Modal(t *testing.T) {
	html := render(t, BillsTemplate, BillsPage{Modal: true, ModalURL: "https://localhost:3456/images/test.jpg"})

	assert.Contains(t, html, `data-testid="modaleFile"`)
	assert.Contains(t, html, `<img src="https://localhost:3456/images/test.jpg"`)
}

func TestNewBillTemplate_Alert(t *testing.T) {
	html := render(t, NewBillTemplate, NewBillPage{
		Alerts:      []string{receipt.InvalidExtensionMessage},
		FileCleared: true,
		Form:        NewBillForm{ExpenseType: "Transports", Name: "vol"},
	})

	assert.Contains(t, html, "Veuillez sélectionner un fichier avec une extension .jpg, .jpeg ou .png")
	assert.Contains(t, html, `data-cleared="true"`)
	assert.Contains(t, html, `accept=".jpg,.jpeg,.png"`)
	assert.Contains(t, html, "<option selected>Transports</option>")
}

func TestLoginAndErrorTemplates(t *testing.T) {
	assert.Contains(t, render(t, LoginTemplate, LoginPage{Error: "Adresse e-mail invalide"}), "Adresse e-mail invalide")
	assert.Contains(t, render(t, ErrorTemplate, ErrorPage{Status: 404, Message: "Erreur 404"}), "Erreur 404")
}

func TestNavTemplate_ActiveIcon(t *testing.T) {
	bills := render(t, BillsTemplate, BillsPage{Active: route.Bills})
	assert.Contains(t, bills, `data-testid="icon-window" class="active-icon"`)
	assert.NotContains(t, bills, `data-testid="icon-mail" class="active-icon"`)

	newBill := render(t, NewBillTemplate, NewBillPage{Active: route.NewBill})
	assert.Contains(t, newBill, `data-testid="icon-mail" class="active-icon"`)
	assert.NotContains(t, newBill, `data-testid="icon-window" class="active-icon"`)
}

func TestNewBillTemplate_RequiredFields(t *testing.T) {
	html := render(t, NewBillTemplate, NewBillPage{})

	assert.Contains(t, html, `data-testid="pct" required`)
	assert.Contains(t, html, `data-testid="amount" required`)
	assert.Contains(t, html, `data-testid="datepicker" required`)
}

func TestBillsTemplate_EmptyReceipt(t *testing.T) {
	html := render(t, BillsTemplate, BillsPage{
		Bills: []entity.BillView{
			{Bill: entity.Bill{ID: "1", FileURL: "https://localhost:3456/images/test.jpg"}},
			{Bill: entity.Bill{ID: "2"}},
		},
	})

	assert.Equal(t, 2, strings.Count(html, `data-testid="icon-eye"`))
	assert.Equal(t, 1, strings.Count(html, `class="icon-eye-empty"`))
}
