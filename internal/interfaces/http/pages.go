package http

import (
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/billed/internal/application/port"
	"github.com/garyjia/billed/internal/application/route"
	"github.com/garyjia/billed/internal/application/service"
	"github.com/garyjia/billed/internal/domain/apperr"
	"github.com/garyjia/billed/internal/domain/entity"
	"github.com/garyjia/billed/internal/views"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// Pages contains the host UI handlers.
// Each request builds its own service around a pageDocument and a navigator.
type Pages struct {
	stores port.StoreProvider
	logger Logger
}

// NewPages creates a new Pages instance
func NewPages(stores port.StoreProvider, logger Logger) *Pages {
	return &Pages{
		stores: stores,
		logger: logger,
	}
}

type loginForm struct {
	Type  string `form:"type" binding:"required,oneof=Employee Admin"`
	Email string `form:"email" binding:"required,email"`
}

type newBillForm struct {
	ExpenseType string `form:"expense-type" binding:"required"`
	Name        string `form:"expense-name"`
	Date        string `form:"datepicker" binding:"required,datetime=2006-01-02"`
	Amount      int    `form:"amount" binding:"required,gt=0,lte=100000"` // utils.MaxBillAmount
	VAT         string `form:"vat"`
	Pct         int    `form:"pct" binding:"required,gt=0,lte=100"`
	Commentary  string `form:"commentary"`
}

func (f newBillForm) toService() service.NewBillForm {
	return service.NewBillForm{
		ExpenseType: f.ExpenseType,
		Name:        f.Name,
		Date:        f.Date,
		Amount:      f.Amount,
		VAT:         f.VAT,
		Pct:         f.Pct,
		Commentary:  f.Commentary,
	}
}

func (f newBillForm) toView() views.NewBillForm {
	return views.NewBillForm(f.toService())
}

func (p *Pages) serviceConfig(c *gin.Context, doc *pageDocument, nav *navigator) service.Config {
	user := currentUser(c)
	return service.Config{
		Document: doc,
		Navigate: nav.Navigate,
		Store:    p.stores.ForUser(user),
		Session:  &user,
		Logger:   p.logger,
	}
}

// LoginPage handles GET /
func (p *Pages) LoginPage(c *gin.Context) {
	if _, ok := readSession(c); ok {
		c.Redirect(http.StatusFound, route.Bills)
		return
	}
	c.HTML(http.StatusOK, views.LoginTemplate, views.LoginPage{})
}

// Login handles POST /
func (p *Pages) Login(c *gin.Context) {
	var form loginForm
	if err := c.ShouldBind(&form); err != nil {
		p.logger.Warn("Invalid login form", "error", err)
		c.HTML(http.StatusBadRequest, views.LoginTemplate, views.LoginPage{
			Error: "Veuillez saisir une adresse e-mail valide",
			Email: form.Email,
			Type:  form.Type,
		})
		return
	}

	user := entity.User{Type: form.Type, Email: form.Email}
	if err := setSession(c, user); err != nil {
		p.renderError(c, err)
		return
	}

	p.logger.Info("User logged in", "email", user.Email, "type", user.Type)
	c.Redirect(http.StatusSeeOther, route.Bills)
}

// Logout handles GET /logout
func (p *Pages) Logout(c *gin.Context) {
	clearSession(c)
	c.Redirect(http.StatusFound, route.Login)
}

// BillsPage handles GET /bills. A receipt query parameter opens the receipt overlay.
func (p *Pages) BillsPage(c *gin.Context) {
	doc, nav := &pageDocument{}, &navigator{}
	svc, err := service.NewBillsService(p.serviceConfig(c, doc, nav))
	if err != nil {
		p.renderError(c, err)
		return
	}

	if billURL, ok := c.GetQuery("receipt"); ok {
		svc.HandleClickIconEye(service.ReceiptIcon{BillURL: billURL})
	}

	bills, err := svc.GetBills(c.Request.Context())
	if err != nil {
		p.renderError(c, err)
		return
	}

	c.HTML(http.StatusOK, views.BillsTemplate, views.BillsPage{
		User:     svc.Session(),
		Bills:    bills,
		Active:   route.Bills,
		Modal:    doc.modalOpen,
		ModalURL: doc.modalURL,
	})
}

// NewBillAction handles GET /bills/actions/new-bill
func (p *Pages) NewBillAction(c *gin.Context) {
	doc, nav := &pageDocument{}, &navigator{}
	svc, err := service.NewBillsService(p.serviceConfig(c, doc, nav))
	if err != nil {
		p.renderError(c, err)
		return
	}

	svc.HandleClickNewBill()
	c.Redirect(http.StatusFound, nav.target)
}

// NewBillPage handles GET /bills/new
func (p *Pages) NewBillPage(c *gin.Context) {
	c.HTML(http.StatusOK, views.NewBillTemplate, views.NewBillPage{
		User:   currentUser(c),
		Form:   views.NewBillForm{ExpenseType: entity.ExpenseTypes[0]},
		Active: route.NewBill,
	})
}

// SubmitNewBill handles POST /bills/new
func (p *Pages) SubmitNewBill(c *gin.Context) {
	doc, nav := &pageDocument{}, &navigator{}
	svc, err := service.NewNewBillService(p.serviceConfig(c, doc, nav))
	if err != nil {
		p.renderError(c, err)
		return
	}

	var form newBillForm
	bindErr := c.ShouldBind(&form)

	page := views.NewBillPage{
		User:   currentUser(c),
		Form:   form.toView(),
		Active: route.NewBill,
	}

	if !svc.HandleChangeFile(p.readUpload(c)) {
		page.Alerts = doc.alerts
		page.FileCleared = doc.inputCleared
		c.HTML(http.StatusUnprocessableEntity, views.NewBillTemplate, page)
		return
	}

	if bindErr != nil {
		p.logger.Warn("Invalid new bill form", "error", bindErr)
		page.Error = "Veuillez remplir tous les champs obligatoires"
		c.HTML(http.StatusBadRequest, views.NewBillTemplate, page)
		return
	}

	if err := svc.HandleSubmit(c.Request.Context(), form.toService()); err != nil {
		page.Error = err.Error()
		c.HTML(errorStatus(err), views.NewBillTemplate, page)
		return
	}

	if nav.redirected() {
		c.Redirect(http.StatusSeeOther, nav.target)
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportBills handles GET /bills/export.xlsx
func (p *Pages) ExportBills(c *gin.Context) {
	doc, nav := &pageDocument{}, &navigator{}
	svc, err := service.NewBillsService(p.serviceConfig(c, doc, nav))
	if err != nil {
		p.renderError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := service.NewExportService(svc, p.logger).WriteXLSX(c.Request.Context(), &buf); err != nil {
		p.renderError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="notes-de-frais.xlsx"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// readUpload returns the selected receipt, nil when the form has none
func (p *Pages) readUpload(c *gin.Context) *service.SelectedFile {
	header, err := c.FormFile("file")
	if err != nil {
		return nil
	}

	file, err := header.Open()
	if err != nil {
		p.logger.Error("Failed to open uploaded file", "error", err, "file_name", header.Filename)
		return nil
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		p.logger.Error("Failed to read uploaded file", "error", err, "file_name", header.Filename)
		return nil
	}

	return &service.SelectedFile{
		Name:        header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Content:     content,
	}
}

func (p *Pages) renderError(c *gin.Context, err error) {
	status := errorStatus(err)
	p.logger.Error("Request failed", "path", c.Request.URL.Path, "status", status, "error", err)
	c.HTML(status, views.ErrorTemplate, views.ErrorPage{
		Status:  status,
		Message: err.Error(),
	})
}

// errorStatus maps an error to the HTTP status of the response
func errorStatus(err error) int {
	if status, ok := apperr.StatusOf(err); ok {
		if status >= 400 && status < 600 {
			return status
		}
		return http.StatusBadGateway
	}

	switch apperr.KindOf(err) {
	case apperr.KindValidation:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

