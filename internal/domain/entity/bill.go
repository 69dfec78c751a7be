package entity

// Bill represents an expense-reimbursement record submitted by an employee
type Bill struct {
	ID           string `json:"id"`
	Email        string `json:"email"`
	Type         string `json:"type"`
	Name         string `json:"name,omitempty"`
	Commentary   string `json:"commentary,omitempty"`
	CommentAdmin string `json:"commentAdmin,omitempty"`
	Date         string `json:"date"` // YYYY-MM-DD
	Amount       int    `json:"amount"`
	Pct          int    `json:"pct"`
	VAT          string `json:"vat"`
	FileURL      string `json:"fileUrl"`
	FileName     string `json:"fileName"`
	Status       string `json:"status"`
}

// HasReceipt returns true once the receipt upload has been recorded
func (b Bill) HasReceipt() bool {
	return b.FileURL != ""
}

// BillView is a Bill normalized for display.
// The raw Date is kept so ordering survives formatting.
type BillView struct {
	Bill
	DisplayDate   string `json:"displayDate"`
	DisplayStatus string `json:"displayStatus"`
}
