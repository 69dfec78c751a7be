package entity

// Bill status constants. Status is set by an external approver.
const (
	BillStatusPending  = "pending"
	BillStatusAccepted = "accepted"
	BillStatusRefused  = "refused"
)

// User type constants
const (
	UserTypeEmployee = "Employee"
	UserTypeAdmin    = "Admin"
)

// Expense type labels offered by the new bill form
var ExpenseTypes = []string{
	"Transports",
	"Restaurants et bars",
	"Hôtel et logement",
	"Services en ligne",
	"IT et électronique",
	"Equipement et matériel",
	"Fournitures de bureau",
}

// DefaultPct is the reimbursement rate applied when the form leaves it empty
const DefaultPct = 20
