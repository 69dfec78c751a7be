// Package route holds the paths the containers navigate between.
package route

const (
	Login   = "/"
	Bills   = "/bills"
	NewBill = "/bills/new"
)
