package receipt

// Validity represents the state of the receipt selected on the new bill form
type Validity string

const (
	ValidityUnset   Validity = "UNSET"
	ValidityValid   Validity = "VALID"
	ValidityInvalid Validity = "INVALID"
)

// String returns the string representation of the validity
func (v Validity) String() string {
	return string(v)
}

// Accept returns the state reached when an allowed file is selected.
// Any state moves to valid; nothing moves back to unset.
func (v Validity) Accept() Validity {
	return ValidityValid
}

// Reject returns the state reached when a disallowed file is selected
func (v Validity) Reject() Validity {
	return ValidityInvalid
}

// CanSubmit returns true if a submission may reach the store
func (v Validity) CanSubmit() bool {
	return v == ValidityValid
}
