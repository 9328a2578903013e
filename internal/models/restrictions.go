package models

// Restrictions holds the customer's dietary exclusion flags, collected
// once at the start of a session and read-only afterwards.
type Restrictions struct {
	AllergicToNuts   bool
	AllergicToGluten bool
	Diabetic         bool
}
