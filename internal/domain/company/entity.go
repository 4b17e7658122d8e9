package company

// Company is a registry company. Its member set is never stored here: it
// is always derived from the users whose reference points at the company.
type Company struct {
	ID   int64
	Name string
}
