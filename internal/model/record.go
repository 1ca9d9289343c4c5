package model

// NotAvailable is the placeholder shown for a field that is absent or null
// in the source audit file.
const NotAvailable = "N/A"

// Columns holds the table headers shared by every renderer, in display order.
var Columns = []string{"Check", "Status", "Recommendation"}

// Record is one normalized audit result.
// Records are created by the normalizer and only read afterwards.
type Record struct {
	// Check names the audited item.
	Check string `json:"check"`

	// Status is the outcome reported by the audit producer.
	Status string `json:"status"`

	// Recommendation is the remediation advice reported by the audit producer.
	Recommendation string `json:"recommendation"`
}

// Cells returns the record fields in column order.
func (r Record) Cells() []string {
	return []string{r.Check, r.Status, r.Recommendation}
}
