package domain

import "sort"

// DefaultPct is the VAT percentage applied when the form leaves it blank.
const DefaultPct = 20

// Bill is an expense report entry. The ID is assigned by the remote store;
// a draft may carry a transient local id until the first successful create.
// Date is a plain YYYY-MM-DD string so it stays comparable for sorting.
type Bill struct {
	ID           string     `json:"id"`
	Email        string     `json:"email"`
	Type         string     `json:"type"`
	Name         string     `json:"name"`
	Date         string     `json:"date"`
	Amount       float64    `json:"amount"`
	Pct          int        `json:"pct"`
	VAT          string     `json:"vat"`
	Commentary   string     `json:"commentary,omitempty"`
	CommentAdmin string     `json:"commentAdmin,omitempty"`
	FileURL      string     `json:"fileUrl,omitempty"`
	FileName     string     `json:"fileName,omitempty"`
	Status       BillStatus `json:"status"`
}

// HasReceipt reports whether an attachment upload has completed for the bill.
func (b Bill) HasReceipt() bool {
	return b.FileURL != ""
}

// SortBillsByDateDesc orders bills most recent first. Date strings are
// YYYY-MM-DD shaped, so plain string comparison is chronological.
// Ties keep their incoming order.
func SortBillsByDateDesc(bills []Bill) {
	sort.SliceStable(bills, func(i, j int) bool {
		return bills[i].Date > bills[j].Date
	})
}
