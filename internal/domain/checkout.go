package domain

import (
	"fmt"
	"strings"
)

// IssueCode classifies a single cart line problem found during
// availability validation.
type IssueCode string

const (
	IssueProductNotFound   IssueCode = "product_not_found"
	IssueOutOfStock        IssueCode = "out_of_stock"
	IssueInsufficientStock IssueCode = "insufficient_stock"
	IssuePriceChanged      IssueCode = "price_changed"
)

// LineIssue describes one problem with one cart line. AvailableQuantity is
// set only for insufficient_stock.
type LineIssue struct {
	ProductID         string    `json:"product_id"`
	Issue             IssueCode `json:"issue"`
	RequestedQuantity int64     `json:"requested_quantity"`
	AvailableQuantity *int64    `json:"available_quantity,omitempty"`
}

// Blocking reports whether the issue prevents checkout. price_changed is
// advisory only and never blocks on its own.
func (i LineIssue) Blocking() bool {
	return i.Issue != IssuePriceChanged
}

// ValidationResult is the outcome of cross-checking every cart line
// against current catalog state. Issues are collected for all lines so the
// caller can surface every problem at once.
type ValidationResult struct {
	Valid  bool        `json:"valid"`
	Issues []LineIssue `json:"issues"`
}

// BlockingIssues returns only the issues that prevent checkout.
func (r *ValidationResult) BlockingIssues() []LineIssue {
	var blocking []LineIssue
	for _, issue := range r.Issues {
		if issue.Blocking() {
			blocking = append(blocking, issue)
		}
	}
	return blocking
}

// CheckoutRejectedError aborts order materialization when validation finds
// blocking issues. It carries the full issue list, including advisory ones.
type CheckoutRejectedError struct {
	Issues []LineIssue
}

func (e *CheckoutRejectedError) Error() string {
	return fmt.Sprintf("checkout rejected: %s", summarizeIssues(e.Issues))
}

// StockConflictError signals that a guarded inventory decrement found less
// stock than validation saw moments earlier: a concurrent checkout won the
// race. The whole order is aborted with no partial state.
type StockConflictError struct {
	Issues []LineIssue
}

func (e *StockConflictError) Error() string {
	return fmt.Sprintf("stock conflict during checkout: %s", summarizeIssues(e.Issues))
}

func summarizeIssues(issues []LineIssue) string {
	if len(issues) == 0 {
		return "no issues"
	}
	parts := make([]string, len(issues))
	for i, issue := range issues {
		parts[i] = fmt.Sprintf("%s=%s", issue.ProductID, issue.Issue)
	}
	return strings.Join(parts, ", ")
}
