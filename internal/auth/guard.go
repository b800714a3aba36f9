package auth

import "github.com/freightlink/portal/internal/repository"

// The guard is the single place role rules live. Every store operation calls
// one of these before touching a row.

// CanView allows staff to view anything and a customer to view only
// resources they own.
func CanView(sess Session, ownerID string) error {
	if sess.IsStaff() {
		return nil
	}
	if sess.UserID == ownerID {
		return nil
	}
	return ErrAccessDenied
}

// CanSetQuoteStatus allows staff to set any status; a customer may only
// accept or reject, and only on a quote they own.
func CanSetQuoteStatus(sess Session, ownerID, status string) error {
	if sess.IsStaff() {
		return nil
	}
	if sess.UserID != ownerID {
		return ErrAccessDenied
	}
	if status != repository.QuoteStatusAccepted && status != repository.QuoteStatusRejected {
		return ErrAccessDenied
	}
	return nil
}

// CanIssueQuote restricts quote creation against a request to staff.
func CanIssueQuote(sess Session) error {
	if sess.IsStaff() {
		return nil
	}
	return ErrAccessDenied
}

// CanAcceptQuote gates the conversion path: staff, or the owning customer.
func CanAcceptQuote(sess Session, ownerID string) error {
	if sess.IsStaff() {
		return nil
	}
	if sess.UserID == ownerID {
		return nil
	}
	return ErrAccessDenied
}

// CanMutateShipment restricts shipment status and tracking writes to staff.
func CanMutateShipment(sess Session) error {
	if sess.IsStaff() {
		return nil
	}
	return ErrAccessDenied
}
