package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/freightlink/portal/internal/repository"
)

func TestCanView(t *testing.T) {
	owner := Session{UserID: "cust-1", Role: RoleCustomer}
	stranger := Session{UserID: "cust-2", Role: RoleCustomer}
	staff := Session{UserID: "staff-1", Role: RoleStaff}
	admin := Session{UserID: "admin-1", Role: RoleAdmin}

	assert.NoError(t, CanView(owner, "cust-1"))
	assert.ErrorIs(t, CanView(stranger, "cust-1"), ErrAccessDenied)
	assert.NoError(t, CanView(staff, "cust-1"))
	assert.NoError(t, CanView(admin, "cust-1"))
}

func TestCanSetQuoteStatus(t *testing.T) {
	owner := Session{UserID: "cust-1", Role: RoleCustomer}
	stranger := Session{UserID: "cust-2", Role: RoleCustomer}
	staff := Session{UserID: "staff-1", Role: RoleStaff}

	tests := []struct {
		name    string
		sess    Session
		ownerID string
		status  string
		wantErr bool
	}{
		{"customer accepts own quote", owner, "cust-1", repository.QuoteStatusAccepted, false},
		{"customer rejects own quote", owner, "cust-1", repository.QuoteStatusRejected, false},
		{"customer finalizes own quote", owner, "cust-1", repository.QuoteStatusFinalized, true},
		{"customer expires own quote", owner, "cust-1", repository.QuoteStatusExpired, true},
		{"customer accepts foreign quote", stranger, "cust-1", repository.QuoteStatusAccepted, true},
		{"staff sets any status", staff, "cust-1", repository.QuoteStatusExpired, false},
		{"staff finalizes", staff, "cust-1", repository.QuoteStatusFinalized, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CanSetQuoteStatus(tt.sess, tt.ownerID, tt.status)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrAccessDenied)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCanAcceptQuote(t *testing.T) {
	assert.NoError(t, CanAcceptQuote(Session{UserID: "cust-1", Role: RoleCustomer}, "cust-1"))
	assert.NoError(t, CanAcceptQuote(Session{UserID: "staff-1", Role: RoleStaff}, "cust-1"))
	assert.ErrorIs(t, CanAcceptQuote(Session{UserID: "cust-2", Role: RoleCustomer}, "cust-1"), ErrAccessDenied)
}

func TestCanMutateShipment(t *testing.T) {
	assert.ErrorIs(t, CanMutateShipment(Session{UserID: "cust-1", Role: RoleCustomer}), ErrAccessDenied)
	assert.NoError(t, CanMutateShipment(Session{UserID: "staff-1", Role: RoleStaff}))
	assert.NoError(t, CanMutateShipment(Session{UserID: "admin-1", Role: RoleAdmin}))
}
