package purchase

import (
	"errors"
	"fmt"

	"github.com/geniusdatahub/gdh_api/internal/models"
	"github.com/geniusdatahub/gdh_api/internal/phone"
)

// Step is the purchase wizard state. The zero value is StepClosed.
type Step int

const (
	StepClosed Step = iota
	StepSelection
	StepConfirmation
	StepPayment
)

// String returns the wire name of the step.
func (s Step) String() string {
	switch s {
	case StepClosed:
		return "closed"
	case StepSelection:
		return "selection"
	case StepConfirmation:
		return "confirmation"
	case StepPayment:
		return "payment"
	}
	return fmt.Sprintf("step(%d)", int(s))
}

var (
	// ErrInvalidTransition is returned when an operation is not legal in the
	// flow's current step.
	ErrInvalidTransition = errors.New("INVALID_TRANSITION")
	// ErrInvalidRecipient is returned by Confirm when the recipient number
	// fails strict validation. The flow stays in selection.
	ErrInvalidRecipient = errors.New("INVALID_RECIPIENT")
	// ErrNoBundle is returned when an operation needs a selected bundle and
	// the flow has none.
	ErrNoBundle = errors.New("NO_BUNDLE")
)

// Flow is the purchase wizard state machine: one in-progress bundle purchase
// per session. It is not safe for concurrent use; the Manager serializes
// access.
type Flow struct {
	bundle          *models.Bundle
	recipientNumber string
	step            Step
}

// NewFlow returns a closed flow with no bundle selected.
func NewFlow() *Flow {
	return &Flow{step: StepClosed}
}

// Bundle returns the currently selected bundle, or nil.
func (f *Flow) Bundle() *models.Bundle { return f.bundle }

// RecipientNumber returns the recipient number as last entered.
func (f *Flow) RecipientNumber() string { return f.recipientNumber }

// Step returns the current wizard step.
func (f *Flow) Step() Step { return f.step }

// Open starts (or restarts) the wizard with the chosen bundle. Legal from any
// step; the recipient number is cleared.
func (f *Flow) Open(bundle models.Bundle) {
	f.bundle = &bundle
	f.recipientNumber = ""
	f.step = StepSelection
}

// SetRecipientNumber records the entered recipient number, last write wins.
// Validation is read-only and happens in Confirm, not here.
func (f *Flow) SetRecipientNumber(value string) error {
	if f.step != StepSelection {
		return ErrInvalidTransition
	}
	f.recipientNumber = value
	return nil
}

// Confirm advances selection -> confirmation. The recipient number must pass
// strict validation; on failure the flow is left unchanged.
func (f *Flow) Confirm() error {
	if f.step != StepSelection {
		return ErrInvalidTransition
	}
	if !phone.StrictGhanaNumber(f.recipientNumber) {
		return ErrInvalidRecipient
	}
	f.step = StepConfirmation
	return nil
}

// Back returns confirmation -> selection, preserving the entered number.
func (f *Flow) Back() error {
	if f.step != StepConfirmation {
		return ErrInvalidTransition
	}
	f.step = StepSelection
	return nil
}

// Pay advances confirmation -> payment. Whether the payment popup can
// actually open is the payment collaborator's concern; a not-ready collaborator
// leaves the flow in payment, so Pay is also legal from payment and the
// checkout can be retried without restarting the wizard.
func (f *Flow) Pay() error {
	if f.step != StepConfirmation && f.step != StepPayment {
		return ErrInvalidTransition
	}
	f.step = StepPayment
	return nil
}

// CompletePayment closes the flow after a successful payment callback and
// returns a snapshot of what was purchased for order recording and the
// success view.
func (f *Flow) CompletePayment(reference string) (Completed, error) {
	if f.step != StepPayment {
		return Completed{}, ErrInvalidTransition
	}
	if f.bundle == nil {
		return Completed{}, ErrNoBundle
	}
	done := Completed{
		Reference:       reference,
		Bundle:          *f.bundle,
		RecipientNumber: f.recipientNumber,
	}
	f.Close()
	return done, nil
}

// Close abandons the wizard from any step, discarding bundle and recipient.
func (f *Flow) Close() {
	f.bundle = nil
	f.recipientNumber = ""
	f.step = StepClosed
}

// Completed is the snapshot handed to the order recorder when a payment
// callback arrives.
type Completed struct {
	Reference       string
	Bundle          models.Bundle
	RecipientNumber string
}
