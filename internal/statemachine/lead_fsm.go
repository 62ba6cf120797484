package statemachine

import (
	"context"
	"fmt"

	"github.com/looplab/fsm"

	"github.com/dmejia/opsledger-api/internal/models"
)

// LeadFSM wraps a lead with its status state machine. Converted is terminal:
// no event leaves it, so a lead can never be converted twice.
type LeadFSM struct {
	lead *models.Lead
	fsm  *fsm.FSM
}

// NewLeadFSM creates a new lead state machine
func NewLeadFSM(lead *models.Lead) *LeadFSM {
	lfsm := &LeadFSM{
		lead: lead,
	}

	lfsm.fsm = fsm.NewFSM(
		lead.Status,
		fsm.Events{
			{Name: "contact", Src: []string{models.LeadStatusNew}, Dst: models.LeadStatusContacted},
			{Name: "qualify", Src: []string{models.LeadStatusNew, models.LeadStatusContacted}, Dst: models.LeadStatusQualified},

			// any non-terminal status → converted
			{Name: "convert", Src: []string{models.LeadStatusNew, models.LeadStatusContacted, models.LeadStatusQualified}, Dst: models.LeadStatusConverted},
		},
		fsm.Callbacks{},
	)

	return lfsm
}

// Contact transitions the lead to contacted
func (l *LeadFSM) Contact(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "contact"); err != nil {
		return fmt.Errorf("failed to mark lead contacted: %w", err)
	}
	l.lead.Status = l.fsm.Current()
	return nil
}

// Qualify transitions the lead to qualified
func (l *LeadFSM) Qualify(ctx context.Context) error {
	if err := l.fsm.Event(ctx, "qualify"); err != nil {
		return fmt.Errorf("failed to qualify lead: %w", err)
	}
	l.lead.Status = l.fsm.Current()
	return nil
}

// Convert transitions the lead to converted
func (l *LeadFSM) Convert(ctx context.Context) error {
	if !l.lead.MayConvert() {
		return fmt.Errorf("lead cannot be converted in current state: %s", l.lead.Status)
	}

	if err := l.fsm.Event(ctx, "convert"); err != nil {
		return fmt.Errorf("failed to convert lead: %w", err)
	}

	l.lead.Status = l.fsm.Current()
	return nil
}

// Current returns the current state
func (l *LeadFSM) Current() string {
	return l.fsm.Current()
}

// Can checks if a transition is possible
func (l *LeadFSM) Can(event string) bool {
	return l.fsm.Can(event)
}
