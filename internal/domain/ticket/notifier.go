package ticket

import "context"

// AssignmentNotice describes a technician being put on a ticket.
type AssignmentNotice struct {
	TicketID        uint
	Title           string
	Priority        string
	Status          string
	TechnicianName  string
	TechnicianEmail string
	AssignedBy      string
}

// AssignmentNotifier tells a technician about a new assignment.
type AssignmentNotifier interface {
	NotifyAssigned(ctx context.Context, notice AssignmentNotice) error
}
