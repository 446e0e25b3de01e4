package usecases

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestGetTicketUseCase_Visibility(t *testing.T) {
	own := newTicket(t, 1, employee.UserID, nil)
	assigned := newTicket(t, 2, otherEmployee.UserID, uintPtr(technician.UserID))
	foreign := newTicket(t, 3, otherEmployee.UserID, nil)

	uc := NewGetTicketUseCase(repoWith(own, assigned, foreign), testEngine(), nil, testLogger())

	tests := []struct {
		name      string
		actor     access.Subject
		ticketID  uint
		forbidden bool
	}{
		{"employee reads own", employee, 1, false},
		{"employee denied foreign", employee, 3, true},
		{"employee denied other's assigned", employee, 2, true},
		{"technician reads assigned", technician, 2, false},
		{"technician denied unrelated", technician, 3, true},
		{"admin reads anything", admin, 3, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := uc.Execute(context.Background(), GetTicketQuery{Actor: tt.actor, TicketID: tt.ticketID})
			if tt.forbidden {
				require.Error(t, err)
				assert.True(t, errors.IsForbiddenError(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.ticketID, result.ID)
		})
	}
}

func TestGetTicketUseCase_NotFoundBeforeForbidden(t *testing.T) {
	uc := NewGetTicketUseCase(repoWith(), testEngine(), nil, testLogger())

	for _, actor := range []access.Subject{employee, technician, admin} {
		_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: actor, TicketID: 999})
		require.Error(t, err)
		assert.True(t, errors.IsNotFoundError(err), "role %s", actor.Role)
	}
}

func TestGetTicketUseCase_RepositoryError(t *testing.T) {
	repo := &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return nil, stderrors.New("db down")
		},
	}
	uc := NewGetTicketUseCase(repo, testEngine(), nil, testLogger())

	_, err := uc.Execute(context.Background(), GetTicketQuery{Actor: admin, TicketID: 1})
	assert.True(t, errors.IsInternalError(err))
}
