package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
)

func TestAddCommentUseCase_Execute(t *testing.T) {
	tk := newTicket(t, 1, employee.UserID, uintPtr(technician.UserID))
	var saved *ticket.Comment
	comments := &mockCommentRepository{
		CreateFunc: func(ctx context.Context, c *ticket.Comment) error {
			saved = c
			return c.SetID(7)
		},
	}
	uc := NewAddCommentUseCase(repoWith(tk), comments, testEngine(), testLogger())

	result, err := uc.Execute(context.Background(), AddCommentCommand{Actor: technician, TicketID: 1, Content: "On my way"})
	require.NoError(t, err)
	require.NotNil(t, saved)

	assert.Equal(t, uint(7), result.ID)
	assert.Equal(t, uint(1), result.TicketID)
	assert.Equal(t, technician.UserID, result.CreatorID)
	assert.Equal(t, "On my way", result.Content)
}

func TestAddCommentUseCase_Errors(t *testing.T) {
	tk := newTicket(t, 1, employee.UserID, nil)
	uc := NewAddCommentUseCase(repoWith(tk), &mockCommentRepository{}, testEngine(), testLogger())

	_, err := uc.Execute(context.Background(), AddCommentCommand{Actor: otherEmployee, TicketID: 1, Content: "hi"})
	assert.True(t, errors.IsForbiddenError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{Actor: otherEmployee, TicketID: 2, Content: "hi"})
	assert.True(t, errors.IsNotFoundError(err))

	_, err = uc.Execute(context.Background(), AddCommentCommand{Actor: employee, TicketID: 1, Content: "  "})
	assert.True(t, errors.IsValidationError(err))
}

func TestListCommentsUseCase_Execute(t *testing.T) {
	tk := newTicket(t, 1, employee.UserID, nil)
	ts := time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)
	c1, err := ticket.ReconstructComment(1, 1, employee.UserID, "first", ts)
	require.NoError(t, err)
	c2, err := ticket.ReconstructComment(2, 1, admin.UserID, "second", ts.Add(time.Minute))
	require.NoError(t, err)

	comments := &mockCommentRepository{
		ListByTicketIDFunc: func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
			assert.Equal(t, uint(1), ticketID)
			return []*ticket.Comment{c1, c2}, nil
		},
	}
	uc := NewListCommentsUseCase(repoWith(tk), comments, testEngine(), testLogger())

	result, err := uc.Execute(context.Background(), ListCommentsQuery{Actor: employee, TicketID: 1})
	require.NoError(t, err)
	require.Len(t, result, 2)
	assert.Equal(t, "first", result[0].Content)
	assert.Equal(t, "second", result[1].Content)

	_, err = uc.Execute(context.Background(), ListCommentsQuery{Actor: technician, TicketID: 1})
	assert.True(t, errors.IsForbiddenError(err))
}
