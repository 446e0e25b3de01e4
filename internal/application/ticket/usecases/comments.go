package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type AddCommentCommand struct {
	Actor    access.Subject
	TicketID uint
	Content  string
}

type AddCommentUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	engine      *access.Engine
	logger      logger.Interface
}

func NewAddCommentUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	engine *access.Engine,
	logger logger.Interface,
) *AddCommentUseCase {
	return &AddCommentUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		engine:      engine,
		logger:      logger,
	}
}

func (uc *AddCommentUseCase) Execute(ctx context.Context, cmd AddCommentCommand) (*dto.CommentDTO, error) {
	uc.logger.Infow("executing add comment use case", "ticket_id", cmd.TicketID, "user_id", cmd.Actor.UserID)

	t, err := visibleTicket(ctx, uc.ticketRepo, uc.logger, cmd.Actor, cmd.TicketID, uc.engine.CanComment)
	if err != nil {
		return nil, err
	}

	comment, err := ticket.NewComment(t.ID(), cmd.Actor.UserID, cmd.Content)
	if err != nil {
		return nil, errors.NewValidationError(err.Error())
	}

	if err := uc.commentRepo.Create(ctx, comment); err != nil {
		uc.logger.Errorw("failed to save comment", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to save comment")
	}

	uc.logger.Infow("comment added successfully", "ticket_id", t.ID(), "comment_id", comment.ID())
	return dto.ToCommentDTO(comment), nil
}

type ListCommentsQuery struct {
	Actor    access.Subject
	TicketID uint
}

type ListCommentsUseCase struct {
	ticketRepo  ticket.TicketRepository
	commentRepo ticket.CommentRepository
	engine      *access.Engine
	logger      logger.Interface
}

func NewListCommentsUseCase(
	ticketRepo ticket.TicketRepository,
	commentRepo ticket.CommentRepository,
	engine *access.Engine,
	logger logger.Interface,
) *ListCommentsUseCase {
	return &ListCommentsUseCase{
		ticketRepo:  ticketRepo,
		commentRepo: commentRepo,
		engine:      engine,
		logger:      logger,
	}
}

func (uc *ListCommentsUseCase) Execute(ctx context.Context, query ListCommentsQuery) ([]*dto.CommentDTO, error) {
	t, err := visibleTicket(ctx, uc.ticketRepo, uc.logger, query.Actor, query.TicketID, uc.engine.CanComment)
	if err != nil {
		return nil, err
	}

	comments, err := uc.commentRepo.ListByTicketID(ctx, t.ID())
	if err != nil {
		uc.logger.Errorw("failed to list comments", "ticket_id", t.ID(), "error", err)
		return nil, errors.NewInternalError("failed to list comments")
	}

	return dto.ToCommentDTOs(comments), nil
}
