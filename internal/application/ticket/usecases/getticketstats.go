package usecases

import (
	"context"

	"github.com/orris-inc/helpdesk/internal/application/ticket/dto"
	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	"github.com/orris-inc/helpdesk/internal/shared/errors"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type GetTicketStatsQuery struct {
	Actor access.Subject
}

type GetTicketStatsUseCase struct {
	ticketRepo ticket.TicketRepository
	engine     *access.Engine
	logger     logger.Interface
}

func NewGetTicketStatsUseCase(
	ticketRepo ticket.TicketRepository,
	engine *access.Engine,
	logger logger.Interface,
) *GetTicketStatsUseCase {
	return &GetTicketStatsUseCase{
		ticketRepo: ticketRepo,
		engine:     engine,
		logger:     logger,
	}
}

func (uc *GetTicketStatsUseCase) Execute(ctx context.Context, query GetTicketStatsQuery) (*dto.TicketStatsDTO, error) {
	uc.logger.Infow("executing get ticket stats use case", "user_id", query.Actor.UserID)

	allowed, err := uc.engine.CanViewStats(query.Actor)
	if err := checkGate(uc.logger, query.Actor, allowed, err); err != nil {
		return nil, err
	}

	total, err := uc.ticketRepo.Count(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets", "error", err)
		return nil, errors.NewInternalError("failed to get ticket stats")
	}

	byStatus, err := uc.ticketRepo.CountByStatus(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by status", "error", err)
		return nil, errors.NewInternalError("failed to get ticket stats")
	}

	byPriority, err := uc.ticketRepo.CountByPriority(ctx)
	if err != nil {
		uc.logger.Errorw("failed to count tickets by priority", "error", err)
		return nil, errors.NewInternalError("failed to get ticket stats")
	}

	stats := dto.NewTicketStatsDTO(total, byStatus, byPriority)

	uc.logger.Infow("ticket stats retrieved successfully", "total", stats.TotalTickets)
	return stats, nil
}
