package repository

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"gorm.io/gorm"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/mappers"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/constants"
	"github.com/orris-inc/helpdesk/internal/shared/db"
)

// allowedTicketOrderByFields defines the whitelist of allowed ORDER BY fields
// to prevent SQL injection attacks.
var allowedTicketOrderByFields = map[string]string{
	"id":         "id",
	"title":      "title",
	"status":     "status",
	"priority":   "priority",
	"created_at": "created_at",
	"updated_at": "updated_at",
}

type TicketRepository struct {
	db     *gorm.DB
	mapper mappers.TicketMapper
}

func NewTicketRepository(db *gorm.DB) *TicketRepository {
	return &TicketRepository{
		db:     db,
		mapper: mappers.NewTicketMapper(),
	}
}

var _ ticket.TicketRepository = (*TicketRepository)(nil)

func (r *TicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save ticket: %w", err)
	}

	return t.SetID(model.ID)
}

// Update writes every mutable column, including a NULL technician.
func (r *TicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	model := r.mapper.ToModel(t)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.TicketModel{}).
		Where("id = ?", model.ID).
		Updates(map[string]interface{}{
			"title":         model.Title,
			"description":   model.Description,
			"status":        model.Status,
			"priority":      model.Priority,
			"technician_id": model.TechnicianID,
			"updated_at":    model.UpdatedAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update ticket: %w", result.Error)
	}

	// Note: RowsAffected may be 0 when updated values are identical to existing values.

	return nil
}

func (r *TicketRepository) GetByID(ctx context.Context, id uint) (*ticket.Ticket, error) {
	var model models.TicketModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find ticket: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

// Delete removes the comments of the ticket and then the ticket in one
// transaction.
func (r *TicketRepository) Delete(ctx context.Context, id uint) error {
	return db.GetTxFromContext(ctx, r.db).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("ticket_id = ?", id).Delete(&models.CommentModel{}).Error; err != nil {
			return fmt.Errorf("failed to delete ticket comments: %w", err)
		}
		if err := tx.Delete(&models.TicketModel{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete ticket: %w", err)
		}
		return nil
	})
}

func (r *TicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	query := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{})

	visible, ok, err := visibilityClause(filter.Visibility)
	if err != nil {
		return nil, 0, err
	}
	if !ok {
		return []*ticket.Ticket{}, 0, nil
	}
	if visible != nil {
		sql, args, err := visible.ToSql()
		if err != nil {
			return nil, 0, fmt.Errorf("failed to build visibility clause: %w", err)
		}
		query = query.Where(sql, args...)
	}

	if filter.Status != nil {
		query = query.Where("status = ?", filter.Status.String())
	}
	if filter.Priority != nil {
		query = query.Where("priority = ?", filter.Priority.String())
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count tickets: %w", err)
	}

	var ticketModels []models.TicketModel
	if err := query.
		Scopes(
			db.OrderBy(filter.SortBy, filter.SortOrder, allowedTicketOrderByFields, "id"),
			db.Paginate(filter.Page, filter.PageSize),
		).
		Find(&ticketModels).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list tickets: %w", err)
	}

	tickets := make([]*ticket.Ticket, 0, len(ticketModels))
	for i := range ticketModels {
		t, err := r.mapper.ToDomain(&ticketModels[i])
		if err != nil {
			return nil, 0, err
		}
		tickets = append(tickets, t)
	}

	return tickets, total, nil
}

// visibilityClause turns the access engine's predicate into a where clause.
// ok is false when nothing can match; a nil clause matches every ticket.
func visibilityClause(v access.Visibility) (clause sq.Sqlizer, ok bool, err error) {
	switch v.Kind {
	case access.VisibleAll:
		return nil, true, nil
	case access.VisibleCreated:
		return sq.Eq{"creator_id": v.UserID}, true, nil
	case access.VisibleAssigned:
		return sq.Eq{"technician_id": v.UserID}, true, nil
	case access.VisibleCreatedOrAssigned:
		return sq.Or{
			sq.Eq{"creator_id": v.UserID},
			sq.Eq{"technician_id": v.UserID},
		}, true, nil
	case access.VisibleNone:
		return nil, false, nil
	default:
		return nil, false, fmt.Errorf("unknown visibility kind %d", v.Kind)
	}
}

func (r *TicketRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := db.GetTxFromContext(ctx, r.db).Model(&models.TicketModel{}).Count(&total).Error; err != nil {
		return 0, fmt.Errorf("failed to count tickets: %w", err)
	}
	return total, nil
}

func (r *TicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	rows, err := r.countGroupedBy(ctx, "status")
	if err != nil {
		return nil, err
	}
	counts := make(map[vo.TicketStatus]int64, len(rows))
	for value, n := range rows {
		counts[vo.TicketStatus(value)] = n
	}
	return counts, nil
}

func (r *TicketRepository) CountByPriority(ctx context.Context) (map[vo.Priority]int64, error) {
	rows, err := r.countGroupedBy(ctx, "priority")
	if err != nil {
		return nil, err
	}
	counts := make(map[vo.Priority]int64, len(rows))
	for value, n := range rows {
		counts[vo.Priority(value)] = n
	}
	return counts, nil
}

type groupCount struct {
	Bucket string
	Total int64
}

// countGroupedBy only accepts the enum columns of the tickets table.
func (r *TicketRepository) countGroupedBy(ctx context.Context, column string) (map[string]int64, error) {
	if column != "status" && column != "priority" {
		return nil, fmt.Errorf("cannot group tickets by %q", column)
	}

	sql, args, err := sq.
		Select(column+" AS bucket", "COUNT(*) AS total").
		From(constants.TableTickets).
		GroupBy(column).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build %s count query: %w", column, err)
	}

	var rows []groupCount
	if err := db.GetTxFromContext(ctx, r.db).Raw(sql, args...).Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to count tickets by %s: %w", column, err)
	}

	counts := make(map[string]int64, len(rows))
	for _, row := range rows {
		counts[row.Bucket] = row.Total
	}
	return counts, nil
}
