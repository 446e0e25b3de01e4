package usecases

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	uservo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

type mockTicketRepository struct {
	CreateFunc          func(ctx context.Context, t *ticket.Ticket) error
	UpdateFunc          func(ctx context.Context, t *ticket.Ticket) error
	DeleteFunc          func(ctx context.Context, ticketID uint) error
	GetByIDFunc         func(ctx context.Context, ticketID uint) (*ticket.Ticket, error)
	ListFunc            func(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error)
	CountFunc           func(ctx context.Context) (int64, error)
	CountByStatusFunc   func(ctx context.Context) (map[vo.TicketStatus]int64, error)
	CountByPriorityFunc func(ctx context.Context) (map[vo.Priority]int64, error)

	updateCalls int
	deleteCalls int
}

func (m *mockTicketRepository) Create(ctx context.Context, t *ticket.Ticket) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, t)
	}
	return t.SetID(1)
}

func (m *mockTicketRepository) Update(ctx context.Context, t *ticket.Ticket) error {
	m.updateCalls++
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, t)
	}
	return nil
}

func (m *mockTicketRepository) Delete(ctx context.Context, ticketID uint) error {
	m.deleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, ticketID)
	}
	return nil
}

func (m *mockTicketRepository) GetByID(ctx context.Context, ticketID uint) (*ticket.Ticket, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, ticketID)
	}
	return nil, nil
}

func (m *mockTicketRepository) List(ctx context.Context, filter ticket.TicketFilter) ([]*ticket.Ticket, int64, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx, filter)
	}
	return nil, 0, nil
}

func (m *mockTicketRepository) Count(ctx context.Context) (int64, error) {
	if m.CountFunc != nil {
		return m.CountFunc(ctx)
	}
	return 0, nil
}

func (m *mockTicketRepository) CountByStatus(ctx context.Context) (map[vo.TicketStatus]int64, error) {
	if m.CountByStatusFunc != nil {
		return m.CountByStatusFunc(ctx)
	}
	return map[vo.TicketStatus]int64{}, nil
}

func (m *mockTicketRepository) CountByPriority(ctx context.Context) (map[vo.Priority]int64, error) {
	if m.CountByPriorityFunc != nil {
		return m.CountByPriorityFunc(ctx)
	}
	return map[vo.Priority]int64{}, nil
}

type mockCommentRepository struct {
	CreateFunc         func(ctx context.Context, comment *ticket.Comment) error
	ListByTicketIDFunc func(ctx context.Context, ticketID uint) ([]*ticket.Comment, error)
}

func (m *mockCommentRepository) Create(ctx context.Context, comment *ticket.Comment) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, comment)
	}
	return comment.SetID(1)
}

func (m *mockCommentRepository) ListByTicketID(ctx context.Context, ticketID uint) ([]*ticket.Comment, error) {
	if m.ListByTicketIDFunc != nil {
		return m.ListByTicketIDFunc(ctx, ticketID)
	}
	return nil, nil
}

type mockUserRepository struct {
	GetByIDFunc func(ctx context.Context, id uint) (*user.User, error)
}

func (m *mockUserRepository) Create(ctx context.Context, u *user.User) error { return nil }

func (m *mockUserRepository) GetByID(ctx context.Context, id uint) (*user.User, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	return nil, nil
}

func (m *mockUserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	return nil, nil
}

func (m *mockUserRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return false, nil
}

// mockTxRunner runs fn inline and counts transactions.
type mockTxRunner struct {
	calls int
}

func (m *mockTxRunner) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	m.calls++
	return fn(ctx)
}

type mockNotifier struct {
	mu      sync.Mutex
	notices []ticket.AssignmentNotice
	err     error
}

func (m *mockNotifier) NotifyAssigned(_ context.Context, notice ticket.AssignmentNotice) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.notices = append(m.notices, notice)
	return m.err
}

// Fixture ids: employee 1, technician 2, admin 3, second employee 4.
var (
	employee      = access.Subject{UserID: 1, Role: uservo.RoleEmployee}
	technician    = access.Subject{UserID: 2, Role: uservo.RoleTechnician}
	admin         = access.Subject{UserID: 3, Role: uservo.RoleAdmin}
	otherEmployee = access.Subject{UserID: 4, Role: uservo.RoleEmployee}
)

func testEngine() *access.Engine {
	return access.NewEngine(access.MustDefaultPolicy())
}

func testLogger() logger.Interface {
	return logger.NewDiscardLogger()
}

func uintPtr(v uint) *uint { return &v }

func strPtr(s string) *string { return &s }

func newTicket(t *testing.T, id, creatorID uint, technicianID *uint) *ticket.Ticket {
	t.Helper()
	ts := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	tk, err := ticket.ReconstructTicket(id, "Laptop won't boot", "Black screen after update", vo.StatusOpen, vo.PriorityMedium, creatorID, technicianID, ts, ts)
	require.NoError(t, err)
	return tk
}

func newUser(t *testing.T, id uint, email string, role uservo.Role) *user.User {
	t.Helper()
	name, err := uservo.NewName("User " + email)
	require.NoError(t, err)
	addr, err := uservo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.ReconstructUser(id, name, addr, "$2a$10$hash", role, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	return u
}

func repoWith(tickets ...*ticket.Ticket) *mockTicketRepository {
	byID := make(map[uint]*ticket.Ticket, len(tickets))
	for _, tk := range tickets {
		byID[tk.ID()] = tk
	}
	return &mockTicketRepository{
		GetByIDFunc: func(ctx context.Context, id uint) (*ticket.Ticket, error) {
			return byID[id], nil
		},
	}
}
