package repository

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/orris-inc/helpdesk/internal/domain/ticket"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/domain/user"
	uservo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
	"github.com/orris-inc/helpdesk/internal/infrastructure/persistence/models"
	"github.com/orris-inc/helpdesk/internal/shared/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: gormlogger.Discard})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(models.All()...))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	return db
}

func createTestUser(t *testing.T, repo *UserRepository, email string, role uservo.Role) *user.User {
	t.Helper()
	name, err := uservo.NewName("Test " + string(role))
	require.NoError(t, err)
	addr, err := uservo.NewEmail(email)
	require.NoError(t, err)
	u, err := user.NewUser(name, addr, "$2a$04$hash", role)
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func createTestTicket(t *testing.T, repo *TicketRepository, title string, creatorID uint, technicianID *uint) *ticket.Ticket {
	t.Helper()
	tk, err := ticket.NewTicket(title, "Test description", nil, creatorID)
	require.NoError(t, err)
	if technicianID != nil {
		require.NoError(t, tk.AssignTechnician(technicianID))
	}
	require.NoError(t, repo.Create(context.Background(), tk))
	return tk
}

func ticketIDs(tickets []*ticket.Ticket) []uint {
	ids := make([]uint, 0, len(tickets))
	for _, tk := range tickets {
		ids = append(ids, tk.ID())
	}
	return ids
}

func statusPtr(s vo.TicketStatus) *vo.TicketStatus { return &s }

func uintPtr(v uint) *uint { return &v }

func discardLogger() logger.Interface { return logger.NewDiscardLogger() }

func newUser(name *uservo.Name, email *uservo.Email) (*user.User, error) {
	return user.NewUser(name, email, "$2a$04$hash", uservo.RoleEmployee)
}
