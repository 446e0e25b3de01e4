package ticket

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orris-inc/helpdesk/internal/domain/access"
	vo "github.com/orris-inc/helpdesk/internal/domain/ticket/valueobjects"
	"github.com/orris-inc/helpdesk/internal/shared/biztime"
)

func uintPtr(v uint) *uint { return &v }

func priorityPtr(p vo.Priority) *vo.Priority { return &p }

func newValidTicket(t *testing.T) *Ticket {
	t.Helper()
	tk, err := NewTicket("Printer jammed", "The 3rd floor printer eats paper", nil, 10)
	require.NoError(t, err)
	return tk
}

func TestNewTicket_Defaults(t *testing.T) {
	tk := newValidTicket(t)

	assert.Zero(t, tk.ID())
	assert.Equal(t, vo.StatusOpen, tk.Status())
	assert.Equal(t, vo.PriorityMedium, tk.Priority())
	assert.Equal(t, uint(10), tk.CreatorID())
	assert.Nil(t, tk.TechnicianID())
	assert.False(t, tk.IsAssigned())
	assert.Equal(t, tk.CreatedAt(), tk.UpdatedAt())
}

func TestNewTicket_ExplicitPriority(t *testing.T) {
	tk, err := NewTicket("VPN down", "Nobody can connect", priorityPtr(vo.PriorityCritical), 3)
	require.NoError(t, err)
	assert.Equal(t, vo.PriorityCritical, tk.Priority())
	assert.Equal(t, vo.StatusOpen, tk.Status())
}

func TestNewTicket_Invalid(t *testing.T) {
	tests := []struct {
		name     string
		title    string
		desc     string
		priority *vo.Priority
		creator  uint
		errMsg   string
	}{
		{"blank title", "   ", "desc", nil, 1, "title is required"},
		{"long title", strings.Repeat("t", MaxTitleLength+1), "desc", nil, 1, "title exceeds"},
		{"empty description", "title", "", nil, 1, "description is required"},
		{"long description", "title", strings.Repeat("d", MaxDescriptionLength+1), nil, 1, "description exceeds"},
		{"bad priority", "title", "desc", priorityPtr(vo.Priority("urgent")), 1, "invalid priority"},
		{"no creator", "title", "desc", nil, 0, "creator ID is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTicket(tt.title, tt.desc, tt.priority, tt.creator)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestTicket_MutatorsRefreshUpdatedAt(t *testing.T) {
	start := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	now := start
	restore := biztime.SetClock(func() time.Time { return now })
	defer restore()

	tk := newValidTicket(t)
	created := tk.CreatedAt()

	now = start.Add(time.Minute)
	require.NoError(t, tk.ChangeStatus(vo.StatusInProgress))
	assert.Equal(t, now, tk.UpdatedAt())

	now = start.Add(2 * time.Minute)
	require.NoError(t, tk.ChangePriority(vo.PriorityHigh))
	require.NoError(t, tk.Rename("Printer on fire"))
	require.NoError(t, tk.Describe("Smoke everywhere"))
	assert.True(t, tk.UpdatedAt().After(start.Add(time.Minute)))

	assert.Equal(t, created, tk.CreatedAt())
	assert.Equal(t, "Printer on fire", tk.Title())
	assert.Equal(t, vo.PriorityHigh, tk.Priority())
}

func TestTicket_UpdatedAtIsMonotonicWithFrozenClock(t *testing.T) {
	frozen := time.Date(2024, 6, 1, 8, 0, 0, 0, time.UTC)
	restore := biztime.SetClock(func() time.Time { return frozen })
	defer restore()

	tk := newValidTicket(t)
	require.NoError(t, tk.ChangeStatus(vo.StatusResolved))
	assert.True(t, tk.UpdatedAt().After(tk.CreatedAt()))
}

func TestTicket_ChangeStatus_AnyValidStatus(t *testing.T) {
	tk := newValidTicket(t)
	for _, s := range []vo.TicketStatus{vo.StatusClosed, vo.StatusOpen, vo.StatusResolved, vo.StatusInProgress} {
		require.NoError(t, tk.ChangeStatus(s))
		assert.Equal(t, s, tk.Status())
	}
	assert.Error(t, tk.ChangeStatus(vo.TicketStatus("archived")))
}

func TestTicket_InvalidMutationsKeepState(t *testing.T) {
	tk := newValidTicket(t)
	updated := tk.UpdatedAt()

	assert.Error(t, tk.Rename(""))
	assert.Error(t, tk.Describe(" "))
	assert.Error(t, tk.ChangePriority(vo.Priority("none")))
	assert.Equal(t, "Printer jammed", tk.Title())
	assert.Equal(t, updated, tk.UpdatedAt())
}

func TestTicket_AssignTechnician(t *testing.T) {
	tk := newValidTicket(t)

	require.NoError(t, tk.AssignTechnician(uintPtr(7)))
	require.NotNil(t, tk.TechnicianID())
	assert.Equal(t, uint(7), *tk.TechnicianID())

	// returned pointer is a copy
	*tk.TechnicianID() = 99
	assert.Equal(t, uint(7), *tk.TechnicianID())

	assert.Equal(t, access.Target{CreatorID: 10, TechnicianID: uintPtr(7)}, tk.AccessTarget())

	require.NoError(t, tk.AssignTechnician(nil))
	assert.Nil(t, tk.TechnicianID())

	assert.Error(t, tk.AssignTechnician(uintPtr(0)))
}

func TestTicket_SetID(t *testing.T) {
	tk := newValidTicket(t)
	assert.Error(t, tk.SetID(0))
	require.NoError(t, tk.SetID(5))
	assert.Error(t, tk.SetID(6))
	assert.Equal(t, uint(5), tk.ID())
}

func TestReconstructTicket(t *testing.T) {
	now := time.Now().UTC()
	tk, err := ReconstructTicket(1, "t", "d", vo.StatusResolved, vo.PriorityLow, 2, uintPtr(3), now, now)
	require.NoError(t, err)
	assert.Equal(t, vo.StatusResolved, tk.Status())
	assert.Equal(t, uint(3), *tk.TechnicianID())

	_, err = ReconstructTicket(0, "t", "d", vo.StatusOpen, vo.PriorityLow, 2, nil, now, now)
	assert.Error(t, err)
	_, err = ReconstructTicket(1, "t", "d", vo.TicketStatus("x"), vo.PriorityLow, 2, nil, now, now)
	assert.Error(t, err)
	_, err = ReconstructTicket(1, "t", "d", vo.StatusOpen, vo.Priority("x"), 2, nil, now, now)
	assert.Error(t, err)
}
