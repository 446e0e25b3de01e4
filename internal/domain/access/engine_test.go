package access

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	vo "github.com/orris-inc/helpdesk/internal/domain/user/valueobjects"
)

func uintPtr(v uint) *uint { return &v }

var (
	admin      = Subject{UserID: 1, Role: vo.RoleAdmin}
	technician = Subject{UserID: 2, Role: vo.RoleTechnician}
	employee   = Subject{UserID: 3, Role: vo.RoleEmployee}
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	return NewEngine(MustDefaultPolicy())
}

func TestRelationOf(t *testing.T) {
	tests := []struct {
		name   string
		target Target
		want   Relation
	}{
		{"unrelated", Target{CreatorID: 9}, RelationNone},
		{"unrelated assigned to other", Target{CreatorID: 9, TechnicianID: uintPtr(8)}, RelationNone},
		{"creator", Target{CreatorID: 2}, RelationCreator},
		{"assignee", Target{CreatorID: 9, TechnicianID: uintPtr(2)}, RelationAssignee},
		{"both", Target{CreatorID: 2, TechnicianID: uintPtr(2)}, RelationCreatorAssignee},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RelationOf(technician, tt.target))
		})
	}
}

func TestScopeAllows(t *testing.T) {
	table := map[Scope][]Relation{
		ScopeAny:           {RelationNone, RelationCreator, RelationAssignee, RelationCreatorAssignee},
		ScopeOwn:           {RelationCreator, RelationCreatorAssignee},
		ScopeAssigned:      {RelationAssignee, RelationCreatorAssignee},
		ScopeOwnOrAssigned: {RelationCreator, RelationAssignee, RelationCreatorAssignee},
		ScopeNone:          {},
	}

	for scope, allowed := range table {
		for _, rel := range AllRelations() {
			assert.Equal(t, contains(allowed, rel), ScopeAllows(scope, rel),
				"scope=%s relation=%s", scope, rel)
		}
	}
}

func contains(rels []Relation, r Relation) bool {
	for _, x := range rels {
		if x == r {
			return true
		}
	}
	return false
}

func TestEngine_TicketVisibility(t *testing.T) {
	e := newTestEngine(t)

	v, err := e.TicketVisibility(admin)
	require.NoError(t, err)
	assert.Equal(t, VisibleAll, v.Kind)

	v, err = e.TicketVisibility(technician)
	require.NoError(t, err)
	assert.Equal(t, VisibleCreatedOrAssigned, v.Kind)
	assert.Equal(t, technician.UserID, v.UserID)

	v, err = e.TicketVisibility(employee)
	require.NoError(t, err)
	assert.Equal(t, VisibleCreated, v.Kind)

	v, err = e.TicketVisibility(Subject{UserID: 4, Role: vo.Role("guest")})
	require.NoError(t, err)
	assert.Equal(t, VisibleNone, v.Kind)
}

func TestVisibility_MatchesReadDecision(t *testing.T) {
	e := newTestEngine(t)
	targets := []Target{
		{CreatorID: 1},
		{CreatorID: 2},
		{CreatorID: 3},
		{CreatorID: 3, TechnicianID: uintPtr(2)},
		{CreatorID: 2, TechnicianID: uintPtr(2)},
		{CreatorID: 9, TechnicianID: uintPtr(8)},
	}

	for _, s := range []Subject{admin, technician, employee} {
		v, err := e.TicketVisibility(s)
		require.NoError(t, err)

		for _, target := range targets {
			canRead, err := e.CanReadTicket(s, target)
			require.NoError(t, err)
			assert.Equal(t, canRead, v.Includes(target), "role=%s target=%+v", s.Role, target)
		}
	}
}

func TestEngine_ReadDecisionTable(t *testing.T) {
	e := newTestEngine(t)
	own := Target{CreatorID: employee.UserID}
	assigned := Target{CreatorID: employee.UserID, TechnicianID: uintPtr(technician.UserID)}
	foreign := Target{CreatorID: 99, TechnicianID: uintPtr(98)}

	tests := []struct {
		name    string
		subject Subject
		target  Target
		want    bool
	}{
		{"admin foreign", admin, foreign, true},
		{"technician assigned", technician, assigned, true},
		{"technician created", technician, Target{CreatorID: technician.UserID}, true},
		{"technician foreign", technician, foreign, false},
		{"technician unassigned own-by-employee", technician, own, false},
		{"employee own", employee, own, true},
		{"employee own but assigned", employee, assigned, true},
		{"employee foreign", employee, foreign, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := e.CanReadTicket(tt.subject, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			comment, err := e.CanComment(tt.subject, tt.target)
			require.NoError(t, err)
			assert.Equal(t, tt.want, comment, "comment follows read")
		})
	}
}

func TestEngine_RoleOnlyDecisions(t *testing.T) {
	e := newTestEngine(t)

	for _, s := range []Subject{admin, technician, employee} {
		canCreate, err := e.CanCreateTicket(s)
		require.NoError(t, err)
		assert.True(t, canCreate, s.Role)

		canDelete, err := e.CanDeleteTicket(s)
		require.NoError(t, err)
		assert.Equal(t, s.Role.IsAdmin(), canDelete, s.Role)

		canStats, err := e.CanViewStats(s)
		require.NoError(t, err)
		assert.Equal(t, s.Role.IsAdmin(), canStats, s.Role)
	}
}

func TestEngine_AuthorizeUpdate(t *testing.T) {
	e := newTestEngine(t)
	assignedToTech := Target{CreatorID: employee.UserID, TechnicianID: uintPtr(technician.UserID)}
	unassigned := Target{CreatorID: employee.UserID}

	tests := []struct {
		name    string
		subject Subject
		target  Target
		fields  UpdateFields
		wantErr error
	}{
		{"admin reassign only", admin, unassigned, UpdateFields{Reassignment: true}, nil},
		{"admin everything", admin, unassigned, UpdateFields{Reassignment: true, Other: true}, nil},
		{"technician assigned edits", technician, assignedToTech, UpdateFields{Other: true}, nil},
		{"technician assigned reassigns", technician, assignedToTech, UpdateFields{Reassignment: true, Other: true}, ErrReassignmentDenied},
		{"technician unassigned edits", technician, unassigned, UpdateFields{Other: true}, ErrUpdateDenied},
		{"technician creator edits", technician, Target{CreatorID: technician.UserID}, UpdateFields{Other: true}, ErrUpdateDenied},
		{"employee own edits", employee, unassigned, UpdateFields{Other: true}, ErrUpdateDenied},
		{"employee reassigns", employee, unassigned, UpdateFields{Reassignment: true}, ErrReassignmentDenied},
		{"empty update", employee, unassigned, UpdateFields{}, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := e.AuthorizeUpdate(tt.subject, tt.target, tt.fields)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

type failingPolicy struct{}

func (failingPolicy) Allowed(vo.Role, Resource, Action, Relation) (bool, error) {
	return false, errors.New("policy store unavailable")
}

func TestEngine_PolicyErrorsPropagate(t *testing.T) {
	e := NewEngine(failingPolicy{})

	_, err := e.CanReadTicket(admin, Target{CreatorID: 1})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "policy store unavailable")

	_, err = e.TicketVisibility(admin)
	assert.Error(t, err)

	err = e.AuthorizeUpdate(admin, Target{CreatorID: 1}, UpdateFields{Other: true})
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUpdateDenied)
}

func TestNewStaticPolicy_RejectsInvalidRules(t *testing.T) {
	_, err := NewStaticPolicy([]Rule{{vo.Role("root"), ResourceTicket, ActionRead, ScopeAny}})
	assert.Error(t, err)

	_, err = NewStaticPolicy([]Rule{{vo.RoleAdmin, ResourceTicket, ActionRead, Scope("everything")}})
	assert.Error(t, err)
}
