// Package tenancy provides the row-level authorization model for the
// system. Every table is declared once with a scoping class and every data
// access is gated by a single pure predicate, so the rules live in one
// place and deny by default.
package tenancy

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Set of operations a statement can perform against a table.
type Operation int

const (
	OpSelect Operation = iota + 1
	OpInsert
	OpUpdate
	OpDelete
)

// Operations lists every operation for exhaustive checks.
var Operations = []Operation{OpSelect, OpInsert, OpUpdate, OpDelete}

// String returns the name of the operation.
func (op Operation) String() string {
	switch op {
	case OpSelect:
		return "select"
	case OpInsert:
		return "insert"
	case OpUpdate:
		return "update"
	case OpDelete:
		return "delete"
	}

	return "unknown"
}

// =============================================================================

// Class identifies how rows in a table are bound to a workspace.
type Class int

const (
	// DirectlyScoped tables carry a workspace_id column compared against
	// the principal's memberships.
	DirectlyScoped Class = iota + 1

	// IndirectlyScoped tables carry a client_id column and reach their
	// workspace through the owning client row.
	IndirectlyScoped

	// PublicInsertOnly tables are workspace owned but accept inserts from
	// the anonymous principal. All other anonymous operations are denied.
	PublicInsertOnly

	// SingletonPerTenant tables hold exactly one row per workspace and are
	// otherwise scoped like a DirectlyScoped table.
	SingletonPerTenant
)

// Table declares a resource table and its scoping class. Adding a table to
// the system is one declaration here.
type Table struct {
	Name       string
	Class      Class
	JoinColumn string
}

var (
	WorkspaceMembers  = Table{Name: "workspace_members", Class: DirectlyScoped}
	WorkspaceSettings = Table{Name: "workspace_settings", Class: SingletonPerTenant}
	Subscriptions     = Table{Name: "subscriptions", Class: DirectlyScoped}
	AdminUsers        = Table{Name: "admin_users", Class: DirectlyScoped}
	Clients           = Table{Name: "clients", Class: DirectlyScoped}
	Projects          = Table{Name: "projects", Class: DirectlyScoped}
	Tasks             = Table{Name: "tasks", Class: DirectlyScoped}
	TaskAttachments   = Table{Name: "task_attachments", Class: DirectlyScoped}
	Notes             = Table{Name: "notes", Class: DirectlyScoped}
	TimeEntries       = Table{Name: "time_entries", Class: DirectlyScoped}
	Documents         = Table{Name: "documents", Class: DirectlyScoped}
	Invoices          = Table{Name: "invoices", Class: DirectlyScoped}
	InvoiceLineItems  = Table{Name: "invoice_line_items", Class: DirectlyScoped}
	IntakeLinks       = Table{Name: "intake_links", Class: DirectlyScoped}
	Leads             = Table{Name: "leads", Class: PublicInsertOnly}
	ClientUsers       = Table{Name: "client_users", Class: IndirectlyScoped, JoinColumn: "client_id"}
	ClientInvitations = Table{Name: "client_invitations", Class: IndirectlyScoped, JoinColumn: "client_id"}
	Credentials       = Table{Name: "credentials", Class: IndirectlyScoped, JoinColumn: "client_id"}
)

// Tables lists every declared table for exhaustive checks.
var Tables = []Table{
	WorkspaceMembers, WorkspaceSettings, Subscriptions, AdminUsers,
	Clients, Projects, Tasks, TaskAttachments, Notes, TimeEntries,
	Documents, Invoices, InvoiceLineItems, IntakeLinks, Leads,
	ClientUsers, ClientInvitations, Credentials,
}

// =============================================================================

// Allow is the single predicate gating every data access. The workspaceID
// is the workspace owning the target row. For inserts the caller passes the
// workspace id the new row would carry, so writing into a foreign workspace
// fails the same membership check as reading from one. For indirectly
// scoped tables the caller resolves the owning workspace through the client
// row first and a missing client denies.
func Allow(p Principal, tbl Table, op Operation, workspaceID uuid.UUID) bool {
	if workspaceID == uuid.Nil {
		return false
	}

	if p.IsAnonymous() {
		return tbl.Class == PublicInsertOnly && op == OpInsert
	}

	switch tbl.Class {
	case DirectlyScoped, SingletonPerTenant, PublicInsertOnly:
		return p.Member(workspaceID)

	case IndirectlyScoped:
		return p.Member(workspaceID)
	}

	return false
}

// AllowClient gates access to client-scoped rows for portal principals. A
// workspace member reaches the row through the ordinary membership check. A
// portal user reaches it read-only through a grant for that exact client.
func AllowClient(p Principal, tbl Table, op Operation, clientID uuid.UUID, workspaceID uuid.UUID) bool {
	if tbl.Class != IndirectlyScoped {
		return false
	}

	if Allow(p, tbl, op, workspaceID) {
		return true
	}

	if op != OpSelect {
		return false
	}

	grantWS, exists := p.ClientGrant(clientID)
	return exists && grantWS == workspaceID
}

// =============================================================================

// ScopeClause returns a SQL fragment and its named arguments constraining a
// statement to rows the principal may see in the specified table. A
// principal with nothing to see yields a FALSE clause so the statement
// matches zero rows instead of being skipped.
func ScopeClause(p Principal, tbl Table) (string, map[string]any) {
	wsIDs := p.WorkspaceIDs()
	if len(wsIDs) == 0 {
		return "FALSE", map[string]any{}
	}

	names := make([]string, len(wsIDs))
	args := make(map[string]any, len(wsIDs))
	for i, wsID := range wsIDs {
		key := fmt.Sprintf("tenancy_ws_%d", i)
		names[i] = ":" + key
		args[key] = wsID
	}
	in := strings.Join(names, ", ")

	switch tbl.Class {
	case DirectlyScoped, SingletonPerTenant, PublicInsertOnly:
		return fmt.Sprintf("workspace_id IN (%s)", in), args

	case IndirectlyScoped:
		clause := fmt.Sprintf("%s IN (SELECT id FROM clients WHERE workspace_id IN (%s))", tbl.JoinColumn, in)
		return clause, args
	}

	return "FALSE", map[string]any{}
}
