// Package taskdb contains task related CRUD functionality.
package taskdb

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/domain/taskbus"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/sqldb"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/business/sdk/tenancy"
	"github.com/mahmoudsheikh94/projoflow-selfhosted/foundation/logger"
)

// Store manages the set of APIs for task database access.
type Store struct {
	log *logger.Logger
	db  sqlx.ExtContext
}

// NewStore constructs the api for data access.
func NewStore(log *logger.Logger, db *sqlx.DB) *Store {
	return &Store{
		log: log,
		db:  db,
	}
}

// NewWithTx constructs a new Store value replacing the sqlx DB
// value with a sqlx DB value that is currently inside a transaction.
func (s *Store) NewWithTx(tx sqldb.CommitRollbacker) (taskbus.Storer, error) {
	ec, err := sqldb.GetExtContext(tx)
	if err != nil {
		return nil, err
	}

	store := Store{
		log: s.log,
		db:  ec,
	}

	return &store, nil
}

// Create inserts a new task into the database.
func (s *Store) Create(ctx context.Context, tsk taskbus.Task) error {
	const q = `
	INSERT INTO tasks
		(id, workspace_id, project_id, title, description, status, priority, assignee_id, due_date, date_created, date_updated)
	VALUES
		(:id, :workspace_id, :project_id, :title, :description, :status, :priority, :assignee_id, :due_date, :date_created, :date_updated)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBTask(tsk)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// Update replaces a task document in the database and reports the rows
// affected. A cross-tenant id affects zero rows.
func (s *Store) Update(ctx context.Context, tsk taskbus.Task) (int64, error) {
	const q = `
	UPDATE
		tasks
	SET
		title = :title,
		description = :description,
		status = :status,
		priority = :priority,
		assignee_id = :assignee_id,
		due_date = :due_date,
		date_updated = :date_updated
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBTask(tsk))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// Delete removes a task from the database and reports the rows affected.
func (s *Store) Delete(ctx context.Context, tsk taskbus.Task) (int64, error) {
	const q = `
	DELETE FROM
		tasks
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBTask(tsk))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryByProject retrieves the tasks of a project. The statement carries
// both the workspace filter and the principal scope clause.
func (s *Store) QueryByProject(ctx context.Context, p tenancy.Principal, workspaceID uuid.UUID, projectID uuid.UUID) ([]taskbus.Task, error) {
	scope, data := tenancy.ScopeClause(p, tenancy.Tasks)
	data["workspace_id"] = workspaceID
	data["project_id"] = projectID

	const q = `
	SELECT
		id, workspace_id, project_id, title, description, status, priority, assignee_id, due_date, date_created, date_updated
	FROM
		tasks
	WHERE
		workspace_id = :workspace_id AND project_id = :project_id AND `

	buf := bytes.NewBufferString(q)
	buf.WriteString(scope)
	buf.WriteString(" ORDER BY date_created")

	var dbTsks []taskDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, buf.String(), data, &dbTsks); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusTasks(dbTsks), nil
}

// QueryByID gets the specified task scoped to a workspace.
func (s *Store) QueryByID(ctx context.Context, workspaceID uuid.UUID, taskID uuid.UUID) (taskbus.Task, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          taskID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, project_id, title, description, status, priority, assignee_id, due_date, date_created, date_updated
	FROM
		tasks
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbTsk taskDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbTsk); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return taskbus.Task{}, fmt.Errorf("db: %w", taskbus.ErrNotFound)
		}
		return taskbus.Task{}, fmt.Errorf("db: %w", err)
	}

	return toBusTask(dbTsk), nil
}

// CreateAttachment inserts a new attachment into the database.
func (s *Store) CreateAttachment(ctx context.Context, att taskbus.Attachment) error {
	const q = `
	INSERT INTO task_attachments
		(id, workspace_id, task_id, file_name, file_url, size_bytes, date_created)
	VALUES
		(:id, :workspace_id, :task_id, :file_name, :file_url, :size_bytes, :date_created)`

	if err := sqldb.NamedExecContext(ctx, s.log, s.db, q, toDBAttachment(att)); err != nil {
		return fmt.Errorf("namedexeccontext: %w", err)
	}

	return nil
}

// DeleteAttachment removes an attachment and reports the rows affected.
func (s *Store) DeleteAttachment(ctx context.Context, att taskbus.Attachment) (int64, error) {
	const q = `
	DELETE FROM
		task_attachments
	WHERE
		id = :id AND workspace_id = :workspace_id`

	affected, err := sqldb.NamedExecContextAffected(ctx, s.log, s.db, q, toDBAttachment(att))
	if err != nil {
		return 0, fmt.Errorf("namedexeccontext: %w", err)
	}

	return affected, nil
}

// QueryAttachments retrieves the attachments of a task scoped to a
// workspace.
func (s *Store) QueryAttachments(ctx context.Context, workspaceID uuid.UUID, taskID uuid.UUID) ([]taskbus.Attachment, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		TaskID      string `db:"task_id"`
	}{
		WorkspaceID: workspaceID.String(),
		TaskID:      taskID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, task_id, file_name, file_url, size_bytes, date_created
	FROM
		task_attachments
	WHERE
		task_id = :task_id AND workspace_id = :workspace_id
	ORDER BY
		date_created`

	var dbAtts []attachmentDB
	if err := sqldb.NamedQuerySlice(ctx, s.log, s.db, q, data, &dbAtts); err != nil {
		return nil, fmt.Errorf("namedqueryslice: %w", err)
	}

	return toBusAttachments(dbAtts), nil
}

// QueryAttachmentByID gets the specified attachment scoped to a
// workspace.
func (s *Store) QueryAttachmentByID(ctx context.Context, workspaceID uuid.UUID, attachmentID uuid.UUID) (taskbus.Attachment, error) {
	data := struct {
		WorkspaceID string `db:"workspace_id"`
		ID          string `db:"id"`
	}{
		WorkspaceID: workspaceID.String(),
		ID:          attachmentID.String(),
	}

	const q = `
	SELECT
		id, workspace_id, task_id, file_name, file_url, size_bytes, date_created
	FROM
		task_attachments
	WHERE
		id = :id AND workspace_id = :workspace_id`

	var dbAtt attachmentDB
	if err := sqldb.NamedQueryStruct(ctx, s.log, s.db, q, data, &dbAtt); err != nil {
		if errors.Is(err, sqldb.ErrDBNotFound) {
			return taskbus.Attachment{}, fmt.Errorf("db: %w", taskbus.ErrNotFound)
		}
		return taskbus.Attachment{}, fmt.Errorf("db: %w", err)
	}

	return toBusAttachment(dbAtt), nil
}
