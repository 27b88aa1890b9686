package sqliteadapter

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"

	"github.com/mattn/go-sqlite3"
)

// timeLayout is fixed width so that text ordering matches time ordering.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

const clientViewColumns = `c.id, c.name, c.executive_id, c.proposal_sent, c.created_at,
	COALESCE(e.name, ''), COALESCE(e.color, '')`

// Repository implements the record store over database/sql. The schema comes
// from the goose migrations in internal/platform/db.
type Repository struct {
	db     *sql.DB
	logger *slog.Logger
}

func NewRepository(db *sql.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

func (r *Repository) ListExecutives(ctx context.Context) ([]entities.Executive, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, color, created_at FROM executives ORDER BY id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.Executive
	for rows.Next() {
		executive, err := scanExecutive(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, executive)
	}
	return items, rows.Err()
}

func (r *Repository) GetExecutive(ctx context.Context, id int64) (entities.Executive, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, color, created_at FROM executives WHERE id = ?`, id)
	executive, err := scanExecutive(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Executive{}, domainerrors.ErrExecutiveNotFound
		}
		return entities.Executive{}, err
	}
	return executive, nil
}

func (r *Repository) CreateExecutive(ctx context.Context, input ports.NewExecutive) (entities.Executive, error) {
	createdAt := input.CreatedAt.UTC()
	result, err := r.db.ExecContext(ctx,
		`INSERT INTO executives (name, name_key, color, created_at) VALUES (?, ?, ?, ?)`,
		input.Name, input.NameKey, input.Color, formatTime(createdAt))
	if err != nil {
		if isUniqueViolation(err) {
			return entities.Executive{}, domainerrors.ErrExecutiveExists
		}
		return entities.Executive{}, err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.Executive{}, err
	}
	return entities.Executive{
		ID:        id,
		Name:      input.Name,
		Color:     input.Color,
		CreatedAt: createdAt,
	}, nil
}

// DeleteExecutive runs the last-executive check and the cascade in one
// transaction. The foreign key also cascades; the explicit delete keeps the
// removed count observable.
func (r *Repository) DeleteExecutive(ctx context.Context, id int64) error {
	return r.withTx(ctx, func(tx *sql.Tx) error {
		var total, found int
		if err := tx.QueryRowContext(ctx,
			`SELECT COUNT(*), COALESCE(SUM(CASE WHEN id = ? THEN 1 ELSE 0 END), 0) FROM executives`, id,
		).Scan(&total, &found); err != nil {
			return err
		}
		if found == 0 {
			return domainerrors.ErrExecutiveNotFound
		}
		if total <= 1 {
			return domainerrors.ErrLastExecutive
		}

		removed, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE executive_id = ?`, id)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM executives WHERE id = ?`, id); err != nil {
			return err
		}

		count, _ := removed.RowsAffected()
		r.logger.Debug("executive deleted from sqlite",
			"event", "sqlite_delete_executive",
			"module", "sales-ops/client-distribution",
			"layer", "adapter",
			"executive_id", id,
			"removed_clients", count,
		)
		return nil
	})
}

// ListClients filters by executive and proposal state in SQL. The text query
// is matched in Go because SQLite's LOWER only folds ASCII.
func (r *Repository) ListClients(ctx context.Context, filter ports.ClientFilter) ([]entities.ClientView, error) {
	var (
		conditions []string
		args       []any
	)
	if filter.ExecutiveID > 0 {
		conditions = append(conditions, "c.executive_id = ?")
		args = append(args, filter.ExecutiveID)
	}
	if filter.ProposalSent != nil {
		conditions = append(conditions, "c.proposal_sent = ?")
		args = append(args, *filter.ProposalSent)
	}

	query := `SELECT ` + clientViewColumns + `
		FROM clients AS c
		LEFT JOIN executives AS e ON e.id = c.executive_id`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY c.created_at DESC, c.id DESC"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	needle := strings.ToLower(strings.TrimSpace(filter.Query))
	items := make([]entities.ClientView, 0)
	for rows.Next() {
		view, err := scanClientView(rows)
		if err != nil {
			return nil, err
		}
		if needle != "" &&
			!strings.Contains(strings.ToLower(view.Name), needle) &&
			!strings.Contains(strings.ToLower(view.ExecutiveName), needle) {
			continue
		}
		items = append(items, view)
	}
	return items, rows.Err()
}

func (r *Repository) ListClientsByExecutive(ctx context.Context, executiveID int64) ([]entities.Client, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, executive_id, proposal_sent, created_at
		FROM clients WHERE executive_id = ?
		ORDER BY created_at DESC, id DESC`, executiveID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []entities.Client
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, client)
	}
	return items, rows.Err()
}

func (r *Repository) GetClient(ctx context.Context, id int64) (entities.Client, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, executive_id, proposal_sent, created_at FROM clients WHERE id = ?`, id)
	client, err := scanClient(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entities.Client{}, domainerrors.ErrClientNotFound
		}
		return entities.Client{}, err
	}
	return client, nil
}

func (r *Repository) CreateClient(ctx context.Context, input ports.NewClient) (entities.Client, error) {
	var client entities.Client
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireExecutives(ctx, tx, []int64{input.ExecutiveID}); err != nil {
			return err
		}
		created, inserted, err := insertClient(ctx, tx,
			`INSERT INTO clients (name, name_key, executive_id, proposal_sent, created_at) VALUES (?, ?, ?, ?, ?)`,
			input)
		if err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrClientExists
			}
			return err
		}
		if !inserted {
			return domainerrors.ErrClientExists
		}
		client = created
		return nil
	})
	if err != nil {
		return entities.Client{}, err
	}
	return client, nil
}

func (r *Repository) BulkCreateClients(ctx context.Context, inputs []ports.NewClient) ([]entities.Client, error) {
	if len(inputs) == 0 {
		return []entities.Client{}, nil
	}

	executiveIDs := make([]int64, 0, 1)
	seen := make(map[int64]struct{}, 1)
	for _, input := range inputs {
		if _, ok := seen[input.ExecutiveID]; !ok {
			seen[input.ExecutiveID] = struct{}{}
			executiveIDs = append(executiveIDs, input.ExecutiveID)
		}
	}

	created := make([]entities.Client, 0, len(inputs))
	err := r.withTx(ctx, func(tx *sql.Tx) error {
		if err := requireExecutives(ctx, tx, executiveIDs); err != nil {
			return err
		}
		for _, input := range inputs {
			client, inserted, err := insertClient(ctx, tx,
				`INSERT INTO clients (name, name_key, executive_id, proposal_sent, created_at)
				VALUES (?, ?, ?, ?, ?) ON CONFLICT (name_key) DO NOTHING`,
				input)
			if err != nil {
				return err
			}
			if inserted {
				created = append(created, client)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) UpdateClient(ctx context.Context, id int64, patch ports.ClientPatch) (entities.Client, error) {
	if patch.ProposalSent != nil {
		result, err := r.db.ExecContext(ctx,
			`UPDATE clients SET proposal_sent = ? WHERE id = ?`, *patch.ProposalSent, id)
		if err != nil {
			return entities.Client{}, err
		}
		affected, err := result.RowsAffected()
		if err != nil {
			return entities.Client{}, err
		}
		if affected == 0 {
			return entities.Client{}, domainerrors.ErrClientNotFound
		}
	}
	return r.GetClient(ctx, id)
}

func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM clients WHERE id = ?`, id)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domainerrors.ErrClientNotFound
	}
	return nil
}

func (r *Repository) withTx(ctx context.Context, fn func(tx *sql.Tx) error) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin sqlite tx: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func requireExecutives(ctx context.Context, tx *sql.Tx, ids []int64) error {
	for _, id := range ids {
		var exists int
		err := tx.QueryRowContext(ctx, `SELECT 1 FROM executives WHERE id = ?`, id).Scan(&exists)
		if errors.Is(err, sql.ErrNoRows) {
			return domainerrors.ErrExecutiveNotFound
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func insertClient(ctx context.Context, tx *sql.Tx, statement string, input ports.NewClient) (entities.Client, bool, error) {
	createdAt := input.CreatedAt.UTC()
	result, err := tx.ExecContext(ctx, statement,
		input.Name, input.NameKey, input.ExecutiveID, input.ProposalSent, formatTime(createdAt))
	if err != nil {
		return entities.Client{}, false, err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return entities.Client{}, false, err
	}
	if affected == 0 {
		return entities.Client{}, false, nil
	}
	id, err := result.LastInsertId()
	if err != nil {
		return entities.Client{}, false, err
	}
	return entities.Client{
		ID:           id,
		Name:         input.Name,
		ExecutiveID:  input.ExecutiveID,
		ProposalSent: input.ProposalSent,
		CreatedAt:    createdAt,
	}, true, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanExecutive(row scanner) (entities.Executive, error) {
	var (
		executive entities.Executive
		createdAt string
	)
	if err := row.Scan(&executive.ID, &executive.Name, &executive.Color, &createdAt); err != nil {
		return entities.Executive{}, err
	}
	parsed, err := parseTime(createdAt)
	if err != nil {
		return entities.Executive{}, err
	}
	executive.CreatedAt = parsed
	return executive, nil
}

func scanClient(row scanner) (entities.Client, error) {
	var (
		client    entities.Client
		createdAt string
	)
	if err := row.Scan(&client.ID, &client.Name, &client.ExecutiveID, &client.ProposalSent, &createdAt); err != nil {
		return entities.Client{}, err
	}
	parsed, err := parseTime(createdAt)
	if err != nil {
		return entities.Client{}, err
	}
	client.CreatedAt = parsed
	return client, nil
}

func scanClientView(row scanner) (entities.ClientView, error) {
	var (
		view      entities.ClientView
		createdAt string
	)
	if err := row.Scan(
		&view.ID,
		&view.Name,
		&view.ExecutiveID,
		&view.ProposalSent,
		&createdAt,
		&view.ExecutiveName,
		&view.ExecutiveColor,
	); err != nil {
		return entities.ClientView{}, err
	}
	parsed, err := parseTime(createdAt)
	if err != nil {
		return entities.ClientView{}, err
	}
	view.CreatedAt = parsed
	return view, nil
}

func formatTime(value time.Time) string {
	return value.UTC().Format(timeLayout)
}

func parseTime(value string) (time.Time, error) {
	parsed, err := time.Parse(timeLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse sqlite timestamp %q: %w", value, err)
	}
	return parsed.UTC(), nil
}

func isUniqueViolation(err error) bool {
	var sqliteErr sqlite3.Error
	return errors.As(err, &sqliteErr) && sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique
}
