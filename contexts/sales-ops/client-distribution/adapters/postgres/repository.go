package postgresadapter

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"roster/contexts/sales-ops/client-distribution/domain/entities"
	domainerrors "roster/contexts/sales-ops/client-distribution/domain/errors"
	"roster/contexts/sales-ops/client-distribution/ports"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type Repository struct {
	db     *gorm.DB
	logger *slog.Logger
}

func NewRepository(db *gorm.DB, logger *slog.Logger) *Repository {
	if logger == nil {
		logger = slog.Default()
	}
	return &Repository{
		db:     db,
		logger: logger,
	}
}

// AutoMigrate creates or updates the executives and clients tables.
func (r *Repository) AutoMigrate(ctx context.Context) error {
	return r.db.WithContext(ctx).AutoMigrate(&executiveModel{}, &clientModel{})
}

func (r *Repository) ListExecutives(ctx context.Context) ([]entities.Executive, error) {
	var rows []executiveModel
	if err := r.db.WithContext(ctx).
		Order("id ASC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Executive, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetExecutive(ctx context.Context, id int64) (entities.Executive, error) {
	var row executiveModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Executive{}, domainerrors.ErrExecutiveNotFound
		}
		return entities.Executive{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateExecutive(ctx context.Context, input ports.NewExecutive) (entities.Executive, error) {
	row := executiveModel{
		Name:      input.Name,
		NameKey:   input.NameKey,
		Color:     input.Color,
		CreatedAt: input.CreatedAt.UTC(),
	}
	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return entities.Executive{}, domainerrors.ErrExecutiveExists
		}
		return entities.Executive{}, err
	}
	return row.toEntity(), nil
}

// DeleteExecutive locks every executive row so concurrent deletes serialize
// on the last-executive check, then removes the clients and the executive.
func (r *Repository) DeleteExecutive(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []executiveModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Order("id ASC").
			Find(&rows).
			Error; err != nil {
			return err
		}

		found := false
		for _, row := range rows {
			if row.ID == id {
				found = true
				break
			}
		}
		if !found {
			return domainerrors.ErrExecutiveNotFound
		}
		if len(rows) <= 1 {
			return domainerrors.ErrLastExecutive
		}

		removed := tx.Where("executive_id = ?", id).Delete(&clientModel{})
		if removed.Error != nil {
			return removed.Error
		}
		if err := tx.Where("id = ?", id).Delete(&executiveModel{}).Error; err != nil {
			return err
		}

		r.logger.Debug("executive deleted from postgres",
			"event", "postgres_delete_executive",
			"module", "sales-ops/client-distribution",
			"layer", "adapter",
			"executive_id", id,
			"removed_clients", removed.RowsAffected,
		)
		return nil
	})
}

func (r *Repository) ListClients(ctx context.Context, filter ports.ClientFilter) ([]entities.ClientView, error) {
	tx := r.db.WithContext(ctx).
		Table("clients AS c").
		Select("c.id, c.name, c.executive_id, c.proposal_sent, c.created_at, " +
			"COALESCE(e.name, '') AS executive_name, COALESCE(e.color, '') AS executive_color").
		Joins("LEFT JOIN executives AS e ON e.id = c.executive_id")

	if filter.ExecutiveID > 0 {
		tx = tx.Where("c.executive_id = ?", filter.ExecutiveID)
	}
	if filter.ProposalSent != nil {
		tx = tx.Where("c.proposal_sent = ?", *filter.ProposalSent)
	}
	if query := strings.TrimSpace(filter.Query); query != "" {
		pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
		tx = tx.Where("(LOWER(c.name) LIKE ? OR LOWER(COALESCE(e.name, '')) LIKE ?)", pattern, pattern)
	}

	var rows []clientViewRow
	if err := tx.Order("c.created_at DESC, c.id DESC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	items := make([]entities.ClientView, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) ListClientsByExecutive(ctx context.Context, executiveID int64) ([]entities.Client, error) {
	var rows []clientModel
	if err := r.db.WithContext(ctx).
		Where("executive_id = ?", executiveID).
		Order("created_at DESC, id DESC").
		Find(&rows).
		Error; err != nil {
		return nil, err
	}
	items := make([]entities.Client, 0, len(rows))
	for _, row := range rows {
		items = append(items, row.toEntity())
	}
	return items, nil
}

func (r *Repository) GetClient(ctx context.Context, id int64) (entities.Client, error) {
	var row clientModel
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&row).
		Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return entities.Client{}, domainerrors.ErrClientNotFound
		}
		return entities.Client{}, err
	}
	return row.toEntity(), nil
}

func (r *Repository) CreateClient(ctx context.Context, input ports.NewClient) (entities.Client, error) {
	row := clientModelFromInput(input)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExecutives(tx, []int64{input.ExecutiveID}); err != nil {
			return err
		}
		if err := tx.Create(&row).Error; err != nil {
			if isUniqueViolation(err) {
				return domainerrors.ErrClientExists
			}
			return err
		}
		return nil
	})
	if err != nil {
		return entities.Client{}, err
	}
	return row.toEntity(), nil
}

// BulkCreateClients inserts row by row inside one transaction so every
// returned client carries the id of its own row. Conflicting name keys are
// skipped by ON CONFLICT DO NOTHING without aborting the transaction.
func (r *Repository) BulkCreateClients(ctx context.Context, inputs []ports.NewClient) ([]entities.Client, error) {
	if len(inputs) == 0 {
		return []entities.Client{}, nil
	}

	executiveIDs := make([]int64, 0, 1)
	seen := make(map[int64]struct{}, 1)
	for _, input := range inputs {
		if _, ok := seen[input.ExecutiveID]; ok {
			continue
		}
		seen[input.ExecutiveID] = struct{}{}
		executiveIDs = append(executiveIDs, input.ExecutiveID)
	}

	created := make([]entities.Client, 0, len(inputs))
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockExecutives(tx, executiveIDs); err != nil {
			return err
		}
		for _, input := range inputs {
			row := clientModelFromInput(input)
			result := tx.Clauses(clause.OnConflict{
				Columns:   []clause.Column{{Name: "name_key"}},
				DoNothing: true,
			}).Create(&row)
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected > 0 {
				created = append(created, row.toEntity())
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if skipped := len(inputs) - len(created); skipped > 0 {
		r.logger.Warn("bulk insert skipped conflicting clients",
			"event", "postgres_bulk_create_conflicts",
			"module", "sales-ops/client-distribution",
			"layer", "adapter",
			"skipped_count", skipped,
		)
	}
	return created, nil
}

func (r *Repository) UpdateClient(ctx context.Context, id int64, patch ports.ClientPatch) (entities.Client, error) {
	if patch.ProposalSent != nil {
		result := r.db.WithContext(ctx).
			Model(&clientModel{}).
			Where("id = ?", id).
			Update("proposal_sent", *patch.ProposalSent)
		if result.Error != nil {
			return entities.Client{}, result.Error
		}
		if result.RowsAffected == 0 {
			return entities.Client{}, domainerrors.ErrClientNotFound
		}
	}
	return r.GetClient(ctx, id)
}

func (r *Repository) DeleteClient(ctx context.Context, id int64) error {
	result := r.db.WithContext(ctx).
		Where("id = ?", id).
		Delete(&clientModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domainerrors.ErrClientNotFound
	}
	return nil
}

// lockExecutives takes a share lock on the owning executives so a concurrent
// cascade delete cannot interleave with the insert.
func lockExecutives(tx *gorm.DB, ids []int64) error {
	var rows []executiveModel
	if err := tx.Clauses(clause.Locking{Strength: "SHARE"}).
		Where("id IN ?", ids).
		Find(&rows).
		Error; err != nil {
		return err
	}
	if len(rows) != len(ids) {
		return domainerrors.ErrExecutiveNotFound
	}
	return nil
}

type executiveModel struct {
	ID        int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;not null"`
	NameKey   string    `gorm:"column:name_key;not null;uniqueIndex:executives_name_key_unique"`
	Color     string    `gorm:"column:color;not null"`
	CreatedAt time.Time `gorm:"column:created_at;not null"`
}

func (executiveModel) TableName() string {
	return "executives"
}

func (m executiveModel) toEntity() entities.Executive {
	return entities.Executive{
		ID:        m.ID,
		Name:      m.Name,
		Color:     m.Color,
		CreatedAt: m.CreatedAt.UTC(),
	}
}

type clientModel struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement"`
	Name         string    `gorm:"column:name;not null"`
	NameKey      string    `gorm:"column:name_key;not null;uniqueIndex:clients_name_key_unique"`
	ExecutiveID  int64     `gorm:"column:executive_id;not null;index:clients_executive_id_idx"`
	ProposalSent bool      `gorm:"column:proposal_sent;not null;default:false"`
	CreatedAt    time.Time `gorm:"column:created_at;not null;index:clients_created_at_idx"`
}

func (clientModel) TableName() string {
	return "clients"
}

func clientModelFromInput(input ports.NewClient) clientModel {
	return clientModel{
		Name:         input.Name,
		NameKey:      input.NameKey,
		ExecutiveID:  input.ExecutiveID,
		ProposalSent: input.ProposalSent,
		CreatedAt:    input.CreatedAt.UTC(),
	}
}

func (m clientModel) toEntity() entities.Client {
	return entities.Client{
		ID:           m.ID,
		Name:         m.Name,
		ExecutiveID:  m.ExecutiveID,
		ProposalSent: m.ProposalSent,
		CreatedAt:    m.CreatedAt.UTC(),
	}
}

type clientViewRow struct {
	ID             int64     `gorm:"column:id"`
	Name           string    `gorm:"column:name"`
	ExecutiveID    int64     `gorm:"column:executive_id"`
	ProposalSent   bool      `gorm:"column:proposal_sent"`
	CreatedAt      time.Time `gorm:"column:created_at"`
	ExecutiveName  string    `gorm:"column:executive_name"`
	ExecutiveColor string    `gorm:"column:executive_color"`
}

func (r clientViewRow) toEntity() entities.ClientView {
	return entities.ClientView{
		Client: entities.Client{
			ID:           r.ID,
			Name:         r.Name,
			ExecutiveID:  r.ExecutiveID,
			ProposalSent: r.ProposalSent,
			CreatedAt:    r.CreatedAt.UTC(),
		},
		ExecutiveName:  r.ExecutiveName,
		ExecutiveColor: r.ExecutiveColor,
	}
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(value string) string {
	return likeEscaper.Replace(value)
}
