package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/user/website-crawl-service/internal/entity"
	"github.com/user/website-crawl-service/internal/repository"
)

// querier is the subset of *pgxpool.Pool used by the repository.
type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// CredentialRepoImpl provides a concrete implementation for the CredentialRepository interface using PostgreSQL.
type CredentialRepoImpl struct {
	db querier
}

// NewCredentialRepo creates a new instance of CredentialRepoImpl.
func NewCredentialRepo(db querier) *CredentialRepoImpl {
	return &CredentialRepoImpl{db: db}
}

// GetAuthCredentials returns the enabled binding for (tenant, category, provider).
func (r *CredentialRepoImpl) GetAuthCredentials(ctx context.Context, tenantID, category, provider string) (*entity.ProviderCredentials, error) {
	query := `
		SELECT id, tenant_id, category, provider, credentials, disabled, created_at, updated_at
		FROM data_source_api_key_auth_bindings
		WHERE tenant_id = $1 AND category = $2 AND provider = $3 AND disabled = false;
	`
	var c entity.ProviderCredentials
	err := r.db.QueryRow(ctx, query, tenantID, category, provider).Scan(
		&c.ID,
		&c.TenantID,
		&c.Category,
		&c.Provider,
		&c.Config,
		&c.Disabled,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%w: tenant %s, %s/%s", repository.ErrCredentialNotFound, tenantID, category, provider)
		}
		return nil, err
	}
	return &c, nil
}

// Save creates or replaces a binding. The config is stored as JSONB.
func (r *CredentialRepoImpl) Save(ctx context.Context, creds *entity.ProviderCredentials) error {
	query := `
		INSERT INTO data_source_api_key_auth_bindings (tenant_id, category, provider, credentials, disabled, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NOW(), NOW())
		ON CONFLICT (tenant_id, category, provider) DO UPDATE SET
			credentials = EXCLUDED.credentials,
			disabled = EXCLUDED.disabled,
			updated_at = NOW();
	`
	_, err := r.db.Exec(ctx, query,
		creds.TenantID,
		creds.Category,
		creds.Provider,
		creds.Config,
		creds.Disabled,
	)
	return err
}

// Delete removes a binding.
func (r *CredentialRepoImpl) Delete(ctx context.Context, tenantID, category, provider string) error {
	query := `DELETE FROM data_source_api_key_auth_bindings WHERE tenant_id = $1 AND category = $2 AND provider = $3;`
	tag, err := r.db.Exec(ctx, query, tenantID, category, provider)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: tenant %s, %s/%s", repository.ErrCredentialNotFound, tenantID, category, provider)
	}
	return nil
}
