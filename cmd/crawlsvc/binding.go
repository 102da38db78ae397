package main

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/user/website-crawl-service/internal/adapter/firecrawl"
	"github.com/user/website-crawl-service/internal/entity"
)

// NewBindingCmd creates the binding command group.
func NewBindingCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "binding",
		Short: "Manage per-tenant crawl provider credentials",
	}
	cmd.PersistentFlags().String("tenant", "", "Tenant id (required)")
	cmd.PersistentFlags().String("provider", firecrawl.ProviderName, "Crawl provider name")

	cmd.AddCommand(newBindingSetCmd())
	cmd.AddCommand(newBindingDeleteCmd())
	return cmd
}

func newBindingSetCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "set",
		Short: "Encrypt an API key for a tenant and store the binding",
		Long: `Set encrypts the API key with the tenant's key and stores it, replacing
any existing binding for the same tenant and provider.

Examples:
  crawlsvc binding set --tenant t-1 --api-key fc-xxxx
  crawlsvc binding set --tenant t-1 --api-key fc-xxxx --base-url https://firecrawl.internal`,
		RunE: runBindingSetCmd,
	}
	cmd.Flags().String("api-key", "", "Provider API key (required)")
	cmd.Flags().String("base-url", "", "Custom provider base URL")
	return cmd
}

func newBindingDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete",
		Short: "Delete a tenant's provider binding",
		RunE:  runBindingDeleteCmd,
	}
}

func bindingTarget(cmd *cobra.Command) (tenantID, provider string, err error) {
	if tenantID, err = cmd.Flags().GetString("tenant"); err != nil {
		return "", "", err
	}
	if provider, err = cmd.Flags().GetString("provider"); err != nil {
		return "", "", err
	}
	if tenantID == "" {
		return "", "", errors.New("--tenant is required")
	}
	return tenantID, provider, nil
}

func runBindingSetCmd(cmd *cobra.Command, _ []string) error {
	tenantID, provider, err := bindingTarget(cmd)
	if err != nil {
		return err
	}
	apiKey, err := cmd.Flags().GetString("api-key")
	if err != nil {
		return err
	}
	if apiKey == "" {
		return errors.New("--api-key is required")
	}
	baseURL, err := cmd.Flags().GetString("base-url")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(30 * time.Second)
	defer cancel()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	token, err := a.cipher.Encrypt(tenantID, apiKey)
	if err != nil {
		return fmt.Errorf("failed to encrypt api key: %w", err)
	}
	err = a.credentialRepo.Save(ctx, &entity.ProviderCredentials{
		TenantID: tenantID,
		Category: entity.CategoryWebsite,
		Provider: provider,
		Config: entity.CredentialConfig{
			APIKey:  token,
			BaseURL: baseURL,
		},
	})
	if err != nil {
		return fmt.Errorf("failed to save binding: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Saved %s binding for tenant %s\n", provider, tenantID)
	return nil
}

func runBindingDeleteCmd(cmd *cobra.Command, _ []string) error {
	tenantID, provider, err := bindingTarget(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, cancel := withTimeout(30 * time.Second)
	defer cancel()
	a, err := newApp(ctx, cfg)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.credentialRepo.Delete(ctx, tenantID, entity.CategoryWebsite, provider); err != nil {
		return fmt.Errorf("failed to delete binding: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s binding for tenant %s\n", provider, tenantID)
	return nil
}
