package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/iho/gamewallet/internal/adapter/http/dto"
	"github.com/iho/gamewallet/internal/adapter/http/handler"
	postgresRepo "github.com/iho/gamewallet/internal/adapter/repository/postgres"
	redisRepo "github.com/iho/gamewallet/internal/adapter/repository/redis"
	"github.com/iho/gamewallet/internal/domain"
	"github.com/iho/gamewallet/internal/infrastructure/config"
	"github.com/iho/gamewallet/internal/infrastructure/postgres"
	"github.com/iho/gamewallet/internal/infrastructure/redis"
	"github.com/iho/gamewallet/internal/usecase"
)

func cliLogger() zerolog.Logger {
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
}

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or revert database migrations",
	}

	run := func(apply func(databaseURL, migrationsPath string, logger zerolog.Logger) error) func(*cobra.Command, []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			return apply(cfg.DatabaseURL, cfg.MigrationsPath, cliLogger())
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "up",
			Short: "Apply all pending migrations",
			Args:  cobra.NoArgs,
			RunE:  run(postgres.RunMigrations),
		},
		&cobra.Command{
			Use:   "down",
			Short: "Revert all migrations",
			Args:  cobra.NoArgs,
			RunE:  run(postgres.RunMigrationsDown),
		},
	)

	return cmd
}

// partnerUpserter stores partner credentials.
type partnerUpserter interface {
	Upsert(ctx context.Context, partner *domain.Partner) error
}

// partnerInvalidator drops a cached partner.
type partnerInvalidator interface {
	Invalidate(ctx context.Context, host string) error
}

func addPartner(ctx context.Context, repo partnerUpserter, cache partnerInvalidator, partner *domain.Partner) error {
	partner.Host = usecase.NormalizeHost(partner.Host)
	partner.VendorHost = usecase.NormalizeHost(partner.VendorHost)
	if partner.Host == "" || partner.ClientID == "" || partner.ClientSecret == "" {
		return fmt.Errorf("%w: host, client id and client secret are required", domain.ErrInvalidRequest)
	}
	if partner.ID == "" {
		partner.ID = uuid.NewString()
	}

	if err := repo.Upsert(ctx, partner); err != nil {
		return fmt.Errorf("store partner: %w", err)
	}
	if cache == nil {
		return nil
	}
	for _, host := range []string{partner.Host, partner.VendorHost} {
		if host == "" {
			continue
		}
		if err := cache.Invalidate(ctx, host); err != nil {
			return fmt.Errorf("invalidate cached partner: %w", err)
		}
	}
	return nil
}

func partnerCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "partner",
		Short: "Manage vendor partners",
	}

	partner := &domain.Partner{}
	var disabled bool

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Create or replace the partner for a host",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			ctx := cmd.Context()

			pool, err := postgres.NewPool(ctx, cfg.DatabaseURL, 2, 0)
			if err != nil {
				return err
			}
			defer pool.Close()

			var cache partnerInvalidator
			if cfg.RedisURL != "" {
				redisClient, err := redis.NewClientWithConfig(ctx, cfg.RedisClientConfig())
				if err != nil {
					return err
				}
				defer redisClient.Close()
				cache = redisRepo.NewPartnerCache(redisClient, nil, cfg.PartnerCacheTTL, cliLogger())
			}

			partner.Enabled = !disabled
			if err := addPartner(ctx, postgresRepo.NewPartnerRepository(pool), cache, partner); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "partner %s saved for host %s\n", partner.ID, partner.Host)
			return nil
		},
	}
	addCmd.Flags().StringVar(&partner.Host, "host", "", "Host the vendor calls the wallet on")
	addCmd.Flags().StringVar(&partner.VendorHost, "vendor-host", "", "Host of the vendor's own API, matched when the wallet host is not")
	addCmd.Flags().StringVar(&partner.Name, "name", "", "Partner name")
	addCmd.Flags().StringVar(&partner.ClientID, "client-id", "", "Basic auth client id")
	addCmd.Flags().StringVar(&partner.ClientSecret, "client-secret", "", "Basic auth secret and signing key")
	addCmd.Flags().BoolVar(&disabled, "disabled", false, "Store the partner disabled")

	cmd.AddCommand(addCmd)
	return cmd
}

func accountCmd(c *client) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage player accounts",
	}

	var balance string
	var disabled bool

	createCmd := &cobra.Command{
		Use:   "create <name>",
		Short: "Create a player account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := dto.CreateAccountRequest{Name: args[0], Disabled: disabled}
			if balance != "" {
				opening, err := decimal.NewFromString(balance)
				if err != nil {
					return fmt.Errorf("invalid balance %q: %w", balance, err)
				}
				req.OpeningBalance = &opening
			}

			body, err := c.admin(cmd.Context(), http.MethodPost, "/admin/v1/accounts", req)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
	createCmd.Flags().StringVar(&balance, "balance", "", "Opening balance")
	createCmd.Flags().BoolVar(&disabled, "disabled", false, "Create the account disabled")

	getCmd := &cobra.Command{
		Use:   "get <name>",
		Short: "Show a player account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := c.admin(cmd.Context(), http.MethodGet, "/admin/v1/accounts/"+url.PathEscape(args[0]), nil)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}

	cmd.AddCommand(createCmd, getCmd)
	return cmd
}

// signedBalanceRequest builds a balance query signed with the partner secret.
func signedBalanceRequest(ctx context.Context, c *client, host, secret string, req dto.BalanceRequest) (*http.Request, error) {
	if req.TraceID == "" {
		req.TraceID = dto.Text(uuid.NewString())
	}

	raw, err := json.Marshal(req)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("/api/wallet/balance"), bytes.NewReader(raw))
	if err != nil {
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set(handler.SignatureHeader, (&domain.Partner{ClientSecret: secret}).Sign(raw))
	if host != "" {
		httpReq.Host = host
	}
	return httpReq, nil
}

func balanceCmd(c *client) *cobra.Command {
	var host, secret string
	req := dto.BalanceRequest{}

	cmd := &cobra.Command{
		Use:   "balance <username>",
		Short: "Query a balance through the signed vendor API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if secret == "" {
				return fmt.Errorf("--secret is required")
			}
			req.Username = args[0]

			httpReq, err := signedBalanceRequest(cmd.Context(), c, host, secret, req)
			if err != nil {
				return err
			}
			body, err := c.do(httpReq)
			if err != nil {
				return err
			}

			var resp dto.WalletResponse
			if err := json.Unmarshal(body, &resp); err != nil {
				return fmt.Errorf("failed to parse response: %w", err)
			}
			if resp.Status != dto.StatusOK {
				return fmt.Errorf("balance query failed: %s", resp.Status)
			}
			return printJSON(cmd.OutOrStdout(), body)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "Host header the partner is registered under")
	cmd.Flags().StringVar(&secret, "secret", os.Getenv("WALLET_PARTNER_SECRET"), "Partner signing secret")
	cmd.Flags().StringVar(&req.Currency, "currency", "CNY", "Currency")
	cmd.Flags().StringVar(&req.Token, "token", "walletctl", "Player session token")

	return cmd
}

func consistencyCmd(c *client) *cobra.Command {
	var account string

	cmd := &cobra.Command{
		Use:   "consistency",
		Short: "Check that balances match their money logs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "/admin/v1/consistency"
			if account != "" {
				path = "/admin/v1/accounts/" + url.PathEscape(account) + "/consistency"
			}

			body, err := c.admin(cmd.Context(), http.MethodGet, path, nil)
			if err != nil {
				return err
			}
			if err := printJSON(cmd.OutOrStdout(), body); err != nil {
				return err
			}
			return consistencyVerdict(body, account != "")
		},
	}
	cmd.Flags().StringVar(&account, "account", "", "Check a single account")

	return cmd
}

func consistencyVerdict(body []byte, single bool) error {
	if single {
		var result dto.ConsistencyResponse
		if err := json.Unmarshal(body, &result); err != nil {
			return fmt.Errorf("failed to parse response: %w", err)
		}
		if !result.IsConsistent {
			return fmt.Errorf("consistency check FAILED for %s: difference %s", result.Name, result.Difference)
		}
		return nil
	}

	var report dto.ConsistencyReportResponse
	if err := json.Unmarshal(body, &report); err != nil {
		return fmt.Errorf("failed to parse response: %w", err)
	}
	if n := len(report.Discrepancies); n > 0 {
		return fmt.Errorf("consistency check FAILED: %d of %d accounts inconsistent", n, report.TotalAccounts)
	}
	return nil
}
