package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"property-service/internal/apperror"
	"property-service/internal/repository"
	"property-service/pkg/config"

	"github.com/spf13/cobra"
)

func newSeedCmd() *cobra.Command {
	var adminEmail string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Insert the demo listings",
		Long:  "Insert the demo listings into an empty catalog. Listings are attributed to the given admin account. Nothing is written when the catalog already has listings.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			a, err := newApp(ctx, cfg)
			if err != nil {
				return err
			}
			defer a.Close(context.Background())

			return seedListings(ctx, cmd.OutOrStdout(), a.stores, cfg.Site, adminEmail)
		},
	}

	cmd.Flags().StringVar(&adminEmail, "admin-email", "", "email of the admin the listings are attributed to")
	_ = cmd.MarkFlagRequired("admin-email")

	return cmd
}

func seedListings(ctx context.Context, out io.Writer, stores *repository.Stores, site config.SiteConfig, adminEmail string) error {
	admin, err := stores.Users.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(adminEmail)))
	if err != nil {
		if apperror.IsNotFound(err) {
			return fmt.Errorf("no account with email %s, run 'admin create' first", adminEmail)
		}
		return err
	}

	stats, err := stores.Properties.Stats(ctx, time.Time{})
	if err != nil {
		return err
	}
	if stats.TotalProperties > 0 {
		fmt.Fprintf(out, "Catalog already has %d listings, skipping seed\n", stats.TotalProperties)
		return nil
	}

	listings := demoListings(site, admin.ID)
	for i := range listings {
		if err := stores.Properties.Create(ctx, &listings[i]); err != nil {
			return fmt.Errorf("seed %q: %w", listings[i].Title, err)
		}
	}

	counts := map[string]int{}
	for _, p := range listings {
		counts[p.TransactionType]++
	}
	fmt.Fprintf(out, "Seeded %d listings for %s (sale %d, rent %d, lease %d)\n",
		len(listings), admin.Email, counts["Sale"], counts["Rent"], counts["Lease"])
	return nil
}
