package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/fx"

	"github.com/bitbites/canteen/internal/app"
	"github.com/bitbites/canteen/internal/config"
	"github.com/bitbites/canteen/internal/entity"
	"github.com/bitbites/canteen/internal/refresh"
	repo "github.com/bitbites/canteen/internal/repository/order"
	serviceorder "github.com/bitbites/canteen/internal/service/order"
)

// newWatchCmd builds the pull-mode staff view: it re-runs the order
// listing on the configured poll interval and prints the result, for
// terminals that cannot hold an open refresh stream.
func newWatchCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Poll and print the order board for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			location, _ := cmd.Flags().GetString("location")

			var (
				svc *serviceorder.Service
				cfg config.Config
			)
			opts := fx.Options(app.Core, fx.Populate(&svc, &cfg))
			return runWithApp(cmd.Context(), opts, func(ctx context.Context) error {
				poll := func(ctx context.Context) error {
					orders, err := svc.List(ctx, repo.Filter{Location: location})
					if err != nil {
						return err
					}
					fmt.Fprint(cmd.OutOrStdout(), renderOrderBoard(orders))
					return nil
				}

				if err := poll(ctx); err != nil {
					return err
				}

				refresh.NewPoller(cfg.Sync.PollInterval).Run(ctx, poll, func(err error) {
					fmt.Fprintf(cmd.ErrOrStderr(), "refresh failed: %v\n", err)
				})
				return nil
			})
		},
	}
	cmd.Flags().String("location", "", "Restrict the board to one serving point")
	return cmd
}

// renderOrderBoard formats one polling pass, newest order first as listed.
func renderOrderBoard(orders []*entity.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "-- %d order(s) --\n", len(orders))
	for _, order := range orders {
		fmt.Fprintf(&b, "%-10s %-9s %8.2f  %s\n", order.Token, order.Status, order.Total, order.ClientName)
	}
	return b.String()
}
