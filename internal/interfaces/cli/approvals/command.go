// Package approvals manages the registration allow-list from the command line.
package approvals

import (
	"context"
	"fmt"
	"io"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appApproval "github.com/gohub-app/gohub/internal/application/approval"
	"github.com/gohub-app/gohub/internal/application/approval/dto"
	"github.com/gohub-app/gohub/internal/application/approval/usecases"
	"github.com/gohub-app/gohub/internal/domain/approval"
	"github.com/gohub-app/gohub/internal/infrastructure/database"
	"github.com/gohub-app/gohub/internal/infrastructure/repository"
	"github.com/gohub-app/gohub/internal/interfaces/cli/bootstrap"
	"github.com/gohub-app/gohub/internal/shared/constants"
	"github.com/gohub-app/gohub/internal/shared/db"
	"github.com/gohub-app/gohub/internal/shared/logger"
)

var (
	env      string
	paid     string
	page     int
	pageSize int
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "approvals",
		Short: "Manage the registration allow-list",
	}

	cmd.PersistentFlags().StringVarP(&env, "env", "e", constants.EnvDevelopment, "Environment (development, test, production)")

	cmd.AddCommand(
		newImportCommand(),
		newListCommand(),
		newMarkPaidCommand(),
	)

	return cmd
}

func newImportCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.yaml>",
		Short: "Add approvals listed in a YAML file",
		Args:  cobra.ExactArgs(1),
		RunE:  runImport,
	}
}

func newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List approvals",
		RunE:  runList,
	}

	cmd.Flags().StringVar(&paid, "paid", "", "Filter by payment status (true or false)")
	cmd.Flags().IntVar(&page, "page", constants.DefaultPage, "Page number")
	cmd.Flags().IntVar(&pageSize, "page-size", constants.DefaultPageSize, "Page size")

	return cmd
}

func newMarkPaidCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "mark-paid <registration-number>",
		Short: "Record payment for an approval",
		Args:  cobra.ExactArgs(1),
		RunE:  runMarkPaid,
	}
}

// withService opens the store and runs fn against the allow-list service.
func withService(fn func(ctx context.Context, svc *appApproval.Service) error) error {
	cfg, log, err := bootstrap.InitWithDatabase(bootstrap.ResolveEnv(env))
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer database.Close()

	gdb := database.Get()
	svc := appApproval.NewService(
		repository.NewApprovalRepository(gdb, log),
		db.NewTransactionManager(gdb, cfg.Database.QueryTimeout()),
		log,
	)
	return fn(context.Background(), svc)
}

func runImport(cmd *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer f.Close()

	cmds, err := parseImportFile(f)
	if err != nil {
		return err
	}

	return withService(func(ctx context.Context, svc *appApproval.Service) error {
		result, err := svc.BulkAdd(ctx, cmds)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Added %d approvals\n", len(result.Succeeded))
		for _, failure := range result.Failed {
			fmt.Fprintf(out, "  skipped %s: %s\n", failure.RegistrationNumber, failure.Reason)
		}
		return nil
	})
}

func runList(cmd *cobra.Command, args []string) error {
	filter := approval.ListFilter{Page: page, PageSize: pageSize}
	if paid != "" {
		v, err := strconv.ParseBool(paid)
		if err != nil {
			return fmt.Errorf("--paid must be true or false")
		}
		filter.IsPaid = &v
	}

	return withService(func(ctx context.Context, svc *appApproval.Service) error {
		items, total, err := svc.List(ctx, filter)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		writeApprovals(out, items)
		fmt.Fprintf(out, "%d of %d approvals\n", len(items), total)
		return nil
	})
}

func runMarkPaid(cmd *cobra.Command, args []string) error {
	return withService(func(ctx context.Context, svc *appApproval.Service) error {
		resp, err := svc.MarkPaid(ctx, usecases.MarkPaidCommand{RegistrationNumber: args[0]})
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s marked as paid on %s\n",
			resp.RegistrationNumber, resp.PaymentDate.Format("2006-01-02"))
		return nil
	})
}

func writeApprovals(out io.Writer, items []*dto.ApprovalResponse) {
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "REGISTRATION\tSTUDENT\tPAID\tPAYMENT DATE")
	for _, a := range items {
		date := "-"
		if a.PaymentDate != nil {
			date = a.PaymentDate.Format("2006-01-02")
		}
		fmt.Fprintf(tw, "%s\t%s\t%t\t%s\n", a.RegistrationNumber, a.StudentName, a.IsPaid, date)
	}
	tw.Flush()
}
