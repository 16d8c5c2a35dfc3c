package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	analyticsdomain "github.com/tair/population/internal/analytics/domain"
	httpDelivery "github.com/tair/population/internal/inventory/delivery/http"
	inventorydomain "github.com/tair/population/internal/inventory/domain"
	inventoryrepo "github.com/tair/population/internal/inventory/repository"
	"github.com/tair/population/internal/inventory/usecase/query"
	userdomain "github.com/tair/population/internal/user/domain"
	userrepo "github.com/tair/population/internal/user/repository"
	"github.com/tair/population/internal/user/usecase/command"
	"github.com/tair/population/pkg/apperror"
	"github.com/tair/population/pkg/config"
	"github.com/tair/population/pkg/database"
	"github.com/tair/population/pkg/logger"
	"github.com/tair/population/pkg/spreadsheet"
)

type adminFlags struct {
	username  string
	email     string
	password  string
	firstName string
	lastName  string
}

func main() {
	root := newRootCommand(openDB)
	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func openDB() (*gorm.DB, error) {
	cfg, err := config.Load(config.Defaults{
		ServiceName: "populationctl",
		HTTPPort:    "0",
		DBName:      "population",
	})
	if err != nil {
		return nil, err
	}
	logger.Init(cfg.App.Name, cfg.App.Environment, cfg.App.LogLevel)
	return database.NewGormConnection(cfg.DB)
}

func newRootCommand(open func() (*gorm.DB, error)) *cobra.Command {
	root := &cobra.Command{
		Use:          "populationctl",
		Short:        "Operator tooling for the population back office",
		SilenceUsage: true,
	}

	root.AddCommand(&cobra.Command{
		Use:   "migrate",
		Short: "Create or update every table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			if err := migrate(db); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Migrations applied")
			return nil
		},
	})

	var admin adminFlags
	createAdmin := &cobra.Command{
		Use:   "create-admin",
		Short: "Create a user with the admin role",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			return createAdminUser(cmd.Context(), db, admin, cmd.OutOrStdout())
		},
	}
	f := createAdmin.Flags()
	f.StringVar(&admin.username, "username", "", "Username (required)")
	f.StringVar(&admin.email, "email", "", "Email address (required)")
	f.StringVar(&admin.password, "password", "", "Password (required)")
	f.StringVar(&admin.firstName, "first-name", "", "First name")
	f.StringVar(&admin.lastName, "last-name", "", "Last name")
	_ = createAdmin.MarkFlagRequired("username")
	_ = createAdmin.MarkFlagRequired("email")
	_ = createAdmin.MarkFlagRequired("password")
	root.AddCommand(createAdmin)

	var xlsxPath string
	lowStock := &cobra.Command{
		Use:   "low-stock",
		Short: "List ingredients at or below their minimum stock level",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := open()
			if err != nil {
				return err
			}
			return reportLowStock(cmd.Context(), db, cmd.OutOrStdout(), xlsxPath)
		},
	}
	lowStock.Flags().StringVar(&xlsxPath, "xlsx", "", "Write the result to this xlsx file instead of stdout")
	root.AddCommand(lowStock)

	return root
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&inventorydomain.Ingredient{},
		&inventorydomain.Item{},
		&inventorydomain.ItemIngredient{},
		&userdomain.User{},
		&analyticsdomain.Report{},
	)
}

func createAdminUser(ctx context.Context, db *gorm.DB, flags adminFlags, out io.Writer) error {
	handler := command.NewCreateUserHandler(userrepo.NewGormUserRepository(db))
	user, err := handler.Handle(ctx, command.CreateUserCommand{
		Username:  flags.username,
		Email:     flags.email,
		Password:  flags.password,
		FirstName: flags.firstName,
		LastName:  flags.lastName,
		Role:      userdomain.RoleAdmin,
	})
	if err != nil {
		if v, ok := apperror.IsValidation(err); ok {
			return errors.New(v.Error())
		}
		return err
	}
	fmt.Fprintf(out, "Created admin %q (id %d)\n", user.Username, user.ID)
	return nil
}

func reportLowStock(ctx context.Context, db *gorm.DB, out io.Writer, xlsxPath string) error {
	handler := query.NewLowStockHandler(inventoryrepo.NewGormIngredientRepository(db))
	ingredients, err := handler.Handle(ctx)
	if err != nil {
		return err
	}

	if xlsxPath != "" {
		data, err := spreadsheet.Render(httpDelivery.IngredientTable(ingredients))
		if err != nil {
			return err
		}
		if err := os.WriteFile(xlsxPath, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", xlsxPath, err)
		}
		fmt.Fprintf(out, "Wrote %d low-stock ingredients to %s\n", len(ingredients), xlsxPath)
		return nil
	}

	if len(ingredients) == 0 {
		fmt.Fprintln(out, "No ingredients are low on stock")
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tQUANTITY\tMIN\tUNIT")
	for _, ing := range ingredients {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n",
			ing.ID, ing.Name, ing.Quantity.StringFixed(2), ing.MinStockLevel.StringFixed(2), ing.Unit)
	}
	return tw.Flush()
}
