package commands

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"storefront/apperror"
	"storefront/models"
	"storefront/repositories"
	"storefront/services"
	"storefront/utils"

	"github.com/spf13/cobra"
)

var seedFile string

var seedProductsCmd = &cobra.Command{
	Use:   "seed-products",
	Short: "Load catalog products from a JSON file",
	RunE: func(cmd *cobra.Command, args []string) error {
		reqs, err := readProductFile(seedFile)
		if err != nil {
			return err
		}

		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		created, skipped, err := a.productService().Import(cmd.Context(), reqs)
		if err != nil {
			return err
		}
		slog.Info("products loaded", "created", created, "skipped", skipped)
		return nil
	},
}

// readProductFile decodes a JSON array of products. Entries without a stock
// start at zero.
func readProductFile(path string) ([]models.CreateProductRequest, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read products file: %w", err)
	}

	var reqs []models.CreateProductRequest
	if err := json.Unmarshal(raw, &reqs); err != nil {
		return nil, fmt.Errorf("parse products file: %w", err)
	}
	for i := range reqs {
		if reqs[i].Stock == nil {
			zero := 0
			reqs[i].Stock = &zero
		}
	}
	return reqs, nil
}

var createUsersCmd = &cobra.Command{
	Use:   "create-users [count]",
	Short: "Create numbered test accounts (test_userN@test.com / 123456)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		count, err := strconv.Atoi(args[0])
		if err != nil || count < 1 {
			return fmt.Errorf("count must be a positive number")
		}

		a, err := boot(cmd.Context())
		if err != nil {
			return err
		}
		defer a.Close()

		auth := services.NewAuthService(
			repositories.NewUserRepository(a.pool),
			utils.NewJWT(a.cfg.JWTSecret, a.cfg.JWTExpiry),
			nil,
		)
		for i := 1; i <= count; i++ {
			req := testUser(i)
			_, err := auth.Register(cmd.Context(), req)
			switch {
			case apperror.Is(err, apperror.KindConflict):
				slog.Info("test user exists", "email", req.Email)
			case err != nil:
				return err
			default:
				slog.Info("test user created", "email", req.Email)
			}
		}
		return nil
	},
}

func testUser(n int) models.RegisterRequest {
	name := "test_user" + strconv.Itoa(n)
	return models.RegisterRequest{
		Email:    name + "@test.com",
		UserName: name,
		Password: "123456",
	}
}

func init() {
	seedProductsCmd.Flags().StringVar(&seedFile, "file", "public/products.json", "path to the products JSON file")
}
