package main

import (
	"fmt"

	"github.com/nikolayk812/storefront/internal/domain"
	"github.com/nikolayk812/storefront/internal/repository"
	"github.com/nikolayk812/storefront/internal/service"
	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/cli/v2"
)

var starterMenu = []service.NewProduct{
	{
		Title:       "Classic Burger",
		Description: "Beef patty, lettuce, tomato and house sauce",
		Price:       domain.Money{Amount: decimal.NewFromInt(199)},
		Image:       "/images/classic-burger.png",
		Category:    "burgers",
		Available:   true,
	},
	{
		Title:       "Cheese Burger",
		Description: "Classic burger with a slice of cheddar",
		Price:       domain.Money{Amount: decimal.NewFromInt(249)},
		Image:       "/images/cheese-burger.png",
		Category:    "burgers",
		Available:   true,
	},
	{
		Title:       "Double Deluxe",
		Description: "Two patties, double cheese, caramelized onions",
		Price:       domain.Money{Amount: decimal.NewFromInt(299)},
		Image:       "/images/double-deluxe.png",
		Category:    "burgers",
		Available:   true,
	},
}

func seedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "insert the starter menu into an empty catalog",
		Action: func(c *cli.Context) error {
			cfg, err := loadConfig(c)
			if err != nil {
				return err
			}

			pool, err := openPool(c.Context, cfg.Postgres.URL)
			if err != nil {
				return err
			}
			defer pool.Close()

			catalog := service.NewCatalogService(repository.NewProduct(pool), cfg.Pricing().Currency, log.StandardLogger())

			existing, err := catalog.List(c.Context, domain.ProductFilter{})
			if err != nil {
				return fmt.Errorf("catalog.List: %w", err)
			}
			if len(existing) > 0 {
				log.WithField("products", len(existing)).Info("catalog is not empty, skipping seed")
				return nil
			}

			admin := domain.Caller{ID: appID, Role: domain.RoleAdmin}
			for _, p := range starterMenu {
				if _, err := catalog.Create(c.Context, admin, p); err != nil {
					return fmt.Errorf("catalog.Create[%s]: %w", p.Title, err)
				}
			}

			return nil
		},
	}
}
