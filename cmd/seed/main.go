// Command seed fills a development database with demo users, recipes and
// pantry items. Users that already exist are skipped.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/shopspring/decimal"

	"github.com/pageza/larder/backend/config"
	"github.com/pageza/larder/backend/internal/apperror"
	"github.com/pageza/larder/backend/internal/database"
	"github.com/pageza/larder/backend/internal/logging"
	"github.com/pageza/larder/backend/internal/models"
	"github.com/pageza/larder/backend/internal/service"
	"github.com/pageza/larder/backend/internal/types"
)

const demoPassword = "larder-demo-password"

type demoUser struct {
	username string
	recipes  []types.CreateRecipeRequest
	pantry   []types.PantryItemRequest
}

func main() {
	if err := run(context.Background()); err != nil {
		slog.Error("seeding failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}
	logging.SetDefault("seed", cfg.LogLevel)

	if config.IsProduction() {
		return errors.New("refusing to seed a production database")
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	if err := database.RunMigrations(db, cfg.MigrationsDir); err != nil {
		return err
	}

	auth := service.NewAuthService(db, cfg.JWTSecret, cfg.TokenTTL, nil)
	recipes := service.NewRecipeService(db)
	pantry := service.NewPantryService(db)

	for _, u := range demoUsers() {
		resp, err := auth.Register(ctx, &types.RegisterRequest{
			Username: u.username,
			Email:    u.username + "@example.com",
			Password: demoPassword,
		})
		if apperror.Is(err, apperror.CodeConflict) {
			slog.Info("user already exists, skipping", "username", u.username)
			continue
		}
		if err != nil {
			return err
		}

		userID := resp.User.ID
		for i := range u.recipes {
			if _, err := recipes.CreateRecipe(ctx, userID, &u.recipes[i]); err != nil {
				return err
			}
		}
		for i := range u.pantry {
			if _, err := pantry.CreateItem(ctx, userID, &u.pantry[i]); err != nil {
				return err
			}
		}
		slog.Info("seeded user", "username", u.username, "recipes", len(u.recipes), "pantry_items", len(u.pantry))
	}
	return nil
}

func qty(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func intPtr(v int) *int { return &v }

func expiresOn(year int, month time.Month, day int) *models.Date {
	d := models.NewDate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
	return &d
}

func demoUsers() []demoUser {
	return []demoUser{
		{
			username: "demo",
			recipes: []types.CreateRecipeRequest{
				{
					Title:           "Tomato and basil pasta",
					YieldAmount:     intPtr(2),
					PrepTimeMinutes: intPtr(10),
					CookTimeMinutes: intPtr(15),
					Ingredients: []types.IngredientInput{
						{IngredientName: "spaghetti", Quantity: qty("200"), Unit: "g"},
						{IngredientName: "tomato", Quantity: qty("4"), Unit: "pc", PrepNote: "diced"},
						{IngredientName: "basil", Quantity: qty("0.5"), Unit: "bunch", PrepNote: "torn"},
						{IngredientName: "olive oil", Quantity: qty("2"), Unit: "tbsp"},
					},
					Steps: []types.StepInput{
						{StepNumber: intPtr(1), Description: "Boil the pasta in salted water.", TimerSeconds: intPtr(540)},
						{StepNumber: intPtr(2), Description: "Warm the oil and soften the tomatoes."},
						{StepNumber: intPtr(3), Description: "Toss the pasta with the sauce and basil."},
					},
				},
				{
					Title:       "Overnight oats",
					YieldAmount: intPtr(1),
					ChefNotes:   "Keeps for three days in the fridge.",
					Ingredients: []types.IngredientInput{
						{IngredientName: "rolled oats", Quantity: qty("50"), Unit: "g"},
						{IngredientName: "milk", Quantity: qty("150"), Unit: "ml"},
					},
					Steps: []types.StepInput{
						{StepNumber: intPtr(1), Description: "Stir together and refrigerate overnight."},
					},
				},
			},
			pantry: []types.PantryItemRequest{
				{IngredientName: "spaghetti", Quantity: qty("500"), Unit: "g", StorageLocation: "cupboard"},
				{IngredientName: "milk", Quantity: qty("1"), Unit: "l", StorageLocation: "fridge", ExpiresOn: expiresOn(2030, time.January, 15)},
				{IngredientName: "rolled oats", Quantity: qty("1.25"), Unit: "kg", StorageLocation: "cupboard"},
			},
		},
		{
			username: "demo2",
			pantry: []types.PantryItemRequest{
				{IngredientName: "rice", Quantity: qty("2"), Unit: "kg"},
			},
		},
	}
}
