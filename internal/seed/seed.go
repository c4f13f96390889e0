package seed

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/logitrack-app/backend/pkg/config"
	"github.com/logitrack-app/backend/pkg/db"
	"github.com/logitrack-app/backend/pkg/db/models"
	"github.com/logitrack-app/backend/pkg/enums"
	"github.com/logitrack-app/backend/pkg/logger"
	"github.com/logitrack-app/backend/pkg/security"
)

// MaybeRunDev loads demo warehouse data when the seed flag is set in a dev
// environment. It is a no-op when either table already has rows.
func MaybeRunDev(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.App.IsDev() || !cfg.FeatureFlags.SeedDemo {
		return nil
	}

	if err := seedInventory(ctx, client); err != nil {
		return fmt.Errorf("seed inventory: %w", err)
	}
	if err := seedUsers(ctx, client, cfg.Password); err != nil {
		return fmt.Errorf("seed users: %w", err)
	}

	if logg != nil {
		logg.Info(ctx, "demo seed applied")
	}
	return nil
}

func seedInventory(ctx context.Context, client *db.Client) error {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.InventoryItem{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	items := []models.InventoryItem{
		{Name: "Pallet Jack", Description: "Manual pallet jack, 2500 kg capacity", Quantity: 12, Price: decimal.NewFromFloat(320.00), Location: "A-01"},
		{Name: "Forklift", Description: "Electric counterbalance forklift", Quantity: 5, Price: decimal.NewFromFloat(18500.00), Location: "B-04"},
		{Name: "Hand Truck", Description: "Folding aluminum hand truck", Quantity: 20, Price: decimal.NewFromFloat(89.99), Location: "A-07"},
		{Name: "Shrink Wrap Roll", Description: "500 mm stretch film, 23 micron", Quantity: 150, Price: decimal.NewFromFloat(12.50), Location: "C-02"},
	}
	return client.DB().WithContext(ctx).Create(&items).Error
}

func seedUsers(ctx context.Context, client *db.Client, pwCfg config.PasswordConfig) error {
	var count int64
	if err := client.DB().WithContext(ctx).Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []struct {
		email    string
		password string
		role     enums.Role
	}{
		{"admin@logitrack.local", "admin-dev-password", enums.RoleAdmin},
		{"manager@logitrack.local", "manager-dev-password", enums.RoleManager},
		{"picker@logitrack.local", "picker-dev-password", enums.RoleUser},
	}

	users := make([]models.User, 0, len(defaults))
	for _, d := range defaults {
		hash, err := security.HashPassword(d.password, pwCfg)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			Email:        d.email,
			PasswordHash: hash,
			Role:         d.role,
			IsActive:     true,
		})
	}
	return client.DB().WithContext(ctx).Create(&users).Error
}
