package migrations

import (
	"fmt"

	"github.com/go-gormigrate/gormigrate/v2"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/models"
)

type Migrator struct {
	db *gorm.DB
}

func NewMigrator(db *gorm.DB) *Migrator {
	return &Migrator{db: db}
}

func (m *Migrator) RunMigrations() error {
	logger.Logger.Info("マイグレーションを開始します")

	// マイグレーションIDは一意である必要があります
	migrationList := []*gormigrate.Migration{
		{
			ID: "20250901_create_core_tables",
			Migrate: func(tx *gorm.DB) error {
				logger.Logger.Info("コアテーブルを作成します")

				if err := tx.AutoMigrate(
					&models.User{},
					&models.ContactEmail{},
					&models.Inventory{},
					&models.PriceHistory{},
					&models.EmailLog{},
				); err != nil {
					return fmt.Errorf("コアテーブルの作成に失敗: %v", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				logger.Logger.Info("コアテーブルを削除します")
				if err := tx.Migrator().DropTable(
					"email_logs", "price_histories", "inventories", "contact_emails", "users",
				); err != nil {
					return fmt.Errorf("コアテーブルの削除に失敗: %v", err)
				}
				return nil
			},
		},
		{
			ID: "20250902_create_payment_tables",
			Migrate: func(tx *gorm.DB) error {
				logger.Logger.Info("支払い・発送関連のテーブルを作成します")

				if err := tx.AutoMigrate(
					&models.PaymentMethod{},
					&models.Shipment{},
					&models.Reward{},
				); err != nil {
					return fmt.Errorf("支払い関連テーブルの作成に失敗: %v", err)
				}
				return nil
			},
			Rollback: func(tx *gorm.DB) error {
				logger.Logger.Info("支払い・発送関連のテーブルを削除します")
				if err := tx.Migrator().DropTable("rewards", "shipments", "payment_methods"); err != nil {
					return fmt.Errorf("支払い関連テーブルの削除に失敗: %v", err)
				}
				return nil
			},
		},
	}

	migrator := gormigrate.New(m.db, gormigrate.DefaultOptions, migrationList)

	if err := migrator.Migrate(); err != nil {
		return fmt.Errorf("マイグレーションの実行に失敗しました: %w", err)
	}

	logger.Logger.Info("マイグレーションが完了しました")
	return nil
}
