package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/ponta-ta-taro/resale-tracker-sub000/config"
	"github.com/ponta-ta-taro/resale-tracker-sub000/handlers"
	"github.com/ponta-ta-taro/resale-tracker-sub000/logger"
	"github.com/ponta-ta-taro/resale-tracker-sub000/middleware"
	"github.com/ponta-ta-taro/resale-tracker-sub000/migrations"
)

func setupRouter(db *gorm.DB) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger())

	// middleware 設定
	middlewareConfig := &middleware.Config{
		EnableLogger: true,
		EnableAuth:   false,
	}
	middleware.SetupMiddleware(r, middlewareConfig)

	// ヘルスチェックとWebhookは認証をスキップ
	r.Use(middleware.SkipAuthMiddleware("/health", "/api/mail/webhook"))

	r.GET("/health", handlers.HandleHealthCheck)

	// メール転送サービスからの受信
	r.POST("/api/mail/webhook", handlers.HandleMailWebhook(db))

	api := r.Group("/api")
	{
		// 在庫関連
		api.GET("/inventory", handlers.ListInventory(db))
		api.GET("/inventory/search", handlers.SearchInventory(db))
		api.GET("/inventory/summary", handlers.InventorySummary(db))
		api.GET("/inventory/:id", handlers.GetInventory(db))
		api.POST("/inventory", handlers.CreateInventory(db))
		api.PUT("/inventory/:id", handlers.UpdateInventory(db))
		api.DELETE("/inventory/:id", handlers.DeleteInventory(db))

		// 支払い方法関連
		api.GET("/payment-methods", handlers.ListPaymentMethods(db))
		api.POST("/payment-methods", handlers.CreatePaymentMethod(db))
		api.PUT("/payment-methods/:id", handlers.UpdatePaymentMethod(db))
		api.DELETE("/payment-methods/:id", handlers.DeletePaymentMethod(db))
		api.GET("/payment-schedule", handlers.GetPaymentSchedule(db))

		// 発送関連
		api.GET("/shipments", handlers.ListShipments(db))
		api.GET("/shipments/:id", handlers.GetShipment(db))
		api.POST("/shipments", handlers.CreateShipment(db))
		api.PUT("/shipments/:id", handlers.UpdateShipment(db))
		api.DELETE("/shipments/:id", handlers.DeleteShipment(db))

		// 報酬関連
		api.GET("/rewards", handlers.ListRewards(db))
		api.GET("/rewards/summary", handlers.RewardSummary(db))
		api.POST("/rewards", handlers.CreateReward(db))
		api.PUT("/rewards/:id", handlers.UpdateReward(db))
		api.DELETE("/rewards/:id", handlers.DeleteReward(db))

		// 買取価格関連
		api.GET("/prices", handlers.ListPrices(db))
		api.GET("/prices/latest", handlers.LatestPrices(db))

		// 連絡先メールアドレス関連
		api.GET("/contact-emails", handlers.ListContactEmails(db))
		api.POST("/contact-emails", handlers.CreateContactEmail(db))
		api.DELETE("/contact-emails/:id", handlers.DeleteContactEmail(db))
		api.GET("/email-logs", handlers.ListEmailLogs(db))
		api.GET("/status/:messageID", handlers.GetProcessingStatus(db))

		// PDF・注文トークン関連
		api.POST("/parse-pdf", handlers.HandleParsePDF(db))
		api.GET("/order-token", handlers.GetOrderToken(db))
	}

	return r
}

func main() {
	_, err := config.InitConfig()
	if err != nil {
		logger.Logger.Fatal("設定の初期化に失敗しました", zap.Error(err))
	}

	// データベース接続
	if err := config.ConnectDatabase(); err != nil {
		logger.Logger.Fatal("データベース接続に失敗しました", zap.Error(err))
	}

	// データベースのクリーンアップを保証
	defer func() {
		if err := config.CloseDatabase(); err != nil {
			logger.Logger.Error("データベース接続のクローズに失敗しました", zap.Error(err))
		}
	}()

	db, err := config.GetDB()
	if err != nil {
		logger.Logger.Fatal("データベースインスタンスの取得に失敗しました", zap.Error(err))
	}

	// マイグレーション
	if err := migrations.NewMigrator(db).RunMigrations(); err != nil {
		logger.Logger.Fatal("マイグレーションに失敗しました", zap.Error(err))
	}

	// ルーターのセットアップ
	r := setupRouter(db)

	// サーバーの設定と起動
	srv := config.SetupServer(r)

	// グレースフルシャットダウンの実装
	handleGracefulShutdown(srv)
}

func handleGracefulShutdown(srv *http.Server) {
	// サーバーを別のゴルーチンで起動
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Logger.Fatal("サーバーの起動に失敗しました", zap.Error(err))
		}
	}()

	// シグナルの受信設定
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Logger.Info("シャットダウンを開始します...")

	// シャットダウンのタイムアウト設定
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// グレースフルシャットダウンの実行
	if err := srv.Shutdown(ctx); err != nil {
		logger.Logger.Error("サーバーのシャットダウンでエラーが発生", zap.Error(err))
	}

	logger.Logger.Info("サーバーを正常に終了しました")
}
