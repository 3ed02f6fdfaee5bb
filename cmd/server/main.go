package main

import (
	"net/http"
	"os"

	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/api"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/config"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/db"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/logger"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/metrics"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/operator"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/order"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/product"
	"github.com/The-Bhanu-Pratap-Singh/dynamic-inventory-ai/internal/report"

	"go.uber.org/zap"
)

func main() {
	cfg := config.LoadConfig()

	logger.Init(cfg.AppEnv)
	defer logger.Sync()

	database := db.InitDB(cfg)
	defer database.Close()

	stats := &metrics.CheckoutStats{}

	productRepo := product.NewRepository(database)
	productSvc := product.NewService(productRepo)

	orderRepo := order.NewRepository(database)
	orderSvc := order.NewService(orderRepo, stats, cfg.AllowNegativeStock)

	operatorRepo := operator.NewRepository(database)
	operatorSvc := operator.NewService(operatorRepo)

	reportRepo := report.NewRepository(database)

	handler := api.NewHandler(productSvc, orderSvc, operatorSvc, reportRepo, stats)
	router := api.NewRouter(handler)

	logger.L().Info("POS server starting",
		zap.String("port", cfg.AppPort),
		zap.Bool("allow_negative_stock", cfg.AllowNegativeStock),
	)

	if err := http.ListenAndServe(":"+cfg.AppPort, router); err != nil {
		logger.L().Error("server stopped", zap.Error(err))
		os.Exit(1)
	}
}
