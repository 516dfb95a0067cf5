package main

import (
	"context"
	"os"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/config"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/migrate"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/database"
	"github.com/Voyagetechsolutions/lasting-impressions-sub000/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	shopCfg, identityCfg := config.LoadDB(log)

	ctx := context.Background()
	opts := migrate.DefaultMigrateOptions()

	shopDB := database.ConnectDBForMigration(&shopCfg.Config, log)
	defer database.CloseDB(shopDB, log)

	if err := migrate.MigrateShopDB(ctx, shopDB, log, opts); err != nil {
		log.Fatal("Ошибка при миграции базы магазина", zap.Error(err))
	}

	identityDB := shopDB
	if identityCfg.Config != shopCfg.Config {
		identityDB = database.ConnectDBForMigration(&identityCfg.Config, log)
		defer database.CloseDB(identityDB, log)
	}

	if err := migrate.MigrateIdentityDB(ctx, identityDB, log, opts); err != nil {
		log.Fatal("Ошибка при миграции базы пользователей", zap.Error(err))
	}

	log.Info("Миграция успешно завершена")
}
