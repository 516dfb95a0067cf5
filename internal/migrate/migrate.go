package migrate

import (
	"context"
	"fmt"

	"github.com/Voyagetechsolutions/lasting-impressions-sub000/internal/models"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type MigrateOptions struct {
	WithUploads         bool // хранить загруженные картинки в БД
	CreateFunctionalIdx bool // lower(name) / lower(email) уникальные индексы
	CreateChecks        bool // CHECK-ограничения на остатки и места
	CreateTriggers      bool // триггеры updated_at
}

func DefaultMigrateOptions() MigrateOptions {
	return MigrateOptions{
		WithUploads:         true,
		CreateFunctionalIdx: true,
		CreateChecks:        true,
		CreateTriggers:      true,
	}
}

var shopTables = []string{"categories", "products", "classes", "bookings", "orders", "custom_requests", "contact_messages"}

// MigrateShopDB создаёт схему торговых сущностей: каталог, занятия, брони, заказы, заявки, сообщения.
func MigrateShopDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных магазина")
	db = db.WithContext(ctx)

	if err := createExtensions(db, log); err != nil {
		return err
	}

	log.Info("Создание таблиц магазина")
	modelsAny := []any{
		&models.Category{},
		&models.Product{},
		&models.ClassOffering{},
		&models.Booking{},
		&models.Order{},
		&models.CustomRequest{},
		&models.ContactMessage{},
	}
	if err := db.AutoMigrate(modelsAny...); err != nil {
		log.Error("Не удалось создать таблицы магазина", zap.Error(err))
		return err
	}

	if opt.WithUploads {
		if err := db.AutoMigrate(&models.Upload{}); err != nil {
			log.Error("Не удалось создать таблицу загрузок", zap.Error(err))
			return err
		}
		log.Info("Таблица загрузок создана")
	}

	if opt.CreateTriggers {
		if err := createUpdatedAtTriggers(db, log, shopTables); err != nil {
			return err
		}
	}

	if opt.CreateFunctionalIdx {
		log.Info("Создание уникального индекса на lower(name) категорий")
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_categories_name ON categories (lower(name))`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс на lower(name)", zap.Error(err))
			return err
		}
	}

	if opt.CreateChecks {
		log.Info("Создание CHECK-ограничений")
		checks := []string{
			`ALTER TABLE products DROP CONSTRAINT IF EXISTS chk_products_stock, ADD CONSTRAINT chk_products_stock CHECK (stock >= 0)`,
			`ALTER TABLE classes DROP CONSTRAINT IF EXISTS chk_classes_spots, ADD CONSTRAINT chk_classes_spots CHECK (spots_left >= 0 AND spots_left <= spots)`,
			`ALTER TABLE bookings DROP CONSTRAINT IF EXISTS chk_bookings_attendees, ADD CONSTRAINT chk_bookings_attendees CHECK (attendees > 0)`,
		}
		for _, stmt := range checks {
			if err := db.Exec(stmt).Error; err != nil {
				log.Error("Не удалось создать CHECK-ограничение", zap.String("sql", stmt), zap.Error(err))
				return err
			}
		}
		log.Info("CHECK-ограничения созданы")
	}

	log.Info("Миграция базы данных магазина успешно завершена")
	return nil
}

// MigrateIdentityDB создаёт хранилище учётных записей и профилей.
func MigrateIdentityDB(ctx context.Context, db *gorm.DB, log *zap.Logger, opt MigrateOptions) error {
	log.Info("Начало миграции базы данных учётных записей")
	db = db.WithContext(ctx)

	if err := createExtensions(db, log); err != nil {
		return err
	}

	if err := db.AutoMigrate(&models.User{}, &models.Profile{}); err != nil {
		log.Error("Не удалось создать таблицы учётных записей", zap.Error(err))
		return err
	}

	if opt.CreateTriggers {
		if err := createUpdatedAtTriggers(db, log, []string{"users", "profiles"}); err != nil {
			return err
		}
	}

	if opt.CreateFunctionalIdx {
		log.Info("Создание уникального индекса на lower(email)")
		if err := db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS ux_users_email ON users (lower(email))`).Error; err != nil {
			log.Error("Не удалось создать уникальный индекс на lower(email)", zap.Error(err))
			return err
		}
	}

	if err := db.Exec(`
ALTER TABLE profiles
  DROP CONSTRAINT IF EXISTS fk_profiles_user,
  ADD CONSTRAINT fk_profiles_user FOREIGN KEY (id) REFERENCES users(id) ON DELETE CASCADE;
`).Error; err != nil {
		log.Error("Не удалось создать FK profiles.id -> users.id", zap.Error(err))
		return err
	}

	log.Info("Миграция базы данных учётных записей успешно завершена")
	return nil
}

func createExtensions(db *gorm.DB, log *zap.Logger) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS pgcrypto`).Error; err != nil {
		log.Error("Не удалось включить расширение pgcrypto", zap.Error(err))
		return err
	}
	return nil
}

func createUpdatedAtTriggers(db *gorm.DB, log *zap.Logger, tables []string) error {
	log.Info("Создание триггеров updated_at", zap.Strings("tables", tables))
	if err := db.Exec(`
CREATE OR REPLACE FUNCTION set_updated_at() RETURNS trigger AS $$
BEGIN NEW.updated_at = now(); RETURN NEW; END; $$ LANGUAGE plpgsql;
`).Error; err != nil {
		log.Error("Не удалось создать функцию set_updated_at", zap.Error(err))
		return err
	}
	for _, table := range tables {
		stmt := fmt.Sprintf(`
DROP TRIGGER IF EXISTS trg_%[1]s_updated ON %[1]s;
CREATE TRIGGER trg_%[1]s_updated BEFORE UPDATE ON %[1]s
FOR EACH ROW EXECUTE FUNCTION set_updated_at();
`, table)
		if err := db.Exec(stmt).Error; err != nil {
			log.Error("Не удалось создать триггер updated_at", zap.String("table", table), zap.Error(err))
			return err
		}
	}
	return nil
}
