package database

import (
	"errors"
	"fmt"
	"survey_backend/internal/config"
	"survey_backend/internal/model"
	"survey_backend/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// 预置的问卷类型，ID 固定以便客户端直接引用
var defaultSurveyTypes = []model.SurveyType{
	{BaseModel: model.BaseModel{ID: 1}, Name: "single choice"},
	{BaseModel: model.BaseModel{ID: 2}, Name: "multiple choice", MultipleChoice: true},
	{BaseModel: model.BaseModel{ID: 3}, Name: "quiz", Quiz: true},
	{BaseModel: model.BaseModel{ID: 4}, Name: "multiple choice quiz", MultipleChoice: true, Quiz: true},
}

// Dialector 根据 driver 生成 gorm 方言
func Dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case "postgres":
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
			cfg.Host,
			cfg.Port,
			cfg.User,
			cfg.Password,
			cfg.DBName,
			cfg.SSLMode,
		)
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// InitDB 建立连接；release 模式下只有显式要求时才迁移
func InitDB(cfg *config.Config) (*gorm.DB, error) {
	dialector, err := Dialector(&cfg.Database)
	if err != nil {
		return nil, err
	}

	logLevel := gormlogger.Warn
	if cfg.Server.Mode == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Database.Driver))

	if cfg.Server.Mode != "release" || cfg.ForceMigrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
	} else {
		logger.Log.Info("Skipping migration in release mode, use -migrate to force")
	}

	return db, nil
}

func Migrate(db *gorm.DB) error {
	err := db.AutoMigrate(
		&model.Role{},
		&model.User{},
		&model.SurveyType{},
		&model.SurveyGroup{},
		&model.Survey{},
		&model.Answer{},
		&model.Result{},
	)
	if err != nil {
		return err
	}
	logger.Log.Info("Database migration completed")

	return Seed(db)
}

// Seed 写入默认角色和问卷类型，已存在则跳过
func Seed(db *gorm.DB) error {
	for _, name := range []string{model.RoleUser, model.RoleAdmin} {
		role := model.Role{Name: name}
		if err := db.Where("name = ?", name).FirstOrCreate(&role).Error; err != nil {
			return err
		}
	}

	for _, t := range defaultSurveyTypes {
		var existing model.SurveyType
		err := db.First(&existing, t.ID).Error
		if err == nil {
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		st := t
		if err := db.Create(&st).Error; err != nil {
			return err
		}
	}
	return nil
}
