// 手动导入演示问卷
//
// 用法: go run scripts/seed_demo.go [fixture.yaml]
// 默认读取 scripts/demo_survey.yaml，已存在的同名分组会被跳过。

package main

import (
	"context"
	"log"
	"os"
	"survey_backend/internal/config"
	"survey_backend/internal/repository"
	"survey_backend/internal/seed"
	"survey_backend/internal/service"
	"survey_backend/pkg/database"
	"survey_backend/pkg/logger"
)

func main() {
	path := "scripts/demo_survey.yaml"
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	data, err := os.ReadFile(path)
	if err != nil {
		log.Fatalf("无法读取演示数据: %v", err)
	}
	fixture, err := seed.Parse(data)
	if err != nil {
		log.Fatalf("解析演示数据失败: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	cfg.ForceMigrate = true
	logger.InitLogger(cfg)

	db, err := database.InitDB(cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	types := repository.NewSurveyTypeRepository(db)
	groups := repository.NewSurveyGroupRepository(db)
	surveys := repository.NewSurveyRepository(db)

	im := &seed.Importer{
		Groups:  service.NewSurveyGroupService(groups, types),
		Surveys: service.NewSurveyService(surveys, groups),
		Answers: service.NewAnswerService(repository.NewAnswerRepository(db), surveys),
	}

	n, err := im.Import(context.Background(), fixture)
	if err != nil {
		log.Fatalf("导入失败: %v", err)
	}
	log.Printf("导入完成，新建 %d 个问卷组", n)
}
