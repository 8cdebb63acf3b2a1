// 手动回填文件学科标签脚本
//
// 正常上传路径会在落库时推导学科标签，该脚本只在历史数据缺标签时
// 使用，例如从旧系统批量导入文档之后。
//
// 用法: go run scripts/backfill_subjects.go

package main

import (
	"log"
	"os"
	"studyhub_backend/internal/config"
	"studyhub_backend/internal/model"
	"studyhub_backend/internal/util"
	"studyhub_backend/pkg/database"
	"studyhub_backend/pkg/logger"

	"gopkg.in/yaml.v3"
)

func main() {
	data, err := os.ReadFile("configs/config.yaml")
	if err != nil {
		log.Fatalf("无法读取配置文件: %v", err)
	}

	var cfg config.Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		log.Fatalf("解析配置文件失败: %v", err)
	}

	logger.InitLogger(&cfg)

	db, err := database.InitDB(&cfg)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	var files []model.File
	if err := db.Where("subject = ? OR subject IS NULL", "").Find(&files).Error; err != nil {
		log.Fatalf("查询文件失败: %v", err)
	}

	log.Printf("待回填文件数: %d", len(files))

	updated := 0
	for i := range files {
		subject := util.SubjectFromFilename(files[i].OriginalName)
		if subject == "" {
			continue
		}
		if err := db.Model(&files[i]).Update("subject", subject).Error; err != nil {
			log.Printf("文件 %d 更新失败: %v", files[i].ID, err)
			continue
		}
		updated++
	}

	log.Printf("完成，共更新 %d 条记录", updated)
}
