// 导入示例问题
//
// 从 YAML 文件读取问题并以指定企业账号的身份发布，校验规则与 API 相同。
//
// 用法: go run scripts/seed_problems.go -file scripts/problems.yaml -owner acme

package main

import (
	"context"
	"engineer_connect_backend/internal/config"
	"engineer_connect_backend/internal/model"
	"engineer_connect_backend/internal/repository"
	"engineer_connect_backend/internal/service"
	"engineer_connect_backend/pkg/database"
	"engineer_connect_backend/pkg/logger"
	"flag"
	"log"
	"os"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

type seedQuestion struct {
	Question string   `yaml:"question"`
	Type     string   `yaml:"type"`
	Options  []string `yaml:"options"`
	Correct  string   `yaml:"correct"`
	Points   int      `yaml:"points"`
}

type seedProblem struct {
	Company      string         `yaml:"company"`
	Branch       string         `yaml:"branch"`
	Title        string         `yaml:"title"`
	Description  string         `yaml:"description"`
	VideoURL     string         `yaml:"video_url"`
	Difficulty   string         `yaml:"difficulty"`
	Tags         []string       `yaml:"tags"`
	PassingScore int            `yaml:"passing_score"`
	Questions    []seedQuestion `yaml:"questions"`
}

func (p seedProblem) input() service.ProblemInput {
	in := service.ProblemInput{
		Company:     p.Company,
		Branch:      p.Branch,
		Title:       p.Title,
		Description: p.Description,
		VideoURL:    p.VideoURL,
		Difficulty:  p.Difficulty,
		Tags:        service.TagList(p.Tags),
	}
	if len(p.Questions) == 0 {
		return in
	}

	in.Quiz = model.QuizDefinition{Enabled: true, PassingScore: p.PassingScore}
	for _, q := range p.Questions {
		question := model.QuizQuestion{
			Question: q.Question,
			Type:     model.QuestionType(q.Type),
			Points:   q.Points,
		}
		if question.Type == model.MultipleChoice {
			for _, opt := range q.Options {
				question.Options = append(question.Options, model.QuizOption{Text: opt, IsCorrect: opt == q.Correct})
			}
		} else {
			question.CorrectAnswer = q.Correct
		}
		in.Quiz.Questions = append(in.Quiz.Questions, question)
	}
	return in
}

func main() {
	file := flag.String("file", "scripts/problems.yaml", "YAML file with problems")
	owner := flag.String("owner", "", "username of the company or admin account that posts the problems")
	flag.Parse()

	if *owner == "" {
		log.Fatal("-owner is required")
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("无法读取问题文件: %v", err)
	}

	var problems []seedProblem
	if err := yaml.Unmarshal(data, &problems); err != nil {
		log.Fatalf("解析问题文件失败: %v", err)
	}

	cfg, err := config.LoadConfig("configs")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}
	logger.InitLogger(cfg)
	defer logger.Sync()

	db, err := database.Open(&cfg.Database, cfg.Server.Mode)
	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	ctx := context.Background()
	user, err := repository.NewUserRepository(db).FindByUsername(ctx, *owner)
	if err != nil {
		log.Fatalf("owner %q not found: %v", *owner, err)
	}
	if user.Role != model.Company && user.Role != model.Admin {
		log.Fatalf("owner %q has role %s, need company or admin", *owner, user.Role)
	}

	problemRepo := repository.NewProblemRepository(db)
	problemService := service.NewProblemService(problemRepo, repository.NewViewCounter(nil, problemRepo))

	created := 0
	for _, p := range problems {
		problem, err := problemService.Create(ctx, user, p.input())
		if err != nil {
			logger.Log.Error("Skipping problem", zap.String("title", p.Title), zap.Error(err))
			continue
		}
		created++
		logger.Log.Info("Problem created", zap.Uint("id", problem.ID), zap.String("title", problem.Title))
	}

	log.Printf("完成！共导入 %d/%d 个问题", created, len(problems))
}
