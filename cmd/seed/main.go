package main

import (
	"context"
	"database/sql"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/jwc-dev/exam-scheduler/backend/internal/config"
	"github.com/jwc-dev/exam-scheduler/backend/internal/repository"
	"github.com/jwc-dev/exam-scheduler/backend/internal/utils"

	_ "github.com/jackc/pgx/v5/stdlib"
)

func main() {
	var op int
	var n int

	flag.IntVar(&op, "op", 0, "要执行的操作 (1: 插入随机考生, 2: 插入随机考场, 3: 插入随机老师, 4: 插入随机考试)")
	flag.IntVar(&n, "n", 5, "要插入的记录数量")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	// 读取配置文件
	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("无法读取配置文件", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 创建数据库连接池
	dbpool, err := sql.Open("pgx", cfg.Database.DSN)
	if err != nil {
		logger.Error("无法创建数据库连接池", "error", err)
		return
	}
	defer dbpool.Close()

	dbpool.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	dbpool.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	dbpool.SetConnMaxIdleTime(time.Duration(cfg.Database.MaxIdleTime) * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Database.ConnectTimeout)*time.Second)
	defer cancel()

	// sql.Open 只是创建数据库连接池对象，并不会立即连接到数据库，因此需要显式地 ping 一下
	if err := dbpool.PingContext(ctx); err != nil {
		logger.Error("无法连接到数据库", "error", err)
		return
	}

	// 创建 repository
	repo := repository.NewRepository(cfg, dbpool)

	if n <= 0 {
		slog.Error("请输入合法的记录数量")
		return
	}

	// 执行操作
	switch op {
	case 0:
		slog.Error("未指定操作")
	case 1:
		cnt := n
		for i := 0; i < n; i++ {
			student := utils.GenerateRandomStudent()
			if err := repo.CreateStudent(student); err != nil {
				slog.Error("无法插入考生", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入考生成功", slog.Int("count", n-cnt))
	case 2:
		cnt := n
		for i := 0; i < n; i++ {
			room := utils.GenerateRandomRoom()
			if err := repo.CreateRoom(room); err != nil {
				slog.Error("无法插入考场", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入考场成功", slog.Int("count", n-cnt))
	case 3:
		cnt := n
		for i := 0; i < n; i++ {
			teacher := utils.GenerateRandomTeacher(cfg.Email.TeacherDomain)
			if err := repo.CreateTeacher(teacher); err != nil {
				slog.Error("无法插入老师", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入老师成功", slog.Int("count", n-cnt))
	case 4:
		// 考试日期从一周后开始生成
		baseDate := time.Now().AddDate(0, 0, 7)

		cnt := n
		for i := 0; i < n; i++ {
			exam := utils.GenerateRandomExam(baseDate)
			if err := repo.CreateExam(exam); err != nil {
				slog.Error("无法插入考试", slog.String("error", err.Error()))
				continue
			}

			cnt--
		}

		slog.Info("插入考试成功", slog.Int("count", n-cnt))
	default:
		slog.Error("指定的操作非法")
	}
}
