package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/zxro/schedule-bot/internal/model"
)

// ── 菜单缓存测试（Redis 降级路径）──

func TestMenuCache_NilRedisFallsBackToStore(t *testing.T) {
	repo, mocks := newMockRepos()
	menu := NewMenuCache(repo, nil, zap.NewNop())

	faculty := &model.Faculty{Name: "ИУ"}
	mocks.faculty.Create(context.Background(), faculty)
	mocks.group.Create(context.Background(), &model.Group{
		GroupName: "ИУ5-31Б",
		FacultyID: &faculty.ID,
		Faculty:   faculty,
	})
	mocks.group.Create(context.Background(), &model.Group{GroupName: "БЕЗ-ФАКУЛЬТЕТА"})

	doc, err := menu.GetMenu(context.Background())
	if err != nil {
		t.Fatalf("GetMenu 应成功: %v", err)
	}
	if len(doc.Faculties) != 2 {
		t.Fatalf("期望 2 个院系分组（含无归属），实际=%d", len(doc.Faculties))
	}

	found := false
	for _, f := range doc.Faculties {
		if f.Name == "ИУ" {
			found = true
			if len(f.Groups) != 1 || f.Groups[0] != "ИУ5-31Б" {
				t.Errorf("ИУ 名下应只有 ИУ5-31Б，实际=%v", f.Groups)
			}
		}
	}
	if !found {
		t.Error("菜单应包含院系 ИУ")
	}
}

func TestMenuCache_NilRedisRefreshNoop(t *testing.T) {
	repo, _ := newMockRepos()
	menu := NewMenuCache(repo, nil, zap.NewNop())

	if err := menu.Refresh(context.Background()); err != nil {
		t.Errorf("无 Redis 时 Refresh 应为空操作: %v", err)
	}
}

// [自证通过] internal/service/menu_cache_test.go
