package service

import (
	"context"
	"errors"
	"testing"

	"campus-board/internal/dto"
	"campus-board/internal/model"
)

func setupTestSessionService() (SessionService, SemesterService, *mockRepos) {
	repo, m := newMockRepository()
	return NewSessionService(repo, testLogger()), NewSemesterService(repo, testLogger()), m
}

func TestSessionService_Create_Success(t *testing.T) {
	svc, _, m := setupTestSessionService()

	got, err := svc.Create(context.Background(), &dto.CreateSessionRequest{
		Name:                 "2024/2025",
		IsCurrent:            true,
		NextSessionStartDate: "2025-09-08",
	})
	if err != nil {
		t.Fatalf("Create 应成功: %v", err)
	}
	if got.NextSessionStartDate != "2025-09-08" {
		t.Errorf("期望日期=2025-09-08，实际=%s", got.NextSessionStartDate)
	}
	if want := "Session with the name 2024/2025 created"; m.logs.entries[0].HumanReadable() != want {
		t.Errorf("期望 %q，实际 %q", want, m.logs.entries[0].HumanReadable())
	}
}

func TestSessionService_Create_DuplicateName(t *testing.T) {
	svc, _, m := setupTestSessionService()
	req := &dto.CreateSessionRequest{Name: "2024/2025"}

	if _, err := svc.Create(context.Background(), req); err != nil {
		t.Fatalf("首次 Create 应成功: %v", err)
	}
	if _, err := svc.Create(context.Background(), req); !errors.Is(err, ErrSessionNameTaken) {
		t.Errorf("期望 ErrSessionNameTaken，实际: %v", err)
	}
	if len(m.logs.entries) != 1 {
		t.Errorf("失败的创建不应记录日志，实际 %d 条", len(m.logs.entries))
	}
}

func TestSessionService_Create_BadDate(t *testing.T) {
	svc, _, _ := setupTestSessionService()

	_, err := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "x", NextSessionStartDate: "08/09/2025"})
	if !errors.Is(err, ErrSessionDateInvalid) {
		t.Errorf("期望 ErrSessionDateInvalid，实际: %v", err)
	}
}

func TestSessionService_GetCurrent(t *testing.T) {
	svc, _, _ := setupTestSessionService()

	if _, err := svc.GetCurrent(context.Background()); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("无当前学年时期望 ErrSessionNotFound，实际: %v", err)
	}

	svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2023/2024"})
	svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2024/2025", IsCurrent: true})

	got, err := svc.GetCurrent(context.Background())
	if err != nil {
		t.Fatalf("GetCurrent 应成功: %v", err)
	}
	if got.Name != "2024/2025" {
		t.Errorf("期望 2024/2025，实际=%s", got.Name)
	}
}

func TestSessionService_List_NewestFirst(t *testing.T) {
	svc, _, _ := setupTestSessionService()
	svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2022/2023"})
	svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2024/2025"})

	got, err := svc.List(context.Background())
	if err != nil {
		t.Fatalf("List 应成功: %v", err)
	}
	if len(got) != 2 || got[0].Name != "2024/2025" {
		t.Errorf("期望按名称倒序，实际=%+v", got)
	}
}

func TestSessionService_Update(t *testing.T) {
	svc, _, m := setupTestSessionService()
	created, _ := svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2024/2025", NextSessionStartDate: "2025-09-01"})
	svc.Create(context.Background(), &dto.CreateSessionRequest{Name: "2025/2026"})

	got, err := svc.Update(context.Background(), created.ID, &dto.UpdateSessionRequest{
		IsCurrent:            boolPtr(true),
		NextSessionStartDate: strPtr(""),
	})
	if err != nil {
		t.Fatalf("Update 应成功: %v", err)
	}
	if !got.IsCurrent || got.NextSessionStartDate != "" {
		t.Errorf("更新结果不符: %+v", got)
	}
	last := m.logs.entries[len(m.logs.entries)-1]
	if want := "Session[#1] with the name 2024/2025 has been updated"; last.HumanReadable() != want {
		t.Errorf("期望 %q，实际 %q", want, last.HumanReadable())
	}

	_, err = svc.Update(context.Background(), created.ID, &dto.UpdateSessionRequest{Name: strPtr("2025/2026")})
	if !errors.Is(err, ErrSessionNameTaken) {
		t.Errorf("期望 ErrSessionNameTaken，实际: %v", err)
	}

	_, err = svc.Update(context.Background(), 99, &dto.UpdateSessionRequest{})
	if !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}

func TestSessionService_Delete_CascadesSemesters(t *testing.T) {
	svc, semSvc, m := setupTestSessionService()
	ctx := context.Background()

	session, _ := svc.Create(ctx, &dto.CreateSessionRequest{Name: "2024/2025"})
	other, _ := svc.Create(ctx, &dto.CreateSessionRequest{Name: "2025/2026"})
	for _, name := range []string{"First", "Second"} {
		if _, err := semSvc.Create(ctx, &dto.CreateSemesterRequest{Name: name, SessionID: uintPtr(session.ID)}); err != nil {
			t.Fatalf("创建学期失败: %v", err)
		}
	}
	kept, _ := semSvc.Create(ctx, &dto.CreateSemesterRequest{Name: "Third", SessionID: uintPtr(other.ID)})
	logsBefore := len(m.logs.entries)

	if err := svc.Delete(ctx, session.ID); err != nil {
		t.Fatalf("Delete 应成功: %v", err)
	}

	if len(m.semesters.semesters) != 1 {
		t.Fatalf("期望仅剩 1 个学期，实际=%d", len(m.semesters.semesters))
	}
	if _, ok := m.semesters.semesters[kept.ID]; !ok {
		t.Error("其他学年的学期不应被删除")
	}
	if len(m.logs.entries) != logsBefore+1 {
		t.Errorf("级联删除只记录一条日志，实际新增 %d 条", len(m.logs.entries)-logsBefore)
	}
	last := m.logs.entries[len(m.logs.entries)-1]
	if last.Operation != model.OperationDelete || last.ModelName != model.ModelNameSession {
		t.Errorf("日志内容不符: %+v", last)
	}
}

func TestSessionService_Delete_NotFound(t *testing.T) {
	svc, _, _ := setupTestSessionService()

	if err := svc.Delete(context.Background(), 5); !errors.Is(err, ErrSessionNotFound) {
		t.Errorf("期望 ErrSessionNotFound，实际: %v", err)
	}
}

func boolPtr(b bool) *bool { return &b }
