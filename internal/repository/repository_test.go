package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"campus-board/internal/model"
	pkgerrors "campus-board/pkg/errors"
)

// ═══════════════════════════════════════════════════════════
// Test Setup
// ═══════════════════════════════════════════════════════════

// newTestDB 每个测试独立的内存 SQLite，单连接保证所有语句落在同一个库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, db.AutoMigrate(
		&model.Post{},
		&model.Session{},
		&model.Semester{},
		&model.ActivityLog{},
	))
	return db
}

func strPtr(s string) *string { return &s }

func createPost(t *testing.T, repo PostRepository, title, summary *string, kind model.PostKind) *model.Post {
	t.Helper()
	p := &model.Post{Title: title, Summary: summary, PostedAs: kind}
	require.NoError(t, repo.Create(context.Background(), p))
	return p
}

func postIDs(posts []model.Post) []uint {
	ids := make([]uint, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}
	return ids
}

// ═══════════════════════════════════════════════════════════
// Post: Search
// ═══════════════════════════════════════════════════════════

func TestPostRepo_Search_MatchesAnyFieldOnce(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	ctx := context.Background()

	// 三个字段都命中 "event"
	all := createPost(t, repo, strPtr("Event week"), strPtr("An event for everyone"), model.PostKindEvent)
	titleOnly := createPost(t, repo, strPtr("Sports EVENT"), nil, model.PostKindNews)
	summaryOnly := createPost(t, repo, strPtr("Library"), strPtr("Late-night event"), model.PostKindNews)
	kindOnly := createPost(t, repo, nil, nil, model.PostKindEvent)
	createPost(t, repo, strPtr("Exam timetable"), strPtr("Published today"), model.PostKindNews)

	got, err := repo.Search(ctx, "event")
	require.NoError(t, err)

	assert.ElementsMatch(t, []uint{all.ID, titleOnly.ID, summaryOnly.ID, kindOnly.ID}, postIDs(got))
}

func TestPostRepo_Search_CaseInsensitive(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	p := createPost(t, repo, strPtr("Welcome Back"), nil, model.PostKindNews)

	for _, q := range []string{"welcome", "WELCOME", "come ba", "news", "NeWs"} {
		got, err := repo.Search(context.Background(), q)
		require.NoError(t, err)
		assert.Equal(t, []uint{p.ID}, postIDs(got), "query=%q", q)
	}
}

func TestPostRepo_Search_EmptyQueryReturnsAll(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))

	a := createPost(t, repo, strPtr("A"), strPtr("alpha"), model.PostKindNews)
	b := createPost(t, repo, nil, nil, model.PostKindEvent)
	c := createPost(t, repo, strPtr("C"), nil, model.PostKindNews)

	got, err := repo.Search(context.Background(), "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{a.ID, b.ID, c.ID}, postIDs(got))
}

func TestPostRepo_Search_NoMatchIsEmpty(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	createPost(t, repo, strPtr("Welcome"), nil, model.PostKindNews)

	got, err := repo.Search(context.Background(), "graduation")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestPostRepo_Search_WildcardsAreLiteral(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	pct := createPost(t, repo, strPtr("100% attendance"), nil, model.PostKindNews)
	createPost(t, repo, strPtr("Open day"), nil, model.PostKindNews)

	got, err := repo.Search(context.Background(), "%")
	require.NoError(t, err)
	assert.Equal(t, []uint{pct.ID}, postIDs(got))

	got, err = repo.Search(context.Background(), "_")
	require.NoError(t, err)
	assert.Empty(t, got)
}

// ═══════════════════════════════════════════════════════════
// Post: GetByID / CRUD
// ═══════════════════════════════════════════════════════════

func TestPostRepo_GetByID(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	ctx := context.Background()
	p := createPost(t, repo, strPtr("Welcome"), nil, model.PostKindNews)

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Welcome", *got.Title)
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := repo.GetByID(ctx, p.ID+100)
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestPostRepo_UpdateRefreshesTimestamp(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	ctx := context.Background()
	p := createPost(t, repo, strPtr("Draft"), nil, model.PostKindNews)
	created := p.CreatedAt
	firstUpdate := p.UpdatedAt

	time.Sleep(5 * time.Millisecond)
	p.Title = strPtr("Final")
	require.NoError(t, repo.Update(ctx, p))

	got, err := repo.GetByID(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", *got.Title)
	assert.True(t, got.UpdatedAt.After(firstUpdate), "updated_at 应刷新")
	assert.True(t, got.CreatedAt.Equal(created), "created_at 不应变化")
}

func TestPostRepo_RejectsUnknownKind(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	err := repo.Create(context.Background(), &model.Post{Title: strPtr("x"), PostedAs: "Notice"})
	assert.Error(t, err)
}

func TestPostRepo_ListAndDelete(t *testing.T) {
	repo := NewPostRepo(newTestDB(t))
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		createPost(t, repo, strPtr("p"), nil, model.PostKindNews)
	}

	page, total, err := repo.List(ctx, 0, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, page, 2)

	require.NoError(t, repo.Delete(ctx, page[0].ID))
	_, total, err = repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
}

// ═══════════════════════════════════════════════════════════
// Session / Semester
// ═══════════════════════════════════════════════════════════

func TestSessionRepo_DeleteCascadesSemesters(t *testing.T) {
	db := newTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	s1 := &model.Session{Name: "2025/2026", IsCurrent: true}
	s2 := &model.Session{Name: "2026/2027"}
	require.NoError(t, repo.Session.Create(ctx, s1))
	require.NoError(t, repo.Session.Create(ctx, s2))

	for _, n := range []model.SemesterName{model.SemesterFirst, model.SemesterSecond} {
		require.NoError(t, repo.Semester.Create(ctx, &model.Semester{Name: n, SessionID: &s1.ID}))
	}
	keep := &model.Semester{Name: model.SemesterFirst, SessionID: &s2.ID}
	require.NoError(t, repo.Semester.Create(ctx, keep))

	require.NoError(t, repo.Session.Delete(ctx, s1.ID))

	left, err := repo.Semester.List(ctx, nil)
	require.NoError(t, err)
	require.Len(t, left, 1)
	assert.Equal(t, keep.ID, left[0].ID)

	_, err = repo.Session.GetByID(ctx, s1.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestSessionRepo_DuplicateName(t *testing.T) {
	repo := NewSessionRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, &model.Session{Name: "2025/2026"}))
	err := repo.Create(ctx, &model.Session{Name: "2025/2026"})
	assert.True(t, pkgerrors.IsDuplicateKey(err), "期望唯一约束冲突，实际: %v", err)
}

func TestSessionRepo_GetCurrent(t *testing.T) {
	repo := NewSessionRepo(newTestDB(t))
	ctx := context.Background()

	_, err := repo.GetCurrent(ctx)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	require.NoError(t, repo.Create(ctx, &model.Session{Name: "2024/2025"}))
	cur := &model.Session{Name: "2025/2026", IsCurrent: true}
	require.NoError(t, repo.Create(ctx, cur))

	got, err := repo.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, cur.ID, got.ID)
}

func TestSemesterRepo_ListBySessionAndPreload(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	start := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	s := &model.Session{Name: "2026/2027", NextSessionStartDate: &start}
	require.NoError(t, repo.Session.Create(ctx, s))
	sem := &model.Semester{Name: model.SemesterThird, SessionID: &s.ID, IsCurrent: true}
	require.NoError(t, repo.Semester.Create(ctx, sem))
	require.NoError(t, repo.Semester.Create(ctx, &model.Semester{Name: model.SemesterFirst}))

	list, err := repo.Semester.List(ctx, &s.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.NotNil(t, list[0].Session)
	assert.Equal(t, "2026/2027", list[0].Session.Name)

	cur, err := repo.Semester.GetCurrent(ctx)
	require.NoError(t, err)
	assert.Equal(t, sem.ID, cur.ID)

	got, err := repo.Session.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, got.NextSessionStartDate)
	assert.Equal(t, "2026-09-01", model.FormatDate(got.NextSessionStartDate))
}

func TestSemesterRepo_RejectsUnknownSession(t *testing.T) {
	repo := NewSemesterRepo(newTestDB(t))
	missing := uint(999)
	err := repo.Create(context.Background(), &model.Semester{Name: model.SemesterFirst, SessionID: &missing})
	assert.True(t, pkgerrors.IsForeignKeyViolation(err), "期望外键冲突，实际: %v", err)
}

// ═══════════════════════════════════════════════════════════
// ActivityLog / Transaction
// ═══════════════════════════════════════════════════════════

func TestActivityLogRepo_CreateAndList(t *testing.T) {
	repo := NewActivityLogRepo(newTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, model.NewSaveEntry("Post", &model.Post{}, "Welcome", true)))
	require.NoError(t, repo.Create(ctx, model.NewDeleteEntry("Session", &model.Session{ID: 7}, "")))

	entries, total, err := repo.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, entries, 2)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "Post with the name Welcome created", all[0].HumanReadable())
	assert.Equal(t, "Session[#7]has been deleted", all[1].HumanReadable())
}

func TestRepository_TransactionRollback(t *testing.T) {
	repo := NewRepository(newTestDB(t))
	ctx := context.Background()

	tx, err := repo.BeginTx(ctx)
	require.NoError(t, err)
	require.NotNil(t, tx)

	txRepo := repo.WithTx(tx)
	require.NoError(t, txRepo.Post.Create(ctx, &model.Post{Title: strPtr("tmp"), PostedAs: model.PostKindNews}))
	require.NoError(t, txRepo.ActivityLog.Create(ctx, model.NewSaveEntry("Post", nil, "tmp", true)))
	require.NoError(t, tx.Rollback().Error)

	_, total, err := repo.Post.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
	_, total, err = repo.ActivityLog.List(ctx, 0, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(0), total)
}

func TestRepository_NoDB(t *testing.T) {
	repo := &Repository{}
	tx, err := repo.BeginTx(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, tx)
	assert.Same(t, repo, repo.WithTx(nil))
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `50\%\_off\\`, escapeLike(`50%_off\`))
}
