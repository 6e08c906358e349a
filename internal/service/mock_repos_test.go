package service

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"campus-board/internal/model"
	"campus-board/internal/repository"
	"campus-board/internal/search"
)

var errMockStore = errors.New("mock store failure")

// ── Mock PostRepository ──

type mockPostRepo struct {
	posts  map[uint]*model.Post
	nextID uint
}

func newMockPostRepo() *mockPostRepo {
	return &mockPostRepo{posts: make(map[uint]*model.Post), nextID: 1}
}

func (m *mockPostRepo) Create(_ context.Context, post *model.Post) error {
	post.ID = m.nextID
	m.nextID++
	now := time.Now()
	post.CreatedAt, post.UpdatedAt = now, now
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) GetByID(_ context.Context, id uint) (*model.Post, error) {
	if p, ok := m.posts[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (m *mockPostRepo) Search(_ context.Context, query string) ([]model.Post, error) {
	q := strings.ToLower(query)
	var result []model.Post
	for _, p := range m.sorted() {
		title := strings.ToLower(derefTestString(p.Title))
		summary := strings.ToLower(derefTestString(p.Summary))
		kind := strings.ToLower(string(p.PostedAs))
		if strings.Contains(title, q) || strings.Contains(summary, q) || strings.Contains(kind, q) {
			result = append(result, p)
		}
	}
	return result, nil
}

func (m *mockPostRepo) List(_ context.Context, offset, limit int) ([]model.Post, int64, error) {
	all := m.sorted()
	total := int64(len(all))
	if offset > len(all) {
		offset = len(all)
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], total, nil
}

func (m *mockPostRepo) Update(_ context.Context, post *model.Post) error {
	post.UpdatedAt = time.Now()
	cp := *post
	m.posts[post.ID] = &cp
	return nil
}

func (m *mockPostRepo) Delete(_ context.Context, id uint) error {
	delete(m.posts, id)
	return nil
}

func (m *mockPostRepo) sorted() []model.Post {
	result := make([]model.Post, 0, len(m.posts))
	for _, p := range m.posts {
		result = append(result, *p)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result
}

// ── Mock SessionRepository ──

type mockSessionRepo struct {
	sessions  map[uint]*model.Session
	semesters *mockSemesterRepo
	nextID    uint
}

func newMockSessionRepo(semesters *mockSemesterRepo) *mockSessionRepo {
	return &mockSessionRepo{sessions: make(map[uint]*model.Session), semesters: semesters, nextID: 1}
}

func (m *mockSessionRepo) nameTaken(name string, except uint) bool {
	for id, s := range m.sessions {
		if id != except && s.Name == name {
			return true
		}
	}
	return false
}

func (m *mockSessionRepo) Create(_ context.Context, session *model.Session) error {
	if m.nameTaken(session.Name, 0) {
		return gorm.ErrDuplicatedKey
	}
	session.ID = m.nextID
	m.nextID++
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *mockSessionRepo) GetByID(_ context.Context, id uint) (*model.Session, error) {
	if s, ok := m.sessions[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSessionRepo) GetCurrent(_ context.Context) (*model.Session, error) {
	var found *model.Session
	for _, s := range m.sessions {
		if s.IsCurrent && (found == nil || s.ID < found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *mockSessionRepo) List(_ context.Context) ([]model.Session, error) {
	result := make([]model.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Name > result[j].Name })
	return result, nil
}

func (m *mockSessionRepo) Update(_ context.Context, session *model.Session) error {
	if m.nameTaken(session.Name, session.ID) {
		return gorm.ErrDuplicatedKey
	}
	cp := *session
	m.sessions[session.ID] = &cp
	return nil
}

func (m *mockSessionRepo) Delete(_ context.Context, id uint) error {
	if m.semesters != nil {
		for semID, sem := range m.semesters.semesters {
			if sem.SessionID != nil && *sem.SessionID == id {
				delete(m.semesters.semesters, semID)
			}
		}
	}
	delete(m.sessions, id)
	return nil
}

// ── Mock SemesterRepository ──

type mockSemesterRepo struct {
	semesters map[uint]*model.Semester
	nextID    uint
	writeErr  error
}

func newMockSemesterRepo() *mockSemesterRepo {
	return &mockSemesterRepo{semesters: make(map[uint]*model.Semester), nextID: 1}
}

func (m *mockSemesterRepo) Create(_ context.Context, semester *model.Semester) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	semester.ID = m.nextID
	m.nextID++
	cp := *semester
	m.semesters[semester.ID] = &cp
	return nil
}

func (m *mockSemesterRepo) GetByID(_ context.Context, id uint) (*model.Semester, error) {
	if s, ok := m.semesters[id]; ok {
		cp := *s
		return &cp, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (m *mockSemesterRepo) GetCurrent(_ context.Context) (*model.Semester, error) {
	var found *model.Semester
	for _, s := range m.semesters {
		if s.IsCurrent && (found == nil || s.ID < found.ID) {
			found = s
		}
	}
	if found == nil {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *found
	return &cp, nil
}

func (m *mockSemesterRepo) List(_ context.Context, sessionID *uint) ([]model.Semester, error) {
	result := make([]model.Semester, 0, len(m.semesters))
	for _, s := range m.semesters {
		if sessionID != nil && (s.SessionID == nil || *s.SessionID != *sessionID) {
			continue
		}
		result = append(result, *s)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (m *mockSemesterRepo) Update(_ context.Context, semester *model.Semester) error {
	if m.writeErr != nil {
		return m.writeErr
	}
	cp := *semester
	m.semesters[semester.ID] = &cp
	return nil
}

func (m *mockSemesterRepo) Delete(_ context.Context, id uint) error {
	delete(m.semesters, id)
	return nil
}

// ── Mock ActivityLogRepository ──

type mockActivityLogRepo struct {
	entries []model.ActivityLog
	failErr error
}

func newMockActivityLogRepo() *mockActivityLogRepo {
	return &mockActivityLogRepo{}
}

func (m *mockActivityLogRepo) Create(_ context.Context, entry *model.ActivityLog) error {
	if m.failErr != nil {
		return m.failErr
	}
	entry.ID = uint(len(m.entries) + 1)
	entry.CreatedAt = time.Now()
	m.entries = append(m.entries, *entry)
	return nil
}

func (m *mockActivityLogRepo) List(_ context.Context, offset, limit int) ([]model.ActivityLog, int64, error) {
	total := int64(len(m.entries))
	desc := make([]model.ActivityLog, 0, len(m.entries))
	for i := len(m.entries) - 1; i >= 0; i-- {
		desc = append(desc, m.entries[i])
	}
	if offset > len(desc) {
		offset = len(desc)
	}
	end := offset + limit
	if end > len(desc) {
		end = len(desc)
	}
	return desc[offset:end], total, nil
}

func (m *mockActivityLogRepo) ListAll(_ context.Context) ([]model.ActivityLog, error) {
	return append([]model.ActivityLog(nil), m.entries...), nil
}

// ── Mock Cache ──

type mockCache struct {
	data    map[string][]byte
	getErr  error
	deleted []string
}

func newMockCache() *mockCache {
	return &mockCache{data: make(map[string][]byte)}
}

func (m *mockCache) GetJSON(_ context.Context, key string, dest interface{}) (bool, error) {
	if m.getErr != nil {
		return false, m.getErr
	}
	raw, ok := m.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dest)
}

func (m *mockCache) SetJSON(_ context.Context, key string, value interface{}) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.data[key] = raw
	return nil
}

func (m *mockCache) Del(_ context.Context, keys ...string) error {
	for _, k := range keys {
		delete(m.data, k)
		m.deleted = append(m.deleted, k)
	}
	return nil
}

// ── Mock PostIndexer ──

type mockIndexer struct {
	docs     map[uint]search.PostDocument
	indexErr error
}

func newMockIndexer() *mockIndexer {
	return &mockIndexer{docs: make(map[uint]search.PostDocument)}
}

func (m *mockIndexer) IndexPost(_ context.Context, p *model.Post) error {
	if m.indexErr != nil {
		return m.indexErr
	}
	m.docs[p.ID] = search.NewPostDocument(p)
	return nil
}

func (m *mockIndexer) DeletePost(_ context.Context, id uint) error {
	delete(m.docs, id)
	return nil
}

func (m *mockIndexer) SearchPosts(_ context.Context, query string, size int) ([]search.PostDocument, error) {
	var result []search.PostDocument
	for _, d := range m.docs {
		if strings.Contains(strings.ToLower(d.Title+" "+d.Summary), strings.ToLower(query)) {
			result = append(result, d)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	if len(result) > size {
		result = result[:size]
	}
	return result, nil
}

// ── 测试辅助 ──

type mockRepos struct {
	posts     *mockPostRepo
	sessions  *mockSessionRepo
	semesters *mockSemesterRepo
	logs      *mockActivityLogRepo
}

func newMockRepository() (*repository.Repository, *mockRepos) {
	semesters := newMockSemesterRepo()
	m := &mockRepos{
		posts:     newMockPostRepo(),
		sessions:  newMockSessionRepo(semesters),
		semesters: semesters,
		logs:      newMockActivityLogRepo(),
	}
	repo := &repository.Repository{
		Post:        m.posts,
		Session:     m.sessions,
		Semester:    m.semesters,
		ActivityLog: m.logs,
	}
	return repo, m
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func derefTestString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func strPtr(s string) *string { return &s }

func uintPtr(v uint) *uint { return &v }
