package service

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"github.com/noah-isme/studydash/internal/models"
)

type mockPersonRepo struct {
	items  map[int64]*models.Person
	nextID int64
}

func (m *mockPersonRepo) FindByID(ctx context.Context, id int64) (*models.Person, error) {
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonRepo) FindByMatriculation(ctx context.Context, number string) (*models.Person, error) {
	for _, p := range m.items {
		if p.MatriculationNumber == number {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *mockPersonRepo) Create(ctx context.Context, person *models.Person) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Person)
	}
	m.nextID++
	person.ID = m.nextID
	cp := *person
	m.items[person.ID] = &cp
	return nil
}

func (m *mockPersonRepo) Update(ctx context.Context, person *models.Person) error {
	cp := *person
	m.items[person.ID] = &cp
	return nil
}

type mockProgramRepo struct {
	items   map[int64]*models.Program
	nextID  int64
	deleted []int64
	findErr error
}

func (m *mockProgramRepo) FindByID(ctx context.Context, id int64) (*models.Program, error) {
	if m.findErr != nil {
		return nil, m.findErr
	}
	if p, ok := m.items[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProgramRepo) LatestForPerson(ctx context.Context, personID int64) (*models.Program, error) {
	var latest *models.Program
	for _, p := range m.items {
		if p.PersonID == personID && (latest == nil || p.ID > latest.ID) {
			latest = p
		}
	}
	if latest == nil {
		return nil, sql.ErrNoRows
	}
	cp := *latest
	return &cp, nil
}

func (m *mockProgramRepo) Create(ctx context.Context, program *models.Program) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Program)
	}
	m.nextID++
	program.ID = m.nextID
	cp := *program
	m.items[program.ID] = &cp
	return nil
}

func (m *mockProgramRepo) Update(ctx context.Context, program *models.Program) error {
	cp := *program
	m.items[program.ID] = &cp
	return nil
}

func (m *mockProgramRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

type mockModuleRepo struct {
	items      map[int64]*models.Module
	nextID     int64
	references map[int64]int
	deleted    []int64
}

func (m *mockModuleRepo) List(ctx context.Context) ([]models.Module, error) {
	out := make([]models.Module, 0, len(m.items))
	for _, item := range m.items {
		out = append(out, *item)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (m *mockModuleRepo) FindByID(ctx context.Context, id int64) (*models.Module, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockModuleRepo) ExistsByTitle(ctx context.Context, title string, excludeID int64) (bool, error) {
	for _, item := range m.items {
		if item.Title == title && item.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockModuleRepo) Create(ctx context.Context, module *models.Module) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Module)
	}
	m.nextID++
	module.ID = m.nextID
	cp := *module
	m.items[module.ID] = &cp
	return nil
}

func (m *mockModuleRepo) Update(ctx context.Context, module *models.Module) error {
	cp := *module
	m.items[module.ID] = &cp
	return nil
}

func (m *mockModuleRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

func (m *mockModuleRepo) CountEnrollments(ctx context.Context, id int64) (int, error) {
	return m.references[id], nil
}

type mockEnrollmentRepo struct {
	items     map[int64]*models.Enrollment
	nextID    int64
	lastLimit int
	deleted   []int64
}

func (m *mockEnrollmentRepo) FindByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if item, ok := m.items[id]; ok {
		cp := *item
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockEnrollmentRepo) ListRecent(ctx context.Context, programID int64, limit int) ([]models.EnrollmentDetail, error) {
	m.lastLimit = limit
	out := []models.EnrollmentDetail{}
	for _, item := range m.items {
		if item.ProgramID == programID {
			out = append(out, models.EnrollmentDetail{Enrollment: *item, ModuleTitle: "Statistik", ModuleCredits: 5})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID > out[j].ID })
	return out, nil
}

func (m *mockEnrollmentRepo) Create(ctx context.Context, enrollment *models.Enrollment) error {
	if m.items == nil {
		m.items = make(map[int64]*models.Enrollment)
	}
	m.nextID++
	enrollment.ID = m.nextID
	cp := *enrollment
	m.items[enrollment.ID] = &cp
	return nil
}

func (m *mockEnrollmentRepo) Update(ctx context.Context, enrollment *models.Enrollment) error {
	cp := *enrollment
	m.items[enrollment.ID] = &cp
	return nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, id int64) error {
	m.deleted = append(m.deleted, id)
	delete(m.items, id)
	return nil
}

type stubProgress struct {
	agg         models.ProgressAggregates
	latest      []models.ModuleProgress
	completions []models.Completion
	err         error
}

func (s *stubProgress) Aggregates(ctx context.Context, programID int64) (models.ProgressAggregates, error) {
	return s.agg, s.err
}

func (s *stubProgress) LatestPerModule(ctx context.Context, programID int64) ([]models.ModuleProgress, error) {
	return s.latest, nil
}

func (s *stubProgress) CompletionsChronological(ctx context.Context, programID int64) ([]models.Completion, error) {
	return s.completions, nil
}

type recordingMetrics struct {
	mu         sync.Mutex
	queries    []string
	completion float64
	computed   int
	exports    []string
}

func (r *recordingMetrics) ObserveDBQuery(label string, duration time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.queries = append(r.queries, label)
}

func (r *recordingMetrics) ObserveKPICompute(programID int64, completion float64, duration time.Duration) {
	r.computed++
	r.completion = completion
}

func (r *recordingMetrics) RecordExport(format string) {
	r.exports = append(r.exports, format)
}
