package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	dom "tasktracker/internal/domain"
	"tasktracker/internal/recurrence"
	"tasktracker/internal/repo"

	"github.com/jackc/pgx/v5"
)

// fakeTaskRepo keeps tasks in memory and mirrors the store's visibility
// predicates: list queries require owner-or-shared, single lookups also let
// ownerless rows through.
type fakeTaskRepo struct {
	tasks  []dom.Task
	nextID int64
}

func (f *fakeTaskRepo) Query(_ context.Context, q repo.TaskFilter) ([]dom.Task, error) {
	var out []dom.Task
	for _, t := range f.tasks {
		if q.ActorID != nil {
			if t.OwnerID == nil || (*t.OwnerID != *q.ActorID && !t.IsShared) {
				continue
			}
		}
		if q.Status != "" && string(t.Status) != q.Status {
			continue
		}
		if q.Priority != "" && string(t.Priority) != q.Priority {
			continue
		}
		if q.Date != nil {
			due := t.DueDate != nil && recurrence.Day(*t.DueDate).Equal(recurrence.Day(*q.Date))
			if !due && !recurrence.ActiveOn(t, *q.Date) {
				continue
			}
		}
		out = append(out, t)
	}
	return out, nil
}

func (f *fakeTaskRepo) QueryRange(_ context.Context, actorID *int64, start, end time.Time) ([]dom.Task, error) {
	var out []dom.Task
	for _, t := range f.tasks {
		if actorID != nil {
			if t.OwnerID == nil || (*t.OwnerID != *actorID && !t.IsShared) {
				continue
			}
		}
		inWindow := t.DueDate != nil &&
			!recurrence.Day(*t.DueDate).Before(recurrence.Day(start)) &&
			!recurrence.Day(*t.DueDate).After(recurrence.Day(end))
		if inWindow || recurrence.ActiveOn(t, start) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeTaskRepo) GetByID(_ context.Context, id int64, actorID *int64) (dom.Task, error) {
	for _, t := range f.tasks {
		if t.ID != id {
			continue
		}
		if actorID != nil && t.OwnerID != nil && *t.OwnerID != *actorID && !t.IsShared {
			return dom.Task{}, pgx.ErrNoRows
		}
		return t, nil
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (f *fakeTaskRepo) Create(_ context.Context, t dom.Task) (dom.Task, error) {
	f.nextID++
	t.ID = f.nextID
	f.tasks = append(f.tasks, t)
	return t, nil
}

func (f *fakeTaskRepo) Update(_ context.Context, id int64, t dom.Task) (dom.Task, error) {
	for i, cur := range f.tasks {
		if cur.ID == id {
			t.ID = id
			t.OwnerID = cur.OwnerID
			t.IsShared = cur.IsShared
			t.Status = cur.Status
			f.tasks[i] = t
			return t, nil
		}
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (f *fakeTaskRepo) UpdateStatus(_ context.Context, id int64, status dom.Status) (dom.Task, error) {
	for i, cur := range f.tasks {
		if cur.ID == id {
			f.tasks[i].Status = status
			return f.tasks[i], nil
		}
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (f *fakeTaskRepo) SetShared(_ context.Context, id int64, shared bool) (dom.Task, error) {
	for i, cur := range f.tasks {
		if cur.ID == id {
			f.tasks[i].IsShared = shared
			return f.tasks[i], nil
		}
	}
	return dom.Task{}, pgx.ErrNoRows
}

func (f *fakeTaskRepo) Delete(_ context.Context, id int64) (bool, error) {
	for i, cur := range f.tasks {
		if cur.ID == id {
			f.tasks = append(f.tasks[:i], f.tasks[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeTaskRepo) Counts(_ context.Context, actorID *int64) (repo.TaskCounts, error) {
	var c repo.TaskCounts
	for _, t := range f.tasks {
		if actorID != nil {
			if t.OwnerID == nil || (*t.OwnerID != *actorID && !t.IsShared) {
				continue
			}
		}
		c.Total++
		if t.Status == dom.StatusComplete {
			c.Complete++
		} else {
			c.Incomplete++
		}
	}
	return c, nil
}

func newTestService() (*TaskService, *fakeTaskRepo) {
	f := &fakeTaskRepo{}
	return NewTaskService(f, nil), f
}

func ptr(v int64) *int64 { return &v }

func TestCreateValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	tests := []struct {
		name    string
		in      CreateTaskInput
		wantErr bool
	}{
		{"empty title", CreateTaskInput{Title: "   "}, true},
		{"title at limit", CreateTaskInput{Title: strings.Repeat("a", 200)}, false},
		{"title over limit", CreateTaskInput{Title: strings.Repeat("a", 201)}, true},
		{"description over limit", CreateTaskInput{Title: "ok", Description: strings.Repeat("b", 1001)}, true},
		{"bad recurrence type", CreateTaskInput{Title: "ok", RecurringType: "hourly"}, true},
		{"bad recurrence time", CreateTaskInput{Title: "ok", RecurringType: "daily", RecurringTime: "9am"}, true},
		{"good recurrence", CreateTaskInput{Title: "ok", RecurringType: "daily", RecurringTime: "09:30"}, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, 1, tc.in)
			if tc.wantErr {
				if !errors.Is(err, ErrValidation) {
					t.Fatalf("want ErrValidation, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestCreateCoercesPriority(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	for _, bad := range []string{"", "urgent", "HIGH"} {
		created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "t", Priority: bad})
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if created.Priority != dom.PriorityMedium {
			t.Errorf("priority %q coerced to %q, want medium", bad, created.Priority)
		}
	}
}

func TestListVisibility(t *testing.T) {
	svc, f := newTestService()
	ctx := context.Background()

	if _, err := svc.Create(ctx, 1, CreateTaskInput{Title: "mine"}); err != nil {
		t.Fatal(err)
	}
	theirs, err := svc.Create(ctx, 2, CreateTaskInput{Title: "theirs"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetShared(ctx, theirs.ID, ptr(2), true); err != nil {
		t.Fatal(err)
	}
	// legacy row without an owner
	f.tasks = append(f.tasks, dom.Task{ID: 99, Title: "legacy"})

	list, err := svc.List(ctx, ptr(1), ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("actor 1 sees %d tasks, want 2 (own + shared)", len(list))
	}
	for _, task := range list {
		if task.Title == "legacy" {
			t.Error("ownerless rows must not appear in scoped lists")
		}
	}

	all, err := svc.List(ctx, nil, ListFilter{})
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 3 {
		t.Fatalf("unscoped list sees %d tasks, want 3", len(all))
	}
}

func TestGetCollapsesForbiddenToNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "private"})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := svc.Get(ctx, created.ID, ptr(2)); !errors.Is(err, ErrNotFound) {
		t.Errorf("stranger lookup: want ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, 12345, ptr(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("absent row: want ErrNotFound, got %v", err)
	}
	if _, err := svc.Get(ctx, created.ID, ptr(1)); err != nil {
		t.Errorf("owner lookup: %v", err)
	}
}

func TestGetAllowsOwnerlessRows(t *testing.T) {
	svc, f := newTestService()
	f.tasks = append(f.tasks, dom.Task{ID: 5, Title: "legacy"})

	got, err := svc.Get(context.Background(), 5, ptr(9))
	if err != nil {
		t.Fatalf("ownerless lookup: %v", err)
	}
	if got.Title != "legacy" {
		t.Errorf("got %q", got.Title)
	}
}

func TestCollaboratorMayEditSharedTask(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "shared plan"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetShared(ctx, created.ID, ptr(1), true); err != nil {
		t.Fatal(err)
	}

	title := "revised by collaborator"
	updated, err := svc.Update(ctx, created.ID, ptr(2), UpdateTaskInput{Title: &title})
	if err != nil {
		t.Fatalf("collaborator update: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q", updated.Title)
	}

	if _, err := svc.SetStatus(ctx, created.ID, ptr(2), "complete"); err != nil {
		t.Fatalf("collaborator status change: %v", err)
	}
}

func TestSetSharedOwnerOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "mine"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetShared(ctx, created.ID, ptr(1), true); err != nil {
		t.Fatal(err)
	}

	// the collaborator can see and edit it, but not flip sharing
	if _, err := svc.SetShared(ctx, created.ID, ptr(2), false); !errors.Is(err, ErrNotFound) {
		t.Errorf("non-owner share toggle: want ErrNotFound, got %v", err)
	}
	// and neither can an unscoped caller
	if _, err := svc.SetShared(ctx, created.ID, nil, false); !errors.Is(err, ErrNotFound) {
		t.Errorf("nil actor share toggle: want ErrNotFound, got %v", err)
	}
}

func TestSetStatusRejectsUnknown(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.SetStatus(ctx, created.ID, ptr(1), "done"); !errors.Is(err, ErrValidation) {
		t.Errorf("want ErrValidation, got %v", err)
	}
	got, err := svc.SetStatus(ctx, created.ID, ptr(1), "complete")
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != dom.StatusComplete {
		t.Errorf("status = %q", got.Status)
	}
}

func TestDeleteTwice(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateTaskInput{Title: "t"})
	if err != nil {
		t.Fatal(err)
	}
	if err := svc.Delete(ctx, created.ID, ptr(1)); err != nil {
		t.Fatalf("first delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID, ptr(1)); !errors.Is(err, ErrNotFound) {
		t.Errorf("second delete: want ErrNotFound, got %v", err)
	}
}

func TestUpdateClearsRecurrence(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	end := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	created, err := svc.Create(ctx, 1, CreateTaskInput{
		Title: "t", RecurringType: "daily", RecurringTime: "08:00", RecurringEndDate: &end,
	})
	if err != nil {
		t.Fatal(err)
	}

	empty := ""
	updated, err := svc.Update(ctx, created.ID, ptr(1), UpdateTaskInput{RecurringType: &empty})
	if err != nil {
		t.Fatal(err)
	}
	if updated.RecurringType != nil || updated.RecurringTime != nil || updated.RecurringEndDate != nil {
		t.Error("clearing recurring_type must drop the whole rule")
	}
}

func TestCounts(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	a, _ := svc.Create(ctx, 1, CreateTaskInput{Title: "a"})
	svc.Create(ctx, 1, CreateTaskInput{Title: "b"})
	svc.Create(ctx, 2, CreateTaskInput{Title: "c"})
	if _, err := svc.SetStatus(ctx, a.ID, ptr(1), "complete"); err != nil {
		t.Fatal(err)
	}

	c, err := svc.Counts(ctx, ptr(1))
	if err != nil {
		t.Fatal(err)
	}
	if c.Total != 2 || c.Complete != 1 || c.Incomplete != 1 {
		t.Errorf("counts = %+v", c)
	}

	all, err := svc.Counts(ctx, nil)
	if err != nil {
		t.Fatal(err)
	}
	if all.Total != 3 {
		t.Errorf("unscoped total = %d, want 3", all.Total)
	}
}

func TestListDateFilterIncludesActiveRecurring(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	past := time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC)

	svc.Create(ctx, 1, CreateTaskInput{Title: "due that day", DueDate: &day})
	svc.Create(ctx, 1, CreateTaskInput{Title: "weekly open-ended", RecurringType: "weekly"})
	svc.Create(ctx, 1, CreateTaskInput{Title: "daily expired", RecurringType: "daily", RecurringEndDate: &past})
	svc.Create(ctx, 1, CreateTaskInput{Title: "unrelated"})

	list, err := svc.List(ctx, ptr(1), ListFilter{Date: &day})
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 2 {
		t.Fatalf("got %d tasks, want 2", len(list))
	}
	for _, task := range list {
		if task.Title != "due that day" && task.Title != "weekly open-ended" {
			t.Errorf("unexpected task %q in date-filtered list", task.Title)
		}
	}
}

func TestForDateExpandsDailyOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	svc.Create(ctx, 1, CreateTaskInput{Title: "stretch", RecurringType: "daily"})
	svc.Create(ctx, 1, CreateTaskInput{Title: "review", RecurringType: "weekly"})

	day := time.Date(2025, 4, 10, 0, 0, 0, 0, time.UTC)
	list, err := svc.ForDate(ctx, ptr(1), day)
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Title != "stretch" {
		t.Errorf("calendar day holds %v, want only the daily task", titles(list))
	}
}

func titles(tasks []dom.Task) []string {
	out := make([]string, len(tasks))
	for i, t := range tasks {
		out[i] = t.Title
	}
	return out
}
