package store

import (
	"context"
	"testing"
	"time"

	"tableflip.dev/agenda/pkg/task"
)

type testConfig struct {
	path string
}

func (t testConfig) BasePath() string {
	return t.path
}

func newTask(id, title string, rank int) *task.Task {
	return &task.Task{
		ID:      id,
		Type:    task.TypeChore,
		Title:   title,
		Status:  task.StatusTodo,
		Rank:    rank,
		Created: task.Timestamp{Time: time.Date(2026, 8, 19, 9, 0, 0, 0, time.UTC)},
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	in := newTask("t1", "water the plants", 0)
	in.Estimate = 15
	if err := p.Store(in); err != nil {
		t.Fatalf("store task: %v", err)
	}

	out, ok := p.Get(context.Background(), "t1")
	if !ok {
		t.Fatalf("stored task not found")
	}
	if out.Title != "water the plants" || out.Estimate != 15 {
		t.Fatalf("round trip lost fields: %+v", out)
	}
}

func TestPersistenceListAllOrder(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	// Stored out of order; listing follows rank.
	for _, tk := range []*task.Task{
		newTask("c", "third", 2),
		newTask("a", "first", 0),
		newTask("b", "second", 1),
	} {
		if err := p.Store(tk); err != nil {
			t.Fatalf("store %q: %v", tk.ID, err)
		}
	}

	all := p.ListAll(context.Background())
	if len(all) != 3 {
		t.Fatalf("listed %d tasks, want 3", len(all))
	}
	for i, id := range []string{"a", "b", "c"} {
		if all[i].ID != id {
			t.Fatalf("position %d holds %q, want %q", i, all[i].ID, id)
		}
	}
}

func TestPersistenceDelete(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	tk := newTask("gone", "ephemeral", 0)
	if err := p.Store(tk); err != nil {
		t.Fatalf("store task: %v", err)
	}
	if err := p.Delete(tk); err != nil {
		t.Fatalf("delete task: %v", err)
	}
	if _, ok := p.Get(context.Background(), "gone"); ok {
		t.Fatalf("deleted task still resolvable")
	}
}

func TestPersistenceAssignsID(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	tk := newTask("", "anonymous", 0)
	if err := p.Store(tk); err != nil {
		t.Fatalf("store task: %v", err)
	}
	if tk.ID == "" {
		t.Fatalf("store must derive an id for anonymous tasks")
	}
	if _, ok := p.Get(context.Background(), tk.ID); !ok {
		t.Fatalf("derived id %q not resolvable", tk.ID)
	}
}

func TestPersistenceWatchEmitsTaskChanges(t *testing.T) {
	p, err := Load(testConfig{path: t.TempDir()})
	if err != nil {
		t.Fatalf("load persistence: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	ch, err := p.Watch(ctx)
	if err != nil {
		t.Fatalf("watch: %v", err)
	}

	// Allow watcher goroutine to subscribe to directories before storing.
	time.Sleep(50 * time.Millisecond)

	if err := p.Store(newTask("w1", "hello world", 0)); err != nil {
		t.Fatalf("store task: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-ch:
			if evt.Type == EventStoreInvalidated {
				return
			}
			if evt.Type == EventTaskChanged {
				if evt.ID != "w1" {
					t.Fatalf("expected task 'w1', got %q", evt.ID)
				}
				return
			}
		case <-deadline:
			t.Fatal("timed out waiting for task change event")
		}
	}
}
