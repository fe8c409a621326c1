package store

import (
	"context"
	"crypto/md5"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/agenda/pkg/task"
)

// Persistence defines the persistence contract for tasks. The grouping and
// capacity engines only read through it; services apply the update
// descriptors the engines return.
type Persistence interface {
	ListAll(ctx context.Context) []*task.Task
	Get(ctx context.Context, id string) (*task.Task, bool)
	Store(t *task.Task) error
	Delete(t *task.Task) error
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	}), basePath: basePath}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
}

const layoutISO = "2006-01-02"

func (p *persistence) read(key string) (*task.Task, error) {
	val, err := p.d.Read(key)
	if err != nil {
		return nil, err
	}
	t := &task.Task{}
	if err := json.Unmarshal(val, t); err != nil {
		return nil, err
	}
	if t.ID == "" {
		t.ID = keyToPathTransform(key).FileName
	}
	return t, nil
}

func (p *persistence) ListAll(ctx context.Context) []*task.Task {
	all := make([]*task.Task, 0)
	for key := range p.d.Keys(ctx.Done()) {
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, t)
	}
	sortTasks(all)
	return all
}

func (p *persistence) Get(ctx context.Context, id string) (*task.Task, bool) {
	for key := range p.d.Keys(ctx.Done()) {
		if keyToPathTransform(key).FileName != id {
			continue
		}
		t, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			return nil, false
		}
		return t, true
	}
	return nil, false
}

func (p *persistence) Store(t *task.Task) error {
	key := toKey(t)
	data, err := json.Marshal(t)
	if err != nil {
		return err
	}
	return p.d.Write(key, data)
}

func (p *persistence) Delete(t *task.Task) error {
	return p.d.Erase(toKey(t))
}

// sortTasks orders by manual rank, then creation time, then id so listing
// is deterministic and manual order survives round-trips.
func sortTasks(tasks []*task.Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		left := tasks[i]
		right := tasks[j]
		if left == nil || right == nil {
			return left != nil
		}
		if left.Rank != right.Rank {
			return left.Rank < right.Rank
		}
		lt := left.Created.Time
		rt := right.Created.Time
		switch {
		case lt.IsZero() && rt.IsZero():
			return left.ID < right.ID
		case lt.IsZero():
			return false
		case rt.IsZero():
			return true
		default:
			if lt.Equal(rt) {
				return left.ID < right.ID
			}
			return lt.Before(rt)
		}
	})
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, "-")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1],
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return fmt.Sprintf("%s-%s", strings.Join(pathKey.Path, "-"), pathKey.FileName)
}

// toKey makes `date-id`, bucketing task files by creation day.
func toKey(t *task.Task) string {
	then := t.Created.Format(layoutISO)

	if t.ID == "" {
		b, _ := json.Marshal(t)
		id := md5.Sum(b)
		t.ID = fmt.Sprintf("%x", id[:8])
	}

	return fmt.Sprintf("%s-%s", then, t.ID)
}
