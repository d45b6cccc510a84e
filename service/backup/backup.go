// Package backup writes JSON snapshots of every table to a blob store and
// prunes snapshots past their retention.
package backup

import (
	"context"
	"encoding/json"
	"fmt"
	"path"
	"reflect"
	"sort"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/iasolb/EdgewaterInventoryManager/core/logger"
	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// StampLayout names snapshot directories. It sorts chronologically.
const StampLayout = "20060102T150405Z"

// Snapshot describes one completed backup.
type Snapshot struct {
	Stamp  string         `json:"stamp"`
	Taken  time.Time      `json:"taken"`
	Tables map[string]int `json:"tables"`
	Keys   []string       `json:"keys"`
}

// Options configures a Service. Retention <= 0 keeps every snapshot.
type Options struct {
	Prefix    string
	Retention time.Duration
	Log       *logger.Logger
}

type Service struct {
	db        *gorm.DB
	blob      Blob
	prefix    string
	retention time.Duration
	log       *logger.Logger
	now       func() time.Time
}

func New(db *gorm.DB, blob Blob, opts Options) *Service {
	log := opts.Log
	if log == nil {
		log = logger.Default()
	}
	prefix := strings.Trim(opts.Prefix, "/")
	if prefix == "" {
		prefix = "edgewater"
	}
	return &Service{
		db:        db,
		blob:      blob,
		prefix:    prefix,
		retention: opts.Retention,
		log:       log.WithComponent("backup"),
		now:       time.Now,
	}
}

// Key returns the object key of table inside snapshot stamp.
func (s *Service) Key(stamp, table string) string {
	return path.Join(s.prefix, stamp, table+".json")
}

// Run snapshots every writable table. Each table is read in its own query;
// the snapshot is not a single consistent read.
func (s *Service) Run(ctx context.Context) (*Snapshot, error) {
	taken := s.now().UTC()
	snap := &Snapshot{Stamp: taken.Format(StampLayout), Taken: taken, Tables: make(map[string]int)}
	for _, d := range entity.Tables() {
		rows := d.NewSlice()
		if err := s.db.WithContext(ctx).Model(d.New()).Order(clause.OrderByColumn{Column: clause.Column{Name: d.PrimaryKey}}).Find(rows).Error; err != nil {
			return nil, fmt.Errorf("backup %s: %w", d.Table, err)
		}
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", d.Table, err)
		}
		key := s.Key(snap.Stamp, d.Table)
		if err := s.blob.Put(ctx, key, data); err != nil {
			return nil, fmt.Errorf("write %s: %w", key, err)
		}
		snap.Tables[d.Table] = lenOf(rows)
		snap.Keys = append(snap.Keys, key)
	}
	s.log.Info("backup written", "stamp", snap.Stamp, "tables", len(snap.Keys))
	return snap, nil
}

// Snapshots lists the stamps present in the store, oldest first.
func (s *Service) Snapshots(ctx context.Context) ([]string, error) {
	keys, err := s.blob.List(ctx, s.prefix+"/")
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	var stamps []string
	for _, k := range keys {
		stamp, _, ok := strings.Cut(strings.TrimPrefix(k, s.prefix+"/"), "/")
		if !ok {
			continue
		}
		if _, err := time.Parse(StampLayout, stamp); err != nil {
			continue
		}
		if _, dup := seen[stamp]; !dup {
			seen[stamp] = struct{}{}
			stamps = append(stamps, stamp)
		}
	}
	sort.Strings(stamps)
	return stamps, nil
}

// Prune deletes snapshots older than the retention and returns their stamps.
func (s *Service) Prune(ctx context.Context) ([]string, error) {
	if s.retention <= 0 {
		return nil, nil
	}
	stamps, err := s.Snapshots(ctx)
	if err != nil {
		return nil, err
	}
	cutoff := s.now().UTC().Add(-s.retention)
	var pruned []string
	for _, stamp := range stamps {
		t, _ := time.Parse(StampLayout, stamp)
		if !t.Before(cutoff) {
			continue
		}
		keys, err := s.blob.List(ctx, path.Join(s.prefix, stamp)+"/")
		if err != nil {
			return pruned, err
		}
		for _, k := range keys {
			if err := s.blob.Delete(ctx, k); err != nil {
				return pruned, fmt.Errorf("delete %s: %w", k, err)
			}
		}
		pruned = append(pruned, stamp)
	}
	if len(pruned) > 0 {
		s.log.Info("pruned backups", "count", len(pruned), "retention", s.retention)
	}
	return pruned, nil
}

// Load decodes one table of a snapshot into out, a pointer to a slice.
func (s *Service) Load(ctx context.Context, stamp, table string, out any) error {
	data, err := s.blob.Get(ctx, s.Key(stamp, table))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, out)
}

func lenOf(slicePtr any) int {
	return reflect.ValueOf(slicePtr).Elem().Len()
}
