package farm

import (
	"context"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// TableStat is the row count of one table. Err is set when counting failed.
type TableStat struct {
	Tag   string `json:"tag"`
	Table string `json:"table"`
	Rows  int64  `json:"rows"`
	Err   string `json:"error,omitempty"`
}

// Stats counts rows in every writable table. A failing table is reported
// and does not stop the others.
func (s *Service) Stats(ctx context.Context) []TableStat {
	tables := entity.Tables()
	out := make([]TableStat, 0, len(tables))
	for _, d := range tables {
		st := TableStat{Tag: d.Tag, Table: d.Table}
		r, ok := s.Resource(d.Tag)
		if !ok {
			continue
		}
		n, err := r.Count(ctx)
		if err != nil {
			st.Err = err.Error()
			s.log.Warn("count failed", "table", d.Table, "error", err)
		}
		st.Rows = n
		out = append(out, st)
	}
	return out
}
