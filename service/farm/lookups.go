package farm

import (
	"context"
	"sort"
	"strings"

	"github.com/iasolb/EdgewaterInventoryManager/model/entity"
)

// TypeCodes is the fixed item type coding used by T_Items.TypeID.
var TypeCodes = map[string]int{
	"Unassigned":      0,
	"Soil":            3,
	"Labels and Tags": 4,
	"Annual":          6,
	"Perennial":       7,
	"Vegetable":       8,
	"Hard Good":       11,
	"Fruit":           12,
	"Herb":            13,
}

// DecodeType maps a type name to its code. Unknown names map to 0.
func DecodeType(name string) int {
	return TypeCodes[name]
}

// TypeIDByName resolves a type name against T_ItemType, ignoring case.
// It falls back to DecodeType when the table has no match.
func (s *Service) TypeIDByName(ctx context.Context, name string) (int, error) {
	types, err := s.ItemTypes.GetAll(ctx, nil)
	if err != nil {
		return 0, err
	}
	for _, t := range types {
		if strings.EqualFold(strings.TrimSpace(t.Type), strings.TrimSpace(name)) {
			return t.TypeID, nil
		}
	}
	return DecodeType(name), nil
}

// ListItemTypes returns the item type lookup ordered by id.
func (s *Service) ListItemTypes(ctx context.Context) ([]entity.ItemType, error) {
	return s.ItemTypes.GetAll(ctx, nil)
}

// SunConditions returns the distinct non-empty sun conditions used by items, sorted.
func (s *Service) SunConditions(ctx context.Context) ([]string, error) {
	items, err := s.Items.GetAll(ctx, nil)
	if err != nil {
		return nil, err
	}
	seen := make(map[string]struct{})
	out := []string{}
	for _, it := range items {
		c := strings.TrimSpace(it.SunConditions)
		if c == "" {
			continue
		}
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		out = append(out, c)
	}
	sort.Strings(out)
	return out, nil
}

// SeedItemTypes inserts every TypeCodes entry missing from T_ItemType and
// returns how many rows were added. Code 0 stays implicit.
func (s *Service) SeedItemTypes(ctx context.Context) (int, error) {
	added := 0
	for name, id := range TypeCodes {
		if id == 0 {
			continue
		}
		existing, err := s.ItemTypes.GetByID(ctx, "", id)
		if err != nil {
			return added, err
		}
		if existing != nil {
			continue
		}
		if _, err := s.ItemTypes.Create(ctx, map[string]any{"TypeID": id, "Type": name}); err != nil {
			return added, err
		}
		added++
	}
	if added > 0 {
		s.invalidate(ctx, s.ItemTypes.Descriptor().Table)
		s.log.Info("seeded item types", "added", added)
	}
	return added, nil
}
