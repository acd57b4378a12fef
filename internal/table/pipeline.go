// Package table filters, sorts and paginates the campaign list the way the
// dashboard's campaign table presents it.
package table

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/AngelCh415/marketing-dashboard/internal/models"
)

type SortField string

const (
	SortName        SortField = "name"
	SortImpressions SortField = "impressions"
	SortClicks      SortField = "clicks"
	SortCTR         SortField = "ctr"
	SortSpend       SortField = "spend"
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// StatusAll disables the status filter.
const StatusAll = "all"

const DefaultPageSize = 4

type Query struct {
	Search    string
	Status    string
	SortField SortField
	Direction Direction
	PageSize  int
	Page      int
}

// DefaultQuery is the table's initial state.
func DefaultQuery() Query {
	return Query{Status: StatusAll, SortField: SortName, Direction: Asc, PageSize: DefaultPageSize, Page: 1}
}

// Toggle mirrors a click on a column header: the active column flips
// direction, any other column becomes active ascending. The page is kept.
func (q Query) Toggle(field SortField) Query {
	if q.SortField == field {
		if q.Direction == Desc {
			q.Direction = Asc
		} else {
			q.Direction = Desc
		}
		return q
	}
	q.SortField = field
	q.Direction = Asc
	return q
}

type Page struct {
	Items      []models.Campaign
	Number     int
	Size       int
	Total      int // campaigns left after filtering
	TotalPages int
	Start      int // 1-based index of Items[0]; 0 when Items is empty
	End        int
}

func (p Page) HasPrev() bool { return p.Number > 1 }
func (p Page) HasNext() bool { return p.Number < p.TotalPages }

// Apply runs filter, stable sort and pagination over campaigns. The input
// slice is not modified.
func Apply(campaigns []models.Campaign, q Query) Page {
	rows := Filter(campaigns, q.Search, q.Status)
	Sort(rows, q.SortField, q.Direction)
	return Paginate(rows, q.PageSize, q.Page)
}

// Filter keeps campaigns whose name or category contains search
// (case-insensitive) and whose status matches. The result is a new slice.
func Filter(campaigns []models.Campaign, search, status string) []models.Campaign {
	term := strings.ToLower(search)
	out := make([]models.Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if term != "" &&
			!strings.Contains(strings.ToLower(c.Name), term) &&
			!strings.Contains(strings.ToLower(c.Category), term) {
			continue
		}
		if status != "" && status != StatusAll && string(c.Status) != status {
			continue
		}
		out = append(out, c)
	}
	return out
}

// Sort orders rows in place. Ties keep their prior relative order. An
// unknown field falls back to name ascending.
func Sort(rows []models.Campaign, field SortField, dir Direction) {
	cmp := comparator(field)
	if cmp == nil {
		cmp = comparator(SortName)
		dir = Asc
	}
	sign := 1
	if dir == Desc {
		sign = -1
	}
	sort.SliceStable(rows, func(i, j int) bool {
		return sign*cmp(rows[i], rows[j]) < 0
	})
}

func comparator(field SortField) func(a, b models.Campaign) int {
	switch field {
	case SortName:
		// Collators keep scratch buffers; one per sort keeps Sort safe for concurrent callers.
		col := collate.New(language.English)
		return func(a, b models.Campaign) int { return col.CompareString(a.Name, b.Name) }
	case SortImpressions:
		return func(a, b models.Campaign) int { return cmpInt(a.Impressions, b.Impressions) }
	case SortClicks:
		return func(a, b models.Campaign) int { return cmpInt(a.Clicks, b.Clicks) }
	case SortCTR:
		return func(a, b models.Campaign) int { return a.CTR.Cmp(b.CTR) }
	case SortSpend:
		return func(a, b models.Campaign) int { return a.Spend.Cmp(b.Spend) }
	}
	return nil
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Paginate slices rows into 1-based pages. A page past the last one is
// empty rather than clamped; page numbers below 1 are treated as 1 and a
// non-positive size as DefaultPageSize.
func Paginate(rows []models.Campaign, size, page int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if page < 1 {
		page = 1
	}
	total := len(rows)
	p := Page{
		Number:     page,
		Size:       size,
		Total:      total,
		TotalPages: (total + size - 1) / size,
	}
	offset := (page - 1) * size
	p.Items = window(rows, size, offset)
	if len(p.Items) > 0 {
		p.Start = offset + 1
		p.End = offset + len(p.Items)
	}
	return p
}

func window[T any](rows []T, limit, offset int) []T {
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + limit
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}
