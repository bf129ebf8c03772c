package workflow

import (
	"fmt"
	"sort"
	"strings"

	"github.com/brokerage/rms-api/internal/system/error/serviceerror"
	"github.com/brokerage/rms-api/internal/utils"
	pkgutils "github.com/brokerage/rms-api/pkg/utils"
)

// SortDirection orders list results.
type SortDirection string

const (
	SortAsc  SortDirection = "ASC"
	SortDesc SortDirection = "DESC"
)

// View selects which rows a list reads.
type View struct {
	// Workflow lists rows by IsAuth, including deleted ones. Otherwise only live rows are listed.
	Workflow bool
	IsAuth   AuthState
}

// LiveView lists rows visible to business reads.
func LiveView() View {
	return View{}
}

// WorkflowView lists rows whose latest action is in the given authorization state.
func WorkflowView(isAuth AuthState) View {
	return View{Workflow: true, IsAuth: isAuth}
}

// ListQuery holds paging, search, filter and sort parameters of a list request.
type ListQuery struct {
	PageNumber    int
	PageSize      int
	SearchTerm    string
	Filters       map[string]string
	SortColumn    string
	SortDirection SortDirection
}

// Limits bounds list requests.
type Limits struct {
	DefaultPageSize     int
	MaxPageSize         int
	MaxSearchTermLength int
}

// DefaultLimits are used when no limits are configured.
var DefaultLimits = Limits{
	DefaultPageSize:     20,
	MaxPageSize:         100,
	MaxSearchTermLength: 100,
}

// Normalize validates q against limits and the table's allowlists.
func (q *ListQuery) Normalize(limits Limits, table Table) error {
	if q.PageNumber < 1 {
		return validationError("pageNumber must be at least 1")
	}
	if q.PageSize < 1 || q.PageSize > limits.MaxPageSize {
		return validationError(fmt.Sprintf("pageSize must be between 1 and %d", limits.MaxPageSize))
	}

	q.SearchTerm = pkgutils.SanitizeString(q.SearchTerm)
	if err := pkgutils.ValidateMaxLength("searchTerm", q.SearchTerm, limits.MaxSearchTermLength); err != nil {
		return validationError(err.Error())
	}

	switch SortDirection(strings.ToUpper(string(q.SortDirection))) {
	case "", SortAsc:
		q.SortDirection = SortAsc
	case SortDesc:
		q.SortDirection = SortDesc
	default:
		return validationError("sortDirection must be ASC or DESC")
	}

	if q.SortColumn != "" {
		if _, ok := table.SortColumns[q.SortColumn]; !ok {
			return validationError(fmt.Sprintf("cannot sort by %q", q.SortColumn))
		}
	}

	for name, value := range q.Filters {
		if _, ok := table.FilterColumns[name]; !ok {
			return validationError(fmt.Sprintf("cannot filter by %q", name))
		}
		if err := pkgutils.ValidateMaxLength(name, value, limits.MaxSearchTermLength); err != nil {
			return validationError(err.Error())
		}
	}

	return nil
}

// PagedResult is one page of a list together with its paging metadata.
type PagedResult[T any] struct {
	Items []T `json:"items"`
	utils.PageMetadata
}

// NewPagedResult builds a page from items and the total match count.
func NewPagedResult[T any](items []T, total, pageNumber, pageSize int) *PagedResult[T] {
	if items == nil {
		items = []T{}
	}
	return &PagedResult[T]{
		Items:        items,
		PageMetadata: utils.CalculatePageMetadata(total, pageNumber, pageSize),
	}
}

func validationError(description string) error {
	return serviceerror.CustomServiceError(serviceerror.ValidationError, description)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
