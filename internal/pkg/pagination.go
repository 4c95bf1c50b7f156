package pkg

import (
	"errors"
	"log/slog"
	"regexp"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/simp-lee/alchemist/internal/domain"
	"github.com/simp-lee/alchemist/paging"
)

const defaultSort = "id:desc"

// MalformedPagePolicy selects how a non-integer ?page= is reported.
type MalformedPagePolicy string

const (
	// MalformedPageNotFound reports malformed input like an out-of-range page.
	MalformedPageNotFound MalformedPagePolicy = "not_found"
	// MalformedPageBadRequest reports malformed input as a validation error.
	MalformedPageBadRequest MalformedPagePolicy = "bad_request"
)

// reservedParams are list query parameters that never become filters.
var reservedParams = map[string]bool{
	"page": true,
	"sort": true,
}

// validFieldName matches only alphanumeric characters and underscores.
var validFieldName = regexp.MustCompile(`^[a-zA-Z_][a-zA-Z0-9_]*$`)

// ParsePage reads ?page= from the request. An absent parameter means page 1;
// a present but non-integer value (including the empty string) is a
// *paging.RequestFormatError. Range is checked later by paging.Paginate.
func ParsePage(c *gin.Context) (int, error) {
	raw, ok := c.GetQuery("page")
	if !ok {
		return 1, nil
	}
	return paging.ParsePage(raw)
}

// ParseListQuery extracts the page number, sort order and filters from the
// query string. Only the page number can fail to parse.
func ParseListQuery(c *gin.Context) (domain.ListQuery, error) {
	page, err := ParsePage(c)
	if err != nil {
		return domain.ListQuery{}, err
	}

	filter := make(map[string]string)
	for key, values := range c.Request.URL.Query() {
		if reservedParams[key] {
			continue
		}
		if len(values) > 0 && values[0] != "" {
			filter[key] = values[0]
		}
	}

	return domain.ListQuery{
		Page:   page,
		Sort:   c.DefaultQuery("sort", defaultSort),
		Filter: filter,
	}, nil
}

// PagingError translates pagination failures into domain errors:
// out-of-range pages become CodeNotFound, malformed page numbers become
// CodeNotFound or CodeValidation depending on policy, and data source failures
// become CodeInternal. The paging error stays reachable through errors.Is.
// Other errors are returned unchanged.
func PagingError(err error, policy MalformedPagePolicy) error {
	if err == nil {
		return nil
	}

	var (
		outOfRange *paging.OutOfRangeError
		malformed  *paging.RequestFormatError
		source     *paging.SourceError
	)
	switch {
	case errors.As(err, &outOfRange):
		return domain.NewAppError(domain.CodeNotFound, "page not found", err)
	case errors.As(err, &malformed):
		if policy == MalformedPageBadRequest {
			return domain.NewAppError(domain.CodeValidation, "invalid page number", err)
		}
		return domain.NewAppError(domain.CodeNotFound, "page not found", err)
	case errors.As(err, &source):
		return domain.NewAppError(domain.CodeInternal, "failed to load page", err)
	default:
		return err
	}
}

// LogPagingRejection records a rejected page request at debug level.
func LogPagingRejection(c *gin.Context, err error) {
	if !paging.IsNotFound(err) {
		return
	}
	slog.DebugContext(c.Request.Context(), "page request rejected",
		slog.String("path", c.Request.URL.Path),
		slog.String("page", c.Query("page")),
		slog.String("error", err.Error()),
	)
}

// SortOrder resolves a "field:direction" sort expression into an ORDER BY
// fragment. It reports false when the expression is malformed or the field is
// not allowed.
func SortOrder(sort string, allowed []string) (string, bool) {
	field, direction, ok := strings.Cut(sort, ":")
	if !ok {
		return "", false
	}
	field = strings.TrimSpace(field)
	direction = strings.ToLower(strings.TrimSpace(direction))

	if direction != "asc" && direction != "desc" {
		return "", false
	}
	if !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
		return "", false
	}
	return field + " " + direction, true
}

// Condition is one allowed WHERE predicate derived from a filter parameter.
type Condition struct {
	Field string
	Like  bool
	Value string
}

// Query renders the predicate with a single ? placeholder.
func (c Condition) Query() string {
	if c.Like {
		return c.Field + " LIKE ?"
	}
	return c.Field + " = ?"
}

// Arg returns the placeholder argument.
func (c Condition) Arg() string {
	if c.Like {
		return "%" + c.Value + "%"
	}
	return c.Value
}

// Conditions turns filter parameters into predicates. Keys ending in "__like"
// match by substring, others exactly. Keys naming fields outside allowed are
// dropped. The result is ordered by field for stable SQL.
func Conditions(filter map[string]string, allowed []string) []Condition {
	conds := make([]Condition, 0, len(filter))
	for key, value := range filter {
		field, like := strings.CutSuffix(key, "__like")
		if !validFieldName.MatchString(field) || !slices.Contains(allowed, field) {
			continue
		}
		conds = append(conds, Condition{Field: field, Like: like, Value: value})
	}
	slices.SortFunc(conds, func(a, b Condition) int {
		if c := strings.Compare(a.Field, b.Field); c != 0 {
			return c
		}
		return strings.Compare(a.Query(), b.Query())
	})
	return conds
}

// OrderBy resolves sort into a complete ORDER BY clause. Disallowed or
// malformed expressions fall back to id:desc, and orders on any other column
// get id as a tie-breaker so that page boundaries are deterministic.
func OrderBy(sort string, allowed []string) string {
	order, ok := SortOrder(sort, allowed)
	if !ok {
		order, _ = SortOrder(defaultSort, []string{"id"})
	}
	if field, direction, _ := strings.Cut(order, " "); field != "id" {
		return order + ", id " + direction
	}
	return order
}

// Sort returns a GORM scope applying OrderBy(q.Sort, allowed).
func Sort(q domain.ListQuery, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Order(OrderBy(q.Sort, allowed))
	}
}

// Filter returns a GORM scope applying the allowed conditions of q.Filter.
func Filter(q domain.ListQuery, allowed []string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for _, cond := range Conditions(q.Filter, allowed) {
			db = db.Where(cond.Query(), cond.Arg())
		}
		return db
	}
}
