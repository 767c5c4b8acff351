package report

import (
	"cmp"
	"errors"
	"reflect"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ecommerce/backoffice/internal/domain/report"
	"github.com/ecommerce/backoffice/internal/domain/sales"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

// Filter parameter names accepted by the export endpoint
const (
	ParamClientSearch = "client_search"
	ParamMonth        = "month"
	ParamYear         = "year"
	ParamProductName  = "product_name"
	ParamMontoMin     = "monto_min"
	ParamMontoMax     = "monto_max"
	ParamFechaInicio  = "fecha_inicio"
	ParamFechaFin     = "fecha_fin"
	ParamStatus       = "status"
)

const (
	msgWholeNumber = "Enter a whole number."
	msgNumber      = "Enter a number."
	msgDate        = "Enter a valid date."
)

// Predicate decides whether a sale satisfies one criterion
type Predicate func(sale *sales.Sale) bool

// rangeRules carries the parsed values that need range checks
type rangeRules struct {
	ClientSearch *string `form:"client_search" validate:"omitempty,max=255"`
	ProductName  *string `form:"product_name" validate:"omitempty,max=255"`
	Status       *string `form:"status" validate:"omitempty,max=50"`
	Month        *int    `form:"month" validate:"omitempty,min=1,max=12"`
	Year         *int    `form:"year" validate:"omitempty,min=1,max=9999"`
}

// QueryBuilder validates filter parameters and turns them into predicates
// over sale records. Calendar comparisons happen in the configured location.
type QueryBuilder struct {
	loc      *time.Location
	validate *validator.Validate
}

// NewQueryBuilder creates a QueryBuilder; a nil location means UTC
func NewQueryBuilder(loc *time.Location) *QueryBuilder {
	if loc == nil {
		loc = time.UTC
	}
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		return strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
	})
	return &QueryBuilder{loc: loc, validate: v}
}

// Location returns the location calendar filters are evaluated in
func (b *QueryBuilder) Location() *time.Location {
	return b.loc
}

// Compile parses raw request parameters into FilterCriteria. Every malformed
// parameter contributes to the returned FieldErrors; the criteria are only
// usable when the error is nil. Empty values are treated as absent and
// unknown parameters are ignored.
func (b *QueryBuilder) Compile(params map[string]string) (report.FilterCriteria, error) {
	var c report.FilterCriteria
	errs := report.FieldErrors{}

	c.ClientSearch = optionalText(params, ParamClientSearch)
	c.ProductName = optionalText(params, ParamProductName)
	c.Status = optionalText(params, ParamStatus)
	c.Month = parseInt(params, ParamMonth, errs)
	c.Year = parseInt(params, ParamYear, errs)
	c.MontoMin = parseDecimal(params, ParamMontoMin, errs)
	c.MontoMax = parseDecimal(params, ParamMontoMax, errs)
	c.FechaInicio = parseDate(params, ParamFechaInicio, errs)
	c.FechaFin = parseDate(params, ParamFechaFin, errs)

	rules := rangeRules{
		ClientSearch: c.ClientSearch,
		ProductName:  c.ProductName,
		Status:       c.Status,
		Month:        c.Month,
		Year:         c.Year,
	}
	if err := b.validate.Struct(rules); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs.Add(fe.Field(), rangeMessage(fe))
			}
		} else {
			return report.FilterCriteria{}, err
		}
	}

	if errs.HasErrors() {
		return report.FilterCriteria{}, errs
	}
	return c, nil
}

// Predicates maps criteria to the predicates they impose. Absent criteria
// contribute nothing.
func (b *QueryBuilder) Predicates(c report.FilterCriteria) []Predicate {
	var preds []Predicate

	if c.ClientSearch != nil {
		needle := strings.ToLower(*c.ClientSearch)
		preds = append(preds, func(s *sales.Sale) bool {
			if s.Customer == nil {
				return false
			}
			return containsFold(s.Customer.FirstName, needle) ||
				containsFold(s.Customer.LastName, needle) ||
				containsFold(s.Customer.Email, needle)
		})
	}
	if c.Month != nil {
		month := time.Month(*c.Month)
		preds = append(preds, func(s *sales.Sale) bool {
			return !s.CreatedAt.IsZero() && s.CreatedAt.In(b.loc).Month() == month
		})
	}
	if c.Year != nil {
		year := *c.Year
		preds = append(preds, func(s *sales.Sale) bool {
			return !s.CreatedAt.IsZero() && s.CreatedAt.In(b.loc).Year() == year
		})
	}
	if c.ProductName != nil {
		needle := strings.ToLower(*c.ProductName)
		preds = append(preds, func(s *sales.Sale) bool {
			for _, item := range s.ResolveShape().Items {
				if containsFold(item.ProductName(), needle) {
					return true
				}
			}
			return false
		})
	}
	if c.MontoMin != nil {
		lower := *c.MontoMin
		preds = append(preds, func(s *sales.Sale) bool {
			total, ok := resolveTotal(s).Decimal()
			return ok && total.GreaterThanOrEqual(lower)
		})
	}
	if c.MontoMax != nil {
		upper := *c.MontoMax
		preds = append(preds, func(s *sales.Sale) bool {
			total, ok := resolveTotal(s).Decimal()
			return ok && total.LessThanOrEqual(upper)
		})
	}
	if c.FechaInicio != nil {
		from := *c.FechaInicio
		preds = append(preds, func(s *sales.Sale) bool {
			return !s.CreatedAt.IsZero() && report.DateOf(s.CreatedAt.In(b.loc)).Compare(from) >= 0
		})
	}
	if c.FechaFin != nil {
		to := *c.FechaFin
		preds = append(preds, func(s *sales.Sale) bool {
			return !s.CreatedAt.IsZero() && report.DateOf(s.CreatedAt.In(b.loc)).Compare(to) <= 0
		})
	}
	if c.Status != nil {
		status := *c.Status
		preds = append(preds, func(s *sales.Sale) bool {
			return s.Status == status
		})
	}

	return preds
}

// Apply keeps the sales satisfying every predicate of c, each sale id at most
// once, newest first. Ties on the timestamp are ordered by id, highest first.
func (b *QueryBuilder) Apply(c report.FilterCriteria, source []sales.Sale) []sales.Sale {
	preds := b.Predicates(c)
	seen := make(map[int64]struct{}, len(source))
	matched := make([]sales.Sale, 0, len(source))

	for i := range source {
		sale := &source[i]
		if _, dup := seen[sale.ID]; dup {
			continue
		}
		if !matchesAll(preds, sale) {
			continue
		}
		seen[sale.ID] = struct{}{}
		matched = append(matched, *sale)
	}

	slices.SortStableFunc(matched, func(x, y sales.Sale) int {
		if c := y.CreatedAt.Compare(x.CreatedAt); c != 0 {
			return c
		}
		return cmp.Compare(y.ID, x.ID)
	})
	return matched
}

func matchesAll(preds []Predicate, sale *sales.Sale) bool {
	for _, p := range preds {
		if !p(sale) {
			return false
		}
	}
	return true
}

func containsFold(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}

func optionalText(params map[string]string, key string) *string {
	v, ok := params[key]
	if !ok || v == "" {
		return nil
	}
	return &v
}

func parseInt(params map[string]string, key string, errs report.FieldErrors) *int {
	raw := optionalText(params, key)
	if raw == nil {
		return nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(*raw))
	if err != nil {
		errs.Add(key, msgWholeNumber)
		return nil
	}
	return &n
}

func parseDecimal(params map[string]string, key string, errs report.FieldErrors) *decimal.Decimal {
	raw := optionalText(params, key)
	if raw == nil {
		return nil
	}
	d, err := decimal.NewFromString(strings.TrimSpace(*raw))
	if err != nil {
		errs.Add(key, msgNumber)
		return nil
	}
	return &d
}

func parseDate(params map[string]string, key string, errs report.FieldErrors) *report.Date {
	raw := optionalText(params, key)
	if raw == nil {
		return nil
	}
	d, err := report.ParseDate(strings.TrimSpace(*raw))
	if err != nil {
		errs.Add(key, msgDate)
		return nil
	}
	return &d
}

func rangeMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "min":
		return "Ensure this value is greater than or equal to " + fe.Param() + "."
	case "max":
		if fe.Kind() == reflect.String {
			return "Ensure this value has at most " + fe.Param() + " characters."
		}
		return "Ensure this value is less than or equal to " + fe.Param() + "."
	default:
		return "Enter a valid value."
	}
}
