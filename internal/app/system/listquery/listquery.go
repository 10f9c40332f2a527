// internal/app/system/listquery/listquery.go

// Package listquery turns a flat query-string map into a composed Mongo
// read: search, filter, sort, paginate, and field projection, plus an
// independent pre-pagination count. Every list endpoint builds its reads
// through this one builder so pagination meta and predicate composition
// behave identically across collections.
package listquery

import (
	"context"
	"math"
	"net/url"
	"regexp"
	"strconv"
	"strings"

	"github.com/noyonalways/tech-tips-hub-api/internal/app/system/response"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Pagination defaults.
const (
	DefaultPage  int64 = 1
	DefaultLimit int64 = 10
)

// reserved holds query keys consumed by the builder itself; Filter never
// treats them as field filters.
var reserved = map[string]struct{}{
	"searchTerm": {},
	"sort":       {},
	"limit":      {},
	"page":       {},
	"fields":     {},
}

// Builder composes one list read. Chain methods mutate and return the
// builder; Find and CountTotal consume it. The base filter given at
// construction (scope constraints, the non-deleted predicate) is ANDed
// with search and filter groups.
type Builder struct {
	coll       *mongo.Collection
	params     url.Values
	base       bson.M
	groups     []bson.M
	sort       bson.D
	page       int64
	limit      int64
	skip       int64
	projection bson.D
}

// New starts a builder over coll for the given query parameters. base may
// be nil.
func New(coll *mongo.Collection, params url.Values, base bson.M) *Builder {
	return &Builder{
		coll:   coll,
		params: params,
		base:   base,
		page:   DefaultPage,
		limit:  DefaultLimit,
		sort:   bson.D{{Key: "created_at", Value: -1}},
	}
}

// Search adds a case-insensitive substring match across the given fields,
// OR-combined within the group and AND-composed with everything else.
// No-op when the searchTerm parameter is absent.
func (b *Builder) Search(fields ...string) *Builder {
	term := strings.TrimSpace(b.params.Get("searchTerm"))
	if term == "" || len(fields) == 0 {
		return b
	}
	pattern := regexp.QuoteMeta(term)
	or := make([]bson.M, 0, len(fields))
	for _, f := range fields {
		or = append(or, bson.M{f: bson.M{"$regex": pattern, "$options": "i"}})
	}
	b.groups = append(b.groups, bson.M{"$or": or})
	return b
}

// Filter adds equality filters for every allowed field present in the
// query, skipping reserved keys. Values are coerced: ObjectID hex becomes
// an ObjectID, true/false become booleans, numerics become numbers, and
// everything else stays a string.
func (b *Builder) Filter(allowed ...string) *Builder {
	set := make(map[string]struct{}, len(allowed))
	for _, f := range allowed {
		set[f] = struct{}{}
	}

	eq := bson.M{}
	for key, vals := range b.params {
		if _, isReserved := reserved[key]; isReserved {
			continue
		}
		if _, ok := set[key]; !ok {
			continue
		}
		if len(vals) == 0 || strings.TrimSpace(vals[0]) == "" {
			continue
		}
		eq[key] = coerce(strings.TrimSpace(vals[0]))
	}
	if len(eq) > 0 {
		b.groups = append(b.groups, eq)
	}
	return b
}

// Sort applies the comma-separated sort parameter; a leading '-' means
// descending. Defaults to newest-first by creation time.
func (b *Builder) Sort() *Builder {
	raw := strings.TrimSpace(b.params.Get("sort"))
	if raw == "" {
		return b
	}
	var sort bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		order := 1
		if strings.HasPrefix(field, "-") {
			order = -1
			field = field[1:]
		}
		sort = append(sort, bson.E{Key: field, Value: order})
	}
	if len(sort) > 0 {
		b.sort = sort
	}
	return b
}

// Paginate reads page and limit (defaults 1 and 10) and computes the skip
// offset. Invalid or non-positive values fall back to the defaults.
func (b *Builder) Paginate() *Builder {
	b.page = positiveInt(b.params.Get("page"), DefaultPage)
	b.limit = positiveInt(b.params.Get("limit"), DefaultLimit)
	b.skip = (b.page - 1) * b.limit
	return b
}

// Fields applies the comma-separated projection parameter. A leading '-'
// excludes a field; otherwise fields are included. Mongo rejects mixed
// modes, so the first entry decides and mismatched entries are dropped.
func (b *Builder) Fields() *Builder {
	raw := strings.TrimSpace(b.params.Get("fields"))
	if raw == "" {
		return b
	}
	exclude := strings.HasPrefix(strings.TrimSpace(strings.Split(raw, ",")[0]), "-")
	value := 1
	if exclude {
		value = 0
	}
	var proj bson.D
	for _, field := range strings.Split(raw, ",") {
		field = strings.TrimSpace(field)
		if field == "" || field == "-" {
			continue
		}
		if strings.HasPrefix(field, "-") != exclude {
			continue
		}
		proj = append(proj, bson.E{Key: strings.TrimPrefix(field, "-"), Value: value})
	}
	if len(proj) > 0 {
		b.projection = proj
	}
	return b
}

// Find runs the composed query and decodes all documents into results.
func (b *Builder) Find(ctx context.Context, results any) error {
	opts := options.Find().
		SetSort(b.sort).
		SetSkip(b.skip).
		SetLimit(b.limit)
	if b.projection != nil {
		opts.SetProjection(b.projection)
	}

	cur, err := b.coll.Find(ctx, b.predicate(), opts)
	if err != nil {
		return err
	}
	defer cur.Close(ctx)
	return cur.All(ctx, results)
}

// CountTotal counts documents matching the predicate before pagination
// and returns the meta block for the response envelope.
func (b *Builder) CountTotal(ctx context.Context) (response.Meta, error) {
	total, err := b.coll.CountDocuments(ctx, b.predicate())
	if err != nil {
		return response.Meta{}, err
	}
	return response.Meta{
		Page:      b.page,
		Limit:     b.limit,
		Total:     total,
		TotalPage: int64(math.Ceil(float64(total) / float64(b.limit))),
	}, nil
}

// predicate composes base, search, and filter groups with AND semantics.
func (b *Builder) predicate() bson.M {
	out := bson.M{}
	for k, v := range b.base {
		out[k] = v
	}
	switch len(b.groups) {
	case 0:
	case 1:
		for k, v := range b.groups[0] {
			if _, clash := out[k]; clash {
				return andAll(b.base, b.groups)
			}
			out[k] = v
		}
	default:
		return andAll(b.base, b.groups)
	}
	return out
}

func andAll(base bson.M, groups []bson.M) bson.M {
	all := make([]bson.M, 0, len(groups)+1)
	if len(base) > 0 {
		all = append(all, base)
	}
	all = append(all, groups...)
	return bson.M{"$and": all}
}

func positiveInt(raw string, fallback int64) int64 {
	n, err := strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}

// coerce maps a query-string value onto the BSON type it most plausibly
// filters against.
func coerce(v string) any {
	if oid, err := primitive.ObjectIDFromHex(v); err == nil {
		return oid
	}
	switch v {
	case "true":
		return true
	case "false":
		return false
	}
	if n, err := strconv.ParseInt(v, 10, 64); err == nil {
		return n
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}
