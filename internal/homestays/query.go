package homestays

import (
	"net/url"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/toshihome/homestay-bookings/internal/domain"
)

const (
	// DefaultLimit caps list responses when the client sends no limit.
	DefaultLimit = 24
	// DefaultFeaturedLimit is the featured-listings default.
	DefaultFeaturedLimit = 8
	// MaxLimit is the hard ceiling on any client-supplied limit.
	MaxLimit = 100
)

// SearchFilter holds the optional listing filters. Pointer fields
// distinguish "absent" from a legitimate zero.
type SearchFilter struct {
	Query    string
	Country  string
	MinPrice *float64
	MaxPrice *float64
	Guests   *int
	Limit    int64
}

// ParseSearchFilter reads the supported query parameters. Numeric
// parameters that do not parse are reported per field, the same shape
// schema validation uses.
func ParseSearchFilter(values url.Values) (SearchFilter, domain.FieldErrors) {
	f := SearchFilter{
		Query:   values.Get("q"),
		Country: values.Get("country"),
	}
	fields := domain.FieldErrors{}

	if raw := values.Get("minPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MinPrice = &v
		} else {
			fields["minPrice"] = "value is not a valid number"
		}
	}
	if raw := values.Get("maxPrice"); raw != "" {
		if v, err := strconv.ParseFloat(raw, 64); err == nil {
			f.MaxPrice = &v
		} else {
			fields["maxPrice"] = "value is not a valid number"
		}
	}
	if raw := values.Get("guests"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			f.Guests = &v
		} else {
			fields["guests"] = "value is not a valid integer"
		}
	}
	f.Limit = ParseLimit(values.Get("limit"), DefaultLimit)

	if len(fields) > 0 {
		return SearchFilter{}, fields
	}
	return f, nil
}

// ParseLimit coerces a limit parameter to a positive bounded value.
// Absent, unparsable, or non-positive input falls back to def.
func ParseLimit(raw string, def int64) int64 {
	limit := def
	if raw != "" {
		if v, err := strconv.ParseInt(raw, 10, 64); err == nil && v > 0 {
			limit = v
		}
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return limit
}

// BuildQuery translates the filter into a store predicate. Every
// present filter contributes one AND-ed clause; an empty filter yields
// the match-all predicate. User input is regex-escaped so free text is
// matched literally.
func (f SearchFilter) BuildQuery() bson.M {
	query := bson.M{}

	if f.Query != "" {
		pattern := regexp.QuoteMeta(f.Query)
		query["$or"] = []bson.M{
			{"title": bson.M{"$regex": pattern, "$options": "i"}},
			{"description": bson.M{"$regex": pattern, "$options": "i"}},
			{"location": bson.M{"$regex": pattern, "$options": "i"}},
			{"country": bson.M{"$regex": pattern, "$options": "i"}},
		}
	}

	if f.Country != "" {
		// Anchored: exact country match, not the substring behavior above.
		query["country"] = bson.M{
			"$regex":   "^" + regexp.QuoteMeta(f.Country) + "$",
			"$options": "i",
		}
	}

	price := bson.M{}
	if f.MinPrice != nil {
		price["$gte"] = *f.MinPrice
	}
	if f.MaxPrice != nil {
		price["$lte"] = *f.MaxPrice
	}
	if len(price) > 0 {
		query["price_per_night"] = price
	}

	if f.Guests != nil {
		query["max_guests"] = bson.M{"$gte": *f.Guests}
	}

	return query
}
