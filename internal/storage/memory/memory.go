package memory

import (
	"context"
	"fmt"
	"regexp"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/toshihome/homestay-bookings/internal/storage"
)

// Store is an in-memory document store. It evaluates the filter subset
// the query builder emits ($or, $regex/$options, $gte, $lte, equality),
// which makes handler tests run against the same predicates production
// sends to Mongo.
type Store struct {
	mu          sync.RWMutex
	name        string
	collections map[string][]bson.M
}

func New() *Store {
	return &Store{
		name:        "memory",
		collections: make(map[string][]bson.M),
	}
}

func (s *Store) Available() bool { return true }

func (s *Store) Name() string { return s.name }

func (s *Store) Collections(context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	names := make([]string, 0, len(s.collections))
	for name := range s.collections {
		names = append(names, name)
	}
	return names, nil
}

func (s *Store) Insert(_ context.Context, collection string, doc any) (string, error) {
	stored, err := storage.ToDocument(doc)
	if err != nil {
		return "", err
	}

	id := primitive.NewObjectID()
	stored["_id"] = id

	s.mu.Lock()
	s.collections[collection] = append(s.collections[collection], stored)
	s.mu.Unlock()

	return id.Hex(), nil
}

func (s *Store) Find(_ context.Context, collection string, filter bson.M, limit int64) ([]bson.M, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	docs := make([]bson.M, 0)
	for _, doc := range s.collections[collection] {
		if limit > 0 && int64(len(docs)) >= limit {
			break
		}
		ok, err := matchDocument(doc, filter)
		if err != nil {
			return nil, err
		}
		if ok {
			docs = append(docs, doc)
		}
	}
	return docs, nil
}

func matchDocument(doc bson.M, filter bson.M) (bool, error) {
	for key, cond := range filter {
		if key == "$or" {
			ok, err := matchAny(doc, cond)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
			continue
		}

		value := doc[key]
		switch c := cond.(type) {
		case bson.M:
			ok, err := matchOperators(value, c)
			if err != nil {
				return false, err
			}
			if !ok {
				return false, nil
			}
		default:
			if !equalValues(value, cond) {
				return false, nil
			}
		}
	}
	return true, nil
}

func matchAny(doc bson.M, cond any) (bool, error) {
	clauses, ok := cond.([]bson.M)
	if !ok {
		return false, fmt.Errorf("unsupported $or clause type %T", cond)
	}
	for _, clause := range clauses {
		matched, err := matchDocument(doc, clause)
		if err != nil {
			return false, err
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

func matchOperators(value any, ops bson.M) (bool, error) {
	for op, arg := range ops {
		switch op {
		case "$regex":
			pattern, _ := arg.(string)
			if opts, ok := ops["$options"].(string); ok && opts != "" {
				pattern = "(?" + opts + ")" + pattern
			}
			re, err := regexp.Compile(pattern)
			if err != nil {
				return false, fmt.Errorf("compile %q: %w", pattern, err)
			}
			str, ok := value.(string)
			if !ok || !re.MatchString(str) {
				return false, nil
			}
		case "$options":
			// consumed alongside $regex
		case "$gte":
			v, vok := toFloat(value)
			a, aok := toFloat(arg)
			if !vok || !aok || v < a {
				return false, nil
			}
		case "$lte":
			v, vok := toFloat(value)
			a, aok := toFloat(arg)
			if !vok || !aok || v > a {
				return false, nil
			}
		default:
			return false, fmt.Errorf("unsupported operator %q", op)
		}
	}
	return true, nil
}

func equalValues(a, b any) bool {
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			return af == bf
		}
		return false
	}
	return a == b
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	default:
		return 0, false
	}
}
