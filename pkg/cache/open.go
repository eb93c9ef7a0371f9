package cache

import (
	"context"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Backend names accepted by [Open] besides redis:// and mongodb:// URLs.
const (
	BackendFile = "file"
	BackendNone = "none"
)

// Open returns the cache described by spec:
//
//	"" or "file"                     FileCache in dir
//	"none"                           NullCache
//	"redis://…", "rediss://…"        RedisCache
//	"mongodb://…", "mongodb+srv://…" MongoCache
func Open(ctx context.Context, spec, dir string) (Cache, error) {
	switch {
	case spec == "" || spec == BackendFile:
		if dir == "" {
			return nil, errors.New(errors.ErrCodeInvalidInput, "file cache needs a directory")
		}
		c, err := NewFileCache(dir)
		if err != nil {
			return nil, err
		}
		return c, nil
	case spec == BackendNone:
		return NewNullCache(), nil
	case strings.HasPrefix(spec, "redis://"), strings.HasPrefix(spec, "rediss://"):
		c, err := NewRedisCache(ctx, RedisOptions{URL: spec})
		if err != nil {
			return nil, err
		}
		return c, nil
	case strings.HasPrefix(spec, "mongodb://"), strings.HasPrefix(spec, "mongodb+srv://"):
		c, err := NewMongoCache(ctx, MongoOptions{URI: spec})
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, errors.New(errors.ErrCodeInvalidInput, "unknown cache backend %q (want file, none, redis:// or mongodb://)", spec)
	}
}

// Describe returns a log-safe name for spec with any credentials removed.
func Describe(spec string) string {
	switch {
	case spec == "":
		return BackendFile
	case strings.Contains(spec, "://"):
		scheme, rest, _ := strings.Cut(spec, "://")
		if at := strings.LastIndex(rest, "@"); at >= 0 {
			rest = rest[at+1:]
		}
		return scheme + "://" + rest
	default:
		return spec
	}
}
