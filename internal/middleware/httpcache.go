package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	APICachePrefix = "lights-api-cache:"
	CacheHeader    = "x-lights-cache"

	defaultHTTPCacheTTL     = 15 * time.Second
	defaultHTTPCacheMaxBody = 1 << 20
	purgeScanCount          = 200

	entryStatus      = "status"
	entryContentType = "content_type"
	entryBody        = "body"
)

// bypassQueryKeys force a fresh response when present with a value.
var bypassQueryKeys = []string{"ts", "timestamp", "_t"}

// HTTPCacheOptions tunes HTTPCache. Zero values fall back to a 15s TTL,
// a 1 MiB body limit and a no-op logger. SkipPaths entries ending in "*"
// match by prefix.
type HTTPCacheOptions struct {
	TTL          time.Duration
	SkipPaths    []string
	MaxBodyBytes int
	Logger       *zap.Logger
}

func (o HTTPCacheOptions) withDefaults() HTTPCacheOptions {
	if o.TTL <= 0 {
		o.TTL = defaultHTTPCacheTTL
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultHTTPCacheMaxBody
	}
	if o.Logger == nil {
		o.Logger = zap.NewNop()
	}
	return o
}

// cacheable reports whether req may be answered from or stored into the cache.
func (o HTTPCacheOptions) cacheable(req *http.Request) bool {
	if req.Method != http.MethodGet || req.Header.Get("Authorization") != "" {
		return false
	}
	if pathSkipped(req.URL.Path, o.SkipPaths) {
		return false
	}
	query := req.URL.Query()
	for _, key := range bypassQueryKeys {
		if strings.TrimSpace(query.Get(key)) != "" {
			return false
		}
	}
	return true
}

// cacheEntry is a stored response, kept in Redis as a hash.
type cacheEntry struct {
	status      int
	contentType string
	body        []byte
}

func (e cacheEntry) save(ctx context.Context, rdb *redis.Client, key string, ttl time.Duration) error {
	_, err := rdb.TxPipelined(ctx, func(p redis.Pipeliner) error {
		p.HSet(ctx, key,
			entryStatus, e.status,
			entryContentType, e.contentType,
			entryBody, e.body,
		)
		p.Expire(ctx, key, ttl)
		return nil
	})
	return err
}

func loadCacheEntry(ctx context.Context, rdb *redis.Client, key string) (cacheEntry, bool) {
	fields, err := rdb.HGetAll(ctx, key).Result()
	if err != nil || fields[entryBody] == "" {
		return cacheEntry{}, false
	}
	e := cacheEntry{
		contentType: fields[entryContentType],
		body:        []byte(fields[entryBody]),
	}
	if e.status, err = strconv.Atoi(fields[entryStatus]); err != nil || e.status <= 0 {
		e.status = http.StatusOK
	}
	if e.contentType == "" {
		e.contentType = gin.MIMEJSON + "; charset=utf-8"
	}
	return e, true
}

// capturingWriter tees the response body up to limit bytes. Past the
// limit it stops buffering and the response is not stored.
type capturingWriter struct {
	gin.ResponseWriter
	buf      []byte
	limit    int
	tooLarge bool
}

func (w *capturingWriter) Write(data []byte) (int, error) {
	w.keep(data)
	return w.ResponseWriter.Write(data)
}

func (w *capturingWriter) WriteString(s string) (int, error) {
	w.keep([]byte(s))
	return w.ResponseWriter.WriteString(s)
}

func (w *capturingWriter) keep(data []byte) {
	if w.tooLarge {
		return
	}
	if len(w.buf)+len(data) > w.limit {
		w.tooLarge = true
		w.buf = nil
		return
	}
	w.buf = append(w.buf, data...)
}

func (w *capturingWriter) entry() (cacheEntry, bool) {
	if w.tooLarge || len(w.buf) == 0 || !storable(w.Status(), w.Header()) {
		return cacheEntry{}, false
	}
	return cacheEntry{
		status:      w.Status(),
		contentType: w.Header().Get("Content-Type"),
		body:        w.buf,
	}, true
}

// HTTPCache serves successful public GET responses from Redis for opts.TTL.
// Requests carrying credentials are never cached. A nil client turns the
// middleware into a pass-through.
func HTTPCache(rdb *redis.Client, opts HTTPCacheOptions) gin.HandlerFunc {
	opts = opts.withDefaults()
	maxAge := "max-age=" + strconv.Itoa(int(opts.TTL/time.Second))

	return func(c *gin.Context) {
		if rdb == nil || !opts.cacheable(c.Request) {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		key := APICachePrefix + c.Request.URL.RequestURI()
		if e, ok := loadCacheEntry(ctx, rdb, key); ok {
			c.Header(CacheHeader, "hit")
			c.Header("Cache-Control", maxAge)
			c.Data(e.status, e.contentType, e.body)
			c.Abort()
			return
		}

		w := &capturingWriter{ResponseWriter: c.Writer, limit: opts.MaxBodyBytes}
		c.Writer = w
		c.Header(CacheHeader, "miss")
		c.Next()

		e, ok := w.entry()
		if !ok {
			return
		}
		if err := e.save(ctx, rdb, key, opts.TTL); err != nil {
			opts.Logger.Warn("http cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
}

// PurgeHTTPCache drops every cached response. It returns the number of keys removed.
func PurgeHTTPCache(ctx context.Context, rdb *redis.Client) (int64, error) {
	if rdb == nil {
		return 0, nil
	}
	var deleted int64
	iter := rdb.Scan(ctx, 0, APICachePrefix+"*", purgeScanCount).Iterator()
	batch := make([]string, 0, purgeScanCount)
	flush := func() error {
		if len(batch) == 0 {
			return nil
		}
		n, err := rdb.Del(ctx, batch...).Result()
		deleted += n
		batch = batch[:0]
		return err
	}
	for iter.Next(ctx) {
		batch = append(batch, iter.Val())
		if len(batch) == purgeScanCount {
			if err := flush(); err != nil {
				return deleted, err
			}
		}
	}
	if err := iter.Err(); err != nil {
		return deleted, err
	}
	return deleted, flush()
}

// CachePurger returns a callback that purges the cache and logs failures.
// Handlers call it after any write that changes public data.
func CachePurger(rdb *redis.Client, log *zap.Logger) func(context.Context) {
	if log == nil {
		log = zap.NewNop()
	}
	return func(ctx context.Context) {
		if rdb == nil {
			return
		}
		if _, err := PurgeHTTPCache(ctx, rdb); err != nil {
			log.Warn("http cache purge failed", zap.Error(err))
		}
	}
}

func pathSkipped(path string, patterns []string) bool {
	for _, pattern := range patterns {
		p := strings.TrimSpace(pattern)
		if p == "" {
			continue
		}
		if prefix, ok := strings.CutSuffix(p, "*"); ok {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		} else if path == p {
			return true
		}
	}
	return false
}

func storable(status int, headers http.Header) bool {
	if status != http.StatusOK {
		return false
	}
	cc := strings.ToLower(headers.Get("Cache-Control"))
	for _, directive := range []string{"no-cache", "no-store", "private"} {
		if strings.Contains(cc, directive) {
			return false
		}
	}
	return true
}
