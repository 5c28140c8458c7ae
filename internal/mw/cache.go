package mw

import (
	"bytes"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
)

type cachedResponse struct {
	status  int
	headers http.Header
	body    []byte
}

type bodyCacheWriter struct {
	gin.ResponseWriter
	body *bytes.Buffer
}

func (w bodyCacheWriter) Write(b []byte) (int, error) {
	w.body.Write(b)
	return w.ResponseWriter.Write(b)
}

func (w bodyCacheWriter) WriteString(s string) (int, error) {
	w.body.WriteString(s)
	return w.ResponseWriter.WriteString(s)
}

// Cache serves successful GET responses from an in-memory store. A
// successful write under the same resource prefix flushes that resource's
// cached entries, so lists and lookups never serve documents older than the
// latest accepted HTTP write. Writes that bypass HTTP (MQTT ingestion) are
// only bounded by the TTL.
func Cache(store *cache.Cache, ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodGet {
			c.Next()
			if c.Writer.Status() < 400 {
				invalidatePrefix(store, resourcePrefix(c.Request.URL.Path))
				// Admin edits also invalidate the admin browser's own entries.
				if strings.HasPrefix(c.Request.URL.Path, "/admin/") {
					invalidatePrefix(store, "/admin")
				}
			}
			return
		}

		key := c.Request.URL.RequestURI()
		if hit, found := store.Get(key); found {
			cached := hit.(cachedResponse)
			for k, v := range cached.headers {
				c.Writer.Header()[k] = v
			}
			c.Writer.WriteHeader(cached.status)
			c.Writer.Write(cached.body)
			c.Abort()
			return
		}

		blw := &bodyCacheWriter{body: bytes.NewBuffer(nil), ResponseWriter: c.Writer}
		c.Writer = blw

		c.Next()

		if blw.Status() >= 200 && blw.Status() < 300 {
			store.Set(key, cachedResponse{
				status:  blw.Status(),
				headers: blw.Header().Clone(),
				body:    blw.body.Bytes(),
			}, ttl)
		}
	}
}

// resourcePrefix extracts the resource's leading path segment, e.g.
// "/sensor" from "/sensor/abc123/sensor" or "/admin/api/sensor/abc123".
func resourcePrefix(path string) string {
	trimmed := strings.TrimPrefix(path, "/admin/api")
	trimmed = strings.TrimPrefix(trimmed, "/")
	if i := strings.Index(trimmed, "/"); i >= 0 {
		trimmed = trimmed[:i]
	}
	return "/" + trimmed
}

func invalidatePrefix(store *cache.Cache, prefix string) {
	for key := range store.Items() {
		if strings.HasPrefix(key, prefix) {
			store.Delete(key)
		}
	}
}
