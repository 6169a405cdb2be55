package handlers

import (
	"log"
	"net/http"

	"gtdflow/internal/cache"

	"github.com/gin-gonic/gin"
)

type CacheHandler struct {
	Cache cache.Cache
}

func NewCacheHandler(cacheInstance cache.Cache) *CacheHandler {
	return &CacheHandler{Cache: cacheInstance}
}

// GetCacheStats reports per-level cache statistics. GET /cache/stats
func (h *CacheHandler) GetCacheStats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Cache.Stats())
}

// GetCacheHealth pings the cache backend. GET /cache/health
func (h *CacheHandler) GetCacheHealth(c *gin.Context) {
	if err := h.Cache.Health(); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":  "unhealthy",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// ClearCache flushes every cached key. DELETE /cache/clear
func (h *CacheHandler) ClearCache(c *gin.Context) {
	if err := h.Cache.DeletePattern("*"); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "INTERNAL_SERVER_ERROR",
			"message": err.Error(),
		})
		return
	}

	log.Printf("cache cleared by user: %s", c.GetString("user_id"))
	c.JSON(http.StatusOK, gin.H{"message": "cache cleared successfully"})
}

// EvictKey removes a single cache key. DELETE /cache/evict/:key
func (h *CacheHandler) EvictKey(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "VALIDATION",
			"message": "key is required",
		})
		return
	}

	if err := h.Cache.Delete(key); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "INTERNAL_SERVER_ERROR",
			"message": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "key evicted"})
}
