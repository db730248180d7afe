package handler

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"folioboard/internal/client/folio"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// BackendError maps a backend client failure onto our envelope. Backend
// 4xx statuses pass through (the detail is user-relevant validation); other
// failures surface as 502.
func BackendError(c *gin.Context, err error) {
	var apiErr *folio.APIError
	if errors.As(err, &apiErr) {
		status := apiErr.Status
		if status < 400 || status >= 500 {
			status = http.StatusBadGateway
		}
		Error(c, status, apiErr.Detail, nil)
		return
	}
	Error(c, http.StatusBadGateway, err.Error(), nil)
}

func intQuery(c *gin.Context, key string, def int) int {
	if val := c.Query(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return def
}

func boolQueryDefault(c *gin.Context, key string, def bool) bool {
	if val := c.Query(key); val != "" {
		if b, err := strconv.ParseBool(val); err == nil {
			return b
		}
	}
	return def
}

func strQuery(c *gin.Context, key, def string) string {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		return val
	}
	return def
}

func uint64QueryPtr(c *gin.Context, key string) *uint64 {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if n, err := strconv.ParseUint(val, 10, 64); err == nil {
			return &n
		}
	}
	return nil
}

func decimalQueryPtr(c *gin.Context, key string) *decimal.Decimal {
	if val := strings.TrimSpace(c.Query(key)); val != "" {
		if d, err := decimal.NewFromString(val); err == nil {
			return &d
		}
	}
	return nil
}

func uint64Param(c *gin.Context, key string) uint64 {
	val := strings.TrimSpace(c.Param(key))
	if val == "" {
		return 0
	}
	var out uint64
	for i := 0; i < len(val); i++ {
		ch := val[i]
		if ch < '0' || ch > '9' {
			return 0
		}
		out = out*10 + uint64(ch-'0')
	}
	return out
}

func paginationMeta(limit, offset int, total int64) map[string]any {
	if limit <= 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	hasNext := int64(offset+limit) < total
	return map[string]any{
		"limit":    limit,
		"offset":   offset,
		"total":    total,
		"has_next": hasNext,
	}
}
