package httpapi

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strconv"
	"time"

	"intake-platform/internal/auth"
	"intake-platform/internal/intake"
	"intake-platform/internal/lead"
	"intake-platform/internal/rbac"
	"intake-platform/internal/reporting"

	"github.com/gin-gonic/gin"
)

// Handlers groups HTTP handlers for dependency injection.
// Keep these thin: parse/validate input, call internal services, return JSON.

type Handlers struct {
	Auth        *auth.Manager
	OperatorKey string

	Orchestrator *intake.Orchestrator
	Leads        *lead.Service
	Reports      *reporting.Service
}

func (h Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// --- Intake ---

// HandleCall is the public intake endpoint. Field bounds are enforced here;
// the orchestrator trusts its input.
func (h Handlers) HandleCall(c *gin.Context) {
	if h.Orchestrator == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "intake not configured"})
		return
	}

	var req intake.CallRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.Phone == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "phone required"})
		return
	}
	if req.Budget < 0 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "budget must be non-negative"})
		return
	}
	if req.Beds != 0 && (req.Beds < 1 || req.Beds > 5) {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "beds must be 1-5"})
		return
	}
	if req.Parking < 0 || req.Parking > 3 {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "parking must be 0-3"})
		return
	}

	resp, err := h.Orchestrator.HandleCall(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, intake.ErrRateLimited) {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "too many requests"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "call handling failed"})
		return
	}
	c.JSON(http.StatusOK, resp)
}

// --- Auth ---

type loginRequest struct {
	OperatorID  string `json:"operator_id"`
	OperatorKey string `json:"operator_key"`
	Role        string `json:"role"`
}

// Login exchanges the shared operator key for a JWT token pair.
func (h Handlers) Login(c *gin.Context) {
	if h.Auth == nil || h.OperatorKey == "" {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "auth not configured"})
		return
	}
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid json"})
		return
	}
	if req.OperatorID == "" || req.Role == "" {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "operator_id and role required"})
		return
	}
	if req.Role != rbac.RoleAgent && req.Role != rbac.RoleAdmin {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "unknown role"})
		return
	}
	if subtle.ConstantTimeCompare([]byte(req.OperatorKey), []byte(h.OperatorKey)) != 1 {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid operator key"})
		return
	}

	pair, err := h.Auth.IssuePair(time.Now(), req.OperatorID, req.Role)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "token issuance failed"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": pair.AccessToken, "refresh_token": pair.RefreshToken})
}

// --- Leads ---

func (h Handlers) ListLeads(c *gin.Context) {
	if h.Leads == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "leads not configured"})
		return
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	leads, err := h.Leads.ListRecent(c.Request.Context(), limit)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "lead listing failed"})
		return
	}
	if leads == nil {
		leads = []lead.Lead{}
	}
	c.JSON(http.StatusOK, gin.H{"leads": leads})
}

// --- Reporting ---

// LeadsReport aggregates the intake funnel over [from, to). The range
// defaults to the trailing 7 days.
func (h Handlers) LeadsReport(c *gin.Context) {
	if h.Reports == nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "reporting not configured"})
		return
	}

	to := time.Now()
	from := to.AddDate(0, 0, -7)
	var err error
	if raw := c.Query("from"); raw != "" {
		if from, err = time.Parse(time.RFC3339, raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "from must be RFC3339"})
			return
		}
	}
	if raw := c.Query("to"); raw != "" {
		if to, err = time.Parse(time.RFC3339, raw); err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "to must be RFC3339"})
			return
		}
	}

	summary, err := h.Reports.LeadsSummary(c.Request.Context(), reporting.LeadsSummaryRequest{
		Range: reporting.TimeRange{From: from, To: to},
	})
	if err != nil {
		if errors.Is(err, reporting.ErrInvalidRequest) {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "invalid range"})
			return
		}
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "report failed"})
		return
	}
	c.JSON(http.StatusOK, summary)
}
