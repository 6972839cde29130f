package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	currencyapp "github.com/orderdesk/backend/internal/application/currency"
)

// CurrencyHandler handles exchange-rate API endpoints
type CurrencyHandler struct {
	BaseHandler
	ratesService *currencyapp.RatesService
}

// NewCurrencyHandler creates a new CurrencyHandler
func NewCurrencyHandler(ratesService *currencyapp.RatesService) *CurrencyHandler {
	return &CurrencyHandler{ratesService: ratesService}
}

// RegisterRoutes registers currency routes
func (h *CurrencyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/currency/rates", h.Rates)
}

// Rates handles GET /currency/rates. The optional preview_cost_krw query
// parameter adds a derived-price preview to the response.
func (h *CurrencyHandler) Rates(c *gin.Context) {
	var preview *decimal.Decimal
	if raw := c.Query("preview_cost_krw"); raw != "" {
		cost, err := decimal.NewFromString(raw)
		if err != nil || cost.IsNegative() {
			h.BadRequest(c, "preview_cost_krw must be a non-negative number")
			return
		}
		preview = &cost
	}
	h.Success(c, h.ratesService.Current(c.Request.Context(), preview))
}
