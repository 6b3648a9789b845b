package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// DealerMiddleware establishes the dealer identity for cart and order
// routes. The JWT claims are authoritative; the X-Dealer-ID header is
// accepted only when the token carried no dealer. No default fallback -
// requests without a dealer context are rejected.
func DealerMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		dealerID := c.GetString("dealer_id")

		if dealerID == "" {
			dealerID = c.GetHeader("X-Dealer-ID")
		}

		if dealerID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"success": false,
				"error": gin.H{
					"code":    "DEALER_REQUIRED",
					"message": "Dealer ID is required. Authenticate with a dealer token or include the X-Dealer-ID header.",
				},
			})
			c.Abort()
			return
		}

		c.Set("dealer_id", dealerID)
		c.Next()
	}
}

// GetDealerID retrieves the dealer ID from gin context
func GetDealerID(c *gin.Context) string {
	return c.GetString("dealer_id")
}
