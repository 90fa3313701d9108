package chatbotControllers

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gy-putra/tamago/models"
	"gorm.io/gorm"
)

const fallbackReply = "I'm having some technical difficulties right now, but I'd love to help you find the perfect shoes! 😊"

type ChatRequest struct {
	Message string `json:"message"`
}

// catalogContext is the compact product summary embedded in the system prompt.
type catalogContext struct {
	PopularProducts []contextProduct `json:"popular_products"`
	HighestRated    []contextProduct `json:"highest_rated"`
	NewestProducts  []contextProduct `json:"newest_products"`
	Bestsellers     []contextProduct `json:"bestsellers"`
}

type contextProduct struct {
	Name          string   `json:"name"`
	Price         float64  `json:"price"`
	OriginalPrice *float64 `json:"original_price,omitempty"`
	Rating        float64  `json:"rating"`
	Reviews       int      `json:"reviews"`
	SoldCount     int      `json:"sold_count"`
	IsBestseller  bool     `json:"is_bestseller"`
}

func toContextProducts(products []models.ProductWithStats) []contextProduct {
	out := make([]contextProduct, 0, len(products))
	for _, p := range products {
		out = append(out, contextProduct{
			Name:          p.Name,
			Price:         p.Price,
			OriginalPrice: p.OriginalPrice,
			Rating:        p.AverageRating,
			Reviews:       p.TotalReviews,
			SoldCount:     p.SoldCount,
			IsBestseller:  p.IsBestseller,
		})
	}
	return out
}

func buildSystemPrompt(catalog []models.ProductWithStats) string {
	var bestsellers []models.ProductWithStats
	for _, p := range catalog {
		if p.IsBestseller {
			bestsellers = append(bestsellers, p)
		}
	}

	context := catalogContext{
		PopularProducts: toContextProducts(topBySoldCount(catalog, 5)),
		HighestRated:    toContextProducts(topByRating(catalog, 5)),
		NewestProducts:  toContextProducts(topByNewest(catalog, 5)),
		Bestsellers:     toContextProducts(bestsellers),
	}
	contextJSON, _ := json.MarshalIndent(context, "", "  ")

	return fmt.Sprintf(`You are an AI Shopping Assistant for TAMAGO.ID, a premium shoe store.

Your personality:
- Friendly, enthusiastic, and helpful
- Concise and to-the-point
- Use emojis sparingly but appropriately

IMPORTANT Guidelines:
- Provide ONLY short, introductory responses (1-2 sentences maximum)
- DO NOT include product details, prices, or specifications in your text
- The product information will be displayed in cards below your message

Product Data Available:
%s

Remember: Keep your response SHORT and let the product cards do the talking!`, contextJSON)
}

// POST /chatbot
//
// This endpoint never returns a 5xx: any internal failure degrades to a
// friendly fallback message so the chat UI keeps working.
func ChatHandler(db *gorm.DB, llm Completer) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ChatRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON in request body"})
			return
		}
		if req.Message == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Message is required"})
			return
		}

		var products []models.Product
		if err := db.Preload("Reviews").Order("created_at DESC").Find(&products).Error; err != nil {
			log.Printf("❌ Chatbot failed to load catalog: %v", err)
			c.JSON(http.StatusOK, gin.H{
				"response":  fallbackReply,
				"products":  []models.ProductWithStats{},
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}

		catalog := make([]models.ProductWithStats, 0, len(products))
		for _, p := range products {
			catalog = append(catalog, models.WithStats(p))
		}

		// The shortlist is computed locally either way.
		shortlist := RouteProducts(req.Message, catalog)

		reply, err := llm.Complete(c.Request.Context(), buildSystemPrompt(catalog), req.Message)
		if err != nil {
			log.Printf("❌ Groq call failed: %v", err)
			if MatchesPopular(req.Message) {
				c.JSON(http.StatusOK, gin.H{
					"response":  "Here are our most popular shoes! 👟",
					"products":  topBySoldCount(catalog, 3),
					"timestamp": time.Now().Format(time.RFC3339),
				})
				return
			}
			c.JSON(http.StatusOK, gin.H{
				"response":  fallbackReply,
				"products":  []models.ProductWithStats{},
				"timestamp": time.Now().Format(time.RFC3339),
			})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"response":  reply,
			"products":  shortlist,
			"timestamp": time.Now().Format(time.RFC3339),
		})
	}
}

// GET /chatbot
func StatusHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "Chatbot API is running. Use POST to send messages."})
}
