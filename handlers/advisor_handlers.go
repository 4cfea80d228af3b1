package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"app/config"
	"app/database"
	"app/forecast"
	"app/metrics"
	"app/models"

	"github.com/gofiber/fiber/v2"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// HandleRestockAdvice generates a natural-language restock recommendation for
// a product using the computed forecast and recent ledger activity as context.
// POST /api/v1/advisor/restock
func HandleRestockAdvice(c *fiber.Ctx) error {
	db := database.GetDB()
	ctx := context.Background()

	var req struct {
		ProductID string `json:"product_id"`
	}
	if err := c.BodyParser(&req); err != nil || req.ProductID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"status": "error", "message": "product_id is required"})
	}

	result, err := getForecast(ctx, req.ProductID)
	if err != nil {
		if errors.Is(err, errProductNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"status": "error", "message": "Product not found"})
		}
		log.Printf("Error computing forecast for advisor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to compute forecast"})
	}

	// Recent ledger lines give the model day-level texture the aggregate
	// forecast numbers lack.
	rows, err := db.Query(ctx, `
		SELECT created_at, quantity
		FROM stock_transactions
		WHERE product_id = $1 AND created_at >= NOW() - INTERVAL '90 days'
		ORDER BY created_at
	`, req.ProductID)
	if err != nil {
		log.Printf("Error fetching ledger for advisor: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to get historical data"})
	}
	defer rows.Close()

	var history strings.Builder
	for rows.Next() {
		var ts time.Time
		var qty int
		if err := rows.Scan(&ts, &qty); err != nil {
			continue
		}
		if qty < 0 {
			fmt.Fprintf(&history, "On %s, %d units were sold.\n", ts.Format("2006-01-02"), -qty)
		} else {
			fmt.Fprintf(&history, "On %s, %d units were received.\n", ts.Format("2006-01-02"), qty)
		}
	}
	historyStr := history.String()
	if historyStr == "" {
		historyStr = "No ledger activity in the last 90 days."
	}

	prompt := constructAdvisorPrompt(result, historyStr)

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.AppConfig.GeminiAPIKey))
	if err != nil {
		log.Printf("Error creating Gemini client: %v", err)
		metrics.AdvisorRequests.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to connect to AI service"})
	}
	defer client.Close()

	model := client.GenerativeModel("gemini-2.5-flash-lite")
	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		log.Printf("Error from Gemini API: %v", err)
		metrics.AdvisorRequests.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": "Failed to generate restock advice"})
	}

	advice, err := parseAdvisorResponse(resp, result)
	if err != nil {
		log.Printf("Error parsing advisor response: %v", err)
		metrics.AdvisorRequests.WithLabelValues("error").Inc()
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"status": "error", "message": err.Error()})
	}

	metrics.AdvisorRequests.WithLabelValues("ok").Inc()
	return c.JSON(fiber.Map{"status": "success", "data": advice})
}

// constructAdvisorPrompt creates a detailed prompt for the Gemini API.
func constructAdvisorPrompt(result forecast.Result, history string) string {
	category := "Unknown"
	if result.Category != nil {
		category = *result.Category
	}

	jsonFormat := `{"forecast":[{"date":"YYYY-MM-DD","predicted_sales":integer},...],"summary":"string","positive_factors":["string",...],"negative_factors":["string",...]}`

	return fmt.Sprintf(`
        You are an expert retail data analyst. Your task is to produce a 7-day sales outlook and a restock recommendation based on the data provided.

        **Analysis Context:**
        - Product Name: %s
        - Category: %s
        - Current Stock Level: %d units
        - Projected 30-day demand: %d units
        - Projected 90-day demand: %d units
        - Estimated days of stock remaining: %d
        - Suggested reorder quantity: %d units
        - Forecast confidence: %.2f
        - Today's Date: %s

        **Stock Ledger (last 90 days):**
        %s

        **Required Output:**
        You must provide a single, minified JSON object with the following exact structure. Do not include any markdown formatting, backticks, or explanatory text before or after the JSON object.

        %s
    `, result.Name, category, result.CurrentStock,
		result.DemandForecast.Next30Days, result.DemandForecast.Next90Days,
		result.StockHealth.DaysRemaining, result.StockHealth.SuggestedOrderQuantity,
		result.ConfidenceScore, time.Now().Format("2006-01-02"), history, jsonFormat)
}

// parseAdvisorResponse extracts the JSON payload from the model output.
func parseAdvisorResponse(resp *genai.GenerateContentResponse, result forecast.Result) (*models.AdvisorResponse, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("empty response from AI service")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected response type from AI service")
	}

	var advice models.AdvisorResponse
	if err := json.Unmarshal([]byte(extractJSON(string(text))), &advice); err != nil {
		return nil, fmt.Errorf("failed to parse AI response: %w", err)
	}

	advice.ProductName = result.Name
	advice.CurrentStock = result.CurrentStock
	return &advice, nil
}

func extractJSON(rawString string) string {
	start := strings.Index(rawString, "{")
	end := strings.LastIndex(rawString, "}")
	if start == -1 || end == -1 || end < start {
		return rawString
	}
	return rawString[start : end+1]
}
