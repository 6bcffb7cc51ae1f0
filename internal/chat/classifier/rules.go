package classifier

import (
	"regexp"
	"strconv"
	"strings"

	"meal-planning-assistant/internal/chat"
)

var (
	dayCountRe = regexp.MustCompile(`(\d+)[\s-]*day`)
	swapRe     = regexp.MustCompile(`\b(swap|replace|change|switch)\b`)
	mealTypeRe = regexp.MustCompile(`\b(breakfast|lunch|dinner|snack)\b`)
	dayRefRe   = regexp.MustCompile(`\bday\s+(\d+)\b`)
)

var dietaryKeywords = []string{
	"vegetarian", "vegan", "keto", "paleo", "pescatarian",
	"gluten-free", "gluten free", "dairy-free", "dairy free", "halal", "kosher",
}

// classifyByRule applies the deterministic layer. A rule match always wins
// over the model; ok is false when no rule fires.
func classifyByRule(message string, sessionCtx *chat.SessionContext) (*Decision, bool) {
	msg := strings.ToLower(message)

	slots := map[string]interface{}{}
	if m := dayCountRe.FindStringSubmatch(msg); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			slots["days"] = n
		}
	}
	for _, kw := range dietaryKeywords {
		if strings.Contains(msg, kw) {
			slots["dietary"] = strings.ReplaceAll(kw, " ", "-")
			break
		}
	}

	switch {
	case strings.Contains(msg, "grocery list") || strings.Contains(msg, "shopping list") ||
		(strings.Contains(msg, "groceries") && sessionCtx != nil && sessionCtx.MealPlanID != ""):
		return &Decision{
			Intent:    chat.IntentGroceryList,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "explicit grocery/shopping list request",
		}, true

	case strings.Contains(msg, "meal plan") || strings.Contains(msg, "plan my meals") ||
		(slots["days"] != nil && strings.Contains(msg, "plan")):
		return &Decision{
			Intent:    chat.IntentMealPlan,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "explicit meal plan request",
		}, true

	case swapRe.MatchString(msg) && (mealTypeRe.MatchString(msg) || dayRefRe.MatchString(msg)):
		if m := dayRefRe.FindStringSubmatch(msg); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				slots["day"] = n
			}
		}
		if m := mealTypeRe.FindString(msg); m != "" {
			slots["meal_type"] = m
		}
		return &Decision{
			Intent:    chat.IntentMealSwap,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "swap verb with a meal reference",
		}, true

	case strings.Contains(msg, "recipe") || strings.Contains(msg, "how do i cook") ||
		strings.Contains(msg, "how to cook") || strings.Contains(msg, "how do i make"):
		if m := dayRefRe.FindStringSubmatch(msg); m != nil {
			if n, err := strconv.Atoi(m[1]); err == nil {
				slots["day"] = n
			}
		}
		if m := mealTypeRe.FindString(msg); m != "" {
			slots["meal_type"] = m
		}
		return &Decision{
			Intent:    chat.IntentRecipe,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "explicit recipe request",
		}, true

	case strings.Contains(msg, "calorie") || strings.Contains(msg, "macro") ||
		strings.Contains(msg, "nutrition") || strings.Contains(msg, "protein") ||
		strings.Contains(msg, "how healthy"):
		return &Decision{
			Intent:    chat.IntentNutritionAnalysis,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "nutrition vocabulary",
		}, true

	case strings.Contains(msg, "pantry") || strings.Contains(msg, "my fridge") ||
		strings.Contains(msg, "in my kitchen"):
		return &Decision{
			Intent:    chat.IntentPantryAnalysis,
			Source:    chat.SourceRule,
			Slots:     slots,
			Reasoning: "pantry/fridge reference",
		}, true
	}

	return nil, false
}
