package dispatcher

import "meal-planning-assistant/internal/chat"

// intentTools maps each tool-requiring intent to the ordered tool sequence
// it runs. CONVERSATIONAL and UNKNOWN map to no tools.
var intentTools = map[chat.Intent][]string{
	chat.IntentMealPlan:          {"generate_meal_plan"},
	chat.IntentGroceryList:       {"generate_grocery_list"},
	chat.IntentNutritionAnalysis: {"analyze_nutrition"},
	chat.IntentMealSwap:          {"swap_meal"},
	chat.IntentRecipe:            {"generate_meal_recipe"},
	chat.IntentPantryAnalysis:    {"analyze_pantry_image"},
}

// clarifications are the replies sent when a tool needs context the session
// does not have. Keyed by the missing field.
var clarifications = map[string]string{
	"meal_plan_id": `I don't see a meal plan in this conversation yet. Ask me to create one first, for example: "make me a 3-day meal plan".`,
	"image":        "I'll need a photo of your pantry or fridge to analyze. Could you attach one?",
}

const defaultClarification = "I'm missing some information from earlier in our conversation. Could you give me a bit more detail?"
