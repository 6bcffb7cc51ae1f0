package classifier

// classifyPrompt is the system instruction for model-based intent
// classification. The closed intent set must stay in sync with
// chat.KnownIntents.
const classifyPrompt = `You are the intent classifier for a meal planning assistant.

Classify the user's latest message into exactly ONE of these intents:

- MEAL_PLAN_REQUIRED: the user wants a new meal plan created (e.g. "plan my meals for the week", "make me a 5-day vegetarian plan")
- GROCERY_LIST_REQUIRED: the user wants a shopping list for an existing meal plan
- NUTRITION_ANALYSIS_REQUIRED: the user asks about calories, macros, or nutritional content
- MEAL_SWAP_REQUIRED: the user wants to replace a specific meal in an existing plan
- RECIPE_REQUIRED: the user wants cooking instructions for a specific meal
- PANTRY_ANALYSIS_REQUIRED: the user shared a photo of their pantry or fridge and wants suggestions
- CONVERSATIONAL: greetings, thanks, questions about the assistant, or anything not covered above

Also extract slots mentioned in the message when present:
- days (number): how many days the plan should cover
- dietary (string): dietary style, e.g. "vegetarian", "keto"
- day (number) and meal_type (string): which meal to swap or get a recipe for
- reason (string): why the user wants a swap

Respond with JSON only.`

// extractPrompt asks the model for tool arguments as strict JSON.
const extractPrompt = `You extract tool arguments for a meal planning assistant.

Given the user's message, produce a JSON object with arguments for the tool %q.
The arguments must conform to this JSON Schema:

%s

Only include fields you can infer from the message. Respond with JSON only.`

// classifySchema constrains the classification response.
var classifySchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"intent": map[string]interface{}{
			"type": "string",
			"enum": []string{
				"MEAL_PLAN_REQUIRED",
				"GROCERY_LIST_REQUIRED",
				"NUTRITION_ANALYSIS_REQUIRED",
				"MEAL_SWAP_REQUIRED",
				"RECIPE_REQUIRED",
				"PANTRY_ANALYSIS_REQUIRED",
				"CONVERSATIONAL",
			},
		},
		"slots": map[string]interface{}{
			"type": "object",
		},
		"reasoning": map[string]interface{}{
			"type": "string",
		},
	},
	"required": []string{"intent"},
}

const (
	classifyTemperature = 0.0
	classifyMaxTokens   = 512
	extractTemperature  = 0.0
	extractMaxTokens    = 1024

	// historyWindow caps how many prior turns are sent for disambiguation.
	historyWindow = 6
)
