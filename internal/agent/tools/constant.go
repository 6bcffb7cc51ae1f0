package tools

const (
	generationTemperature = 0.4
	generationMaxTokens   = 4096

	defaultPlanDays = 3
	maxPlanDays     = 14
)

const mealPlanPrompt = `You are a meal planning assistant. Create a realistic, varied meal plan.
Respect the dietary style, cuisine preference, goal and allergies if given.
Give every meal a short appetizing description and a realistic calorie estimate.
Respond with JSON only.`

const groceryListPrompt = `You are a meal planning assistant. Given a meal plan, produce a consolidated
grocery list. Group items by store section (Produce, Dairy, Meat & Fish, Pantry, etc.),
merge duplicate ingredients across meals, and estimate a cost per item in the given
currency. Respond with JSON only.`

const nutritionPrompt = `You are a nutrition analyst. Given a meal plan, estimate total and daily
calories and the macro split, and note anything worth flagging (low protein,
high sodium staples, missing vegetables). Respond with JSON only.`

const swapMealPrompt = `You are a meal planning assistant. Propose ONE replacement for the given meal.
The replacement must fit the plan's dietary style and be roughly comparable in
calories unless the user's reason asks otherwise. Respond with JSON only.`

const pantryPrompt = `You are a meal planning assistant. The user describes or photographs what is in
their pantry or fridge. Identify the items, suggest meals they could make right
now, and list common staples they appear to be missing. Respond with JSON only.`

const recipePrompt = `You are a recipe writer. Produce a clear home-cook recipe for the given meal:
ingredient list with quantities and numbered steps. Respond with JSON only.`
