package orchestrator

// fallbackReply is the fixed degraded response when classification cannot
// run at all (model endpoint down, or an unexpected panic in the turn).
const fallbackReply = "I encountered an error processing your request. Please try again."

// conversationalPrompt steers the one model call a tool-free turn makes.
const conversationalPrompt = `You are a friendly meal planning assistant. Reply to the user briefly and warmly.
You can create meal plans, generate grocery lists, analyze nutrition, swap meals, and share recipes.
If the user seems unsure, mention one or two of those abilities. Keep it under three sentences.`

const (
	conversationalTemperature = 0.7
	conversationalMaxTokens   = 256
)
