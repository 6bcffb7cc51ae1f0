package composer

const (
	// failureReply is the degraded reply when a required tool terminally
	// failed. The turn still returns normally.
	failureReply = "I ran into a problem completing that for you. Could you try again in a moment?"

	// unknownReply asks for a rephrase when the intent could not be pinned.
	unknownReply = "I'm not sure what you'd like me to do. I can build meal plans, generate grocery lists, analyze nutrition, swap meals, or share recipes."

	// conversationalReply is the fallback when a conversational turn has no
	// model-written text.
	conversationalReply = "Happy to help with your meals! Ask me for a meal plan, a grocery list, or nutrition info."
)
