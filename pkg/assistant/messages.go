package assistant

// Fixed lines of the chat session.
const (
	Title = "🎓 WELCOME TO MANAV RACHNA UNIVERSITY VOICE ASSISTANT 🎓"

	WelcomeMessage = `Hello! I'm your virtual assistant for Manav Rachna University.
I can help you with information about admissions, courses, fees, placements, facilities, and more.

You can speak naturally or type your questions. Say 'help' for commands or 'quit' to exit.

How can I assist you today?`

	HelpText = `Available commands:
• Ask about admissions, courses, fees, placements
• Say 'voice' to enable voice mode
• Say 'text' to switch to text mode
• Say 'summary' for conversation summary
• Say 'quit' to exit`

	FarewellMessage = "Thank you for using MRU Voice Assistant. Have a great day!"
	FollowUpPrompt  = "Is there anything else you'd like to know about MRU?"
	StoppedMessage  = "👋 Chatbot stopped by user. Goodbye!"

	VoicePrompt         = "🎤 Speak your question or type 'text' to switch to text mode:"
	VoiceEnabledMessage = "Voice mode enabled! You can now speak your questions."
	VoiceAlreadyOn      = "Voice mode is already on."
	TextSwitchedMessage = "📝 Switched to text mode"
	TextAlreadyOn       = "Text mode is already on."
	VoiceFallback       = "⚠️ Voice features not available. Running in text mode."

	apologyFormat      = "Sorry, I encountered an error: %v. Please try again."
	voiceFailureFormat = "Could not enable voice mode: %v"
)
