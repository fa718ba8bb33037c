package responder

// Topic is the canned-reply class a simulated prompt falls into.
type Topic string

const (
	TopicGreeting    Topic = "greeting"
	TopicHelp        Topic = "help"
	TopicWeather     Topic = "weather"
	TopicProgramming Topic = "programming"
	TopicAI          Topic = "ai"
	TopicInformation Topic = "information"
	TopicGratitude   Topic = "gratitude"
	TopicPlatform    Topic = "platform"
	TopicCapability  Topic = "capability"
	TopicScience     Topic = "science"
	TopicHistory     Topic = "history"
	TopicArts        Topic = "arts"
	TopicEconomics   Topic = "economics"
	TopicQuestion    Topic = "question"
	TopicNone        Topic = ""
)

type topicRule struct {
	topic    Topic
	keywords []string
	reply    string
}

// topicRules are checked in order and the first hit wins.
var topicRules = []topicRule{
	{
		topic:    TopicGreeting,
		keywords: []string{"hello", "hi", "hey", "greetings", "good morning", "good afternoon", "good evening", "howdy"},
		reply:    "Hello! I'm a simulated AI assistant running in demo mode. How can I help you today?",
	},
	{
		topic:    TopicHelp,
		keywords: []string{"help", "assist", "assistance", "support", "stuck", "how do i"},
		reply: "I'd be happy to help! I'm currently running in simulation mode without access to a live AI service, " +
			"so my answers are generic. Ask about a specific topic and I'll do my best.",
	},
	{
		topic:    TopicWeather,
		keywords: []string{"weather", "forecast", "temperature", "rain", "raining", "sunny", "snow", "snowing"},
		reply: "I can't check the weather right now because I'm running in simulation mode and have no access to live data. " +
			"A local forecast service will give you accurate conditions.",
	},
	{
		topic: TopicProgramming,
		keywords: []string{
			"code", "coding", "programming", "program", "developer", "python", "javascript", "golang", "java",
			"function", "bug", "debug", "compile",
		},
		reply: "Here's a simulated response about coding. Connected to a real model I could walk through code, explain errors " +
			"and suggest fixes. Until then, a Code Generator tool from the catalog is a good place to start.",
	},
	{
		topic: TopicAI,
		keywords: []string{
			"ai", "artificial intelligence", "machine learning", "neural network", "neural networks", "deep learning",
			"llm", "gpt", "chatbot",
		},
		reply: "Artificial intelligence covers techniques that let machines learn from data and make decisions. " +
			"Machine learning models find patterns in examples, and large language models like the ones in this catalog " +
			"generate text from those patterns. This is a simulated answer, so treat it as an overview.",
	},
	{
		topic: TopicInformation,
		keywords: []string{
			"what is", "what are", "who is", "who was", "tell me about", "explain", "define", "definition",
			"information", "meaning of",
		},
		reply: "That's a good thing to want to know about. In simulation mode I can only give a general answer; " +
			"with an API key configured the selected tool would provide a detailed explanation.",
	},
	{
		topic:    TopicGratitude,
		keywords: []string{"thank", "thanks", "thank you", "thx", "appreciate", "appreciated", "grateful"},
		reply:    "You're welcome! Glad I could help, even in simulation mode.",
	},
	{
		topic:    TopicPlatform,
		keywords: []string{"this platform", "this site", "this website", "this app", "inspire", "catalog", "catalogue", "directory"},
		reply: "This platform is a curated directory of AI tools. You can browse tools by category, such as image, video and " +
			"code generators, transcription services and word processors, compare how popular they are with other users, " +
			"and mark the ones you like as favorites. When you send a message without picking a tool, the assistant reads " +
			"what you wrote, works out which kind of tool fits best and hands the conversation to the most popular tool in " +
			"that category. Conversations are saved so you can come back to them later, download them as JSON, text or CSV, " +
			"and share them with other people. Tools that are connected to a provider answer with a real model; the others " +
			"reply in a demo mode like this one.",
	},
	{
		topic:    TopicCapability,
		keywords: []string{"can you", "what can you do", "are you able", "capabilities", "capable", "your abilities"},
		reply: "I can answer questions, draft and edit text, explain code and suggest ideas. Right now I'm a simulated " +
			"assistant, so replies come from a fixed set of answers rather than a live model.",
	},
	{
		topic:    TopicScience,
		keywords: []string{"science", "scientific", "physics", "chemistry", "biology", "astronomy", "experiment", "quantum"},
		reply: "Science is a great topic. Whether it's physics, chemistry or biology, a connected model could explain the " +
			"concepts and point to further reading. In simulation mode I can only acknowledge the question.",
	},
	{
		topic:    TopicHistory,
		keywords: []string{"history", "historical", "ancient", "century", "medieval", "empire", "war"},
		reply: "History is full of fascinating stories. With a real AI backend I could summarize events, periods and key " +
			"figures for you; in simulation mode this placeholder will have to do.",
	},
	{
		topic:    TopicArts,
		keywords: []string{"art", "arts", "music", "painting", "literature", "poetry", "poem", "film", "culture", "museum"},
		reply: "Art and culture are wonderfully broad subjects, from painting and music to literature and film. " +
			"A connected model could discuss styles, works and artists in depth.",
	},
	{
		topic: TopicEconomics,
		keywords: []string{
			"economy", "economics", "business", "market", "markets", "finance", "investment", "startup", "inflation", "stock",
		},
		reply: "Business and economics questions usually depend on current data. A connected model could explain markets, " +
			"inflation or pricing strategy; in simulation mode I can only offer this general note.",
	},
}

const questionReply = "That's an interesting question! In production mode with API keys configured, I could provide a real answer."

var fillerReplies = [...]string{
	"I'm a simulated AI response since no API key was provided. Your question seems interesting!",
	"This is a placeholder response. To get real AI responses, please configure the API keys.",
	"I'm a demo response. In production, this would connect to the actual AI service.",
	"Thanks for your prompt! This is a simulated response for testing purposes.",
	"I understand you're asking about something, but I'm just a simulated response.",
}

const (
	detailedReply = " You've shared a detailed message. With a live model connected I could respond to each point in turn."
	briefReply    = " Your message is quite brief. Adding more detail would help me give a more useful answer."
)
