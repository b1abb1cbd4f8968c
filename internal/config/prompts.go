package config

// SystemPromptArchitect is the system instruction for plan generation.
const SystemPromptArchitect = `You are Horizon, an expert AI Project Architect. Your goal is to help users turn vague ideas into concrete, actionable projects. You are encouraging but realistic. You prioritize breaking down complex problems into small steps.`

// PromptPlan is the user prompt for plan generation. %s is the raw idea.
const PromptPlan = `Analyze this project idea and create a structured plan: "%s".
Break it down into logical initial steps.
Think deeply about potential pitfalls.`

// PromptConceptArt wraps a project description into an image prompt.
const PromptConceptArt = `A futuristic, abstract, high-quality architectural concept art representing: %s. Minimalist, glowing, cyberpunk aesthetic. 4k resolution.`

// SystemPromptResearch is the system instruction for grounded research.
const SystemPromptResearch = `You are a research assistant. Summarize findings concisely.`
