package constant

const (
	// Default timeout for a single generation-service call. After this the
	// rule-based fallback takes over immediately; no retry against the
	// service.
	GenerationTimeoutSeconds = 8

	// Maximum intake answers sampled into the generation prompt. Keeps the
	// prompt bounded for long questionnaires.
	PromptAnswerSampleSize = 5

	FollowUpGenerationPromptV1 = `You are helping build a personalization profile from a user's free-text
answers to a diagnostic questionnaire. Some topical categories are still
under-covered. Draft ONE follow-up question per missing category below.

RULES (follow exactly, don't explain them):
1. One question per category, in the order given
2. Open-ended, answerable in 2-4 sentences of free text
3. Match the user's preferred tone if one is provided
4. Reference the user's own words from prior answers where natural
5. Never ask about a category that is not in the list

OUTPUT: respond with ONLY a JSON object, no prose before or after:
{"questions":[{"question":"...","category":"<exact category name>","placeholder":"<short example answer>","context":"<one sentence on why this is being asked>"}]}`

	ReportGenerationPromptV1 = `You are writing a personalization profile report from a user's diagnostic
answers. Write a warm, second-person narrative summary.

RULES:
1. Ground every statement in the answers provided; invent nothing
2. Organize by theme, not by question order
3. 300-500 words
4. No headings, no bullet lists, no clinical language or diagnoses
5. Close with one sentence on which areas the profile still knows least about`
)
