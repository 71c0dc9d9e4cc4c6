package prompt

// Convenience functions for common prompt operations

// GetAnalysisPrompt returns an analysis prompt's system prompt by kind
// (swot, memo, pitch_deck, news).
func GetAnalysisPrompt(kind string) (string, error) {
	id := "analysis." + kind
	return Get().GetSystemPrompt(id)
}

// GetLBOPrompt returns an LBO modeling prompt's system prompt.
func GetLBOPrompt(name string) (string, error) {
	id := "lbo." + name
	return Get().GetSystemPrompt(id)
}

// PromptIDs contains all known prompt identifiers.
var PromptIDs = struct {
	AnalysisSWOT      string
	AnalysisMemo      string
	AnalysisPitchDeck string
	AnalysisNews      string
	LBOAssumptions    string
}{
	AnalysisSWOT:      "analysis.swot",
	AnalysisMemo:      "analysis.memo",
	AnalysisPitchDeck: "analysis.pitch_deck",
	AnalysisNews:      "analysis.news",
	LBOAssumptions:    "lbo.assumptions",
}
