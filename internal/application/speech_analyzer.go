package application

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"mock-interview/internal/domain"
	"mock-interview/internal/ports/input"
)

var fillerPhrases = []string{
	"um", "umm", "uh", "uhm", "er", "erm", "ah", "hmm",
	"like", "you know", "i mean", "basically", "actually", "literally",
	"sort of", "kind of",
}

var uncertainPhrases = []string{
	"i think", "maybe", "perhaps", "probably", "i guess", "i suppose",
	"not sure", "might", "possibly", "hopefully",
}

var confidentPhrases = []string{
	"definitely", "certainly", "absolutely", "clearly", "confident",
	"i know", "i am sure", "i'm sure", "without a doubt",
	"i led", "i built", "i delivered", "i achieved", "successfully",
}

var (
	pausePattern       = regexp.MustCompile(`[.!?]\s`)
	sentenceSplitter   = regexp.MustCompile(`[.!?]+`)
	fillerPatterns     = compilePhrases(fillerPhrases)
	uncertainPatterns  = compilePhrases(uncertainPhrases)
	confidencePatterns = compilePhrases(confidentPhrases)
)

// compilePhrases builds case-insensitive whole-word matchers.
func compilePhrases(phrases []string) []*regexp.Regexp {
	patterns := make([]*regexp.Regexp, 0, len(phrases))
	for _, phrase := range phrases {
		words := strings.Fields(phrase)
		for i, w := range words {
			words[i] = regexp.QuoteMeta(w)
		}
		patterns = append(patterns, regexp.MustCompile(`(?i)\b`+strings.Join(words, `\s+`)+`\b`))
	}
	return patterns
}

func countMatches(text string, patterns []*regexp.Regexp) int {
	total := 0
	for _, p := range patterns {
		total += len(p.FindAllStringIndex(text, -1))
	}
	return total
}

var _ input.SpeechAnalyzer = SpeechAnalyzer{}

// SpeechAnalyzer struct - Pure transcript heuristics
type SpeechAnalyzer struct{}

// NewSpeechAnalyzer func
func NewSpeechAnalyzer() SpeechAnalyzer {
	return SpeechAnalyzer{}
}

// AnalyzeSpeech derives rate, filler, clarity and pause metrics from a transcript.
func (a SpeechAnalyzer) AnalyzeSpeech(transcript string, durationSeconds float64) domain.SpeechMetrics {
	words := strings.Fields(transcript)
	wordCount := len(words)

	rate := 0
	if durationSeconds > 0 {
		rate = int(math.Floor(float64(wordCount)/durationSeconds*60 + 0.5))
	}

	fillers := countMatches(transcript, fillerPatterns)

	// 100 - (fillers/words*100)*10, rounded once over the exact fraction
	clarity := 0
	if wordCount > 0 {
		clarity = domain.ClampScore(domain.RoundDiv(100*wordCount-1000*fillers, wordCount))
	}

	sentences := 0
	for _, s := range sentenceSplitter.Split(transcript, -1) {
		if strings.TrimSpace(s) != "" {
			sentences++
		}
	}
	avgWords := 0
	if sentences > 0 {
		avgWords = domain.RoundDiv(wordCount, sentences)
	}

	return domain.SpeechMetrics{
		WordCount:           wordCount,
		FillerWordCount:     fillers,
		SpeakingRateWPM:     rate,
		SpeedCategory:       domain.SpeedCategoryFor(rate),
		ClarityScore:        clarity,
		PauseCount:          len(pausePattern.FindAllStringIndex(transcript, -1)),
		AvgWordsPerSentence: avgWords,
		ToneConfidenceScore: a.AnalyzeTone(transcript).ToneConfidenceScore,
	}
}

// AnalyzeTone counts hedging and assertive phrases.
func (SpeechAnalyzer) AnalyzeTone(transcript string) domain.ToneAnalysis {
	uncertain := countMatches(transcript, uncertainPatterns)
	confident := countMatches(transcript, confidencePatterns)
	return domain.ToneAnalysis{
		UncertainCount:      uncertain,
		ConfidentCount:      confident,
		QuestionCount:       strings.Count(transcript, "?"),
		ToneConfidenceScore: domain.ClampScore(50 + confident*10 - uncertain*5),
	}
}

// GenerateSpeechFeedback maps metrics onto fixed feedback templates.
func (SpeechAnalyzer) GenerateSpeechFeedback(m domain.SpeechMetrics) domain.Feedback {
	fb := domain.Feedback{Strengths: []string{}, Improvements: []string{}}

	switch m.SpeedCategory {
	case domain.SpeedNormal:
		fb.Strengths = append(fb.Strengths, fmt.Sprintf("Good speaking pace (%d words per minute)", m.SpeakingRateWPM))
	case domain.SpeedSlow:
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("Speak a little faster; %d words per minute is below the 100 to 160 range", m.SpeakingRateWPM))
	case domain.SpeedFast:
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("Slow down; %d words per minute is above the 100 to 160 range", m.SpeakingRateWPM))
	}

	switch {
	case m.FillerWordCount > 5:
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("Reduce filler words such as \"um\" and \"like\" (%d detected)", m.FillerWordCount))
	case m.FillerWordCount <= 2:
		fb.Strengths = append(fb.Strengths, "Minimal use of filler words")
	}

	switch {
	case m.ClarityScore < 70:
		fb.Improvements = append(fb.Improvements, "Pause briefly instead of using fillers to improve clarity")
	case m.ClarityScore >= 85:
		fb.Strengths = append(fb.Strengths, "Clear and articulate delivery")
	}

	return fb
}

// GenerateVisualFeedback maps captured engagement metrics onto feedback templates.
func (SpeechAnalyzer) GenerateVisualFeedback(v domain.VisualMetrics) domain.Feedback {
	fb := domain.Feedback{Strengths: []string{}, Improvements: []string{}}

	switch {
	case v.EyeContactScore >= 70:
		fb.Strengths = append(fb.Strengths, "Strong eye contact with the camera")
	case v.EyeContactScore < 50:
		fb.Improvements = append(fb.Improvements, "Look at the camera more often to keep eye contact")
	}

	switch v.Posture {
	case domain.PostureGood:
		fb.Strengths = append(fb.Strengths, "Confident, upright posture")
	case domain.PostureNeedsImprovement:
		fb.Improvements = append(fb.Improvements, "Sit upright and keep your shoulders relaxed")
	}

	switch v.FacialExpression {
	case domain.ExpressionConfident:
		fb.Strengths = append(fb.Strengths, "Confident facial expression")
	case domain.ExpressionUncertain:
		fb.Improvements = append(fb.Improvements, "Keep a calm, positive expression while you think")
	}

	if v.LookingAwayCount > 5 {
		fb.Improvements = append(fb.Improvements, fmt.Sprintf("You looked away %d times; try to stay focused on the camera", v.LookingAwayCount))
	}

	return fb
}

// Analyze runs every transcript heuristic at once.
func (a SpeechAnalyzer) Analyze(transcript string, durationSeconds float64) domain.SpeechReport {
	metrics := a.AnalyzeSpeech(transcript, durationSeconds)
	return domain.SpeechReport{
		Metrics:  metrics,
		Tone:     a.AnalyzeTone(transcript),
		Feedback: a.GenerateSpeechFeedback(metrics),
	}
}
