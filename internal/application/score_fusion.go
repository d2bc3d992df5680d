package application

import "mock-interview/internal/domain"

// Per-mode weights in percent. Video records visual metrics but does not weight them.
var (
	spokenWeights        = modeWeights{content: 70, clarity: 15, tone: 15}
	videoAdvancedWeights = modeWeights{content: 50, clarity: 20, tone: 15, visual: 15}
)

type modeWeights struct {
	content, clarity, tone, visual int
}

// CombinedScore fuses the sub-scores of one answer for the interview mode.
func CombinedScore(mode domain.InterviewMode, content int, speech domain.SpeechMetrics, visual domain.VisualMetrics) int {
	var w modeWeights
	switch mode {
	case domain.InterviewModeVoice, domain.InterviewModeVideo:
		w = spokenWeights
	case domain.InterviewModeVideoAdvanced:
		w = videoAdvancedWeights
	default:
		return domain.ClampScore(content)
	}
	return domain.FuseScores(
		domain.Weighted{Score: content, Percent: w.content},
		domain.Weighted{Score: speech.ClarityScore, Percent: w.clarity},
		domain.Weighted{Score: speech.ToneConfidenceScore, Percent: w.tone},
		domain.Weighted{Score: visual.OverallConfidence, Percent: w.visual},
	)
}

// fusedAnswer is an answer ready to append as a QuestionRecord.
type fusedAnswer struct {
	evaluation domain.Evaluation
	speech     *domain.SpeechMetrics
	visual     *domain.VisualMetrics
}

// fuseAnswer combines the content evaluation with speech and visual results.
// Strengths and improvements are concatenated in content, speech, visual order.
func fuseAnswer(mode domain.InterviewMode, content domain.Evaluation, speech *domain.SpeechMetrics, visual *domain.VisualMetrics, analyzer SpeechAnalyzer) fusedAnswer {
	evaluation := content
	evaluation.ContentScore = domain.ClampScore(content.ContentScore)
	evaluation.DetailedAnalysis = content.DetailedAnalysis.Clamp()
	evaluation.Strengths = append([]string{}, content.Strengths...)
	evaluation.Improvements = append([]string{}, content.Improvements...)

	if mode != domain.InterviewModeVoice && mode != domain.InterviewModeVideo && mode != domain.InterviewModeVideoAdvanced {
		evaluation.CombinedScore = evaluation.ContentScore
		return fusedAnswer{evaluation: evaluation}
	}

	out := fusedAnswer{}
	var s domain.SpeechMetrics
	if speech != nil {
		s = clampSpeech(*speech)
		out.speech = &s
	}
	speechFeedback := analyzer.GenerateSpeechFeedback(s)
	evaluation.Strengths = append(evaluation.Strengths, speechFeedback.Strengths...)
	evaluation.Improvements = append(evaluation.Improvements, speechFeedback.Improvements...)

	var v domain.VisualMetrics
	if mode == domain.InterviewModeVideo || mode == domain.InterviewModeVideoAdvanced {
		v = domain.NormalizeVisualMetrics(visual)
		out.visual = &v
	}
	if mode == domain.InterviewModeVideoAdvanced {
		visualFeedback := analyzer.GenerateVisualFeedback(v)
		evaluation.Strengths = append(evaluation.Strengths, visualFeedback.Strengths...)
		evaluation.Improvements = append(evaluation.Improvements, visualFeedback.Improvements...)
	}

	evaluation.CombinedScore = CombinedScore(mode, evaluation.ContentScore, s, v)
	out.evaluation = evaluation
	return out
}

func clampSpeech(m domain.SpeechMetrics) domain.SpeechMetrics {
	m.ClarityScore = domain.ClampScore(m.ClarityScore)
	m.ToneConfidenceScore = domain.ClampScore(m.ToneConfidenceScore)
	for _, n := range []*int{&m.WordCount, &m.FillerWordCount, &m.SpeakingRateWPM, &m.PauseCount, &m.AvgWordsPerSentence} {
		if *n < 0 {
			*n = 0
		}
	}
	return m
}
