package input

import "mock-interview/internal/domain"

// SpeechAnalyzer interface - Input port (use case)
// Pure transcript heuristics, no I/O.
type SpeechAnalyzer interface {
	AnalyzeSpeech(transcript string, durationSeconds float64) domain.SpeechMetrics
	AnalyzeTone(transcript string) domain.ToneAnalysis
	GenerateSpeechFeedback(metrics domain.SpeechMetrics) domain.Feedback
	GenerateVisualFeedback(metrics domain.VisualMetrics) domain.Feedback
	Analyze(transcript string, durationSeconds float64) domain.SpeechReport
}
