package domain

// SpeedCategory type
type SpeedCategory string

const (
	// SpeedSlow const
	SpeedSlow SpeedCategory = "Slow"
	// SpeedNormal const
	SpeedNormal SpeedCategory = "Normal"
	// SpeedFast const
	SpeedFast SpeedCategory = "Fast"
)

// Speaking rate thresholds in words per minute
const (
	SlowRateWPM = 100
	FastRateWPM = 160
)

// SpeedCategoryFor classifies a speaking rate: Slow below 100, Fast above 160.
func SpeedCategoryFor(rateWPM int) SpeedCategory {
	switch {
	case rateWPM < SlowRateWPM:
		return SpeedSlow
	case rateWPM > FastRateWPM:
		return SpeedFast
	}
	return SpeedNormal
}

// Posture type
type Posture string

const (
	// PostureGood const
	PostureGood Posture = "Good"
	// PostureFair const
	PostureFair Posture = "Fair"
	// PostureNeedsImprovement const
	PostureNeedsImprovement Posture = "NeedsImprovement"
)

// FacialExpression type
type FacialExpression string

const (
	// ExpressionConfident const
	ExpressionConfident FacialExpression = "Confident"
	// ExpressionNeutral const
	ExpressionNeutral FacialExpression = "Neutral"
	// ExpressionUncertain const
	ExpressionUncertain FacialExpression = "Uncertain"
)

// SpeechMetrics struct - Heuristic metrics derived from a transcript.
type SpeechMetrics struct {
	WordCount           int           `json:"wordCount"`
	FillerWordCount     int           `json:"fillerWordCount"`
	SpeakingRateWPM     int           `json:"speakingRateWPM"`
	SpeedCategory       SpeedCategory `json:"speedCategory"`
	ClarityScore        int           `json:"clarityScore"`
	PauseCount          int           `json:"pauseCount"`
	AvgWordsPerSentence int           `json:"avgWordsPerSentence"`
	ToneConfidenceScore int           `json:"toneConfidenceScore"`
}

// ToneAnalysis struct
type ToneAnalysis struct {
	UncertainCount      int `json:"uncertainCount"`
	ConfidentCount      int `json:"confidentCount"`
	QuestionCount       int `json:"questionCount"`
	ToneConfidenceScore int `json:"toneConfidenceScore"`
}

// VisualMetrics struct - Supplied verbatim by the capture component.
type VisualMetrics struct {
	EyeContactScore   int              `json:"eyeContactScore"`
	Posture           Posture          `json:"posture"`
	FacialExpression  FacialExpression `json:"facialExpression"`
	OverallConfidence int              `json:"overallConfidence"`
	LookingAwayCount  int              `json:"lookingAwayCount"`
}

// DefaultVisualMetrics is what the pipeline assumes when nothing was captured.
func DefaultVisualMetrics() VisualMetrics {
	return VisualMetrics{
		EyeContactScore:   0,
		Posture:           PostureFair,
		FacialExpression:  ExpressionNeutral,
		OverallConfidence: 0,
		LookingAwayCount:  0,
	}
}

// NormalizeVisualMetrics clamps scores, replaces unknown enum values with
// defaults and returns defaults for nil input.
func NormalizeVisualMetrics(v *VisualMetrics) VisualMetrics {
	out := DefaultVisualMetrics()
	if v == nil {
		return out
	}
	out.EyeContactScore = ClampScore(v.EyeContactScore)
	out.OverallConfidence = ClampScore(v.OverallConfidence)
	if v.LookingAwayCount > 0 {
		out.LookingAwayCount = v.LookingAwayCount
	}
	switch v.Posture {
	case PostureGood, PostureFair, PostureNeedsImprovement:
		out.Posture = v.Posture
	}
	switch v.FacialExpression {
	case ExpressionConfident, ExpressionNeutral, ExpressionUncertain:
		out.FacialExpression = v.FacialExpression
	}
	return out
}

// Feedback struct - Template feedback lists.
type Feedback struct {
	Strengths    []string `json:"strengths"`
	Improvements []string `json:"improvements"`
}
