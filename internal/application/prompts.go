package application

import (
	"fmt"
	"strings"

	"mock-interview/internal/domain"
)

const interviewerSystemPrompt = "You are an experienced technical recruiter and interviewer running a realistic mock interview. Be concise and professional."

const evaluatorSystemPrompt = "You are a strict but fair interview evaluator. Always answer with a single JSON object and nothing else."

func questionPrompt(request domain.QuestionRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Generate one %s interview question for a %s candidate applying for the role of %s.\n",
		request.InterviewType, request.Difficulty, request.JobRole)

	switch request.InterviewType {
	case domain.InterviewTypeBehavioral:
		b.WriteString("Ask about a concrete past situation the candidate can answer with the STAR method.\n")
	case domain.InterviewTypeHR:
		b.WriteString("Focus on motivation, culture fit, expectations or career goals.\n")
	case domain.InterviewTypeSystemDesign:
		b.WriteString("Ask the candidate to design a system, and mention the scale it must handle.\n")
	case domain.InterviewTypeCoding:
		b.WriteString("Ask for a small self-contained function with clear inputs and outputs.\n")
	case domain.InterviewTypeMixed:
		b.WriteString("Pick either a technical or a behavioral angle.\n")
	}

	if p := request.UserProfile; p != nil {
		if p.ExperienceYears > 0 {
			fmt.Fprintf(&b, "The candidate has %d years of experience.\n", p.ExperienceYears)
		}
		if p.CurrentRole != "" {
			fmt.Fprintf(&b, "Current role: %s.\n", p.CurrentRole)
		}
		if len(p.Skills) > 0 {
			fmt.Fprintf(&b, "Known skills: %s.\n", strings.Join(p.Skills, ", "))
		}
	}

	if len(request.PreviousQuestions) > 0 {
		b.WriteString("Do not repeat or rephrase any of these already asked questions:\n")
		for _, q := range request.PreviousQuestions {
			fmt.Fprintf(&b, "- %s\n", q)
		}
	}
	b.WriteString("Reply with the question text only.")
	return b.String()
}

func followUpPrompt(request domain.FollowUpRequest) string {
	return fmt.Sprintf(
		"This is a %s interview at %s level.\nOriginal question: %s\nCandidate answer: %s\n"+
			"Ask one short follow-up question that digs deeper into the answer or probes a gap in it. Reply with the question text only.",
		request.InterviewType, request.Difficulty, request.OriginalQuestion, request.UserAnswer)
}

func evaluationPrompt(request domain.EvaluateRequest) string {
	return fmt.Sprintf(
		"Evaluate this answer from a %s interview for the role of %s at %s level.\n"+
			"Question: %s\nAnswer: %s\n\n"+
			"Return JSON with exactly these fields:\n"+
			`{"score": 0-100, "feedback": "two or three sentences", "strengths": ["..."], "improvements": ["..."], `+
			`"detailedAnalysis": {"relevance": 0-100, "completeness": 0-100, "correctness": 0-100, "technicalAccuracy": 0-100}}`,
		request.InterviewType, request.JobRole, request.Difficulty, request.Question, request.Answer)
}

func overallFeedbackPrompt(request domain.OverallFeedbackRequest) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Summarise a %s mock interview for the role of %s. The average score was %d/100.\n",
		request.InterviewType, request.JobRole, request.AverageScore)
	for i, r := range request.Records {
		fmt.Fprintf(&b, "Q%d (%d/100): %s\nAnswer: %s\n", i+1, r.Evaluation.CombinedScore, r.Question, r.Answer)
	}
	b.WriteString("\nReturn JSON with exactly these fields:\n")
	b.WriteString(`{"strengths": ["..."], "weaknesses": ["..."], "recommendations": ["..."], "summary": "one paragraph"}`)
	return b.String()
}

// cleanQuestion strips the decoration models like to add around a bare question.
func cleanQuestion(text string) string {
	text = stripCodeFence(text)
	text = strings.TrimSpace(text)
	for _, prefix := range []string{"Question:", "Follow-up question:", "Follow-up:", "Q:"} {
		if len(text) >= len(prefix) && strings.EqualFold(text[:len(prefix)], prefix) {
			text = strings.TrimSpace(text[len(prefix):])
		}
	}
	text = strings.Trim(text, "\"'“”")
	return strings.TrimSpace(text)
}

func stripCodeFence(content string) string {
	content = strings.TrimSpace(content)
	if strings.HasPrefix(content, "```") {
		content = strings.TrimPrefix(content, "```json")
		content = strings.TrimPrefix(content, "```")
		content = strings.TrimSuffix(content, "```")
	}
	return strings.TrimSpace(content)
}

// extractJSONObject returns the outermost {...} span of a model reply.
func extractJSONObject(content string) string {
	content = stripCodeFence(content)
	start := strings.Index(content, "{")
	end := strings.LastIndex(content, "}")
	if start < 0 || end < start {
		return content
	}
	return content[start : end+1]
}
