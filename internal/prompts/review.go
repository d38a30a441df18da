package prompts

import (
	"fmt"
	"strings"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

const personaSnippetLen = 300

// ConversationReviewPrompt renders the coaching prompt for a networking
// simulation. The whole chat history is inlined; the persona instruction
// is truncated to a snippet so the reviewer judges the student, not the
// persona.
func ConversationReviewPrompt(history []domain.Entry, scenario Scenario, profile domain.Profile) string {
	studentProfile := fmt.Sprintf(`
Student Profile:
- Name: %s
- University: %s
- Major: %s
- Year: %s
- Key Skills: %s
- Job Interests: %s
- Research Interests: %s
- Dream Companies: %s
`,
		orDefault(profile.FullName, "Not Provided"),
		orDefault(profile.UniversityName, "Not Provided"),
		orDefault(profile.Major, "Not Provided"),
		orDefault(profile.YearOfStudy, "Not Provided"),
		orDefault(profile.KeySkills, "Not Provided"),
		orDefault(profile.JobInterests, "Not Provided"),
		orDefault(profile.ResearchInterests, "Not Provided"),
		orDefault(profile.DreamCompanies, "Not Provided"),
	)

	persona := scenario.SystemInstruction(profile)
	if len(persona) > personaSnippetLen {
		persona = persona[:personaSnippetLen]
	}
	scenarioContext := fmt.Sprintf(`
Scenario Context:
- Scenario: %s
- Objective: %s
- AI Persona was instructed: "%s..." (snippet of AI persona)
`, scenario.Name, scenario.Description, persona)

	var lines []string
	for _, entry := range history {
		speaker := "AI Persona"
		if entry.Sender == domain.SenderUser {
			speaker = "Student"
		}
		lines = append(lines, speaker+": "+entry.Text)
	}

	return fmt.Sprintf(`You are an expert career coach and communication analyst. Your task is to review the following networking conversation simulation.
The student was interacting with an AI persona in a specific scenario.

%s
%s

Conversation History:
%s

Based on all the above information, please provide a constructive review of the student's performance.
Your response MUST be a single, valid JSON object, without any markdown formatting or explanations before or after it.
The JSON object should conform to the following structure:
{
  "assessment": "string (Overall assessment of the student's performance, considering their profile, the scenario, and their communication. Be specific about strengths and weaknesses. For example, did they build rapport, were they clear, professional, did they achieve the scenario's objective, how did they handle AI responses?)",
  "tips": ["string (Provide 3-5 specific, actionable tips for improvement. Focus on what the student could do differently next time. e.g., 'Tip 1: ...', 'Tip 2: ...')"],
  "rating": "number (An overall rating of the student's performance in this specific scenario on a scale of 1 to 10, where 1 is very poor and 10 is excellent.)"
}

Analyze the student's messages for clarity, conciseness, professionalism, tone, and effectiveness in achieving the scenario's objective (e.g., securing an interview, gaining information, making a good impression).
Consider how well they introduced themselves, articulated their purpose, asked questions (if applicable), and responded to the AI persona.
If the student made any faux pas (e.g., being too demanding, not doing research, poor etiquette), point them out constructively.
If the AI persona was designed to be challenging (e.g., a busy recruiter, a skeptical alumni), assess how well the student navigated that.
Ensure your feedback is tailored and directly references aspects of the conversation and scenario.

Return ONLY the JSON object.`, studentProfile, scenarioContext, strings.Join(lines, "\n"))
}

// InterviewReviewPrompt renders the coaching prompt for a finished mock
// interview. System entries are dropped from the inlined transcript.
func InterviewReviewPrompt(transcript []domain.Entry, settings domain.InterviewSettings, profile domain.Profile) string {
	studentProfile := fmt.Sprintf(`
Candidate Profile:
- Name: %s
- University: %s
- Major: %s
- Year: %s
- Key Skills: %s
`,
		orDefault(profile.FullName, "Not Provided"),
		orDefault(profile.UniversityName, "Not Provided"),
		orDefault(profile.Major, "Not Provided"),
		orDefault(profile.YearOfStudy, "Not Provided"),
		orDefault(profile.KeySkills, "Not Provided"),
	)

	interviewerContext := ""
	if settings.InterviewerName != "" {
		interviewerContext = "\n- AI Interviewer Name: " + settings.InterviewerName
	}
	positionType := "Full-time"
	if settings.IsInternship {
		positionType = "Internship"
	}
	interviewContext := fmt.Sprintf(`
Interview Context:
- Role: %s (%s)
- Company: %s%s
- AI Interviewer was instructed to assess based on: %s
`, settings.Role, positionType, settings.Company, interviewerContext, RoleExpectations(settings.Role))

	var lines []string
	for _, entry := range transcript {
		switch entry.Sender {
		case domain.SenderUser:
			lines = append(lines, "Candidate: "+entry.Text)
		case domain.SenderAssistant:
			lines = append(lines, "Interviewer: "+entry.Text)
		}
	}

	return fmt.Sprintf(`You are an expert career coach and interview analyst. Your task is to review the following mock interview transcript.
The candidate was interacting with an AI interviewer.

%s
%s

Interview Transcript:
%s

Based on all the above information, please provide a constructive and detailed review of the candidate's performance.
Your response MUST be a single, valid JSON object, without any markdown formatting or explanations before or after it.
The JSON object should conform to the following structure:
{
  "overallAssessment": "string (Overall assessment of the candidate's performance. Did they communicate clearly? Were their answers relevant? Did they showcase their skills effectively for the %[4]s role at %[5]s? How was their professionalism and preparedness?)",
  "strengths": ["string (Identify 2-3 key strengths demonstrated by the candidate during the interview. e.g., 'Clear articulation of project experience related to [skill].', 'Good use of the STAR method for behavioral questions.')"],
  "areasForImprovement": ["string (Identify 2-3 specific areas where the candidate could improve their interviewing skills. e.g., 'Could provide more specific metrics when discussing achievements.', 'Responses to situational questions could be more structured.')"],
  "suggestedFocus": ["string (Suggest 1-2 general areas the candidate might need to work on, possibly related to experience or skills for the target role, if apparent from the interview. e.g., 'Consider gaining more hands-on experience with [specific technology/tool relevant to %[4]s].', 'Practice articulating career goals more clearly.')"],
  "finalRating": "number (An overall rating of the candidate's performance in this interview on a scale of 1 to 10, where 1 is very poor and 10 is excellent.)"
}

Analyze the candidate's responses for clarity, conciseness, relevance to the questions and the target role, professionalism, and enthusiasm.
Consider if they effectively used examples (STAR method), handled challenging questions, and asked insightful questions (if applicable).
If any unprofessional behavior was noted (even if the AI interviewer didn't explicitly call it out), mention it constructively in the assessment.
Ensure your feedback is tailored and directly references aspects of the conversation and interview context.

Return ONLY the JSON object.`, studentProfile, interviewContext, strings.Join(lines, "\n"), settings.Role, settings.Company)
}
