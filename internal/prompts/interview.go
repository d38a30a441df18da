package prompts

import (
	"fmt"
	"math/rand"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// interviewerFirstNames is the pool a fresh interview draws a persona
// name from when the user does not supply one.
var interviewerFirstNames = []string{
	"Alex", "Jordan", "Casey", "Morgan", "Taylor", "Jamie",
	"Riley", "Cameron", "Drew", "Skyler", "Devon", "Blake",
}

// PickInterviewerName draws a random first name for the interviewer
// persona. The rng is injected so callers can seed it, tests included.
func PickInterviewerName(rng *rand.Rand) string {
	return interviewerFirstNames[rng.Intn(len(interviewerFirstNames))]
}

var roleExpectations = map[domain.InterviewRole]string{
	domain.RoleSoftwareEngineer:     "Discuss your programming projects, technical skills (data structures, algorithms, specific languages/frameworks), problem-solving abilities, and experience with software development lifecycles. Be prepared for behavioral questions about teamwork and technical challenges.",
	domain.RoleDataAnalyst:          "Highlight your experience with data collection, cleaning, analysis, and visualization. Mention specific tools (e.g., SQL, Python, R, Tableau, PowerBI) and statistical methods. Be ready to discuss how you derive insights from data and communicate them.",
	domain.RoleProductManager:       "Focus on your understanding of product lifecycle, market research, user stories, A/B testing, and working with cross-functional teams (engineering, design, marketing). Showcase your leadership, communication, and strategic thinking skills. Discuss past products you've managed or contributed to.",
	domain.RoleUIUXDesigner:         "Talk about your design process, user research, wireframing, prototyping, and usability testing. Be prepared to discuss your portfolio, design tools (e.g., Figma, Sketch, Adobe XD), and your design philosophy. Explain how you advocate for the user.",
	domain.RoleAIMLEngineer:         "Describe your experience with machine learning algorithms, data modeling, deep learning frameworks (e.g., TensorFlow, PyTorch), and deploying AI solutions. Discuss projects involving natural language processing, computer vision, or other AI domains.",
	domain.RoleHRSpecialist:         "Emphasize your knowledge of HR functions like recruitment, employee relations, performance management, and HR policies. Discuss your communication, interpersonal, and problem-solving skills in an HR context. Be prepared for situational questions.",
	domain.RoleMarketingCoordinator: "Showcase your experience with marketing campaigns, social media management, content creation, SEO/SEM, and market analysis tools. Discuss how you measure campaign success and adapt strategies.",
	domain.RoleFinancialAnalyst:     "Detail your skills in financial modeling, valuation, forecasting, and reporting. Mention proficiency in Excel and other financial software. Be ready to discuss market trends and investment strategies.",
	domain.RoleManagementConsultant: "Focus on your problem-solving, analytical, and communication skills. Discuss case studies or projects where you've identified issues and proposed solutions. Emphasize your ability to work with clients and manage projects.",
	domain.RoleBusinessAnalyst:      "Highlight your ability to bridge the gap between business needs and technical solutions. Discuss requirements gathering, process modeling, data analysis, and stakeholder management. Mention tools like JIRA, Confluence, or Visio.",
}

// RoleExpectations returns the assessment criteria baked into the
// interviewer persona for the given role.
func RoleExpectations(role domain.InterviewRole) string {
	if s, ok := roleExpectations[role]; ok {
		return s
	}
	return "Discuss your relevant skills and experiences for this role."
}

// InterviewerSystemInstruction renders the voice-interviewer persona for
// a configured interview and candidate profile.
func InterviewerSystemInstruction(settings domain.InterviewSettings, profile domain.Profile) string {
	roleSpecifics := RoleExpectations(settings.Role)
	positionType := "full-time position"
	if settings.IsInternship {
		positionType = "internship"
	}
	interviewerName := settings.InterviewerName
	if interviewerName == "" {
		interviewerName = "your assigned interviewer name"
	}
	candidateName := orDefault(profile.FullName, "the candidate")

	return fmt.Sprintf(`You are %[1]s, a professional and experienced interviewer conducting an interview for a %[2]s as a %[3]s at %[4]s.
The candidate's name is %[5]s, they are a %[6]s from %[7]s, majoring in %[8]s. Their listed key skills are: %[9]s.

Your goal is to assess the candidate's suitability for the role and company culture. Be polite, professional, and engaging.
- Start by introducing yourself as %[1]s from %[4]s and briefly mention the role.
- Ask a mix of behavioral, technical (if applicable to the role), and situational questions.
- Probe for specific examples using the STAR method (Situation, Task, Action, Result) when appropriate.
- Focus on skills relevant to a %[3]s. %[10]s
- If the candidate is unprofessional (e.g., rude, unprepared, overly casual for an interview setting, gives non-answers), make a mental note and adjust your questioning or conclude the interview if behavior is egregious, but maintain your professional demeanor in responses. Do not explicitly call out the unprofessionalism unless it's a direct question about their conduct.
- Listen actively to the candidate's responses and ask relevant follow-up questions.
- Towards the end, provide an opportunity for the candidate to ask questions.
- Conclude the interview professionally, outlining next steps if you were a real interviewer (though you are an AI, simulate this).
- Do not provide feedback during the interview itself; that will be handled in a separate review phase.
- Conduct the interview as if it were a real voice call. Keep responses relatively concise and conversational.
- The interview should last a reasonable duration, typically 3-5 exchanges from you and the candidate before naturally concluding, or if the candidate seems to have exhausted their points or you've covered key areas. You can signal the end by saying something like, "Alright, %[11]s, that covers my main questions. Do you have any questions for me as %[1]s?"

Remember, you are looking for talent and want the candidate to effectively sell themselves and demonstrate they are a good fit.
Begin the interview now. Start by introducing yourself as %[1]s, mention the role, and then ask your first question.
`,
		interviewerName,
		positionType,
		settings.Role,
		settings.Company,
		candidateName,
		orDefault(profile.YearOfStudy, "student/recent graduate"),
		orDefault(profile.UniversityName, "their university"),
		orDefault(profile.Major, "their field"),
		orDefault(profile.KeySkills, "not specified"),
		roleSpecifics,
		orDefault(profile.FullName, "Candidate"),
	)
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
