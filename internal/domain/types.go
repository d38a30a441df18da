package domain

import "time"

// Sender identifies who produced a transcript entry.
type Sender string

const (
	SenderUser      Sender = "user"
	SenderAssistant Sender = "assistant"
	SenderReviewer  Sender = "reviewer"
	SenderSystem    Sender = "system"
)

// Entry is one dated line of a simulation or interview transcript.
// Entries are append-only; only the most recently appended assistant or
// reviewer entry may still be mutated while its content is streaming.
type Entry struct {
	ID        string      `json:"id"`
	Text      string      `json:"text"`
	Sender    Sender      `json:"sender"`
	Timestamp time.Time   `json:"timestamp"`
	IsLoading bool        `json:"isLoading,omitempty"`
	IsError   bool        `json:"isError,omitempty"`
	Review    *ReviewData `json:"review,omitempty"`
}

// ReviewData is the structured feedback for a networking simulation.
type ReviewData struct {
	Assessment string   `json:"assessment"`
	Tips       []string `json:"tips"`
	Rating     float64  `json:"rating"`
}

// InterviewReviewData is the structured feedback for a mock interview.
type InterviewReviewData struct {
	OverallAssessment   string   `json:"overallAssessment"`
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	SuggestedFocus      []string `json:"suggestedFocus"`
	FinalRating         float64  `json:"finalRating"`
}

// Profile holds the user's free-text background fields. All fields are
// optional; prompt building substitutes placeholders for empty ones.
type Profile struct {
	FullName          string `json:"fullName"`
	UniversityName    string `json:"universityName"`
	Major             string `json:"major"`
	YearOfStudy       string `json:"yearOfStudy"`
	KeySkills         string `json:"keySkills"`
	JobInterests      string `json:"jobInterests"`
	ResearchInterests string `json:"researchInterests"`
	DreamCompanies    string `json:"dreamCompanies"`
}

// ScenarioID names one of the fixed networking scenarios.
type ScenarioID string

const (
	ScenarioRecruiterColdMessage ScenarioID = "recruiter_cold_message"
	ScenarioAlumniInfoInterview  ScenarioID = "alumni_info_interview"
	ScenarioEmployerColdEmail    ScenarioID = "employer_cold_email"
	ScenarioResearcherInquiry    ScenarioID = "researcher_inquiry"
)

// InterviewRole is one of the fixed roles a mock interview can target.
type InterviewRole string

const (
	RoleSoftwareEngineer     InterviewRole = "Software Engineer"
	RoleDataAnalyst          InterviewRole = "Data Analyst"
	RoleProductManager       InterviewRole = "Product Manager"
	RoleUIUXDesigner         InterviewRole = "UI/UX Designer"
	RoleAIMLEngineer         InterviewRole = "AI/ML Engineer"
	RoleHRSpecialist         InterviewRole = "HR Specialist"
	RoleMarketingCoordinator InterviewRole = "Marketing Coordinator"
	RoleFinancialAnalyst     InterviewRole = "Financial Analyst"
	RoleManagementConsultant InterviewRole = "Management Consultant"
	RoleBusinessAnalyst      InterviewRole = "Business Analyst"
)

// AllInterviewRoles lists every selectable role in display order.
var AllInterviewRoles = []InterviewRole{
	RoleSoftwareEngineer,
	RoleDataAnalyst,
	RoleProductManager,
	RoleUIUXDesigner,
	RoleAIMLEngineer,
	RoleHRSpecialist,
	RoleMarketingCoordinator,
	RoleFinancialAnalyst,
	RoleManagementConsultant,
	RoleBusinessAnalyst,
}

// InterviewSettings configures one mock interview. InterviewerName is
// assigned once at session start and immutable afterwards.
type InterviewSettings struct {
	Role            InterviewRole `json:"role"`
	Company         string        `json:"company"`
	IsInternship    bool          `json:"isInternship"`
	InterviewerName string        `json:"interviewerName,omitempty"`
}

// InterviewerDisplayName prefers the assigned interviewer name and falls
// back to the company name.
func (s InterviewSettings) InterviewerDisplayName() string {
	if s.InterviewerName != "" {
		return s.InterviewerName
	}
	return s.Company
}

// AppMode is the active top-level screen.
type AppMode string

const (
	ModeHome               AppMode = "home"
	ModeScenarioList       AppMode = "scenario_list"
	ModeNetworkingChat     AppMode = "networking_chat"
	ModeNetworkingSettings AppMode = "networking_settings"
	ModeInterviewSetup     AppMode = "interview_setup"
	ModeInterviewCall      AppMode = "interview_call"
	ModeInterviewReview    AppMode = "interview_review"
	ModeSettings           AppMode = "settings"
)

// VoiceState is the derived state of the voice-interview turn machine.
type VoiceState string

const (
	VoiceIdle      VoiceState = "idle"
	VoiceListening VoiceState = "listening"
	VoiceThinking  VoiceState = "thinking"
	VoiceSpeaking  VoiceState = "speaking"
)
