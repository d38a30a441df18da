package prompts

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

func fullProfile() domain.Profile {
	return domain.Profile{
		FullName:          "Jane Doe",
		UniversityName:    "State University",
		Major:             "Computer Science",
		YearOfStudy:       "3rd Year",
		KeySkills:         "Go, Python",
		JobInterests:      "Backend Engineering",
		ResearchInterests: "Distributed Systems",
		DreamCompanies:    "Acme Corp",
	}
}

func TestScenarioCatalog(t *testing.T) {
	t.Parallel()

	scenarios := Scenarios()
	require.Len(t, scenarios, 4)

	ids := map[domain.ScenarioID]bool{}
	for _, s := range scenarios {
		ids[s.ID] = true
		assert.NotEmpty(t, s.Name)
		assert.NotEmpty(t, s.Description)
		assert.NotEmpty(t, s.AvatarEmoji)
	}
	assert.True(t, ids[domain.ScenarioRecruiterColdMessage])
	assert.True(t, ids[domain.ScenarioAlumniInfoInterview])
	assert.True(t, ids[domain.ScenarioEmployerColdEmail])
	assert.True(t, ids[domain.ScenarioResearcherInquiry])
}

func TestScenarioByID(t *testing.T) {
	t.Parallel()

	s, ok := ScenarioByID(domain.ScenarioRecruiterColdMessage)
	require.True(t, ok)
	assert.Equal(t, "Cold Message a Recruiter", s.Name)

	_, ok = ScenarioByID(domain.ScenarioID("nope"))
	assert.False(t, ok)
}

func TestRecruiterSystemInstructionInterpolatesProfile(t *testing.T) {
	t.Parallel()

	s, ok := ScenarioByID(domain.ScenarioRecruiterColdMessage)
	require.True(t, ok)

	instruction := s.SystemInstruction(fullProfile())
	assert.Contains(t, instruction, "Jane Doe from State University")
	assert.Contains(t, instruction, "studying Computer Science")
	assert.Contains(t, instruction, "Go, Python")
	assert.Contains(t, instruction, "Acme Corp")
	assert.NotContains(t, instruction, "[Your Name]")
}

func TestSystemInstructionUsesPlaceholderTokensForEmptyFields(t *testing.T) {
	t.Parallel()

	s, ok := ScenarioByID(domain.ScenarioAlumniInfoInterview)
	require.True(t, ok)

	instruction := s.SystemInstruction(domain.Profile{})
	assert.Contains(t, instruction, "[Your Name]")
	assert.Contains(t, instruction, "[Your University]")
}

func TestPlaceholderRendersHint(t *testing.T) {
	t.Parallel()

	s, ok := ScenarioByID(domain.ScenarioResearcherInquiry)
	require.True(t, ok)

	hint := s.Placeholder(fullProfile())
	assert.Contains(t, hint, "Jane Doe")
	assert.Contains(t, hint, "Distributed Systems")
}

func TestPickInterviewerNameIsDeterministicBySeed(t *testing.T) {
	t.Parallel()

	a := PickInterviewerName(rand.New(rand.NewSource(42)))
	b := PickInterviewerName(rand.New(rand.NewSource(42)))
	assert.Equal(t, a, b)

	known := map[string]bool{}
	for _, name := range interviewerFirstNames {
		known[name] = true
	}
	assert.True(t, known[a], "name %q not in pool", a)
}

func TestInterviewerSystemInstruction(t *testing.T) {
	t.Parallel()

	settings := domain.InterviewSettings{
		Role:            domain.RoleSoftwareEngineer,
		Company:         "Acme Corp",
		IsInternship:    true,
		InterviewerName: "Jordan",
	}
	instruction := InterviewerSystemInstruction(settings, fullProfile())

	assert.True(t, strings.HasPrefix(instruction, "You are Jordan, a professional and experienced interviewer"))
	assert.Contains(t, instruction, "internship")
	assert.Contains(t, instruction, "Software Engineer")
	assert.Contains(t, instruction, "Acme Corp")
	assert.Contains(t, instruction, "Jane Doe")
	assert.Contains(t, instruction, RoleExpectations(domain.RoleSoftwareEngineer))
}

func TestInterviewerSystemInstructionFullTimeAndDefaults(t *testing.T) {
	t.Parallel()

	settings := domain.InterviewSettings{
		Role:            domain.RoleDataAnalyst,
		Company:         "Initech",
		InterviewerName: "Casey",
	}
	instruction := InterviewerSystemInstruction(settings, domain.Profile{})

	assert.Contains(t, instruction, "full-time position")
	assert.Contains(t, instruction, "the candidate")
	assert.Contains(t, instruction, "student/recent graduate")
}

func TestRoleExpectationsFallback(t *testing.T) {
	t.Parallel()

	assert.Equal(t,
		"Discuss your relevant skills and experiences for this role.",
		RoleExpectations(domain.InterviewRole("Astronaut")),
	)
	for _, role := range domain.AllInterviewRoles {
		assert.NotEmpty(t, roleExpectations[role], "missing expectations for %s", role)
	}
}

func TestConversationReviewPrompt(t *testing.T) {
	t.Parallel()

	s, ok := ScenarioByID(domain.ScenarioRecruiterColdMessage)
	require.True(t, ok)

	history := []domain.Entry{
		{Sender: domain.SenderAssistant, Text: "How would you like to start?"},
		{Sender: domain.SenderUser, Text: "Hi, I'm Jane."},
	}
	prompt := ConversationReviewPrompt(history, s, fullProfile())

	assert.Contains(t, prompt, "Student: Hi, I'm Jane.")
	assert.Contains(t, prompt, "AI Persona: How would you like to start?")
	assert.Contains(t, prompt, "- Name: Jane Doe")
	assert.Contains(t, prompt, `"assessment"`)
	assert.Contains(t, prompt, `"tips"`)
	assert.Contains(t, prompt, `"rating"`)
	assert.Contains(t, prompt, "Return ONLY the JSON object.")
}

func TestInterviewReviewPromptFiltersSystemEntries(t *testing.T) {
	t.Parallel()

	settings := domain.InterviewSettings{
		Role:            domain.RoleProductManager,
		Company:         "Initech",
		InterviewerName: "Morgan",
	}
	transcript := []domain.Entry{
		{Sender: domain.SenderAssistant, Text: "Tell me about yourself."},
		{Sender: domain.SenderUser, Text: "I'm a PM student."},
		{Sender: domain.SenderSystem, Text: "Interview ended by user."},
	}
	prompt := InterviewReviewPrompt(transcript, settings, fullProfile())

	assert.Contains(t, prompt, "Interviewer: Tell me about yourself.")
	assert.Contains(t, prompt, "Candidate: I'm a PM student.")
	assert.NotContains(t, prompt, "Interview ended by user.")
	assert.Contains(t, prompt, "- AI Interviewer Name: Morgan")
	assert.Contains(t, prompt, "Product Manager (Full-time)")
	assert.Contains(t, prompt, `"overallAssessment"`)
	assert.Contains(t, prompt, `"finalRating"`)
}
