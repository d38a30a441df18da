// Package review parses the structured JSON feedback returned by the
// chat backend into domain review values.
package review

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/timi-adekoya/ColdPitch/internal/domain"
)

// Models occasionally wrap JSON output in a markdown code fence even
// when told not to.
var fenceRe = regexp.MustCompile("(?s)^```(\\w*)?\\s*\n?(.*?)\n?\\s*```$")

// StripFence removes a surrounding markdown code fence, if any, and
// trims whitespace.
func StripFence(raw string) string {
	s := strings.TrimSpace(raw)
	if m := fenceRe.FindStringSubmatch(s); m != nil {
		s = strings.TrimSpace(m[2])
	}
	return s
}

type conversationWire struct {
	Assessment *string      `json:"assessment"`
	Tips       []string     `json:"tips"`
	Rating     *json.Number `json:"rating"`
}

type interviewWire struct {
	OverallAssessment   *string      `json:"overallAssessment"`
	Strengths           []string     `json:"strengths"`
	AreasForImprovement []string     `json:"areasForImprovement"`
	SuggestedFocus      []string     `json:"suggestedFocus"`
	FinalRating         *json.Number `json:"finalRating"`
}

// ParseConversation decodes a networking review payload. The fence, if
// present, is stripped first. Missing or mistyped required fields yield
// a ValidationError.
func ParseConversation(raw string) (domain.ReviewData, error) {
	var wire conversationWire
	if err := json.Unmarshal([]byte(StripFence(raw)), &wire); err != nil {
		return domain.ReviewData{}, &domain.ValidationError{Reason: fmt.Sprintf("review is not valid JSON: %v", err)}
	}
	if wire.Assessment == nil {
		return domain.ReviewData{}, &domain.ValidationError{Reason: "review is missing assessment"}
	}
	if wire.Tips == nil {
		return domain.ReviewData{}, &domain.ValidationError{Reason: "review is missing tips"}
	}
	if wire.Rating == nil {
		return domain.ReviewData{}, &domain.ValidationError{Reason: "review is missing rating"}
	}
	rating, err := wire.Rating.Float64()
	if err != nil {
		return domain.ReviewData{}, &domain.ValidationError{Reason: fmt.Sprintf("review rating is not a number: %v", err)}
	}
	return domain.ReviewData{
		Assessment: *wire.Assessment,
		Tips:       wire.Tips,
		Rating:     rating,
	}, nil
}

// ParseInterview decodes a mock-interview review payload.
func ParseInterview(raw string) (domain.InterviewReviewData, error) {
	var wire interviewWire
	if err := json.Unmarshal([]byte(StripFence(raw)), &wire); err != nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: fmt.Sprintf("review is not valid JSON: %v", err)}
	}
	if wire.OverallAssessment == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "review is missing overallAssessment"}
	}
	if wire.Strengths == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "review is missing strengths"}
	}
	if wire.AreasForImprovement == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "review is missing areasForImprovement"}
	}
	if wire.SuggestedFocus == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "review is missing suggestedFocus"}
	}
	if wire.FinalRating == nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: "review is missing finalRating"}
	}
	rating, err := wire.FinalRating.Float64()
	if err != nil {
		return domain.InterviewReviewData{}, &domain.ValidationError{Reason: fmt.Sprintf("review finalRating is not a number: %v", err)}
	}
	return domain.InterviewReviewData{
		OverallAssessment:   *wire.OverallAssessment,
		Strengths:           wire.Strengths,
		AreasForImprovement: wire.AreasForImprovement,
		SuggestedFocus:      wire.SuggestedFocus,
		FinalRating:         rating,
	}, nil
}
