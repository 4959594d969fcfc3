package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/codeorbit/codeorbit-client/internal/requester"
)

// ListPrograms returns the programs the student is enrolled in.
func (s *Service) ListPrograms(ctx context.Context) ([]Program, error) {
	var out []Program
	if err := s.http.DoJSON(ctx, http.MethodGet, "/lms/programs", nil, &out,
		requester.WithLoaderMessage("Loading programs...")); err != nil {
		return nil, err
	}
	return out, nil
}

// GetProgram returns a program with its courses.
func (s *Service) GetProgram(ctx context.Context, id string) (*Program, error) {
	if err := requireID("program", id); err != nil {
		return nil, err
	}
	var out Program
	if err := s.http.DoJSON(ctx, http.MethodGet, pathf("/lms/programs/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetCourse returns a course with its modules, lessons and activities.
func (s *Service) GetCourse(ctx context.Context, id string) (*Course, error) {
	if err := requireID("course", id); err != nil {
		return nil, err
	}
	var out Course
	if err := s.http.DoJSON(ctx, http.MethodGet, pathf("/lms/courses/%s", id), nil, &out,
		requester.WithLoaderMessage("Loading course...")); err != nil {
		return nil, err
	}
	return &out, nil
}

// GetLesson returns a lesson with its activities.
func (s *Service) GetLesson(ctx context.Context, id string) (*Lesson, error) {
	if err := requireID("lesson", id); err != nil {
		return nil, err
	}
	var out Lesson
	if err := s.http.DoJSON(ctx, http.MethodGet, pathf("/lms/lessons/%s", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// CompleteActivity marks a non-quiz activity as done.
func (s *Service) CompleteActivity(ctx context.Context, activityID string) (*Progress, error) {
	if err := requireID("activity", activityID); err != nil {
		return nil, err
	}
	var out Progress
	if err := s.http.DoJSON(ctx, http.MethodPost, pathf("/lms/activities/%s/complete", activityID), nil, &out,
		requester.WithoutLoader()); err != nil {
		return nil, err
	}
	return &out, nil
}

// CourseProgress returns the student's progress through a course.
func (s *Service) CourseProgress(ctx context.Context, courseID string) (*Progress, error) {
	if err := requireID("course", courseID); err != nil {
		return nil, err
	}
	var out Progress
	if err := s.http.DoJSON(ctx, http.MethodGet, pathf("/lms/courses/%s/progress", courseID), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// SubmitQuiz submits answers for a quiz activity. Grading is done server-side.
func (s *Service) SubmitQuiz(ctx context.Context, activityID string, answers []QuizAnswer) (*QuizResult, error) {
	if err := requireID("activity", activityID); err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, fmt.Errorf("at least one answer required")
	}
	var out QuizResult
	if err := s.http.DoJSON(ctx, http.MethodPost, pathf("/lms/activities/%s/quiz", activityID),
		map[string]interface{}{"answers": answers}, &out,
		requester.WithLoaderMessage("Submitting quiz...")); err != nil {
		return nil, err
	}
	return &out, nil
}
