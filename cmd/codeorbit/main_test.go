package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/config"
	"github.com/codeorbit/codeorbit-client/internal/payment"
	"github.com/codeorbit/codeorbit-client/internal/session"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewDeps_ResolvesGraph(t *testing.T) {
	cfg = &config.Config{
		API:     config.APIConfig{BaseURL: "http://127.0.0.1:1"},
		Session: config.SessionConfig{Path: filepath.Join(t.TempDir(), "session.json")},
		Output:  config.OutputConfig{Format: "json", Quiet: true},
	}
	t.Cleanup(func() { cfg = nil })

	d, err := newDeps()
	require.NoError(t, err)
	assert.NotNil(t, d.Service)
	require.NotNil(t, d.Flow)
	assert.Equal(t, payment.StateIdle, d.Flow.State())

	_, err = d.Session.Token()
	assert.ErrorIs(t, err, session.ErrNoSession)
}

func TestQuizAnswers_SortedByQuestion(t *testing.T) {
	got := quizAnswers(map[string]int{"q2": 1, "q10": 0, "q1": 3})
	assert.Equal(t, []api.QuizAnswer{
		{QuestionID: "q1", Option: 3},
		{QuestionID: "q10", Option: 0},
		{QuestionID: "q2", Option: 1},
	}, got)
	assert.Empty(t, quizAnswers(nil))
}

func TestTables(t *testing.T) {
	expires := time.Date(2026, 1, 31, 12, 0, 0, 0, time.UTC)

	coupons := couponTable{{ID: "c1", Code: "SAVE10", DiscountPercent: 10, UsedCount: 3, MaxUses: 50, Active: true, ExpiresAt: &expires}}.Table()
	require.Len(t, coupons.Rows, 1)
	assert.Equal(t, "10%", coupons.Rows[0][2])
	assert.Equal(t, "3/50", coupons.Rows[0][3])

	apps := applicationTable{{ID: "a1", InternshipID: "i9", Status: api.StatusApproved}}.Table()
	assert.Equal(t, "i9", apps.Rows[0][3], "falls back to the internship id")
	assert.Equal(t, "-", apps.Rows[0][6])

	outline := courseOutline(api.Course{Modules: []api.CourseModule{{
		Title: "Basics",
		Lessons: []api.Lesson{{
			Title:      "Intro",
			Activities: []api.Activity{{ID: "a1", Title: "Watch", Type: api.ActivityVideo}, {ID: "a2", Title: "Quiz", Type: api.ActivityQuiz, Completed: true}},
		}},
	}}}).Table()
	require.Len(t, outline.Rows, 2)
	assert.Equal(t, []string{"Basics", "Intro", "a2 Quiz", "quiz", "true"}, outline.Rows[1])

	progress := progressView(api.Progress{CourseID: "c1", CompletedActivities: []string{"a1"}, TotalActivities: 3, Percent: 33.3}).Table()
	assert.Equal(t, []string{"c1", "1", "3", "33%"}, progress.Rows[0])
}
