package main

import (
	"sort"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newLMSCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "learn",
		Aliases: []string{"lms"},
		Short:   "Follow programs and courses",
	}

	programs := &cobra.Command{
		Use:   "programs [program-id]",
		Short: "List programs, or show the courses of one",
		Args:  cobra.MaximumNArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			if len(args) == 0 {
				list, err := d.Service.ListPrograms(cmd.Context())
				if err != nil {
					return err
				}
				return render(programTable(list))
			}
			program, err := d.Service.GetProgram(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(program)
		}),
	}

	course := &cobra.Command{
		Use:   "course <course-id>",
		Short: "Show the outline of a course",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			c, err := d.Service.GetCourse(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if cfg.Output.Format == "table" {
				pterm.DefaultSection.Println(c.Title)
			}
			return render(courseOutline(*c))
		}),
	}

	lesson := &cobra.Command{
		Use:   "lesson <lesson-id>",
		Short: "Show a lesson",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			l, err := d.Service.GetLesson(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(l)
		}),
	}

	complete := &cobra.Command{
		Use:   "complete <activity-id>",
		Short: "Mark an activity as done",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			progress, err := d.Service.CompleteActivity(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(progressView(*progress))
		}),
	}

	progress := &cobra.Command{
		Use:   "progress <course-id>",
		Short: "Show your progress in a course",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			p, err := d.Service.CourseProgress(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return render(progressView(*p))
		}),
	}

	var answers map[string]int
	quiz := &cobra.Command{
		Use:   "quiz <activity-id> --answer <question-id>=<option> ...",
		Short: "Submit quiz answers",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			result, err := d.Service.SubmitQuiz(cmd.Context(), args[0], quizAnswers(answers))
			if err != nil {
				return err
			}
			if result.Passed {
				pterm.Success.Printfln("Passed: %d/%d", result.Score, result.Total)
			} else {
				pterm.Warning.Printfln("Not passed: %d/%d", result.Score, result.Total)
			}
			return nil
		}),
	}
	quiz.Flags().StringToIntVar(&answers, "answer", nil, "Answer as question-id=option-index, repeatable")

	cmd.AddCommand(programs, course, lesson, complete, progress, quiz)
	return cmd
}

// quizAnswers orders answers by question id so requests are stable.
func quizAnswers(answers map[string]int) []api.QuizAnswer {
	ids := make([]string, 0, len(answers))
	for id := range answers {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	out := make([]api.QuizAnswer, 0, len(ids))
	for _, id := range ids {
		out = append(out, api.QuizAnswer{QuestionID: id, Option: answers[id]})
	}
	return out
}
