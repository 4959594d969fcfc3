package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/payment"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newApplyCommand() *cobra.Command {
	var app api.Application

	cmd := &cobra.Command{
		Use:   "apply <internship-id>",
		Short: "Apply for an internship",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			app.InternshipID = args[0]
			created, err := d.Service.SubmitApplication(cmd.Context(), app)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Application %s submitted. Pay with `codeorbit pay %s`.", created.ID, created.ID)
			return nil
		}),
	}

	cmd.Flags().StringVar(&app.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&app.Email, "email", "", "Email")
	cmd.Flags().StringVar(&app.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&app.College, "college", "", "College")
	cmd.Flags().StringVar(&app.Year, "year", "", "Year of study")
	cmd.Flags().StringVar(&app.ResumeURL, "resume", "", "Link to your resume")
	cmd.Flags().StringVar(&app.CouponCode, "coupon", "", "Coupon code")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newApplicationsCommand() *cobra.Command {
	var search string
	var page, size int

	cmd := &cobra.Command{
		Use:   "applications",
		Short: "List your applications",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			apps, err := d.Service.MyApplications(cmd.Context())
			if err != nil {
				return err
			}
			matched := api.FilterApplications(apps, search)
			return render(applicationTable(api.Paginate(matched, page, size)))
		}),
	}

	cmd.Flags().StringVar(&search, "search", "", "Only show applications matching this text")
	cmd.Flags().IntVar(&page, "page", 1, "Page number")
	cmd.Flags().IntVar(&size, "size", 0, "Applications per page (0 shows all)")
	return cmd
}

func newCouponCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "coupon <code> <internship-id>",
		Short: "Check the price of an internship with a coupon",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			quote, err := d.Service.ApplyCoupon(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return render(quote)
		}),
	}
}

func newDashboardCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show your applications and tasks",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			dash, err := d.Service.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			if cfg.Output.Format != "table" {
				return render(dash)
			}
			pterm.DefaultSection.Printfln("Applications for %s", dash.User.Name)
			if err := render(applicationTable(dash.Applications)); err != nil {
				return err
			}
			pterm.DefaultSection.Println("Tasks")
			return render(taskTable(dash.Tasks))
		}),
	}
}

func newTaskCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "task",
		Short: "Work on internship tasks",
	}

	var sub api.TaskSubmission
	submit := &cobra.Command{
		Use:   "submit <application-id> <task-id>",
		Short: "Submit a task",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			sub.TaskID = args[1]
			if err := d.Service.SubmitTask(cmd.Context(), args[0], sub); err != nil {
				return err
			}
			pterm.Success.Println("Task submitted")
			return nil
		}),
	}
	submit.Flags().StringVar(&sub.Link, "link", "", "Link to your work")
	submit.Flags().StringVar(&sub.Notes, "notes", "", "Notes for the reviewer")
	_ = submit.MarkFlagRequired("link")

	cmd.AddCommand(submit)
	return cmd
}

func newDocumentCommand() *cobra.Command {
	var out string

	cmd := &cobra.Command{
		Use:   "document <application-id> <offer-letter|certificate|completion-letter>",
		Short: "Download a document for an application",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			kind := api.DocumentKind(args[1])
			data, _, err := d.Service.DownloadDocument(cmd.Context(), args[0], kind)
			if err != nil {
				return err
			}
			if out == "" {
				out = fmt.Sprintf("%s-%s.pdf", kind, args[0])
			}
			if err := os.WriteFile(out, data, 0o644); err != nil {
				return fmt.Errorf("write document: %w", err)
			}
			abs, _ := filepath.Abs(out)
			pterm.Success.Printfln("Saved %s", abs)
			return nil
		}),
	}

	cmd.Flags().StringVar(&out, "out", "", "Output file (default <kind>-<application-id>.pdf)")
	return cmd
}

func newPayCommand() *cobra.Command {
	var coupon string

	cmd := &cobra.Command{
		Use:   "pay <application-id>",
		Short: "Pay the fee for an application through Razorpay",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			d.Flow.OnTransition = func(tr payment.Transition) {
				pterm.Debug.Printfln("payment: %s -> %s", tr.From, tr.To)
			}
			receipt, err := d.Flow.Run(cmd.Context(), args[0], coupon)
			switch {
			case d.Flow.State() == payment.StateCancelled:
				pterm.Warning.Println("Payment cancelled. Nothing was charged.")
				return nil
			case err != nil:
				return err
			}
			pterm.Success.Printfln("Payment %s confirmed", receipt.PaymentID)
			return render(receipt)
		}),
	}

	cmd.Flags().StringVar(&coupon, "coupon", "", "Coupon code")
	return cmd
}
