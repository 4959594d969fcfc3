package main

import (
	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newInternshipsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "internships",
		Aliases: []string{"internship"},
		Short:   "Browse published internships",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List internships",
			Args:  cobra.NoArgs,
			RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
				list, err := d.Service.ListInternships(cmd.Context())
				if err != nil {
					return err
				}
				return render(internshipTable(list))
			}),
		},
		&cobra.Command{
			Use:   "get <id>",
			Short: "Show one internship",
			Args:  cobra.ExactArgs(1),
			RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
				internship, err := d.Service.GetInternship(cmd.Context(), args[0])
				if err != nil {
					return err
				}
				return render(internship)
			}),
		},
	)
	return cmd
}

func newContactCommand() *cobra.Command {
	var msg api.ContactMessage

	cmd := &cobra.Command{
		Use:   "contact",
		Short: "Send a message to the CodeOrbit team",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			if err := d.Service.SendContact(cmd.Context(), msg); err != nil {
				return err
			}
			pterm.Success.Println("Message sent. We will get back to you soon.")
			return nil
		}),
	}

	cmd.Flags().StringVar(&msg.Name, "name", "", "Your name")
	cmd.Flags().StringVar(&msg.Email, "email", "", "Reply address")
	cmd.Flags().StringVar(&msg.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&msg.Subject, "subject", "", "Subject")
	cmd.Flags().StringVarP(&msg.Message, "message", "m", "", "Message text")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("message")
	return cmd
}
