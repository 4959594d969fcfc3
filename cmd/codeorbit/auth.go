package main

import (
	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newLoginCommand() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			if err := promptIfEmpty(&email, "Email", false); err != nil {
				return err
			}
			if err := promptIfEmpty(&password, "Password", true); err != nil {
				return err
			}
			sess, err := d.Service.Login(cmd.Context(), email, password)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Signed in as %s (%s)", sess.User.Email, sess.User.Role)
			return nil
		}),
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email")
	cmd.Flags().StringVar(&password, "password", "", "Account password (prompted when omitted)")
	return cmd
}

func newRegisterCommand() *cobra.Command {
	var reg api.Registration

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a student account",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			if err := promptIfEmpty(&reg.Password, "Password", true); err != nil {
				return err
			}
			sess, err := d.Service.Register(cmd.Context(), reg)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Welcome, %s", sess.User.Name)
			return nil
		}),
	}

	cmd.Flags().StringVar(&reg.Name, "name", "", "Full name")
	cmd.Flags().StringVar(&reg.Email, "email", "", "Email")
	cmd.Flags().StringVar(&reg.Password, "password", "", "Password (prompted when omitted)")
	cmd.Flags().StringVar(&reg.Phone, "phone", "", "Phone number")
	cmd.Flags().StringVar(&reg.College, "college", "", "College")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("email")
	return cmd
}

func newLogoutCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: run(func(_ *cobra.Command, _ []string, d *deps) error {
			if err := d.Service.Logout(); err != nil {
				return err
			}
			pterm.Success.Println("Signed out")
			return nil
		}),
	}
}

func newMeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "me",
		Short: "Show the signed in account",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			user, err := d.Service.Me(cmd.Context())
			if err != nil {
				return err
			}
			return render(user)
		}),
	}
}
