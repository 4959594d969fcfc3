package main

import (
	"time"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
)

func newAdminCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Administer applications, coupons, users and messages",
	}
	cmd.AddCommand(
		newAdminApplicationsCommand(),
		newAdminCouponsCommand(),
		newAdminUsersCommand(),
		newAdminMessagesCommand(),
		newAdminAuditCommand(),
	)
	return cmd
}

func newAdminApplicationsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "applications",
		Short: "Review applications",
	}

	var filter api.ApplicationFilter
	var status string
	list := &cobra.Command{
		Use:   "list",
		Short: "List applications",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			filter.Status = api.ApplicationStatus(status)
			page, err := d.Service.ListApplications(cmd.Context(), filter)
			if err != nil {
				return err
			}
			if err := render(applicationTable(page.Items)); err != nil {
				return err
			}
			if cfg.Output.Format == "table" {
				pterm.Info.Printfln("Page %d, %d of %d applications", page.Page, len(page.Items), page.Total)
			}
			return nil
		}),
	}
	list.Flags().StringVar(&status, "status", "", "Filter by status (pending|approved|rejected|completed)")
	list.Flags().StringVar(&filter.Search, "search", "", "Search name, email or college")
	list.Flags().IntVar(&filter.Page, "page", 1, "Page number")
	list.Flags().IntVar(&filter.Limit, "limit", 20, "Page size")

	setStatus := &cobra.Command{
		Use:   "status <application-id> <pending|approved|rejected|completed>",
		Short: "Change the status of an application",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			app, err := d.Service.UpdateApplicationStatus(cmd.Context(), args[0], api.ApplicationStatus(args[1]))
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Application %s is now %s", app.ID, app.Status)
			return nil
		}),
	}

	cmd.AddCommand(list, setStatus)
	return cmd
}

func newAdminCouponsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "coupons",
		Short: "Manage coupon codes",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List coupons",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			coupons, err := d.Service.ListCoupons(cmd.Context())
			if err != nil {
				return err
			}
			return render(couponTable(coupons))
		}),
	}

	var coupon api.Coupon
	var validFor time.Duration
	create := &cobra.Command{
		Use:   "create <code>",
		Short: "Create a coupon",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			coupon.Code = args[0]
			coupon.Active = true
			if validFor > 0 {
				expires := time.Now().Add(validFor)
				coupon.ExpiresAt = &expires
			}
			created, err := d.Service.CreateCoupon(cmd.Context(), coupon)
			if err != nil {
				return err
			}
			pterm.Success.Printfln("Coupon %s created (%d%% off)", created.Code, created.DiscountPercent)
			return nil
		}),
	}
	create.Flags().IntVar(&coupon.DiscountPercent, "discount", 0, "Discount percent")
	create.Flags().IntVar(&coupon.MaxUses, "max-uses", 0, "Maximum redemptions (0 for unlimited)")
	create.Flags().DurationVar(&validFor, "valid-for", 0, "How long the coupon stays valid, e.g. 720h")
	_ = create.MarkFlagRequired("discount")

	remove := &cobra.Command{
		Use:     "delete <coupon-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a coupon",
		Args:    cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			if err := d.Service.DeleteCoupon(cmd.Context(), args[0]); err != nil {
				return err
			}
			pterm.Success.Println("Coupon deleted")
			return nil
		}),
	}

	cmd.AddCommand(list, create, remove)
	return cmd
}

func newAdminUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage user accounts",
	}

	var page, limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			users, err := d.Service.ListUsers(cmd.Context(), page, limit)
			if err != nil {
				return err
			}
			return render(userTable(users.Items))
		}),
	}
	list.Flags().IntVar(&page, "page", 1, "Page number")
	list.Flags().IntVar(&limit, "limit", 20, "Page size")

	role := &cobra.Command{
		Use:   "role <user-id> <student|admin>",
		Short: "Change a user's role",
		Args:  cobra.ExactArgs(2),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			if err := d.Service.UpdateUserRole(cmd.Context(), args[0], args[1]); err != nil {
				return err
			}
			pterm.Success.Printfln("User %s is now %s", args[0], args[1])
			return nil
		}),
	}

	cmd.AddCommand(list, role)
	return cmd
}

func newAdminMessagesCommand() *cobra.Command {
	var unread bool

	cmd := &cobra.Command{
		Use:   "messages",
		Short: "Read the contact inbox",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			messages, err := d.Service.ListMessages(cmd.Context())
			if err != nil {
				return err
			}
			if unread {
				kept := messages[:0]
				for _, m := range messages {
					if !m.Read {
						kept = append(kept, m)
					}
				}
				messages = kept
			}
			return render(messageTable(messages))
		}),
	}
	cmd.Flags().BoolVar(&unread, "unread", false, "Only show unread messages")

	cmd.AddCommand(&cobra.Command{
		Use:   "read <message-id>",
		Short: "Mark a message as read",
		Args:  cobra.ExactArgs(1),
		RunE: run(func(cmd *cobra.Command, args []string, d *deps) error {
			return d.Service.MarkMessageRead(cmd.Context(), args[0])
		}),
	})
	return cmd
}

func newAdminAuditCommand() *cobra.Command {
	var filter api.AuditFilter
	var since time.Duration

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Show the admin audit log",
		Args:  cobra.NoArgs,
		RunE: run(func(cmd *cobra.Command, _ []string, d *deps) error {
			if since > 0 {
				filter.Since = time.Now().Add(-since)
			}
			logs, err := d.Service.ListAuditLogs(cmd.Context(), filter)
			if err != nil {
				return err
			}
			return render(auditTable(logs.Items))
		}),
	}
	cmd.Flags().StringVar(&filter.Actor, "actor", "", "Only entries by this admin")
	cmd.Flags().StringVar(&filter.Action, "action", "", "Only entries with this action")
	cmd.Flags().DurationVar(&since, "since", 0, "Only entries newer than this, e.g. 24h")
	cmd.Flags().IntVar(&filter.Page, "page", 1, "Page number")
	cmd.Flags().IntVar(&filter.Limit, "limit", 50, "Page size")
	return cmd
}
