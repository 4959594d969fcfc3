package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/codeorbit/codeorbit-client/internal/api"
	"github.com/codeorbit/codeorbit-client/internal/output"
)

func day(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02")
}

func rupees(amount int) string {
	return fmt.Sprintf("₹%d", amount)
}

type internshipTable []api.Internship

func (l internshipTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "TITLE", "DOMAIN", "DURATION", "PRICE"}}
	for _, i := range l {
		t.Rows = append(t.Rows, []string{i.ID, i.Title, i.Domain, i.Duration, rupees(i.Price)})
	}
	return t
}

type applicationTable []api.Application

func (l applicationTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "NAME", "EMAIL", "INTERNSHIP", "STATUS", "PAYMENT", "CREATED"}}
	for _, a := range l {
		internship := a.Internship
		if internship == "" {
			internship = a.InternshipID
		}
		t.Rows = append(t.Rows, []string{a.ID, a.Name, a.Email, internship, string(a.Status), a.PaymentStatus, day(a.CreatedAt)})
	}
	return t
}

type couponTable []api.Coupon

func (l couponTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "CODE", "DISCOUNT", "USED", "ACTIVE", "EXPIRES"}}
	for _, c := range l {
		expires := "-"
		if c.ExpiresAt != nil {
			expires = day(*c.ExpiresAt)
		}
		used := strconv.Itoa(c.UsedCount)
		if c.MaxUses > 0 {
			used += "/" + strconv.Itoa(c.MaxUses)
		}
		t.Rows = append(t.Rows, []string{c.ID, c.Code, strconv.Itoa(c.DiscountPercent) + "%", used, strconv.FormatBool(c.Active), expires})
	}
	return t
}

type taskTable []api.Task

func (l taskTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "TITLE", "DUE", "SUBMITTED"}}
	for _, task := range l {
		t.Rows = append(t.Rows, []string{task.ID, task.Title, day(task.DueDate), strconv.FormatBool(task.Submitted)})
	}
	return t
}

type userTable []api.User

func (l userTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "NAME", "EMAIL", "ROLE", "JOINED"}}
	for _, u := range l {
		t.Rows = append(t.Rows, []string{u.ID, u.Name, u.Email, u.Role, day(u.CreatedAt)})
	}
	return t
}

type messageTable []api.Message

func (l messageTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "FROM", "EMAIL", "SUBJECT", "READ", "RECEIVED"}}
	for _, m := range l {
		t.Rows = append(t.Rows, []string{m.ID, m.Name, m.Email, m.Subject, strconv.FormatBool(m.Read), day(m.CreatedAt)})
	}
	return t
}

type auditTable []api.AuditLog

func (l auditTable) Table() output.Table {
	t := output.Table{Header: []string{"WHEN", "ACTOR", "ACTION", "TARGET"}}
	for _, a := range l {
		t.Rows = append(t.Rows, []string{a.CreatedAt.Local().Format(time.DateTime), a.Actor, a.Action, a.Target})
	}
	return t
}

type programTable []api.Program

func (l programTable) Table() output.Table {
	t := output.Table{Header: []string{"ID", "TITLE", "COURSES"}}
	for _, p := range l {
		t.Rows = append(t.Rows, []string{p.ID, p.Title, strconv.Itoa(len(p.Courses))})
	}
	return t
}

// courseOutline flattens a course into one row per activity.
type courseOutline api.Course

func (c courseOutline) Table() output.Table {
	t := output.Table{Header: []string{"MODULE", "LESSON", "ACTIVITY", "TYPE", "DONE"}}
	for _, m := range c.Modules {
		for _, l := range m.Lessons {
			for _, a := range l.Activities {
				t.Rows = append(t.Rows, []string{m.Title, l.Title, a.ID + " " + a.Title, string(a.Type), strconv.FormatBool(a.Completed)})
			}
		}
	}
	return t
}

type progressView api.Progress

func (p progressView) Table() output.Table {
	return output.Table{
		Header: []string{"COURSE", "COMPLETED", "TOTAL", "PERCENT"},
		Rows: [][]string{{
			p.CourseID,
			strconv.Itoa(len(p.CompletedActivities)),
			strconv.Itoa(p.TotalActivities),
			strconv.FormatFloat(p.Percent, 'f', 0, 64) + "%",
		}},
	}
}
