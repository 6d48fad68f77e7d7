package main

import (
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/Griffon01/borelli-advocacia/internal/agenda"
	"github.com/Griffon01/borelli-advocacia/internal/dashboard"
	"github.com/Griffon01/borelli-advocacia/internal/model"
)

func printStats(w io.Writer, stats agenda.Stats) {
	fmt.Fprintf(w, "Total %d · Pendentes %d · Urgentes %d · Concluídos %d\n",
		stats.Total, stats.Pending, stats.Urgent, stats.Done)
}

func printWeek(w io.Writer, ctrl *dashboard.Controller, now time.Time) {
	days := ctrl.WeekDays()
	fmt.Fprintf(w, "Week of %s — %s\n\n",
		days[0].Format("02/01/2006"), days[6].Format("02/01/2006"))

	for _, day := range days {
		marker := " "
		if agenda.IsToday(day, now) {
			marker = "*"
		}
		fmt.Fprintf(w, "%s %s %s\n", marker, day.Format("Mon"), day.Format("02/01"))

		events := ctrl.EventsOn(day)
		if len(events) == 0 {
			fmt.Fprintln(w, "    —")
			continue
		}
		for _, e := range events {
			line := fmt.Sprintf("    #%d %s  [%s] %s", e.ID, e.DisplayTime(), e.Type.Info().Label, e.Title)
			if e.Status == model.StatusUrgent {
				line += "  (URGENTE)"
			}
			fmt.Fprintln(w, line)
		}
	}
}

func printEventList(w io.Writer, events []model.Event) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tTIME\tTYPE\tSTATUS\tTITLE\tCLIENT")
	for _, e := range events {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.ID, e.Date, e.DisplayTime(), e.Type.Info().Label, e.Status.Info().Label, e.Title, e.ClientName)
	}
	tw.Flush()
}

func printEventDetail(w io.Writer, e *model.Event) {
	fmt.Fprintf(w, "#%d  [%s] %s\n", e.ID, e.Type.Info().Label, e.Title)
	fmt.Fprintf(w, "Status: %s\n", e.Status.Info().Label)
	fmt.Fprintf(w, "Date:   %s %s\n", e.Date, e.DisplayTime())
	if e.Location != "" {
		fmt.Fprintf(w, "Local:  %s\n", e.Location)
	}
	if e.ClientName != "" {
		fmt.Fprintf(w, "Client: %s\n", e.ClientName)
	}
	if len(e.Assignees) > 0 {
		fmt.Fprint(w, "Assignees:")
		for _, a := range e.Assignees {
			fmt.Fprintf(w, " %s (%s)", a.Name, a.Role.Info().Label)
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintf(w, "Comments (%d):\n", len(e.Comments))
	for _, comment := range e.Comments {
		name := comment.UserName
		if name == "" {
			name = "Usuário"
		}
		fmt.Fprintf(w, "  %s", name)
		if comment.CreatedAt != "" {
			fmt.Fprintf(w, " — %s", comment.CreatedAt)
		}
		fmt.Fprintf(w, "\n    %s\n", comment.Content)
	}
}

func printTeam(w io.Writer, team []model.User, events []model.Event, showEmail bool) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	if showEmail {
		fmt.Fprintln(tw, "NAME\tROLE\tEMAIL\tEVENTS\tPENDING")
	} else {
		fmt.Fprintln(tw, "NAME\tROLE\tEVENTS\tPENDING")
	}
	for _, member := range team {
		load := agenda.MemberWorkload(events, member.ID)
		if showEmail {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%d\t%d\n",
				member.Name, member.Role.Info().Label, member.Email, load.Total, load.Pending)
		} else {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%d\n",
				member.Name, member.Role.Info().Label, load.Total, load.Pending)
		}
	}
	tw.Flush()
}
