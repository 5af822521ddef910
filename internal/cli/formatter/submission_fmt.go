package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/moderation"
)

// FormatSubmissions renders the filter tabs, one page of submissions and
// the pagination footer.
func FormatSubmissions(page moderation.Page[models.Submission], filter moderation.Filter, counts moderation.FilterCounts) string {
	var b strings.Builder
	b.WriteString(Header("Submissions"))
	b.WriteString("\n")
	b.WriteString(filterTabs(filter, counts))
	b.WriteString("\n\n")

	if len(page.Items) == 0 {
		b.WriteString(Dim("No submissions found"))
		b.WriteString("\n")
		return b.String()
	}

	rows := make([][]string, 0, len(page.Items))
	for _, s := range page.Items {
		rows = append(rows, []string{
			string(s.Key.Type),
			s.Key.ID.String(),
			s.Label,
			s.Name,
			submitter(s),
			displayDate(s),
			Status(s.Status),
		})
	}
	b.WriteString(RenderTable([]string{"TYPE", "ID", "KIND", "NAME", "SUBMITTED BY", "DATE", "STATUS"}, rows))
	b.WriteString("\n")
	b.WriteString(PageFooter(page.StartItem, page.EndItem, page.TotalItems, page.Page, page.TotalPages, page.PageNumbers))
	return b.String()
}

func filterTabs(active moderation.Filter, counts moderation.FilterCounts) string {
	n := map[moderation.Filter]int{
		moderation.FilterAll:      counts.All,
		moderation.FilterPending:  counts.Pending,
		moderation.FilterApproved: counts.Approved,
		moderation.FilterRejected: counts.Rejected,
	}
	tabs := make([]string, 0, len(moderation.Filters))
	for _, f := range moderation.Filters {
		label := fmt.Sprintf("%s (%d)", f, n[f])
		if f == active {
			label = Bold("[" + label + "]")
		} else {
			label = Dim(label)
		}
		tabs = append(tabs, label)
	}
	return strings.Join(tabs, "  ")
}

// PageFooter renders "Showing a to b of n entries" and the page links, with
// 0 in numbers standing for an ellipsis.
func PageFooter(start, end, total, current, pages int, numbers []int) string {
	line := fmt.Sprintf("Showing %d to %d of %d entries", start, end, total)
	if pages <= 1 {
		return Dim(line) + "\n"
	}
	links := make([]string, 0, len(numbers))
	for _, n := range numbers {
		switch n {
		case 0:
			links = append(links, "…")
		case current:
			links = append(links, Bold("["+strconv.Itoa(n)+"]"))
		default:
			links = append(links, strconv.Itoa(n))
		}
	}
	return Dim(line) + "   " + strings.Join(links, " ") + "\n"
}

// FormatSubmission renders the detail view of one submission.
func FormatSubmission(s models.Submission) string {
	pairs := [][2]string{
		{"Type", s.Label},
		{"ID", s.Key.ID.String()},
		{"Name", s.Name},
		{"Status", Status(s.Status)},
		{"Submitted", displayDate(s)},
	}
	if s.User != nil {
		pairs = append(pairs, [2]string{"Submitted by", submitter(s)}, [2]string{"Email", s.User.Email})
	}
	if l := s.Listing; l != nil {
		pairs = append(pairs,
			[2]string{"Category", l.Category},
			[2]string{"Specialty", l.Specialty},
			[2]string{"Experience", l.Experience},
			[2]string{"Location", l.Location},
			[2]string{"Price", l.Price.String()},
			[2]string{"Description", l.Description},
		)
	}
	if pr := s.PlanRequest; pr != nil {
		pairs = append(pairs,
			[2]string{"Current plan", planLabel(pr.CurrentPlan)},
			[2]string{"Requested plan", planLabel(pr.RequestedPlan)},
			[2]string{"Amount", pr.Amount.String()},
			[2]string{"Payment method", pr.PaymentMethod},
			[2]string{"Phone", pr.PhoneNumber},
			[2]string{"Admin notes", pr.AdminNotes},
		)
	}
	return Header(s.Name) + "\n" + RenderFields(pairs)
}

func submitter(s models.Submission) string {
	if s.User == nil {
		return ""
	}
	if s.User.Name != "" {
		return s.User.Name
	}
	return s.User.Email
}

func displayDate(s models.Submission) string {
	t, ok := s.EffectiveDate()
	if !ok {
		return ""
	}
	return t.Format("2006-01-02")
}

func planLabel(p *models.PlanRef) string {
	if p == nil {
		return ""
	}
	if price := p.Price.String(); price != "" {
		return fmt.Sprintf("%s (%s)", p.Name, price)
	}
	return p.Name
}
