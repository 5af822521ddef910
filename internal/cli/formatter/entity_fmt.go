package formatter

import (
	"strconv"
	"strings"

	"ismaalAdmin/internal/models"
	"ismaalAdmin/internal/moderation"
)

func renderPage[T any](title, empty string, page moderation.Page[T], headers []string, row func(T) []string) string {
	var b strings.Builder
	b.WriteString(Header(title))
	b.WriteString("\n")
	if len(page.Items) == 0 {
		b.WriteString(Dim(empty))
		b.WriteString("\n")
		return b.String()
	}
	rows := make([][]string, 0, len(page.Items))
	for _, item := range page.Items {
		rows = append(rows, row(item))
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString("\n")
	b.WriteString(PageFooter(page.StartItem, page.EndItem, page.TotalItems, page.Page, page.TotalPages, page.PageNumbers))
	return b.String()
}

func FormatProducts(page moderation.Page[models.Product]) string {
	return renderPage("Products", "No products found", page,
		[]string{"ID", "NAME", "CATEGORY", "LOCATION", "PRICE", "STATUS"},
		func(p models.Product) []string {
			return []string{p.ID.String(), string(p.Name), string(p.Category), string(p.Location), p.Price.String(), Status(string(p.Status))}
		})
}

func FormatProfessionals(page moderation.Page[models.Professional]) string {
	return renderPage("Professionals", "No professionals found", page,
		[]string{"ID", "NAME", "EMAIL", "PROFESSION", "EXPERIENCE", "STATUS"},
		func(p models.Professional) []string {
			return []string{p.ID.String(), string(p.Name), string(p.Email), string(p.Profession), string(p.Experience), Status(string(p.Status))}
		})
}

func FormatBusinesses(page moderation.Page[models.Business]) string {
	return renderPage("Businesses", "No businesses found", page,
		[]string{"ID", "NAME", "CATEGORY", "EMAIL", "PHONE", "STATUS"},
		func(bz models.Business) []string {
			return []string{bz.ID.String(), string(bz.Name), string(bz.Category), string(bz.Email), string(bz.Phone), Status(string(bz.Status))}
		})
}

func FormatUsers(page moderation.Page[models.User]) string {
	return renderPage("Users", "No users found", page,
		[]string{"ID", "NAME", "EMAIL", "ROLE", "PLAN", "BUSINESSES", "PRODUCTS"},
		func(u models.User) []string {
			return []string{u.ID.String(), string(u.Name), string(u.Email), string(u.Role), string(u.Plan),
				strconv.Itoa(int(u.Businesses)), strconv.Itoa(int(u.Products))}
		})
}

func FormatPlans(page moderation.Page[models.Plan]) string {
	return renderPage("Plans", "No plans found", page,
		[]string{"ID", "NAME", "PRICE", "BUSINESSES", "PRODUCTS", "PROFILE", "USERS"},
		func(p models.Plan) []string {
			return []string{p.ID.String(), string(p.Name), p.Price.String(),
				strconv.Itoa(int(p.AllowedBusinesses)), strconv.Itoa(int(p.AllowedProducts)),
				string(p.ProfileStatus), strconv.Itoa(int(p.Users))}
		})
}

// FormatRecord renders a detail view from label/value pairs.
func FormatRecord(title string, pairs [][2]string) string {
	return Header(title) + "\n" + RenderFields(pairs)
}
