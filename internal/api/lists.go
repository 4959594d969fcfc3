package api

import "strings"

// FilterApplications keeps applications whose name, email, college,
// internship or status contains query (case-insensitive). An empty query
// keeps all.
func FilterApplications(apps []Application, query string) []Application {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return apps
	}
	var out []Application
	for _, app := range apps {
		for _, field := range []string{app.Name, app.Email, app.College, app.Internship, string(app.Status)} {
			if strings.Contains(strings.ToLower(field), q) {
				out = append(out, app)
				break
			}
		}
	}
	return out
}

// Paginate returns the 1-based page of items. Out of range pages are empty.
func Paginate[T any](items []T, page, size int) []T {
	if size <= 0 {
		return items
	}
	if page < 1 {
		page = 1
	}
	// Compare page indexes before multiplying so huge pages cannot overflow.
	if len(items) == 0 || page-1 > (len(items)-1)/size {
		return nil
	}
	start := (page - 1) * size
	end := len(items)
	if size < end-start {
		end = start + size
	}
	return items[start:end]
}
