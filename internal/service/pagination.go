package service

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100
)

// normalizePage clamps page and limit to the shared pagination contract:
// page defaults to 1, limit defaults to 10 and is capped at 100.
func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = defaultPage
	}
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return page, limit
}

// pageOffset converts a one-based page to a zero-based row offset.
func pageOffset(page, limit int) int {
	return (page - 1) * limit
}
