package tracking

// LinkKind tells how a pagination entry renders.
type LinkKind int

const (
	LinkPrev LinkKind = iota
	LinkPage
	LinkEllipsis
	LinkNext
)

// PageLink is one entry of the pagination bar.
type PageLink struct {
	Kind     LinkKind
	Page     int
	Active   bool
	Disabled bool
}

// window is how many pages are shown on each side of the current one.
const window = 2

// Paginate lays out the pagination bar. It returns nil when total <= 1.
// The bar holds Prev, a shortcut to page 1 (with an ellipsis when pages are
// skipped), the pages within two of current, the mirrored shortcut to the
// last page and Next. Prev and Next are disabled at the ends.
func Paginate(current, total int) []PageLink {
	if total <= 1 {
		return nil
	}
	current = min(max(current, 1), total)

	start := max(1, current-window)
	end := min(total, current+window)

	links := make([]PageLink, 0, end-start+7)
	links = append(links, PageLink{Kind: LinkPrev, Page: current - 1, Disabled: current == 1})

	if start > 1 {
		links = append(links, PageLink{Kind: LinkPage, Page: 1})
		if start > 2 {
			links = append(links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
	}
	for p := start; p <= end; p++ {
		links = append(links, PageLink{Kind: LinkPage, Page: p, Active: p == current})
	}
	if end < total {
		if end < total-1 {
			links = append(links, PageLink{Kind: LinkEllipsis, Disabled: true})
		}
		links = append(links, PageLink{Kind: LinkPage, Page: total})
	}

	links = append(links, PageLink{Kind: LinkNext, Page: current + 1, Disabled: current == total})
	return links
}
